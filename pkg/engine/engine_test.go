package engine_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/companion-labs/companion-go/pkg/engine"
	"github.com/companion-labs/companion-go/pkg/llm"
	"github.com/companion-labs/companion-go/pkg/memory"
	"github.com/companion-labs/companion-go/pkg/persona"
)

// stubProvider answers completions from the system instruction it receives.
// respond may sleep to scramble completion order across goroutines.
type stubProvider struct {
	mu      sync.Mutex
	calls   []stubCall
	respond func(system string) (string, error)
}

type stubCall struct {
	system  string
	user    string
	options *llm.GenerateOptions
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	return s.GenerateWithMessages(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (s *stubProvider) GenerateWithMessages(ctx context.Context, messages []llm.Message, opts ...llm.GenerateOption) (string, error) {
	call := stubCall{options: llm.ApplyGenerateOptions(opts)}
	for _, m := range messages {
		switch m.Role {
		case "system":
			call.system = m.Content
		case "user":
			call.user = m.Content
		}
	}
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()

	if s.respond != nil {
		return s.respond(call.system)
	}
	return "ok", nil
}

func (s *stubProvider) Close() error { return nil }

func (s *stubProvider) lastCall(t *testing.T) stubCall {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.calls)
	return s.calls[len(s.calls)-1]
}

func newTestEngine(t *testing.T, provider llm.Provider, store *memory.Store) *engine.Engine {
	t.Helper()
	eng, err := engine.New(provider, persona.DefaultRegistry(), store, persona.KeyCalmMentor)
	require.NoError(t, err)
	return eng
}

func TestNewRejectsUnknownDefault(t *testing.T) {
	_, err := engine.New(&stubProvider{}, persona.DefaultRegistry(), nil, "zen_master")
	assert.ErrorIs(t, err, persona.ErrUnknownPersona)
}

func TestSelectPersona(t *testing.T) {
	eng := newTestEngine(t, &stubProvider{}, nil)

	require.NoError(t, eng.SelectPersona(persona.KeyWiseElder))
	assert.Equal(t, persona.KeyWiseElder, eng.CurrentPersona())
}

func TestSelectPersonaUnknownLeavesCurrentUnchanged(t *testing.T) {
	eng := newTestEngine(t, &stubProvider{}, nil)

	err := eng.SelectPersona("zen_master")
	assert.ErrorIs(t, err, persona.ErrUnknownPersona)
	assert.Equal(t, persona.KeyCalmMentor, eng.CurrentPersona())
}

func TestComposeBareTemplateWithoutStore(t *testing.T) {
	eng := newTestEngine(t, &stubProvider{}, nil)

	system, err := eng.Compose(persona.KeyWittyFriend)
	require.NoError(t, err)
	assert.Equal(t, persona.WittyFriend.BehaviorTemplate, system)
}

func TestComposeBareTemplateWithEmptyStore(t *testing.T) {
	store, err := memory.NewStore()
	require.NoError(t, err)
	eng := newTestEngine(t, &stubProvider{}, store)

	system, err := eng.Compose(persona.KeyCalmMentor)
	require.NoError(t, err)
	assert.Equal(t, persona.CalmMentor.BehaviorTemplate, system)
}

func TestComposeInjectsMemoryContext(t *testing.T) {
	store, err := memory.NewStore()
	require.NoError(t, err)
	store.Merge(&memory.Batch{
		Preferences: []memory.Preference{
			{Category: memory.CategoryLifestyle, Preference: "Loves hiking", Sentiment: memory.SentimentPositive, Confidence: 0.9},
		},
	})
	eng := newTestEngine(t, &stubProvider{}, store)

	system, err := eng.Compose(persona.KeyCalmMentor)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(system, persona.CalmMentor.BehaviorTemplate))
	assert.Contains(t, system, "Loves hiking")
	assert.Contains(t, system, "Use this context naturally")
}

func TestRespondUsesCurrentPersona(t *testing.T) {
	provider := &stubProvider{respond: func(string) (string, error) {
		return "persona says hi", nil
	}}
	eng := newTestEngine(t, provider, nil)
	require.NoError(t, eng.SelectPersona(persona.KeyCheerfulCoach))

	resp, err := eng.Respond(context.Background(), "Hello", "")
	require.NoError(t, err)
	assert.Equal(t, persona.KeyCheerfulCoach, resp.PersonaKey)
	assert.Equal(t, "Cheerful Coach", resp.PersonaName)
	assert.Equal(t, "persona says hi", resp.Text)

	call := provider.lastCall(t)
	assert.Equal(t, persona.CheerfulCoach.BehaviorTemplate, call.system)
	assert.Equal(t, "Hello", call.user)
}

func TestRespondExplicitKeyOverridesCurrent(t *testing.T) {
	provider := &stubProvider{}
	eng := newTestEngine(t, provider, nil)

	resp, err := eng.Respond(context.Background(), "Hello", persona.KeyWiseElder)
	require.NoError(t, err)
	assert.Equal(t, persona.KeyWiseElder, resp.PersonaKey)
	// The override is per-call; the current persona is untouched.
	assert.Equal(t, persona.KeyCalmMentor, eng.CurrentPersona())
}

func TestRespondUnknownKey(t *testing.T) {
	eng := newTestEngine(t, &stubProvider{}, nil)

	_, err := eng.Respond(context.Background(), "Hello", "zen_master")
	assert.ErrorIs(t, err, persona.ErrUnknownPersona)
}

func TestRespondSamplingParameters(t *testing.T) {
	provider := &stubProvider{}
	eng := newTestEngine(t, provider, nil)

	_, err := eng.Respond(context.Background(), "Hello", "")
	require.NoError(t, err)

	call := provider.lastCall(t)
	assert.Equal(t, engine.ResponseTemperature, call.options.Temperature)
	assert.Equal(t, engine.ResponseMaxTokens, call.options.MaxTokens)
	assert.Nil(t, call.options.Schema)
}

func TestRespondServiceFailure(t *testing.T) {
	provider := &stubProvider{respond: func(string) (string, error) {
		return "", errors.New("dial tcp: connection refused")
	}}
	eng := newTestEngine(t, provider, nil)

	_, err := eng.Respond(context.Background(), "Hello", "")
	assert.ErrorIs(t, err, memory.ErrServiceUnavailable)
}

func TestBaseline(t *testing.T) {
	provider := &stubProvider{respond: func(system string) (string, error) {
		return "plain answer", nil
	}}
	eng := newTestEngine(t, provider, nil)

	resp, err := eng.Baseline(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, engine.BaselinePersonaName, resp.PersonaName)
	assert.Empty(t, resp.PersonaKey)
	assert.Equal(t, "plain answer", resp.Text)

	call := provider.lastCall(t)
	assert.NotContains(t, call.system, persona.CalmMentor.BehaviorTemplate)
	assert.Contains(t, call.system, "helpful assistant")
}

func TestCompareAllOrderedByRegistry(t *testing.T) {
	// Later personas finish first so assembly order cannot come from
	// completion order.
	delays := map[string]time.Duration{
		persona.CalmMentor.BehaviorTemplate:     40 * time.Millisecond,
		persona.WittyFriend.BehaviorTemplate:    30 * time.Millisecond,
		persona.TherapistStyle.BehaviorTemplate: 20 * time.Millisecond,
		persona.CheerfulCoach.BehaviorTemplate:  10 * time.Millisecond,
		persona.WiseElder.BehaviorTemplate:      0,
	}
	provider := &stubProvider{respond: func(system string) (string, error) {
		time.Sleep(delays[system])
		return "done", nil
	}}
	eng := newTestEngine(t, provider, nil)

	responses, err := eng.CompareAll(context.Background(), "Hello")
	require.NoError(t, err)
	require.Len(t, responses, 5)

	keys := make([]string, len(responses))
	for i, resp := range responses {
		keys[i] = resp.PersonaKey
	}
	assert.Equal(t, persona.DefaultRegistry().Keys(), keys)
}

func TestCompareAllAbortsOnFailure(t *testing.T) {
	provider := &stubProvider{respond: func(system string) (string, error) {
		if system == persona.TherapistStyle.BehaviorTemplate {
			return "", errors.New("rate limited")
		}
		return "done", nil
	}}
	eng := newTestEngine(t, provider, nil)

	responses, err := eng.CompareAll(context.Background(), "Hello")
	assert.ErrorIs(t, err, memory.ErrServiceUnavailable)
	assert.Nil(t, responses)
}

func TestCompareAllSharesOneSnapshotPerCall(t *testing.T) {
	store, err := memory.NewStore()
	require.NoError(t, err)
	store.Merge(&memory.Batch{
		Preferences: []memory.Preference{
			{Category: memory.CategoryFood, Preference: "Drinks tea", Sentiment: memory.SentimentPositive, Confidence: 0.9},
		},
	})
	provider := &stubProvider{}
	eng := newTestEngine(t, provider, store)

	_, err = eng.CompareAll(context.Background(), "Hello")
	require.NoError(t, err)

	provider.mu.Lock()
	defer provider.mu.Unlock()
	require.Len(t, provider.calls, 5)
	for _, call := range provider.calls {
		assert.Contains(t, call.system, "Drinks tea")
	}
}
