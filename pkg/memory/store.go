package memory

import (
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Store holds the canonical memory profile for a user.
//
// The profile is mutated only through Merge and lives for the lifetime of
// the store. The store is safe for concurrent use; Merge is the only
// mutator and readers always see a consistent snapshot.
type Store struct {
	// mu protects profile.
	mu sync.RWMutex

	// profile is the aggregate memory profile.
	profile Profile

	// node generates unique IDs for merged items.
	node *snowflake.Node
}

// NewStore creates an empty memory store.
func NewStore() (*Store, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	return &Store{node: node}, nil
}

// Merge reconciles a validated batch into the profile and returns a snapshot
// of the result.
//
// Dedup rules:
//   - Preferences: case-insensitive exact match on the preference text. An
//     incoming duplicate is dropped; the existing item is kept unchanged.
//   - Facts: case-insensitive exact match on the fact text, same policy.
//   - Emotional patterns: exact match on the (emotion, trigger) composite
//     key. A missing trigger is its own key value and compares equal only
//     to itself.
//
// Non-duplicate items are appended in arrival order. A batch's
// OverallProfile, if present, unconditionally replaces the stored summary.
// Merging never fails on a validated batch; empty batches are no-ops.
func (s *Store) Merge(batch *Batch) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pref := range batch.Preferences {
		if s.hasPreference(pref.Preference) {
			continue
		}
		pref.ID = s.node.Generate().Int64()
		s.profile.Preferences = append(s.profile.Preferences, pref)
	}

	for _, pattern := range batch.EmotionalPatterns {
		if s.hasPattern(pattern.Emotion, pattern.Trigger) {
			continue
		}
		pattern.ID = s.node.Generate().Int64()
		s.profile.EmotionalPatterns = append(s.profile.EmotionalPatterns, pattern)
	}

	for _, fact := range batch.FactsWorthRemembering {
		if s.hasFact(fact.Fact) {
			continue
		}
		fact.ID = s.node.Generate().Int64()
		s.profile.FactsWorthRemembering = append(s.profile.FactsWorthRemembering, fact)
	}

	if batch.OverallProfile != nil {
		summary := *batch.OverallProfile
		s.profile.OverallProfile = &summary
	}

	return s.copyProfile()
}

// Snapshot returns a read-only copy of the current profile.
func (s *Store) Snapshot() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyProfile()
}

// Restore replaces the entire profile with a previously persisted one.
// Items without IDs (e.g. hand-built profiles) are assigned fresh ones.
func (s *Store) Restore(profile Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range profile.Preferences {
		if profile.Preferences[i].ID == 0 {
			profile.Preferences[i].ID = s.node.Generate().Int64()
		}
	}
	for i := range profile.EmotionalPatterns {
		if profile.EmotionalPatterns[i].ID == 0 {
			profile.EmotionalPatterns[i].ID = s.node.Generate().Int64()
		}
	}
	for i := range profile.FactsWorthRemembering {
		if profile.FactsWorthRemembering[i].ID == 0 {
			profile.FactsWorthRemembering[i].ID = s.node.Generate().Int64()
		}
	}

	s.profile = profile
}

func (s *Store) hasPreference(text string) bool {
	for _, existing := range s.profile.Preferences {
		if strings.EqualFold(existing.Preference, text) {
			return true
		}
	}
	return false
}

func (s *Store) hasPattern(emotion Emotion, trigger string) bool {
	for _, existing := range s.profile.EmotionalPatterns {
		if existing.Emotion == emotion && existing.Trigger == trigger {
			return true
		}
	}
	return false
}

func (s *Store) hasFact(text string) bool {
	for _, existing := range s.profile.FactsWorthRemembering {
		if strings.EqualFold(existing.Fact, text) {
			return true
		}
	}
	return false
}

// copyProfile deep-copies the profile. Callers must hold at least a read lock.
func (s *Store) copyProfile() Profile {
	out := Profile{
		Preferences:           append([]Preference(nil), s.profile.Preferences...),
		EmotionalPatterns:     append([]EmotionalPattern(nil), s.profile.EmotionalPatterns...),
		FactsWorthRemembering: make([]Fact, len(s.profile.FactsWorthRemembering)),
	}
	for i, fact := range s.profile.FactsWorthRemembering {
		fact.RelatedPeople = append([]string(nil), fact.RelatedPeople...)
		out.FactsWorthRemembering[i] = fact
	}
	if s.profile.OverallProfile != nil {
		summary := *s.profile.OverallProfile
		summary.TopConcerns = append([]string(nil), summary.TopConcerns...)
		summary.Strengths = append([]string(nil), summary.Strengths...)
		summary.SupportNeeds = append([]string(nil), summary.SupportNeeds...)
		out.OverallProfile = &summary
	}
	return out
}
