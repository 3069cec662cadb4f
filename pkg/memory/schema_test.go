package memory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/companion-labs/companion-go/pkg/memory"
)

const validBatchJSON = `{
	"preferences": [
		{"category": "lifestyle", "preference": "Loves hiking", "sentiment": "positive", "confidence": 0.9, "sourceMessage": "I love hiking"},
		{"category": "work", "preference": "Hates Mondays", "sentiment": "negative", "confidence": 0.85}
	],
	"emotionalPatterns": [
		{"emotion": "anxiety", "trigger": "work meetings", "frequency": "frequent", "intensity": "medium"}
	],
	"factsWorthRemembering": [
		{"category": "relationship", "fact": "Has a cat named Luna", "importance": "high", "relatedPeople": ["Luna"]}
	],
	"overallProfile": {
		"dominantMood": "anxious but hopeful",
		"communicationStyle": "casual",
		"topConcerns": ["fitting in at work"],
		"strengths": ["self-aware"],
		"supportNeeds": ["encouragement"]
	}
}`

func TestValidateBatch(t *testing.T) {
	batch, err := memory.ValidateBatch([]byte(validBatchJSON))
	require.NoError(t, err)

	require.Len(t, batch.Preferences, 2)
	assert.Equal(t, memory.CategoryLifestyle, batch.Preferences[0].Category)
	assert.Equal(t, memory.SentimentPositive, batch.Preferences[0].Sentiment)
	assert.Equal(t, 0.9, batch.Preferences[0].Confidence)
	assert.Equal(t, "I love hiking", batch.Preferences[0].SourceMessage)

	require.Len(t, batch.EmotionalPatterns, 1)
	assert.Equal(t, memory.EmotionAnxiety, batch.EmotionalPatterns[0].Emotion)
	assert.Equal(t, memory.FrequencyFrequent, batch.EmotionalPatterns[0].Frequency)

	require.Len(t, batch.FactsWorthRemembering, 1)
	assert.Equal(t, memory.ImportanceHigh, batch.FactsWorthRemembering[0].Importance)
	assert.Equal(t, []string{"Luna"}, batch.FactsWorthRemembering[0].RelatedPeople)

	require.NotNil(t, batch.OverallProfile)
	assert.Equal(t, memory.StyleCasual, batch.OverallProfile.CommunicationStyle)
	assert.False(t, batch.Empty())
}

func TestValidateBatchNotJSON(t *testing.T) {
	_, err := memory.ValidateBatch([]byte("I couldn't produce JSON, sorry"))
	assert.ErrorIs(t, err, memory.ErrMalformedResponse)
}

func TestValidateBatchMissingTopLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{
			name:  "missing preferences",
			input: `{"emotionalPatterns": [], "factsWorthRemembering": [], "overallProfile": null}`,
			field: "preferences",
		},
		{
			name:  "missing overallProfile",
			input: `{"preferences": [], "emotionalPatterns": [], "factsWorthRemembering": []}`,
			field: "overallProfile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := memory.ValidateBatch([]byte(tt.input))
			var schemaErr *memory.SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.field, schemaErr.Field)
		})
	}
}

func TestValidateBatchRejectsOutOfRange(t *testing.T) {
	input := `{
		"preferences": [{"category": "food", "preference": "Coffee", "sentiment": "positive", "confidence": 1.5}],
		"emotionalPatterns": [],
		"factsWorthRemembering": [],
		"overallProfile": null
	}`

	_, err := memory.ValidateBatch([]byte(input))
	var schemaErr *memory.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "preferences[0].confidence", schemaErr.Field)
	assert.Equal(t, "a number in [0, 1]", schemaErr.Expected)
	assert.Equal(t, "1.5", schemaErr.Actual)
}

func TestValidateBatchRejectsOutOfEnum(t *testing.T) {
	input := `{
		"preferences": [{"category": "food", "preference": "Coffee", "sentiment": "mixed", "confidence": 0.8}],
		"emotionalPatterns": [],
		"factsWorthRemembering": [],
		"overallProfile": null
	}`

	_, err := memory.ValidateBatch([]byte(input))
	var schemaErr *memory.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "preferences[0].sentiment", schemaErr.Field)
	assert.Equal(t, "mixed", schemaErr.Actual)
}

func TestValidateBatchMissingRequiredItemFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{
			name: "preference missing confidence",
			input: `{"preferences": [{"category": "food", "preference": "Coffee", "sentiment": "positive"}],
				"emotionalPatterns": [], "factsWorthRemembering": [], "overallProfile": null}`,
			field: "preferences[0].confidence",
		},
		{
			name: "pattern missing intensity",
			input: `{"preferences": [], "emotionalPatterns": [{"emotion": "joy"}],
				"factsWorthRemembering": [], "overallProfile": null}`,
			field: "emotionalPatterns[0].intensity",
		},
		{
			name: "fact missing importance",
			input: `{"preferences": [], "emotionalPatterns": [],
				"factsWorthRemembering": [{"category": "goal", "fact": "Wants to run a marathon"}], "overallProfile": null}`,
			field: "factsWorthRemembering[0].importance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := memory.ValidateBatch([]byte(tt.input))
			var schemaErr *memory.SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.field, schemaErr.Field)
		})
	}
}

func TestValidateBatchInvalidEnumElsewhere(t *testing.T) {
	input := `{
		"preferences": [],
		"emotionalPatterns": [{"emotion": "melancholy", "intensity": "low"}],
		"factsWorthRemembering": [],
		"overallProfile": null
	}`

	_, err := memory.ValidateBatch([]byte(input))
	var schemaErr *memory.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "emotionalPatterns[0].emotion", schemaErr.Field)
}

func TestValidateBatchInvalidSummaryStyle(t *testing.T) {
	input := `{
		"preferences": [],
		"emotionalPatterns": [],
		"factsWorthRemembering": [],
		"overallProfile": {"communicationStyle": "verbose"}
	}`

	_, err := memory.ValidateBatch([]byte(input))
	var schemaErr *memory.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "overallProfile.communicationStyle", schemaErr.Field)
}

func TestValidateBatchNullSummary(t *testing.T) {
	input := `{"preferences": [], "emotionalPatterns": [], "factsWorthRemembering": [], "overallProfile": null}`

	batch, err := memory.ValidateBatch([]byte(input))
	require.NoError(t, err)
	assert.Nil(t, batch.OverallProfile)
	assert.True(t, batch.Empty())
}

func TestSchemaErrorMessage(t *testing.T) {
	err := &memory.SchemaError{
		Field:    "preferences[0].confidence",
		Expected: "a number in [0, 1]",
		Actual:   "1.5",
	}
	assert.Contains(t, err.Error(), "preferences[0].confidence")
	assert.Contains(t, err.Error(), "[0, 1]")
	assert.Contains(t, err.Error(), "1.5")
	assert.False(t, errors.Is(err, memory.ErrMalformedResponse))
}
