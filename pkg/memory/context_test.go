package memory_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/companion-labs/companion-go/pkg/memory"
)

func buildProfile(prefs, patterns, highFacts int) memory.Profile {
	profile := memory.Profile{}
	for i := 0; i < prefs; i++ {
		profile.Preferences = append(profile.Preferences, memory.Preference{
			Category:   memory.CategoryLifestyle,
			Preference: fmt.Sprintf("preference %d", i+1),
			Sentiment:  memory.SentimentPositive,
			Confidence: 0.9,
		})
	}
	for i := 0; i < patterns; i++ {
		profile.EmotionalPatterns = append(profile.EmotionalPatterns, memory.EmotionalPattern{
			Emotion:   memory.EmotionAnxiety,
			Trigger:   fmt.Sprintf("trigger %d", i+1),
			Intensity: memory.IntensityMedium,
		})
	}
	for i := 0; i < highFacts; i++ {
		profile.FactsWorthRemembering = append(profile.FactsWorthRemembering, memory.Fact{
			Category:   memory.FactPersonalInfo,
			Fact:       fmt.Sprintf("fact %d", i+1),
			Importance: memory.ImportanceHigh,
		})
	}
	return profile
}

func TestRenderContextTruncation(t *testing.T) {
	profile := buildProfile(8, 4, 6)

	rendered := memory.RenderContext(profile)

	assert.Equal(t, memory.MaxContextPreferences, strings.Count(rendered, "preference "))
	assert.Equal(t, memory.MaxContextPatterns, strings.Count(rendered, "Tends toward"))
	assert.Equal(t, memory.MaxContextFacts, strings.Count(rendered, "fact "))

	// Oldest first: the first N by insertion order survive.
	assert.Contains(t, rendered, "preference 1")
	assert.Contains(t, rendered, "preference 5")
	assert.NotContains(t, rendered, "preference 6")
	assert.Contains(t, rendered, "fact 5")
	assert.NotContains(t, rendered, "fact 6")
}

func TestRenderContextFiltersFactsByImportance(t *testing.T) {
	profile := memory.Profile{
		FactsWorthRemembering: []memory.Fact{
			{Category: memory.FactGoal, Fact: "low fact", Importance: memory.ImportanceLow},
			{Category: memory.FactGoal, Fact: "medium fact", Importance: memory.ImportanceMedium},
			{Category: memory.FactGoal, Fact: "high fact", Importance: memory.ImportanceHigh},
			{Category: memory.FactGoal, Fact: "critical fact", Importance: memory.ImportanceCritical},
		},
	}

	rendered := memory.RenderContext(profile)

	assert.Contains(t, rendered, "high fact")
	assert.Contains(t, rendered, "critical fact")
	assert.NotContains(t, rendered, "low fact")
	assert.NotContains(t, rendered, "medium fact")
}

func TestRenderContextOmitsEmptySections(t *testing.T) {
	profile := memory.Profile{
		Preferences: []memory.Preference{
			{Category: memory.CategoryFood, Preference: "Coffee", Sentiment: memory.SentimentPositive, Confidence: 0.9},
		},
	}

	rendered := memory.RenderContext(profile)

	assert.Contains(t, rendered, "User Preferences:")
	assert.NotContains(t, rendered, "Emotional Patterns")
	assert.NotContains(t, rendered, "Important facts")
	assert.NotContains(t, rendered, "Overall Profile")
}

func TestRenderContextEmptyProfile(t *testing.T) {
	assert.Equal(t, "", memory.RenderContext(memory.Profile{}))
}

func TestRenderContextDeterministic(t *testing.T) {
	profile := buildProfile(8, 4, 6)
	assert.Equal(t, memory.RenderContext(profile), memory.RenderContext(profile))
}

func TestRenderContextPatternTrigger(t *testing.T) {
	profile := memory.Profile{
		EmotionalPatterns: []memory.EmotionalPattern{
			{Emotion: memory.EmotionStress, Trigger: "deadlines", Intensity: memory.IntensityHigh},
			{Emotion: memory.EmotionCalm, Intensity: memory.IntensityLow},
		},
	}

	rendered := memory.RenderContext(profile)

	assert.Contains(t, rendered, "Tends toward stress when deadlines")
	assert.Contains(t, rendered, "Tends toward calm\n")
}

func TestRenderFullEmitsEverything(t *testing.T) {
	profile := buildProfile(8, 4, 6)
	profile.FactsWorthRemembering = append(profile.FactsWorthRemembering, memory.Fact{
		Category: memory.FactGoal, Fact: "minor detail", Importance: memory.ImportanceLow,
	})
	profile.OverallProfile = &memory.Summary{
		DominantMood:       "hopeful",
		CommunicationStyle: memory.StyleMixed,
		TopConcerns:        []string{"work", "loneliness"},
		SupportNeeds:       []string{"encouragement"},
	}

	rendered := memory.RenderFull(profile)

	// No truncation and no importance filtering in the full dump.
	assert.Contains(t, rendered, "preference 8")
	assert.Contains(t, rendered, "trigger 4")
	assert.Contains(t, rendered, "fact 6")
	assert.Contains(t, rendered, "minor detail")
	assert.Contains(t, rendered, "Dominant Mood: hopeful")
	assert.Contains(t, rendered, "Top Concerns: work, loneliness")
}

func TestRenderFullEmptyProfile(t *testing.T) {
	assert.Equal(t, "No memories extracted yet.", memory.RenderFull(memory.Profile{}))
}
