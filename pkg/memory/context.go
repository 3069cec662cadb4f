package memory

import (
	"fmt"
	"strings"
)

// Truncation limits for prompt injection. Context rendered for a persona's
// instructions is bounded so the composed prompt stays small; the limits
// select the first N items by insertion order, not by rank.
const (
	// MaxContextPreferences is the most preferences surfaced in a bounded rendering.
	MaxContextPreferences = 5

	// MaxContextPatterns is the most emotional patterns surfaced in a bounded rendering.
	MaxContextPatterns = 3

	// MaxContextFacts is the most facts surfaced in a bounded rendering, after
	// filtering to high and critical importance.
	MaxContextFacts = 5
)

// RenderContext renders a bounded, deterministic summary of the profile for
// injection into a persona's system instructions.
//
// The output is a header line followed by up to four labeled sections in
// fixed order (preferences, emotional patterns, facts, overall profile);
// sections with no backing data are omitted. At most MaxContextPreferences
// preferences and MaxContextPatterns patterns are surfaced, oldest first;
// facts are filtered to high/critical importance before truncation to
// MaxContextFacts. Returns the empty string for an empty profile.
func RenderContext(profile Profile) string {
	if profile.Empty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("=== USER CONTEXT (Use this to personalize your response) ===\n")

	if len(profile.Preferences) > 0 {
		b.WriteString("\nUser Preferences:\n")
		for _, p := range truncate(profile.Preferences, MaxContextPreferences) {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Preference, p.Sentiment)
		}
	}

	if len(profile.EmotionalPatterns) > 0 {
		b.WriteString("\nEmotional Patterns to be aware of:\n")
		for _, e := range truncate(profile.EmotionalPatterns, MaxContextPatterns) {
			fmt.Fprintf(&b, "- Tends toward %s", e.Emotion)
			if e.Trigger != "" {
				fmt.Fprintf(&b, " when %s", e.Trigger)
			}
			b.WriteString("\n")
		}
	}

	important := importantFacts(profile.FactsWorthRemembering)
	if len(important) > 0 {
		b.WriteString("\nImportant facts about this person:\n")
		for _, f := range truncate(important, MaxContextFacts) {
			fmt.Fprintf(&b, "- %s\n", f.Fact)
		}
	}

	if profile.OverallProfile != nil {
		summary := profile.OverallProfile
		b.WriteString("\nOverall Profile:\n")
		if summary.CommunicationStyle != "" {
			fmt.Fprintf(&b, "- Communication style: %s\n", summary.CommunicationStyle)
		}
		if len(summary.SupportNeeds) > 0 {
			fmt.Fprintf(&b, "- Needs support with: %s\n", strings.Join(summary.SupportNeeds, ", "))
		}
	}

	return b.String()
}

// RenderFull renders the complete, untruncated profile for display and
// debugging. Every stored item is emitted.
func RenderFull(profile Profile) string {
	if profile.Empty() {
		return "No memories extracted yet."
	}

	var b strings.Builder
	b.WriteString("=== USER MEMORY PROFILE ===\n\n")

	if len(profile.Preferences) > 0 {
		b.WriteString("PREFERENCES:\n")
		for _, p := range profile.Preferences {
			fmt.Fprintf(&b, "- %s (%s, %s)\n", p.Preference, p.Category, p.Sentiment)
		}
		b.WriteString("\n")
	}

	if len(profile.EmotionalPatterns) > 0 {
		b.WriteString("EMOTIONAL PATTERNS:\n")
		for _, e := range profile.EmotionalPatterns {
			fmt.Fprintf(&b, "- %s (%s intensity", e.Emotion, e.Intensity)
			if e.Trigger != "" {
				fmt.Fprintf(&b, ", triggered by: %s", e.Trigger)
			}
			b.WriteString(")\n")
		}
		b.WriteString("\n")
	}

	if len(profile.FactsWorthRemembering) > 0 {
		b.WriteString("IMPORTANT FACTS:\n")
		for _, f := range profile.FactsWorthRemembering {
			fmt.Fprintf(&b, "- %s (%s importance)\n", f.Fact, f.Importance)
		}
		b.WriteString("\n")
	}

	if profile.OverallProfile != nil {
		summary := profile.OverallProfile
		b.WriteString("OVERALL PROFILE:\n")
		fmt.Fprintf(&b, "- Dominant Mood: %s\n", summary.DominantMood)
		fmt.Fprintf(&b, "- Communication Style: %s\n", summary.CommunicationStyle)
		if len(summary.TopConcerns) > 0 {
			fmt.Fprintf(&b, "- Top Concerns: %s\n", strings.Join(summary.TopConcerns, ", "))
		}
		if len(summary.SupportNeeds) > 0 {
			fmt.Fprintf(&b, "- Support Needs: %s\n", strings.Join(summary.SupportNeeds, ", "))
		}
	}

	return b.String()
}

func truncate[T any](items []T, max int) []T {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func importantFacts(facts []Fact) []Fact {
	out := make([]Fact, 0, len(facts))
	for _, f := range facts {
		if f.Importance == ImportanceHigh || f.Importance == ImportanceCritical {
			out = append(out, f)
		}
	}
	return out
}
