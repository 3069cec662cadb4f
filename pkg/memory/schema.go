package memory

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ExtractionSchemaName identifies the structured-output schema to the
// completion service.
const ExtractionSchemaName = "memory_extraction"

// extractionSchemaJSON is the JSON-schema document sent with extraction
// requests to constrain the completion service's output.
const extractionSchemaJSON = `{
  "type": "object",
  "properties": {
    "preferences": {
      "type": "array",
      "description": "User preferences including likes, dislikes, habits, and choices",
      "items": {
        "type": "object",
        "properties": {
          "category": {
            "type": "string",
            "enum": ["food", "entertainment", "communication", "lifestyle", "work", "relationships", "other"]
          },
          "preference": {"type": "string"},
          "sentiment": {"type": "string", "enum": ["positive", "negative", "neutral"]},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "sourceMessage": {"type": "string"}
        },
        "required": ["category", "preference", "sentiment", "confidence"]
      }
    },
    "emotionalPatterns": {
      "type": "array",
      "description": "Recurring emotional patterns, triggers, and coping mechanisms",
      "items": {
        "type": "object",
        "properties": {
          "emotion": {
            "type": "string",
            "enum": ["joy", "sadness", "anger", "fear", "anxiety", "excitement", "frustration", "calm", "stress", "hope"]
          },
          "trigger": {"type": "string"},
          "frequency": {"type": "string", "enum": ["rare", "occasional", "frequent", "constant"]},
          "copingMechanism": {"type": "string"},
          "intensity": {"type": "string", "enum": ["low", "medium", "high"]},
          "context": {"type": "string"}
        },
        "required": ["emotion", "intensity"]
      }
    },
    "factsWorthRemembering": {
      "type": "array",
      "description": "Important personal facts, life events, and relationships",
      "items": {
        "type": "object",
        "properties": {
          "category": {
            "type": "string",
            "enum": ["personal_info", "life_event", "relationship", "achievement", "goal", "health", "location", "occupation"]
          },
          "fact": {"type": "string"},
          "importance": {"type": "string", "enum": ["low", "medium", "high", "critical"]},
          "timestamp": {"type": "string"},
          "relatedPeople": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["category", "fact", "importance"]
      }
    },
    "overallProfile": {
      "type": "object",
      "description": "Summary profile of the user",
      "properties": {
        "dominantMood": {"type": "string"},
        "communicationStyle": {"type": "string", "enum": ["formal", "casual", "mixed"]},
        "topConcerns": {"type": "array", "items": {"type": "string"}},
        "strengths": {"type": "array", "items": {"type": "string"}},
        "supportNeeds": {"type": "array", "items": {"type": "string"}}
      }
    }
  },
  "required": ["preferences", "emotionalPatterns", "factsWorthRemembering", "overallProfile"]
}`

// ExtractionSchema returns the JSON-schema document for extraction requests.
func ExtractionSchema() json.RawMessage {
	return json.RawMessage(extractionSchemaJSON)
}

// Raw item shapes with pointer fields so missing required keys can be told
// apart from zero values.
type rawPreference struct {
	Category      *string  `json:"category"`
	Preference    *string  `json:"preference"`
	Sentiment     *string  `json:"sentiment"`
	Confidence    *float64 `json:"confidence"`
	SourceMessage string   `json:"sourceMessage"`
}

type rawPattern struct {
	Emotion         *string `json:"emotion"`
	Trigger         string  `json:"trigger"`
	Frequency       string  `json:"frequency"`
	CopingMechanism string  `json:"copingMechanism"`
	Intensity       *string `json:"intensity"`
	Context         string  `json:"context"`
}

type rawFact struct {
	Category      *string  `json:"category"`
	Fact          *string  `json:"fact"`
	Importance    *string  `json:"importance"`
	Timestamp     string   `json:"timestamp"`
	RelatedPeople []string `json:"relatedPeople"`
}

// ValidateBatch parses raw JSON into a typed memory batch.
//
// The input must carry all four top-level collections (preferences,
// emotionalPatterns, factsWorthRemembering, overallProfile) and every
// required item field. Enum fields failing membership and confidence values
// outside [0, 1] fail validation with a *SchemaError naming the offending
// field; nothing is clamped or coerced.
//
// Returns ErrMalformedResponse (wrapped) when the input is not valid JSON
// at all.
func ValidateBatch(raw []byte) (*Batch, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for _, key := range []string{"preferences", "emotionalPatterns", "factsWorthRemembering", "overallProfile"} {
		if _, ok := top[key]; !ok {
			return nil, newSchemaError(key, "field to be present", "<missing>")
		}
	}

	batch := &Batch{}

	prefs, err := validatePreferences(top["preferences"])
	if err != nil {
		return nil, err
	}
	batch.Preferences = prefs

	patterns, err := validatePatterns(top["emotionalPatterns"])
	if err != nil {
		return nil, err
	}
	batch.EmotionalPatterns = patterns

	facts, err := validateFacts(top["factsWorthRemembering"])
	if err != nil {
		return nil, err
	}
	batch.FactsWorthRemembering = facts

	summary, err := validateSummary(top["overallProfile"])
	if err != nil {
		return nil, err
	}
	batch.OverallProfile = summary

	return batch, nil
}

func validatePreferences(raw json.RawMessage) ([]Preference, error) {
	var items []rawPreference
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, newSchemaError("preferences", "an array of preference objects", string(raw))
	}

	prefs := make([]Preference, 0, len(items))
	for i, item := range items {
		field := func(name string) string { return fmt.Sprintf("preferences[%d].%s", i, name) }

		if item.Category == nil {
			return nil, newSchemaError(field("category"), "field to be present", "<missing>")
		}
		if !PreferenceCategory(*item.Category).Valid() {
			return nil, newSchemaError(field("category"),
				"one of [food entertainment communication lifestyle work relationships other]", *item.Category)
		}
		if item.Preference == nil || *item.Preference == "" {
			return nil, newSchemaError(field("preference"), "a non-empty string", "<missing>")
		}
		if item.Sentiment == nil {
			return nil, newSchemaError(field("sentiment"), "field to be present", "<missing>")
		}
		if !Sentiment(*item.Sentiment).Valid() {
			return nil, newSchemaError(field("sentiment"), "one of [positive negative neutral]", *item.Sentiment)
		}
		if item.Confidence == nil {
			return nil, newSchemaError(field("confidence"), "field to be present", "<missing>")
		}
		if *item.Confidence < 0 || *item.Confidence > 1 {
			return nil, newSchemaError(field("confidence"), "a number in [0, 1]",
				strconv.FormatFloat(*item.Confidence, 'g', -1, 64))
		}

		prefs = append(prefs, Preference{
			Category:      PreferenceCategory(*item.Category),
			Preference:    *item.Preference,
			Sentiment:     Sentiment(*item.Sentiment),
			Confidence:    *item.Confidence,
			SourceMessage: item.SourceMessage,
		})
	}
	return prefs, nil
}

func validatePatterns(raw json.RawMessage) ([]EmotionalPattern, error) {
	var items []rawPattern
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, newSchemaError("emotionalPatterns", "an array of emotional pattern objects", string(raw))
	}

	patterns := make([]EmotionalPattern, 0, len(items))
	for i, item := range items {
		field := func(name string) string { return fmt.Sprintf("emotionalPatterns[%d].%s", i, name) }

		if item.Emotion == nil {
			return nil, newSchemaError(field("emotion"), "field to be present", "<missing>")
		}
		if !Emotion(*item.Emotion).Valid() {
			return nil, newSchemaError(field("emotion"),
				"one of [joy sadness anger fear anxiety excitement frustration calm stress hope]", *item.Emotion)
		}
		if item.Intensity == nil {
			return nil, newSchemaError(field("intensity"), "field to be present", "<missing>")
		}
		if !Intensity(*item.Intensity).Valid() {
			return nil, newSchemaError(field("intensity"), "one of [low medium high]", *item.Intensity)
		}
		if item.Frequency != "" && !Frequency(item.Frequency).Valid() {
			return nil, newSchemaError(field("frequency"), "one of [rare occasional frequent constant]", item.Frequency)
		}

		patterns = append(patterns, EmotionalPattern{
			Emotion:         Emotion(*item.Emotion),
			Trigger:         item.Trigger,
			Frequency:       Frequency(item.Frequency),
			CopingMechanism: item.CopingMechanism,
			Intensity:       Intensity(*item.Intensity),
			Context:         item.Context,
		})
	}
	return patterns, nil
}

func validateFacts(raw json.RawMessage) ([]Fact, error) {
	var items []rawFact
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, newSchemaError("factsWorthRemembering", "an array of fact objects", string(raw))
	}

	facts := make([]Fact, 0, len(items))
	for i, item := range items {
		field := func(name string) string { return fmt.Sprintf("factsWorthRemembering[%d].%s", i, name) }

		if item.Category == nil {
			return nil, newSchemaError(field("category"), "field to be present", "<missing>")
		}
		if !FactCategory(*item.Category).Valid() {
			return nil, newSchemaError(field("category"),
				"one of [personal_info life_event relationship achievement goal health location occupation]", *item.Category)
		}
		if item.Fact == nil || *item.Fact == "" {
			return nil, newSchemaError(field("fact"), "a non-empty string", "<missing>")
		}
		if item.Importance == nil {
			return nil, newSchemaError(field("importance"), "field to be present", "<missing>")
		}
		if !Importance(*item.Importance).Valid() {
			return nil, newSchemaError(field("importance"), "one of [low medium high critical]", *item.Importance)
		}

		facts = append(facts, Fact{
			Category:      FactCategory(*item.Category),
			Fact:          *item.Fact,
			Importance:    Importance(*item.Importance),
			Timestamp:     item.Timestamp,
			RelatedPeople: item.RelatedPeople,
		})
	}
	return facts, nil
}

func validateSummary(raw json.RawMessage) (*Summary, error) {
	// The key must be present but a null summary is allowed.
	if string(raw) == "null" {
		return nil, nil
	}

	var summary Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, newSchemaError("overallProfile", "a summary object", string(raw))
	}
	if summary.CommunicationStyle != "" && !summary.CommunicationStyle.Valid() {
		return nil, newSchemaError("overallProfile.communicationStyle",
			"one of [formal casual mixed]", string(summary.CommunicationStyle))
	}
	return &summary, nil
}
