// Package memory implements the durable user memory profile: the typed data
// model, schema validation of extracted batches, the canonical store with its
// merge rules, transcript-based extraction, and context rendering.
package memory

// ChatMessage is a single message from a user's chat history.
type ChatMessage struct {
	// ID is an optional sequence number from the source transcript.
	ID int `json:"id,omitempty"`

	// Timestamp is the free-form timestamp string from the transcript.
	Timestamp string `json:"timestamp,omitempty"`

	// Content is the message text.
	Content string `json:"content"`
}

// PreferenceCategory classifies a user preference.
type PreferenceCategory string

const (
	CategoryFood          PreferenceCategory = "food"
	CategoryEntertainment PreferenceCategory = "entertainment"
	CategoryCommunication PreferenceCategory = "communication"
	CategoryLifestyle     PreferenceCategory = "lifestyle"
	CategoryWork          PreferenceCategory = "work"
	CategoryRelationships PreferenceCategory = "relationships"
	CategoryOther         PreferenceCategory = "other"
)

// Valid reports whether c is a member of the preference category enum.
func (c PreferenceCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryEntertainment, CategoryCommunication,
		CategoryLifestyle, CategoryWork, CategoryRelationships, CategoryOther:
		return true
	}
	return false
}

// Sentiment is the polarity of a preference.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether s is a member of the sentiment enum.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Emotion names a recurring emotional state.
type Emotion string

const (
	EmotionJoy         Emotion = "joy"
	EmotionSadness     Emotion = "sadness"
	EmotionAnger       Emotion = "anger"
	EmotionFear        Emotion = "fear"
	EmotionAnxiety     Emotion = "anxiety"
	EmotionExcitement  Emotion = "excitement"
	EmotionFrustration Emotion = "frustration"
	EmotionCalm        Emotion = "calm"
	EmotionStress      Emotion = "stress"
	EmotionHope        Emotion = "hope"
)

// Valid reports whether e is a member of the emotion enum.
func (e Emotion) Valid() bool {
	switch e {
	case EmotionJoy, EmotionSadness, EmotionAnger, EmotionFear, EmotionAnxiety,
		EmotionExcitement, EmotionFrustration, EmotionCalm, EmotionStress, EmotionHope:
		return true
	}
	return false
}

// Frequency describes how often an emotional pattern recurs.
type Frequency string

const (
	FrequencyRare       Frequency = "rare"
	FrequencyOccasional Frequency = "occasional"
	FrequencyFrequent   Frequency = "frequent"
	FrequencyConstant   Frequency = "constant"
)

// Valid reports whether f is a member of the frequency enum.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyRare, FrequencyOccasional, FrequencyFrequent, FrequencyConstant:
		return true
	}
	return false
}

// Intensity grades the strength of an emotional pattern.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Valid reports whether i is a member of the intensity enum.
func (i Intensity) Valid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}

// FactCategory classifies a fact worth remembering.
type FactCategory string

const (
	FactPersonalInfo FactCategory = "personal_info"
	FactLifeEvent    FactCategory = "life_event"
	FactRelationship FactCategory = "relationship"
	FactAchievement  FactCategory = "achievement"
	FactGoal         FactCategory = "goal"
	FactHealth       FactCategory = "health"
	FactLocation     FactCategory = "location"
	FactOccupation   FactCategory = "occupation"
)

// Valid reports whether c is a member of the fact category enum.
func (c FactCategory) Valid() bool {
	switch c {
	case FactPersonalInfo, FactLifeEvent, FactRelationship, FactAchievement,
		FactGoal, FactHealth, FactLocation, FactOccupation:
		return true
	}
	return false
}

// Importance grades how much a fact matters for personalization.
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

// Valid reports whether i is a member of the importance enum.
func (i Importance) Valid() bool {
	switch i {
	case ImportanceLow, ImportanceMedium, ImportanceHigh, ImportanceCritical:
		return true
	}
	return false
}

// CommunicationStyle describes how the user tends to communicate.
type CommunicationStyle string

const (
	StyleFormal CommunicationStyle = "formal"
	StyleCasual CommunicationStyle = "casual"
	StyleMixed  CommunicationStyle = "mixed"
)

// Valid reports whether s is a member of the communication style enum.
func (s CommunicationStyle) Valid() bool {
	switch s {
	case StyleFormal, StyleCasual, StyleMixed:
		return true
	}
	return false
}

// Preference is a single user like, dislike, habit, or choice.
type Preference struct {
	// ID is assigned by the store when the preference is merged.
	ID int64 `json:"id,omitempty"`

	// Category classifies the preference.
	Category PreferenceCategory `json:"category"`

	// Preference is the preference text.
	Preference string `json:"preference"`

	// Sentiment is the polarity of the preference.
	Sentiment Sentiment `json:"sentiment"`

	// Confidence is the extraction confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// SourceMessage is the message the preference was extracted from (optional).
	SourceMessage string `json:"sourceMessage,omitempty"`
}

// EmotionalPattern is a recurring emotional state with its trigger and
// coping mechanism.
type EmotionalPattern struct {
	// ID is assigned by the store when the pattern is merged.
	ID int64 `json:"id,omitempty"`

	// Emotion names the emotional state.
	Emotion Emotion `json:"emotion"`

	// Trigger is what sets the emotion off (optional).
	Trigger string `json:"trigger,omitempty"`

	// Frequency is how often the pattern recurs (optional).
	Frequency Frequency `json:"frequency,omitempty"`

	// CopingMechanism is how the user deals with the emotion (optional).
	CopingMechanism string `json:"copingMechanism,omitempty"`

	// Intensity grades the strength of the pattern.
	Intensity Intensity `json:"intensity"`

	// Context is additional situational detail (optional).
	Context string `json:"context,omitempty"`
}

// Fact is a personal detail, life event, or relationship worth remembering.
type Fact struct {
	// ID is assigned by the store when the fact is merged.
	ID int64 `json:"id,omitempty"`

	// Category classifies the fact.
	Category FactCategory `json:"category"`

	// Fact is the fact text.
	Fact string `json:"fact"`

	// Importance grades how much the fact matters.
	Importance Importance `json:"importance"`

	// Timestamp is a free-form time reference (optional).
	Timestamp string `json:"timestamp,omitempty"`

	// RelatedPeople lists people the fact involves (optional).
	RelatedPeople []string `json:"relatedPeople,omitempty"`
}

// Summary is the overall profile of the user. At most one is held per
// profile; merging replaces it wholesale.
type Summary struct {
	DominantMood       string             `json:"dominantMood,omitempty"`
	CommunicationStyle CommunicationStyle `json:"communicationStyle,omitempty"`
	TopConcerns        []string           `json:"topConcerns,omitempty"`
	Strengths          []string           `json:"strengths,omitempty"`
	SupportNeeds       []string           `json:"supportNeeds,omitempty"`
}

// Batch is a validated, schema-conformant set of memories produced by one
// extraction call, ready to be merged into the store.
type Batch struct {
	Preferences           []Preference       `json:"preferences"`
	EmotionalPatterns     []EmotionalPattern `json:"emotionalPatterns"`
	FactsWorthRemembering []Fact             `json:"factsWorthRemembering"`
	OverallProfile        *Summary           `json:"overallProfile"`
}

// Empty reports whether the batch carries no memories at all.
func (b *Batch) Empty() bool {
	return len(b.Preferences) == 0 &&
		len(b.EmotionalPatterns) == 0 &&
		len(b.FactsWorthRemembering) == 0 &&
		b.OverallProfile == nil
}

// Profile is the aggregate memory profile of a user. It is owned by the
// Store and mutated only through Store.Merge; insertion order is extraction
// order.
type Profile struct {
	Preferences           []Preference       `json:"preferences"`
	EmotionalPatterns     []EmotionalPattern `json:"emotionalPatterns"`
	FactsWorthRemembering []Fact             `json:"factsWorthRemembering"`
	OverallProfile        *Summary           `json:"overallProfile,omitempty"`
}

// Empty reports whether the profile holds no memories.
func (p *Profile) Empty() bool {
	return len(p.Preferences) == 0 &&
		len(p.EmotionalPatterns) == 0 &&
		len(p.FactsWorthRemembering) == 0 &&
		p.OverallProfile == nil
}
