package assessment

import "github.com/google/uuid"

// Kind defines the type of a question
type Kind string

const (
	KindSingle Kind = "single" // single choice, dropdown
	KindMulti  Kind = "multi"  // multiple choice, checkboxes
	KindShort  Kind = "short"  // short text
	KindLong   Kind = "long"   // long text
	KindNumber Kind = "number" // numeric input
	KindFile   Kind = "file"   // file upload, stubbed at runtime
)

// Validation defaults applied when a question carries no explicit bounds.
const (
	DefaultShortMaxLength = 120
	DefaultLongMaxLength  = 600
)

// Condition is a single-hop visibility rule: the question is shown only
// when the referenced question's answer equals Value.
type Condition struct {
	QuestionID string `json:"questionId" bson:"questionId"`
	Value      string `json:"value" bson:"value"`
}

// Question is one entry inside a section. Options applies to choice kinds,
// MaxLength to text kinds, Min/Max to number; the rest ignore them.
type Question struct {
	ID        string     `json:"id" bson:"id"`
	Kind      Kind       `json:"kind" bson:"kind"`
	Label     string     `json:"label" bson:"label"`
	Required  bool       `json:"required" bson:"required"`
	Options   []string   `json:"options,omitempty" bson:"options,omitempty"`
	MaxLength *int       `json:"maxLength,omitempty" bson:"maxLength,omitempty"`
	Min       *int       `json:"min,omitempty" bson:"min,omitempty"`
	Max       *int       `json:"max,omitempty" bson:"max,omitempty"`
	ShowIf    *Condition `json:"showIf,omitempty" bson:"showIf,omitempty"`
}

// Section is an ordered group of questions. Order is array position and
// changes only through explicit move operations.
type Section struct {
	ID        string     `json:"id" bson:"id"`
	Title     string     `json:"title" bson:"title"`
	Questions []Question `json:"questions" bson:"questions"`
}

// Schema is the full definition of one assessment. Question ids are unique
// across the whole schema, not just within a section, because ShowIf
// references cross-cut sections.
type Schema struct {
	Title    string    `json:"title" bson:"title"`
	Sections []Section `json:"sections" bson:"sections"`
}

// Answers maps question id to answer value: string for single/short/long/
// number, []string for multi. An absent key means unanswered.
type Answers map[string]any

// NewSchema returns an empty schema with the given title.
func NewSchema(title string) Schema {
	return Schema{Title: title, Sections: []Section{}}
}

// NewSection returns an empty titled section with a fresh id.
func NewSection(title string) Section {
	return Section{ID: uuid.NewString(), Title: title, Questions: []Question{}}
}

// NewQuestion returns a question of the given kind with kind-appropriate
// defaults: placeholder options for choice kinds, default max length for
// text kinds, a 0..100 range for numbers.
func NewQuestion(kind Kind) Question {
	q := Question{
		ID:   uuid.NewString(),
		Kind: kind,
	}
	switch kind {
	case KindSingle, KindMulti:
		q.Options = []string{"Option A", "Option B"}
	case KindShort:
		q.MaxLength = intPtr(DefaultShortMaxLength)
	case KindLong:
		q.MaxLength = intPtr(DefaultLongMaxLength)
	case KindNumber:
		q.Min = intPtr(0)
		q.Max = intPtr(100)
	}
	return q
}

func intPtr(v int) *int { return &v }
