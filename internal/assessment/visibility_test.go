package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func condSchema() Schema {
	return Schema{
		Title: "Screening",
		Sections: []Section{
			{
				ID:    "sec1",
				Title: "Basics",
				Questions: []Question{
					{ID: "q1", Kind: KindSingle, Label: "Willing to relocate?", Required: true, Options: []string{"Yes", "No"}},
					{ID: "q2", Kind: KindShort, Label: "Preferred city", Required: true, ShowIf: &Condition{QuestionID: "q1", Value: "Yes"}},
					{ID: "q3", Kind: KindShort, Label: "Visa details", ShowIf: &Condition{QuestionID: "q2", Value: "Berlin"}},
				},
			},
		},
	}
}

func TestIsVisibleWithoutCondition(t *testing.T) {
	q := Question{ID: "q", Kind: KindShort}
	assert.True(t, IsVisible(q, nil))
	assert.True(t, IsVisible(q, Answers{"other": "x"}))
}

func TestIsVisibleMatchesExpectedValue(t *testing.T) {
	q := Question{ID: "q2", Kind: KindShort, ShowIf: &Condition{QuestionID: "q1", Value: "Yes"}}

	assert.True(t, IsVisible(q, Answers{"q1": "Yes"}))
	assert.False(t, IsVisible(q, Answers{"q1": "No"}))
	assert.False(t, IsVisible(q, Answers{}), "absent dependency answer means hidden")
}

func TestIsVisibleMultiChoiceDependencyNeverMatches(t *testing.T) {
	// A multi-choice answer is a []string; the stored expected value is a
	// plain string. Equality comparison keeps these conditionals dark, which
	// matches observed behavior and is documented as a known limitation.
	q := Question{ID: "q2", Kind: KindShort, ShowIf: &Condition{QuestionID: "q1", Value: "Go"}}
	assert.False(t, IsVisible(q, Answers{"q1": []string{"Go", "Rust"}}))
}

func TestIsVisibleDanglingReference(t *testing.T) {
	q := Question{ID: "q2", Kind: KindShort, ShowIf: &Condition{QuestionID: "deleted", Value: "x"}}
	assert.False(t, IsVisible(q, Answers{"q1": "x"}))
}

func TestIsVisibleSelfReference(t *testing.T) {
	q := Question{ID: "q1", Kind: KindShort, ShowIf: &Condition{QuestionID: "q1", Value: "x"}}
	// must not panic or loop; compares against its own answer
	assert.True(t, IsVisible(q, Answers{"q1": "x"}))
	assert.False(t, IsVisible(q, Answers{}))
}

func TestVisibleSetSnapshot(t *testing.T) {
	s := condSchema()

	visible := VisibleSet(s, Answers{"q1": "Yes", "q2": "Berlin"})
	assert.True(t, visible["q1"])
	assert.True(t, visible["q2"])
	assert.True(t, visible["q3"])

	visible = VisibleSet(s, Answers{"q1": "No"})
	assert.True(t, visible["q1"])
	assert.False(t, visible["q2"])
	assert.False(t, visible["q3"])
}

func TestVisibleSetSingleHopIgnoresHiddenDependency(t *testing.T) {
	// q2 hidden (q1 != Yes) but its raw answer still drives q3: single-hop
	// evaluation reads the dependency's value, not its visibility.
	s := condSchema()
	visible := VisibleSet(s, Answers{"q1": "No", "q2": "Berlin"})
	assert.False(t, visible["q2"])
	assert.True(t, visible["q3"])
}

func TestPruneHiddenDropsStaleAnswers(t *testing.T) {
	s := condSchema()
	answers := Answers{"q1": "No", "q2": "Berlin", "q3": "H1B"}

	pruned := PruneHidden(s, answers)

	assert.Equal(t, Answers{"q1": "No"}, pruned)
	// input untouched
	assert.Equal(t, Answers{"q1": "No", "q2": "Berlin", "q3": "H1B"}, answers)
}

func TestPruneHiddenFixedPoint(t *testing.T) {
	s := condSchema()
	answers := Answers{"q1": "No", "q2": "Berlin", "q3": "H1B"}

	once := PruneHidden(s, answers)
	twice := PruneHidden(s, once)
	assert.Equal(t, once, twice)

	// nothing invisible keeps an answer
	for id, vis := range VisibleSet(s, once) {
		if !vis {
			assert.NotContains(t, once, id)
		}
	}
}

func TestPruneHiddenKeepsUnknownKeys(t *testing.T) {
	s := condSchema()
	pruned := PruneHidden(s, Answers{"q1": "Yes", "stray": "kept"})
	assert.Equal(t, "kept", pruned["stray"])
}

func TestQuestionIndexFlattensSections(t *testing.T) {
	s := condSchema()
	s.Sections = append(s.Sections, Section{
		ID:        "sec2",
		Title:     "Extra",
		Questions: []Question{{ID: "q4", Kind: KindNumber}},
	})

	idx := QuestionIndex(s)
	assert.Len(t, idx, 4)
	assert.Equal(t, KindNumber, idx["q4"].Kind)
	assert.Equal(t, "Preferred city", idx["q2"].Label)
}
