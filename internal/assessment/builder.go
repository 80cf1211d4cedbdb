package assessment

import "fmt"

// Builder operations are pure: each returns a new schema and leaves the
// input untouched. Slices are copied along the edited path only, untouched
// sections and questions keep their identity. Unknown ids and out-of-range
// moves are no-ops returning an equal schema.

// QuestionPatch carries partial question updates. Nil fields are left
// untouched; ClearMin/ClearMax drop a number bound entirely.
type QuestionPatch struct {
	Kind      *Kind
	Label     *string
	Required  *bool
	Options   *[]string
	MaxLength *int
	Min       *int
	Max       *int
	ClearMin  bool
	ClearMax  bool
}

// AddSection appends an empty section titled "Section N".
func AddSection(s Schema) Schema {
	next := s
	next.Sections = append(copySections(s), NewSection(fmt.Sprintf("Section %d", len(s.Sections)+1)))
	return next
}

// RenameSection sets a section's title.
func RenameSection(s Schema, sectionID, title string) Schema {
	return mapSection(s, sectionID, func(sec Section) Section {
		sec.Title = title
		return sec
	})
}

// DeleteSection removes a section and all its questions. Dependents in
// other sections that referenced deleted questions keep their dangling
// conditions; the evaluator resolves those to not-visible.
func DeleteSection(s Schema, sectionID string) Schema {
	next := s
	next.Sections = make([]Section, 0, len(s.Sections))
	for _, sec := range s.Sections {
		if sec.ID != sectionID {
			next.Sections = append(next.Sections, sec)
		}
	}
	return next
}

// MoveSection shifts a section by delta positions (±1 from callers). Moves
// past either boundary are no-ops.
func MoveSection(s Schema, sectionID string, delta int) Schema {
	idx := -1
	for i, sec := range s.Sections {
		if sec.ID == sectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}
	to := idx + delta
	if to < 0 || to >= len(s.Sections) {
		return s
	}
	next := s
	next.Sections = copySections(s)
	next.Sections[idx], next.Sections[to] = next.Sections[to], next.Sections[idx]
	return next
}

// AddQuestion appends a defaulted question of the given kind to a section.
func AddQuestion(s Schema, sectionID string, kind Kind) Schema {
	return mapSection(s, sectionID, func(sec Section) Section {
		sec.Questions = append(copyQuestions(sec), NewQuestion(kind))
		return sec
	})
}

// UpdateQuestion applies a partial patch to one question.
func UpdateQuestion(s Schema, sectionID, questionID string, patch QuestionPatch) Schema {
	return mapQuestion(s, sectionID, questionID, func(q Question) Question {
		if patch.Kind != nil {
			q.Kind = *patch.Kind
		}
		if patch.Label != nil {
			q.Label = *patch.Label
		}
		if patch.Required != nil {
			q.Required = *patch.Required
		}
		if patch.Options != nil {
			q.Options = *patch.Options
		}
		if patch.MaxLength != nil {
			q.MaxLength = patch.MaxLength
		}
		if patch.Min != nil {
			q.Min = patch.Min
		}
		if patch.Max != nil {
			q.Max = patch.Max
		}
		if patch.ClearMin {
			q.Min = nil
		}
		if patch.ClearMax {
			q.Max = nil
		}
		return q
	})
}

// DeleteQuestion removes a question from a section. Conditions on other
// questions that referenced it are left in place (current behavior, not
// cascaded); they evaluate to not-visible from then on.
func DeleteQuestion(s Schema, sectionID, questionID string) Schema {
	return mapSection(s, sectionID, func(sec Section) Section {
		qs := make([]Question, 0, len(sec.Questions))
		for _, q := range sec.Questions {
			if q.ID != questionID {
				qs = append(qs, q)
			}
		}
		sec.Questions = qs
		return sec
	})
}

// MoveQuestion shifts a question by delta positions within its section.
func MoveQuestion(s Schema, sectionID, questionID string, delta int) Schema {
	return mapSection(s, sectionID, func(sec Section) Section {
		idx := -1
		for i, q := range sec.Questions {
			if q.ID == questionID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return sec
		}
		to := idx + delta
		if to < 0 || to >= len(sec.Questions) {
			return sec
		}
		qs := copyQuestions(sec)
		qs[idx], qs[to] = qs[to], qs[idx]
		sec.Questions = qs
		return sec
	})
}

// SetDependency sets or clears a question's visibility condition. An empty
// dependencyID clears the condition entirely.
func SetDependency(s Schema, sectionID, questionID, dependencyID, value string) Schema {
	return mapQuestion(s, sectionID, questionID, func(q Question) Question {
		if dependencyID == "" {
			q.ShowIf = nil
		} else {
			q.ShowIf = &Condition{QuestionID: dependencyID, Value: value}
		}
		return q
	})
}

func copySections(s Schema) []Section {
	out := make([]Section, len(s.Sections))
	copy(out, s.Sections)
	return out
}

func copyQuestions(sec Section) []Question {
	out := make([]Question, len(sec.Questions))
	copy(out, sec.Questions)
	return out
}

func mapSection(s Schema, sectionID string, fn func(Section) Section) Schema {
	next := s
	next.Sections = copySections(s)
	for i, sec := range next.Sections {
		if sec.ID == sectionID {
			next.Sections[i] = fn(sec)
			break
		}
	}
	return next
}

func mapQuestion(s Schema, sectionID, questionID string, fn func(Question) Question) Schema {
	return mapSection(s, sectionID, func(sec Section) Section {
		qs := copyQuestions(sec)
		for i, q := range qs {
			if q.ID == questionID {
				qs[i] = fn(q)
				break
			}
		}
		sec.Questions = qs
		return sec
	})
}
