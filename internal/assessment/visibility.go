package assessment

// IsVisible reports whether a question applies under the current answers.
// A question without a condition is always visible. Otherwise the dependency
// answer must equal the expected value exactly: a missing answer, a dangling
// reference, or a non-string answer (a multi-choice []string never equals a
// string) all evaluate to not visible. Only the direct dependency is
// checked; chains are intentionally not followed.
func IsVisible(q Question, answers Answers) bool {
	if q.ShowIf == nil {
		return true
	}
	v, ok := answers[q.ShowIf.QuestionID]
	if !ok {
		return false
	}
	s, ok := v.(string)
	return ok && s == q.ShowIf.Value
}

// VisibleSet computes the visibility snapshot for one fixed answer map: the
// set of question ids currently visible. The schema is walked once; callers
// reuse the snapshot for rendering and validation of the same answers.
func VisibleSet(schema Schema, answers Answers) map[string]bool {
	visible := make(map[string]bool)
	for _, sec := range schema.Sections {
		for _, q := range sec.Questions {
			if IsVisible(q, answers) {
				visible[q.ID] = true
			}
		}
	}
	return visible
}

// PruneHidden returns a copy of answers without entries for questions that
// are invisible under those answers. Callers run it after every answer
// change and before submission so stale hidden-field values never persist.
// Visibility is checked against the map being pruned, so a deletion earlier
// in document order is observed by later questions; with single-hop
// conditions one pass reaches the fixed point and the operation is
// idempotent.
func PruneHidden(schema Schema, answers Answers) Answers {
	pruned := make(Answers, len(answers))
	for k, v := range answers {
		pruned[k] = v
	}
	for _, sec := range schema.Sections {
		for _, q := range sec.Questions {
			if !IsVisible(q, pruned) {
				delete(pruned, q.ID)
			}
		}
	}
	return pruned
}

// QuestionIndex builds a flat id -> question lookup across all sections.
// Built once per evaluation pass instead of re-walking the tree per
// dependency reference.
func QuestionIndex(schema Schema) map[string]Question {
	idx := make(map[string]Question)
	for _, sec := range schema.Sections {
		for _, q := range sec.Questions {
			idx[q.ID] = q
		}
	}
	return idx
}
