package assessment

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Issue is one user-facing validation failure tied to a question.
type Issue struct {
	QuestionID string `json:"questionId"`
	Message    string `json:"message"`
}

// Result is the outcome of checking an answer map against a schema. Issues
// follow the schema's section/question traversal order, so the first issue
// is the one an interactive caller should focus.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// Validator holds the compiled per-question rules for one schema.
type Validator struct {
	schema Schema
}

// Compile translates a schema into a validator. The same validator backs
// builder preview, candidate runtime and submission checks.
func Compile(schema Schema) *Validator {
	return &Validator{schema: schema}
}

// Check validates answers against the schema, considering only questions
// visible under this answer map. The visibility snapshot is taken once up
// front and held fixed for the whole pass, so an invisible required
// question never produces an issue.
func (v *Validator) Check(answers Answers) Result {
	visible := VisibleSet(v.schema, answers)

	var issues []Issue
	for _, sec := range v.schema.Sections {
		for _, q := range sec.Questions {
			if !visible[q.ID] {
				continue
			}
			if msg := checkQuestion(q, answers[q.ID]); msg != "" {
				issues = append(issues, Issue{QuestionID: q.ID, Message: msg})
			}
		}
	}
	return Result{Valid: len(issues) == 0, Issues: issues}
}

// checkQuestion applies the kind-specific rules to one raw answer value and
// returns the first violation, or "" when the answer passes.
func checkQuestion(q Question, raw any) string {
	switch q.Kind {
	case KindSingle:
		s, _ := raw.(string)
		if q.Required && s == "" {
			return "Required"
		}

	case KindMulti:
		if q.Required && len(toStringSlice(raw)) == 0 {
			return "Select at least one"
		}

	case KindShort, KindLong:
		s, _ := raw.(string)
		if q.Required && s == "" {
			return "Required"
		}
		max := DefaultShortMaxLength
		if q.Kind == KindLong {
			max = DefaultLongMaxLength
		}
		if q.MaxLength != nil {
			max = *q.MaxLength
		}
		if utf8.RuneCountInString(s) > max {
			return fmt.Sprintf("Max %d chars", max)
		}

	case KindNumber:
		n, present, ok := toNumber(raw)
		if !present {
			if q.Required {
				return "Required"
			}
			return ""
		}
		if !ok {
			return "Enter a number"
		}
		if q.Min != nil && n < float64(*q.Min) {
			return fmt.Sprintf("Min %d", *q.Min)
		}
		if q.Max != nil && n > float64(*q.Max) {
			return fmt.Sprintf("Max %d", *q.Max)
		}

	case KindFile:
		// upload is a stub, nothing to enforce
	}
	return ""
}

// toStringSlice normalizes a multi-choice answer. JSON decoding yields
// []any, in-process callers pass []string; anything else counts as empty.
func toStringSlice(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// toNumber coerces a number answer. present is false for a missing answer
// or empty string, ok is false when a present value is not numeric.
func toNumber(raw any) (n float64, present, ok bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false, false
	case string:
		if v == "" {
			return 0, false, false
		}
		n, err := strconv.ParseFloat(v, 64)
		return n, true, err == nil
	case float64:
		return v, true, true
	case int:
		return float64(v), true, true
	}
	return 0, true, false
}
