package presentation

import (
	"fmt"

	"proflow/core/errors"
)

// Validate checks the structural invariants of a decoded document. The
// critical one is tag/payload agreement on every action: a mismatch is
// fatal because the consuming application renders such documents silently
// wrong instead of erroring.
func Validate(doc *Document) error {
	for ci, cue := range doc.Cues {
		for ai, act := range cue.Actions {
			declared := act.Type
			actual := act.PayloadType()
			if declared != actual && declared != ActionTypeNone {
				return &errors.TypeTagMismatchError{
					Path:     fmt.Sprintf("cue[%d].action[%d]", ci, ai),
					Declared: declared.String(),
					Actual:   actual.String(),
				}
			}
			if act.Slide != nil && act.Prop != nil {
				return &errors.TypeTagMismatchError{
					Path:     fmt.Sprintf("cue[%d].action[%d]", ci, ai),
					Declared: declared.String(),
					Actual:   "multiple payloads",
				}
			}
		}
	}
	return nil
}

// StyleEquivalent reports whether two elements carry the same visual style:
// everything except identity and the text payload itself.
func StyleEquivalent(a, b *Element) bool {
	if a.Bounds != b.Bounds {
		return false
	}
	if a.IsText() != b.IsText() {
		return false
	}
	if a.IsText() {
		at, bt := a.Text, b.Text
		if !at.Font.Equal(bt.Font) || at.Color != bt.Color || at.Alignment != bt.Alignment {
			return false
		}
		if (at.Shadow == nil) != (bt.Shadow == nil) {
			return false
		}
		if at.Shadow != nil && !at.Shadow.Equal(*bt.Shadow) {
			return false
		}
	}
	if (a.Media == nil) != (b.Media == nil) {
		return false
	}
	if a.Media != nil && !a.Media.Equal(*b.Media) {
		return false
	}
	return true
}
