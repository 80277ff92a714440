package model

import "strings"

// Shorthand feature markers recognized at the start of a statement's raw
// source text.
var shorthandMarkers = []string{":>>", ":>"}

// Characters terminating the name token of a shorthand feature statement.
const shorthandNameTerminators = " \t=:;["

// ShorthandName recovers the semantic name of a shorthand feature statement
// (":>> mass = 10 [kg];"-style) from its raw source text. Returns "" for
// non-shorthand statements or when no name token can be extracted. The merge
// engine unions body statements keyed on this name.
func (s *Statement) ShorthandName() string {
	if s == nil || s.Kind != StatementShorthandFeature {
		return ""
	}

	text := strings.TrimSpace(s.Text)

	for _, marker := range shorthandMarkers {
		if strings.HasPrefix(text, marker) {
			text = strings.TrimSpace(text[len(marker):])

			break
		}
	}

	if text == "" {
		return ""
	}

	if cut := strings.IndexAny(text, shorthandNameTerminators); cut >= 0 {
		text = text[:cut]
	}

	return text
}
