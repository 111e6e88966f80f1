package rtf

import "strings"

// superscriptDigits maps '0'..'9' to their unicode superscript forms, the
// convention used to mark verse numbers inside otherwise plain text.
var superscriptDigits = [10]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

// IsSuperscriptDigit reports whether r is a unicode superscript digit.
func IsSuperscriptDigit(r rune) bool {
	for _, d := range superscriptDigits {
		if r == d {
			return true
		}
	}
	return false
}

func superscriptToDigit(r rune) rune {
	for i, d := range superscriptDigits {
		if r == d {
			return rune('0' + i)
		}
	}
	return r
}

// Superscript converts a number's decimal digits to unicode superscript form.
func Superscript(n uint) string {
	var b strings.Builder
	for _, c := range []rune(uintString(n)) {
		b.WriteRune(superscriptDigits[c-'0'])
	}
	return b.String()
}

func uintString(n uint) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// RunsFromMarkedText converts text carrying unicode superscript digit spans
// (e.g. "¹⁵For God so loved") into a run list where each span becomes a
// superscript run of ASCII digits and the surrounding text stays plain.
func RunsFromMarkedText(text string) []Run {
	var runs []Run
	var cur strings.Builder
	inSuper := false

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		runs = append(runs, Run{Text: cur.String(), Superscript: inSuper})
		cur.Reset()
	}

	for _, r := range text {
		if IsSuperscriptDigit(r) != inSuper {
			flush()
			inSuper = !inSuper
		}
		if inSuper {
			cur.WriteRune(superscriptToDigit(r))
		} else {
			cur.WriteRune(r)
		}
	}
	flush()
	return runs
}

// MarkedTextFromRuns is the inverse of RunsFromMarkedText: superscript runs
// of digits fold back into unicode superscript characters.
func MarkedTextFromRuns(runs []Run) string {
	var b strings.Builder
	for _, run := range runs {
		if run.Superscript {
			for _, r := range run.Text {
				if r >= '0' && r <= '9' {
					b.WriteRune(superscriptDigits[r-'0'])
				} else {
					b.WriteRune(r)
				}
			}
			continue
		}
		b.WriteString(run.Text)
	}
	return b.String()
}
