package dialogue

import "strings"

// Measure returns the rendered width of a string in pixels.
type Measure func(s string) float64

// RuneWidth measures every rune as w pixels wide. It is the fallback when
// no font metrics are available.
func RuneWidth(w float64) Measure {
	return func(s string) float64 {
		return float64(len([]rune(s))) * w
	}
}

// Wrap breaks text into lines no wider than maxWidth. Words are split on
// single spaces and packed greedily; a word is appended while the test line
// measures strictly less than maxWidth. The first word always starts a
// line, even when it alone is too wide.
func Wrap(text string, maxWidth float64, measure Measure) []string {
	if text == "" {
		return nil
	}
	words := strings.Split(text, " ")
	lines := make([]string, 0, 2)
	current := words[0]
	for _, w := range words[1:] {
		test := current + " " + w
		if measure(test) < maxWidth {
			current = test
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}
