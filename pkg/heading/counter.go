package heading

import "strings"

// Counter tracks the running number of each heading level.
type Counter [Levels]int

// Advance counts a heading at level and resets every deeper level.
// Levels outside 1..6 are clamped.
func (c *Counter) Advance(level int) {
	level = clampLevel(level)
	c[level-1]++
	for i := level; i < Levels; i++ {
		c[i] = 0
	}
}

// Number formats the counter as a dotted heading number.
//
// Level 1 is always present; deeper levels are included up to the deepest
// one holding a non-zero value, so skipped levels appear as 0.
func (c *Counter) Number(style Style) string {
	deepest := 0
	for i := Levels - 1; i >= 0; i-- {
		if c[i] != 0 {
			deepest = i
			break
		}
	}

	var b strings.Builder
	b.WriteString(style.Format(c[0], 1))
	for i := 1; i <= deepest; i++ {
		b.WriteByte('.')
		b.WriteString(style.Format(c[i], i+1))
	}
	return b.String()
}

func clampLevel(level int) int {
	return min(max(level, 1), Levels)
}
