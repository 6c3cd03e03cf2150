package entity

import "strings"

// Level represents a CEFR proficiency level used to bucket catalog content.
type Level string

const (
	LevelUnspecified Level = ""
	LevelA1          Level = "A1"
	LevelA2          Level = "A2"
	LevelB1          Level = "B1"
	LevelB2          Level = "B2"
	LevelC1          Level = "C1"
)

// OrderedLevels lists all levels from easiest to hardest.
var OrderedLevels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1}

// Index returns the position of the level in the A1→C1 ordering, or -1.
func (l Level) Index() int {
	for i, lvl := range OrderedLevels {
		if lvl == l {
			return i
		}
	}
	return -1
}

// Next returns the level one step above, or false when already at the top.
func (l Level) Next() (Level, bool) {
	idx := l.Index()
	if idx < 0 || idx >= len(OrderedLevels)-1 {
		return l, false
	}
	return OrderedLevels[idx+1], true
}

// Through returns every level from A1 up to and including l.
// A B1 user may review A1 and A2 material, so its buckets are A1..B1.
func (l Level) Through() []Level {
	idx := l.Index()
	if idx < 0 {
		return []Level{LevelA1}
	}
	return OrderedLevels[:idx+1]
}

// NormalizeLevel ensures the level falls back to a supported value (defaults to A1).
func NormalizeLevel(l Level) Level {
	if l.Index() < 0 {
		return LevelA1
	}
	return l
}

// ParseLevel converts an arbitrary string into a supported Level value.
func ParseLevel(code string) Level {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "A1":
		return LevelA1
	case "A2":
		return LevelA2
	case "B1":
		return LevelB1
	case "B2":
		return LevelB2
	case "C1":
		return LevelC1
	default:
		return LevelUnspecified
	}
}
