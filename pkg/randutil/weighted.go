// Package randutil provides small selection helpers parameterized by an
// injectable random source, so callers can supply deterministic sequences
// in tests.
package randutil

// Source is the minimal randomness interface the engine depends on.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Weighted pairs an option with its selection weight.
type Weighted[T any] struct {
	Option T
	Weight int
}

// Choose draws one option proportionally to its weight by walking cumulative
// thresholds. Options with non-positive weight are skipped. Returns false
// when no option carries positive weight.
func Choose[T any](options []Weighted[T], src Source) (T, bool) {
	var zero T
	total := 0
	for _, opt := range options {
		if opt.Weight > 0 {
			total += opt.Weight
		}
	}
	if total <= 0 {
		return zero, false
	}

	draw := src.Intn(total)
	cursor := 0
	for _, opt := range options {
		if opt.Weight <= 0 {
			continue
		}
		cursor += opt.Weight
		if draw < cursor {
			return opt.Option, true
		}
	}
	return zero, false
}

// Pick draws uniformly from a slice. Returns false on an empty slice.
func Pick[T any](items []T, src Source) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[src.Intn(len(items))], true
}
