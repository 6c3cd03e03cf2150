package usecase

// ProgressPercent measures catalog coverage: the share of cataloged verbs
// the user has answered correctly at least once, in [0,100].
func ProgressPercent(discovered, catalogSize int) float64 {
	if catalogSize <= 0 {
		return 0
	}
	if discovered > catalogSize {
		discovered = catalogSize
	}
	return float64(discovered) / float64(catalogSize) * 100
}
