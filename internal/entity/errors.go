package entity

import "errors"

// Domain errors for the progression engine and related aggregates.
var (
	ErrUnknownVerb            = errors.New("verb not found in catalog")
	ErrConjugationUnavailable = errors.New("no conjugation rule for verb and tense")
	ErrInsufficientFunds      = errors.New("insufficient XP balance")
	ErrItemAlreadyOwned       = errors.New("item already owned")
	ErrUnknownItem            = errors.New("store item not found")
	ErrStoryLocked            = errors.New("story mode not yet unlocked")
	ErrMilestoneLocked        = errors.New("milestone exam not available")
	ErrBossLocked             = errors.New("boss fight not available")
	ErrInvalidEvent           = errors.New("invalid progression event")
	ErrContentUnavailable     = errors.New("content generation failed")
)
