package repository

import (
	"context"

	"github.com/eslsoft/parlato/internal/entity"
)

// BrainRepository abstracts persistence for the per-user Brain document to
// keep usecases storage agnostic. Save has upsert (last-write-wins)
// semantics; Load returns (nil, nil) for an unknown user so callers can
// initialize a default Brain.
type BrainRepository interface {
	Load(ctx context.Context, userID string) (*entity.UserBrain, error)
	Save(ctx context.Context, brain *entity.UserBrain) error
}
