package repository

import (
	"context"

	"github.com/eslsoft/parlato/internal/entity"
)

// GameConfigRepository stores the admin-tunable rule set. Load returns the
// shipped defaults when no config has been saved yet; implementations must
// normalize partially edited documents before handing them to engines.
type GameConfigRepository interface {
	Load(ctx context.Context) (*entity.GameConfig, error)
	Save(ctx context.Context, cfg *entity.GameConfig) error
}
