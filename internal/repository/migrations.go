package repository

import (
	"context"

	"github.com/action-register/backend/internal/entity"
	"github.com/action-register/backend/pkg/xcontext"
)

// Migrate creates or updates the credentials table. Run at startup so the
// request path can assume the table exists.
func Migrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(&entity.Credential{})
}
