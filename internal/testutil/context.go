package testutil

import (
	"context"
	"testing"

	"github.com/action-register/backend/config"
	"github.com/action-register/backend/internal/repository"
	"github.com/action-register/backend/pkg/logger"
	"github.com/action-register/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockContext returns a context carrying a migrated in-memory database, a
// silent logger, and test configs, mirroring what the server installs on
// every request.
func MockContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	ctx := context.Background()
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithConfigs(ctx, MockConfigs())

	require.NoError(t, repository.Migrate(ctx))
	return ctx
}

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "test",
		Notion: config.NotionConfigs{
			ClientID:     "notion-client-id",
			ClientSecret: "notion-client-secret",
			APIURL:       "https://api.notion.com",
			AuthorizeURL: "https://api.notion.com/v1/oauth/authorize",
			RedirectURI:  "https://example.com/api/notion-registration-redirect",
		},
	}
}
