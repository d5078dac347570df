package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultNotionAPIURL       = "https://api.notion.com"
	defaultNotionAuthorizeURL = "https://api.notion.com/v1/oauth/authorize"
)

// Load builds the process configuration. Non-secret settings come from an
// optional TOML file, secrets always from the environment. All required
// values are checked here so a misconfigured process fails at startup
// instead of per request.
func Load(path string) (*Configs, error) {
	cfg := &Configs{
		ApiServer: ServerConfigs{Port: "8080"},
		Notion: NotionConfigs{
			APIURL:       defaultNotionAPIURL,
			AuthorizeURL: defaultNotionAuthorizeURL,
		},
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("cannot load config file %s: %w", path, err)
		}
	}

	cfg.Env = getenvDefault("ENV", cfg.Env)
	cfg.Discord.PublicKey = os.Getenv("DISCORD_PUBLIC_KEY")
	cfg.StateToken.Key = os.Getenv("DISCORD_USER_ID_ENCRYPT_KEY")
	cfg.Notion.ClientID = os.Getenv("NOTION_CLIENT_ID")
	cfg.Notion.ClientSecret = os.Getenv("NOTION_CLIENT_SECRET")
	cfg.Database.User = os.Getenv("DB_USER")
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Database.Host = getenvDefault("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getenvDefault("DB_PORT", cfg.Database.Port)
	cfg.Database.Database = getenvDefault("DB_DATABASE", cfg.Database.Database)

	var missing []string
	for name, value := range map[string]string{
		"DISCORD_PUBLIC_KEY":          cfg.Discord.PublicKey,
		"DISCORD_USER_ID_ENCRYPT_KEY": cfg.StateToken.Key,
		"NOTION_CLIENT_ID":            cfg.Notion.ClientID,
		"NOTION_CLIENT_SECRET":        cfg.Notion.ClientSecret,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required environment variables: %s",
			strings.Join(missing, ", "))
	}

	if cfg.Notion.RedirectURI == "" {
		return nil, fmt.Errorf("notion redirect_uri is not configured")
	}

	return cfg, nil
}

func getenvDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
