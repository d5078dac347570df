package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

type Configs struct {
	Env string `toml:"env"`

	ApiServer  ServerConfigs     `toml:"api_server"`
	Database   DatabaseConfigs   `toml:"database"`
	Discord    DiscordConfigs    `toml:"discord"`
	Notion     NotionConfigs     `toml:"notion"`
	StateToken StateTokenConfigs `toml:"state_token"`
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"-"`
	Password string `toml:"-"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type DiscordConfigs struct {
	// PublicKey is the hex-encoded Ed25519 application public key shown in
	// the Discord developer portal.
	PublicKey string `toml:"-"`
}

// VerifyKey decodes the configured public key. Call it once at startup;
// a malformed key must stop the process before it serves requests.
func (d *DiscordConfigs) VerifyKey() (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(d.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("cannot decode discord public key: %w", err)
	}

	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid discord public key length %d", len(raw))
	}

	return ed25519.PublicKey(raw), nil
}

type NotionConfigs struct {
	ClientID     string `toml:"-"`
	ClientSecret string `toml:"-"`

	APIURL       string `toml:"api_url"`
	AuthorizeURL string `toml:"authorize_url"`
	RedirectURI  string `toml:"redirect_uri"`
}

type StateTokenConfigs struct {
	// Key is the hex-encoded 32-byte symmetric key the state-token codec
	// encrypts Discord user ids with.
	Key string `toml:"-"`
}

func (s *StateTokenConfigs) SecretBytes() ([]byte, error) {
	raw, err := hex.DecodeString(s.Key)
	if err != nil {
		return nil, fmt.Errorf("cannot decode state token key: %w", err)
	}

	if len(raw) != 32 {
		return nil, fmt.Errorf("invalid state token key length %d", len(raw))
	}

	return raw, nil
}
