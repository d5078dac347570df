package entity

import "time"

// DiscordPartition is the partition key of every credential written by the
// Discord-facing handlers. Other chat platforms would get their own
// partition.
const DiscordPartition = "discord"

// Credential links a chat-platform user to their registered token and, once
// the OAuth flow completes, to a Notion workspace. A re-link overwrites the
// whole record; fields are never merged across writes.
type Credential struct {
	PartitionKey string `gorm:"primaryKey"`
	UserID       string `gorm:"primaryKey"`

	Username string
	BotToken string

	NotionAccessToken    string
	NotionUserID         string
	WorkspaceID          string
	WorkspaceName        string
	WorkspaceIcon        string
	BotID                string
	DuplicatedTemplateID string

	// Page ids discovered inside the duplicated template.
	ActionPageID   string
	CategoryPageID string
	TaskPageID     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Credential) TableName() string {
	return "credentials"
}
