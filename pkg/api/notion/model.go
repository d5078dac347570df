package notion

// OAuthToken is the workspace descriptor returned by the Notion OAuth
// token exchange. DuplicatedTemplateID is empty when the user authorized
// without duplicating the required template; callers must treat that as
// an incomplete link, not an error.
type OAuthToken struct {
	AccessToken          string `mapstructure:"access_token"`
	BotID                string `mapstructure:"bot_id"`
	WorkspaceID          string `mapstructure:"workspace_id"`
	WorkspaceName        string `mapstructure:"workspace_name"`
	WorkspaceIcon        string `mapstructure:"workspace_icon"`
	DuplicatedTemplateID string `mapstructure:"duplicated_template_id"`

	Owner Owner `mapstructure:"owner"`
}

type Owner struct {
	User OwnerUser `mapstructure:"user"`
}

type OwnerUser struct {
	ID string `mapstructure:"id"`
}

// Pages are the three database pages discovered inside a duplicated
// template.
type Pages struct {
	ActionPageID   string
	CategoryPageID string
	TaskPageID     string
}
