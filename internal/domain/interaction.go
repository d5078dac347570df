package domain

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/action-register/backend/internal/entity"
	"github.com/action-register/backend/internal/repository"
	"github.com/action-register/backend/pkg/crypto"
	"github.com/action-register/backend/pkg/discord"
	"github.com/action-register/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const timeLayout = "2006/01/02 15:04:05"

// endButtonID ties the button rendered by /act to the component handler
// that opens the registration modal.
const endButtonID = "end"

const registerModalID = "action_register_modal"

// InteractionDomain routes a verified, classified interaction to its
// handler. Failures inside a handler become in-band chat messages: once a
// payload is classified, Discord must receive exactly one well-formed
// callback, never a server error.
type InteractionDomain interface {
	Handle(ctx context.Context, itx discord.Interaction) discord.Response
}

type commandHandler func(ctx context.Context, command discord.Command) discord.Response

type interactionDomain struct {
	credentialRepo repository.CredentialRepository
	stateCodec     *crypto.StateTokenCodec

	commands map[string]commandHandler
	now      func() time.Time
}

func NewInteractionDomain(
	credentialRepo repository.CredentialRepository,
	stateCodec *crypto.StateTokenCodec,
) InteractionDomain {
	d := &interactionDomain{
		credentialRepo: credentialRepo,
		stateCodec:     stateCodec,
		now:            time.Now,
	}

	// New commands are registered here, not branched on inside Handle.
	d.commands = map[string]commandHandler{
		"settoken":        d.setToken,
		"notion-register": d.notionRegister,
		"act":             d.act,
	}

	return d
}

func (d *interactionDomain) Handle(ctx context.Context, itx discord.Interaction) discord.Response {
	switch v := itx.(type) {
	case discord.Command:
		handler, ok := d.commands[v.Name]
		if !ok {
			xcontext.Logger(ctx).Warnf("Received an unknown command %s", v.Name)
			return discord.ChannelMessage{Content: fmt.Sprintf("Unknown command: %s", v.Name)}
		}
		return handler(ctx, v)

	case discord.Component:
		return d.component(ctx, v)

	case discord.ModalSubmit:
		// Persisting the submitted action is not implemented yet; the modal
		// still needs a well-formed acknowledgment.
		xcontext.Logger(ctx).Infof("Received a modal submit %s from user %s", v.CustomID, v.UserID)
		return discord.ChannelMessage{Content: "Received your action details."}

	default:
		return discord.PongResponse{}
	}
}

// setToken registers a bare bot token for the invoking user. This path is
// local and synchronous: the only call besides building the reply is the
// credential store write.
func (d *interactionDomain) setToken(ctx context.Context, command discord.Command) discord.Response {
	err := d.credentialRepo.Upsert(ctx, &entity.Credential{
		PartitionKey: entity.DiscordPartition,
		UserID:       command.UserID,
		Username:     command.Username,
		BotToken:     firstOptionValue(command),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store the token of user %s: %v", command.UserID, err)
		return discord.ChannelMessage{
			Content: fmt.Sprintf("Failed to register %s's token.", command.Username),
		}
	}

	return discord.ChannelMessage{
		Content: fmt.Sprintf("Registered %s's token.", command.Username),
	}
}

// notionRegister mints a fresh state token for the invoking user and
// replies with a link button to the Notion authorization page. No store
// access happens here; the user identity travels inside the state
// parameter. Repeated calls mint new tokens, all of them valid.
func (d *interactionDomain) notionRegister(ctx context.Context, command discord.Command) discord.Response {
	state, err := d.stateCodec.Encode(command.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode a state token for user %s: %v", command.UserID, err)
		return discord.ChannelMessage{Content: "Failed to generate a Notion link. Please try again."}
	}

	notionConfigs := xcontext.Configs(ctx).Notion
	query := url.Values{}
	query.Set("client_id", notionConfigs.ClientID)
	query.Set("response_type", "code")
	query.Set("owner", "user")
	query.Set("redirect_uri", notionConfigs.RedirectURI)
	query.Set("state", state)

	return discord.ChannelMessage{
		Content: "Generated your Notion link. Use the button below to connect.\n" +
			"**This link is tied to your account. Never share it with anyone!**",
		Buttons: []discord.Button{{
			Style: discord.ButtonStyleLink,
			Label: "Connect to Notion",
			URL:   notionConfigs.AuthorizeURL + "?" + query.Encode(),
		}},
	}
}

// act starts a new action for a registered user. Nothing is persisted;
// the in-progress action exists only in the rendered message, and the end
// button carries no action identity back (see DESIGN.md).
func (d *interactionDomain) act(ctx context.Context, command discord.Command) discord.Response {
	if _, err := d.credentialRepo.GetByUserID(ctx, command.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return discord.ChannelMessage{
				Content: "Your token is not registered yet. Please register a token first.",
			}
		}

		xcontext.Logger(ctx).Errorf("Cannot look up the credential of user %s: %v", command.UserID, err)
		return discord.ChannelMessage{Content: "Failed to look up your registration. Please try again."}
	}

	actionName := firstOptionValue(command)
	if actionName == "" {
		actionName = "(unregistered)"
	}

	return discord.ChannelMessage{
		Content: "Started a new action.",
		Embed: &discord.Embed{
			Title: "New action",
			Color: 0x0060ff,
			Fields: []discord.EmbedField{
				{Name: "Action name", Value: actionName},
				{Name: "Start time", Value: d.now().Format(timeLayout)},
			},
		},
		Buttons: []discord.Button{{
			Style:    discord.ButtonStyleDanger,
			Label:    "End action",
			CustomID: endButtonID,
		}},
	}
}

// component handles the end button: it opens the registration modal
// pre-filled with the end time. The action name and start time are static
// placeholders until actions gain a persisted identity.
func (d *interactionDomain) component(ctx context.Context, component discord.Component) discord.Response {
	if component.CustomID != endButtonID {
		xcontext.Logger(ctx).Warnf("Received an unknown component %s", component.CustomID)
		return discord.PongResponse{}
	}

	if _, err := d.credentialRepo.GetByUserID(ctx, component.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return discord.ChannelMessage{
				Content: "Your token is not registered yet. Please register a token first.",
			}
		}

		xcontext.Logger(ctx).Errorf("Cannot look up the credential of user %s: %v", component.UserID, err)
		return discord.ChannelMessage{Content: "Failed to look up your registration. Please try again."}
	}

	return discord.Modal{
		CustomID: registerModalID,
		Title:    "Register action",
		Inputs: []discord.TextInput{
			{
				CustomID:    "action_name_input",
				Label:       "Action name",
				Placeholder: "Enter the action name",
				Value:       "name_test",
				Style:       discord.TextInputShort,
				MinLength:   1,
				MaxLength:   100,
			},
			{
				CustomID:    "start_time_input",
				Label:       "Start time",
				Placeholder: "(format: yyyy/mm/dd hh:mm:ss)",
				Value:       "time_test",
				Style:       discord.TextInputShort,
				MaxLength:   30,
			},
			{
				CustomID:    "end_time_input",
				Label:       "End time",
				Placeholder: "(format: yyyy/mm/dd hh:mm:ss)",
				Value:       d.now().Format(timeLayout),
				Style:       discord.TextInputShort,
				MaxLength:   30,
			},
			{
				CustomID:    "note_input",
				Label:       "Note (optional)",
				Placeholder: "Enter a note",
				Style:       discord.TextInputParagraph,
				MaxLength:   4000,
				Optional:    true,
			},
		},
	}
}

func firstOptionValue(command discord.Command) string {
	if len(command.Options) == 0 {
		return ""
	}
	return command.Options[0].Value
}
