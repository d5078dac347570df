package discord

import (
	"encoding/json"
	"fmt"
)

// Interaction request types.
// https://discord.com/developers/docs/interactions/receiving-and-responding#interaction-object-interaction-type
const (
	InteractionPing               = 1
	InteractionApplicationCommand = 2
	InteractionMessageComponent   = 3
	InteractionModalSubmit        = 5
)

// Interaction is the closed set of payload kinds this service handles.
// Each variant carries its required fields only; a payload missing a
// required field of its kind fails classification in ParseInteraction
// instead of surfacing as an empty field in a handler.
type Interaction interface {
	interaction()
}

type Ping struct{}

type Command struct {
	Name     string
	UserID   string
	Username string
	Options  []CommandOption
}

type CommandOption struct {
	Name  string
	Value string
}

type Component struct {
	CustomID string
	UserID   string
}

type ModalSubmit struct {
	CustomID string
	UserID   string
	Fields   map[string]string
}

func (Ping) interaction()        {}
func (Command) interaction()     {}
func (Component) interaction()   {}
func (ModalSubmit) interaction() {}

// The wire shapes below are partial.
// https://discord.com/developers/docs/interactions/receiving-and-responding#interaction-object
type interactionPayload struct {
	Type   int            `json:"type"`
	ID     string         `json:"id"`
	Token  string         `json:"token"`
	Member *memberPayload `json:"member"`
	Data   *dataPayload   `json:"data"`
}

type memberPayload struct {
	User userPayload `json:"user"`
}

type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type dataPayload struct {
	Name       string             `json:"name"`
	CustomID   string             `json:"custom_id"`
	Options    []optionPayload    `json:"options"`
	Components []actionRowPayload `json:"components"`
}

type optionPayload struct {
	Name    string          `json:"name"`
	Value   json.RawMessage `json:"value"`
	Options []optionPayload `json:"options"`
}

type actionRowPayload struct {
	Type       int               `json:"type"`
	Components []inputRowPayload `json:"components"`
}

type inputRowPayload struct {
	CustomID string `json:"custom_id"`
	Value    string `json:"value"`
}

// ParseInteraction classifies a verified request body into one of the
// Interaction variants. An unknown or absent type field falls back to
// Ping, matching the behavior Discord expects for its liveness checks. An
// unparseable body or a known type missing its required fields is an
// error.
func ParseInteraction(body []byte) (Interaction, error) {
	var payload interactionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("cannot parse interaction payload: %w", err)
	}

	switch payload.Type {
	case InteractionApplicationCommand:
		return parseCommand(payload)
	case InteractionMessageComponent:
		return parseComponent(payload)
	case InteractionModalSubmit:
		return parseModalSubmit(payload)
	default:
		return Ping{}, nil
	}
}

func parseCommand(payload interactionPayload) (Interaction, error) {
	if payload.Data == nil || payload.Data.Name == "" {
		return nil, fmt.Errorf("command interaction without a command name")
	}

	if payload.Member == nil || payload.Member.User.ID == "" {
		return nil, fmt.Errorf("command interaction without an invoking user")
	}

	return Command{
		Name:     payload.Data.Name,
		UserID:   payload.Member.User.ID,
		Username: payload.Member.User.Username,
		Options:  flattenOptions(payload.Data.Options),
	}, nil
}

func parseComponent(payload interactionPayload) (Interaction, error) {
	if payload.Data == nil || payload.Data.CustomID == "" {
		return nil, fmt.Errorf("component interaction without a custom id")
	}

	if payload.Member == nil || payload.Member.User.ID == "" {
		return nil, fmt.Errorf("component interaction without an invoking user")
	}

	return Component{
		CustomID: payload.Data.CustomID,
		UserID:   payload.Member.User.ID,
	}, nil
}

func parseModalSubmit(payload interactionPayload) (Interaction, error) {
	if payload.Data == nil || payload.Data.CustomID == "" {
		return nil, fmt.Errorf("modal submit interaction without a custom id")
	}

	submit := ModalSubmit{
		CustomID: payload.Data.CustomID,
		Fields:   map[string]string{},
	}

	if payload.Member != nil {
		submit.UserID = payload.Member.User.ID
	}

	for _, row := range payload.Data.Components {
		for _, input := range row.Components {
			if input.CustomID != "" {
				submit.Fields[input.CustomID] = input.Value
			}
		}
	}

	return submit, nil
}

// flattenOptions walks subcommand groups down to their leaf values, so the
// command table sees one ordered option list no matter how the command was
// declared.
func flattenOptions(options []optionPayload) []CommandOption {
	var result []CommandOption
	for _, option := range options {
		if len(option.Options) > 0 {
			result = append(result, flattenOptions(option.Options)...)
			continue
		}

		result = append(result, CommandOption{
			Name:  option.Name,
			Value: decodeOptionValue(option.Value),
		})
	}

	return result
}

// Option values arrive as strings, numbers, or booleans. The commands here
// only care about the textual form.
func decodeOptionValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var asAny any
	if err := json.Unmarshal(raw, &asAny); err == nil {
		return fmt.Sprintf("%v", asAny)
	}

	return string(raw)
}
