package discord

// Interaction callback types.
// https://discord.com/developers/docs/interactions/receiving-and-responding#interaction-response-object-interaction-callback-type
const (
	CallbackPong           = 1
	CallbackChannelMessage = 4
	CallbackModal          = 9
)

// Message component types.
const (
	ComponentActionRow = 1
	ComponentButton    = 2
	ComponentTextInput = 4
)

// Button styles.
const (
	ButtonStyleDanger = 4
	ButtonStyleLink   = 5
)

// Text input styles.
const (
	TextInputShort     = 1
	TextInputParagraph = 2
)

// Response is the typed result of handling an interaction, decoupled from
// the callback wire shape produced by Render.
type Response interface {
	response()
}

type PongResponse struct{}

type ChannelMessage struct {
	Content string
	Embed   *Embed
	Buttons []Button
}

type Modal struct {
	CustomID string
	Title    string
	Inputs   []TextInput
}

func (PongResponse) response()   {}
func (ChannelMessage) response() {}
func (Modal) response()          {}

type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type Button struct {
	Style    int
	Label    string
	CustomID string
	URL      string
}

type TextInput struct {
	CustomID    string
	Label       string
	Placeholder string
	Value       string
	Style       int
	MinLength   int
	MaxLength   int
	Optional    bool
}

// Callback is the wire response Discord expects for an interaction.
type Callback struct {
	Type int           `json:"type"`
	Data *CallbackData `json:"data,omitempty"`
}

type CallbackData struct {
	Content    string      `json:"content,omitempty"`
	Embeds     []embedWire `json:"embeds,omitempty"`
	Components []actionRow `json:"components,omitempty"`
	CustomID   string      `json:"custom_id,omitempty"`
	Title      string      `json:"title,omitempty"`
}

type embedWire struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Color       int              `json:"color"`
	Fields      []embedFieldWire `json:"fields,omitempty"`
}

type embedFieldWire struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type actionRow struct {
	Type       int   `json:"type"`
	Components []any `json:"components"`
}

type buttonWire struct {
	Type     int    `json:"type"`
	Style    int    `json:"style"`
	Label    string `json:"label"`
	CustomID string `json:"custom_id,omitempty"`
	URL      string `json:"url,omitempty"`
}

type textInputWire struct {
	Type        int    `json:"type"`
	CustomID    string `json:"custom_id"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Value       string `json:"value"`
	Style       int    `json:"style"`
	MinLength   int    `json:"min_length,omitempty"`
	MaxLength   int    `json:"max_length,omitempty"`
	Required    bool   `json:"required"`
}

// Render converts a typed Response into the callback wire shape. It is a
// pure function; the Response variants constructed by the interaction
// domain are always renderable.
func Render(resp Response) Callback {
	switch r := resp.(type) {
	case ChannelMessage:
		return renderChannelMessage(r)
	case Modal:
		return renderModal(r)
	default:
		return Callback{Type: CallbackPong}
	}
}

func renderChannelMessage(msg ChannelMessage) Callback {
	data := &CallbackData{Content: msg.Content}

	if msg.Embed != nil {
		embed := embedWire{
			Title:       msg.Embed.Title,
			Description: msg.Embed.Description,
			Color:       msg.Embed.Color,
		}
		for _, field := range msg.Embed.Fields {
			embed.Fields = append(embed.Fields, embedFieldWire(field))
		}
		data.Embeds = []embedWire{embed}
	}

	if len(msg.Buttons) > 0 {
		row := actionRow{Type: ComponentActionRow}
		for _, button := range msg.Buttons {
			row.Components = append(row.Components, buttonWire{
				Type:     ComponentButton,
				Style:    button.Style,
				Label:    button.Label,
				CustomID: button.CustomID,
				URL:      button.URL,
			})
		}
		data.Components = []actionRow{row}
	}

	return Callback{Type: CallbackChannelMessage, Data: data}
}

func renderModal(modal Modal) Callback {
	data := &CallbackData{
		CustomID: modal.CustomID,
		Title:    modal.Title,
	}

	// One text input per action row, as required by the modal schema.
	for _, input := range modal.Inputs {
		data.Components = append(data.Components, actionRow{
			Type: ComponentActionRow,
			Components: []any{textInputWire{
				Type:        ComponentTextInput,
				CustomID:    input.CustomID,
				Label:       input.Label,
				Placeholder: input.Placeholder,
				Value:       input.Value,
				Style:       input.Style,
				MinLength:   input.MinLength,
				MaxLength:   input.MaxLength,
				Required:    !input.Optional,
			}},
		})
	}

	return Callback{Type: CallbackModal, Data: data}
}
