package discord

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ParseInteraction_Ping(t *testing.T) {
	itx, err := ParseInteraction([]byte(`{"type":1}`))
	require.NoError(t, err)
	require.IsType(t, Ping{}, itx)
}

func Test_ParseInteraction_UnknownTypeFallsBackToPing(t *testing.T) {
	for _, body := range []string{`{}`, `{"type":99}`, `{"foo":"bar"}`} {
		itx, err := ParseInteraction([]byte(body))
		require.NoError(t, err)
		require.IsType(t, Ping{}, itx)
	}
}

func Test_ParseInteraction_Malformed(t *testing.T) {
	_, err := ParseInteraction([]byte(`{not json`))
	require.Error(t, err)
}

func Test_ParseInteraction_Command(t *testing.T) {
	body := `{
		"type": 2,
		"member": {"user": {"id": "42", "username": "alice"}},
		"data": {
			"name": "act",
			"options": [{"name": "action_name", "type": 3, "value": "writing"}]
		}
	}`

	itx, err := ParseInteraction([]byte(body))
	require.NoError(t, err)

	command, ok := itx.(Command)
	require.True(t, ok)
	require.Equal(t, "act", command.Name)
	require.Equal(t, "42", command.UserID)
	require.Equal(t, "alice", command.Username)
	require.Equal(t, []CommandOption{{Name: "action_name", Value: "writing"}}, command.Options)
}

func Test_ParseInteraction_CommandWithSubcommandOptions(t *testing.T) {
	body := `{
		"type": 2,
		"member": {"user": {"id": "42", "username": "alice"}},
		"data": {
			"name": "settoken",
			"options": [{"name": "set", "type": 1, "options": [
				{"name": "token", "type": 3, "value": "secret-token"}
			]}]
		}
	}`

	itx, err := ParseInteraction([]byte(body))
	require.NoError(t, err)

	command := itx.(Command)
	require.Equal(t, []CommandOption{{Name: "token", Value: "secret-token"}}, command.Options)
}

func Test_ParseInteraction_CommandMissingRequiredFields(t *testing.T) {
	// No command name.
	_, err := ParseInteraction([]byte(`{"type":2,"member":{"user":{"id":"42"}},"data":{}}`))
	require.Error(t, err)

	// No invoking user.
	_, err = ParseInteraction([]byte(`{"type":2,"data":{"name":"act"}}`))
	require.Error(t, err)
}

func Test_ParseInteraction_Component(t *testing.T) {
	body := `{
		"type": 3,
		"member": {"user": {"id": "42", "username": "alice"}},
		"data": {"custom_id": "end"}
	}`

	itx, err := ParseInteraction([]byte(body))
	require.NoError(t, err)

	component := itx.(Component)
	require.Equal(t, "end", component.CustomID)
	require.Equal(t, "42", component.UserID)
}

func Test_ParseInteraction_ComponentMissingCustomID(t *testing.T) {
	_, err := ParseInteraction([]byte(`{"type":3,"member":{"user":{"id":"42"}},"data":{}}`))
	require.Error(t, err)
}

func Test_ParseInteraction_ModalSubmit(t *testing.T) {
	body := `{
		"type": 5,
		"member": {"user": {"id": "42"}},
		"data": {
			"custom_id": "action_register_modal",
			"components": [
				{"type": 1, "components": [{"custom_id": "action_name_input", "value": "writing"}]},
				{"type": 1, "components": [{"custom_id": "note_input", "value": ""}]}
			]
		}
	}`

	itx, err := ParseInteraction([]byte(body))
	require.NoError(t, err)

	submit := itx.(ModalSubmit)
	require.Equal(t, "action_register_modal", submit.CustomID)
	require.Equal(t, "42", submit.UserID)
	require.Equal(t, "writing", submit.Fields["action_name_input"])
}

func Test_ParseInteraction_NumericOptionValue(t *testing.T) {
	body := `{
		"type": 2,
		"member": {"user": {"id": "42"}},
		"data": {"name": "act", "options": [{"name": "count", "type": 4, "value": 3}]}
	}`

	itx, err := ParseInteraction([]byte(body))
	require.NoError(t, err)
	require.Equal(t, "3", itx.(Command).Options[0].Value)
}
