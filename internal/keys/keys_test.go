package keys_test

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/nhle/project-tracker/internal/i18n"
	"github.com/nhle/project-tracker/internal/keys"
)

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := keys.DefaultKeyMap(i18n.MustLoad().Localizer("en"))

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"n creates", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, km.New},
		{"plus creates", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")}, km.New},
		{"space toggles", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, km.Toggle},
		{"x toggles", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, km.Toggle},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, km.Back},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{"colon opens palette", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")}, km.Command},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestFullHelp_IncludesEveryAction(t *testing.T) {
	km := keys.DefaultKeyMap(i18n.MustLoad().Localizer("en"))
	var n int
	for _, group := range km.FullHelp() {
		n += len(group)
	}
	assert.Equal(t, 11, n)
}

func TestDefaultKeyMap_HelpFollowsLocale(t *testing.T) {
	catalog := i18n.MustLoad()

	es := keys.DefaultKeyMap(catalog.Localizer("es"))
	assert.Equal(t, "marcar hecho", es.Toggle.Help().Desc)
	assert.Equal(t, "espacio/x", es.Toggle.Help().Key)
	assert.Equal(t, "abrir proyecto", es.Select.Help().Desc)
	assert.Equal(t, "salir", es.Quit.Help().Desc)

	en := keys.DefaultKeyMap(catalog.Localizer("en"))
	assert.Equal(t, "toggle done", en.Toggle.Help().Desc)
	assert.Equal(t, "space/x", en.Toggle.Help().Key)
}
