package keys

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/nhle/project-tracker/internal/i18n"
)

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Actions on the focused project or checkpoint
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Toggle key.Binding
}

// DefaultKeyMap returns the default set of keybindings with help text from
// loc.
func DefaultKeyMap(loc *i18n.Localizer) *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", loc.T("keys.down")),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", loc.T("keys.up")),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", loc.T("keys.select")),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", loc.T("keys.back")),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", loc.T("keys.quit")),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", loc.T("keys.command")),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", loc.T("keys.help")),
		),
		New: key.NewBinding(
			key.WithKeys("n", "+"),
			key.WithHelp("n/+", loc.T("keys.new")),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", loc.T("keys.edit")),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", loc.T("keys.delete")),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp(loc.T("keys.space")+"/x", loc.T("keys.toggle")),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.New, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.New, k.Edit, k.Delete, k.Toggle},
		{k.Command, k.Help},
	}
}
