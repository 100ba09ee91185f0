package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding of the main screen. Bindings that do nothing
// in the current state are disabled by enabledKeys so the help bar only
// lists what works.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Focus    key.Binding

	Select  key.Binding
	Delete  key.Binding
	Refresh key.Binding

	UploadRFP   key.Binding
	UploadOrg   key.Binding
	EditPrompt  key.Binding
	ResetPrompt key.Binding
	Generate    key.Binding
	Download    key.Binding
	NewSession  key.Binding

	NextSection   key.Binding
	PrevSection   key.Binding
	ToggleSection key.Binding
	CollapseAll   key.Binding

	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", "page down"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load session"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete session"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		UploadRFP: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload RFP"),
		),
		UploadOrg: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "upload org"),
		),
		EditPrompt: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit prompt"),
		),
		ResetPrompt: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset prompt"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		NewSession: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "start over"),
		),
		NextSection: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev section"),
		),
		ToggleSection: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "fold section"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "fold all"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the help bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.UploadRFP, k.UploadOrg, k.EditPrompt, k.Generate, k.Download,
		k.Select, k.Delete, k.Focus, k.Help, k.Quit,
	}
}

// FullHelp returns the bindings shown in the help overlay, grouped.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.UploadRFP, k.UploadOrg, k.EditPrompt, k.ResetPrompt, k.Generate, k.Download, k.NewSession},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Focus, k.Select, k.Delete, k.Refresh},
		{k.NextSection, k.PrevSection, k.ToggleSection, k.CollapseAll, k.Help, k.Quit},
	}
}
