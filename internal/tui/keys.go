package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/thenoetrevino/boardsync/internal/config"
)

// keyMap holds the active bindings. Arrow keys always work alongside the
// configured letters.
type keyMap struct {
	AddCard    key.Binding
	AddColumn  key.Binding
	Rename     key.Binding
	Delete     key.Binding
	Grab       key.Binding
	Drop       key.Binding
	Cancel     key.Binding
	PrevColumn key.Binding
	NextColumn key.Binding
	PrevCard   key.Binding
	NextCard   key.Binding
	Reload     key.Binding
	Retry      key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	Confirm    key.Binding
	Deny       key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		AddCard:    key.NewBinding(key.WithKeys(km.AddCard), key.WithHelp(km.AddCard, "add card")),
		AddColumn:  key.NewBinding(key.WithKeys(km.AddColumn), key.WithHelp(km.AddColumn, "add column")),
		Rename:     key.NewBinding(key.WithKeys(km.Rename), key.WithHelp(km.Rename, "rename")),
		Delete:     key.NewBinding(key.WithKeys(km.Delete), key.WithHelp(km.Delete, "delete")),
		Grab:       key.NewBinding(key.WithKeys(km.Grab), key.WithHelp(km.Grab, "grab")),
		Drop:       key.NewBinding(key.WithKeys(km.Drop), key.WithHelp(km.Drop, "drop")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		PrevColumn: key.NewBinding(key.WithKeys(km.PrevColumn, "left"), key.WithHelp(km.PrevColumn+"/←", "prev column")),
		NextColumn: key.NewBinding(key.WithKeys(km.NextColumn, "right"), key.WithHelp(km.NextColumn+"/→", "next column")),
		PrevCard:   key.NewBinding(key.WithKeys(km.PrevCard, "up"), key.WithHelp(km.PrevCard+"/↑", "prev card")),
		NextCard:   key.NewBinding(key.WithKeys(km.NextCard, "down"), key.WithHelp(km.NextCard+"/↓", "next card")),
		Reload:     key.NewBinding(key.WithKeys(km.Reload), key.WithHelp(km.Reload, "reload")),
		Retry:      key.NewBinding(key.WithKeys("r", km.Reload), key.WithHelp("r", "retry")),
		Help:       key.NewBinding(key.WithKeys(km.ShowHelp), key.WithHelp(km.ShowHelp, "help")),
		Quit:       key.NewBinding(key.WithKeys(km.Quit), key.WithHelp(km.Quit, "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
		Confirm:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		Deny:       key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	}
}

// ShortHelp is shown in the status bar
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.AddCard, k.AddColumn, k.Help, k.Quit}
}

// DragHelp is shown in the status bar while a drag is active
func (k keyMap) DragHelp() []key.Binding {
	return []key.Binding{k.PrevColumn, k.NextColumn, k.PrevCard, k.NextCard, k.Drop, k.Cancel}
}

// FullHelp is shown in the help overlay
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevCard, k.NextCard},
		{k.Grab, k.Drop, k.Cancel},
		{k.AddCard, k.AddColumn, k.Rename, k.Delete},
		{k.Reload, k.Help, k.Quit},
	}
}
