package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	tab      key.Binding
	grab     key.Binding
	add      key.Binding
	remove   key.Binding
	publish  key.Binding
	pageUp   key.Binding
	pageDown key.Binding
	reload   key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:      key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l"), key.WithHelp("tab", "switch pane")),
		grab:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "grab/drop")),
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		remove:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		publish:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "publish")),
		pageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		pageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
		reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.pageUp, k.pageDown},
		{k.tab, k.grab, k.add, k.remove, k.publish},
		{k.back, k.reload, k.help, k.quit},
	}
}

// browseHelp is shown under the playlist browser.
func (k keyMap) browseHelp() []key.Binding {
	assemble := key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "assemble"))
	return []key.Binding{k.enter, k.pageDown, assemble, k.reload, k.quit}
}

// boardHelp is shown under the assembly board.
func (k keyMap) boardHelp(grabbing bool) []key.Binding {
	if grabbing {
		drop := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "drop"))
		cancel := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
		return []key.Binding{k.up, k.down, k.tab, drop, cancel}
	}
	return []key.Binding{k.tab, k.grab, k.add, k.remove, k.publish, k.back}
}
