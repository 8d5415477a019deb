package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle     key.Binding
	Back       key.Binding
	Forward    key.Binding
	Reset      key.Binding
	Mode       key.Binding
	Faster     key.Binding
	Slower     key.Binding
	Bigger     key.Binding
	Smaller    key.Binding
	Edit       key.Binding
	Clear      key.Binding
	Start      key.Binding
	Home       key.Binding
	End        key.Binding
	Seek       key.Binding
	Paste      key.Binding
	DoneEdit   key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	editing    bool
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:    key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "play/pause")),
		Back:      key.NewBinding(key.WithKeys("left", ","), key.WithHelp("←/,", "back")),
		Forward:   key.NewBinding(key.WithKeys("right", "."), key.WithHelp("→/.", "forward")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		Faster:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Bigger:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "font+")),
		Smaller:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "font-")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Start:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "start")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Seek:      key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "seek")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		DoneEdit:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.editing {
		return []key.Binding{k.Start, k.DoneEdit, k.Paste, k.ForceQuit}
	}
	return []key.Binding{k.Toggle, k.Back, k.Forward, k.Mode, k.Faster, k.Slower, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	if k.editing {
		return [][]key.Binding{k.ShortHelp()}
	}
	return [][]key.Binding{
		{k.Toggle, k.Back, k.Forward, k.Reset},
		{k.Home, k.End, k.Seek},
		{k.Mode, k.Bigger, k.Smaller},
		{k.Faster, k.Slower},
		{k.Edit, k.Clear, k.Help, k.Quit},
	}
}
