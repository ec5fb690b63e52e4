package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Enter     key.Binding
	Back      key.Binding
	Tab       key.Binding
	ShiftTab  key.Binding
	Reset     key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
	NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b/esc", "back")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
	ShiftTab:  key.NewBinding(key.WithKeys("shift+tab")),
	Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "start over")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}

// helpFor подсказка по клавишам для шага
func helpFor(bindings ...key.Binding) string {
	var out string
	for i, b := range bindings {
		h := b.Help()
		if i > 0 {
			out += " • "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
