package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Points     key.Binding
	Lines      key.Binding
	Polys      key.Binding
	Layers     key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Files      key.Binding
	Open       key.Binding
	Paste      key.Binding
	Help       key.Binding
	Attrs      key.Binding
	Next       key.Binding
	Prev       key.Binding
	Buffer     key.Binding
	Union      key.Binding
	Merge      key.Binding
	Split      key.Binding
	Reload     key.Binding
	Inspect    key.Binding
	GridScroll key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Points:  key.NewBinding(key.WithKeys("1")),
	Lines:   key.NewBinding(key.WithKeys("2")),
	Polys:   key.NewBinding(key.WithKeys("3")),
	Layers:  key.NewBinding(key.WithKeys("l")),
	ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
	ZoomOut: key.NewBinding(key.WithKeys("-", "_")),
	Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓←→", "pan")),
	Down:    key.NewBinding(key.WithKeys("down")),
	Left:    key.NewBinding(key.WithKeys("left")),
	Right:   key.NewBinding(key.WithKeys("right")),
	Files:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "files")),
	Open:    key.NewBinding(key.WithKeys("enter")),
	Paste:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
	Help:    key.NewBinding(key.WithKeys("h")),
	Attrs:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attrs")),
	Next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n/N", "select")),
	Prev:    key.NewBinding(key.WithKeys("N")),
	Buffer:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "buffer")),
	Union:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "union")),
	Merge:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "merge")),
	Split:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "split")),
	Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Inspect: key.NewBinding(key.WithKeys("i")),
	// forwarded to the attribute grid while it is open
	GridScroll: key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown", "home", "end")),
}

// ShortHelp lists the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.ZoomIn, k.Next, k.Attrs, k.Buffer, k.Union,
		k.Merge, k.Split, k.Reload, k.Paste, k.Files, k.Quit,
	}
}
