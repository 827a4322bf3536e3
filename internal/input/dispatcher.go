package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/osmet/vitals/internal/sampler"
)

// ActionKind names one routed user action, per spec.md §4.7's "action
// routing" table.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionToggleTree
	ActionToggleReverse
	ActionTogglePerCore
	ActionToggleFilterMode
	ActionSortChanged
	ActionSelectUp
	ActionSelectDown
	ActionSelectPageUp
	ActionSelectPageDown
	ActionSelectHome
	ActionSelectEnd
	ActionZoneClicked
	ActionUnmatchedClick
	ActionToggleHelp
)

// Action is the result of routing one decoded input event.
type Action struct {
	Kind       ActionKind
	SortKey    sampler.SortKey // valid when Kind == ActionSortChanged
	FilterText string          // valid when Kind == ActionToggleFilterMode's text changed
	X, Y       int             // valid for mouse actions
	Zone       string          // valid when Kind == ActionZoneClicked
}

// sortCycle is the fixed sort-key vector left/right cycles through, per
// spec.md §4.1's sort-key enumeration.
var sortCycle = []sampler.SortKey{
	sampler.SortPID,
	sampler.SortName,
	sampler.SortCommand,
	sampler.SortThreads,
	sampler.SortUser,
	sampler.SortMemory,
	sampler.SortCPUDirect,
	sampler.SortCPULazy,
}

// Zone is a clickable rectangle mapped to a named action, per spec.md
// §4.7's "mapping table that maps rectangles to action names."
type Zone struct {
	X, Y, W, H int
	Name       string
}

type keyMap struct {
	Quit        key.Binding
	ToggleTree  key.Binding
	Reverse     key.Binding
	PerCore     key.Binding
	Filter      key.Binding
	SortPrev    key.Binding
	SortNext    key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Help        key.Binding
}

// defaultKeys mirrors the shape of the teacher's internal/monitor
// keybindings.go keyMap: a struct of key.Binding values built once.
var defaultKeys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ToggleTree: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tree")),
	Reverse:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
	PerCore:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "per-core")),
	Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	SortPrev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev sort")),
	SortNext:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next sort")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Home:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
	End:        key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// HelpLines renders the default keymap's bubbles/key help text (the same
// key.Binding.Help() pairs bubbles/key itself uses to build a help.Model's
// ShortHelp/FullHelp views) as "key  description" lines, for the help
// overlay.
func HelpLines() []string {
	bindings := []key.Binding{
		defaultKeys.Quit, defaultKeys.ToggleTree, defaultKeys.Reverse, defaultKeys.PerCore,
		defaultKeys.Filter, defaultKeys.SortPrev, defaultKeys.SortNext, defaultKeys.Up,
		defaultKeys.Down, defaultKeys.PageUp, defaultKeys.PageDown, defaultKeys.Home,
		defaultKeys.End, defaultKeys.Help,
	}
	lines := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		lines[i] = h.Key + "  " + h.Desc
	}
	return lines
}

// Dispatcher routes decoded tea.KeyMsg/tea.MouseMsg values to Actions. It
// owns the filter-mode toggle and the in-progress filter text, since
// those are stateful across keystrokes.
type Dispatcher struct {
	keys      keyMap
	filtering bool
	filter    []rune
	sortIdx   int
	zones     []Zone
}

// NewDispatcher constructs a Dispatcher with the default keybindings.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{keys: defaultKeys}
}

// SetZones installs the clickable rectangles dispatchMouse hit-tests
// against. No zones are installed by default, and the dashboard does not
// install any, so every press is then reported as ActionUnmatchedClick.
func (d *Dispatcher) SetZones(zones []Zone) { d.zones = zones }

// FilterText returns the in-progress filter string.
func (d *Dispatcher) FilterText() string { return string(d.filter) }

// Dispatch routes one decoded message to an Action.
func (d *Dispatcher) Dispatch(msg tea.Msg) Action {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return d.dispatchKey(m)
	case tea.MouseMsg:
		return d.dispatchMouse(m)
	}
	return Action{Kind: ActionNone}
}

func (d *Dispatcher) dispatchKey(m tea.KeyMsg) Action {
	if d.filtering {
		return d.dispatchFilterKey(m)
	}

	switch {
	case key.Matches(m, d.keys.Quit):
		return Action{Kind: ActionQuit}
	case key.Matches(m, d.keys.ToggleTree):
		return Action{Kind: ActionToggleTree}
	case key.Matches(m, d.keys.Reverse):
		return Action{Kind: ActionToggleReverse}
	case key.Matches(m, d.keys.PerCore):
		return Action{Kind: ActionTogglePerCore}
	case key.Matches(m, d.keys.Filter):
		d.filtering = true
		return Action{Kind: ActionToggleFilterMode, FilterText: d.FilterText()}
	case key.Matches(m, d.keys.SortPrev):
		return Action{Kind: ActionSortChanged, SortKey: d.cycleSort(-1)}
	case key.Matches(m, d.keys.SortNext):
		return Action{Kind: ActionSortChanged, SortKey: d.cycleSort(1)}
	case key.Matches(m, d.keys.Up):
		return Action{Kind: ActionSelectUp}
	case key.Matches(m, d.keys.Down):
		return Action{Kind: ActionSelectDown}
	case key.Matches(m, d.keys.PageUp):
		return Action{Kind: ActionSelectPageUp}
	case key.Matches(m, d.keys.PageDown):
		return Action{Kind: ActionSelectPageDown}
	case key.Matches(m, d.keys.Home):
		return Action{Kind: ActionSelectHome}
	case key.Matches(m, d.keys.End):
		return Action{Kind: ActionSelectEnd}
	case key.Matches(m, d.keys.Help):
		return Action{Kind: ActionToggleHelp}
	}
	return Action{Kind: ActionNone}
}

// dispatchFilterKey implements spec.md §4.7's filter-mode text editing:
// typed characters append to the filter string, backspace removes the
// last UTF-8 cluster (one rune is sufficient granularity for the glyph
// set this dashboard renders), delete clears it.
func (d *Dispatcher) dispatchFilterKey(m tea.KeyMsg) Action {
	switch m.Type {
	case tea.KeyEsc, tea.KeyEnter:
		d.filtering = false
		return Action{Kind: ActionToggleFilterMode, FilterText: d.FilterText()}
	case tea.KeyBackspace:
		if len(d.filter) > 0 {
			d.filter = d.filter[:len(d.filter)-1]
		}
		return Action{Kind: ActionToggleFilterMode, FilterText: d.FilterText()}
	case tea.KeyDelete:
		d.filter = nil
		return Action{Kind: ActionToggleFilterMode, FilterText: d.FilterText()}
	case tea.KeyRunes:
		d.filter = append(d.filter, m.Runes...)
		return Action{Kind: ActionToggleFilterMode, FilterText: d.FilterText()}
	}
	return Action{Kind: ActionNone}
}

func (d *Dispatcher) cycleSort(delta int) sampler.SortKey {
	n := len(sortCycle)
	d.sortIdx = ((d.sortIdx+delta)%n + n) % n
	return sortCycle[d.sortIdx]
}

func (d *Dispatcher) dispatchMouse(m tea.MouseMsg) Action {
	if m.Action != tea.MouseActionPress {
		return Action{Kind: ActionNone}
	}
	for _, z := range d.zones {
		if m.X >= z.X && m.X < z.X+z.W && m.Y >= z.Y && m.Y < z.Y+z.H {
			return Action{Kind: ActionZoneClicked, Zone: z.Name, X: m.X, Y: m.Y}
		}
	}
	return Action{Kind: ActionUnmatchedClick, X: m.X, Y: m.Y}
}
