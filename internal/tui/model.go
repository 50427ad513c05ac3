package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"geokit/internal/geomutil"
)

// Config holds the viewer's collaborators and operation parameters.
type Config struct {
	Engine *geomutil.Engine
	Log    logrus.FieldLogger
	// CRS is forwarded to every engine operation.
	CRS string
	// BufferDistance is used by the buffer key.
	BufferDistance float64

	AttributeFilter []string
	AttributeNames  map[string]string
	NameColumnWidth int
}

type Model struct {
	cfg Config

	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	values   []geomutil.Value
	selected int
	bbox     orb.Bound

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	showAttrs bool
	grid      PropertyGrid
}

func New(cfg Config) Model {
	if cfg.Engine == nil {
		cfg.Engine = geomutil.New()
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	if cfg.BufferDistance == 0 {
		cfg.BufferDistance = 1
	}
	m := Model{
		cfg:         cfg,
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "geokit ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		selected:    -1,
	}
	m.cwd, _ = os.Getwd()
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here. Press Enter to add it; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Values returns the loaded values followed by any operation results.
func (m Model) Values() []geomutil.Value { return m.values }

// Selected returns the selected value, if any.
func (m Model) Selected() (geomutil.Value, bool) {
	if m.selected < 0 || m.selected >= len(m.values) {
		return geomutil.Value{}, false
	}
	return m.values[m.selected], true
}

func (m Model) Status() string { return m.status }

func (m *Model) gridOptions() []GridOption {
	opts := []GridOption{WithAttributeNames(m.cfg.AttributeNames)}
	if m.cfg.AttributeFilter != nil {
		opts = append(opts, WithAttributeFilter(m.cfg.AttributeFilter))
	}
	if m.cfg.NameColumnWidth > 0 {
		opts = append(opts, WithNameColumnWidth(m.cfg.NameColumnWidth))
	}
	return opts
}
