package tui

import (
	"log/slog"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb/geojson"

	"geoops/internal/geom"
	"geoops/internal/logging"
	"geoops/internal/ops"
)

// Options configure a Model. Zero values fall back to defaults.
type Options struct {
	Registry *ops.Registry
	Logger   *slog.Logger
	// Dir is the directory the file explorer starts in.
	Dir string
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	view viewport

	status string
	log    *slog.Logger

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Active document and its render form
	fc   *geojson.FeatureCollection
	data geom.Data

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

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model

	// operations
	registry *ops.Registry
	menu     opsMenu
	win      *opWindow
}

func New(opts Options) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		view:        viewport{zoom: 1.0},
		status:      "geoops ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		registry:    opts.Registry,
		log:         opts.Logger,
		cwd:         opts.Dir,
	}
	if m.registry == nil {
		m.registry = ops.Default()
	}
	if m.log == nil {
		m.log = logging.NewNop()
	}
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (any geometry type). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.menu = newOpsMenu()
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(path string, opts Options) Model {
	m := New(opts)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Collection returns the active document.
func (m Model) Collection() *geojson.FeatureCollection { return m.fc }

// setCollection replaces the active document and resets the viewport.
func (m *Model) setCollection(fc *geojson.FeatureCollection) {
	m.fc = fc
	m.data = geom.Flatten(fc)
	m.view.fit(m.data.BBox)
	// prefer polys > lines > points for visibility
	m.showPolys = len(m.data.Polygons) > 0
	m.showLines = len(m.data.Lines) > 0
	m.showPoints = len(m.data.Points) > 0
	m.inspectPopup = ""
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
