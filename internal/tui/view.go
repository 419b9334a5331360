package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the placement of the map area inside the window.
type layout struct {
	width      int
	bodyH      int
	sidebarW   int
	mapX, mapY int
	mapW, mapH int
}

func (m Model) layout() layout {
	lay := layout{width: max(10, m.width), bodyH: max(4, m.height-headerHeight-footerHeight)}
	if m.showSidebar {
		lay.sidebarW = sidebarWidth
		lay.mapX = sidebarWidth + 1
	}
	lay.mapY = headerHeight
	lay.mapW = max(10, lay.width-lay.sidebarW-1)
	lay.mapH = lay.bodyH
	return lay
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.bodyH-2)
	}

	header := titleStyle.Render(" geoops ─ terminal geometry viewer ")
	header = lipgloss.NewStyle().Width(lay.width).Padding(0).Render(header)

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(lay.sidebarW).Render(m.l.View())
	}

	// track map size for inspect (use full area; map canvas has no border)
	m.mapW = max(8, lay.mapW)
	m.mapH = max(4, lay.mapH)
	var mapView string
	switch {
	case m.win != nil:
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, m.win.View())
	case m.menu.open:
		m.menu.l.SetSize(min(48, lay.mapW-4), min(lay.mapH-2, 14))
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, boxStyle.Render(m.menu.l.View()))
	case m.showAttrs:
		mapView = m.attrsView(lay)
	case m.pasteMode:
		m.ta.SetWidth(m.mapW)
		m.ta.SetHeight(min(m.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.ta.View())
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.renderAsciiMap(m.mapW, m.mapH))
	}

	// Build inspect popup box (center-left overlay, not in map column)
	popup := ""
	if m.inspectPopup != "" && !m.showAttrs && m.win == nil {
		maxPopupW := max(20, min(48, lay.width/2))
		box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MaxWidth(maxPopupW).Render(m.inspectPopup)
		popup = lipgloss.Place(lay.width, lay.bodyH, lipgloss.Left, lipgloss.Center, box)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	// mouse coords at bottom-right
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, lay.width-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lay.width).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(lay.width).Height(m.height).Render(ui)
}

// attrsView renders the attributes table centered in the map area.
func (m Model) attrsView(lay layout) string {
	colW := 0
	for _, c := range m.tbl.Columns() {
		colW += c.Width + 3
	}
	if colW == 0 {
		colW = min(60, lay.width-6)
	}
	maxW := min(lay.mapW, max(32, colW))
	m.tbl.SetWidth(maxW - 4)
	m.tbl.SetHeight(min(lay.mapH-2, 20))
	box := boxStyle.Width(maxW).Render(m.tbl.View())
	return lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"Tab sidebar",
		"Enter open",
		"o ops",
		"p paste",
		"a attrs",
		"i inspect",
		"l layers",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
