package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geoops/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().mapH-2)
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.win != nil {
			cmd := m.updateOperation(msg)
			return m, cmd
		}
		if m.menu.open {
			cmd := m.updateMenu(msg)
			return m, cmd
		}
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			cmd := m.updatePaste(msg)
			return m, cmd
		}
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	case tea.MouseMsg:
		m.hover(msg)
	}
	var cmds []tea.Cmd
	// cursor blinks and other ticks belong to the focused parameter field
	if m.win != nil {
		cmds = append(cmds, m.win.forward(msg))
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updatePaste(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return nil
		}
		fc, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return nil
		}
		m.selPath = ""
		m.setCollection(fc)
		m.log.Info("pasted wkt", "kinds", geom.ObservedKinds(fc).String())
		m.status = "rendered WKT  " + m.counts()
		m.pasteMode = false
		m.ta.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "1":
		m.showPoints = !m.showPoints
		m.status = fmt.Sprintf("points: %v", m.showPoints)
	case "2":
		m.showLines = !m.showLines
		m.status = fmt.Sprintf("lines: %v", m.showLines)
	case "3":
		m.showPolys = !m.showPolys
		m.status = fmt.Sprintf("polys: %v", m.showPolys)
	case "+", "=":
		if m.view.zoom < 64 {
			m.view.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.view.zoom)
		}
	case "-", "_":
		if m.view.zoom > 0.05 {
			m.view.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.view.zoom)
		}
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.layout().mapH-2)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		m.ta.Focus()
	case "o":
		m.openMenu()
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	case "i":
		m.inspect()
	case "l":
		// toggle all layers
		all := m.showPoints && m.showLines && m.showPolys
		m.showPoints = !all
		m.showLines = !all
		m.showPolys = !all
		m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "up":
		m.view.offsetY--
	case "down":
		m.view.offsetY++
	case "left":
		m.view.offsetX -= 2
	case "right":
		m.view.offsetX += 2
	}
	return nil
}

func (m *Model) inspect() {
	lon, lat, ok := m.inspectNearest()
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	bb := m.data.BBox
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", bb.MinX, bb.MinY, bb.MaxX, bb.MaxY),
		m.counts(),
		fmt.Sprintf("kinds: %s", geom.ObservedKinds(m.fc)),
		fmt.Sprintf("nodes: %d", geom.CoordCount(m.fc)),
		fmt.Sprintf("nearest: lon=%.6f lat=%.6f", lon, lat),
		"crs: unknown", "datum: unknown",
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

// hover tracks the mouse over the map and snaps the highlight to the
// nearest vertex.
func (m *Model) hover(msg tea.MouseMsg) {
	lay := m.layout()
	cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
	if cx < 0 || cx >= lay.mapW || cy < 0 || cy >= lay.mapH {
		m.hovering = false
		return
	}
	m.hovering = true
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.view.lonLat(cx, cy, lay.mapW, lay.mapH)
	bx, by, ok := m.nearestVertex(cx*2, cy*4, lay.mapW, lay.mapH)
	if !ok {
		m.hovering = false
		return
	}
	m.hoverMicX, m.hoverMicY = bx, by
}
