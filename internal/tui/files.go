package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	list "github.com/charmbracelet/bubbles/list"

	"geoops/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: filepath.Ext(name), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath makes the file at p the active document.
func (m *Model) loadPath(p string) {
	fc, err := geom.Load(p)
	if err != nil {
		m.log.Warn("load failed", "path", p, "error", err)
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.closeOperation()
	m.setCollection(fc)
	m.log.Info("loaded", "path", p, "features", len(fc.Features), "kinds", geom.ObservedKinds(fc).String())
	m.status = "loaded: " + filepath.Base(p) + "  " + m.counts()
}

// counts summarizes the render data for the status line.
func (m Model) counts() string {
	return fmt.Sprintf("counts: features=%d pts=%d ls=%d poly=%d",
		m.featureCount(), len(m.data.Points), len(m.data.Lines), len(m.data.Polygons))
}

func (m Model) featureCount() int {
	if m.fc == nil {
		return 0
	}
	return len(m.fc.Features)
}
