package tui

import (
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb/geojson"

	"geoops/internal/geom"
	"geoops/internal/ops"
)

type opItem struct{ d ops.Descriptor }

func (o opItem) Title() string       { return o.d.Name }
func (o opItem) Description() string { return o.d.Allowed.String() }
func (o opItem) FilterValue() string { return o.d.Name }

// opsMenu lists the operations applicable to the active document.
type opsMenu struct {
	open bool
	l    list.Model
}

func newOpsMenu() opsMenu {
	d := list.NewDefaultDelegate()
	l := list.New(nil, d, 48, 12)
	l.Title = "Operations"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	return opsMenu{l: l}
}

func (m *Model) openMenu() {
	avail := m.registry.Available(geom.ObservedKinds(m.fc))
	if len(avail) == 0 {
		m.status = "no operations for current dataset"
		return
	}
	items := make([]list.Item, 0, len(avail))
	for _, d := range avail {
		items = append(items, opItem{d: d})
	}
	m.menu.l.SetItems(items)
	m.menu.l.Select(0)
	m.menu.open = true
	m.status = "operations"
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	if m.menu.l.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc", "o":
			m.menu.open = false
			m.status = "view mode"
			return nil
		case "enter":
			it, ok := m.menu.l.SelectedItem().(opItem)
			if !ok {
				return nil
			}
			m.menu.open = false
			return m.startOperation(it.d)
		}
	}
	var cmd tea.Cmd
	m.menu.l, cmd = m.menu.l.Update(msg)
	return cmd
}

type widgetKind int

const (
	fieldWidget widgetKind = iota
	buttonWidget
	labelWidget
)

type widget struct {
	kind    widgetKind
	label   string
	enabled bool
}

// opWindow hosts one operation instance. It implements ops.Surface in
// immediate mode: every cycle the operation redraws its widgets into it.
type opWindow struct {
	op      ops.Operation
	inputs  map[string]*textinput.Model
	widgets []widget
	focus   int
	press   string
}

func newOpWindow(op ops.Operation) *opWindow {
	return &opWindow{op: op, inputs: map[string]*textinput.Model{}}
}

func (w *opWindow) TextField(label, value string) string {
	ti, ok := w.inputs[label]
	if !ok {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 64
		in.Width = 24
		in.SetValue(value)
		ti = &in
		w.inputs[label] = ti
	}
	w.widgets = append(w.widgets, widget{kind: fieldWidget, label: label})
	return ti.Value()
}

func (w *opWindow) Button(label string, enabled bool) bool {
	w.widgets = append(w.widgets, widget{kind: buttonWidget, label: label, enabled: enabled})
	if enabled && w.press == label {
		w.press = ""
		return true
	}
	return false
}

func (w *opWindow) Label(text string) {
	w.widgets = append(w.widgets, widget{kind: labelWidget, label: text})
}

// focusable returns the indexes of fields and buttons.
func (w *opWindow) focusable() []int {
	var out []int
	for i, wd := range w.widgets {
		if wd.kind != labelWidget {
			out = append(out, i)
		}
	}
	return out
}

// focused returns the focused widget, if any.
func (w *opWindow) focused() (widget, bool) {
	f := w.focusable()
	if len(f) == 0 {
		return widget{}, false
	}
	return w.widgets[f[w.focus%len(f)]], true
}

// cycle runs one RenderParameters pass. A press that did not land on an
// enabled button is dropped.
func (w *opWindow) cycle(input *geojson.FeatureCollection) tea.Cmd {
	w.widgets = w.widgets[:0]
	w.op.RenderParameters(w, input)
	w.press = ""
	if n := len(w.focusable()); n > 0 {
		w.focus = (w.focus%n + n) % n
	}
	cur, _ := w.focused()
	var cmd tea.Cmd
	for label, ti := range w.inputs {
		if cur.kind == fieldWidget && cur.label == label {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
	}
	return cmd
}

// handleKey routes a key to the window. It reports false for Esc.
func (w *opWindow) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return false, nil
	case "tab", "down":
		w.focus++
		return true, nil
	case "shift+tab", "up":
		w.focus--
		return true, nil
	case "enter":
		cur, ok := w.focused()
		if ok && cur.kind == buttonWidget {
			w.press = cur.label
			return true, nil
		}
		// from a field Enter presses the first button
		for _, wd := range w.widgets {
			if wd.kind == buttonWidget {
				w.press = wd.label
				break
			}
		}
		return true, nil
	}
	cur, ok := w.focused()
	if !ok || cur.kind != fieldWidget {
		return true, nil
	}
	ti := w.inputs[cur.label]
	in, cmd := ti.Update(msg)
	*ti = in
	return true, cmd
}

// forward hands a non-key message to the focused field.
func (w *opWindow) forward(msg tea.Msg) tea.Cmd {
	cur, ok := w.focused()
	if !ok || cur.kind != fieldWidget {
		return nil
	}
	ti := w.inputs[cur.label]
	in, cmd := ti.Update(msg)
	*ti = in
	return cmd
}

func (w *opWindow) View() string {
	cur, _ := w.focused()
	rows := []string{titleStyle.Render(w.op.Name()), ""}
	for _, wd := range w.widgets {
		switch wd.kind {
		case fieldWidget:
			rows = append(rows, wd.label+" "+fieldStyle.Render(w.inputs[wd.label].View()))
		case buttonWidget:
			st := buttonStyle
			switch {
			case !wd.enabled:
				st = disabledButtonStyle
			case cur == wd:
				st = focusedButtonStyle
			}
			rows = append(rows, "", st.Render(wd.label))
		case labelWidget:
			rows = append(rows, dimStyle.Render(wd.label))
		}
	}
	rows = append(rows, "", dimStyle.Render("Tab focus  Enter activate  Esc cancel"))
	return boxStyle.Render(strings.Join(rows, "\n"))
}

func (m *Model) startOperation(d ops.Descriptor) tea.Cmd {
	m.win = newOpWindow(d.New())
	cmd := m.win.cycle(m.fc)
	m.log.Debug("operation opened", "op", d.Name)
	m.status = "operation: " + d.Name
	return cmd
}

func (m *Model) closeOperation() { m.win = nil }

func (m *Model) updateOperation(msg tea.KeyMsg) tea.Cmd {
	open, cmd := m.win.handleKey(msg)
	if !open {
		m.log.Debug("operation cancelled", "op", m.win.op.Name())
		m.closeOperation()
		m.status = "operation cancelled"
		return nil
	}
	cmd = tea.Batch(cmd, m.win.cycle(m.fc))
	if m.win.op.NextAction() == ops.Perform {
		m.applyOperation()
	}
	return cmd
}

// applyOperation runs the committed operation and merges its outcome by
// replacing the active document. On failure the document is left untouched.
func (m *Model) applyOperation() {
	op := m.win.op
	m.closeOperation()
	op.Perform(m.fc)
	out, err := op.Finalize()
	if err != nil {
		m.log.Error("operation failed", "op", op.Name(), "error", err)
		m.status = "operation failed: " + err.Error()
		return
	}
	if out.Kind != ops.OutcomeFeatureCollection || out.FeatureCollection == nil {
		m.status = "operation failed: empty outcome"
		return
	}
	m.setCollection(out.FeatureCollection)
	m.log.Info("operation applied", "op", op.Name(), "nodes", geom.CoordCount(m.fc))
	m.status = "applied: " + op.Name() + "  " + m.counts()
}
