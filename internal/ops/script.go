package ops

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// ScriptSurface is a Surface driven by code: text is typed into fields by
// label and a button is clicked by label on the next cycle.
type ScriptSurface struct {
	fields  map[string]string
	press   string
	labels  []string
	buttons map[string]bool
}

func NewScriptSurface() *ScriptSurface {
	return &ScriptSurface{fields: map[string]string{}, buttons: map[string]bool{}}
}

// Type sets the contents of the field with the given label.
func (s *ScriptSurface) Type(label, text string) { s.fields[label] = text }

// Click activates the button with the given label on the next cycle it is enabled.
func (s *ScriptSurface) Click(label string) { s.press = label }

// Begin clears the output of the previous cycle.
func (s *ScriptSurface) Begin() {
	s.labels = s.labels[:0]
	clear(s.buttons)
}

// Labels returns the labels rendered since Begin.
func (s *ScriptSurface) Labels() []string { return append([]string(nil), s.labels...) }

// Enabled reports whether the named button was rendered enabled since Begin.
func (s *ScriptSurface) Enabled(label string) bool { return s.buttons[label] }

func (s *ScriptSurface) TextField(label, value string) string {
	if v, ok := s.fields[label]; ok {
		return v
	}
	s.fields[label] = value
	return value
}

func (s *ScriptSurface) Button(label string, enabled bool) bool {
	s.buttons[label] = enabled
	if enabled && s.press == label {
		s.press = ""
		return true
	}
	return false
}

func (s *ScriptSurface) Label(text string) { s.labels = append(s.labels, text) }

// ErrNotCommitted is returned by Drive when the operation never committed.
var ErrNotCommitted = errors.New("operation was not committed")

// Drive runs op like a host would: render cycles until the operation asks to
// be performed, then the authoritative pass and Finalize.
func Drive(op Operation, ui *ScriptSurface, input *geojson.FeatureCollection, maxCycles int) (Outcome, error) {
	for i := 0; i < maxCycles; i++ {
		switch op.NextAction() {
		case RenderUI:
			ui.Begin()
			op.RenderParameters(ui, input)
		case Perform:
			op.Perform(input)
			return op.Finalize()
		case Done:
			return Outcome{}, fmt.Errorf("%s: already performed", op.Name())
		}
	}
	return Outcome{}, fmt.Errorf("%w after %d cycles: %s", ErrNotCommitted, maxCycles, strings.Join(ui.Labels(), "; "))
}
