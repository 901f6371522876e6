package canvas

import (
	"encoding/json"
	"fmt"
)

// ScenarioStep is a single declarative action in a scripted interaction
// sequence. Coordinates are world-space, the same units Canvas.HandlePointerDown
// and its siblings take (Update does the screen-to-world conversion before
// calling them; a scripted run skips that conversion and drives the world
// coordinates directly, since there is no live viewport-sized screen to map
// through outside of a running ebiten loop).
type ScenarioStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Button string  `json:"button,omitempty"`
	Key    string  `json:"key,omitempty"`
	Mods   string  `json:"mods,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
}

// Scenario is the top-level JSON structure for a scripted interaction
// sequence.
type Scenario struct {
	Steps []ScenarioStep `json:"steps"`
}

// LoadScenario parses a JSON scenario document.
func LoadScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("mediacanvas: parse scenario: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("mediacanvas: parse scenario: no steps")
	}
	return &sc, nil
}

var scenarioButtons = map[string]MouseButton{
	"":       MouseLeft,
	"left":   MouseLeft,
	"right":  MouseRight,
	"middle": MouseMiddle,
}

var scenarioKeys = map[string]Key{
	"delete":          KeyDelete,
	"backspace":       KeyBackspace,
	"copy":            KeyC,
	"cut":             KeyX,
	"paste":           KeyV,
	"duplicate":       KeyD,
	"selectall":       KeyA,
	"undo":            KeyZ,
	"zoomfit":         KeyF,
	"zoomhome":        KeyH,
	"sendback":        KeyBracketLeft,
	"bringfront":      KeyBracketRight,
	"alignhorizontal": Key1,
	"alignvertical":   Key2,
	"text":            KeyT,
	"group":           KeyG,
}

func parseModifiers(s string) Modifiers {
	var m Modifiers
	for _, tok := range splitNonEmpty(s, '+') {
		switch tok {
		case "shift":
			m |= ModShift
		case "ctrl":
			m |= ModCtrl
		case "alt":
			m |= ModAlt
		case "meta", "cmd":
			m |= ModMeta
		}
	}
	return m
}

func splitNonEmpty(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// ScenarioRunner drives a Canvas headlessly through a Scenario's steps,
// one step per Advance call, mirroring the teacher's TestRunner step cursor
// but replacing screenshot assertions with direct node-state assertions
// (there is no GPU surface to screenshot outside of a live ebiten loop).
type ScenarioRunner struct {
	canvas    *Canvas
	steps     []ScenarioStep
	cursor    int
	waitCount int
}

// NewScenarioRunner returns a runner that will drive c through sc's steps.
func NewScenarioRunner(c *Canvas, sc *Scenario) *ScenarioRunner {
	return &ScenarioRunner{canvas: c, steps: sc.Steps}
}

// Done reports whether every step has been executed and any pending wait
// has been counted down.
func (r *ScenarioRunner) Done() bool {
	return r.cursor >= len(r.steps) && r.waitCount == 0
}

// Advance executes the next pending step (or counts down a wait), driving
// the wrapped Canvas's pointer/key entry points directly rather than
// ebiten's polled input.
func (r *ScenarioRunner) Advance() error {
	if r.Done() {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	button, ok := scenarioButtons[st.Button]
	if !ok {
		return fmt.Errorf("mediacanvas: scenario step %d: unknown button %q", r.cursor-1, st.Button)
	}
	mods := parseModifiers(st.Mods)

	switch st.Action {
	case "click":
		r.canvas.HandlePointerDown(Vec2{X: st.X, Y: st.Y}, button, mods)
		r.canvas.HandlePointerUp(Vec2{X: st.X, Y: st.Y})
	case "press":
		r.canvas.HandlePointerDown(Vec2{X: st.X, Y: st.Y}, button, mods)
	case "move":
		r.canvas.HandlePointerMove(Vec2{X: st.X, Y: st.Y}, mods)
	case "release":
		r.canvas.HandlePointerUp(Vec2{X: st.X, Y: st.Y})
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		r.canvas.HandlePointerDown(Vec2{X: st.FromX, Y: st.FromY}, button, mods)
		steps := frames - 2
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps+1)
			x := st.FromX + (st.ToX-st.FromX)*t
			y := st.FromY + (st.ToY-st.FromY)*t
			r.canvas.HandlePointerMove(Vec2{X: x, Y: y}, mods)
		}
		r.canvas.HandlePointerUp(Vec2{X: st.ToX, Y: st.ToY})
	case "key":
		key, ok := scenarioKeys[st.Key]
		if !ok {
			return fmt.Errorf("mediacanvas: scenario step %d: unknown key %q", r.cursor-1, st.Key)
		}
		r.canvas.HandleKey(key, mods)
	case "wheel":
		r.canvas.HandleWheel(Vec2{X: st.X, Y: st.Y}, st.Delta > 0)
	case "wait":
		if st.Frames > 1 {
			r.waitCount = st.Frames - 1
		}
	default:
		return fmt.Errorf("mediacanvas: scenario step %d: unknown action %q", r.cursor-1, st.Action)
	}
	return nil
}

// Run drives every remaining step to completion.
func (r *ScenarioRunner) Run() error {
	for !r.Done() {
		if err := r.Advance(); err != nil {
			return err
		}
	}
	return nil
}
