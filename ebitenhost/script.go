package ebitenhost

import (
	"encoding/json"
	"errors"
	"fmt"
)

// scriptStep is a single action in a gesture script. Coordinates are in
// screen pixels.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	FromSpan float64 `json:"fromSpan,omitempty"`
	ToSpan   float64 `json:"toSpan,omitempty"`
	Page     int     `json:"page,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"tap":        true,
	"doubletap":  true,
	"drag":       true,
	"pinch":      true,
	"page":       true,
	"wait":       true,
	"screenshot": true,
}

// Script sequences injected gestures across frames, for demos and
// automated checks. Attach it to a Pager with SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script of the form
//
//	{"steps": [{"action": "doubletap", "x": 200, "y": 150}, {"action": "wait", "frames": 30}]}
//
// Actions are tap, doubletap (x, y), drag (fromX, fromY, toX, toY, frames),
// pinch (x, y, fromSpan, toSpan, frames), page (page), wait (frames) and
// screenshot (label).
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ebitenhost: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("ebitenhost: parse script: no steps")
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("ebitenhost: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches s to the pager. Its steps run from Update, before
// input is processed.
func (p *Pager) SetScript(s *Script) {
	p.script = s
}

// Done reports whether every step has been executed.
func (s *Script) Done() bool {
	return s.done
}

func (s *Script) step(p *Pager) {
	if s.done {
		return
	}
	// Let queued input drain before advancing.
	if p.Injecting() {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "tap":
		p.InjectTap(st.X, st.Y)
	case "doubletap":
		p.InjectTap(st.X, st.Y)
		p.InjectTap(st.X, st.Y)
	case "drag":
		p.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		p.InjectPinch(st.X, st.Y, st.FromSpan, st.ToSpan, st.Frames)
	case "page":
		p.ScrollTo(st.Page, true)
	case "screenshot":
		p.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && !p.Injecting() {
		s.done = true
	}
}
