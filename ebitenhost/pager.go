package ebitenhost

import (
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/photoview"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// pageFlipFraction is the share of a page width a drag must cover to move
// to the neighbouring page.
const pageFlipFraction = 0.25

// PagerConfig configures a Pager. Zero fields take defaults.
type PagerConfig struct {
	Width, Height float64
	// PageDuration is the length of the settle animation between pages.
	// Default 250ms; negative means no animation.
	PageDuration time.Duration
	// Clock timestamps input events. Views added to the pager share it.
	Clock photoview.Clock
	// Logger defaults to slog.Default().With("component", "pager").
	Logger *slog.Logger
	// ScreenshotDir receives captures queued with Screenshot. Default
	// "screenshots".
	ScreenshotDir string
	Debug         bool
}

func (c PagerConfig) withDefaults() PagerConfig {
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.PageDuration == 0 {
		c.PageDuration = 250 * time.Millisecond
	}
	if c.PageDuration < 0 {
		c.PageDuration = 0
	}
	if c.Clock == nil {
		c.Clock = systemClock{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default().With("component", "pager")
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	return c
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// PageChangeFunc is called with the new page index after the pager changes
// page.
type PageChangeFunc func(page int)

// Pager lays out views side by side, one page wide each, and routes input
// to the current one. While the current view allows it, a horizontal drag
// is taken over by the pager and scrolls between pages.
type Pager struct {
	views   []*View
	current int
	w, h    float64
	offset  float64 // horizontal scroll in pixels

	clock        photoview.Clock
	log          *slog.Logger
	pageDuration time.Duration
	onPageChange PageChangeFunc

	input       inputSource
	tracker     pointerTracker
	snapshot    []photoview.Pointer
	injectQueue [][]photoview.Pointer
	script      *Script

	intercepting bool
	lastX        float64

	settle       *gween.Tween
	settleStart  time.Time
	settleTarget float64

	shots   []string
	shotDir string

	debug bool
	stats debugStats
}

// NewPager creates an empty pager.
func NewPager(cfg PagerConfig) *Pager {
	cfg = cfg.withDefaults()
	return &Pager{
		w:            cfg.Width,
		h:            cfg.Height,
		clock:        cfg.Clock,
		log:          cfg.Logger,
		pageDuration: cfg.PageDuration,
		input:        &ebitenInput{},
		shotDir:      cfg.ScreenshotDir,
		debug:        cfg.Debug,
	}
}

// Add appends a page showing img. Clock and Logger in cfg default to the
// pager's so that event times and animation times agree.
func (p *Pager) Add(img *ebiten.Image, cfg photoview.Config) (*View, error) {
	if cfg.Clock == nil {
		cfg.Clock = p.clock
	}
	if cfg.Logger == nil {
		cfg.Logger = p.log.With("page", len(p.views))
	}
	v, err := NewView(img, p.w, p.h, cfg)
	if err != nil {
		return nil, err
	}
	p.views = append(p.views, v)
	p.layout()
	return v, nil
}

// Views returns the pages in order.
func (p *Pager) Views() []*View { return p.views }

// Current returns the index of the current page.
func (p *Pager) Current() int { return p.current }

// Offset returns the horizontal scroll position in pixels.
func (p *Pager) Offset() float64 { return p.offset }

// Size returns the page size.
func (p *Pager) Size() (w, h float64) { return p.w, p.h }

// SetOnPageChange registers fn to be called when the current page changes.
func (p *Pager) SetOnPageChange(fn PageChangeFunc) { p.onPageChange = fn }

// SetDebug enables per-frame diagnostics.
func (p *Pager) SetDebug(on bool) { p.debug = on }

func (p *Pager) active() *View {
	if len(p.views) == 0 {
		return nil
	}
	return p.views[p.current]
}

func (p *Pager) maxOffset() float64 {
	return math.Max(0, float64(len(p.views)-1)*p.w)
}

// Resize changes the page size. An active gesture is cancelled.
func (p *Pager) Resize(w, h float64) {
	if w == p.w && h == p.h {
		return
	}
	if ev, ok := p.tracker.cancel(p.clock.Now()); ok {
		p.OnTouch(ev)
	}
	p.w, p.h = w, h
	p.settle = nil
	p.offset = float64(p.current) * p.w
	p.layout()
}

// ScrollTo makes page the current page, animating the scroll when animate
// is true. Out of range pages are clamped.
func (p *Pager) ScrollTo(page int, animate bool) {
	if len(p.views) == 0 {
		return
	}
	page = max(0, min(page, len(p.views)-1))
	if page != p.current {
		p.log.Debug("page change", "from", p.current, "to", page)
		p.current = page
		if p.onPageChange != nil {
			p.onPageChange(page)
		}
	}
	target := float64(page) * p.w
	if !animate || p.pageDuration == 0 || target == p.offset {
		p.offset = target
		p.settle = nil
		p.layout()
		return
	}
	p.settle = gween.New(float32(p.offset), float32(target), float32(p.pageDuration.Seconds()), ease.OutCubic)
	p.settleStart = p.clock.Now()
	p.settleTarget = target
}

func (p *Pager) advanceSettle(now time.Time) {
	if p.settle == nil {
		return
	}
	x, done := p.settle.Set(float32(now.Sub(p.settleStart).Seconds()))
	p.offset = float64(x)
	if done {
		p.offset = p.settleTarget
		p.settle = nil
	}
}

func (p *Pager) finishSettle() {
	if p.settle != nil {
		p.offset = p.settleTarget
		p.settle = nil
	}
}

func (p *Pager) layout() {
	for i, v := range p.views {
		v.setFrame(float64(i)*p.w-p.offset, 0, p.w, p.h)
	}
}

// OnTouch routes a screen-space event to the current view, or scrolls the
// pager once it has taken over the gesture.
func (p *Pager) OnTouch(ev photoview.MotionEvent) {
	p.stats.events++
	v := p.active()
	if v == nil || ev.PointerCount() == 0 {
		return
	}
	if ev.Action == photoview.ActionDown {
		p.finishSettle()
		p.layout()
		p.intercepting = false
	}
	if p.intercepting {
		p.dragPage(ev)
		return
	}

	v.dispatch(ev)
	if ev.Action == photoview.ActionMove && ev.PointerCount() == 1 &&
		len(p.views) > 1 && v.InterceptAllowed() && ev.X() != p.lastX {
		p.log.Debug("intercept", "page", p.current)
		cancel := ev
		cancel.Action = photoview.ActionCancel
		v.dispatch(cancel)
		p.intercepting = true
	}
	p.lastX = ev.X()
}

func (p *Pager) dragPage(ev photoview.MotionEvent) {
	switch ev.Action {
	case photoview.ActionMove:
		dx := ev.X() - p.lastX
		p.lastX = ev.X()
		p.offset = math.Max(0, math.Min(p.maxOffset(), p.offset-dx))
		p.layout()
	case photoview.ActionUp, photoview.ActionCancel:
		p.intercepting = false
		moved := p.offset - float64(p.current)*p.w
		target := p.current
		switch {
		case moved > p.w*pageFlipFraction:
			target++
		case moved < -p.w*pageFlipFraction:
			target--
		}
		p.ScrollTo(target, true)
	}
}

// Update advances one frame: script, input, page settling, then the
// callbacks each view's engine posted.
func (p *Pager) Update() error {
	start := p.clock.Now()
	p.stats = debugStats{}

	if p.script != nil {
		p.script.step(p)
	}
	p.processInput(start)
	p.advanceSettle(start)
	p.layout()
	for _, v := range p.views {
		p.stats.callbacks += v.runFrame()
	}

	p.stats.update = p.clock.Now().Sub(start)
	p.debugLog(p.stats)
	return nil
}

func (p *Pager) processInput(now time.Time) {
	var snap []photoview.Pointer
	if len(p.injectQueue) > 0 {
		snap = p.injectQueue[0]
		copy(p.injectQueue, p.injectQueue[1:])
		p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]
	} else {
		p.snapshot = p.input.pointers(p.snapshot[:0])
		snap = p.snapshot
		p.processWheel()
	}
	for _, ev := range p.tracker.diff(now, snap) {
		p.OnTouch(ev)
	}
}

func (p *Pager) processWheel() {
	dy, x, y := p.input.wheel()
	v := p.active()
	if dy == 0 || v == nil || p.tracker.down() {
		return
	}
	a := v.Attacher()
	s := wheelScale(a.Scale(), dy, a.MinimumScale(), a.MaximumScale())
	if err := a.SetScaleAt(s, x-v.x, y-v.y, false); err != nil {
		p.log.Debug("wheel zoom rejected", "scale", s, "err", err)
	}
}

// Draw renders the visible pages.
func (p *Pager) Draw(screen *ebiten.Image) {
	for _, v := range p.views {
		if v.x+v.w <= 0 || v.x >= p.w {
			continue
		}
		v.Draw(screen)
	}
	if p.debug {
		p.drawDebug(screen)
	}
	p.flushScreenshots(screen)
}

// Close detaches every view.
func (p *Pager) Close() {
	for _, v := range p.views {
		v.Close()
	}
}
