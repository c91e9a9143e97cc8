package gui

import (
	"fmt"
	"log"
	"os"
	"time"
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/snowtype/internal/audio"
	"github.com/san-kum/snowtype/internal/frontend"
	"github.com/san-kum/snowtype/internal/lightning"
	"github.com/san-kum/snowtype/internal/metrics"
	"github.com/san-kum/snowtype/internal/particle"
	"github.com/san-kum/snowtype/internal/sim"
	"github.com/san-kum/snowtype/internal/snow"
	"github.com/san-kum/snowtype/internal/typing"
	"github.com/san-kum/snowtype/internal/viz"
)

const (
	fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	fontSize = 28
	hintSize = 16
)

type App struct {
	opts    frontend.Options
	session *typing.Session
	stats   *metrics.Set

	bus   *sim.Bus
	snow  *snow.Field
	spark *particle.Field
	bolt  *lightning.Field

	snowSurf  *Surface
	sparkSurf *Surface
	boltSurf  *Surface

	Font    rl.Font
	ownFont bool
	cellW   float32

	lastTick    time.Time
	showResults bool
	width       int
	height      int
}

func initWindow(w, h, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h), "snowtype")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads a monospace font carrying every rune the sentences use,
// falling back to raylib's built-in font. ok reports whether the font must
// be unloaded.
func loadFont(runes []rune) (font rl.Font, ok bool) {
	if _, err := os.Stat(fontPath); err != nil {
		log.Printf("gui: %s missing, using default font", fontPath)
		return rl.GetFontDefault(), false
	}
	font = rl.LoadFontEx(fontPath, fontSize, runes)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font, true
}

func NewApp(opts frontend.Options, w, h int) (*App, error) {
	opts.Defaults()
	session, err := typing.NewSession(opts.Source, opts.Rand, opts.Clock)
	if err != nil {
		return nil, err
	}
	stats := metrics.Default()
	session.AddObserver(stats)

	a := &App{
		opts:      opts,
		session:   session,
		stats:     stats,
		bus:       sim.NewBus(float64(w), float64(h)),
		snowSurf:  NewSurface(w, h),
		sparkSurf: NewSurface(w, h),
		boltSurf:  NewSurface(w, h),
		width:     w,
		height:    h,
	}
	a.Font, a.ownFont = loadFont(Glyphs(opts.Source.Sentences()))
	a.cellW = rl.MeasureTextEx(a.Font, "M", fontSize, 1).X + 1

	if opts.Snow {
		so := snow.DefaultOptions()
		so.Count = opts.SnowCount
		so.Smoothing = opts.Smoothing
		so.Palette = opts.Theme.SnowPalette()
		if a.snow, err = snow.New(a.snowSurf, so, opts.Rand); err != nil {
			return nil, err
		}
		a.snow.Start(a.bus)
	}
	if opts.Sparks {
		po := particle.DefaultOptions()
		po.Lifespan = opts.SparkLifespan
		po.Palette = opts.Theme.SparkPalette()
		if a.spark, err = particle.New(a.sparkSurf, po, opts.Rand); err != nil {
			return nil, err
		}
		a.spark.Start(a.bus)
	}
	return a, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts frontend.Options, w, h int) error {
	opts.Defaults()
	initWindow(w, h, opts.FPS)
	defer rl.CloseWindow()

	app, err := NewApp(opts, w, h)
	if err != nil {
		return err
	}
	defer app.Close()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update(time.Now())
		a.Draw()
	}
}

func (a *App) Close() {
	if a.snow != nil {
		a.snow.Stop()
	}
	if a.spark != nil {
		a.spark.Stop()
	}
	if a.bolt != nil {
		a.bolt.Stop()
	}
	a.snowSurf.Unload()
	a.sparkSurf.Unload()
	a.boltSurf.Unload()
	if a.ownFont {
		rl.UnloadFont(a.Font)
	}
}

func (a *App) Update(now time.Time) {
	if rl.IsWindowResized() {
		a.width, a.height = rl.GetScreenWidth(), rl.GetScreenHeight()
		a.bus.Resize(float64(a.width), float64(a.height))
		a.boltSurf.Resize(float64(a.width), float64(a.height))
	}
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		p := rl.GetMousePosition()
		a.bus.Pointer(float64(p.X), float64(p.Y))
	}

	a.handleInput()

	if now.Sub(a.lastTick) >= typing.SpeedInterval {
		a.session.Tick(now)
		a.lastTick = now
	}

	a.step(now)
}

func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyTab) {
		a.showResults = !a.showResults
		return
	}
	if a.showResults {
		return
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		a.submit()
		return
	}
	input := a.session.Input()
	if rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace) {
		if _, size := utf8.DecodeLastRuneInString(input); size > 0 {
			a.apply(input[:len(input)-size])
		}
	}
	for r := rl.GetCharPressed(); r != 0; r = rl.GetCharPressed() {
		a.apply(a.session.Input() + string(r))
	}
}

func (a *App) apply(next string) {
	res := a.session.HandleInput(next)
	if !res.Accepted {
		a.opts.Player.Play(audio.Buzz)
		return
	}
	if !res.Grew {
		return
	}
	if a.spark != nil {
		x, y := a.caretPixel(res.Caret)
		a.spark.SpawnBurst(x, y, a.opts.SparkCount)
	}
	if res.Mismatches > 0 {
		a.opts.Player.Play(audio.Buzz)
	} else {
		a.opts.Player.Play(audio.Click)
	}
}

func (a *App) submit() {
	end := utf8.RuneCountInString(a.session.Target())
	if utf8.RuneCountInString(a.session.Input()) < end {
		a.apply(a.session.Input() + "\n")
		return
	}
	x, y := a.caretPixel(end)
	if !a.session.HandleInput(a.session.Input() + "\n").Reset {
		return
	}
	a.opts.Player.Play(audio.Chime)
	if a.spark != nil {
		a.spark.SpawnBurst(x, y, a.opts.SparkCount*3)
	}
	if !a.opts.Lightning {
		return
	}
	if a.bolt != nil {
		a.bolt.Stop()
	}
	a.boltSurf.Begin()
	a.boltSurf.Clear()
	lo := lightning.DefaultOptions()
	lo.Color = a.opts.Theme.BoltColor()
	bolt, err := lightning.New(a.boltSurf, x, y, lo, a.opts.Rand)
	a.boltSurf.End()
	if err != nil {
		log.Printf("gui: lightning: %v", err)
		return
	}
	a.bolt = bolt
	bolt.Start(a.bus)
}

func (a *App) step(now time.Time) {
	if a.snow != nil {
		a.snowSurf.Begin()
		a.snow.Step(now)
		a.snowSurf.End()
	}
	if a.bolt != nil && !a.bolt.Done() {
		a.boltSurf.Begin()
		a.bolt.Step(now)
		a.boltSurf.End()
	}
	if a.spark != nil {
		a.sparkSurf.Begin()
		a.spark.Step(now)
		a.sparkSurf.End()
	}
}

func (a *App) layout() Layout {
	return NewLayout(a.width, a.height, a.cellW, fontSize)
}

func (a *App) caretPixel(offset int) (float64, float64) {
	l := a.layout()
	col, row := l.Probe().Locate(a.session.Target(), offset)
	return l.Pixel(col, row)
}

func (a *App) Draw() {
	t := a.opts.Theme
	rl.BeginDrawing()
	rl.ClearBackground(toColor(viz.Color(t.BarEmpty), 1))

	a.snowSurf.Draw()
	a.boltSurf.Draw()
	a.sparkSurf.Draw()

	if a.showResults {
		a.drawResults()
	} else {
		a.drawTyping()
	}
	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y float64, size float32, c rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), size, 1, c)
}

func (a *App) drawTyping() {
	t := a.opts.Theme
	l := a.layout()

	a.drawText("snowtype", 30, 24, 24, toColor(viz.Color(t.Primary), 1))
	a.drawText(fmt.Sprintf("%.2f cps", a.session.Speed()), float64(a.width-160), 28, hintSize, toColor(viz.Color(t.Muted), 1))

	a.drawBar(l)

	marks := a.session.Highlight()
	pos := l.Probe().Positions(a.session.Target())
	i := 0
	for _, r := range a.session.Target() {
		col := viz.Color(t.Text)
		switch marks[i] {
		case typing.Correct:
			col = viz.Color(t.Correct)
		case typing.Incorrect:
			col = viz.Color(t.Incorrect)
		}
		x, y := l.Pixel(pos[i].Col, pos[i].Row)
		rl.DrawTextCodepoint(a.Font, r, rl.NewVector2(float32(x)-a.cellW/2, float32(y)-fontSize/2), fontSize, toColor(col, 1))
		i++
	}

	cx, cy := a.caretPixel(utf8.RuneCountInString(a.session.Input()))
	rl.DrawRectangle(int32(cx-float64(a.cellW)/2), int32(cy+fontSize/2), int32(a.cellW), 2, toColor(viz.Color(t.Primary), 1))

	if a.session.Locked() {
		a.drawText("fix your mistakes to keep going", l.Left, l.Bottom(a.session.Target())+16, hintSize, toColor(viz.Color(t.Incorrect), 1))
	}
	a.drawText("ENTER: NEXT  ESC: RESULTS", float64(a.width-280), float64(a.height-36), 14, toColor(viz.Color(t.Muted), 1))
}

func (a *App) drawBar(l Layout) {
	t := a.opts.Theme
	colors := viz.SegmentColors(t.BarFrom, t.BarTo, viz.BarSegments)
	filled := viz.FilledSegments(float64(a.session.Progress()), 100, viz.BarSegments)
	segW := l.Width / viz.BarSegments
	for i := 0; i < viz.BarSegments; i++ {
		c := toColor(viz.Color(t.BarEmpty), 1)
		if i < filled {
			c = toColor(colors[i], 1)
		}
		rect := rl.NewRectangle(float32(l.Left+float64(i)*segW+2), 80, float32(segW-4), 18)
		rl.DrawRectangleRounded(rect, 0.4, 4, c)
	}
}

func (a *App) drawResults() {
	t := a.opts.Theme
	vals := a.stats.Values()
	a.drawText("snowtype", 50, 50, 40, toColor(viz.Color(t.Primary), 1))
	a.drawText("results", 50, 100, 16, toColor(viz.Color(t.Muted), 1))

	rows := []struct {
		label string
		pct   float64
		text  string
	}{
		{"speed", vals["speed"] * 10, fmt.Sprintf("%.2f cps", vals["speed"])},
		{"top speed", vals["peak"] * 10, fmt.Sprintf("%.2f cps", vals["peak"])},
		{"accuracy", vals["accuracy"], fmt.Sprintf("%.0f%%", vals["accuracy"])},
		{"consistency", vals["consistency"] * 100, fmt.Sprintf("%.0f%%", vals["consistency"]*100)},
		{"corrections", vals["corrections"] * 5, fmt.Sprintf("%.0f", vals["corrections"])},
	}
	y := 160.0
	for _, r := range rows {
		a.drawText(r.label, 50, y, 20, toColor(viz.Color(t.Text), 1))
		w := float32(min(max(r.pct, 0), 100) / 100 * 400)
		rl.DrawRectangleRec(rl.NewRectangle(220, float32(y)+4, 400, 16), toColor(viz.Color(t.BarEmpty), 1))
		rl.DrawRectangleRec(rl.NewRectangle(220, float32(y)+4, w, 16), toColor(viz.Color(t.BarFrom), 1))
		a.drawText(r.text, 640, y, 20, toColor(viz.Color(t.Muted), 1))
		y += 36
	}

	a.drawTelemetry(50, y+30, 570, 80)
	a.drawText("ESC: BACK", float64(a.width-160), float64(a.height-36), 14, toColor(viz.Color(t.Muted), 1))
}

// drawTelemetry plots the session's speed samples as a line strip.
func (a *App) drawTelemetry(x, y, w, h float64) {
	samples := a.session.Samples()
	if len(samples) < 2 {
		return
	}
	pts := SeriesPoints(samples, x, y, w, h)
	line := make([]rl.Vector2, len(pts))
	for i, p := range pts {
		line[i] = rl.NewVector2(float32(p.X), float32(p.Y))
	}
	rl.DrawLineStrip(line, toColor(viz.Color(a.opts.Theme.Primary), 1))
}
