// Noise preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/noisepreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/latticenoise/camera"
	"github.com/pthm-cable/latticenoise/config"
	"github.com/pthm-cable/latticenoise/noise"
	"github.com/pthm-cable/latticenoise/render"
	"github.com/pthm-cable/latticenoise/telemetry"
)

const panelWidth = 440

// preview holds everything the frame loop mutates.
type preview struct {
	cfg     *config.Config
	gen     *noise.Generator
	typ     noise.NoiseType
	rampIdx int

	gridSize int
	cam      *camera.Camera

	buf    noise.Buffer
	pixels []color.RGBA
	stats  telemetry.FieldStats
	perf   *telemetry.PerfCollector

	needsRegen bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	savePath := flag.String("save", "noisepreview.yaml", "Where the Save button writes the config")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	gen, err := noise.NewGenerator(cfg.Noise)
	if err != nil {
		slog.Error("failed to create generator", "error", err)
		os.Exit(1)
	}

	previewPx := cfg.Preview.Height - 20
	texScale := max(cfg.Preview.TexScale, 1)
	p := &preview{
		cfg:        cfg,
		gen:        gen,
		typ:        cfg.Sampling.Type,
		gridSize:   max(previewPx/texScale, 1),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		needsRegen: true,
	}
	p.pixels = make([]color.RGBA, p.gridSize*p.gridSize)
	p.resetCamera()

	rl.InitWindow(int32(previewPx+panelWidth+30), int32(cfg.Preview.Height), "Noise Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Preview.TargetFPS))

	img := rl.GenImageColor(p.gridSize, p.gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	for !rl.WindowShouldClose() {
		p.perf.RecordFrame()
		p.handleKeys()
		p.handleMouse(previewPx)

		if p.needsRegen {
			if err := p.regenerate(); err != nil {
				slog.Error("generate", "error", err)
			}
			rl.UpdateTexture(texture, p.pixels)
			p.needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(p.gridSize), Height: float32(p.gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: float32(previewPx), Height: float32(previewPx)},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, int32(previewPx), int32(previewPx), rl.DarkGray)

		p.drawPanel(float32(previewPx+20), *savePath)

		rl.EndDrawing()
	}
}

// resetCamera puts the configured sampling start at the top-left corner.
func (p *preview) resetCamera() {
	p.cam = camera.NewAt(p.cfg.Sampling.Start.X, p.cfg.Sampling.Start.Y, p.gridSize, p.gridSize, p.gen.Config().Frequency)
}

// handleKeys pans with the arrow keys and copies the noise config on C.
func (p *preview) handleKeys() {
	step := float64(p.cfg.Server.PanStep)
	var dx, dy float64
	if rl.IsKeyDown(rl.KeyLeft) {
		dx -= step
	}
	if rl.IsKeyDown(rl.KeyRight) {
		dx += step
	}
	if rl.IsKeyDown(rl.KeyUp) {
		dy -= step
	}
	if rl.IsKeyDown(rl.KeyDown) {
		dy += step
	}
	if dx != 0 || dy != 0 {
		p.cam.Pan(dx, dy)
		p.needsRegen = true
	}

	if rl.IsKeyPressed(rl.KeyC) {
		data, err := yaml.Marshal(map[string]noise.Config{"noise": p.gen.Config()})
		if err != nil {
			slog.Warn("marshal noise config", "error", err)
			return
		}
		rl.SetClipboardText(string(data))
	}
}

// handleMouse zooms around the view centre with the wheel.
func (p *preview) handleMouse(previewPx int) {
	wheel := rl.GetMouseWheelMove()
	if wheel == 0 {
		return
	}
	mouse := rl.GetMousePosition()
	if mouse.X < 10 || mouse.Y < 10 || mouse.X > float32(10+previewPx) || mouse.Y > float32(10+previewPx) {
		return
	}
	factor := p.cfg.Server.ZoomFactor
	if wheel > 0 {
		factor = 1 / factor
	}
	p.setFrequency(p.cam.Frequency * factor)
}

// setFrequency moves the camera and generator to a new frequency together.
func (p *preview) setFrequency(frequency float64) {
	p.cam.SetFrequency(frequency)
	p.apply("frequency", p.gen.SetFrequency(p.cam.Frequency))
}

// regenerate fills the grid and recolours the pixels.
func (p *preview) regenerate() error {
	p.perf.StartBatch()
	p.perf.StartPhase(telemetry.PhaseSample)
	x, y := p.cam.Origin()
	values := p.buf.Resize(p.gridSize * p.gridSize)
	if err := p.gen.Square2Into(values, p.typ, x, y, p.gridSize, p.gridSize); err != nil {
		return err
	}

	p.perf.StartPhase(telemetry.PhaseStats)
	p.stats = telemetry.ComputeFieldStats(values, p.gridSize, p.cfg.Telemetry.RangeBound)

	p.perf.StartPhase(telemetry.PhaseWrite)
	ramp, err := render.RampByName(render.RampNames()[p.rampIdx])
	if err != nil {
		return err
	}
	ramp.Fill(p.pixels, values)
	p.perf.EndBatch(len(values))
	return nil
}

// apply runs a generator setter and schedules a redraw when it succeeds.
func (p *preview) apply(what string, err error) {
	if err != nil {
		slog.Warn("rejected", "setting", what, "error", err)
		return
	}
	p.needsRegen = true
}

// slider draws a labelled slider bar and returns the new value. changed is
// false unless the user moved the slider, so values outside the slider range
// are not snapped back into it.
func slider(x float32, y *float32, label, lo, hi string, value, min, max float32, format string) (v float32, changed bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	shown := value
	if shown < min {
		shown = min
	}
	if shown > max {
		shown = max
	}
	v = gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		lo, hi,
		shown, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v, v != shown
}

func (p *preview) drawPanel(panelX float32, savePath string) {
	cfg := p.gen.Config()
	panelY := float32(10)

	rl.DrawText("Noise Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 35

	if v, changed := slider(panelX, &panelY, "Frequency", "0.001", "0.1",
		float32(cfg.Frequency), 0.001, 0.1, "%.4f"); changed {
		p.setFrequency(float64(v))
	}
	if v, changed := slider(panelX, &panelY, "Octaves (fractal detail level)", "1", "8",
		float32(cfg.Octaves), 1, 8, "%.0f"); changed && int(v) != cfg.Octaves {
		p.apply("octaves", p.gen.SetFractalOctaves(int(v)))
	}
	if v, changed := slider(panelX, &panelY, "Lacunarity (frequency multiplier)", "1.0", "4.0",
		float32(cfg.Lacunarity), 1, 4, "%.2f"); changed {
		p.apply("lacunarity", p.gen.SetFractalLacunarity(float64(v)))
	}
	if v, changed := slider(panelX, &panelY, "Gain (amplitude multiplier)", "0.1", "1.0",
		float32(cfg.Gain), 0.1, 1, "%.2f"); changed {
		p.apply("gain", p.gen.SetFractalGain(float64(v)))
	}
	if v, changed := slider(panelX, &panelY, "Seed", "0", "99999",
		float32(cfg.Seed), 0, 99999, "%.0f"); changed && int32(v) != cfg.Seed {
		p.apply("seed", p.gen.SetSeed(int32(v)))
	}

	// Separator
	rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+panelWidth-20, int32(panelY), rl.LightGray)
	panelY += 15

	// Cycling buttons
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 200, Height: 30}, "Type: "+p.typ.String()) {
		types := noise.NoiseTypes()
		p.typ = types[(int(p.typ)+1)%len(types)]
		p.needsRegen = true
	}
	if gui.Button(rl.Rectangle{X: panelX + 210, Y: panelY, Width: 200, Height: 30}, "Fractal: "+cfg.FractalType.String()) {
		types := noise.FractalTypes()
		p.apply("fractal type", p.gen.SetFractalType(types[(int(cfg.FractalType)+1)%len(types)]))
	}
	panelY += 40

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 200, Height: 30}, "Interp: "+cfg.Interpolation.String()) {
		interps := noise.Interps()
		p.apply("interpolation", p.gen.SetInterpolation(interps[(int(cfg.Interpolation)+1)%len(interps)]))
	}
	if gui.Button(rl.Rectangle{X: panelX + 210, Y: panelY, Width: 200, Height: 30}, "Colours: "+render.RampNames()[p.rampIdx]) {
		p.rampIdx = (p.rampIdx + 1) % len(render.RampNames())
		p.needsRegen = true
	}
	panelY += 40

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 200, Height: 30}, "Random Seed") {
		p.apply("seed", p.gen.SetSeed(rl.GetRandomValue(0, 99999)))
	}
	if gui.Button(rl.Rectangle{X: panelX + 210, Y: panelY, Width: 200, Height: 30}, "Reset All") {
		p.typ = p.cfg.Sampling.Type
		p.apply("config", p.gen.Configure(p.cfg.Noise))
		p.resetCamera()
	}
	panelY += 40

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 200, Height: 30}, "Save Config") {
		out := *p.cfg
		out.Noise = p.gen.Config()
		out.Sampling.Type = p.typ
		if err := out.WriteYAML(savePath); err != nil {
			slog.Error("save config", "error", err)
		} else {
			slog.Info("config saved", "path", savePath)
		}
	}
	panelY += 50

	// Stats
	s := p.stats
	perf := p.perf.Stats()
	lines := []string{
		fmt.Sprintf("Min: %+.3f  Max: %+.3f", s.Min, s.Max),
		fmt.Sprintf("Mean: %+.3f  Std: %.3f", s.Mean, s.Std),
		fmt.Sprintf("Out of range (>%.2f): %d", s.Bound, s.OutOfRange),
		fmt.Sprintf("Centre: (%.3f, %.3f) lattice", p.cam.X, p.cam.Y),
		fmt.Sprintf("Batch: %d us (%.0f ns/sample)  FPS: %.0f", perf.AvgBatchDuration.Microseconds(), perf.NsPerSample, perf.FPS),
	}
	for _, line := range lines {
		rl.DrawText(line, int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 20
	}

	// Instructions
	rl.DrawText("Arrows pan, wheel zooms, C copies the noise YAML", int32(panelX), int32(p.cfg.Preview.Height-30), 12, rl.LightGray)
}
