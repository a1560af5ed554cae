package server

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/latticenoise/camera"
	"github.com/pthm-cable/latticenoise/noise"
	"github.com/pthm-cable/latticenoise/render"
	"github.com/pthm-cable/latticenoise/telemetry"
)

// View is one session's window onto a noise field. It owns its generator and
// is only touched from the session's render loop.
type View struct {
	gen     *noise.Generator
	typ     noise.NoiseType
	cam     *camera.Camera
	panStep float64
	zoom    float64
	ramp    int
	buf     noise.Buffer
}

// NewView creates a view centred on the lattice origin.
func NewView(cfg noise.Config, typ noise.NoiseType, panStep int, zoom float64) (*View, error) {
	gen, err := noise.NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown noise type %d", noise.ErrInvalidConfig, uint8(typ))
	}
	if panStep < 1 {
		panStep = 1
	}
	if zoom <= 1 {
		zoom = 1.25
	}
	return &View{
		gen:     gen,
		typ:     typ,
		cam:     camera.New(0, 0, cfg.Frequency),
		panStep: float64(panStep),
		zoom:    zoom,
	}, nil
}

// Apply performs one action. It returns true when the session should end.
func (v *View) Apply(a Action) (bool, error) {
	switch a {
	case ActionUp:
		v.cam.Pan(0, -v.panStep)
	case ActionDown:
		v.cam.Pan(0, v.panStep)
	case ActionLeft:
		v.cam.Pan(-v.panStep, 0)
	case ActionRight:
		v.cam.Pan(v.panStep, 0)
	case ActionZoomIn:
		return false, v.zoomBy(1 / v.zoom)
	case ActionZoomOut:
		return false, v.zoomBy(v.zoom)
	case ActionNextSeed:
		return false, v.gen.SetSeed(v.gen.Seed() + 1)
	case ActionNextType:
		types := noise.NoiseTypes()
		v.typ = types[(int(v.typ)+1)%len(types)]
	case ActionNextFractal:
		types := noise.FractalTypes()
		next := types[(int(v.gen.Config().FractalType)+1)%len(types)]
		return false, v.gen.SetFractalType(next)
	case ActionNextRamp:
		v.ramp = (v.ramp + 1) % len(render.RampNames())
	case ActionQuit:
		return true, nil
	}
	return false, nil
}

// zoomBy scales the frequency by k around the centre of the view.
func (v *View) zoomBy(k float64) error {
	prev := v.cam.Frequency
	v.cam.ZoomBy(k)
	if err := v.gen.SetFrequency(v.cam.Frequency); err != nil {
		v.cam.SetFrequency(prev)
		return err
	}
	return nil
}

// Render draws the field into a cols x rows terminal, leaving the last row
// for the status line.
func (v *View) Render(cols, rows int) (string, error) {
	if cols < 1 || rows < 2 {
		return "", nil
	}
	w, h := cols, (rows-1)*2
	v.cam.Resize(w, h)
	x, y := v.cam.Origin()
	values := v.buf.Resize(w * h)
	if err := v.gen.Square2Into(values, v.typ, x, y, w, h); err != nil {
		return "", err
	}

	ramp, err := render.RampByName(render.RampNames()[v.ramp])
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	render.WriteField(&sb, values, w, h, ramp)

	stats := telemetry.ComputeFieldStats(values, w, 1.05)
	cfg := v.gen.Config()
	status := fmt.Sprintf(" %s seed=%d freq=%.4g %s/%d  mean=%+.3f min=%+.3f max=%+.3f  at (%.2f,%.2f)  wasd pan +/- zoom n seed t type f fractal c colour q quit",
		v.typ, cfg.Seed, cfg.Frequency, cfg.FractalType, cfg.Octaves,
		stats.Mean, stats.Min, stats.Max, v.cam.X, v.cam.Y)
	if len(status) > cols {
		status = status[:cols]
	}
	sb.WriteString(render.MoveTo(rows, 1))
	sb.WriteString(render.Reset)
	sb.WriteString(render.CSI + "2K")
	sb.WriteString(status)

	return sb.String(), nil
}

// Type returns the noise type on screen.
func (v *View) Type() noise.NoiseType { return v.typ }

// Generator returns the view's generator.
func (v *View) Generator() *noise.Generator { return v.gen }

// Origin returns the world coordinate of the top-left sample.
func (v *View) Origin() (float64, float64) { return v.cam.Origin() }
