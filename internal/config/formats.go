package config

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

func loadTOML(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown keys %v", path, undecoded)
	}
	return nil
}

// hclConfigFile mirrors Config with optional attributes so that only the
// values present in the file override defaults.
type hclConfigFile struct {
	Integrator *string       `hcl:"integrator,optional"`
	TStart     *float64      `hcl:"t_start,optional"`
	TEnd       *float64      `hcl:"t_end,optional"`
	Samples    *int          `hcl:"samples,optional"`
	MaxStep    *float64      `hcl:"max_step,optional"`
	Physics    *hclPhysics   `hcl:"physics,block"`
	InitState  *hclInitState `hcl:"init_state,block"`
	Tolerance  *hclTolerance `hcl:"tolerance,block"`
	Render     *hclRender    `hcl:"render,block"`
}

type hclPhysics struct {
	Mass *float64 `hcl:"mass,optional"`
	K1   *float64 `hcl:"k1,optional"`
	K2   *float64 `hcl:"k2,optional"`
}

type hclInitState struct {
	X1 *float64 `hcl:"x1,optional"`
	V1 *float64 `hcl:"v1,optional"`
	X2 *float64 `hcl:"x2,optional"`
	V2 *float64 `hcl:"v2,optional"`
}

type hclTolerance struct {
	Abs *float64 `hcl:"abs,optional"`
	Rel *float64 `hcl:"rel,optional"`
}

type hclRender struct {
	Width       *int      `hcl:"width,optional"`
	Height      *int      `hcl:"height,optional"`
	FPS         *int      `hcl:"fps,optional"`
	RunTime     *float64  `hcl:"run_time,optional"`
	Hold        *float64  `hcl:"hold,optional"`
	Output      *string   `hcl:"output,optional"`
	Background  *string   `hcl:"background,optional"`
	AxisColor   *string   `hcl:"axis_color,optional"`
	Colors      []string  `hcl:"colors,optional"`
	Labels      []string  `hcl:"labels,optional"`
	StrokeWidth *float64  `hcl:"stroke_width,optional"`
	DotRadius   *float64  `hcl:"dot_radius,optional"`
	XRange      []float64 `hcl:"x_range,optional"`
	YRange      []float64 `hcl:"y_range,optional"`
}

// hclEvalContext lets files write spans such as `t_end = 20 * pi`.
func hclEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"pi": cty.NumberFloatVal(math.Pi),
		},
	}
}

func loadHCL(path string, cfg *Config) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var parsed hclConfigFile
	diags = gohcl.DecodeBody(file.Body, hclEvalContext(), &parsed)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	return parsed.apply(cfg)
}

func (f *hclConfigFile) apply(cfg *Config) error {
	setString(&cfg.Integrator, f.Integrator)
	setFloat(&cfg.TStart, f.TStart)
	setFloat(&cfg.TEnd, f.TEnd)
	setInt(&cfg.Samples, f.Samples)
	setFloat(&cfg.MaxStep, f.MaxStep)

	if p := f.Physics; p != nil {
		setFloat(&cfg.Physics.Mass, p.Mass)
		setFloat(&cfg.Physics.K1, p.K1)
		setFloat(&cfg.Physics.K2, p.K2)
	}
	if s := f.InitState; s != nil {
		setFloat(&cfg.InitState.X1, s.X1)
		setFloat(&cfg.InitState.V1, s.V1)
		setFloat(&cfg.InitState.X2, s.X2)
		setFloat(&cfg.InitState.V2, s.V2)
	}
	if t := f.Tolerance; t != nil {
		setFloat(&cfg.Tolerance.Abs, t.Abs)
		setFloat(&cfg.Tolerance.Rel, t.Rel)
	}
	if r := f.Render; r != nil {
		rc := &cfg.Render
		setInt(&rc.Width, r.Width)
		setInt(&rc.Height, r.Height)
		setInt(&rc.FPS, r.FPS)
		setFloat(&rc.RunTime, r.RunTime)
		setFloat(&rc.Hold, r.Hold)
		setString(&rc.Output, r.Output)
		setString(&rc.Background, r.Background)
		setString(&rc.AxisColor, r.AxisColor)
		setFloat(&rc.StrokeWidth, r.StrokeWidth)
		setFloat(&rc.DotRadius, r.DotRadius)
		if err := setPair(&rc.Colors, r.Colors, "colors"); err != nil {
			return err
		}
		if err := setPair(&rc.Labels, r.Labels, "labels"); err != nil {
			return err
		}
		if err := setRange(&rc.XRange, r.XRange, "x_range"); err != nil {
			return err
		}
		if err := setRange(&rc.YRange, r.YRange, "y_range"); err != nil {
			return err
		}
	}
	return nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setPair(dst *[2]string, v []string, name string) error {
	if v == nil {
		return nil
	}
	if len(v) != 2 {
		return fmt.Errorf("%s needs exactly 2 entries, got %d", name, len(v))
	}
	*dst = [2]string{v[0], v[1]}
	return nil
}

func setRange(dst *AxisRange, v []float64, name string) error {
	if v == nil {
		return nil
	}
	if len(v) != 3 {
		return fmt.Errorf("%s needs [min, max, step], got %d values", name, len(v))
	}
	*dst = AxisRange{Min: v[0], Max: v[1], Step: v[2]}
	return nil
}
