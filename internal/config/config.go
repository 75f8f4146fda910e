package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIntegrator = "rk45"
	DefaultMass       = 1.0
	DefaultK1         = 10.0
	DefaultK2         = 8.0
	DefaultX1         = 1.75
	DefaultTEnd       = 60.0
	DefaultSamples    = 1000
	DefaultAbsTol     = 1e-10
	DefaultRelTol     = 1e-8

	DefaultWidth       = 960
	DefaultHeight      = 540
	DefaultFPS         = 20
	DefaultRunTime     = 30.0
	DefaultHold        = 2.0
	DefaultOutput      = "coupled_oscillator.gif"
	DefaultStrokeWidth = 3.0
	DefaultDotRadius   = 7.0
)

type Config struct {
	Integrator string          `yaml:"integrator" toml:"integrator"`
	Physics    PhysicsConfig   `yaml:"physics" toml:"physics"`
	InitState  InitStateConfig `yaml:"init_state" toml:"init_state"`
	TStart     float64         `yaml:"t_start" toml:"t_start"`
	TEnd       float64         `yaml:"t_end" toml:"t_end"`
	Samples    int             `yaml:"samples" toml:"samples"`
	Tolerance  ToleranceConfig `yaml:"tolerance" toml:"tolerance"`
	MaxStep    float64         `yaml:"max_step" toml:"max_step"`
	Render     RenderConfig    `yaml:"render" toml:"render"`
}

type PhysicsConfig struct {
	Mass float64 `yaml:"mass" toml:"mass"`
	K1   float64 `yaml:"k1" toml:"k1"`
	K2   float64 `yaml:"k2" toml:"k2"`
}

type InitStateConfig struct {
	X1 float64 `yaml:"x1" toml:"x1"`
	V1 float64 `yaml:"v1" toml:"v1"`
	X2 float64 `yaml:"x2" toml:"x2"`
	V2 float64 `yaml:"v2" toml:"v2"`
}

type ToleranceConfig struct {
	Abs float64 `yaml:"abs" toml:"abs"`
	Rel float64 `yaml:"rel" toml:"rel"`
}

type AxisRange struct {
	Min  float64 `yaml:"min" toml:"min"`
	Max  float64 `yaml:"max" toml:"max"`
	Step float64 `yaml:"step" toml:"step"`
}

type RenderConfig struct {
	Width       int       `yaml:"width" toml:"width"`
	Height      int       `yaml:"height" toml:"height"`
	FPS         int       `yaml:"fps" toml:"fps"`
	RunTime     float64   `yaml:"run_time" toml:"run_time"`
	Hold        float64   `yaml:"hold" toml:"hold"`
	Output      string    `yaml:"output" toml:"output"`
	Background  string    `yaml:"background" toml:"background"`
	AxisColor   string    `yaml:"axis_color" toml:"axis_color"`
	Colors      [2]string `yaml:"colors" toml:"colors"`
	Labels      [2]string `yaml:"labels" toml:"labels"`
	StrokeWidth float64   `yaml:"stroke_width" toml:"stroke_width"`
	DotRadius   float64   `yaml:"dot_radius" toml:"dot_radius"`
	XRange      AxisRange `yaml:"x_range" toml:"x_range"`
	YRange      AxisRange `yaml:"y_range" toml:"y_range"`
	XLabel      string    `yaml:"x_label" toml:"x_label"`
	YLabel      string    `yaml:"y_label" toml:"y_label"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Physics: PhysicsConfig{
			Mass: DefaultMass,
			K1:   DefaultK1,
			K2:   DefaultK2,
		},
		InitState: InitStateConfig{
			X1: DefaultX1,
		},
		TEnd:    DefaultTEnd,
		Samples: DefaultSamples,
		Tolerance: ToleranceConfig{
			Abs: DefaultAbsTol,
			Rel: DefaultRelTol,
		},
		Render: RenderConfig{
			Width:       DefaultWidth,
			Height:      DefaultHeight,
			FPS:         DefaultFPS,
			RunTime:     DefaultRunTime,
			Hold:        DefaultHold,
			Output:      DefaultOutput,
			Background:  "#000000",
			AxisColor:   "#DDDDDD",
			Colors:      [2]string{"#0099DD", "#FF7043"},
			Labels:      [2]string{"Mass 1", "Mass 2"},
			StrokeWidth: DefaultStrokeWidth,
			DotRadius:   DefaultDotRadius,
			XRange:      AxisRange{Min: 0, Max: 60, Step: 5},
			YRange:      AxisRange{Min: -3, Max: 3, Step: 0.5},
			XLabel:      "t",
			YLabel:      "x",
		},
	}
}

// Load reads a config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes a config file over cfg, picking the decoder from the
// extension. Keys missing from the file keep the values already in cfg,
// so a preset can be refined by a file.
func LoadInto(path string, cfg *Config) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", "":
		err = loadYAML(path, cfg)
	case ".toml":
		err = loadTOML(path, cfg)
	case ".hcl":
		err = loadHCL(path, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func loadYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges only; colors are checked when the scene is built.
func (c *Config) Validate() error {
	if c.Samples < 2 {
		return fmt.Errorf("samples must be at least 2, got %d", c.Samples)
	}
	if !finite(c.TStart, c.TEnd) || c.TEnd <= c.TStart {
		return fmt.Errorf("time span [%g, %g] must be finite and increasing", c.TStart, c.TEnd)
	}
	if c.Physics.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %g", c.Physics.Mass)
	}
	if c.Physics.K1 < 0 || c.Physics.K2 < 0 {
		return fmt.Errorf("spring constants must be non-negative, got k1=%g k2=%g", c.Physics.K1, c.Physics.K2)
	}
	if c.Tolerance.Abs < 0 || c.Tolerance.Rel < 0 || (c.Tolerance.Abs == 0 && c.Tolerance.Rel == 0) {
		return fmt.Errorf("tolerance abs=%g rel=%g is invalid", c.Tolerance.Abs, c.Tolerance.Rel)
	}
	if c.MaxStep < 0 {
		return fmt.Errorf("max_step must not be negative, got %g", c.MaxStep)
	}
	return c.Render.Validate()
}

func (r *RenderConfig) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("render size %dx%d must be positive", r.Width, r.Height)
	}
	if r.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", r.FPS)
	}
	if r.RunTime <= 0 {
		return fmt.Errorf("run_time must be positive, got %g", r.RunTime)
	}
	if r.Hold < 0 {
		return fmt.Errorf("hold must not be negative, got %g", r.Hold)
	}
	if r.StrokeWidth <= 0 || r.DotRadius <= 0 {
		return fmt.Errorf("stroke_width and dot_radius must be positive")
	}
	for name, a := range map[string]AxisRange{"x_range": r.XRange, "y_range": r.YRange} {
		if !finite(a.Min, a.Max, a.Step) || a.Max <= a.Min || a.Step <= 0 {
			return fmt.Errorf("%s [%g, %g, %g] is invalid", name, a.Min, a.Max, a.Step)
		}
	}
	return nil
}

// InitialState returns [x1, v1, x2, v2].
func (c *Config) InitialState() []float64 {
	s := c.InitState
	return []float64{s.X1, s.V1, s.X2, s.V2}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
