package loader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/patricklbell/raytracer/geometry"
	"github.com/patricklbell/raytracer/types"
)

// Format selects the BVH parser.
type Format uint8

const (
	// Sniff the first bytes of the input: a leading LBVH selects text.
	AutoFormat Format = iota
	TextFormat
	BinaryFormat
)

func (f Format) String() string {
	switch f {
	case AutoFormat:
		return "auto"
	case TextFormat:
		return "text"
	case BinaryFormat:
		return "binary"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat maps "auto", "text" or "binary" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "auto", "":
		return AutoFormat, nil
	case "text", "txt":
		return TextFormat, nil
	case "binary", "bin":
		return BinaryFormat, nil
	}
	return AutoFormat, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	format, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = format
	return nil
}

// Config is passed explicitly into every load operation.
type Config struct {
	Mode   geometry.Mode `yaml:"mode"`
	Format Format        `yaml:"format"`

	MissLength    float32 `yaml:"miss_length"`
	DrawHitPoints bool    `yaml:"draw_hit_points"`
	Inflation     float64 `yaml:"inflation"`
	SanitizeBound float32 `yaml:"sanitize_bound"`
	MaxColorDepth int     `yaml:"max_color_depth"`

	HitColor      types.Vec4 `yaml:"hit_color"`
	MissColor     types.Vec4 `yaml:"miss_color"`
	HitPointColor types.Vec4 `yaml:"hit_point_color"`
	ShallowColor  types.Vec4 `yaml:"shallow_color"`
	DeepColor     types.Vec4 `yaml:"deep_color"`
}

// DefaultConfig returns a flat mode, auto format configuration with the
// default projection settings.
func DefaultConfig() Config {
	opts := geometry.DefaultOptions()
	return Config{
		Mode:          geometry.Flat,
		Format:        AutoFormat,
		MissLength:    opts.MissLength,
		DrawHitPoints: opts.DrawHitPoints,
		Inflation:     opts.Inflation,
		SanitizeBound: opts.SanitizeBound,
		MaxColorDepth: opts.MaxColorDepth,
		HitColor:      opts.HitColor,
		MissColor:     opts.MissColor,
		HitPointColor: opts.HitPointColor,
		ShallowColor:  opts.ShallowColor,
		DeepColor:     opts.DeepColor,
	}
}

// ReadConfig loads a YAML file on top of the defaults. Keys missing from
// the file keep their default value.
func ReadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("loader: invalid config '%s': %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("loader: invalid config '%s': %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings that cannot produce sensible geometry.
func (c Config) Validate() error {
	switch {
	case c.MissLength < 0:
		return fmt.Errorf("miss_length must not be negative; got %v", c.MissLength)
	case c.Inflation < 0:
		return fmt.Errorf("inflation must not be negative; got %v", c.Inflation)
	case c.SanitizeBound < 0:
		return fmt.Errorf("sanitize_bound must not be negative; got %v", c.SanitizeBound)
	}
	return nil
}

// Options returns the projection settings of the config.
func (c Config) Options() geometry.Options {
	return geometry.Options{
		MissLength:    c.MissLength,
		DrawHitPoints: c.DrawHitPoints,
		Inflation:     c.Inflation,
		SanitizeBound: c.SanitizeBound,
		MaxColorDepth: c.MaxColorDepth,
		HitColor:      c.HitColor,
		MissColor:     c.MissColor,
		HitPointColor: c.HitPointColor,
		ShallowColor:  c.ShallowColor,
		DeepColor:     c.DeepColor,
	}
}
