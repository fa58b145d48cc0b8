package geometry

import (
	"fmt"
	"strings"

	"github.com/patricklbell/raytracer/types"
)

// Mode selects how BVH boxes are collected.
type Mode uint8

const (
	// One mesh per tree depth.
	Flat Mode = iota

	// A tree of named groups; a new group opens wherever the tree branches.
	Grouping
)

func (m Mode) String() string {
	switch m {
	case Flat:
		return "flat"
	case Grouping:
		return "grouping"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode maps "flat" or "grouping" to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "flat", "":
		return Flat, nil
	case "grouping", "group", "groups":
		return Grouping, nil
	}
	return Flat, fmt.Errorf("geometry: unknown mode %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Options control the projection of decoded dumps into geometry.
type Options struct {
	// Segment length (viewer units) for rays that missed.
	MissLength float32

	// Emit a point set with the hit points of all hits.
	DrawHitPoints bool

	// Per-depth growth applied to box bounds to keep nested boxes from
	// sharing faces. Cosmetic only.
	Inflation float64

	// Box coordinates are clamped to +/- SanitizeBound; NaN becomes 0.
	SanitizeBound float32

	// Depth at which the depth color ramp reaches its end color.
	MaxColorDepth int

	HitColor      types.Vec4
	MissColor     types.Vec4
	HitPointColor types.Vec4

	// Box colors at depth 0 and at MaxColorDepth.
	ShallowColor types.Vec4
	DeepColor    types.Vec4
}

// DefaultOptions returns the stock projection settings.
func DefaultOptions() Options {
	return Options{
		MissLength:    2.0,
		DrawHitPoints: true,
		Inflation:     0.001,
		SanitizeBound: 1e6,
		MaxColorDepth: 20,
		HitColor:      types.XYZW(0.0, 0.5, 1.0, 1.0),
		MissColor:     types.XYZW(1.0, 0.0, 0.0, 1.0),
		HitPointColor: types.XYZW(0.0, 1.0, 0.0, 1.0),
		ShallowColor:  types.XYZW(0.0, 0.2, 1.0, 1.0),
		DeepColor:     types.XYZW(1.0, 0.2, 0.0, 1.0),
	}
}

// DepthColor returns the box color for a tree depth.
func (o Options) DepthColor(depth int) types.Vec4 {
	if o.MaxColorDepth <= 0 {
		return o.ShallowColor
	}
	return o.ShallowColor.Lerp(o.DeepColor, float32(depth)/float32(o.MaxColorDepth))
}
