package ray

import (
	"github.com/chewxy/math32"

	"github.com/patricklbell/raytracer/types"
)

// Stats summarizes a decoded ray dump.
type Stats struct {
	Total  int
	Hits   int
	Misses int

	// Mean hit parameter over hit records; zero if there are no hits.
	MeanT float64

	// Closest and farthest hit parameters.
	MinT float32
	MaxT float32

	// Bounds of the hit points in producer coordinates.
	HitMin types.Vec3
	HitMax types.Vec3
}

// Summarize collects hit/miss statistics for records. Infinite values are
// clamped to the float32 range and NaN hit points count as 0 so the
// summary stays finite.
func Summarize(records []Record) Stats {
	s := Stats{Total: len(records)}

	var sumT float64
	for _, rec := range records {
		if !rec.IsHit() {
			s.Misses++
			continue
		}

		t := finite(rec.T)
		p := types.Vec3{finite(rec.HitPoint[0]), finite(rec.HitPoint[1]), finite(rec.HitPoint[2])}
		if s.Hits == 0 {
			s.MinT, s.MaxT = t, t
			s.HitMin, s.HitMax = p, p
		}
		s.MinT = min(s.MinT, t)
		s.MaxT = max(s.MaxT, t)
		s.HitMin = types.MinVec3(s.HitMin, p)
		s.HitMax = types.MaxVec3(s.HitMax, p)
		s.Hits++
		sumT += float64(t)
	}

	if s.Hits > 0 {
		s.MeanT = sumT / float64(s.Hits)
	}
	return s
}

func finite(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Max(-math32.MaxFloat32, math32.Min(math32.MaxFloat32, v))
}
