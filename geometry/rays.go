package geometry

import (
	"github.com/patricklbell/raytracer/coord"
	"github.com/patricklbell/raytracer/ray"
)

// Mesh names used for ray geometry.
const (
	HitRaysName  = "RayDump_Rays_Hit"
	MissRaysName = "RayDump_Rays_Miss"
	HitPointName = "RayDump_Hits"
)

// RaySet holds projected ray segments split by classification.
type RaySet struct {
	Hits   *Mesh
	Misses *Mesh

	// Nil unless Options.DrawHitPoints is set.
	HitPoints *Mesh
}

// ProjectRays converts records into line segments in viewer coordinates.
// A hit is drawn from its origin for exactly t units along its direction;
// a miss is drawn for opts.MissLength units. Record order is preserved
// within each set. Emitted coordinates go through Sanitize so degenerate
// records still produce finite geometry.
func ProjectRays(records []ray.Record, opts Options) *RaySet {
	set := &RaySet{
		Hits:   NewMesh(HitRaysName, opts.HitColor),
		Misses: NewMesh(MissRaysName, opts.MissColor),
	}
	if opts.DrawHitPoints {
		set.HitPoints = NewMesh(HitPointName, opts.HitPointColor)
	}

	for _, rec := range records {
		origin := coord.ToTarget(rec.Origin)
		dir := coord.ToTarget(rec.Direction)
		bound := opts.SanitizeBound

		if !rec.IsHit() {
			end := origin.Add(dir.Mul(opts.MissLength))
			set.Misses.AddSegment(Sanitize(origin, bound), Sanitize(end, bound))
			continue
		}

		end := origin.Add(dir.Mul(rec.T))
		set.Hits.AddSegment(Sanitize(origin, bound), Sanitize(end, bound))
		if set.HitPoints != nil {
			set.HitPoints.AddPoint(Sanitize(coord.ToTarget(rec.HitPoint), bound))
		}
	}

	return set
}

// Meshes returns the non-empty meshes of the set.
func (s *RaySet) Meshes() []*Mesh {
	var out []*Mesh
	for _, m := range []*Mesh{s.Hits, s.Misses, s.HitPoints} {
		if m != nil && !m.IsEmpty() {
			out = append(out, m)
		}
	}
	return out
}

// Segments returns the number of hit and miss segments.
func (s *RaySet) Segments() (hits, misses int) {
	return len(s.Hits.Edges), len(s.Misses.Edges)
}
