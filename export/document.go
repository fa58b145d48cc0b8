// Package export writes projected dumps for consumption outside this
// process: a JSON document for external viewers, STL solids for the BVH
// boxes and human readable summary tables.
package export

import (
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/patricklbell/raytracer/bvh"
	"github.com/patricklbell/raytracer/geometry"
	"github.com/patricklbell/raytracer/loader"
	"github.com/patricklbell/raytracer/ray"
)

// Document kinds.
const (
	KindRays = "rays"
	KindBVH  = "bvh"
)

// Document is the JSON representation of one load operation. All
// coordinates are already in viewer space.
type Document struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Kind   string `json:"kind"`

	// BVH documents only.
	Format string `json:"format,omitempty"`
	Mode   string `json:"mode,omitempty"`

	RayStats *ray.Stats `json:"ray_stats,omitempty"`
	BVHStats *bvh.Stats `json:"bvh_stats,omitempty"`

	// Ray sets and flat mode layers.
	Meshes []*geometry.Mesh `json:"meshes,omitempty"`

	// Grouping mode only.
	Groups *geometry.Group `json:"groups,omitempty"`
}

// NewRayDocument describes a ray dump load.
func NewRayDocument(res *loader.RayResult) *Document {
	stats := res.Stats
	return &Document{
		ID:       res.ID.String(),
		Source:   res.Source,
		Kind:     KindRays,
		RayStats: &stats,
		Meshes:   res.Geometry.Meshes(),
	}
}

// NewBVHDocument describes a BVH dump load.
func NewBVHDocument(res *loader.BVHResult) *Document {
	stats := res.Stats
	doc := &Document{
		ID:       res.ID.String(),
		Source:   res.Source,
		Kind:     KindBVH,
		Format:   res.Format.String(),
		Mode:     res.Geometry.Mode.String(),
		BVHStats: &stats,
	}

	if res.Geometry.Mode == geometry.Grouping {
		doc.Groups = res.Geometry.Groups
	} else {
		doc.Meshes = res.Geometry.Meshes()
	}
	return doc
}

// WriteJSON encodes doc to w.
func WriteJSON(w io.Writer, doc *Document, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
