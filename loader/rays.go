// Package loader runs complete load operations: it opens a dump, decodes
// it, projects it into geometry and reports what it found. Every call is
// independent; configuration is passed in explicitly.
package loader

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/patricklbell/raytracer/asset"
	"github.com/patricklbell/raytracer/geometry"
	"github.com/patricklbell/raytracer/log"
	"github.com/patricklbell/raytracer/ray"
)

var logger = log.New("loader")

// RayResult is the outcome of a ray dump load.
type RayResult struct {
	// Correlates log lines and exported documents of a single load.
	ID uuid.UUID

	Source   string
	Records  []ray.Record
	Stats    ray.Stats
	Geometry *geometry.RaySet
}

// LoadRays decodes and projects the ray dump at path, which may be a local
// file or an http/https URL.
func LoadRays(path string, cfg Config) (*RayResult, error) {
	res, err := asset.NewResource(path)
	if err != nil {
		instrumentLoadError(kindRays, err)
		return nil, err
	}
	defer res.Close()

	return ReadRays(res, cfg)
}

// ReadRays decodes and projects a ray dump from res. A dump without a
// single complete record yields ErrEmptyInput.
func ReadRays(res *asset.Resource, cfg Config) (*RayResult, error) {
	out := &RayResult{ID: uuid.New(), Source: res.Path()}
	logger.Noticef(`[%s] decoding ray dump from "%s"`, out.ID, out.Source)
	start := time.Now()

	records, trailing, err := ray.ReadAll(res, res.Size())
	if err != nil {
		instrumentLoadError(kindRays, err)
		return nil, fmt.Errorf("loader: could not decode '%s': %w", out.Source, err)
	}
	if trailing > 0 {
		logger.Warningf("[%s] ignoring %d trailing bytes", out.ID, trailing)
	}
	if len(records) == 0 {
		instrumentLoadError(kindRays, ErrEmptyInput)
		return nil, fmt.Errorf("%w: '%s' contains no ray records", ErrEmptyInput, out.Source)
	}

	out.Records = records
	out.Stats = ray.Summarize(records)
	out.Geometry = geometry.ProjectRays(records, cfg.Options())

	instrumentRays(out.Stats.Hits, out.Stats.Misses)
	instrumentLoad(kindRays, "", start)
	logger.Noticef(
		"[%s] decoded %d rays (%d hits, %d misses) in %d ms",
		out.ID, out.Stats.Total, out.Stats.Hits, out.Stats.Misses, time.Since(start).Nanoseconds()/1e6,
	)
	return out, nil
}
