package export

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/patricklbell/raytracer/geometry"
	"github.com/patricklbell/raytracer/loader"
)

// RayStats renders a summary table for a ray dump load.
func RayStats(w io.Writer, res *loader.RayResult) {
	s := res.Stats

	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Class", "Rays", "Share"})
	table.Append([]string{"Hit", fmt.Sprint(s.Hits), percent(s.Hits, s.Total)})
	table.Append([]string{"Miss", fmt.Sprint(s.Misses), percent(s.Misses, s.Total)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Hit t", "min / mean / max", fmt.Sprintf("%.3f / %.3f / %.3f", s.MinT, s.MeanT, s.MaxT)})
	if s.Hits > 0 {
		table.Append([]string{"Hit bounds", "min / max", fmt.Sprintf("%v / %v", s.HitMin, s.HitMax)})
	}
	table.SetFooter([]string{"Total", fmt.Sprint(s.Total), " "})

	table.Render()
}

// BVHStats renders a per-depth summary table for a BVH dump load.
func BVHStats(w io.Writer, res *loader.BVHResult) {
	s := res.Stats

	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Depth", "Nodes", "Mesh"})
	for depth, count := range s.PerDepth {
		mesh := "---"
		if res.Geometry.Mode == geometry.Flat {
			mesh = geometry.LayerName(depth)
		}
		table.Append([]string{fmt.Sprint(depth), fmt.Sprint(count), mesh})
	}
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Leaves", fmt.Sprint(s.Leaves), " "})
	table.Append([]string{"Internal", fmt.Sprint(s.Internal()), " "})
	if res.Geometry.Groups != nil {
		table.Append([]string{"Groups", fmt.Sprint(res.Geometry.Groups.Count()), " "})
	}
	table.SetFooter([]string{"Total", fmt.Sprint(s.Nodes), fmt.Sprintf("%s, %s", res.Format, res.Geometry.Mode)})

	table.Render()
}

func percent(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}
