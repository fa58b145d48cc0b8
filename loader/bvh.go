package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/patricklbell/raytracer/asset"
	"github.com/patricklbell/raytracer/bvh"
	"github.com/patricklbell/raytracer/geometry"
)

// Number of leading bytes inspected when sniffing the BVH format.
const sniffLen = 512

// BVHResult is the outcome of a BVH dump load.
type BVHResult struct {
	ID     uuid.UUID
	Source string
	Format Format

	Stats    bvh.Stats
	Geometry *geometry.TreeGeometry
}

// LoadBVH decodes and projects the BVH dump at path, which may be a local
// file or an http/https URL.
func LoadBVH(path string, cfg Config) (*BVHResult, error) {
	res, err := asset.NewResource(path)
	if err != nil {
		instrumentLoadError(kindBVH, err)
		return nil, err
	}
	defer res.Close()

	return ReadBVH(res, cfg)
}

// ReadBVH decodes and projects a BVH dump from res. Flat mode over a binary
// dump reads res twice and requires it to be reopenable. A tree without
// nodes yields ErrEmptyInput.
func ReadBVH(res *asset.Resource, cfg Config) (*BVHResult, error) {
	out, err := readBVH(res, cfg)
	if err != nil {
		instrumentLoadError(kindBVH, err)
		return nil, err
	}
	return out, nil
}

func readBVH(res *asset.Resource, cfg Config) (*BVHResult, error) {
	out := &BVHResult{ID: uuid.New(), Source: res.Path(), Format: cfg.Format}
	start := time.Now()

	br := bufio.NewReaderSize(res, sniffLen)
	if out.Format == AutoFormat {
		format, err := sniffFormat(br)
		if err != nil {
			return nil, fmt.Errorf("loader: could not read '%s': %w", out.Source, err)
		}
		if format == AutoFormat {
			return nil, fmt.Errorf("%w: '%s' is blank", ErrEmptyInput, out.Source)
		}
		out.Format = format
	}
	logger.Noticef(`[%s] decoding %s BVH dump from "%s" (%s mode)`, out.ID, out.Format, out.Source, cfg.Mode)

	var err error
	switch out.Format {
	case TextFormat:
		err = out.readText(br, cfg)
	case BinaryFormat:
		if cfg.Mode == geometry.Grouping {
			err = out.readBinaryGroups(br, cfg)
		} else {
			err = out.readBinaryLayers(res, br, cfg)
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, out.Format)
	}
	if err != nil {
		return nil, err
	}

	instrumentNodes(out.Stats.Nodes)
	instrumentLoad(kindBVH, out.Geometry.Mode.String(), start)
	logger.Noticef(
		"[%s] decoded %d nodes (%d leaves, max depth %d) in %d ms",
		out.ID, out.Stats.Nodes, out.Stats.Leaves, out.Stats.MaxDepth, time.Since(start).Nanoseconds()/1e6,
	)
	for depth, count := range out.Stats.PerDepth {
		logger.Debugf("[%s] depth %d: %d nodes", out.ID, depth, count)
	}
	return out, nil
}

func (out *BVHResult) readText(r io.Reader, cfg Config) error {
	root, err := bvh.ReadText(r)
	if err != nil {
		return fmt.Errorf("loader: could not parse '%s': %w", out.Source, err)
	}
	if root == nil {
		return fmt.Errorf("%w: '%s' contains an empty tree", ErrEmptyInput, out.Source)
	}

	out.Stats = root.Stats()
	out.Geometry, err = geometry.ProjectTree(root, cfg.Mode, cfg.Options())
	return err
}

func (out *BVHResult) readBinaryGroups(r io.Reader, cfg Config) error {
	grouper := geometry.NewGrouper(cfg.Options())

	stats, err := bvh.Walk(r, grouper.Add)
	if err != nil {
		return fmt.Errorf("loader: could not decode '%s': %w", out.Source, err)
	}
	if stats.Nodes == 0 {
		return fmt.Errorf("%w: '%s' contains an empty tree", ErrEmptyInput, out.Source)
	}

	out.Stats = stats
	out.Geometry = &geometry.TreeGeometry{Mode: geometry.Grouping, Groups: grouper.Root()}
	return nil
}

// readBinaryLayers makes a first pass to find the tree depth so that the
// depth buckets can be allocated up front, then reopens the source and
// fills them in a second pass.
func (out *BVHResult) readBinaryLayers(res *asset.Resource, r io.Reader, cfg Config) error {
	stats, err := bvh.Scan(r)
	if err != nil {
		return fmt.Errorf("loader: could not decode '%s': %w", out.Source, err)
	}
	if stats.Nodes == 0 {
		return fmt.Errorf("%w: '%s' contains an empty tree", ErrEmptyInput, out.Source)
	}
	logger.Infof("[%s] first pass: %d nodes, max depth %d", out.ID, stats.Nodes, stats.MaxDepth)

	if err = res.Reopen(); err != nil {
		return fmt.Errorf("loader: could not reopen '%s' for the second pass: %w", out.Source, err)
	}

	layers := geometry.NewLayers(stats.MaxDepth, cfg.Options())
	second, err := bvh.Walk(res, layers.Add)
	switch {
	case errors.Is(err, geometry.ErrDepthOutOfRange):
		return fmt.Errorf("%w: '%s': %v", ErrSourceChanged, out.Source, err)
	case err != nil:
		return fmt.Errorf("loader: could not decode '%s': %w", out.Source, err)
	case second.Nodes != stats.Nodes:
		return fmt.Errorf("%w: '%s': %d nodes in the first pass, %d in the second", ErrSourceChanged, out.Source, stats.Nodes, second.Nodes)
	}

	out.Stats = stats
	out.Geometry = &geometry.TreeGeometry{Mode: geometry.Flat, Layers: layers}
	return nil
}

// LoadTree decodes the BVH dump at path into memory without projecting it.
// It returns the detected format alongside the tree.
func LoadTree(path string, format Format) (*bvh.Node, Format, error) {
	res, err := asset.NewResource(path)
	if err != nil {
		return nil, format, err
	}
	defer res.Close()

	br := bufio.NewReaderSize(res, sniffLen)
	if format == AutoFormat {
		if format, err = sniffFormat(br); err != nil {
			return nil, format, fmt.Errorf("loader: could not read '%s': %w", path, err)
		}
	}

	var root *bvh.Node
	switch format {
	case AutoFormat:
	case TextFormat:
		root, err = bvh.ReadText(br)
	case BinaryFormat:
		root, err = bvh.Decode(br)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, format, fmt.Errorf("loader: could not decode '%s': %w", path, err)
	}
	if root == nil {
		return nil, format, fmt.Errorf("%w: '%s' contains an empty tree", ErrEmptyInput, path)
	}

	logger.Noticef(`decoded %d nodes from %s dump "%s"`, root.Count(), format, path)
	return root, format, nil
}

// sniffFormat peeks at the start of the input without consuming it. Text
// dumps start with LBVH, possibly after blank lines. A printable first line
// starting with a NODE or NULL token is a text dump that lost its header and
// is left to the text parser to reject. Anything else is treated as binary.
// Inputs that are empty or contain nothing but whitespace yield AutoFormat.
func sniffFormat(br *bufio.Reader) (Format, error) {
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return AutoFormat, err
	}

	trimmed := bytes.TrimLeft(head, " \t\r\n")
	switch {
	case bytes.HasPrefix(trimmed, []byte("LBVH")), isHeaderlessText(trimmed):
		return TextFormat, nil
	case len(trimmed) == 0 && len(head) < sniffLen:
		return AutoFormat, nil
	}
	return BinaryFormat, nil
}

func isHeaderlessText(head []byte) bool {
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	for _, c := range head {
		if (c < 0x20 || c > 0x7e) && c != '\t' && c != '\r' {
			return false
		}
	}

	fields := bytes.Fields(head)
	if len(fields) == 0 {
		return false
	}
	token := string(fields[0])
	return token == "NODE" || token == "NULL"
}
