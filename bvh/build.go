package bvh

import (
	"math"
	"time"

	"github.com/patricklbell/raytracer/log"
	"github.com/patricklbell/raytracer/types"
)

const (
	// Build will not evaluate split candidates along an axis if the node
	// bounds along that axis are shorter than this threshold.
	minSideLength = 1e-3

	// If the split step (side length * (depth+1) / splitCandidates) is less
	// than this threshold the axis is skipped.
	minSplitStep = 1e-5

	splitCandidates = 1024
)

// Bounds is an axis aligned box that Build partitions.
type Bounds struct {
	Min types.Vec3d
	Max types.Vec3d
}

// Center returns the midpoint of the box.
func (b Bounds) Center() types.Vec3d {
	return b.Min.Add(b.Max).Mul(0.5)
}

func emptyBounds() Bounds {
	return Bounds{
		Min: types.Vec3d{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: types.Vec3d{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
}

func (b Bounds) union(o Bounds) Bounds {
	for axis := 0; axis < 3; axis++ {
		b.Min[axis] = math.Min(b.Min[axis], o.Min[axis])
		b.Max[axis] = math.Max(b.Max[axis], o.Max[axis])
	}
	return b
}

// Half the surface area of the box.
func (b Bounds) area() float64 {
	side := b.Max.Sub(b.Min)
	return side[0]*side[1] + side[1]*side[2] + side[0]*side[2]
}

type buildItem struct {
	index  int
	bounds Bounds
	center types.Vec3d
}

type splitScore struct {
	axis       int
	splitPoint float64

	leftCount, rightCount int
	score                 float64
}

type builder struct {
	logger       log.Logger
	minLeafItems int
	scoreChan    chan splitScore
	stats        Stats
}

// Build constructs a BVH over prims using the surface area heuristic
// (score = item count * bbox area) to pick splits. Work lists with at most
// minLeafItems entries become leaves.
//
// Nodes follow the producer's id convention: internal nodes get 0 and
// leaves get the index of their first primitive + 1. Build returns nil if
// prims is empty.
func Build(prims []Bounds, minLeafItems int) *Node {
	if len(prims) == 0 {
		return nil
	}
	if minLeafItems < 1 {
		minLeafItems = 1
	}

	workList := make([]buildItem, len(prims))
	for idx, b := range prims {
		workList[idx] = buildItem{index: idx, bounds: b, center: b.Center()}
	}

	b := &builder{
		logger:       log.New("bvh"),
		minLeafItems: minLeafItems,
		scoreChan:    make(chan splitScore),
		stats:        Stats{MaxDepth: -1},
	}

	start := time.Now()
	root := b.partition(workList, 0)
	b.logger.Debugf(
		"BVH build time: %d ms, items: %d, maxDepth: %d, nodes: %d, leaves: %d",
		time.Since(start).Milliseconds(), len(prims),
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leaves,
	)
	return root
}

func (b *builder) partition(workList []buildItem, depth int) *Node {
	bounds := emptyBounds()
	for _, item := range workList {
		bounds = bounds.union(item.bounds)
	}
	node := &Node{Min: bounds.Min, Max: bounds.Max}

	if len(workList) <= b.minLeafItems {
		return b.createLeaf(node, workList, depth)
	}

	bestScore := scorePartition(workList)
	var bestSplit *splitScore

	// Each axis is scored in its own goroutine.
	pending := 0
	side := bounds.Max.Sub(bounds.Min)
	for axis := 0; axis < 3; axis++ {
		if side[axis] < minSideLength {
			continue
		}

		splitStep := side[axis] * float64(depth+1) / splitCandidates
		if splitStep < minSplitStep {
			continue
		}

		pending++
		go func(axis int, from, to, step float64) {
			best := splitScore{axis: axis, score: math.MaxFloat64}
			for splitPoint := from; splitPoint < to; splitPoint += step {
				lCount, rCount, score := scoreSplit(workList, axis, splitPoint)
				if score < best.score {
					best = splitScore{
						axis:       axis,
						splitPoint: splitPoint,
						leftCount:  lCount,
						rightCount: rCount,
						score:      score,
					}
				}
			}
			b.scoreChan <- best
		}(axis, bounds.Min[axis], bounds.Max[axis], splitStep)
	}

	// Equal scores go to the lowest axis so builds do not depend on
	// goroutine scheduling.
	for ; pending > 0; pending-- {
		candidate := <-b.scoreChan
		tie := bestSplit != nil && candidate.score == bestScore && candidate.axis < bestSplit.axis
		if candidate.score < bestScore || tie {
			bestScore = candidate.score
			bestSplit = &candidate
		}
	}

	// No split improves on the current node.
	if bestSplit == nil {
		return b.createLeaf(node, workList, depth)
	}

	leftWorkList := make([]buildItem, 0, bestSplit.leftCount)
	rightWorkList := make([]buildItem, 0, bestSplit.rightCount)
	for _, item := range workList {
		if item.center[bestSplit.axis] < bestSplit.splitPoint {
			leftWorkList = append(leftWorkList, item)
		} else {
			rightWorkList = append(rightWorkList, item)
		}
	}

	b.stats.addNode(depth, false)
	node.Left = b.partition(leftWorkList, depth+1)
	node.Right = b.partition(rightWorkList, depth+1)
	return node
}

func (b *builder) createLeaf(node *Node, workList []buildItem, depth int) *Node {
	node.ID = uint64(workList[0].index) + 1
	b.stats.addNode(depth, true)
	return node
}

// Score a split using left count * left area + right count * right area.
// Splits that leave one side empty get the worst possible score.
func scoreSplit(workList []buildItem, axis int, splitPoint float64) (leftCount, rightCount int, score float64) {
	left, right := emptyBounds(), emptyBounds()
	for _, item := range workList {
		if item.center[axis] < splitPoint {
			leftCount++
			left = left.union(item.bounds)
		} else {
			rightCount++
			right = right.union(item.bounds)
		}
	}

	if leftCount == 0 || rightCount == 0 {
		return leftCount, rightCount, math.MaxFloat64
	}

	score = float64(leftCount)*left.area() + float64(rightCount)*right.area()
	return leftCount, rightCount, score
}

// Score an unsplit work list as count * bbox area.
func scorePartition(workList []buildItem) float64 {
	if len(workList) == 0 {
		return math.MaxFloat64
	}

	bounds := emptyBounds()
	for _, item := range workList {
		bounds = bounds.union(item.bounds)
	}
	return float64(len(workList)) * bounds.area()
}
