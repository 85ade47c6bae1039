package hexdump

import (
	"container/heap"
	"slices"
	"sort"

	"cxd/common/colorrange"
	"cxd/common/config"
	C "cxd/common/constant"

	"github.com/charmbracelet/log"
)

// segment is a maximal run of offsets [start, end] resolving to the same range color.
type segment struct {
	start int64
	end   int64
	color C.Color
}

// Index answers which color a byte is painted with.
//
// Overlaps are resolved by input order only. With firstMatchWins the earliest
// supplied covering range that carries a color wins, colorless ranges are looked
// past. Otherwise the latest supplied covering range wins even when it has no
// color, in which case the byte falls back to the default or shadow color.
//
// The resolution is computed once, at construction, into a sorted table of
// disjoint segments. An Index is read-only afterwards and may be shared by
// concurrent renders.
type Index struct {
	segments       []segment
	firstMatchWins bool
	defaultColor   C.Color
	shadowColor    C.Color
	shadowBytes    bool
}

// Cursor remembers the last segment a lookup landed in. Offsets visited in
// increasing order then resolve without a binary search. A Cursor belongs to a
// single render and must not be shared.
type Cursor struct {
	pos int
}

// active is one covering range during the construction sweep.
type active struct {
	seq int
	end int64
}

// activeHeap keeps the winning range on top: lowest input position when
// first wins, highest otherwise. Expired entries are dropped lazily.
type activeHeap struct {
	items    []active
	firstWin bool
}

func (h *activeHeap) Len() int { return len(h.items) }
func (h *activeHeap) Less(i, j int) bool {
	if h.firstWin {
		return h.items[i].seq < h.items[j].seq
	}
	return h.items[i].seq > h.items[j].seq
}
func (h *activeHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *activeHeap) Push(x any)   { h.items = append(h.items, x.(active)) }
func (h *activeHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// NewIndex builds the segment table in O(n log n). Invalid ranges are logged and ignored.
func NewIndex(ranges []colorrange.Range, cfg *config.Config) *Index {
	ix := &Index{
		firstMatchWins: cfg.StopAtFirstColorFound,
		defaultColor:   cfg.DefaultColor,
		shadowColor:    cfg.ShadowColor,
		shadowBytes:    cfg.EnableShadowBytes,
	}

	// seq is the position in the caller's slice and decides every tie.
	order := make([]int, 0, len(ranges))
	for seq, r := range ranges {
		if err := r.Validate(); err != nil {
			log.Warn("Ignoring range", "index", seq, "error", err)
			continue
		}
		// A colorless range can never win when first wins, so it plays no part.
		if ix.firstMatchWins && r.Color == C.NoColor {
			continue
		}
		order = append(order, seq)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return ranges[order[i]].Start < ranges[order[j]].Start
	})

	bounds := make([]int64, 0, 2*len(order))
	for _, seq := range order {
		bounds = append(bounds, ranges[seq].Start, ranges[seq].End()+1)
	}
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	h := &activeHeap{firstWin: ix.firstMatchWins}
	next := 0
	for k := 0; k < len(bounds); k++ {
		pos := bounds[k]
		for next < len(order) && ranges[order[next]].Start == pos {
			heap.Push(h, active{seq: order[next], end: ranges[order[next]].End()})
			next++
		}
		for h.Len() > 0 && h.items[0].end < pos {
			heap.Pop(h)
		}
		if h.Len() == 0 || k+1 == len(bounds) {
			continue
		}
		color := ranges[h.items[0].seq].Color
		if color == C.NoColor {
			continue
		}
		end := bounds[k+1] - 1
		if n := len(ix.segments); n > 0 && ix.segments[n-1].end+1 == pos && ix.segments[n-1].color == color {
			ix.segments[n-1].end = end
			continue
		}
		ix.segments = append(ix.segments, segment{start: pos, end: end, color: color})
	}

	log.Debug("Built range index", "ranges", len(ranges), "segments", len(ix.segments), "first_match_wins", ix.firstMatchWins)
	return ix
}

// ColorFor returns the color of byte b found at the data-relative offset.
func (ix *Index) ColorFor(offset int64, b byte) C.Color {
	return ix.colorFor(offset, b, nil)
}

func (ix *Index) colorFor(offset int64, b byte, cur *Cursor) C.Color {
	if s, ok := ix.find(offset, cur); ok {
		return s.color
	}
	if b == C.ShadowByte && ix.shadowBytes {
		return ix.shadowColor
	}
	return ix.defaultColor
}

// find locates the segment holding offset. With a cursor the remembered segment
// and its successor are tried first; any miss falls back to a binary search,
// so the cursor never changes the answer.
func (ix *Index) find(offset int64, cur *Cursor) (segment, bool) {
	n := len(ix.segments)
	if n == 0 {
		return segment{}, false
	}
	if cur != nil && cur.pos < n {
		s := ix.segments[cur.pos]
		if offset >= s.start {
			if offset <= s.end {
				return s, true
			}
			if cur.pos+1 == n {
				return segment{}, false
			}
			next := ix.segments[cur.pos+1]
			if offset < next.start {
				return segment{}, false
			}
			if offset <= next.end {
				cur.pos++
				return next, true
			}
		}
	}
	i := sort.Search(n, func(i int) bool { return ix.segments[i].end >= offset })
	if cur != nil {
		cur.pos = min(i, n-1)
	}
	if i < n && ix.segments[i].start <= offset {
		return ix.segments[i], true
	}
	return segment{}, false
}
