package interval

import "sort"

// Weight enumerates the score types Schedule can maximize.
type Weight interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Weighted is a scored closed interval [Start, End].  Start <= End is not
// checked; only End values are compared across intervals, and each Start is
// compared against earlier Ends.
type Weighted[W Weight] struct {
	Start, End PosType
	Weight     W
}

// Selection is the result of Schedule.
type Selection[W Weight] struct {
	// Indices lists the selected intervals as positions in the slice passed to
	// Schedule, in increasing order.
	Indices []int
	// Total is the sum of the selected weights.  No non-overlapping subset of
	// the input has a larger sum.
	Total W
}

// Schedule returns the maximum-weight subset of intervals in which no two
// members overlap.  Two intervals overlap unless the one that ends first ends
// strictly before the other starts.
//
// When including an interval ties with excluding it, the interval is
// excluded, so among several optimal subsets the result is deterministic for a
// given input order.  Zero and negative weights are allowed (a negative-weight
// interval is never selected).  NaN or infinite weights produce an unspecified
// selection; callers must validate scores beforehand.
//
// Schedule does not modify intervals, and is safe to call concurrently.
func Schedule[W Weight](intervals []Weighted[W]) Selection[W] {
	if len(intervals) == 0 {
		return Selection[W]{}
	}
	order := sortByEnd(intervals)
	pred := predecessors(intervals, order)
	opt := optimalValues(intervals, order, pred)
	return Selection[W]{
		Indices: backtrack(intervals, order, pred, opt),
		Total:   opt[len(order)],
	}
}

// sortByEnd returns a permutation of [0, len(intervals)) ordering intervals by
// increasing End.  Equal ends keep their input order.
func sortByEnd[W Weight](intervals []Weighted[W]) []int {
	order := make([]int, len(intervals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return intervals[order[i]].End < intervals[order[j]].End
	})
	return order
}

// predecessors computes, for each 1-based position i in end-sorted order, the
// largest j < i whose interval ends strictly before interval i starts, or 0 if
// there is none.  pred[0] is unused.
//
// Since ends are nondecreasing in sorted order, the qualifying positions form
// a prefix, so a binary search over ends[:i-1] finds j.
func predecessors[W Weight](intervals []Weighted[W], order []int) []int {
	ends := make([]PosType, len(order))
	for k, idx := range order {
		ends[k] = intervals[idx].End
	}
	pred := make([]int, len(order)+1)
	for k, idx := range order {
		pred[k+1] = searchPosType(ends[:k], intervals[idx].Start)
	}
	return pred
}

// optimalValues fills opt[i], the best total weight achievable using only the
// first i intervals in end-sorted order.  opt[0] = 0.
func optimalValues[W Weight](intervals []Weighted[W], order []int, pred []int) []W {
	opt := make([]W, len(order)+1)
	for i := 1; i <= len(order); i++ {
		incl := intervals[order[i-1]].Weight + opt[pred[i]]
		if incl > opt[i-1] {
			opt[i] = incl
		} else {
			opt[i] = opt[i-1]
		}
	}
	return opt
}

// backtrack walks opt from the last position down, recovering one subset
// whose weight equals opt[n].  Every step strictly decreases j.
func backtrack[W Weight](intervals []Weighted[W], order []int, pred []int, opt []W) []int {
	var selected []int
	for j := len(order); j != 0; {
		if intervals[order[j-1]].Weight+opt[pred[j]] > opt[j-1] {
			selected = append(selected, order[j-1])
			j = pred[j]
		} else {
			j--
		}
	}
	sort.Ints(selected)
	return selected
}
