// Package resolve removes overlaps from GFF3 annotations.  Records are grouped
// by (seqid, type, strand), and within each group the maximum-total-score
// subset of mutually non-overlapping records is kept.
package resolve

import (
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/resolve/encoding/gff"
	"github.com/grailbio/resolve/interval"
)

// Result is the outcome of scheduling one Group.
type Result struct {
	Group *Group
	// Selected holds the kept records, sorted by (Start, End).  They point into
	// Group.Records.
	Selected []*gff.Record
	// Total is the sum of the selected records' weights.
	Total float64
}

// weights converts a group's records to scheduler input.
func weights(records []*gff.Record, opts Opts) []interval.Weighted[float64] {
	w := make([]interval.Weighted[float64], len(records))
	for i, r := range records {
		w[i] = interval.Weighted[float64]{Start: r.Start, End: r.End, Weight: r.Score}
		if !r.HasScore {
			w[i].Weight = opts.MissingScore
		}
	}
	return w
}

// ScheduleGroup selects the maximum-weight non-overlapping subset of g.Records.
func ScheduleGroup(g *Group, opts Opts) Result {
	sel := interval.Schedule(weights(g.Records, opts))
	res := Result{Group: g, Total: sel.Total}
	res.Selected = make([]*gff.Record, len(sel.Indices))
	for i, idx := range sel.Indices {
		res.Selected[i] = g.Records[idx]
	}
	sort.SliceStable(res.Selected, func(i, j int) bool {
		a, b := res.Selected[i], res.Selected[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
	return res
}

// Resolve filters records by opts.Regions, groups them, and schedules each
// group.  Groups are scheduled on up to opts.Parallelism goroutines; results
// are returned in group order regardless.
func Resolve(records []*gff.Record, opts Opts) ([]Result, Stats) {
	stats := Stats{Records: len(records)}
	records, stats.OutsideRegions = FilterRegions(records, opts)
	groups := GroupRecords(records, opts)
	stats.Groups = len(groups)
	log.Printf("Resolving %d records in %d groups", len(records), len(groups))

	results := make([]Result, len(groups))
	parallelism := opts.Parallelism
	if parallelism > len(groups) {
		parallelism = len(groups)
	}
	if parallelism < 1 {
		parallelism = 1
	}
	jobStats := make([]Stats, parallelism)
	// Scheduling cannot fail, so neither can traverse.
	_ = traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(groups)) / parallelism
		endIdx := ((jobIdx + 1) * len(groups)) / parallelism
		for i := startIdx; i < endIdx; i++ {
			g := groups[i]
			results[i] = ScheduleGroup(g, opts)
			n := len(results[i].Selected)
			jobStats[jobIdx].Selected += n
			jobStats[jobIdx].Discarded += len(g.Records) - n
			jobStats[jobIdx].TotalScore += results[i].Total
			log.Debug.Printf("%v: kept %d of %d records, score %g", g.Key, n, len(g.Records), results[i].Total)
		}
		return nil
	})
	for _, s := range jobStats {
		stats = stats.Merge(s)
	}
	return results, stats
}

// Emit writes the selected records of each result, in order.
func Emit(w *gff.Writer, results []Result) error {
	for _, res := range results {
		for _, r := range res.Selected {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	}
	return nil
}
