package resolve

import (
	"runtime"

	"github.com/grailbio/resolve/interval"
)

// Opts control a Resolve run.
type Opts struct {
	// IgnoreStrand drops the strand column from the grouping key, so features
	// on opposite strands compete with each other.
	IgnoreStrand bool
	// MissingScore is the weight given to records whose score column is ".".
	// With the default of 0 such records are never selected.
	MissingScore float64
	// Regions, if nonempty, restricts the run to records that intersect every
	// region set in the list.  Records are dropped before grouping.
	Regions []*interval.BEDUnion
	// InvertRegions keeps only the records that Regions would have dropped.
	InvertRegions bool
	// Parallelism is the number of groups scheduled concurrently.
	Parallelism int
}

// DefaultOpts is the default value of Opts.
var DefaultOpts = Opts{
	Parallelism: runtime.NumCPU(),
}
