package resolve

// Stats summarizes a Resolve run.
type Stats struct {
	// Records is the # of records read.
	Records int
	// OutsideRegions is the # of records dropped by the region filter.
	OutsideRegions int
	// Groups is the # of distinct (seqid, type, strand) groups scheduled.
	Groups int
	// Selected is the # of records kept.
	Selected int
	// Discarded is the # of scheduled records dropped because they overlapped
	// a better-scoring combination.
	Discarded int
	// TotalScore is the sum of the selected records' weights.
	TotalScore float64
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Records += o.Records
	s.OutsideRegions += o.OutsideRegions
	s.Groups += o.Groups
	s.Selected += o.Selected
	s.Discarded += o.Discarded
	s.TotalScore += o.TotalScore
	return s
}
