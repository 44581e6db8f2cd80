package resolve

import "github.com/grailbio/resolve/encoding/gff"

// inRegions reports whether r intersects every region set in opts.Regions.
// GFF3 coordinates are 1-based closed, BEDUnion ones 0-based half-open.
func inRegions(r *gff.Record, opts Opts) bool {
	for _, u := range opts.Regions {
		if !u.IntersectsByName(r.SeqID, r.Start-1, r.End) {
			return false
		}
	}
	return true
}

// FilterRegions returns the records that pass the opts.Regions restriction,
// and the number dropped.  With no regions, records is returned unchanged.
func FilterRegions(records []*gff.Record, opts Opts) ([]*gff.Record, int) {
	if len(opts.Regions) == 0 {
		return records, 0
	}
	kept := make([]*gff.Record, 0, len(records))
	for _, r := range records {
		if inRegions(r, opts) != opts.InvertRegions {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}
