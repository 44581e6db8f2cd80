package main

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/resolve/encoding/gff"
	"github.com/grailbio/resolve/interval"
	"github.com/grailbio/resolve/resolve"
)

// now is replaced in tests to pin the ##date header.
var now = time.Now

// loadRegions builds the region restriction from a BED path and/or a
// comma-separated region-string list.  Either may be empty.  When both are
// given, features must intersect both.
func loadRegions(bedPath string, oneBasedBED bool, regionList string) ([]*interval.BEDUnion, error) {
	var regions []*interval.BEDUnion
	if bedPath != "" {
		u, err := interval.NewBEDUnionFromPath(bedPath, interval.NewBEDOpts{OneBasedInput: oneBasedBED})
		if err != nil {
			return nil, errors.E(err, "load", bedPath)
		}
		regions = append(regions, &u)
	}
	if regionList != "" {
		var entries []interval.Entry
		for _, s := range strings.Split(regionList, ",") {
			entry, err := interval.ParseRegionString(s)
			if err != nil {
				return nil, errors.E(err, "region", s)
			}
			entries = append(entries, entry)
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].ChrName != entries[j].ChrName {
				return entries[i].ChrName < entries[j].ChrName
			}
			return entries[i].Start0 < entries[j].Start0
		})
		u, err := interval.NewBEDUnionFromEntries(entries)
		if err != nil {
			return nil, errors.E(err, "region", regionList)
		}
		regions = append(regions, &u)
	}
	return regions, nil
}

// resolveFile reads inPath, resolves overlaps, and writes the kept features to
// outPath.
func resolveFile(ctx context.Context, inPath, outPath string, header bool, opts resolve.Opts) (resolve.Stats, error) {
	records, err := gff.ReadPath(ctx, inPath)
	if err != nil {
		return resolve.Stats{}, err
	}
	log.Printf("Read %d records from %s", len(records), inPath)
	results, stats := resolve.Resolve(records, opts)

	w, err := gff.CreatePath(ctx, outPath)
	if err != nil {
		return stats, err
	}
	once := errors.Once{}
	if header {
		once.Set(w.WriteHeader(now()))
	}
	if once.Err() == nil {
		once.Set(resolve.Emit(w.Writer, results))
	}
	once.Set(w.Close(ctx))
	if err := once.Err(); err != nil {
		return stats, err
	}
	log.Printf("Wrote %d of %d records to %s", stats.Selected, stats.Records, outPath)
	return stats, nil
}
