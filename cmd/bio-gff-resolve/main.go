package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/resolve/resolve"
)

var (
	outPath       = flag.String("out", "-", "Output GFF3 path; '-' writes to stdout. A .gz suffix gzips the output")
	bedPath       = flag.String("regions", "", "Restrict resolution to features intersecting the intervals in this BED file")
	oneBasedBED   = flag.Bool("one-based-bed", false, "Interpret -regions boundaries as one-based [start, end] instead of zero-based [start, end)")
	region        = flag.String("region", "", "Comma-separated list of regions to restrict resolution to. Format as <contig ID>:<1-based first pos>-<last pos>, <contig ID>:<1-based pos>, or just <contig ID>")
	invertRegions = flag.Bool("invert-regions", false, "Keep only the features that -regions/-region would drop")
	ignoreStrand  = flag.Bool("ignore-strand", resolve.DefaultOpts.IgnoreStrand, "Group features by (seqid, type) only, so both strands compete")
	missingScore  = flag.Float64("missing-score", resolve.DefaultOpts.MissingScore, "Score given to features whose score column is '.'")
	noHeader      = flag.Bool("no-header", false, "Do not write the ##gff-version and ##date header lines")
	parallelism   = flag.Int("parallelism", 0, "Maximum number of groups to resolve concurrently; 0 = runtime.NumCPU()")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] input.gff3\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("exactly one argument (input GFF3 path) is required, found: '%s'", strings.Join(flag.Args(), " "))
	}
	ctx := vcontext.Background()
	opts := resolve.DefaultOpts
	opts.IgnoreStrand = *ignoreStrand
	opts.MissingScore = *missingScore
	opts.InvertRegions = *invertRegions
	if *parallelism > 0 {
		opts.Parallelism = *parallelism
	}
	regions, err := loadRegions(*bedPath, *oneBasedBED, *region)
	if err != nil {
		log.Fatal(err)
	}
	opts.Regions = regions

	stats, err := resolveFile(ctx, flag.Arg(0), *outPath, !*noHeader, opts)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Stats: %+v", stats)
	log.Debug.Printf("All done")
}
