package interval

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// NewBEDOpts defines behavior of this package's BED-loading function(s).
type NewBEDOpts struct {
	// OneBasedInput interprets the BED interval boundaries as one-based [start,
	// end] instead of the usual zero-based [start, end).
	OneBasedInput bool
}

// BEDUnion is a chromosome-keyed collection of length-2N sequences, where N is
// the number of disjoint intervals on the chromosome.  The (0-based) start
// position of interval #k is in element [2k], the end position is in element
// [2k+1], and the intervals are stored in increasing order.
//
// A BEDUnion is immutable once loaded, so it can be queried from multiple
// goroutines.
type BEDUnion struct {
	nameMap map[string]([]PosType)
}

// IntersectsByName checks whether the 0-based half-open interval [start0, end)
// on chrName shares at least one position with the BEDUnion.  An empty query
// interval never intersects.
func (u *BEDUnion) IntersectsByName(chrName string, start0, end PosType) bool {
	if end <= start0 {
		return false
	}
	chrIntervals := u.nameMap[chrName]
	if chrIntervals == nil {
		return false
	}
	idx := searchPosType(chrIntervals, start0+1)
	if idx&1 == 1 {
		// start0 is inside interval #(idx/2).
		return true
	}
	return idx != len(chrIntervals) && end > chrIntervals[idx]
}

// NChrs returns the number of chromosomes with at least one nonempty interval.
func (u *BEDUnion) NChrs() int {
	n := 0
	for _, chrIntervals := range u.nameMap {
		if len(chrIntervals) > 0 {
			n++
		}
	}
	return n
}

func initBEDUnion() BEDUnion {
	return BEDUnion{nameMap: make(map[string]([]PosType))}
}

// unionBuilder accumulates sorted intervals for one chromosome at a time,
// merging touching/overlapping ones and eliminating empty ones.
type unionBuilder struct {
	u            BEDUnion
	chr          string
	chrIntervals []PosType
	// prevStart/prevEnd is the pending merged interval.  prevEnd == -1 means
	// there is none yet.
	prevStart, prevEnd PosType
	totBases           int
}

func (b *unionBuilder) flushChr() {
	if b.chr == "" {
		return
	}
	if b.prevEnd != -1 {
		b.chrIntervals = append(b.chrIntervals, b.prevStart, b.prevEnd)
	}
	b.u.nameMap[b.chr] = b.chrIntervals
}

// add appends [start, end) on chr.  Input must be grouped by chromosome and
// sorted by start within each chromosome.
func (b *unionBuilder) add(chr string, start, end PosType) error {
	if chr != b.chr {
		b.flushChr()
		if _, found := b.u.nameMap[chr]; found {
			return fmt.Errorf("unsorted input (split chromosome %v)", chr)
		}
		b.chr = chr
		b.chrIntervals = []PosType{}
		b.prevStart, b.prevEnd = -1, -1
	}
	if end == start {
		return nil
	}
	if b.prevEnd == -1 {
		b.prevStart, b.prevEnd = start, end
		b.totBases += int(end - start)
		return nil
	}
	if start > b.prevEnd {
		// New interval doesn't overlap previous one, so we can save the previous
		// one.
		b.chrIntervals = append(b.chrIntervals, b.prevStart, b.prevEnd)
		b.prevStart, b.prevEnd = start, end
		b.totBases += int(end - start)
		return nil
	}
	if start < b.prevStart {
		return fmt.Errorf("unsorted input")
	}
	// Intervals overlap, merge them.
	if end > b.prevEnd {
		b.totBases += int(end - b.prevEnd)
		b.prevEnd = end
	}
	return nil
}

func (b *unionBuilder) finish() BEDUnion {
	b.flushChr()
	return b.u
}

func scanBEDUnion(scanner *bufio.Scanner, opts NewBEDOpts) (bedUnion BEDUnion, err error) {
	b := unionBuilder{u: initBEDUnion()}

	var startSubtract int
	if opts.OneBasedInput {
		startSubtract++
	}

	var tokens [3][]byte
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		// Bytes() does not allocate; gunsafe.BytesToString is used on each token
		// only for the duration of a single strconv call.
		curLine := scanner.Bytes()
		if len(curLine) > 0 && curLine[0] == '#' ||
			bytes.HasPrefix(curLine, []byte("track")) || bytes.HasPrefix(curLine, []byte("browser")) {
			continue
		}
		nToken := getTokens(tokens[:], curLine)
		if nToken != 3 {
			if nToken == 0 {
				continue
			}
			err = fmt.Errorf("interval.scanBEDUnion: line %d has fewer tokens than expected", lineIdx)
			return
		}
		var parsedStart int
		if parsedStart, err = strconv.Atoi(gunsafe.BytesToString(tokens[1])); err != nil {
			return
		}
		parsedStart -= startSubtract
		if parsedStart < 0 {
			err = fmt.Errorf("interval.scanBEDUnion: negative start coordinate %s on line %d", tokens[1], lineIdx)
			return
		}
		var parsedEnd int
		if parsedEnd, err = strconv.Atoi(gunsafe.BytesToString(tokens[2])); err != nil {
			return
		}
		if (parsedEnd < parsedStart) || (parsedEnd >= PosTypeMax) {
			err = fmt.Errorf("interval.scanBEDUnion: invalid coordinate pair on line %d", lineIdx)
			return
		}
		// string(tokens[0]) makes a heap copy; the map key must outlive curLine.
		if err = b.add(string(tokens[0]), PosType(parsedStart), PosType(parsedEnd)); err != nil {
			err = fmt.Errorf("interval.scanBEDUnion: line %d: %v", lineIdx, err)
			return
		}
	}
	if err = scanner.Err(); err != nil {
		return
	}
	log.Printf("BED loaded, %d base(s) covered.\n", b.totBases)
	bedUnion = b.finish()
	return
}

// NewBEDUnion loads just the intervals from a sorted (by first coordinate)
// interval-BED, merging touching/overlapping intervals and eliminating empty
// ones in the process.  Comment, "track" and "browser" lines are skipped.
func NewBEDUnion(reader io.Reader, opts NewBEDOpts) (bedUnion BEDUnion, err error) {
	return scanBEDUnion(bufio.NewScanner(reader), opts)
}

// NewBEDUnionFromPath is a wrapper for NewBEDUnion that takes a path instead
// of an io.Reader.  Gzipped files are decompressed.
func NewBEDUnionFromPath(path string, opts NewBEDOpts) (bedUnion BEDUnion, err error) {
	ctx := vcontext.Background()
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	return NewBEDUnion(reader, opts)
}

// Entry represents a single interval, with 0-based coordinates.
type Entry struct {
	ChrName string
	Start0  PosType
	End     PosType
}

// ParseRegionString parses a region string of one of the forms
//   [contig ID]:[1-based first pos]-[last pos]
//   [contig ID]:[1-based pos]
//   [contig ID]
// returning a contig ID and 0-based interval boundaries.  The interval
// [0, PosTypeMax - 1] is returned if there is no positional restriction.
func ParseRegionString(region string) (result Entry, err error) {
	if len(region) == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty region string")
		return
	}
	colonPos := strings.LastIndexByte(region, ':')
	if colonPos == -1 {
		result.ChrName = region
		result.Start0 = 0
		result.End = PosTypeMax - 1
		return
	}
	if colonPos == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty contig ID")
		return
	}
	result.ChrName = region[0:colonPos]
	rangeStr := strings.Replace(region[colonPos+1:], ",", "", -1)
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos1 int64
		if pos1, err = strconv.ParseInt(rangeStr, 10, 32); err != nil {
			return
		}
		if pos1 <= 0 {
			err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", rangeStr)
			return
		}
		result.Start0 = PosType(pos1 - 1)
		result.End = PosType(pos1)
		return
	}
	start1Str := rangeStr[:dashPos]
	endStr := rangeStr[dashPos+1:]
	var start1 int
	if start1, err = strconv.Atoi(start1Str); err != nil {
		return
	}
	if start1 <= 0 {
		err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", start1Str)
		return
	}
	var end0 int
	if end0, err = strconv.Atoi(endStr); err != nil {
		return
	}
	// end0 == PosTypeMax is prohibited so that the interval-array is
	// guaranteed to contain no repeats.
	if end0 < start1 || end0 >= PosTypeMax {
		err = fmt.Errorf("interval.ParseRegionString: invalid range string %v", rangeStr)
		return
	}
	result.Start0 = PosType(start1 - 1)
	result.End = PosType(end0)
	return
}

// NewBEDUnionFromEntries initializes a BEDUnion from a []Entry sorted by
// (ChrName, Start0), or at least grouped by ChrName and sorted by Start0
// within each group.
func NewBEDUnionFromEntries(entries []Entry) (bedUnion BEDUnion, err error) {
	b := unionBuilder{u: initBEDUnion()}
	for _, entry := range entries {
		if entry.Start0 < 0 {
			err = fmt.Errorf("interval.NewBEDUnionFromEntries: negative start coordinate")
			return
		}
		if (entry.End < entry.Start0) || (entry.End >= PosTypeMax) {
			err = fmt.Errorf("interval.NewBEDUnionFromEntries: invalid coordinate pair [%d, %d)", entry.Start0, entry.End)
			return
		}
		if err = b.add(entry.ChrName, entry.Start0, entry.End); err != nil {
			err = fmt.Errorf("interval.NewBEDUnionFromEntries: %v", err)
			return
		}
	}
	bedUnion = b.finish()
	return
}
