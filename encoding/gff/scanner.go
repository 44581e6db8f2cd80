// Package gff reads and writes GFF3 annotation records.
//
// Only the tab-delimited feature section is interpreted.  Directive and
// comment lines ("#"-prefixed) are skipped, and a "##FASTA" directive ends
// the feature section.
package gff

import (
	"bufio"
	goerrors "errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/resolve/interval"
	"github.com/pkg/errors"
)

var (
	// ErrInvalid is returned (wrapped with the offending line number) when a
	// feature line cannot be parsed.
	ErrInvalid = goerrors.New("invalid GFF3 record")
)

// Missing is the GFF3 placeholder for an undefined column value.
const Missing = "."

// maxLineLen bounds the length of one line.  Attribute columns can be long,
// but not this long.
const maxLineLen = 64 << 20

// A Record is one GFF3 feature line.  Start and End are 1-based and closed,
// as in the file.
type Record struct {
	SeqID  string
	Source string
	Type   string
	Start  interval.PosType
	End    interval.PosType
	// Score is 0 when HasScore is false (the score column was ".").
	Score    float64
	HasScore bool
	Strand   string
	Phase    string
	// Attributes is the raw ninth column, or "" if the line had only eight
	// columns.
	Attributes string
}

// Scanner reads GFF3 records.  The Scan method returns the next record,
// returning a boolean indicating whether the read succeeded.  Scanners are not
// threadsafe.
//
// Scanner requires each feature line to have 8 or 9 tab-separated columns,
// integral coordinates with 0 <= start <= end, and a finite numeric or "."
// score.  It does not validate the strand or phase columns.
type Scanner struct {
	b    *bufio.Scanner
	line int
	err  error
	done bool
}

// NewScanner constructs a new Scanner that reads GFF3 data from r.
func NewScanner(r io.Reader) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(make([]byte, 0, 64<<10), maxLineLen)
	return &Scanner{b: b}
}

// Scan the next record into rec. Scan returns a boolean indicating whether the
// scan succeeded. Once Scan returns false, it never returns true again. Upon
// completion, the user should check the Err method to determine whether
// scanning stopped because of an error or because the end of the stream was
// reached.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil || s.done {
		return false
	}
	for s.b.Scan() {
		s.line++
		line := s.b.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == '#' {
			if strings.HasPrefix(line, "##FASTA") {
				s.done = true
				return false
			}
			continue
		}
		if s.err = parseRecord(line, rec); s.err != nil {
			s.err = errors.Wrapf(s.err, "line %d", s.line)
			return false
		}
		return true
	}
	s.err = s.b.Err()
	s.done = true
	return false
}

// Line returns the 1-based number of the line most recently read.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	return s.err
}

func parseRecord(line string, rec *Record) error {
	line = strings.TrimRight(line, "\r")
	cols := strings.Split(line, "\t")
	if len(cols) < 8 || len(cols) > 9 {
		return errors.Wrapf(ErrInvalid, "expected 8 or 9 columns, found %d", len(cols))
	}
	start, err := parsePos(cols[3])
	if err != nil {
		return err
	}
	end, err := parsePos(cols[4])
	if err != nil {
		return err
	}
	if start > end {
		return errors.Wrapf(ErrInvalid, "start %d is after end %d", start, end)
	}
	*rec = Record{
		SeqID:  cols[0],
		Source: cols[1],
		Type:   cols[2],
		Start:  start,
		End:    end,
		Strand: cols[6],
		Phase:  cols[7],
	}
	if cols[5] != Missing {
		score, err := strconv.ParseFloat(cols[5], 64)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
			return errors.Wrapf(ErrInvalid, "bad score %q", cols[5])
		}
		rec.Score = score
		rec.HasScore = true
	}
	if len(cols) == 9 {
		rec.Attributes = cols[8]
	}
	return nil
}

func parsePos(s string) (interval.PosType, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < 0 {
		return 0, errors.Wrapf(ErrInvalid, "bad coordinate %q", s)
	}
	return interval.PosType(v), nil
}

// ReadRecords reads every feature record from r.
func ReadRecords(r io.Reader) ([]*Record, error) {
	var records []*Record
	sc := NewScanner(r)
	for {
		rec := new(Record)
		if !sc.Scan(rec) {
			break
		}
		records = append(records, rec)
	}
	return records, sc.Err()
}
