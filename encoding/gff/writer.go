package gff

import (
	"io"
	"strconv"
	"time"

	"github.com/grailbio/base/tsv"
)

// Version is the GFF version written in the header.
const Version = "3"

// Writer is a GFF3 file writer.  Output is buffered; Flush must be called once
// writing is done.
type Writer struct {
	w *tsv.Writer
}

// NewWriter constructs a new GFF3 writer that writes records to the underlying
// writer w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: tsv.NewWriter(w)}
}

// WriteHeader writes the "##gff-version" line, followed by a "##date" line
// holding date in YYYY-MM-DD form.
func (w *Writer) WriteHeader(date time.Time) error {
	w.w.WriteString("##gff-version " + Version)
	if err := w.w.EndLine(); err != nil {
		return err
	}
	w.w.WriteString("##date " + date.Format("2006-01-02"))
	return w.w.EndLine()
}

// Write writes r as one feature line.  The attribute column is written only if
// r.Attributes is nonempty.
func (w *Writer) Write(r *Record) error {
	w.w.WriteString(r.SeqID)
	w.w.WriteString(r.Source)
	w.w.WriteString(r.Type)
	w.w.WriteUint32(uint32(r.Start))
	w.w.WriteUint32(uint32(r.End))
	if r.HasScore {
		w.w.WriteString(strconv.FormatFloat(r.Score, 'g', -1, 64))
	} else {
		w.w.WriteString(Missing)
	}
	w.w.WriteString(r.Strand)
	w.w.WriteString(r.Phase)
	if r.Attributes != "" {
		w.w.WriteString(r.Attributes)
	}
	return w.w.EndLine()
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
