package gff

import (
	"context"
	"io"
	"os"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
)

// Stdout is the path that CreatePath maps to the process's standard output.
const Stdout = "-"

// ReadPath reads every feature record from path.  Compressed input is detected
// from the path name and decompressed.
func ReadPath(ctx context.Context, path string) (records []*Record, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	if records, err = ReadRecords(inr); err != nil {
		return nil, errors.E(err, path)
	}
	return records, nil
}

// PathWriter is a Writer bound to a destination path.  Close must be called
// exactly once, after writing all the records.
type PathWriter struct {
	*Writer
	path string
	out  file.File // nil when writing to stdout
	gz   *gzip.Writer
}

// CreatePath creates a GFF3 writer for path.  Paths ending in ".gz" are
// gzip-compressed.  An empty path or Stdout writes to the standard output.
func CreatePath(ctx context.Context, path string) (*PathWriter, error) {
	pw := &PathWriter{path: path}
	var w io.Writer = os.Stdout
	if path != "" && path != Stdout {
		out, err := file.Create(ctx, path)
		if err != nil {
			return nil, errors.E(err, "create", path)
		}
		pw.out = out
		w = out.Writer(ctx)
		if fileio.DetermineType(path) == fileio.Gzip {
			pw.gz = gzip.NewWriter(w)
			w = pw.gz
		}
	}
	pw.Writer = NewWriter(w)
	return pw, nil
}

// Close flushes buffered records and closes the destination.
func (w *PathWriter) Close(ctx context.Context) error {
	once := errors.Once{}
	once.Set(w.Flush())
	if w.gz != nil {
		once.Set(w.gz.Close())
	}
	if w.out != nil {
		once.Set(w.out.Close(ctx))
	}
	if err := once.Err(); err != nil {
		return errors.E(err, "close", w.path)
	}
	return nil
}
