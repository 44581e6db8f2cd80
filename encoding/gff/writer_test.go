package gff

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	assert.NoError(t, w.WriteHeader(time.Date(2017, 5, 5, 12, 0, 0, 0, time.UTC)))
	assert.NoError(t, w.Write(&Record{
		SeqID: "chr1", Source: "src", Type: "exon", Start: 1, End: 5,
		Score: 10, HasScore: true, Strand: "+", Phase: "0",
	}))
	assert.NoError(t, w.Write(&Record{
		SeqID: "chr1", Source: "src", Type: "exon", Start: 7, End: 9,
		Strand: "-", Phase: ".", Attributes: "ID=e2",
	}))
	assert.NoError(t, w.Write(&Record{
		SeqID: "chr2", Source: "src", Type: "CDS", Start: 3, End: 4,
		Score: 0.25, HasScore: true, Strand: ".", Phase: "2",
	}))
	assert.NoError(t, w.Flush())
	expect.EQ(t, buf.String(), `##gff-version 3
##date 2017-05-05
chr1	src	exon	1	5	10	+	0
chr1	src	exon	7	9	.	-	.	ID=e2
chr2	src	CDS	3	4	0.25	.	2
`)
}

func TestWriterRoundTrip(t *testing.T) {
	orig, err := ReadRecords(strings.NewReader(gff3))
	assert.NoError(t, err)
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, r := range orig {
		assert.NoError(t, w.Write(r))
	}
	assert.NoError(t, w.Flush())
	got, err := ReadRecords(&buf)
	assert.NoError(t, err)
	expect.EQ(t, got, orig)
}

func TestPaths(t *testing.T) {
	ctx := context.Background()
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	orig, err := ReadRecords(strings.NewReader(gff3))
	assert.NoError(t, err)
	for _, name := range []string{"out.gff3", "out.gff3.gz"} {
		path := filepath.Join(tmpdir, name)
		w, err := CreatePath(ctx, path)
		assert.NoError(t, err)
		for _, r := range orig {
			assert.NoError(t, w.Write(r))
		}
		assert.NoError(t, w.Close(ctx))

		got, err := ReadPath(ctx, path)
		assert.NoError(t, err)
		expect.EQ(t, got, orig)
	}

	data, err := os.ReadFile(filepath.Join(tmpdir, "out.gff3.gz"))
	assert.NoError(t, err)
	// gzip magic.
	expect.EQ(t, data[:2], []byte{0x1f, 0x8b})

	_, err = ReadPath(ctx, filepath.Join(tmpdir, "missing.gff3"))
	expect.True(t, err != nil)
}
