package gff

import (
	"strings"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gff3 = `##gff-version 3
##sequence-region ctg123 1 1497228
ctg123	.	gene	1000	9000	.	+	.	ID=gene00001;Name=EDEN
ctg123	.	mRNA	1050	9000	12	+	.	ID=mRNA00001;Parent=gene00001

# a comment
ctg123	prediction	exon	1300	1500	3.5	-	0
###
ctg123	.	CDS	1201	1500	-2	+	0	ID=cds00001
##FASTA
>ctg123
cttctgggcgtacccgattctcggagaacttgccgcaccattccgccttg
`

func scanAll(s string) ([]*Record, error) {
	return ReadRecords(strings.NewReader(s))
}

func TestScan(t *testing.T) {
	records, err := scanAll(gff3)
	require.NoError(t, err)
	require.Equal(t, 4, len(records))

	expect.EQ(t, *records[0], Record{
		SeqID:      "ctg123",
		Source:     ".",
		Type:       "gene",
		Start:      1000,
		End:        9000,
		Strand:     "+",
		Phase:      ".",
		Attributes: "ID=gene00001;Name=EDEN",
	})
	expect.EQ(t, records[1].Score, 12.0)
	expect.True(t, records[1].HasScore)
	expect.EQ(t, *records[2], Record{
		SeqID:    "ctg123",
		Source:   "prediction",
		Type:     "exon",
		Start:    1300,
		End:      1500,
		Score:    3.5,
		HasScore: true,
		Strand:   "-",
		Phase:    "0",
	})
	expect.EQ(t, records[3].Score, -2.0)
}

func TestScanStopsAtFASTA(t *testing.T) {
	sc := NewScanner(strings.NewReader(gff3))
	var rec Record
	n := 0
	for sc.Scan(&rec) {
		n++
	}
	assert.Equal(t, 4, n)
	assert.NoError(t, sc.Err())
	assert.False(t, sc.Scan(&rec))
	assert.Equal(t, 10, sc.Line())
}

func TestScanCRLF(t *testing.T) {
	records, err := scanAll("chr1\tsrc\texon\t1\t5\t10\t+\t.\r\n")
	require.NoError(t, err)
	require.Equal(t, 1, len(records))
	assert.Equal(t, ".", records[0].Phase)
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		input string
		line  string
	}{
		{"chr1\tsrc\texon\t1\t5\t10\t+\n", "line 1"},
		{"chr1\tsrc\texon\t1\t5\t10\t+\t.\ta\tb\n", "line 1"},
		{"# header\nchr1\tsrc\texon\tx\t5\t10\t+\t.\n", "line 2"},
		{"chr1\tsrc\texon\t1\t5.5\t10\t+\t.\n", "line 1"},
		{"chr1\tsrc\texon\t-1\t5\t10\t+\t.\n", "line 1"},
		{"chr1\tsrc\texon\t1\t99999999999\t10\t+\t.\n", "line 1"},
		{"chr1\tsrc\texon\t9\t5\t10\t+\t.\n", "line 1"},
		{"chr1\tsrc\texon\t1\t5\thigh\t+\t.\n", "line 1"},
		{"chr1\tsrc\texon\t1\t5\tNaN\t+\t.\n", "line 1"},
		{"chr1\tsrc\texon\t1\t5\t+Inf\t+\t.\n", "line 1"},
		{"chr1\tsrc\texon\t1\t5\t1\t+\t.\nchr1 src exon 1 5 1 + .\n", "line 2"},
	}
	for _, tt := range tests {
		_, err := scanAll(tt.input)
		require.Error(t, err, tt.input)
		assert.Equal(t, ErrInvalid, errors.Cause(err), tt.input)
		assert.Contains(t, err.Error(), tt.line, tt.input)
	}
}

func TestScanEmpty(t *testing.T) {
	records, err := scanAll("##gff-version 3\n\n")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(records))
}
