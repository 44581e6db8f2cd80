package resolve

import (
	"fmt"

	"github.com/grailbio/resolve/encoding/gff"
)

// Key identifies a group of records that compete for the same coordinates.
// Records with different keys never interact.
type Key struct {
	SeqID  string
	Type   string
	Strand string
}

// String returns "seqid:type:strand".
func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s", k.SeqID, k.Type, k.Strand)
}

// Group is the list of records sharing a Key, in input order.
type Group struct {
	Key     Key
	Records []*gff.Record
}

func keyOf(r *gff.Record, opts Opts) Key {
	k := Key{SeqID: r.SeqID, Type: r.Type, Strand: r.Strand}
	if opts.IgnoreStrand {
		k.Strand = ""
	}
	return k
}

// GroupRecords partitions records by Key.  Groups are returned in order of
// first appearance.  The records are referenced, not copied.
func GroupRecords(records []*gff.Record, opts Opts) []*Group {
	index := map[Key]int{}
	var groups []*Group
	for _, r := range records {
		k := keyOf(r, opts)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, &Group{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}
