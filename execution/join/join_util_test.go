package join

import (
	"sort"
	"testing"

	"github.com/ryogrid/SamehadaGraceJoin/storage/disk"
	"github.com/ryogrid/SamehadaGraceJoin/storage/record"
	testingpkg "github.com/ryogrid/SamehadaGraceJoin/testing/testing_assert"
	"github.com/ryogrid/SamehadaGraceJoin/testing/testing_util"
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

// tableHasher returns fixed hash values per key
type tableHasher struct {
	partition map[string]uint32
	probe     map[string]uint32
}

func (h tableHasher) PartitionHash(r *record.Record) uint32 { return h.partition[string(r.GetKey())] }
func (h tableHasher) ProbeHash(r *record.Record) uint32     { return h.probe[string(r.GetKey())] }

func genRecords(name string, keys ...string) []*record.Record {
	ret := make([]*record.Record, 0, len(keys))
	for _, k := range keys {
		ret = append(ret, record.NewRecord([]byte(k), []byte(name)))
	}
	return ret
}

func loadRelation(t *testing.T, dm disk.DiskManager, records []*record.Record, recordsPerPage uint32) disk.Relation {
	rel, err := disk.LoadRelation(dm, records, recordsPerPage)
	testingpkg.Ok(t, err)
	return rel
}

func readKeys(t *testing.T, dm disk.DiskManager, pageCapacity uint32, pageIDs []types.PageID) []string {
	records, err := ReadRecords(dm, pageCapacity, pageIDs)
	testingpkg.Ok(t, err)
	keys := make([]string, 0, len(records))
	for _, rec := range records {
		keys = append(keys, string(rec.GetKey()))
	}
	sort.Strings(keys)
	return keys
}

func readPairStrings(t *testing.T, dm disk.DiskManager, pageCapacity uint32, pageIDs []types.PageID) []string {
	pairs, err := ReadResult(dm, pageCapacity, pageIDs)
	testingpkg.Ok(t, err)
	ret := make([]string, 0, len(pairs))
	for _, p := range pairs {
		ret = append(ret, testing_util.PairString(p.First, p.Second))
	}
	sort.Strings(ret)
	return ret
}
