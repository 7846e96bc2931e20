package testing_util

import (
	"fmt"
	"sort"

	"github.com/ryogrid/SamehadaGraceJoin/storage/record"
)

// RecordString identifies a record by both key and payload
func RecordString(rec *record.Record) string {
	return fmt.Sprintf("%s/%s", rec.GetKey(), rec.GetData())
}

func PairString(left *record.Record, right *record.Record) string {
	return RecordString(left) + "|" + RecordString(right)
}

// SortedRecordStrings returns multiset of records as sorted strings
func SortedRecordStrings(records []*record.Record) []string {
	ret := make([]string, 0, len(records))
	for _, rec := range records {
		ret = append(ret, RecordString(rec))
	}
	sort.Strings(ret)
	return ret
}

// NestedLoopJoin returns sorted multiset of equi-join pairs computed naively
func NestedLoopJoin(left []*record.Record, right []*record.Record) []string {
	ret := make([]string, 0)
	for _, l := range left {
		for _, r := range right {
			if l.Equals(r) {
				ret = append(ret, PairString(l, r))
			}
		}
	}
	sort.Strings(ret)
	return ret
}
