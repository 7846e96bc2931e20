package join

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

type side int

const (
	leftSide side = iota
	rightSide
)

func (s side) String() string {
	if s == leftSide {
		return "left"
	}
	return "right"
}

// Bucket holds disk pages of one partition index, per relation side, in write order.
// It is filled by Partition and only read by Probe.
type Bucket struct {
	leftPages  []types.PageID
	rightPages []types.PageID
}

func (b *Bucket) AddLeftPage(pageID types.PageID)  { b.leftPages = append(b.leftPages, pageID) }
func (b *Bucket) AddRightPage(pageID types.PageID) { b.rightPages = append(b.rightPages, pageID) }

func (b *Bucket) addPage(s side, pageID types.PageID) {
	if s == leftSide {
		b.AddLeftPage(pageID)
	} else {
		b.AddRightPage(pageID)
	}
}

// LeftPages returns a copy of page ids of left relation
func (b *Bucket) LeftPages() []types.PageID { return append([]types.PageID{}, b.leftPages...) }

// RightPages returns a copy of page ids of right relation
func (b *Bucket) RightPages() []types.PageID { return append([]types.PageID{}, b.rightPages...) }

func (b *Bucket) IsEmpty() bool { return len(b.leftPages) == 0 && len(b.rightPages) == 0 }

// VerifyBuckets checks that no page id appears twice across all buckets and sides
func VerifyBuckets(buckets []Bucket) error {
	seen := mapset.NewThreadUnsafeSet[types.PageID]()
	for idx := range buckets {
		for _, s := range []side{leftSide, rightSide} {
			pages := buckets[idx].leftPages
			if s == rightSide {
				pages = buckets[idx].rightPages
			}
			for _, pageID := range pages {
				if !seen.Add(pageID) {
					return fmt.Errorf("page %d in bucket %d (%v): %w", pageID, idx, s, ErrBucketPageShared)
				}
			}
		}
	}
	return nil
}
