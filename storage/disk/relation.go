package disk

import (
	"fmt"

	"github.com/ryogrid/SamehadaGraceJoin/storage/page"
	"github.com/ryogrid/SamehadaGraceJoin/storage/record"
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

// Relation is the half-open range [Start, End) of page ids holding its records
type Relation struct {
	Start types.PageID
	End   types.PageID
}

func NewRelation(start types.PageID, end types.PageID) Relation {
	return Relation{start, end}
}

func (r Relation) IsValid() bool {
	return r.Start >= 0 && r.End >= r.Start
}

// NumPages returns page count of the relation. invalid range has zero pages.
func (r Relation) NumPages() uint32 {
	if !r.IsValid() {
		return 0
	}
	return uint32(r.End - r.Start)
}

func (r Relation) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// LoadRelation packs records into pages of recordsPerPage entries, writes them
// on consecutive pages and returns the range. empty input returns an empty range.
func LoadRelation(dm DiskManager, records []*record.Record, recordsPerPage uint32) (Relation, error) {
	pg := page.NewEmpty(recordsPerPage)
	start := types.InvalidPageID
	last := types.InvalidPageID

	flush := func() error {
		pageID := dm.AllocatePage()
		if last != types.InvalidPageID && pageID != last+1 {
			return fmt.Errorf("relation pages are not contiguous: %d follows %d", pageID, last)
		}
		if start == types.InvalidPageID {
			start = pageID
		}
		last = pageID
		data := pg.Serialize()
		if err := dm.WritePage(pageID, data[:]); err != nil {
			return err
		}
		pg.Reset()
		return nil
	}

	for _, rec := range records {
		if err := pg.InsertRecord(rec); err != nil {
			return Relation{}, err
		}
		if pg.IsFull() {
			if err := flush(); err != nil {
				return Relation{}, err
			}
		}
	}
	if !pg.IsEmpty() {
		if err := flush(); err != nil {
			return Relation{}, err
		}
	}

	if start == types.InvalidPageID {
		return NewRelation(0, 0), nil
	}
	return NewRelation(start, last+1), nil
}
