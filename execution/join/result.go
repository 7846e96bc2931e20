package join

import (
	"fmt"

	pair "github.com/notEpsilon/go-pair"
	"github.com/ryogrid/SamehadaGraceJoin/common"
	"github.com/ryogrid/SamehadaGraceJoin/storage/disk"
	"github.com/ryogrid/SamehadaGraceJoin/storage/page"
	"github.com/ryogrid/SamehadaGraceJoin/storage/record"
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

// MatchedPair is (left relation record, right relation record)
type MatchedPair = pair.Pair[*record.Record, *record.Record]

// ReadResult decodes result pages written by Probe, keeping emission order
func ReadResult(dm disk.DiskManager, pageCapacity uint32, pageIDs []types.PageID) ([]MatchedPair, error) {
	ret := make([]MatchedPair, 0)
	err := readPages(dm, pageCapacity, pageIDs, func(pg *page.Page) error {
		if pg.Kind() == page.KindRecord {
			return fmt.Errorf("page %d holds records: %w", pg.GetPageId(), page.ErrEntryKindMismatch)
		}
		for i := uint32(0); i < pg.Size(); i++ {
			left, right := pg.PairAt(i)
			ret = append(ret, MatchedPair{First: left, Second: right})
		}
		return nil
	})
	return ret, err
}

// ReadRecords decodes record pages such as relation pages or bucket pages
func ReadRecords(dm disk.DiskManager, pageCapacity uint32, pageIDs []types.PageID) ([]*record.Record, error) {
	ret := make([]*record.Record, 0)
	err := readPages(dm, pageCapacity, pageIDs, func(pg *page.Page) error {
		if pg.Kind() == page.KindPair {
			return fmt.Errorf("page %d: %w", pg.GetPageId(), ErrNotRecordPage)
		}
		for i := uint32(0); i < pg.Size(); i++ {
			ret = append(ret, pg.RecordAt(i))
		}
		return nil
	})
	return ret, err
}

func readPages(dm disk.DiskManager, pageCapacity uint32, pageIDs []types.PageID, fn func(*page.Page) error) error {
	data := make([]byte, common.PageSize)
	pg := page.NewEmpty(pageCapacity)
	for _, pageID := range pageIDs {
		if err := dm.ReadPage(pageID, data); err != nil {
			return fmt.Errorf("read page %d: %w", pageID, err)
		}
		if err := pg.DeserializeFrom(data); err != nil {
			return fmt.Errorf("decode page %d: %w", pageID, err)
		}
		pg.SetPageId(pageID)
		if err := fn(pg); err != nil {
			return err
		}
	}
	return nil
}
