package page

import (
	"fmt"

	"github.com/ryogrid/SamehadaGraceJoin/common"
	"github.com/ryogrid/SamehadaGraceJoin/errors"
	"github.com/ryogrid/SamehadaGraceJoin/storage/record"
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

const ErrPageFull = errors.Error("page has no free entry.")
const ErrPageOverflow = errors.Error("entry does not fit in page size.")
const ErrEntryKindMismatch = errors.Error("records and pairs can not be mixed in a page.")
const ErrCorruptedPage = errors.Error("page data is corrupted.")
const ErrRecordTooLarge = errors.Error("record is larger than half of page size.")

type EntryKind uint8

const (
	// nothing has been inserted since last reset
	KindEmpty EntryKind = iota
	KindRecord
	KindPair
)

const SizePageHeader = 5
const OffsetKind = 0
const OffsetEntryCount = 1

// a matched pair of two records of this size still fits one page
const MaxRecordSize = (common.PageSize - SizePageHeader) / 2

/**
 * Page is the in-memory image of a disk page held by one buffer frame.
 * It keeps at most capacity entries. An entry is a record or, on join
 * output pages, a matched pair of records.
 *
 * Serialized format:
 * | Kind (1) | EntryCount (4) | Entry1 | Entry2 | ... |
 * a record entry is a serialized record, a pair entry is two serialized records (left, right).
 */
type Page struct {
	id        types.PageID // disk page last loaded into or flushed from this frame
	capacity  uint32
	kind      EntryKind
	lefts     []*record.Record
	rights    []*record.Record // used by pair pages only
	usedBytes uint32
}

// NewEmpty creates a page which can hold capacity entries
func NewEmpty(capacity uint32) *Page {
	common.SH_Assert(capacity > 0, "page capacity must be positive")
	return &Page{
		id:        types.InvalidPageID,
		capacity:  capacity,
		kind:      KindEmpty,
		lefts:     make([]*record.Record, 0, capacity),
		rights:    make([]*record.Record, 0),
		usedBytes: SizePageHeader,
	}
}

// Reset clears all entries. capacity is kept.
func (p *Page) Reset() {
	p.id = types.InvalidPageID
	p.kind = KindEmpty
	p.lefts = p.lefts[:0]
	p.rights = p.rights[:0]
	p.usedBytes = SizePageHeader
}

func (p *Page) GetPageId() types.PageID   { return p.id }
func (p *Page) SetPageId(id types.PageID) { p.id = id }
func (p *Page) Capacity() uint32          { return p.capacity }
func (p *Page) Kind() EntryKind           { return p.kind }
func (p *Page) Size() uint32              { return uint32(len(p.lefts)) }
func (p *Page) IsFull() bool              { return p.Size() >= p.capacity }
func (p *Page) IsEmpty() bool             { return p.Size() == 0 }

// RecordAt returns i-th record of a record page
func (p *Page) RecordAt(i uint32) *record.Record {
	common.SH_Assert(p.kind == KindRecord, "RecordAt is called on a page which does not hold records")
	common.SH_Assert(i < p.Size(), fmt.Sprintf("record index %d is out of range (size %d)", i, p.Size()))
	return p.lefts[i]
}

// PairAt returns i-th matched pair of an output page
func (p *Page) PairAt(i uint32) (*record.Record, *record.Record) {
	common.SH_Assert(p.kind == KindPair, "PairAt is called on a page which does not hold pairs")
	common.SH_Assert(i < p.Size(), fmt.Sprintf("pair index %d is out of range (size %d)", i, p.Size()))
	return p.lefts[i], p.rights[i]
}

func (p *Page) InsertRecord(r *record.Record) error {
	if r.Size() > MaxRecordSize {
		return fmt.Errorf("record of %d bytes (max %d): %w", r.Size(), MaxRecordSize, ErrRecordTooLarge)
	}
	if err := p.checkInsertable(KindRecord, r.Size()); err != nil {
		return err
	}
	p.kind = KindRecord
	p.lefts = append(p.lefts, r)
	p.usedBytes += r.Size()
	return nil
}

func (p *Page) InsertPair(left *record.Record, right *record.Record) error {
	if err := p.checkInsertable(KindPair, left.Size()+right.Size()); err != nil {
		return err
	}
	p.kind = KindPair
	p.lefts = append(p.lefts, left)
	p.rights = append(p.rights, right)
	p.usedBytes += left.Size() + right.Size()
	return nil
}

func (p *Page) checkInsertable(kind EntryKind, entrySize uint32) error {
	if p.kind != KindEmpty && p.kind != kind {
		return ErrEntryKindMismatch
	}
	if p.IsFull() {
		return ErrPageFull
	}
	if uint64(p.usedBytes)+uint64(entrySize) > common.PageSize {
		return ErrPageOverflow
	}
	return nil
}

// Serialize encodes entries into a disk page image
func (p *Page) Serialize() *[common.PageSize]byte {
	data := new([common.PageSize]byte)
	data[OffsetKind] = byte(p.kind)
	copy(data[OffsetEntryCount:], types.UInt32(p.Size()).Serialize())
	offset := uint32(SizePageHeader)
	for i := range p.lefts {
		offset += uint32(copy(data[offset:], p.lefts[i].Serialize()))
		if p.kind == KindPair {
			offset += uint32(copy(data[offset:], p.rights[i].Serialize()))
		}
	}
	return data
}

// DeserializeFrom resets the page and fills it with entries of a disk page image
func (p *Page) DeserializeFrom(data []byte) error {
	p.Reset()
	if len(data) < SizePageHeader {
		return ErrCorruptedPage
	}
	kind := EntryKind(data[OffsetKind])
	count := uint32(types.NewUInt32FromBytes(data[OffsetEntryCount:SizePageHeader]))
	if kind > KindPair || (kind == KindEmpty && count != 0) {
		return ErrCorruptedPage
	}
	if count > p.capacity {
		return fmt.Errorf("page holds %d entries but frame capacity is %d: %w", count, p.capacity, ErrCorruptedPage)
	}

	offset := uint32(SizePageHeader)
	readRecord := func() (*record.Record, error) {
		rec, n, err := record.NewRecordFromBytes(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrCorruptedPage)
		}
		offset += n
		return rec, nil
	}
	for i := uint32(0); i < count; i++ {
		left, err := readRecord()
		if err != nil {
			p.Reset()
			return err
		}
		if kind == KindRecord {
			err = p.InsertRecord(left)
		} else {
			var right *record.Record
			if right, err = readRecord(); err == nil {
				err = p.InsertPair(left, right)
			}
		}
		if err != nil {
			p.Reset()
			return err
		}
	}
	return nil
}
