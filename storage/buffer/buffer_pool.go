package buffer

import (
	"fmt"

	"github.com/ncw/directio"
	"github.com/ryogrid/SamehadaGraceJoin/common"
	"github.com/ryogrid/SamehadaGraceJoin/errors"
	"github.com/ryogrid/SamehadaGraceJoin/storage/disk"
	"github.com/ryogrid/SamehadaGraceJoin/storage/page"
	"github.com/ryogrid/SamehadaGraceJoin/types"
	"github.com/sasha-s/go-deadlock"
)

// FrameID is the type for frame id
type FrameID uint32

const ErrInvalidFrameID = errors.Error("frame id is out of range.")

// BufferPool is a fixed array of frames. Each frame holds one page worth of entries.
// Frames are not bound to disk pages: callers load a disk page into a frame and
// flush a frame as a new disk page explicitly.
type BufferPool struct {
	frames       []*page.Page
	pageCapacity uint32
	// held by a join for its whole execution
	latch deadlock.Mutex
}

// NewBufferPool returns a pool of frameNum frames whose pages hold pageCapacity entries
func NewBufferPool(frameNum uint32, pageCapacity uint32) *BufferPool {
	frames := make([]*page.Page, frameNum)
	for i := uint32(0); i < frameNum; i++ {
		frames[i] = page.NewEmpty(pageCapacity)
	}
	return &BufferPool{frames: frames, pageCapacity: pageCapacity}
}

func (b *BufferPool) FrameNum() uint32 { return uint32(len(b.frames)) }

func (b *BufferPool) PageCapacity() uint32 { return b.pageCapacity }

// Frame returns the page held by frameID
func (b *BufferPool) Frame(frameID FrameID) *page.Page {
	common.SH_Assert(b.isValidFrame(frameID), fmt.Sprintf("frame %d is out of range (pool size %d)", frameID, len(b.frames)))
	return b.frames[frameID]
}

// ResetFrames clears frames in [from, to)
func (b *BufferPool) ResetFrames(from FrameID, to FrameID) {
	for id := from; id < to; id++ {
		b.Frame(id).Reset()
	}
}

// LoadFromDisk reads a disk page into a frame. the frame's previous content is discarded.
func (b *BufferPool) LoadFromDisk(dm disk.DiskManager, pageID types.PageID, frameID FrameID) error {
	if !b.isValidFrame(frameID) {
		return ErrInvalidFrameID
	}
	data := directio.AlignedBlock(common.PageSize)
	if err := dm.ReadPage(pageID, data); err != nil {
		return fmt.Errorf("read page %d into frame %d: %w", pageID, frameID, err)
	}
	pg := b.frames[frameID]
	if err := pg.DeserializeFrom(data); err != nil {
		return fmt.Errorf("decode page %d into frame %d: %w", pageID, frameID, err)
	}
	pg.SetPageId(pageID)
	return nil
}

// FlushToDisk appends content of a frame as a new disk page and resets the frame
func (b *BufferPool) FlushToDisk(dm disk.DiskManager, frameID FrameID) (types.PageID, error) {
	if !b.isValidFrame(frameID) {
		return types.InvalidPageID, ErrInvalidFrameID
	}
	pg := b.frames[frameID]
	pageID := dm.AllocatePage()
	data := pg.Serialize()
	if err := dm.WritePage(pageID, data[:]); err != nil {
		return types.InvalidPageID, fmt.Errorf("flush frame %d to page %d: %w", frameID, pageID, err)
	}
	common.ShPrintf(common.DEBUG_INFO_DETAIL, "BufferPool::FlushToDisk frame=%d pageId=%d entries=%d\n", frameID, pageID, pg.Size())
	pg.Reset()
	return pageID, nil
}

// Acquire gives the caller exclusive use of all frames until Release is called
func (b *BufferPool) Acquire() { b.latch.Lock() }

func (b *BufferPool) Release() { b.latch.Unlock() }

func (b *BufferPool) isValidFrame(frameID FrameID) bool {
	return uint32(frameID) < uint32(len(b.frames))
}
