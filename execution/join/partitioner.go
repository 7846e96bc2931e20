package join

import (
	"fmt"

	"github.com/ryogrid/SamehadaGraceJoin/common"
	"github.com/ryogrid/SamehadaGraceJoin/storage/buffer"
	"github.com/ryogrid/SamehadaGraceJoin/storage/disk"
	"github.com/ryogrid/SamehadaGraceJoin/storage/page"
	"github.com/ryogrid/SamehadaGraceJoin/storage/record"
)

// Partitioner splits both relations into B-1 buckets by partition hash.
// Frame InputFrame streams relation pages and each partition index owns one frame.
type Partitioner struct {
	hasher  record.Hasher
	onPhase func(JoinState)
}

func NewPartitioner(hasher record.Hasher) *Partitioner {
	if hasher == nil {
		hasher = record.DefaultHasher
	}
	return &Partitioner{hasher, nil}
}

// Partition uses the default hasher
func Partition(dm disk.DiskManager, bpm *buffer.BufferPool, left disk.Relation, right disk.Relation) ([]Bucket, error) {
	return NewPartitioner(nil).Partition(dm, bpm, left, right)
}

// Partition returns exactly B-1 buckets. a record is placed in bucket PartitionHash mod (B-1).
func (p *Partitioner) Partition(dm disk.DiskManager, bpm *buffer.BufferPool, left disk.Relation, right disk.Relation) ([]Bucket, error) {
	frameNum := bpm.FrameNum()
	if frameNum < common.MinPartitionFrameNum {
		return nil, fmt.Errorf("partition needs %d frames but pool has %d: %w", common.MinPartitionFrameNum, frameNum, ErrPoolTooSmall)
	}
	if !left.IsValid() {
		return nil, fmt.Errorf("left relation %v: %w", left, ErrInvalidRange)
	}
	if !right.IsValid() {
		return nil, fmt.Errorf("right relation %v: %w", right, ErrInvalidRange)
	}

	buckets := make([]Bucket, numPartitions(frameNum))
	bpm.ResetFrames(PartitionFrameBase, buffer.FrameID(frameNum))

	p.notify(PartitioningLeft)
	if err := p.partitionRelation(dm, bpm, left, buckets, leftSide); err != nil {
		return nil, err
	}
	p.notify(PartitioningRight)
	if err := p.partitionRelation(dm, bpm, right, buckets, rightSide); err != nil {
		return nil, err
	}
	return buckets, nil
}

func (p *Partitioner) partitionRelation(dm disk.DiskManager, bpm *buffer.BufferPool, rel disk.Relation, buckets []Bucket, s side) error {
	common.ShPrintf(common.DEBUG_INFO, "Partitioner: %v relation %v into %d buckets\n", s, rel, len(buckets))

	spill := func(idx uint32) error {
		pageID, err := bpm.FlushToDisk(dm, partitionFrame(idx))
		if err != nil {
			return err
		}
		buckets[idx].addPage(s, pageID)
		return nil
	}

	input := bpm.Frame(InputFrame)
	for pageID := rel.Start; pageID < rel.End; pageID++ {
		input.Reset()
		if err := bpm.LoadFromDisk(dm, pageID, InputFrame); err != nil {
			return err
		}
		if input.Kind() == page.KindPair {
			return fmt.Errorf("page %d of %v relation: %w", pageID, s, ErrNotRecordPage)
		}

		for i := uint32(0); i < input.Size(); i++ {
			rec := input.RecordAt(i)
			idx := p.hasher.PartitionHash(rec) % uint32(len(buckets))
			out := bpm.Frame(partitionFrame(idx))

			err := out.InsertRecord(rec)
			if err == page.ErrPageOverflow && !out.IsEmpty() {
				// frame is short of bytes before reaching its entry capacity
				if err = spill(idx); err == nil {
					err = out.InsertRecord(rec)
				}
			}
			if err != nil {
				return err
			}

			if out.IsFull() {
				if err := spill(idx); err != nil {
					return err
				}
			}
		}
	}

	for idx := range buckets {
		if !bpm.Frame(partitionFrame(uint32(idx))).IsEmpty() {
			if err := spill(uint32(idx)); err != nil {
				return err
			}
		}
	}
	input.Reset()
	return nil
}

func (p *Partitioner) notify(state JoinState) {
	if p.onPhase != nil {
		p.onPhase(state)
	}
}
