package join

import (
	"fmt"

	"github.com/ryogrid/SamehadaGraceJoin/common"
	"github.com/ryogrid/SamehadaGraceJoin/storage/buffer"
	"github.com/ryogrid/SamehadaGraceJoin/storage/disk"
	"github.com/ryogrid/SamehadaGraceJoin/storage/page"
	"github.com/ryogrid/SamehadaGraceJoin/storage/record"
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

// Prober joins each bucket by hashing its smaller side into B-2 hash frames
// and streaming the other side against them.
type Prober struct {
	hasher  record.Hasher
	onPhase func(JoinState)
}

func NewProber(hasher record.Hasher) *Prober {
	if hasher == nil {
		hasher = record.DefaultHasher
	}
	return &Prober{hasher, nil}
}

// Probe uses the default hasher
func Probe(dm disk.DiskManager, bpm *buffer.BufferPool, buckets []Bucket) ([]types.PageID, error) {
	return NewProber(nil).Probe(dm, bpm, buckets)
}

// Probe returns ids of pages holding matched pairs in emission order.
// each pair is (left relation record, right relation record).
func (p *Prober) Probe(dm disk.DiskManager, bpm *buffer.BufferPool, buckets []Bucket) ([]types.PageID, error) {
	frameNum := bpm.FrameNum()
	if frameNum < common.MinProbeFrameNum {
		return nil, fmt.Errorf("probe needs %d frames but pool has %d: %w", common.MinProbeFrameNum, frameNum, ErrPoolTooSmall)
	}
	if err := VerifyBuckets(buckets); err != nil {
		return nil, err
	}

	p.notify(Probing)
	result := make([]types.PageID, 0)
	output := bpm.Frame(OutputFrame)
	output.Reset()

	emit := func(left *record.Record, right *record.Record) error {
		if output.IsFull() {
			if err := p.flushOutput(dm, bpm, &result); err != nil {
				return err
			}
		}
		err := output.InsertPair(left, right)
		if err == page.ErrPageOverflow && !output.IsEmpty() {
			if err = p.flushOutput(dm, bpm, &result); err == nil {
				err = output.InsertPair(left, right)
			}
		}
		return err
	}

	for idx := range buckets {
		if err := p.probeBucket(dm, bpm, uint32(idx), &buckets[idx], emit); err != nil {
			bpm.ResetFrames(HashFrameBase, buffer.FrameID(frameNum))
			return nil, err
		}
	}

	p.notify(FinalFlush)
	if !output.IsEmpty() {
		if err := p.flushOutput(dm, bpm, &result); err != nil {
			return nil, err
		}
	}
	bpm.ResetFrames(HashFrameBase, buffer.FrameID(frameNum))
	return result, nil
}

func (p *Prober) probeBucket(dm disk.DiskManager, bpm *buffer.BufferPool, bucketIdx uint32, bucket *Bucket, emit func(*record.Record, *record.Record) error) error {
	// page count stands in for relation size. it does not guarantee the build side fits.
	buildPages, probePages, buildSide := bucket.rightPages, bucket.leftPages, rightSide
	if len(bucket.leftPages) < len(bucket.rightPages) {
		buildPages, probePages, buildSide = bucket.leftPages, bucket.rightPages, leftSide
	}
	if len(buildPages) == 0 || len(probePages) == 0 {
		common.ShPrintf(common.DEBUG_INFO, "Prober: bucket %d has no match candidates\n", bucketIdx)
		return nil
	}
	common.ShPrintf(common.DEBUG_INFO, "Prober: bucket %d build=%v(%d pages) probe=%d pages\n", bucketIdx, buildSide, len(buildPages), len(probePages))

	frameNum := bpm.FrameNum()
	hashFrameNum := numHashFrames(frameNum)
	bpm.ResetFrames(HashFrameBase, buffer.FrameID(frameNum))

	// build
	err := p.streamPages(dm, bpm, buildPages, func(rec *record.Record) error {
		hashIdx := p.hasher.ProbeHash(rec) % hashFrameNum
		hf := bpm.Frame(hashFrame(hashIdx))
		err := hf.InsertRecord(rec)
		if err == page.ErrPageFull || err == page.ErrPageOverflow {
			common.ShPrintf(common.WARN, "Prober: hash frame %d overflowed on bucket %d\n", hashIdx, bucketIdx)
			return fmt.Errorf("bucket %d, hash frame %d holds %d records: %w", bucketIdx, hashIdx, hf.Size(), ErrHashCapacityExceeded)
		}
		return err
	})
	if err != nil {
		return err
	}

	// probe
	return p.streamPages(dm, bpm, probePages, func(rec *record.Record) error {
		hf := bpm.Frame(hashFrame(p.hasher.ProbeHash(rec) % hashFrameNum))
		for j := uint32(0); j < hf.Size(); j++ {
			candidate := hf.RecordAt(j)
			if !candidate.Equals(rec) {
				continue
			}
			var err error
			if buildSide == leftSide {
				err = emit(candidate, rec)
			} else {
				err = emit(rec, candidate)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// streamPages loads each page into the input frame and passes its records to fn
func (p *Prober) streamPages(dm disk.DiskManager, bpm *buffer.BufferPool, pageIDs []types.PageID, fn func(*record.Record) error) error {
	input := bpm.Frame(InputFrame)
	defer input.Reset()
	for _, pageID := range pageIDs {
		input.Reset()
		if err := bpm.LoadFromDisk(dm, pageID, InputFrame); err != nil {
			return err
		}
		if input.Kind() == page.KindPair {
			return fmt.Errorf("bucket page %d: %w", pageID, ErrNotRecordPage)
		}
		for i := uint32(0); i < input.Size(); i++ {
			if err := fn(input.RecordAt(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Prober) flushOutput(dm disk.DiskManager, bpm *buffer.BufferPool, result *[]types.PageID) error {
	pageID, err := bpm.FlushToDisk(dm, OutputFrame)
	if err != nil {
		return err
	}
	*result = append(*result, pageID)
	return nil
}

func (p *Prober) notify(state JoinState) {
	if p.onPhase != nil {
		p.onPhase(state)
	}
}
