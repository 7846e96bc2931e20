package join

import (
	"fmt"

	"github.com/ryogrid/SamehadaGraceJoin/common"
	"github.com/ryogrid/SamehadaGraceJoin/storage/buffer"
	"github.com/ryogrid/SamehadaGraceJoin/storage/disk"
	"github.com/ryogrid/SamehadaGraceJoin/storage/record"
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

type JoinState int32

const (
	Idle JoinState = iota
	PartitioningLeft
	PartitioningRight
	Probing
	FinalFlush
	Done
	Failed
)

func (s JoinState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case PartitioningLeft:
		return "PartitioningLeft"
	case PartitioningRight:
		return "PartitioningRight"
	case Probing:
		return "Probing"
	case FinalFlush:
		return "FinalFlush"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("JoinState(%d)", int32(s))
}

/**
 * GraceHashJoin runs partition and probe phases of one join call.
 * It owns every frame of the buffer pool while Execute runs.
 * A GraceHashJoin executes only once.
 */
type GraceHashJoin struct {
	diskManager disk.DiskManager
	bpm         *buffer.BufferPool
	hasher      record.Hasher
	state       JoinState
	buckets     []Bucket
}

// NewGraceHashJoin borrows dm and bpm. nil hasher means record.DefaultHasher.
func NewGraceHashJoin(dm disk.DiskManager, bpm *buffer.BufferPool, hasher record.Hasher) *GraceHashJoin {
	if hasher == nil {
		hasher = record.DefaultHasher
	}
	return &GraceHashJoin{dm, bpm, hasher, Idle, nil}
}

func (j *GraceHashJoin) State() JoinState { return j.state }

// Buckets returns partition result. nil until partition phase finishes.
func (j *GraceHashJoin) Buckets() []Bucket { return j.buckets }

// Execute joins left and right and returns ids of result pages in emission order
func (j *GraceHashJoin) Execute(left disk.Relation, right disk.Relation) ([]types.PageID, error) {
	if j.state != Idle {
		return nil, fmt.Errorf("join is in %v state: %w", j.state, ErrJoinAlreadyExecuted)
	}
	// probe phase needs more frames than partition phase. reject before any page is written.
	if frameNum := j.bpm.FrameNum(); frameNum < common.MinProbeFrameNum {
		return nil, j.fail(fmt.Errorf("join needs %d frames but pool has %d: %w", common.MinProbeFrameNum, frameNum, ErrPoolTooSmall))
	}

	j.bpm.Acquire()
	defer j.bpm.Release()

	readsBefore, writesBefore := j.diskManager.GetNumReads(), j.diskManager.GetNumWrites()

	partitioner := NewPartitioner(j.hasher)
	partitioner.onPhase = j.transit
	buckets, err := partitioner.Partition(j.diskManager, j.bpm, left, right)
	if err != nil {
		return nil, j.fail(err)
	}
	j.buckets = buckets

	prober := NewProber(j.hasher)
	prober.onPhase = j.transit
	result, err := prober.Probe(j.diskManager, j.bpm, buckets)
	if err != nil {
		return nil, j.fail(err)
	}
	j.transit(Done)

	common.ShPrintf(common.INFO, "GraceHashJoin: left=%v right=%v frames=%d result pages=%d reads=%d writes=%d\n",
		left, right, j.bpm.FrameNum(), len(result),
		j.diskManager.GetNumReads()-readsBefore, j.diskManager.GetNumWrites()-writesBefore)
	return result, nil
}

func (j *GraceHashJoin) transit(next JoinState) {
	common.SH_Assert(next > j.state, fmt.Sprintf("illegal join state transition %v -> %v", j.state, next))
	common.ShPrintf(common.DEBUG_INFO, "GraceHashJoin: %v -> %v\n", j.state, next)
	j.state = next
}

func (j *GraceHashJoin) fail(err error) error {
	common.ShPrintf(common.WARN, "GraceHashJoin: failed on %v: %v\n", j.state, err)
	j.state = Failed
	return err
}
