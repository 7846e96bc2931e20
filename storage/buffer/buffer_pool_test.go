package buffer

import (
	"errors"
	"testing"

	"github.com/ryogrid/SamehadaGraceJoin/storage/disk"
	"github.com/ryogrid/SamehadaGraceJoin/storage/record"
	testingpkg "github.com/ryogrid/SamehadaGraceJoin/testing/testing_assert"
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

func TestFlushAndLoadFrame(t *testing.T) {
	dm := disk.NewDiskManagerTest()
	defer dm.ShutDown()
	bp := NewBufferPool(4, 3)

	testingpkg.Equals(t, uint32(4), bp.FrameNum())
	testingpkg.Equals(t, uint32(3), bp.PageCapacity())

	// Scenario: a filled frame is appended as a new page and becomes empty.
	out := bp.Frame(1)
	testingpkg.Ok(t, out.InsertRecord(record.NewRecord([]byte("k1"), []byte("v1"))))
	testingpkg.Ok(t, out.InsertRecord(record.NewRecord([]byte("k2"), []byte("v2"))))
	pageID, err := bp.FlushToDisk(dm, 1)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, types.PageID(0), pageID)
	testingpkg.Assert(t, out.IsEmpty(), "flushed frame should be empty")

	// Scenario: flushing again appends another page.
	testingpkg.Ok(t, out.InsertRecord(record.NewRecord([]byte("k3"), []byte("v3"))))
	pageID, err = bp.FlushToDisk(dm, 1)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, types.PageID(1), pageID)

	// Scenario: loading replaces whatever the frame held.
	in := bp.Frame(0)
	testingpkg.Ok(t, in.InsertRecord(record.NewRecord([]byte("stale"), nil)))
	testingpkg.Ok(t, bp.LoadFromDisk(dm, 0, 0))
	testingpkg.Equals(t, uint32(2), in.Size())
	testingpkg.Equals(t, types.PageID(0), in.GetPageId())
	testingpkg.Equals(t, []byte("v2"), in.RecordAt(1).GetData())

	testingpkg.Equals(t, uint64(2), dm.GetNumWrites())
	testingpkg.Equals(t, uint64(1), dm.GetNumReads())
}

func TestInvalidFrameAndPage(t *testing.T) {
	dm := disk.NewDiskManagerTest()
	defer dm.ShutDown()
	bp := NewBufferPool(3, 2)

	testingpkg.Equals(t, ErrInvalidFrameID, bp.LoadFromDisk(dm, 0, 3))
	_, err := bp.FlushToDisk(dm, 7)
	testingpkg.Equals(t, ErrInvalidFrameID, err)

	// page 5 has never been written
	err = bp.LoadFromDisk(dm, 5, 0)
	testingpkg.Nok(t, err)
	testingpkg.Assert(t, !errors.Is(err, ErrInvalidFrameID), "I/O failure should not be reported as frame error")
}

func TestResetFrames(t *testing.T) {
	bp := NewBufferPool(4, 2)
	for i := FrameID(0); i < 4; i++ {
		testingpkg.Ok(t, bp.Frame(i).InsertRecord(record.NewRecord([]byte("k"), nil)))
	}
	bp.ResetFrames(2, 4)
	testingpkg.Assert(t, !bp.Frame(0).IsEmpty() && !bp.Frame(1).IsEmpty(), "frames outside the range must be kept")
	testingpkg.Assert(t, bp.Frame(2).IsEmpty() && bp.Frame(3).IsEmpty(), "frames inside the range must be cleared")
}

func TestAcquireIsExclusive(t *testing.T) {
	bp := NewBufferPool(3, 2)
	bp.Acquire()

	acquired := make(chan struct{})
	go func() {
		bp.Acquire()
		close(acquired)
		bp.Release()
	}()

	select {
	case <-acquired:
		t.Fatal("second owner acquired the pool while it was held")
	default:
	}
	bp.Release()
	<-acquired
}
