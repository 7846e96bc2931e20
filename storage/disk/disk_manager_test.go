package disk

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ryogrid/SamehadaGraceJoin/common"
	"github.com/ryogrid/SamehadaGraceJoin/storage/page"
	"github.com/ryogrid/SamehadaGraceJoin/storage/record"
	testingpkg "github.com/ryogrid/SamehadaGraceJoin/testing/testing_assert"
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

func testReadWritePage(t *testing.T, dm DiskManager) {
	data := make([]byte, common.PageSize)
	buffer := make([]byte, common.PageSize)

	copy(data, "A test string.")

	testingpkg.Nok(t, dm.ReadPage(0, buffer)) // nothing written yet
	testingpkg.Nok(t, dm.WritePage(0, data))  // not allocated yet

	testingpkg.Equals(t, types.PageID(0), dm.AllocatePage())
	testingpkg.Ok(t, dm.WritePage(0, data))
	testingpkg.Ok(t, dm.ReadPage(0, buffer))
	testingpkg.Equals(t, data, buffer)

	memset(buffer, 0)
	copy(data, "Another test string.")

	for i := 1; i <= 5; i++ {
		testingpkg.Equals(t, types.PageID(i), dm.AllocatePage())
	}
	testingpkg.Ok(t, dm.WritePage(5, data))
	testingpkg.Ok(t, dm.ReadPage(5, buffer))
	testingpkg.Equals(t, data, buffer)

	testingpkg.Equals(t, uint64(2), dm.GetNumWrites())
	testingpkg.Equals(t, uint64(2), dm.GetNumReads())
	testingpkg.Equals(t, int64(6*common.PageSize), dm.Size())
	testingpkg.Nok(t, dm.ReadPage(6, buffer))
}

func TestReadWritePageOnMemory(t *testing.T) {
	dm := NewVirtualDiskManagerImpl("test.db")
	defer dm.ShutDown()
	testReadWritePage(t, dm)
}

func TestReadWritePageOnFile(t *testing.T) {
	common.TempSuppressOnMemStorage = true
	dm := NewDiskManagerTest()
	common.TempSuppressOnMemStorage = false

	fileDM, isFile := dm.(*DiskManagerTest).DiskManager.(*DiskManagerImpl)
	testingpkg.Assert(t, isFile, "file backed disk manager is expected")
	testReadWritePage(t, dm)

	// db file is removed on shutdown even after the flag is switched back
	dm.ShutDown()
	_, err := os.Stat(fileDM.fileName)
	testingpkg.Assert(t, os.IsNotExist(err), "db file %s should be removed, stat err = %v", fileDM.fileName, err)
}

func TestLoadRelation(t *testing.T) {
	dm := NewDiskManagerTest()
	defer dm.ShutDown()

	records := make([]*record.Record, 0)
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		records = append(records, record.NewRecord([]byte(k), []byte("v"+k)))
	}

	rel, err := LoadRelation(dm, records, 2)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, NewRelation(0, 3), rel)
	testingpkg.Equals(t, uint32(3), rel.NumPages())

	// last page is partially filled
	buf := make([]byte, common.PageSize)
	testingpkg.Ok(t, dm.ReadPage(2, buf))
	pg := page.NewEmpty(2)
	testingpkg.Ok(t, pg.DeserializeFrom(buf))
	testingpkg.Equals(t, uint32(1), pg.Size())
	testingpkg.Equals(t, []byte("e"), pg.RecordAt(0).GetKey())

	rel2, err := LoadRelation(dm, records[:2], 2)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, NewRelation(3, 4), rel2)

	empty, err := LoadRelation(dm, nil, 2)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, uint32(0), empty.NumPages())
	testingpkg.Assert(t, empty.IsValid(), "empty relation should be a valid range")
}

func TestLoadRelationRejectsOversizedRecord(t *testing.T) {
	dm := NewDiskManagerTest()
	defer dm.ShutDown()

	records := []*record.Record{
		record.NewRecord([]byte("a"), []byte("small")),
		record.NewRecord([]byte("b"), []byte(strings.Repeat("x", 2500))),
	}
	_, err := LoadRelation(dm, records, 4)
	testingpkg.Assert(t, errors.Is(err, page.ErrRecordTooLarge), "expected ErrRecordTooLarge, got %v", err)
	testingpkg.Equals(t, uint64(0), dm.GetNumWrites())
}

func TestRelationValidity(t *testing.T) {
	testingpkg.Assert(t, NewRelation(3, 3).IsValid(), "[3,3) is valid")
	testingpkg.Assert(t, !NewRelation(4, 3).IsValid(), "[4,3) is invalid")
	testingpkg.Equals(t, uint32(0), NewRelation(4, 3).NumPages())
	testingpkg.Equals(t, "[1, 5)", NewRelation(1, 5).String())
}

func memset(buffer []byte, value int) {
	for i := range buffer {
		buffer[i] = byte(value)
	}
}
