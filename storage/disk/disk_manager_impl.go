// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ncw/directio"
	"github.com/ryogrid/SamehadaGraceJoin/common"
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

// DiskManagerImpl is the disk implementation of DiskManager
type DiskManagerImpl struct {
	db          *os.File
	fileName    string
	nextPageID  types.PageID
	numWrites   uint64
	numReads    uint64
	size        int64
	dbFileMutex *sync.Mutex
}

// NewDiskManagerImpl returns a DiskManager instance backed by a newly truncated file
func NewDiskManagerImpl(dbFilename string) (DiskManager, error) {
	file, err := os.OpenFile(dbFilename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return nil, fmt.Errorf("can't open db file: %w", err)
	}

	return &DiskManagerImpl{file, dbFilename, types.PageID(0), 0, 0, 0, new(sync.Mutex)}, nil
}

// ShutDown closes of the database file
func (d *DiskManagerImpl) ShutDown() {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	err := d.db.Close()
	if err != nil {
		common.ShPrintf(common.ERROR, "close of db file failed: %v\n", err)
	}
}

// Write a page to the database file
func (d *DiskManagerImpl) WritePage(pageId types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	if !pageId.IsValid() || pageId >= d.nextPageID {
		return errors.New("write to unallocated page")
	}

	// pages are written as whole aligned blocks
	block := directio.AlignedBlock(common.PageSize)
	copy(block, pageData)

	offset := int64(pageId) * int64(common.PageSize)
	bytesWritten, errWrite := d.db.WriteAt(block, offset)
	if errWrite != nil {
		return errWrite
	}
	if bytesWritten != common.PageSize {
		return errors.New("bytes written not equals page size")
	}
	d.numWrites++

	if offset+int64(bytesWritten) > d.size {
		d.size = offset + int64(bytesWritten)
	}

	return nil
}

// Read a page from the database file
func (d *DiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pageID) * int64(common.PageSize)
	if !pageID.IsValid() || offset+int64(len(pageData)) > d.size {
		return errors.New("I/O error past end of file")
	}

	block := directio.AlignedBlock(common.PageSize)
	bytesRead, err := d.db.ReadAt(block, offset)
	if err != nil && !(err == io.EOF && bytesRead == common.PageSize) {
		return errors.New("I/O error while reading")
	}
	copy(pageData, block)
	d.numReads++
	return nil
}

// AllocatePage allocates a new page
func (d *DiskManagerImpl) AllocatePage() types.PageID {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	ret := d.nextPageID
	d.nextPageID++
	return ret
}

// GetNumWrites returns the number of disk writes
func (d *DiskManagerImpl) GetNumWrites() uint64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.numWrites
}

// GetNumReads returns the number of disk reads
func (d *DiskManagerImpl) GetNumReads() uint64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.numReads
}

// Size returns the size of the file in disk
func (d *DiskManagerImpl) Size() int64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.size
}

// ATTENTION: this method can be call after calling of Shutdown method
func (d *DiskManagerImpl) RemoveDBFile() {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	if err := os.Remove(d.fileName); err != nil {
		common.ShPrintf(common.ERROR, "file remove failed: %v\n", err)
	}
}
