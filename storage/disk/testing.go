// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"os"

	"github.com/ryogrid/SamehadaGraceJoin/common"
)

// DiskManagerTest is the disk implementation of DiskManager for testing purposes
type DiskManagerTest struct {
	DiskManager
}

// NewDiskManagerTest returns a DiskManager instance for testing purposes
func NewDiskManagerTest() DiskManager {
	// Retrieve a temporary path.
	f, err := os.CreateTemp("", "samehada.")
	if err != nil {
		panic(err)
	}
	path := f.Name()
	f.Close()
	os.Remove(path)

	if !common.EnableOnMemStorage || common.TempSuppressOnMemStorage {
		diskManager, err := NewDiskManagerImpl(path)
		if err != nil {
			panic(err)
		}
		return &DiskManagerTest{diskManager}
	} else {
		diskManager := NewVirtualDiskManagerImpl(path)
		return &DiskManagerTest{diskManager}
	}
}

// ShutDown closes of the database file
func (d *DiskManagerTest) ShutDown() {
	d.DiskManager.ShutDown()
	if fileDM, ok := d.DiskManager.(*DiskManagerImpl); ok {
		fileDM.RemoveDBFile()
	}
}
