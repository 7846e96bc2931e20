package disk

import (
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

/**
 * DiskManager takes care of the allocation of pages within the simulated device. It performs the reading and
 * writing of fixed size pages. Pages are allocated with consecutive ids and never reused.
 */
type DiskManager interface {
	ReadPage(types.PageID, []byte) error
	WritePage(types.PageID, []byte) error
	AllocatePage() types.PageID
	GetNumWrites() uint64
	GetNumReads() uint64
	ShutDown()
	Size() int64
}
