// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

const EnableDebug bool = false //true

// use on memory virtual storage or not
const EnableOnMemStorage = true

// when this is true, virtual storage use is suppressed
// for test case which can't work with virtual storage
var TempSuppressOnMemStorage = false

const (
	// size of a data page in byte
	PageSize = 4096
	// number of buffer frames a join gets when caller does not specify it
	DefaultFrameNum = 16
	// number of entries (records or matched pairs) held by one page
	DefaultRecordsPerPage = 32
	// frames needed by partition phase: one input frame and at least two partition frames
	MinPartitionFrameNum = 3
	// frames needed by probe phase: input, output and at least two hash frames
	MinProbeFrameNum = 4
	// logging kinds enabled by ShPrintf
	LogLevelSetting = INFO | WARN | ERROR | FATAL //| DEBUG_INFO | DEBUG_INFO_DETAIL
)
