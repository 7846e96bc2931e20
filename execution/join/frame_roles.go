package join

import "github.com/ryogrid/SamehadaGraceJoin/storage/buffer"

// frame roles. both phases use InputFrame for streaming disk pages.
const (
	InputFrame buffer.FrameID = 0
	// partition phase: frames [PartitionFrameBase, B) buffer one partition each
	PartitionFrameBase buffer.FrameID = 1
	// probe phase: matched pairs are accumulated here
	OutputFrame buffer.FrameID = 1
	// probe phase: frames [HashFrameBase, B) form the in-memory hash table
	HashFrameBase buffer.FrameID = 2
)

func numPartitions(frameNum uint32) uint32 { return frameNum - uint32(PartitionFrameBase) }

func numHashFrames(frameNum uint32) uint32 { return frameNum - uint32(HashFrameBase) }

func partitionFrame(partitionIdx uint32) buffer.FrameID {
	return PartitionFrameBase + buffer.FrameID(partitionIdx)
}

func hashFrame(hashIdx uint32) buffer.FrameID {
	return HashFrameBase + buffer.FrameID(hashIdx)
}
