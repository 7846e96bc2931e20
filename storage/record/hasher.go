package record

import "github.com/ryogrid/SamehadaGraceJoin/container/hash"

// Hasher supplies the two independent hash functions used by grace hash join.
// Records whose keys are equal must get equal values from both functions.
type Hasher interface {
	PartitionHash(r *Record) uint32
	ProbeHash(r *Record) uint32
}

type keyHasher struct{}

// partition hash is murmur3 and probe hash is gpos byte hash, so a bucket
// does not collapse into a single hash frame on probe phase
func (keyHasher) PartitionHash(r *Record) uint32 {
	return hash.GenHashMurMur(r.key)
}

func (keyHasher) ProbeHash(r *Record) uint32 {
	return hash.HashBytes(r.key, uint32(len(r.key)))
}

var DefaultHasher Hasher = keyHasher{}
