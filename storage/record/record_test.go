package record

import (
	"testing"

	testingpkg "github.com/ryogrid/SamehadaGraceJoin/testing/testing_assert"
)

func TestRecordSerialize(t *testing.T) {
	rec := NewRecord([]byte("key-42"), []byte("payload of forty two"))
	testingpkg.Equals(t, uint32(4+6+4+20), rec.Size())

	buf := rec.Serialize()
	testingpkg.Equals(t, int(rec.Size()), len(buf))

	// trailing bytes belong to next record and must not be consumed
	buf = append(buf, 0xde, 0xad)
	decoded, consumed, err := NewRecordFromBytes(buf)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, rec.Size(), consumed)
	testingpkg.Equals(t, []byte("key-42"), decoded.GetKey())
	testingpkg.Equals(t, []byte("payload of forty two"), decoded.GetData())
}

func TestRecordFromTruncatedBytes(t *testing.T) {
	buf := NewRecord([]byte("abcdef"), []byte("xyz")).Serialize()

	_, _, err := NewRecordFromBytes(buf[:3])
	testingpkg.Equals(t, ErrCorruptedRecord, err)
	_, _, err = NewRecordFromBytes(buf[:len(buf)-1])
	testingpkg.Equals(t, ErrCorruptedRecord, err)
}

func TestRecordEqualityIsOverKey(t *testing.T) {
	a := NewRecord([]byte("k1"), []byte("left"))
	b := NewRecord([]byte("k1"), []byte("right"))
	c := NewRecord([]byte("k2"), []byte("left"))

	testingpkg.Assert(t, a.Equals(b), "records with same key should be equal")
	testingpkg.Assert(t, !a.Equals(c), "records with different key should not be equal")
	testingpkg.Equals(t, a.PartitionHash(), b.PartitionHash())
	testingpkg.Equals(t, a.ProbeHash(), b.ProbeHash())
}

func TestNewRecordCopiesInput(t *testing.T) {
	key := []byte("mutable")
	rec := NewRecord(key, nil)
	key[0] = 'M'
	testingpkg.Equals(t, []byte("mutable"), rec.GetKey())
	testingpkg.Equals(t, 0, len(rec.GetData()))
}
