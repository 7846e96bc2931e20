package record

import (
	"bytes"
	"fmt"

	"github.com/ryogrid/SamehadaGraceJoin/errors"
	"github.com/ryogrid/SamehadaGraceJoin/types"
)

const ErrCorruptedRecord = errors.Error("record data is corrupted.")

// length prefix of key and data
const sizeOfLength = 4

/**
 * Record format:
 * -------------------------------------------------
 * | KeyLen (4) | Key | DataLen (4) | Data         |
 * -------------------------------------------------
 * Equality and both hash values are defined over Key only.
 */
type Record struct {
	key  []byte
	data []byte
}

func NewRecord(key []byte, data []byte) *Record {
	k := make([]byte, len(key))
	copy(k, key)
	d := make([]byte, len(data))
	copy(d, data)
	return &Record{k, d}
}

func (r *Record) GetKey() []byte  { return r.key }
func (r *Record) GetData() []byte { return r.data }

// PartitionHash is used for routing a record to a bucket
func (r *Record) PartitionHash() uint32 { return DefaultHasher.PartitionHash(r) }

// ProbeHash is used for routing a record to a hash frame on probe phase
func (r *Record) ProbeHash() uint32 { return DefaultHasher.ProbeHash(r) }

// Equals compares join keys
func (r *Record) Equals(rhs *Record) bool {
	if r == nil || rhs == nil {
		return r == rhs
	}
	return bytes.Equal(r.key, rhs.key)
}

// Size returns serialized size in bytes
func (r *Record) Size() uint32 {
	return uint32(sizeOfLength + len(r.key) + sizeOfLength + len(r.data))
}

func (r *Record) Serialize() []byte {
	buf := make([]byte, 0, r.Size())
	buf = append(buf, types.UInt32(len(r.key)).Serialize()...)
	buf = append(buf, r.key...)
	buf = append(buf, types.UInt32(len(r.data)).Serialize()...)
	buf = append(buf, r.data...)
	return buf
}

// NewRecordFromBytes deserializes a record placed at head of data
// and returns it with the number of bytes consumed
func NewRecordFromBytes(data []byte) (*Record, uint32, error) {
	offset := uint32(0)
	key, n, err := readField(data[offset:])
	if err != nil {
		return nil, 0, err
	}
	offset += n
	payload, n, err := readField(data[offset:])
	if err != nil {
		return nil, 0, err
	}
	offset += n
	return &Record{key, payload}, offset, nil
}

func readField(data []byte) ([]byte, uint32, error) {
	if len(data) < sizeOfLength {
		return nil, 0, ErrCorruptedRecord
	}
	length := uint32(types.NewUInt32FromBytes(data[:sizeOfLength]))
	if uint64(len(data)) < uint64(sizeOfLength)+uint64(length) {
		return nil, 0, ErrCorruptedRecord
	}
	field := make([]byte, length)
	copy(field, data[sizeOfLength:sizeOfLength+length])
	return field, sizeOfLength + length, nil
}

func (r *Record) String() string {
	return fmt.Sprintf("(%s, %s)", r.key, r.data)
}
