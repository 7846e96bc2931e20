package testing_rel_gen

import (
	"fmt"
	"math/rand"

	"github.com/ryogrid/SamehadaGraceJoin/storage/disk"
	"github.com/ryogrid/SamehadaGraceJoin/storage/record"
)

const DistSerial int32 = 0
const DistUniform int32 = 1

type RelationInsertMeta struct {
	/**
	 * Name of the relation. used as prefix of record payload
	 */
	Name_ string
	/**
	 * Number of records
	 */
	Num_records_ uint32
	/**
	 * Distribution of keys
	 */
	Dist_ int32
	/**
	 * keys are drawn from [0, Key_max_) on uniform distribution
	 */
	Key_max_ int32
	/**
	 * Counter to generate serial keys
	 */
	Serial_counter_ int32
	/**
	 * seed of uniform distribution
	 */
	Seed_ int64
}

func KeyOf(n int32) []byte {
	return []byte(fmt.Sprintf("key-%05d", n))
}

func GenRecords(meta *RelationInsertMeta) []*record.Record {
	records := make([]*record.Record, 0, meta.Num_records_)
	rnd := rand.New(rand.NewSource(meta.Seed_))
	for i := uint32(0); i < meta.Num_records_; i++ {
		var keyNum int32
		if meta.Dist_ == DistSerial {
			keyNum = meta.Serial_counter_
			meta.Serial_counter_ += 1
		} else {
			keyNum = rnd.Int31n(meta.Key_max_)
		}
		payload := []byte(fmt.Sprintf("%s-%d", meta.Name_, i))
		records = append(records, record.NewRecord(KeyOf(keyNum), payload))
	}
	return records
}

// FillRelation writes generated records on dm and returns them with their page range
func FillRelation(dm disk.DiskManager, meta *RelationInsertMeta, recordsPerPage uint32) ([]*record.Record, disk.Relation) {
	records := GenRecords(meta)
	rel, err := disk.LoadRelation(dm, records, recordsPerPage)
	if err != nil {
		fmt.Printf("LoadRelation failed on FillRelation err = %v", err)
		panic("LoadRelation failed on FillRelation!")
	}
	return records, rel
}
