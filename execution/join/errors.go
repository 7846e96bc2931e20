package join

import "github.com/ryogrid/SamehadaGraceJoin/errors"

const ErrPoolTooSmall = errors.Error("buffer pool does not have enough frames.")
const ErrInvalidRange = errors.Error("relation range end is smaller than start.")
const ErrHashCapacityExceeded = errors.Error("build side does not fit in hash frames.")
const ErrBucketPageShared = errors.Error("page is referenced by more than one bucket side.")
const ErrNotRecordPage = errors.Error("input page does not hold records.")
const ErrJoinAlreadyExecuted = errors.Error("join has already been executed.")
