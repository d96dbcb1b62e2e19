package command

import (
	"github.com/armandparser/redicache/internal/resp"
	"github.com/armandparser/redicache/internal/store"
)

// normalizeRange converts spec §4.5's LRANGE/LTRIM/ZRANGE negative-index
// wrap and clamping rule into a concrete [start, stop] pair over a
// container of the given length. ok is false when the resulting range is
// empty.
func normalizeRange(length int, start, stop int64) (int, int, bool) {
	n := int64(length)
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n || n == 0 {
		return 0, 0, false
	}
	return int(start), int(stop), true
}

func dispatchList(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	switch cmd.Kind {
	case KindLPush:
		return doListPush(db, cmd, now, true)
	case KindRPush:
		return doListPush(db, cmd, now, false)
	case KindLPop:
		return doListPop(db, cmd, now, true)
	case KindRPop:
		return doListPop(db, cmd, now, false)
	case KindLLen:
		return doLLen(db, cmd, now)
	case KindLIndex:
		return doLIndex(db, cmd, now)
	case KindLRange:
		return doLRange(db, cmd, now)
	case KindLTrim:
		return doLTrim(db, cmd, now)
	case KindLSet:
		return doLSet(db, cmd, now)
	case KindLInsert:
		return doLInsert(db, cmd, now)
	default:
		return resp.Error(ErrUnknownCommand.Error())
	}
}

func doListPush(db *store.Keyspace, cmd Command, now int64, left bool) resp.Frame {
	var newLen int
	wt := db.MutateOrCreate(cmd.Key, now, store.KindList,
		func() *store.Value { return store.NewListValue(store.NewList()) },
		func(v *store.Value) {
			for _, val := range cmd.Values {
				if left {
					newLen = v.List.LeftPush(val)
				} else {
					newLen = v.List.RightPush(val)
				}
			}
		},
	)
	if wt {
		return wrongType()
	}
	return resp.Integer(int64(newLen))
}

func doListPop(db *store.Keyspace, cmd Command, now int64, left bool) resp.Frame {
	var value []byte
	var popped bool
	existed, wt := db.MutateExisting(cmd.Key, now, store.KindList, func(v *store.Value) (empty bool) {
		if left {
			value, popped = v.List.LeftPop()
		} else {
			value, popped = v.List.RightPop()
		}
		return v.List.Length() == 0
	})
	if wt {
		return wrongType()
	}
	if !existed || !popped {
		return resp.NullBulk()
	}
	return resp.Bulk(value)
}

func doLLen(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var length int
	existed, wt := db.View(cmd.Key, now, store.KindList, func(v *store.Value) {
		length = v.List.Length()
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.Integer(0)
	}
	return resp.Integer(int64(length))
}

func doLIndex(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	if cmd.NumericError {
		return notInteger()
	}
	var reply resp.Frame
	var found bool
	existed, wt := db.View(cmd.Key, now, store.KindList, func(v *store.Value) {
		idx := cmd.Index
		if idx < 0 {
			idx += int64(v.List.Length())
		}
		val, ok := v.List.Index(int(idx))
		found = ok
		if ok {
			reply = resp.Bulk(val)
		}
	})
	if wt {
		return wrongType()
	}
	if !existed || !found {
		return resp.NullBulk()
	}
	return reply
}

func doLRange(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	if cmd.NumericError {
		return notInteger()
	}
	var items []resp.Frame
	existed, wt := db.View(cmd.Key, now, store.KindList, func(v *store.Value) {
		start, stop, ok := normalizeRange(v.List.Length(), cmd.Start, cmd.Stop)
		if !ok {
			items = []resp.Frame{}
			return
		}
		for _, val := range v.List.Range(start, stop) {
			items = append(items, resp.Bulk(val))
		}
	})
	if wt {
		return wrongType()
	}
	if !existed || items == nil {
		return resp.Array([]resp.Frame{})
	}
	return resp.Array(items)
}

func doLTrim(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	if cmd.NumericError {
		return notInteger()
	}
	_, wt := db.MutateExisting(cmd.Key, now, store.KindList, func(v *store.Value) (empty bool) {
		start, stop, ok := normalizeRange(v.List.Length(), cmd.Start, cmd.Stop)
		if !ok {
			v.List.Trim(1, 0) // empty range clears the list
		} else {
			v.List.Trim(start, stop)
		}
		return v.List.Length() == 0
	})
	if wt {
		return wrongType()
	}
	return resp.EncodeOK()
}

func doLSet(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	if cmd.NumericError {
		return notInteger()
	}
	var ok bool
	existed, wt := db.MutateExisting(cmd.Key, now, store.KindList, func(v *store.Value) (empty bool) {
		idx := cmd.Index
		if idx < 0 {
			idx += int64(v.List.Length())
		}
		ok = v.List.Set(int(idx), cmd.Value)
		return false
	})
	if wt {
		return wrongType()
	}
	if !existed || !ok {
		return resp.Error("ERR index out of range")
	}
	return resp.EncodeOK()
}

func doLInsert(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var newLen int
	existed, wt := db.MutateExisting(cmd.Key, now, store.KindList, func(v *store.Value) (empty bool) {
		if cmd.Before {
			newLen = v.List.InsertBefore(cmd.Pivot, cmd.Value)
		} else {
			newLen = v.List.InsertAfter(cmd.Pivot, cmd.Value)
		}
		return false
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.Integer(0)
	}
	return resp.Integer(int64(newLen))
}
