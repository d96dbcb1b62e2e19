package command

import (
	"github.com/armandparser/redicache/internal/resp"
	"github.com/armandparser/redicache/internal/store"
)

func dispatchHash(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	switch cmd.Kind {
	case KindHSet:
		return doHSet(db, cmd, now)
	case KindHGet:
		return doHGet(db, cmd, now)
	case KindHDel:
		return doHDel(db, cmd, now)
	case KindHGetAll:
		return doHGetAll(db, cmd, now)
	case KindHKeys:
		return doHKeys(db, cmd, now)
	case KindHVals:
		return doHVals(db, cmd, now)
	case KindHLen:
		return doHLen(db, cmd, now)
	case KindHExists:
		return doHExists(db, cmd, now)
	case KindHIncrBy:
		return doHIncrBy(db, cmd, now)
	case KindHIncrByFloat:
		return doHIncrByFloat(db, cmd, now)
	default:
		return resp.Error(ErrUnknownCommand.Error())
	}
}

func doHSet(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var isNew bool
	wt := db.MutateOrCreate(cmd.Key, now, store.KindHash,
		func() *store.Value { return store.NewHashValue(store.NewHash()) },
		func(v *store.Value) { isNew = v.Hash.Set(cmd.Field, cmd.Value) },
	)
	if wt {
		return wrongType()
	}
	if isNew {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

func doHGet(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var reply resp.Frame
	var found bool
	existed, wt := db.View(cmd.Key, now, store.KindHash, func(v *store.Value) {
		val, ok := v.Hash.Get(cmd.Field)
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

func doHDel(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var removed int64
	_, wt := db.MutateExisting(cmd.Key, now, store.KindHash, func(v *store.Value) (empty bool) {
		for _, field := range cmd.Fields {
			if v.Hash.Del(field) {
				removed++
			}
		}
		return v.Hash.Len() == 0
	})
	if wt {
		return wrongType()
	}
	return resp.Integer(removed)
}

func doHGetAll(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var items []resp.Frame
	existed, wt := db.View(cmd.Key, now, store.KindHash, func(v *store.Value) {
		for field, val := range v.Hash.GetAll() {
			items = append(items, resp.BulkString(field), resp.Bulk(val))
		}
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.Array([]resp.Frame{})
	}
	return resp.Array(items)
}

func doHKeys(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var keys []string
	existed, wt := db.View(cmd.Key, now, store.KindHash, func(v *store.Value) {
		keys = v.Hash.Keys()
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.Array([]resp.Frame{})
	}
	items := make([]resp.Frame, len(keys))
	for i, k := range keys {
		items[i] = resp.BulkString(k)
	}
	return resp.Array(items)
}

func doHVals(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var vals [][]byte
	existed, wt := db.View(cmd.Key, now, store.KindHash, func(v *store.Value) {
		vals = v.Hash.Values()
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.Array([]resp.Frame{})
	}
	items := make([]resp.Frame, len(vals))
	for i, v := range vals {
		items[i] = resp.Bulk(v)
	}
	return resp.Array(items)
}

func doHLen(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var length int
	existed, wt := db.View(cmd.Key, now, store.KindHash, func(v *store.Value) {
		length = v.Hash.Len()
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.Integer(0)
	}
	return resp.Integer(int64(length))
}

func doHExists(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var exists bool
	existed, wt := db.View(cmd.Key, now, store.KindHash, func(v *store.Value) {
		exists = v.Hash.Exists(cmd.Field)
	})
	if wt {
		return wrongType()
	}
	if !existed || !exists {
		return resp.Integer(0)
	}
	return resp.Integer(1)
}

func doHIncrBy(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	if cmd.NumericError {
		return notInteger()
	}
	var newVal int64
	var incrErr error
	wt := db.MutateOrCreate(cmd.Key, now, store.KindHash,
		func() *store.Value { return store.NewHashValue(store.NewHash()) },
		func(v *store.Value) { newVal, incrErr = v.Hash.IncrBy(cmd.Field, cmd.Delta) },
	)
	if wt {
		return wrongType()
	}
	if incrErr != nil {
		return notInteger()
	}
	return resp.Integer(newVal)
}

func doHIncrByFloat(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	if cmd.FloatError {
		return notFloat()
	}
	var newVal float64
	var incrErr error
	wt := db.MutateOrCreate(cmd.Key, now, store.KindHash,
		func() *store.Value { return store.NewHashValue(store.NewHash()) },
		func(v *store.Value) { newVal, incrErr = v.Hash.IncrByFloat(cmd.Field, cmd.DeltaFloat) },
	)
	if wt {
		return wrongType()
	}
	if incrErr != nil {
		return notFloat()
	}
	return resp.Bulk([]byte(store.FormatFloat(newVal)))
}
