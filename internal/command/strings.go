package command

import (
	"github.com/armandparser/redicache/internal/resp"
	"github.com/armandparser/redicache/internal/store"
)

func dispatchString(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	switch cmd.Kind {
	case KindGet:
		return doGet(db, cmd, now)
	case KindSet:
		return doSet(db, cmd, now)
	case KindSetNX:
		ok := db.SetString(cmd.Key, cmd.Value, now, store.SetOptions{NX: true})
		if ok {
			return resp.Integer(1)
		}
		return resp.Integer(0)
	case KindSetEX:
		return doSetEX(db, cmd, now)
	case KindGetSet:
		old, hadOld, wt := db.GetSet(cmd.Key, cmd.Value, now)
		if wt {
			return wrongType()
		}
		if !hadOld {
			return resp.NullBulk()
		}
		return resp.Bulk(old)
	case KindIncr:
		return doIncrBy(db, cmd.Key, 1, now)
	case KindDecr:
		return doIncrBy(db, cmd.Key, -1, now)
	case KindIncrBy:
		if cmd.NumericError {
			return notInteger()
		}
		return doIncrBy(db, cmd.Key, cmd.Delta, now)
	case KindDecrBy:
		if cmd.NumericError {
			return notInteger()
		}
		return doIncrBy(db, cmd.Key, -cmd.Delta, now)
	case KindAppend:
		newLen, wt := db.Append(cmd.Key, cmd.Value, now)
		if wt {
			return wrongType()
		}
		return resp.Integer(int64(newLen))
	case KindStrlen:
		return doStrlen(db, cmd, now)
	case KindMGet:
		return doMGet(db, cmd, now)
	case KindMSet:
		return doMSet(db, cmd, now)
	default:
		return resp.Error(ErrUnknownCommand.Error())
	}
}

func doGet(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var reply resp.Frame
	existed, wt := db.View(cmd.Key, now, store.KindString, func(v *store.Value) {
		reply = resp.Bulk(v.Str.Get())
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.NullBulk()
	}
	return reply
}

func doSet(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	if cmd.NumericError {
		return notInteger()
	}
	if cmd.SetMods.NX && cmd.SetMods.XX {
		return syntaxError()
	}
	opts := store.SetOptions{
		NX:      cmd.SetMods.NX,
		XX:      cmd.SetMods.XX,
		KeepTTL: cmd.SetMods.KeepTTL,
	}
	if cmd.SetMods.HasExpire {
		opts.ExpiresAt = now + cmd.SetMods.ExpireSeconds
	}
	if db.SetString(cmd.Key, cmd.Value, now, opts) {
		return resp.EncodeOK()
	}
	return resp.NullBulk()
}

func doSetEX(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	if cmd.NumericError {
		return notInteger()
	}
	if cmd.Seconds <= 0 {
		return resp.Error("ERR invalid expire time in 'setex' command")
	}
	db.SetString(cmd.Key, cmd.Value, now, store.SetOptions{ExpiresAt: now + cmd.Seconds})
	return resp.EncodeOK()
}

func doIncrBy(db *store.Keyspace, key string, delta int64, now int64) resp.Frame {
	newVal, err, wt := db.IncrBy(key, delta, now)
	if wt {
		return wrongType()
	}
	if err != nil {
		return notInteger()
	}
	return resp.Integer(newVal)
}

func doStrlen(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var length int
	existed, wt := db.View(cmd.Key, now, store.KindString, func(v *store.Value) {
		length = v.Str.Len()
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.Integer(0)
	}
	return resp.Integer(int64(length))
}

func doMGet(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	items := make([]resp.Frame, len(cmd.Keys))
	for i, k := range cmd.Keys {
		v, ok := db.Get(k, now)
		if !ok || v.Kind != store.KindString {
			items[i] = resp.NullBulk()
			continue
		}
		items[i] = resp.Bulk(v.Str.Get())
	}
	return resp.Array(items)
}

func doMSet(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	for _, pair := range cmd.MSetPairs {
		db.SetString(pair.Field, pair.Value, now, store.SetOptions{})
	}
	return resp.EncodeOK()
}
