package command

import (
	"github.com/armandparser/redicache/internal/resp"
	"github.com/armandparser/redicache/internal/store"
)

func dispatchSelect(st *store.Store, conn *ConnState, cmd Command) resp.Frame {
	if cmd.NumericError {
		return resp.Error("ERR invalid DB index")
	}
	if cmd.DBIndex < 0 || cmd.DBIndex >= st.NumDatabases() {
		return resp.Error("ERR invalid DB index")
	}
	conn.DB = cmd.DBIndex
	return resp.EncodeOK()
}

func dispatchFlushDB(st *store.Store, conn *ConnState) resp.Frame {
	if err := st.FlushDB(conn.DB); err != nil {
		return resp.Error("ERR invalid DB index")
	}
	return resp.EncodeOK()
}

func dispatchKeys(st *store.Store, conn *ConnState, cmd Command, now int64) resp.Frame {
	db, err := st.Database(conn.DB)
	if err != nil {
		return resp.Error("ERR invalid DB index")
	}
	keys := db.Keys(cmd.Pattern, now)
	items := make([]resp.Frame, len(keys))
	for i, k := range keys {
		items[i] = resp.BulkString(k)
	}
	return resp.Array(items)
}

func dispatchExpire(st *store.Store, conn *ConnState, cmd Command, now int64) resp.Frame {
	if cmd.NumericError {
		return notInteger()
	}
	db, err := st.Database(conn.DB)
	if err != nil {
		return resp.Error("ERR invalid DB index")
	}
	deadline := now + cmd.Seconds
	if db.Expire(cmd.Key, deadline, now) {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

func dispatchTTL(st *store.Store, conn *ConnState, cmd Command, now int64) resp.Frame {
	db, err := st.Database(conn.DB)
	if err != nil {
		return resp.Error("ERR invalid DB index")
	}
	ttl, exists, hasExpiry := db.TTLSeconds(cmd.Key, now)
	if !exists {
		return resp.Integer(-2)
	}
	if !hasExpiry {
		return resp.Integer(-1)
	}
	return resp.Integer(ttl)
}

func dispatchType(st *store.Store, conn *ConnState, cmd Command, now int64) resp.Frame {
	db, err := st.Database(conn.DB)
	if err != nil {
		return resp.Error("ERR invalid DB index")
	}
	return resp.SimpleString(db.TypeOf(cmd.Key, now).String())
}

func dispatchDel(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var count int64
	for _, k := range cmd.Keys {
		if db.Delete(k, now) {
			count++
		}
	}
	return resp.Integer(count)
}

func dispatchExists(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var count int64
	for _, k := range cmd.Keys {
		if db.Exists(k, now) {
			count++
		}
	}
	return resp.Integer(count)
}
