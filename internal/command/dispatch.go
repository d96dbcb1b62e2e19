package command

import (
	"github.com/armandparser/redicache/internal/resp"
	"github.com/armandparser/redicache/internal/store"
)

const wrongTypeMsg = "WRONGTYPE Operation against a key holding the wrong kind of value"
const notIntegerMsg = "ERR value is not an integer or out of range"
const notFloatMsg = "ERR value is not a valid float"

func wrongType() resp.Frame   { return resp.Error(wrongTypeMsg) }
func notInteger() resp.Frame  { return resp.Error(notIntegerMsg) }
func notFloat() resp.Frame    { return resp.Error(notFloatMsg) }
func syntaxError() resp.Frame { return resp.Error("ERR syntax error") }

// Execute parses frame and runs it against db on behalf of conn, returning
// the reply frame. now is a single Unix-seconds snapshot shared by every
// keyspace access this command makes, so "now" never moves mid-dispatch.
func Execute(st *store.Store, conn *ConnState, frame resp.Frame, now int64) resp.Frame {
	cmd, err := Parse(frame)
	if err != nil {
		return resp.Error(err.Error())
	}
	return Dispatch(st, conn, cmd, now)
}

// Dispatch runs a parsed Command against the connection's selected
// database. Replacing the teacher's single processCommand/
// processIndividualCommand switch (duplicated for pipelining), this one
// switch serves both single and pipelined requests: pipelining is handled
// once, at the connection-handler framing level, by calling Dispatch once
// per decoded frame.
func Dispatch(st *store.Store, conn *ConnState, cmd Command, now int64) resp.Frame {
	switch cmd.Kind {
	case KindPing:
		return resp.SimpleString("PONG")
	case KindQuit:
		return resp.EncodeOK()
	case KindEcho:
		return resp.Bulk(cmd.Value)
	case KindAuth:
		return resp.EncodeOK()
	case KindSelect:
		return dispatchSelect(st, conn, cmd)
	case KindInfo:
		return resp.Bulk([]byte(infoText))
	case KindFlushAll:
		st.FlushAll()
		return resp.EncodeOK()
	case KindFlushDB:
		return dispatchFlushDB(st, conn)
	case KindKeys:
		return dispatchKeys(st, conn, cmd, now)
	case KindExpire:
		return dispatchExpire(st, conn, cmd, now)
	case KindTTL:
		return dispatchTTL(st, conn, cmd, now)
	case KindType:
		return dispatchType(st, conn, cmd, now)
	}

	db, err := st.Database(conn.DB)
	if err != nil {
		return resp.Error("ERR invalid DB index")
	}

	switch cmd.Kind {
	case KindDel:
		return dispatchDel(db, cmd, now)
	case KindExists:
		return dispatchExists(db, cmd, now)
	case KindGet, KindSet, KindSetNX, KindSetEX, KindGetSet, KindIncr, KindDecr,
		KindIncrBy, KindDecrBy, KindAppend, KindStrlen, KindMGet, KindMSet:
		return dispatchString(db, cmd, now)
	case KindHSet, KindHGet, KindHDel, KindHGetAll, KindHKeys, KindHVals,
		KindHLen, KindHExists, KindHIncrBy, KindHIncrByFloat:
		return dispatchHash(db, cmd, now)
	case KindLPush, KindRPush, KindLPop, KindRPop, KindLLen, KindLIndex,
		KindLRange, KindLTrim, KindLSet, KindLInsert:
		return dispatchList(db, cmd, now)
	case KindSAdd, KindSRem, KindSMembers, KindSCard, KindSIsMember,
		KindSInter, KindSUnion, KindSDiff:
		return dispatchSet(db, cmd, now)
	case KindZAdd, KindZRem, KindZRange, KindZRangeByScore, KindZCard,
		KindZScore, KindZRank:
		return dispatchZSet(db, cmd, now)
	default:
		return resp.Error(ErrUnknownCommand.Error())
	}
}

// infoText answers INFO with a fixed version string (spec §9 open
// question: richer sections are not required).
const infoText = "# Server\r\nredicache_version:1.0.0\r\n"
