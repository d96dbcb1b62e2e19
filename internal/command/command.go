// Package command implements the command algebra and dispatcher: parsing
// a decoded RESP request into a typed Command, and executing it against a
// store.Store to produce a reply frame.
package command

// Kind names one of the ~60 supported commands. Command is a tagged union
// in the same spirit as store.Value (a Kind discriminator plus the
// fields that variant actually uses) rather than the teacher's single
// Message{Command uint8, Key, Value []byte, TTL uint32} reused across
// unrelated shapes by byte-offset convention — the command set here is
// an order of magnitude larger, so the per-command intent is named
// instead of overloaded onto three generic fields.
type Kind int

const (
	KindPing Kind = iota
	KindQuit
	KindEcho
	KindAuth
	KindSelect
	KindInfo

	KindGet
	KindSet
	KindSetNX
	KindSetEX
	KindGetSet
	KindDel
	KindExists
	KindIncr
	KindDecr
	KindIncrBy
	KindDecrBy
	KindAppend
	KindStrlen
	KindMGet
	KindMSet

	KindHSet
	KindHGet
	KindHDel
	KindHGetAll
	KindHKeys
	KindHVals
	KindHLen
	KindHExists
	KindHIncrBy
	KindHIncrByFloat

	KindLPush
	KindRPush
	KindLPop
	KindRPop
	KindLLen
	KindLIndex
	KindLRange
	KindLTrim
	KindLSet
	KindLInsert

	KindSAdd
	KindSRem
	KindSMembers
	KindSCard
	KindSIsMember
	KindSInter
	KindSUnion
	KindSDiff

	KindZAdd
	KindZRem
	KindZRange
	KindZRangeByScore
	KindZCard
	KindZScore
	KindZRank

	KindExpire
	KindTTL
	KindType
	KindKeys
	KindFlushAll
	KindFlushDB
)

// SetMods carries SET's optional modifiers (spec §4.5): NX/XX existence
// guards, EX/PX expiry, and KEEPTTL.
type SetMods struct {
	NX            bool
	XX            bool
	KeepTTL       bool
	HasExpire     bool
	ExpireSeconds int64 // relative TTL in whole seconds; PX is ceil(ms/1000)
}

// ScoredMember is one (member, score) pair parsed from a ZADD argument
// list.
type ScoredMember struct {
	Member string
	Score  float64
}

// FieldValue is one (field, value) pair; MSET uses it for its key/value
// pairs (Field holds the key).
type FieldValue struct {
	Field string
	Value []byte
}

// Command is the parsed, type-checked form of one client request. Only
// the fields relevant to Kind are populated; the comment on each field
// names which Kind(s) set it.
type Command struct {
	Kind Kind

	Key  string   // most commands
	Keys []string // DEL, EXISTS, MGET, SINTER, SUNION, SDIFF

	Value  []byte // SET, SETNX, SETEX, GETSET, APPEND, ECHO, LSET, LINSERT value
	Values [][]byte // LPUSH, RPUSH (each pushed element)

	MSetPairs []FieldValue // MSET: Field holds the key, Value holds the value

	Field  string // HGET, HEXISTS, HSET field, HINCRBY/HINCRBYFLOAT field
	Fields []string // HDEL fields

	Member  string // SISMEMBER, ZSCORE, ZRANK, ZREM
	Members []string // SADD, SREM

	ScoredMembers []ScoredMember // ZADD

	Start, Stop int64 // LRANGE, LTRIM, ZRANGE (rank bounds)
	Index       int64 // LINDEX, LSET
	MinScore    float64 // ZRANGEBYSCORE
	MaxScore    float64

	Delta      int64   // INCRBY, DECRBY, HINCRBY
	DeltaFloat float64 // HINCRBYFLOAT

	Pivot    []byte // LINSERT
	Before   bool   // LINSERT BEFORE (true) / AFTER (false)

	SetMods SetMods // SET

	Seconds int64 // EXPIRE, SETEX

	DBIndex int // SELECT

	Pattern string // KEYS

	// NumericError/FloatError are set by Parse when an ASCII-constrained
	// argument failed to parse as the expected numeric type. Parsing still
	// succeeds (arity and command name were fine) so Dispatch is the one
	// that turns this into the spec's "fails at execution, not parse
	// time" wire error.
	NumericError bool
	FloatError   bool
}
