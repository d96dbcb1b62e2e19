package command

import (
	"strconv"
	"strings"

	"github.com/armandparser/redicache/internal/resp"
)

// Parse implements spec §4.4's four steps: verify the frame is an array of
// bulk strings, uppercase the command name, check arity, and strictly
// parse ASCII-constrained arguments into a Command. Unknown command names
// and arity mismatches are reported immediately (ErrUnknownCommand /
// ErrWrongArity); malformed numeric arguments are recorded on the Command
// via NumericError/FloatError and surfaced by Dispatch instead, per spec.
func Parse(f resp.Frame) (Command, error) {
	args, err := frameArgs(f)
	if err != nil {
		return Command{}, err
	}
	if len(args) == 0 {
		return Command{}, ErrUnknownCommand
	}

	name := strings.ToUpper(string(args[0]))
	rest := args[1:]

	switch name {
	case "PING":
		return Command{Kind: KindPing}, nil
	case "QUIT":
		return Command{Kind: KindQuit}, nil
	case "ECHO":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindEcho, Value: rest[0]}, nil
	case "AUTH":
		if len(rest) < 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindAuth}, nil
	case "SELECT":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		cmd := Command{Kind: KindSelect}
		n, ok := parseInt(string(rest[0]))
		if !ok {
			cmd.NumericError = true
			return cmd, nil
		}
		cmd.DBIndex = int(n)
		return cmd, nil
	case "INFO":
		return Command{Kind: KindInfo}, nil

	case "GET":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindGet, Key: string(rest[0])}, nil
	case "SET":
		return parseSet(rest)
	case "SETNX":
		if len(rest) != 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindSetNX, Key: string(rest[0]), Value: rest[1]}, nil
	case "SETEX":
		if len(rest) != 3 {
			return Command{}, ErrWrongArity
		}
		cmd := Command{Kind: KindSetEX, Key: string(rest[0]), Value: rest[2]}
		secs, ok := parseInt(string(rest[1]))
		if !ok {
			cmd.NumericError = true
			return cmd, nil
		}
		cmd.Seconds = secs
		return cmd, nil
	case "GETSET":
		if len(rest) != 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindGetSet, Key: string(rest[0]), Value: rest[1]}, nil
	case "DEL":
		if len(rest) < 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindDel, Keys: toStrings(rest)}, nil
	case "EXISTS":
		if len(rest) < 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindExists, Keys: toStrings(rest)}, nil
	case "INCR":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindIncr, Key: string(rest[0])}, nil
	case "DECR":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindDecr, Key: string(rest[0])}, nil
	case "INCRBY":
		return parseIncrBy(KindIncrBy, rest)
	case "DECRBY":
		return parseIncrBy(KindDecrBy, rest)
	case "APPEND":
		if len(rest) != 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindAppend, Key: string(rest[0]), Value: rest[1]}, nil
	case "STRLEN":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindStrlen, Key: string(rest[0])}, nil
	case "MGET":
		if len(rest) < 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindMGet, Keys: toStrings(rest)}, nil
	case "MSET":
		if len(rest) < 2 || len(rest)%2 != 0 {
			return Command{}, ErrWrongArity
		}
		pairs := make([]FieldValue, 0, len(rest)/2)
		for i := 0; i < len(rest); i += 2 {
			pairs = append(pairs, FieldValue{Field: string(rest[i]), Value: rest[i+1]})
		}
		return Command{Kind: KindMSet, MSetPairs: pairs}, nil

	case "HSET":
		if len(rest) != 3 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindHSet, Key: string(rest[0]), Field: string(rest[1]), Value: rest[2]}, nil
	case "HGET":
		if len(rest) != 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindHGet, Key: string(rest[0]), Field: string(rest[1])}, nil
	case "HDEL":
		if len(rest) < 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindHDel, Key: string(rest[0]), Fields: toStrings(rest[1:])}, nil
	case "HGETALL":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindHGetAll, Key: string(rest[0])}, nil
	case "HKEYS":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindHKeys, Key: string(rest[0])}, nil
	case "HVALS":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindHVals, Key: string(rest[0])}, nil
	case "HLEN":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindHLen, Key: string(rest[0])}, nil
	case "HEXISTS":
		if len(rest) != 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindHExists, Key: string(rest[0]), Field: string(rest[1])}, nil
	case "HINCRBY":
		if len(rest) != 3 {
			return Command{}, ErrWrongArity
		}
		cmd := Command{Kind: KindHIncrBy, Key: string(rest[0]), Field: string(rest[1])}
		delta, ok := parseInt(string(rest[2]))
		if !ok {
			cmd.NumericError = true
			return cmd, nil
		}
		cmd.Delta = delta
		return cmd, nil
	case "HINCRBYFLOAT":
		if len(rest) != 3 {
			return Command{}, ErrWrongArity
		}
		cmd := Command{Kind: KindHIncrByFloat, Key: string(rest[0]), Field: string(rest[1])}
		delta, ok := parseFloat(string(rest[2]))
		if !ok {
			cmd.FloatError = true
			return cmd, nil
		}
		cmd.DeltaFloat = delta
		return cmd, nil

	case "LPUSH":
		return parsePush(KindLPush, rest)
	case "RPUSH":
		return parsePush(KindRPush, rest)
	case "LPOP":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindLPop, Key: string(rest[0])}, nil
	case "RPOP":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindRPop, Key: string(rest[0])}, nil
	case "LLEN":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindLLen, Key: string(rest[0])}, nil
	case "LINDEX":
		if len(rest) != 2 {
			return Command{}, ErrWrongArity
		}
		cmd := Command{Kind: KindLIndex, Key: string(rest[0])}
		idx, ok := parseInt(string(rest[1]))
		if !ok {
			cmd.NumericError = true
			return cmd, nil
		}
		cmd.Index = idx
		return cmd, nil
	case "LRANGE":
		return parseRange(KindLRange, rest)
	case "LTRIM":
		return parseRange(KindLTrim, rest)
	case "LSET":
		if len(rest) != 3 {
			return Command{}, ErrWrongArity
		}
		cmd := Command{Kind: KindLSet, Key: string(rest[0]), Value: rest[2]}
		idx, ok := parseInt(string(rest[1]))
		if !ok {
			cmd.NumericError = true
			return cmd, nil
		}
		cmd.Index = idx
		return cmd, nil
	case "LINSERT":
		if len(rest) != 4 {
			return Command{}, ErrWrongArity
		}
		where := strings.ToUpper(string(rest[1]))
		var before bool
		switch where {
		case "BEFORE":
			before = true
		case "AFTER":
			before = false
		default:
			return Command{}, ErrSyntax
		}
		return Command{Kind: KindLInsert, Key: string(rest[0]), Before: before, Pivot: rest[2], Value: rest[3]}, nil

	case "SADD":
		if len(rest) < 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindSAdd, Key: string(rest[0]), Members: toStrings(rest[1:])}, nil
	case "SREM":
		if len(rest) < 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindSRem, Key: string(rest[0]), Members: toStrings(rest[1:])}, nil
	case "SMEMBERS":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindSMembers, Key: string(rest[0])}, nil
	case "SCARD":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindSCard, Key: string(rest[0])}, nil
	case "SISMEMBER":
		if len(rest) != 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindSIsMember, Key: string(rest[0]), Member: string(rest[1])}, nil
	case "SINTER":
		if len(rest) < 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindSInter, Keys: toStrings(rest)}, nil
	case "SUNION":
		if len(rest) < 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindSUnion, Keys: toStrings(rest)}, nil
	case "SDIFF":
		if len(rest) < 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindSDiff, Keys: toStrings(rest)}, nil

	case "ZADD":
		return parseZAdd(rest)
	case "ZREM":
		if len(rest) != 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindZRem, Key: string(rest[0]), Member: string(rest[1])}, nil
	case "ZRANGE":
		return parseRange(KindZRange, rest)
	case "ZRANGEBYSCORE":
		if len(rest) != 3 {
			return Command{}, ErrWrongArity
		}
		cmd := Command{Kind: KindZRangeByScore, Key: string(rest[0])}
		min, ok := parseFloat(string(rest[1]))
		if !ok {
			cmd.FloatError = true
			return cmd, nil
		}
		max, ok := parseFloat(string(rest[2]))
		if !ok {
			cmd.FloatError = true
			return cmd, nil
		}
		cmd.MinScore, cmd.MaxScore = min, max
		return cmd, nil
	case "ZCARD":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindZCard, Key: string(rest[0])}, nil
	case "ZSCORE":
		if len(rest) != 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindZScore, Key: string(rest[0]), Member: string(rest[1])}, nil
	case "ZRANK":
		if len(rest) != 2 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindZRank, Key: string(rest[0]), Member: string(rest[1])}, nil

	case "EXPIRE":
		if len(rest) != 2 {
			return Command{}, ErrWrongArity
		}
		cmd := Command{Kind: KindExpire, Key: string(rest[0])}
		secs, ok := parseInt(string(rest[1]))
		if !ok {
			cmd.NumericError = true
			return cmd, nil
		}
		cmd.Seconds = secs
		return cmd, nil
	case "TTL":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindTTL, Key: string(rest[0])}, nil
	case "TYPE":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindType, Key: string(rest[0])}, nil
	case "KEYS":
		if len(rest) != 1 {
			return Command{}, ErrWrongArity
		}
		return Command{Kind: KindKeys, Pattern: string(rest[0])}, nil
	case "FLUSHALL":
		return Command{Kind: KindFlushAll}, nil
	case "FLUSHDB":
		return Command{Kind: KindFlushDB}, nil

	default:
		return Command{}, ErrUnknownCommand
	}
}

func parseSet(rest [][]byte) (Command, error) {
	if len(rest) < 2 {
		return Command{}, ErrWrongArity
	}
	cmd := Command{Kind: KindSet, Key: string(rest[0]), Value: rest[1]}

	i := 2
	for i < len(rest) {
		opt := strings.ToUpper(string(rest[i]))
		switch opt {
		case "NX":
			cmd.SetMods.NX = true
			i++
		case "XX":
			cmd.SetMods.XX = true
			i++
		case "KEEPTTL":
			cmd.SetMods.KeepTTL = true
			i++
		case "EX", "PX":
			if i+1 >= len(rest) {
				return Command{}, ErrSyntax
			}
			n, ok := parseInt(string(rest[i+1]))
			if !ok {
				cmd.NumericError = true
				return cmd, nil
			}
			cmd.SetMods.HasExpire = true
			if opt == "EX" {
				cmd.SetMods.ExpireSeconds = n
			} else {
				cmd.SetMods.ExpireSeconds = (n + 999) / 1000
			}
			i += 2
		default:
			return Command{}, ErrSyntax
		}
	}
	if cmd.SetMods.NX && cmd.SetMods.XX {
		return Command{}, ErrSyntax
	}
	return cmd, nil
}

func parseIncrBy(kind Kind, rest [][]byte) (Command, error) {
	if len(rest) != 2 {
		return Command{}, ErrWrongArity
	}
	cmd := Command{Kind: kind, Key: string(rest[0])}
	n, ok := parseInt(string(rest[1]))
	if !ok {
		cmd.NumericError = true
		return cmd, nil
	}
	cmd.Delta = n
	return cmd, nil
}

func parsePush(kind Kind, rest [][]byte) (Command, error) {
	if len(rest) < 2 {
		return Command{}, ErrWrongArity
	}
	return Command{Kind: kind, Key: string(rest[0]), Values: rest[1:]}, nil
}

func parseRange(kind Kind, rest [][]byte) (Command, error) {
	if len(rest) != 3 {
		return Command{}, ErrWrongArity
	}
	cmd := Command{Kind: kind, Key: string(rest[0])}
	start, ok := parseInt(string(rest[1]))
	if !ok {
		cmd.NumericError = true
		return cmd, nil
	}
	stop, ok := parseInt(string(rest[2]))
	if !ok {
		cmd.NumericError = true
		return cmd, nil
	}
	cmd.Start, cmd.Stop = start, stop
	return cmd, nil
}

func parseZAdd(rest [][]byte) (Command, error) {
	if len(rest) < 3 || len(rest)%2 != 1 {
		return Command{}, ErrWrongArity
	}
	cmd := Command{Kind: KindZAdd, Key: string(rest[0])}
	pairs := make([]ScoredMember, 0, len(rest)/2)
	for i := 1; i < len(rest); i += 2 {
		score, ok := parseFloat(string(rest[i]))
		if !ok {
			cmd.FloatError = true
			return cmd, nil
		}
		pairs = append(pairs, ScoredMember{Score: score, Member: string(rest[i+1])})
	}
	cmd.ScoredMembers = pairs
	return cmd, nil
}

func frameArgs(f resp.Frame) ([][]byte, error) {
	if f.Kind != resp.KindArray || f.ArrayNull {
		return nil, ErrNotArray
	}
	args := make([][]byte, len(f.Array))
	for i, item := range f.Array {
		if item.Kind != resp.KindBulkString || item.BulkNull {
			return nil, ErrNotArray
		}
		args[i] = item.Bulk
	}
	return args, nil
}

func toStrings(args [][]byte) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = string(a)
	}
	return out
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

func parseFloat(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}
