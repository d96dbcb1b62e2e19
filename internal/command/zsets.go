package command

import (
	"github.com/armandparser/redicache/internal/resp"
	"github.com/armandparser/redicache/internal/store"
)

func dispatchZSet(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	switch cmd.Kind {
	case KindZAdd:
		return doZAdd(db, cmd, now)
	case KindZRem:
		return doZRem(db, cmd, now)
	case KindZRange:
		return doZRange(db, cmd, now)
	case KindZRangeByScore:
		return doZRangeByScore(db, cmd, now)
	case KindZCard:
		return doZCard(db, cmd, now)
	case KindZScore:
		return doZScore(db, cmd, now)
	case KindZRank:
		return doZRank(db, cmd, now)
	default:
		return resp.Error(ErrUnknownCommand.Error())
	}
}

func doZAdd(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	if cmd.FloatError {
		return notFloat()
	}
	var added int64
	var zaddErr error
	wt := db.MutateOrCreate(cmd.Key, now, store.KindSortedSet,
		func() *store.Value { return store.NewSortedSetValue(store.NewSortedSet()) },
		func(v *store.Value) {
			for _, sm := range cmd.ScoredMembers {
				isNew, err := v.ZSet.ZAdd(sm.Member, sm.Score)
				if err != nil {
					zaddErr = err
					return
				}
				if isNew {
					added++
				}
			}
		},
	)
	if wt {
		return wrongType()
	}
	if zaddErr != nil {
		return resp.Error("ERR " + zaddErr.Error())
	}
	return resp.Integer(added)
}

func doZRem(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var removed bool
	_, wt := db.MutateExisting(cmd.Key, now, store.KindSortedSet, func(v *store.Value) (empty bool) {
		removed = v.ZSet.ZRem(cmd.Member)
		return v.ZSet.ZCard() == 0
	})
	if wt {
		return wrongType()
	}
	if removed {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

func doZRange(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	if cmd.NumericError {
		return notInteger()
	}
	var members []string
	existed, wt := db.View(cmd.Key, now, store.KindSortedSet, func(v *store.Value) {
		start, stop, ok := normalizeRange(v.ZSet.ZCard(), cmd.Start, cmd.Stop)
		if !ok {
			members = []string{}
			return
		}
		members = v.ZSet.ZRange(start, stop)
	})
	if wt {
		return wrongType()
	}
	if !existed || members == nil {
		return resp.Array([]resp.Frame{})
	}
	return resp.Array(stringsToBulkFrames(members))
}

func doZRangeByScore(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	if cmd.FloatError {
		return notFloat()
	}
	var members []string
	existed, wt := db.View(cmd.Key, now, store.KindSortedSet, func(v *store.Value) {
		members = v.ZSet.ZRangeByScore(cmd.MinScore, cmd.MaxScore)
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.Array([]resp.Frame{})
	}
	return resp.Array(stringsToBulkFrames(members))
}

func doZCard(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var card int
	existed, wt := db.View(cmd.Key, now, store.KindSortedSet, func(v *store.Value) {
		card = v.ZSet.ZCard()
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.Integer(0)
	}
	return resp.Integer(int64(card))
}

func doZScore(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var score float64
	var found bool
	existed, wt := db.View(cmd.Key, now, store.KindSortedSet, func(v *store.Value) {
		score, found = v.ZSet.ZScore(cmd.Member)
	})
	if wt {
		return wrongType()
	}
	if !existed || !found {
		return resp.NullBulk()
	}
	return resp.Bulk([]byte(store.FormatFloat(score)))
}

func doZRank(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var rank int
	var found bool
	existed, wt := db.View(cmd.Key, now, store.KindSortedSet, func(v *store.Value) {
		rank, found = v.ZSet.ZRank(cmd.Member)
	})
	if wt {
		return wrongType()
	}
	if !existed || !found {
		return resp.NullBulk()
	}
	return resp.Integer(int64(rank))
}
