package command

import (
	"github.com/armandparser/redicache/internal/resp"
	"github.com/armandparser/redicache/internal/store"
)

func dispatchSet(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	switch cmd.Kind {
	case KindSAdd:
		return doSAdd(db, cmd, now)
	case KindSRem:
		return doSRem(db, cmd, now)
	case KindSMembers:
		return doSMembers(db, cmd, now)
	case KindSCard:
		return doSCard(db, cmd, now)
	case KindSIsMember:
		return doSIsMember(db, cmd, now)
	case KindSInter:
		return doSetAlgebra(db, cmd, now, setIntersect)
	case KindSUnion:
		return doSetAlgebra(db, cmd, now, setUnion)
	case KindSDiff:
		return doSetAlgebra(db, cmd, now, setDiff)
	default:
		return resp.Error(ErrUnknownCommand.Error())
	}
}

func doSAdd(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var added int64
	wt := db.MutateOrCreate(cmd.Key, now, store.KindSet,
		func() *store.Value { return store.NewSetValue(store.NewSet()) },
		func(v *store.Value) {
			for _, m := range cmd.Members {
				if v.Set.Add(m) {
					added++
				}
			}
		},
	)
	if wt {
		return wrongType()
	}
	return resp.Integer(added)
}

func doSRem(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var removed int64
	_, wt := db.MutateExisting(cmd.Key, now, store.KindSet, func(v *store.Value) (empty bool) {
		for _, m := range cmd.Members {
			if v.Set.Remove(m) {
				removed++
			}
		}
		return v.Set.Card() == 0
	})
	if wt {
		return wrongType()
	}
	return resp.Integer(removed)
}

func doSMembers(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var members []string
	existed, wt := db.View(cmd.Key, now, store.KindSet, func(v *store.Value) {
		members = v.Set.Members()
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.Array([]resp.Frame{})
	}
	return resp.Array(stringsToBulkFrames(members))
}

func doSCard(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var card int
	existed, wt := db.View(cmd.Key, now, store.KindSet, func(v *store.Value) {
		card = v.Set.Card()
	})
	if wt {
		return wrongType()
	}
	if !existed {
		return resp.Integer(0)
	}
	return resp.Integer(int64(card))
}

func doSIsMember(db *store.Keyspace, cmd Command, now int64) resp.Frame {
	var isMember bool
	existed, wt := db.View(cmd.Key, now, store.KindSet, func(v *store.Value) {
		isMember = v.Set.IsMember(cmd.Member)
	})
	if wt {
		return wrongType()
	}
	if !existed || !isMember {
		return resp.Integer(0)
	}
	return resp.Integer(1)
}

func stringsToBulkFrames(members []string) []resp.Frame {
	items := make([]resp.Frame, len(members))
	for i, m := range members {
		items[i] = resp.BulkString(m)
	}
	return items
}

// collectMemberSets reads each key's set in turn (never holding two shard
// locks at once, per the keyspace's bounded-handle rule) and copies its
// members out into a plain map before moving to the next key.
func collectMemberSets(db *store.Keyspace, keys []string, now int64) ([]map[string]struct{}, bool) {
	sets := make([]map[string]struct{}, len(keys))
	for i, key := range keys {
		members := map[string]struct{}{}
		existed, wt := db.View(key, now, store.KindSet, func(v *store.Value) {
			for _, m := range v.Set.Members() {
				members[m] = struct{}{}
			}
		})
		if wt {
			return nil, true
		}
		if existed {
			sets[i] = members
		} else {
			sets[i] = map[string]struct{}{}
		}
	}
	return sets, false
}

func setIntersect(sets []map[string]struct{}) []string {
	if len(sets) == 0 {
		return nil
	}
	result := []string{}
	for m := range sets[0] {
		inAll := true
		for _, s := range sets[1:] {
			if _, ok := s[m]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			result = append(result, m)
		}
	}
	return result
}

func setUnion(sets []map[string]struct{}) []string {
	seen := map[string]struct{}{}
	for _, s := range sets {
		for m := range s {
			seen[m] = struct{}{}
		}
	}
	result := make([]string, 0, len(seen))
	for m := range seen {
		result = append(result, m)
	}
	return result
}

func setDiff(sets []map[string]struct{}) []string {
	if len(sets) == 0 {
		return nil
	}
	result := []string{}
	for m := range sets[0] {
		inOther := false
		for _, s := range sets[1:] {
			if _, ok := s[m]; ok {
				inOther = true
				break
			}
		}
		if !inOther {
			result = append(result, m)
		}
	}
	return result
}

func doSetAlgebra(db *store.Keyspace, cmd Command, now int64, combine func([]map[string]struct{}) []string) resp.Frame {
	sets, wt := collectMemberSets(db, cmd.Keys, now)
	if wt {
		return wrongType()
	}
	return resp.Array(stringsToBulkFrames(combine(sets)))
}
