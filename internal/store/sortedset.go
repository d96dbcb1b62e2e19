package store

import (
	"errors"
	"math"

	"github.com/google/btree"
)

// ErrNaNScore is returned by ZAdd when asked to store a NaN score; NaN
// scores are rejected per spec §3, while +/-Inf are accepted.
var ErrNaNScore = errors.New("zset score is not a number")

// zsetItem is one entry of the (score, member) ordered index.
type zsetItem struct {
	score  float64
	member string
}

func lessZsetItem(a, b zsetItem) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.member < b.member
}

// SortedSet maintains two synchronized indices: member->score for O(log n)
// score lookup, and an ordered (score, member) btree.BTreeG for
// range-by-rank and range-by-score, following the
// fenghaojiang-erigon-lib/state/domain_committed.go generic-btree usage
// pattern. Locking is owned by the enclosing Keyspace bucket.
type SortedSet struct {
	scores map[string]float64
	tree   *btree.BTreeG[zsetItem]
}

func NewSortedSet() *SortedSet {
	return &SortedSet{
		scores: make(map[string]float64),
		tree:   btree.NewG(32, lessZsetItem),
	}
}

// ZAdd replaces any existing score for member, reporting true if member is
// new to the set.
func (z *SortedSet) ZAdd(member string, score float64) (bool, error) {
	if math.IsNaN(score) {
		return false, ErrNaNScore
	}

	old, existed := z.scores[member]
	if existed {
		z.tree.Delete(zsetItem{score: old, member: member})
	}
	z.scores[member] = score
	z.tree.ReplaceOrInsert(zsetItem{score: score, member: member})
	return !existed, nil
}

func (z *SortedSet) ZRem(member string) bool {
	score, exists := z.scores[member]
	if !exists {
		return false
	}
	delete(z.scores, member)
	z.tree.Delete(zsetItem{score: score, member: member})
	return true
}

func (z *SortedSet) ZScore(member string) (float64, bool) {
	score, ok := z.scores[member]
	return score, ok
}

func (z *SortedSet) ZCard() int {
	return len(z.scores)
}

// ZRank returns the 0-based ascending rank of member by (score, member).
func (z *SortedSet) ZRank(member string) (int, bool) {
	score, ok := z.scores[member]
	if !ok {
		return 0, false
	}

	rank := 0
	found := false
	z.tree.Ascend(func(item zsetItem) bool {
		if item.score == score && item.member == member {
			found = true
			return false
		}
		rank++
		return true
	})
	if !found {
		return 0, false
	}
	return rank, true
}

// ZRange returns members in ascending (score, member) order for ranks
// [start, stop] inclusive; the caller normalizes negative/out-of-range
// indices before calling.
func (z *SortedSet) ZRange(start, stop int) []string {
	if start < 0 {
		start = 0
	}
	n := z.tree.Len()
	if stop >= n {
		stop = n - 1
	}
	if start > stop || n == 0 {
		return []string{}
	}

	result := make([]string, 0, stop-start+1)
	rank := 0
	z.tree.Ascend(func(item zsetItem) bool {
		if rank >= start && rank <= stop {
			result = append(result, item.member)
		}
		rank++
		return rank <= stop
	})
	return result
}

// ZRangeByScore returns members with min <= score <= max, ascending by
// (score, member). Exclusive-bound syntax is not implemented (spec §9).
func (z *SortedSet) ZRangeByScore(min, max float64) []string {
	var result []string
	pivot := zsetItem{score: min, member: ""}
	z.tree.AscendGreaterOrEqual(pivot, func(item zsetItem) bool {
		if item.score > max {
			return false
		}
		result = append(result, item.member)
		return true
	})
	if result == nil {
		result = []string{}
	}
	return result
}
