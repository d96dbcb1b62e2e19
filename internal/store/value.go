// Package store implements the typed value containers and the sharded,
// multi-database keyspace that commands read and mutate.
package store

// Kind tags the variant of a RedisValue. It is the discriminator the
// dispatcher checks before mutating a key (WRONGTYPE enforcement) and the
// string TYPE reports back to the client.
type Kind uint8

const (
	KindNone Kind = iota
	KindString
	KindHash
	KindList
	KindSet
	KindSortedSet
)

// String returns the TYPE reply for k ("none" for the zero value).
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindHash:
		return "hash"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindSortedSet:
		return "zset"
	default:
		return "none"
	}
}

// Value is a tagged variant holding exactly one of the five container
// kinds. Only one of the typed fields is populated, selected by Kind; this
// mirrors original_source's enum RedisValue without needing an interface
// hierarchy, keeping WRONGTYPE enforcement a single tag comparison.
type Value struct {
	Kind   Kind
	Str    *StringValue
	Hash   *Hash
	List   *List
	Set    *Set
	ZSet   *SortedSet
}

func newStringValue(v *StringValue) *Value { return &Value{Kind: KindString, Str: v} }

// NewHashValue, NewListValue, NewSetValue and NewSortedSetValue let the
// command dispatcher build the "create if absent" closures that
// Keyspace.MutateOrCreate takes, without exposing Value's internals.
func NewHashValue(v *Hash) *Value           { return &Value{Kind: KindHash, Hash: v} }
func NewListValue(v *List) *Value           { return &Value{Kind: KindList, List: v} }
func NewSetValue(v *Set) *Value             { return &Value{Kind: KindSet, Set: v} }
func NewSortedSetValue(v *SortedSet) *Value { return &Value{Kind: KindSortedSet, ZSet: v} }
