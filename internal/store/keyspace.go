package store

import (
	"errors"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ErrNotInteger is returned by integer string operations on a parse
// failure or a 64-bit overflow; spec §7 gives both the same wire message,
// so callers never need to distinguish the two cases.
var ErrNotInteger = errors.New("value is not an integer or out of range")

// bucketCount is the number of lock stripes per database. A fixed power of
// two keeps bucket selection to a mask instead of a modulo.
const bucketCount = 64

type entry struct {
	value     *Value
	expiresAt int64 // unix seconds; 0 means no expiry
}

func (e *entry) expired(now int64) bool {
	return e.expiresAt > 0 && e.expiresAt <= now
}

// shard is one lock stripe: an independent map guarded by its own mutex,
// so unrelated keys never contend. Spec §9 "lock-striped concurrent map".
type shard struct {
	mu sync.Mutex
	m  map[string]*entry
}

// Keyspace is a single logical database: key -> typed value, with lazy
// expiration folded into the same per-key lock (the teacher keeps a
// separate ttlIndex/ttlMutex; here the deadline travels with the entry so
// one lock covers both).
type Keyspace struct {
	shards [bucketCount]*shard
}

func NewKeyspace() *Keyspace {
	k := &Keyspace{}
	for i := range k.shards {
		k.shards[i] = &shard{m: make(map[string]*entry)}
	}
	return k
}

func (k *Keyspace) shardFor(key string) *shard {
	h := xxhash.Sum64String(key)
	return k.shards[h%bucketCount]
}

// Get returns the live value for key, deleting it first if its deadline
// has passed.
func (k *Keyspace) Get(key string, now int64) (*Value, bool) {
	s := k.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return k.liveLocked(s, key, now)
}

func (k *Keyspace) liveLocked(s *shard, key string, now int64) (*Value, bool) {
	e, ok := s.m[key]
	if !ok {
		return nil, false
	}
	if e.expired(now) {
		delete(s.m, key)
		return nil, false
	}
	return e.value, true
}

// TypeOf returns the key's tag, or KindNone if absent or expired.
func (k *Keyspace) TypeOf(key string, now int64) Kind {
	v, ok := k.Get(key, now)
	if !ok {
		return KindNone
	}
	return v.Kind
}

// Exists reports whether key is present and unexpired.
func (k *Keyspace) Exists(key string, now int64) bool {
	_, ok := k.Get(key, now)
	return ok
}

// Delete removes key unconditionally, reporting whether it was present.
func (k *Keyspace) Delete(key string, now int64) bool {
	s := k.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := k.liveLocked(s, key, now)
	delete(s.m, key)
	return existed
}

// TTLSeconds reports the remaining whole seconds until expiry. exists is
// false if the key is absent/expired; hasExpiry is false if the key has no
// deadline (ttl is meaningless in that case).
func (k *Keyspace) TTLSeconds(key string, now int64) (ttl int64, exists bool, hasExpiry bool) {
	s := k.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := k.liveLocked(s, key, now)
	if !ok {
		return 0, false, false
	}
	raw := s.m[key]
	if raw.expiresAt == 0 {
		return 0, true, false
	}
	return raw.expiresAt - now, true, true
}

// Expire sets key's absolute deadline. A deadline at or before now deletes
// the key immediately, matching EXPIRE's "already past" rule (spec §4.5).
// Reports whether the key existed to act on.
func (k *Keyspace) Expire(key string, deadline int64, now int64) bool {
	s := k.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := k.liveLocked(s, key, now)
	if !ok {
		return false
	}
	if deadline <= now {
		delete(s.m, key)
		return true
	}
	s.m[key].expiresAt = deadline
	return true
}

// SetOptions carries SET's NX/XX/EX/PX/KEEPTTL modifiers (spec §4.5).
type SetOptions struct {
	NX        bool
	XX        bool
	KeepTTL   bool
	ExpiresAt int64 // absolute deadline; 0 with KeepTTL=false means no expiry
}

// SetString stores data under key per the NX/XX/KEEPTTL rules, replacing
// any prior value regardless of its tag. Reports whether the store took
// effect (false for a failed NX/XX precondition).
func (k *Keyspace) SetString(key string, data []byte, now int64, opts SetOptions) bool {
	s := k.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := k.liveLocked(s, key, now)
	if exists && opts.NX {
		return false
	}
	if !exists && opts.XX {
		return false
	}

	expiresAt := opts.ExpiresAt
	if opts.KeepTTL && exists {
		expiresAt = s.m[key].expiresAt
	}
	s.m[key] = &entry{value: newStringValue(NewStringValue(data)), expiresAt: expiresAt}
	return true
}

// GetSet atomically replaces key's string value, returning the prior
// value and preserving its TTL. wrongType is set if key holds a non-string
// value, in which case no change is made.
func (k *Keyspace) GetSet(key string, data []byte, now int64) (old []byte, hadOld bool, wrongType bool) {
	s := k.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := k.liveLocked(s, key, now)
	var expiresAt int64
	if exists {
		if v.Kind != KindString {
			return nil, false, true
		}
		old = v.Str.Get()
		hadOld = true
		expiresAt = s.m[key].expiresAt
	}
	s.m[key] = &entry{value: newStringValue(NewStringValue(data)), expiresAt: expiresAt}
	return old, hadOld, false
}

// Append appends suffix to key's string (creating it if absent), returning
// the new length. wrongType is set if key holds a non-string value.
func (k *Keyspace) Append(key string, suffix []byte, now int64) (newLen int, wrongType bool) {
	s := k.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := k.liveLocked(s, key, now)
	if exists {
		if v.Kind != KindString {
			return 0, true
		}
		return v.Str.Append(suffix), false
	}

	data := append([]byte(nil), suffix...)
	s.m[key] = &entry{value: newStringValue(NewStringValue(data))}
	return len(data), false
}

// IncrBy adds delta to key's integer value (absent key treated as 0),
// preserving any existing TTL. Returns ErrNotInteger on parse failure or
// overflow, in which case the stored value is unchanged.
func (k *Keyspace) IncrBy(key string, delta int64, now int64) (newValue int64, err error, wrongType bool) {
	s := k.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	var expiresAt int64
	v, exists := k.liveLocked(s, key, now)
	if exists {
		if v.Kind != KindString {
			return 0, nil, true
		}
		parsed, perr := v.Str.ParseInt()
		if perr != nil {
			return 0, ErrNotInteger, false
		}
		current = parsed
		expiresAt = s.m[key].expiresAt
	}

	newValue = current + delta
	if (delta > 0 && newValue < current) || (delta < 0 && newValue > current) {
		return 0, ErrNotInteger, false
	}

	s.m[key] = &entry{value: newStringValue(NewStringValue([]byte(strconv.FormatInt(newValue, 10)))), expiresAt: expiresAt}
	return newValue, nil, false
}

// View runs fn with read access to key's value if it exists and matches
// want, without mutating the keyspace. Returns whether the key existed and
// whether its tag mismatched want.
func (k *Keyspace) View(key string, now int64, want Kind, fn func(v *Value)) (existed bool, wrongType bool) {
	s := k.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := k.liveLocked(s, key, now)
	if !ok {
		return false, false
	}
	if v.Kind != want {
		return true, true
	}
	fn(v)
	return true, false
}

// MutateExisting runs fn against key's value if it exists and matches
// want. If fn reports the container is now empty, the key is deleted
// (spec invariant 4 allows either choice; this implementation removes
// empty containers, matching the teacher's handlers). Returns whether the
// key existed and whether its tag mismatched want.
func (k *Keyspace) MutateExisting(key string, now int64, want Kind, fn func(v *Value) (empty bool)) (existed bool, wrongType bool) {
	s := k.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := k.liveLocked(s, key, now)
	if !ok {
		return false, false
	}
	if v.Kind != want {
		return true, true
	}
	if fn(v) {
		delete(s.m, key)
	}
	return true, false
}

// MutateOrCreate runs fn against key's value, creating it via create() if
// absent or expired. Returns wrongType if key exists with a different tag,
// in which case neither create nor fn runs and nothing changes.
func (k *Keyspace) MutateOrCreate(key string, now int64, want Kind, create func() *Value, fn func(v *Value)) (wrongType bool) {
	s := k.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := k.liveLocked(s, key, now)
	if ok && v.Kind != want {
		return true
	}
	if !ok {
		v = create()
		s.m[key] = &entry{value: v}
	}
	fn(v)
	return false
}

// Keys returns all keys matching pattern (spec §4.3 glob: '*' any run of
// bytes, '?' any single byte), as of a snapshot that never observes a
// partial per-key mutation.
func (k *Keyspace) Keys(pattern string, now int64) []string {
	var result []string
	for _, s := range k.shards {
		s.mu.Lock()
		for key, e := range s.m {
			if e.expired(now) {
				delete(s.m, key)
				continue
			}
			if MatchPattern(pattern, key) {
				result = append(result, key)
			}
		}
		s.mu.Unlock()
	}
	if result == nil {
		result = []string{}
	}
	return result
}

// Flush removes every key in the database.
func (k *Keyspace) Flush() {
	for _, s := range k.shards {
		s.mu.Lock()
		s.m = make(map[string]*entry)
		s.mu.Unlock()
	}
}
