// Package store implements the typed key/value engine: five per-type
// tables sharing one key namespace, a parallel expiry map, and lazy
// per-key expiration enforced on every touch.
package store

import (
	"sync"
	"time"
)

// kind tags which of the five value tables (if any) currently holds a
// key, enforcing invariant I1 (a key lives in at most one table).
type kind int

const (
	kindNone kind = iota
	kindString
	kindList
	kindHash
	kindSet
	kindZSet
)

// SetOptions configures SET beyond the bare key/value assignment.
// TTL and KeepTTL are mutually exclusive with each other and with NX/XX
// combined incorrectly; internal/server validates the combination before
// calling Set.
type SetOptions struct {
	TTL     time.Duration // > 0: expire this long from now
	KeepTTL bool          // retain the key's existing TTL, if any
	NX      bool          // only set if the key does not currently exist
	XX      bool          // only set if the key already exists
}

// Engine is the typed key/value engine's public surface. Store is the
// coarse-mutex reference implementation; ShardedStore partitions keys
// across shards for reduced contention while preserving linearizability
// for the cross-key operations (MGet, Del, Exists, SInter, SUnion, Keys).
type Engine interface {
	// String family
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte, opts SetOptions) (bool, error)
	MSet(pairs [][2][]byte) error
	MGet(keys []string) ([][]byte, []bool)
	IncrBy(key string, delta int64) (int64, error)

	// Generic family
	Del(keys []string) int64
	Exists(keys []string) int64
	Expire(key string, seconds int64) int64
	TTL(key string) int64
	Keys(pattern string) []string

	// List family
	LPush(key string, values [][]byte) (int64, error)
	RPush(key string, values [][]byte) (int64, error)
	LLen(key string) (int64, error)
	LRange(key string, start, stop int64) ([][]byte, error)

	// Hash family
	HSet(key string, field, value []byte) (bool, error)
	HGet(key string, field []byte) ([]byte, bool, error)
	HDel(key string, fields [][]byte) (int64, error)
	HExists(key string, field []byte) (bool, error)
	HGetAll(key string) ([][]byte, error)
	HKeys(key string) ([][]byte, error)
	HVals(key string) ([][]byte, error)
	HLen(key string) (int64, error)

	// Set family
	SAdd(key string, members [][]byte) (int64, error)
	SMembers(key string) ([][]byte, error)
	SIsMember(key string, member []byte) (bool, error)
	SRem(key string, members [][]byte) (int64, error)
	SCard(key string) (int64, error)
	SInter(keys []string) ([][]byte, error)
	SUnion(keys []string) ([][]byte, error)

	// Sorted-set family
	ZAdd(key string, members []ZMember) (int64, error)
	ZRange(key string, start, stop int64) ([]ZMember, error)
	ZRank(key string, member []byte) (int64, bool, error)
	ZRem(key string, members [][]byte) (int64, error)
	ZScore(key string, member []byte) (float64, bool, error)
	ZCard(key string) (int64, error)

	// DeleteExpired is the active-expiration sweep: it samples up to
	// limit expiry entries and removes any already past their deadline,
	// returning the fraction found expired. Purely an optimization over
	// lazy per-touch expiration; must not change observable semantics.
	DeleteExpired(limit int) float64
}

// Store is a single coarse-mutex key/value engine: one Mutex over all
// five value tables and the expiry map, the reference design of
// spec.md §5. Every exported method is atomic with respect to every
// other.
type Store struct {
	mu sync.Mutex

	strings map[string][]byte
	lists   map[string][][]byte
	hashes  map[string]map[string][]byte
	sets    map[string]map[string]struct{}
	zsets   map[string]*zsetEntry

	expires map[string]time.Time

	now func() time.Time // injected for deterministic tests
}

// NewStore constructs an empty Store using the real wall clock.
func NewStore() *Store {
	return newStoreWithClock(time.Now)
}

func newStoreWithClock(now func() time.Time) *Store {
	return &Store{
		strings: make(map[string][]byte),
		lists:   make(map[string][][]byte),
		hashes:  make(map[string]map[string][]byte),
		sets:    make(map[string]map[string]struct{}),
		zsets:   make(map[string]*zsetEntry),
		expires: make(map[string]time.Time),
		now:     now,
	}
}

// touchLocked applies lazy expiration for key. Caller must hold s.mu.
func (s *Store) touchLocked(key string) {
	deadline, ok := s.expires[key]
	if !ok {
		return
	}
	if s.now().Before(deadline) {
		return
	}
	s.purgeLocked(key)
}

// purgeLocked removes key from every table and the expiry map
// unconditionally. Caller must hold s.mu.
func (s *Store) purgeLocked(key string) {
	delete(s.strings, key)
	delete(s.lists, key)
	delete(s.hashes, key)
	delete(s.sets, key)
	delete(s.zsets, key)
	delete(s.expires, key)
}

// kindOfLocked reports which table holds key, if any. Caller must hold
// s.mu and must already have called touchLocked(key).
func (s *Store) kindOfLocked(key string) kind {
	if _, ok := s.strings[key]; ok {
		return kindString
	}
	if _, ok := s.lists[key]; ok {
		return kindList
	}
	if _, ok := s.hashes[key]; ok {
		return kindHash
	}
	if _, ok := s.sets[key]; ok {
		return kindSet
	}
	if _, ok := s.zsets[key]; ok {
		return kindZSet
	}
	return kindNone
}

// normalizeRange applies the LRANGE/ZRANGE index-normalization rule from
// spec.md §4.2.2/§4.2.5 against a collection of length n: negative
// indices count from the end, start clamps to >= 0, stop clamps to
// <= n-1. ok is false when the resulting range is empty.
func normalizeRange(start, stop, n int64) (s, e int, ok bool) {
	if n == 0 {
		return 0, 0, false
	}
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop > n-1 {
		stop = n - 1
	}
	if start > stop || start >= n {
		return 0, 0, false
	}
	return int(start), int(stop), true
}
