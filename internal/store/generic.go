package store

import "time"

// Del implements DEL: touches each key and removes it from whichever
// table holds it. Returns the count of keys actually removed.
func (s *Store) Del(keys []string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for _, key := range keys {
		s.touchLocked(key)
		if s.kindOfLocked(key) != kindNone {
			s.purgeLocked(key)
			removed++
		}
	}
	return removed
}

// Exists implements EXISTS: touches each key and counts how many exist,
// counting duplicates in the input separately.
func (s *Store) Exists(keys []string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, key := range keys {
		s.touchLocked(key)
		if s.kindOfLocked(key) != kindNone {
			count++
		}
	}
	return count
}

// Expire implements EXPIRE: touch key; absent returns 0; s <= 0 deletes
// the key and returns 1; otherwise sets the deadline and returns 1.
func (s *Store) Expire(key string, seconds int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	if s.kindOfLocked(key) == kindNone {
		return 0
	}

	if seconds <= 0 {
		s.purgeLocked(key)
		return 1
	}

	s.expires[key] = s.now().Add(time.Duration(seconds) * time.Second)
	return 1
}

// TTL implements TTL: touch key; absent is -2, no deadline is -1,
// otherwise the remaining whole seconds (rounded down, floored at 0).
func (s *Store) TTL(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	if s.kindOfLocked(key) == kindNone {
		return -2
	}

	deadline, ok := s.expires[key]
	if !ok {
		return -1
	}

	remaining := deadline.Sub(s.now())
	if remaining < 0 {
		remaining = 0
	}
	return int64(remaining / time.Second)
}

// Keys implements KEYS: touches every key, then returns the
// lexicographically sorted list of non-expired keys matching pattern
// across all five tables. Deduplication is automatic since a key lives
// in at most one table (invariant I1).
func (s *Store) Keys(pattern string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := s.allKeysLocked()
	for _, key := range candidates {
		s.touchLocked(key)
	}
	candidates = s.allKeysLocked()

	return matchSortedKeys(pattern, candidates)
}

// allKeysLocked collects every key across the five value tables. Caller
// must hold s.mu.
func (s *Store) allKeysLocked() []string {
	total := len(s.strings) + len(s.lists) + len(s.hashes) + len(s.sets) + len(s.zsets)
	keys := make([]string, 0, total)
	for k := range s.strings {
		keys = append(keys, k)
	}
	for k := range s.lists {
		keys = append(keys, k)
	}
	for k := range s.hashes {
		keys = append(keys, k)
	}
	for k := range s.sets {
		keys = append(keys, k)
	}
	for k := range s.zsets {
		keys = append(keys, k)
	}
	return keys
}

// DeleteExpired samples up to limit expiry entries and removes any
// already past their deadline, reporting the fraction found expired.
// Grounded on the teacher's active-expiration sweep; an optimization
// over lazy touch-based expiration, not a substitute for it.
func (s *Store) DeleteExpired(limit int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.expires) == 0 {
		return 0
	}

	checked, expired := 0, 0
	now := s.now()

	// Go map iteration order is randomized, which is exactly the
	// "randomly selects a limit of keys" sampling this wants.
	for key, deadline := range s.expires {
		checked++
		if now.After(deadline) || now.Equal(deadline) {
			s.purgeLocked(key)
			expired++
		}
		if checked >= limit {
			break
		}
	}

	return float64(expired) / float64(checked)
}
