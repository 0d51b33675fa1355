package store

import (
	"strconv"
	"time"
)

// Get implements GET: touch key, fail wrongType on a present non-string,
// otherwise return its value or report absence.
func (s *Store) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return nil, false, nil
	case kindString:
		return s.strings[key], true, nil
	default:
		return nil, false, ErrWrongType
	}
}

// Set implements SET: always clears any prior type and expiry for key
// before writing the new string value, except when NX/XX veto the
// write (opts.TTL/opts.KeepTTL/opts.NX/opts.XX are pre-validated by the
// caller). With opts.KeepTTL the key's previous deadline, if any, is
// put back after the write. Returns false if an NX/XX precondition
// blocked the write.
func (s *Store) Set(key string, value []byte, opts SetOptions) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	existed := s.kindOfLocked(key) != kindNone

	if opts.NX && existed {
		return false, nil
	}
	if opts.XX && !existed {
		return false, nil
	}

	var keepDeadline *time.Time
	if opts.KeepTTL && existed {
		if d, ok := s.expires[key]; ok {
			keepDeadline = &d
		}
	}

	s.purgeLocked(key)
	s.strings[key] = append([]byte(nil), value...)

	switch {
	case keepDeadline != nil:
		s.expires[key] = *keepDeadline
	case opts.TTL > 0:
		s.expires[key] = s.now().Add(opts.TTL)
	}

	return true, nil
}

// MSet implements MSET: each pair behaves like SET without options;
// last-wins for duplicate keys within the batch.
func (s *Store) MSet(pairs [][2][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, kv := range pairs {
		key := string(kv[0])
		s.purgeLocked(key)
		s.strings[key] = append([]byte(nil), kv[1]...)
	}
	return nil
}

// MGet implements MGET: touches each key and returns its string value,
// or marks it absent for a missing or non-string key. Never fails.
func (s *Store) MGet(keys []string) ([][]byte, []bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make([][]byte, len(keys))
	found := make([]bool, len(keys))

	for i, key := range keys {
		s.touchLocked(key)
		if s.kindOfLocked(key) == kindString {
			values[i] = s.strings[key]
			found[i] = true
		}
	}
	return values, found
}

// IncrBy implements INCR/DECR/INCRBY/DECRBY (delta already carries the
// sign): touch key, parse its current value (defaulting to "0") as a
// signed 64-bit decimal, add delta, and store the canonical decimal
// form. Fails wrongType on a non-string key, nonInteger on an
// unparseable current value or signed-64 overflow.
func (s *Store) IncrBy(key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		// no current value: defaults to 0
	case kindString:
		// validated below
	default:
		return 0, ErrWrongType
	}

	var current int64
	if raw, ok := s.strings[key]; ok {
		n, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, ErrNotInteger
		}
		current = n
	}

	sum, overflow := addOverflows(current, delta)
	if overflow {
		return 0, ErrNotInteger
	}

	s.strings[key] = []byte(strconv.FormatInt(sum, 10))
	return sum, nil
}

// addOverflows reports whether a+b overflows a signed 64-bit integer,
// returning the sum only when it does not.
func addOverflows(a, b int64) (sum int64, overflow bool) {
	sum = a + b
	if b > 0 && sum < a {
		return 0, true
	}
	if b < 0 && sum > a {
		return 0, true
	}
	return sum, false
}
