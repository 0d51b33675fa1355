package store

// HSet implements HSET: touch key, fail wrongType on a non-hash, insert
// or update the field, reporting whether the field was new.
func (s *Store) HSet(key string, field, value []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone, kindHash:
	default:
		return false, ErrWrongType
	}

	h, ok := s.hashes[key]
	if !ok {
		h = make(map[string][]byte)
		s.hashes[key] = h
	}

	_, existed := h[string(field)]
	h[string(field)] = append([]byte(nil), value...)
	return !existed, nil
}

// HGet implements HGET: touch key, fail wrongType on a non-hash, null
// on an absent key or field.
func (s *Store) HGet(key string, field []byte) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return nil, false, nil
	case kindHash:
	default:
		return nil, false, ErrWrongType
	}

	v, ok := s.hashes[key][string(field)]
	return v, ok, nil
}

// HDel implements HDEL: touch key, fail wrongType on a non-hash, return
// the number of fields actually present and removed.
func (s *Store) HDel(key string, fields [][]byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return 0, nil
	case kindHash:
	default:
		return 0, ErrWrongType
	}

	h := s.hashes[key]
	var removed int64
	for _, f := range fields {
		if _, ok := h[string(f)]; ok {
			delete(h, string(f))
			removed++
		}
	}
	if len(h) == 0 {
		delete(s.hashes, key)
	}
	return removed, nil
}

// HExists implements HEXISTS: touch key, fail wrongType on a non-hash,
// false on an absent key or field.
func (s *Store) HExists(key string, field []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return false, nil
	case kindHash:
	default:
		return false, ErrWrongType
	}

	_, ok := s.hashes[key][string(field)]
	return ok, nil
}

// HGetAll implements HGETALL: touch key, fail wrongType on a non-hash,
// return the interleaved [field, value, field, value, ...] sequence in
// the map's (unspecified) iteration order.
func (s *Store) HGetAll(key string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return nil, nil
	case kindHash:
	default:
		return nil, ErrWrongType
	}

	h := s.hashes[key]
	out := make([][]byte, 0, len(h)*2)
	for f, v := range h {
		out = append(out, []byte(f), v)
	}
	return out, nil
}

// HKeys implements HKEYS.
func (s *Store) HKeys(key string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return nil, nil
	case kindHash:
	default:
		return nil, ErrWrongType
	}

	h := s.hashes[key]
	out := make([][]byte, 0, len(h))
	for f := range h {
		out = append(out, []byte(f))
	}
	return out, nil
}

// HVals implements HVALS.
func (s *Store) HVals(key string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return nil, nil
	case kindHash:
	default:
		return nil, ErrWrongType
	}

	h := s.hashes[key]
	out := make([][]byte, 0, len(h))
	for _, v := range h {
		out = append(out, v)
	}
	return out, nil
}

// HLen implements HLEN.
func (s *Store) HLen(key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return 0, nil
	case kindHash:
		return int64(len(s.hashes[key])), nil
	default:
		return 0, ErrWrongType
	}
}
