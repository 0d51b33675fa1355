package store

// ZAdd implements ZADD: touch key, fail wrongType on a non-sorted-set,
// insert new members and reassign scores for existing ones, returning
// the count of newly inserted members (score-only updates don't count).
func (s *Store) ZAdd(key string, members []ZMember) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone, kindZSet:
	default:
		return 0, ErrWrongType
	}

	z, ok := s.zsets[key]
	if !ok {
		z = newZSetEntry()
		s.zsets[key] = z
	}

	var inserted int64
	for _, m := range members {
		if z.add(string(m.Member), m.Score) {
			inserted++
		}
	}
	return inserted, nil
}

// ZRange implements ZRANGE: touch key, fail wrongType on a non-sorted-
// set, empty on absent, otherwise the normalized inclusive slice in
// rank order.
func (s *Store) ZRange(key string, start, stop int64) ([]ZMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return nil, nil
	case kindZSet:
	default:
		return nil, ErrWrongType
	}

	z := s.zsets[key]
	from, to, ok := normalizeRange(start, stop, int64(z.len()))
	if !ok {
		return nil, nil
	}
	return z.slice(from, to), nil
}

// ZRank implements ZRANK: touch key, fail wrongType on a non-sorted-set,
// null on an absent key or member.
func (s *Store) ZRank(key string, member []byte) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return 0, false, nil
	case kindZSet:
	default:
		return 0, false, ErrWrongType
	}

	idx, ok := s.zsets[key].rankOf(string(member))
	if !ok {
		return 0, false, nil
	}
	return int64(idx), true, nil
}

// ZRem implements ZREM: touch key, fail wrongType on a non-sorted-set,
// return the number of members actually removed.
func (s *Store) ZRem(key string, members [][]byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return 0, nil
	case kindZSet:
	default:
		return 0, ErrWrongType
	}

	z := s.zsets[key]
	var removed int64
	for _, m := range members {
		if z.remove(string(m)) {
			removed++
		}
	}
	if z.len() == 0 {
		delete(s.zsets, key)
	}
	return removed, nil
}

// ZScore implements ZSCORE: touch key, fail wrongType on a non-sorted-
// set, null on an absent key or member.
func (s *Store) ZScore(key string, member []byte) (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return 0, false, nil
	case kindZSet:
	default:
		return 0, false, ErrWrongType
	}

	score, ok := s.zsets[key].scores[string(member)]
	return score, ok, nil
}

// ZCard implements ZCARD.
func (s *Store) ZCard(key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return 0, nil
	case kindZSet:
		return int64(s.zsets[key].len()), nil
	default:
		return 0, ErrWrongType
	}
}
