package store

// SAdd implements SADD: touch key, fail wrongType on a non-set, return
// the number of members actually new.
func (s *Store) SAdd(key string, members [][]byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone, kindSet:
	default:
		return 0, ErrWrongType
	}

	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}

	var added int64
	for _, m := range members {
		k := string(m)
		if _, exists := set[k]; !exists {
			set[k] = struct{}{}
			added++
		}
	}
	return added, nil
}

// SMembers implements SMEMBERS: touch key, fail wrongType on a non-set,
// empty on absent.
func (s *Store) SMembers(key string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return nil, nil
	case kindSet:
	default:
		return nil, ErrWrongType
	}

	set := s.sets[key]
	out := make([][]byte, 0, len(set))
	for m := range set {
		out = append(out, []byte(m))
	}
	return out, nil
}

// SIsMember implements SISMEMBER: touch key, fail wrongType on a
// non-set, false on an absent key.
func (s *Store) SIsMember(key string, member []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return false, nil
	case kindSet:
	default:
		return false, ErrWrongType
	}

	_, ok := s.sets[key][string(member)]
	return ok, nil
}

// SRem implements SREM: touch key, fail wrongType on a non-set, return
// the number actually removed.
func (s *Store) SRem(key string, members [][]byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return 0, nil
	case kindSet:
	default:
		return 0, ErrWrongType
	}

	set := s.sets[key]
	var removed int64
	for _, m := range members {
		k := string(m)
		if _, ok := set[k]; ok {
			delete(set, k)
			removed++
		}
	}
	if len(set) == 0 {
		delete(s.sets, key)
	}
	return removed, nil
}

// SCard implements SCARD.
func (s *Store) SCard(key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key)
	switch s.kindOfLocked(key) {
	case kindNone:
		return 0, nil
	case kindSet:
		return int64(len(s.sets[key])), nil
	default:
		return 0, ErrWrongType
	}
}

// SInter implements SINTER: touch every key; any present non-set fails
// wrongType; any absent key makes the whole intersection empty.
func (s *Store) SInter(keys []string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sets := make([]map[string]struct{}, len(keys))
	for i, key := range keys {
		s.touchLocked(key)
		switch s.kindOfLocked(key) {
		case kindNone:
			return nil, nil
		case kindSet:
			sets[i] = s.sets[key]
		default:
			return nil, ErrWrongType
		}
	}

	if len(sets) == 0 {
		return nil, nil
	}

	smallest := sets[0]
	for _, set := range sets[1:] {
		if len(set) < len(smallest) {
			smallest = set
		}
	}

	out := make([][]byte, 0, len(smallest))
	for m := range smallest {
		inAll := true
		for _, set := range sets {
			if _, ok := set[m]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, []byte(m))
		}
	}
	return out, nil
}

// SUnion implements SUNION: touch every key; any present non-set fails
// wrongType; absent keys contribute nothing.
func (s *Store) SUnion(keys []string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	union := make(map[string]struct{})
	for _, key := range keys {
		s.touchLocked(key)
		switch s.kindOfLocked(key) {
		case kindNone:
			continue
		case kindSet:
			for m := range s.sets[key] {
				union[m] = struct{}{}
			}
		default:
			return nil, ErrWrongType
		}
	}

	out := make([][]byte, 0, len(union))
	for m := range union {
		out = append(out, []byte(m))
	}
	return out, nil
}
