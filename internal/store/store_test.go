package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return newStoreWithClock(clock.Now), clock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestStore_GetSet(t *testing.T) {
	s, _ := newTestStore(t)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	changed, err := s.Set("k", []byte("v"), SetOptions{})
	require.NoError(t, err)
	assert.True(t, changed)

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestStore_TypeExclusivity(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.LPush("k", [][]byte{[]byte("a")})
	require.NoError(t, err)

	_, _, err = s.Get("k")
	assert.ErrorIs(t, err, ErrWrongType)

	_, err = s.HSet("k", []byte("f"), []byte("v"))
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestStore_SetNXXX(t *testing.T) {
	s, _ := newTestStore(t)

	ok, err := s.Set("k", []byte("v1"), SetOptions{XX: true})
	require.NoError(t, err)
	assert.False(t, ok, "XX must fail against an absent key")

	ok, err = s.Set("k", []byte("v1"), SetOptions{NX: true})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Set("k", []byte("v2"), SetOptions{NX: true})
	require.NoError(t, err)
	assert.False(t, ok, "NX must fail against an existing key")

	ok, err = s.Set("k", []byte("v3"), SetOptions{XX: true})
	require.NoError(t, err)
	assert.True(t, ok)

	v, _, _ := s.Get("k")
	assert.Equal(t, []byte("v3"), v)
}

func TestStore_SetTTLAndExpiry(t *testing.T) {
	s, clock := newTestStore(t)

	_, err := s.Set("k", []byte("v"), SetOptions{TTL: 10 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.TTL("k"))

	clock.Advance(11 * time.Second)

	_, ok, _ := s.Get("k")
	assert.False(t, ok, "key must be gone once its deadline has passed")
	assert.Equal(t, int64(-2), s.TTL("k"))
}

func TestStore_SetKeepTTL(t *testing.T) {
	s, clock := newTestStore(t)

	_, err := s.Set("k", []byte("v1"), SetOptions{TTL: 100 * time.Second})
	require.NoError(t, err)

	_, err = s.Set("k", []byte("v2"), SetOptions{KeepTTL: true})
	require.NoError(t, err)
	assert.Equal(t, int64(100), s.TTL("k"))

	clock.Advance(1 * time.Second)
	_, err = s.Set("k", []byte("v3"), SetOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), s.TTL("k"), "a plain SET must drop any existing TTL")
}

func TestStore_TTLCodes(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, int64(-2), s.TTL("missing"))

	_, err := s.Set("k", []byte("v"), SetOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), s.TTL("k"))
}

func TestStore_ExpireDeletesOnNonPositive(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Set("k", []byte("v"), SetOptions{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), s.Expire("k", 0))
	_, ok, _ := s.Get("k")
	assert.False(t, ok)

	assert.Equal(t, int64(0), s.Expire("missing", 10))
}

func TestStore_IncrByOverflow(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Set("k", []byte("9223372036854775807"), SetOptions{})
	require.NoError(t, err)

	_, err = s.IncrBy("k", 1)
	assert.ErrorIs(t, err, ErrNotInteger)
}

func TestStore_IncrByDefaultsToZero(t *testing.T) {
	s, _ := newTestStore(t)

	v, err := s.IncrBy("counter", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	v, err = s.IncrBy("counter", -2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}

func TestStore_MSetMGet(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.MSet([][2][]byte{
		{[]byte("a"), []byte("1")},
		{[]byte("b"), []byte("2")},
		{[]byte("a"), []byte("3")},
	})
	require.NoError(t, err)

	values, found := s.MGet([]string{"a", "b", "missing"})
	require.Equal(t, []bool{true, true, false}, found)
	assert.Equal(t, []byte("3"), values[0], "last pair wins for duplicate keys in one MSET")
	assert.Equal(t, []byte("2"), values[1])
}

func TestStore_ListOps(t *testing.T) {
	s, _ := newTestStore(t)

	n, err := s.LPush("l", [][]byte{[]byte("a"), []byte("b"), []byte("c")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	vals, err := s.LRange("l", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("c"), []byte("b"), []byte("a")}, vals)

	n, err = s.RPush("l", [][]byte{[]byte("z")})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	vals, err = s.LRange("l", -1, -1)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("z")}, vals)
}

func TestStore_HashOps(t *testing.T) {
	s, _ := newTestStore(t)

	isNew, err := s.HSet("h", []byte("f1"), []byte("v1"))
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = s.HSet("h", []byte("f1"), []byte("v2"))
	require.NoError(t, err)
	assert.False(t, isNew)

	v, ok, err := s.HGet("h", []byte("f1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), v)

	removed, err := s.HDel("h", [][]byte{[]byte("f1")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	n, err := s.HLen("h")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "an emptied hash must not linger as kindHash")
}

func TestStore_SetFamilyOps(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.SAdd("s1", [][]byte{[]byte("a"), []byte("b"), []byte("c")})
	require.NoError(t, err)
	_, err = s.SAdd("s2", [][]byte{[]byte("b"), []byte("c"), []byte("d")})
	require.NoError(t, err)

	inter, err := s.SInter([]string{"s1", "s2"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, bytesToStrings(inter))

	union, err := s.SUnion([]string{"s1", "s2"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, bytesToStrings(union))
}

func TestStore_ZSetRankOrdering(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.ZAdd("z", []ZMember{
		{Member: []byte("a"), Score: 3},
		{Member: []byte("b"), Score: 1},
		{Member: []byte("c"), Score: 2},
	})
	require.NoError(t, err)

	members, err := s.ZRange("z", 0, -1)
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "b", string(members[0].Member))
	assert.Equal(t, "c", string(members[1].Member))
	assert.Equal(t, "a", string(members[2].Member))

	rank, ok, err := s.ZRank("z", []byte("c"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), rank)

	_, err = s.ZAdd("z", []ZMember{{Member: []byte("b"), Score: 5}})
	require.NoError(t, err)
	rank, _, _ = s.ZRank("z", []byte("b"))
	assert.Equal(t, int64(2), rank, "re-scoring a member must reposition it")
}

func TestStore_KeysGlob(t *testing.T) {
	s, _ := newTestStore(t)

	for _, k := range []string{"abc", "abd", "abbc", "xyz"} {
		_, err := s.Set(k, []byte("v"), SetOptions{})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"abc", "abd"}, s.Keys("ab?"))
	assert.Equal(t, []string{"abbc", "abc"}, s.Keys("ab[bc]*"))
}

func bytesToStrings(vals [][]byte) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
