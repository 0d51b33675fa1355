package store

import (
	"fmt"
	"testing"
)

func allEngineImplementations() map[string]Engine {
	sharded4, _ := NewShardedStore(4)   //nolint:errcheck
	sharded16, _ := NewShardedStore(16) //nolint:errcheck
	sharded64, _ := NewShardedStore(64) //nolint:errcheck

	return map[string]Engine{
		"Store":           NewStore(),
		"ShardedStore_4":  sharded4,
		"ShardedStore_16": sharded16,
		"ShardedStore_64": sharded64,
	}
}

// BenchmarkEngine compares the coarse-mutex Store against ShardedStore
// at a few shard counts, grounded on the teacher's BenchmarkStorage.
func BenchmarkEngine(b *testing.B) {
	for name, e := range allEngineImplementations() {
		b.Run(fmt.Sprintf("%s/ReadOnly", name), func(b *testing.B) {
			e.Set("bench_key", []byte("value"), SetOptions{}) //nolint:errcheck
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					e.Get("bench_key")
				}
			})
		})

		b.Run(fmt.Sprintf("%s/Mixed90-10", name), func(b *testing.B) {
			const keyCount = 1000
			for i := 0; i < keyCount; i++ {
				e.Set(fmt.Sprintf("key%d", i), []byte("val"), SetOptions{}) //nolint:errcheck
			}
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					key := fmt.Sprintf("key%d", i%keyCount)
					if i%10 == 0 {
						e.Set(key, []byte("new_val"), SetOptions{}) //nolint:errcheck
					} else {
						e.Get(key)
					}
					i++
				}
			})
		})

		b.Run(fmt.Sprintf("%s/WriteHeavy", name), func(b *testing.B) {
			const keyCount = 1000
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					key := fmt.Sprintf("key%d", i%keyCount)
					if i%2 == 0 {
						e.Set(key, []byte("val"), SetOptions{}) //nolint:errcheck
					} else {
						e.Get(key)
					}
					i++
				}
			})
		})
	}
}
