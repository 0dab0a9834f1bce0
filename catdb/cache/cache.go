package cache

import (
	"fmt"

	"github.com/golang/groupcache/lru"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/types/trackpoint"
)

// NewDedupePassLRUFunc returns a predicate that is false for a point
// equal to one of the last size points it saw, using a Least Recently Used (LRU) cache
// of point hashes. Devices sometimes log the same fix twice.
func NewDedupePassLRUFunc(size int) func(trackpoint.RawPoint) bool {
	if size <= 0 {
		size = params.DefaultDedupeCacheSize
	}
	var dedupeCache = lru.New(size)
	return func(p trackpoint.RawPoint) bool {
		hash, err := hashstructure.Hash(p, hashstructure.FormatV2, nil)
		if err != nil {
			return false
		}
		key := fmt.Sprintf("%d", hash)
		if _, ok := dedupeCache.Get(key); ok {
			return false
		}
		dedupeCache.Add(key, true)
		return true
	}
}

// Fingerprint hashes any set of values, eg. decoded input and the config it was analyzed with.
func Fingerprint(values ...any) (uint64, error) {
	return hashstructure.Hash(values, hashstructure.FormatV2, nil)
}
