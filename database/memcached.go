package database

import (
	"os"

	"github.com/bradfitz/gomemcache/memcache"
)

var Mem *memcache.Client

// InitCache connects the caption cache via Memcached.
func InitCache() {
	Mem = memcache.New(os.Getenv("MEM_URL"))
}

// CacheSet permits to set a temporary value, on the cache
// via Memcached
func CacheSet(key string, value string, ttl int32) {
	if Mem == nil {
		return
	}

	Mem.Set(&memcache.Item{
		Key:        key,
		Value:      []byte(value),
		Expiration: ttl,
	})
}

// CacheGet returns the cached value, or an empty string when the key
// is absent or the cache is unavailable.
func CacheGet(key string) string {
	if Mem == nil {
		return ""
	}

	item, err := Mem.Get(key)
	if err != nil {
		return ""
	}

	return string(item.Value)
}
