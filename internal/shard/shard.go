package shard

import "hash/fnv"

// DefaultCount is used when a non-positive shard count is requested.
const DefaultCount = 16

// Count normalizes a requested shard count.
func Count(n int) int {
	if n <= 0 {
		return DefaultCount
	}
	return n
}

// ForKey maps key onto one of shardCount shards using FNV-1a.
func ForKey(key string, shardCount int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(shardCount))
}
