package episode

import (
	"bytes"
	"fmt"
)

// Key layout:
//
//	ep:{id}:meta        → msgpack Meta
//	ep:{id}:rec:{seq}   → msgpack Record, seq zero-padded to 12 digits
//	ep:{id}:seq         → badger sequence counter
//
// Zero-padding keeps lexicographic key order equal to append order, so
// a prefix scan replays an episode without sorting.
const keyPrefix = "ep:"

func metaKey(id string) []byte {
	return []byte(keyPrefix + id + ":meta")
}

func recordKey(id string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:rec:%012d", keyPrefix, id, seq))
}

func recordPrefix(id string) []byte {
	return []byte(keyPrefix + id + ":rec:")
}

func seqKey(id string) []byte {
	return []byte(keyPrefix + id + ":seq")
}

func isMetaKey(key []byte) bool {
	return bytes.HasSuffix(key, []byte(":meta"))
}
