package fol

import (
	"hash/fnv"
)

func fnvHashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// combineOrdered folds a sequence of hashes order-sensitively.
func combineOrdered(hashes ...uint64) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)
	for _, v := range hashes {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// combineCommutative folds exactly two hashes in an order-independent way,
// as required for Conjunction/Disjunction/Equivalence nodes (spec.md §3):
// sort the two child hashes before combining.
func combineCommutative(a, b uint64) uint64 {
	if a > b {
		a, b = b, a
	}
	return combineOrdered(a, b)
}
