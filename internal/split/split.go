// Package split fingerprints the clades of a bipartition table and compares
// trees by the clades they share.
package split

import (
	"encoding/binary"
	"fmt"
	"slices"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/vk/cladegrid/internal/bipartition"
)

// Fingerprint hashes an ascending tip set. Equal sets always hash equally;
// the order of tips must already be canonical.
func Fingerprint(tips []int) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, tip := range tips {
		binary.LittleEndian.PutUint64(buf[:], uint64(tip))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// FingerprintLabels hashes a clade given by tip names. The names are sorted
// first, so trees that number the same taxa differently agree.
func FingerprintLabels(names []string) uint64 {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	d := xxhash.New()
	for _, name := range sorted {
		_, _ = d.WriteString(name)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

// Hex renders a fingerprint as 16 lowercase hex digits.
func Hex(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

// Set holds the fingerprints of a tree's non-trivial clades: those with more
// than one tip but not every tip.
type Set map[uint64]struct{}

// FromTable collects the non-trivial clades of every internal node.
// Unary nodes repeating a child's clade count once.
func FromTable(t *bipartition.Table) Set {
	s := make(Set)
	for id := t.NTips() + 1; id <= t.Len(); id++ {
		tips := t.Of(id)
		if len(tips) < 2 || len(tips) >= t.NTips() {
			continue
		}
		s[Fingerprint(tips)] = struct{}{}
	}
	return s
}

// FromTableLabels is FromTable keyed by tip names instead of tip ids.
// labels[i] names tip i+1 and must cover every tip.
func FromTableLabels(t *bipartition.Table, labels []string) Set {
	s := make(Set)
	names := make([]string, 0, t.NTips())
	for id := t.NTips() + 1; id <= t.Len(); id++ {
		tips := t.Of(id)
		if len(tips) < 2 || len(tips) >= t.NTips() {
			continue
		}
		names = names[:0]
		for _, tip := range tips {
			names = append(names, labels[tip-1])
		}
		s[FingerprintLabels(names)] = struct{}{}
	}
	return s
}

// SameLabels reports whether two trees name the same set of tips.
func SameLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := slices.Clone(a), slices.Clone(b)
	slices.Sort(sa)
	slices.Sort(sb)
	return slices.Equal(sa, sb)
}

// Sorted returns the fingerprints in ascending order.
func (s Set) Sorted() []uint64 {
	out := make([]uint64, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Shared counts the clades present in both sets.
func Shared(a, b Set) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// RobinsonFoulds returns the number of clades found in exactly one of the
// two sets. Both trees must be labelled over the same tips.
func RobinsonFoulds(a, b Set) int {
	return len(a) + len(b) - 2*Shared(a, b)
}
