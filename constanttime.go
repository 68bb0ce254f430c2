package pathoram

import "crypto/subtle"

// nameEqual compares a candidate block name against filename. When
// constantTime is requested, the comparison runs in constant time (no
// early exit on length or byte mismatch) so that the filename scan in
// Client.readOrDelete does not leak which block, if any, matched
// through timing. The caller is still responsible for not
// short-circuiting the surrounding loop on a match when constantTime
// is set; this function only hardens the per-block comparison itself.
func nameEqual(constantTime bool, candidate, filename string) bool {
	if !constantTime {
		return candidate == filename
	}
	// Pad both names to a common length so the subtle call itself
	// doesn't fast-path on the length check.
	n := len(candidate)
	if len(filename) > n {
		n = len(filename)
	}
	a, b := make([]byte, n), make([]byte, n)
	copy(a, candidate)
	copy(b, filename)
	sameLen := subtle.ConstantTimeEq(int32(len(candidate)), int32(len(filename)))
	return subtle.ConstantTimeCompare(a, b)&sameLen == 1
}
