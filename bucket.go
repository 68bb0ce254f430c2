package pathoram

import (
	"io"
	"math/big"

	cryptorand "crypto/rand"
)

// Bucket is a fixed-size ordered array of blocks attached to exactly
// one tree node. Size is fixed at construction; bids are unique within
// a bucket; at rest every block is Cipher.
type Bucket struct {
	Size   int
	Key    int
	IdxPt  int
	Blocks []Block
}

// NewBucket creates a bucket of the given size for tree node key, with
// every slot initialized to a vacant, plaintext block pre-assigned a
// uniformly random leaf drawn (with replacement) from reachableLeaves.
// rng defaults to crypto/rand.Reader when nil.
func NewBucket(key, size int, reachableLeaves []int, rng io.Reader) (Bucket, error) {
	if size <= 0 {
		return Bucket{}, ErrInvalidConfig
	}
	if rng == nil {
		rng = cryptorand.Reader
	}
	blocks := make([]Block, size)
	for i := range blocks {
		leaf := EmptyLeaf
		if len(reachableLeaves) > 0 {
			idx, err := randIndex(rng, len(reachableLeaves))
			if err != nil {
				return Bucket{}, err
			}
			leaf = reachableLeaves[idx]
		}
		blocks[i] = NewEmptyBlock(key*size+i, leaf)
	}
	return Bucket{Size: size, Key: key, Blocks: blocks}, nil
}

func randIndex(rng io.Reader, n int) (int, error) {
	v, err := cryptorand.Int(rng, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Clone returns a deep copy of the bucket.
func (b Bucket) Clone() Bucket {
	out := Bucket{Size: b.Size, Key: b.Key, IdxPt: b.IdxPt, Blocks: make([]Block, len(b.Blocks))}
	copy(out.Blocks, b.Blocks)
	return out
}

// AvailableSlots returns the indices of vacant (plaintext, empty) slots.
// The bucket must already be decrypted; a Cipher slot never counts as
// available.
func (b Bucket) AvailableSlots() []int {
	var idxs []int
	for i, blk := range b.Blocks {
		if blk.IsEmptyPlain() {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// WriteData stores (payload, leaf) into a vacant block if any exist
// (lowest index wins); otherwise it overwrites the block pointed to by
// the rotating index pointer and advances that pointer modulo Size.
// WriteData never fails: on a full bucket it silently discards the
// overwritten block's prior content — the caller (Client.Flush) is the
// regulator that keeps this from losing committed data in practice.
// The bucket must already be decrypted (all Blocks in Plain state).
func (b *Bucket) WriteData(payload string, leaf int) {
	name, data, ok := SplitPayload(payload)
	if !ok {
		name, data = EmptyName, EmptyName
	}
	if b.IdxPt >= b.Size {
		b.IdxPt = 0
	}
	idxs := b.AvailableSlots()
	var slot int
	if len(idxs) > 0 {
		slot = idxs[0]
	} else {
		slot = b.IdxPt
		b.IdxPt++
	}
	b.Blocks[slot] = Block{BID: b.Blocks[slot].BID, State: Plain{Name: name, Data: data, Leaf: leaf}}
}

// ClearByBID clears the block identified by bid to the vacant payload,
// leaving its leaf assignment untouched, and reports whether such a
// block was found.
func (b *Bucket) ClearByBID(bid int) bool {
	for i := range b.Blocks {
		if b.Blocks[i].BID == bid {
			p, ok := b.Blocks[i].Plaintext()
			leaf := EmptyLeaf
			if ok {
				leaf = p.Leaf
			}
			b.Blocks[i].State = Plain{Name: EmptyName, Data: EmptyName, Leaf: leaf}
			return true
		}
	}
	return false
}
