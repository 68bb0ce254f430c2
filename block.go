package pathoram

import "strings"

// EmptyName and EmptyPayload are the placeholder filename/payload a
// vacant block carries, matching the source's EMPTY_DATA = '0;0'.
const (
	EmptyName    = "0"
	EmptyPayload = "0;0"
)

// BlockState tags a Block as holding either plaintext or ciphertext. A
// Block is always exactly one of these — never both, never neither —
// which replaces the source's Python values that silently swing
// between str and bytes depending on which side of decrypt_bucket /
// encrypt_bucket last touched them.
type BlockState interface {
	isBlockState()
}

// Plain is a block's decrypted form: a name/data pair plus the leaf id
// it is currently assigned to.
type Plain struct {
	Name string
	Data string
	Leaf int
}

// Cipher is a block's at-rest form: payload and leaf id, each
// independently RSA-OAEP encrypted under the owning client's public
// key.
type Cipher struct {
	Payload []byte
	Leaf    []byte
}

func (Plain) isBlockState()  {}
func (Cipher) isBlockState() {}

// Payload renders a Plain block in the wire format "<name>;<data>".
func (p Plain) Payload() string {
	return p.Name + ";" + p.Data
}

// IsEmpty reports whether this is a vacant placeholder block.
func (p Plain) IsEmpty() bool {
	return p.Name == EmptyName && p.Data == EmptyName
}

// SplitPayload parses "<name>;<data>" on the first ';'. Malformed
// payloads (no separator) are an invalid-argument condition.
func SplitPayload(payload string) (name, data string, ok bool) {
	idx := strings.IndexByte(payload, ';')
	if idx < 0 {
		return "", "", false
	}
	return payload[:idx], payload[idx+1:], true
}

// Block is the atomic storage unit: a stable id (bucket key * bucket
// size + slot index) plus a tagged plaintext-or-ciphertext state.
type Block struct {
	BID   int
	State BlockState
}

// NewEmptyBlock creates a vacant, plaintext block pre-assigned to leaf
// (the assignment is cosmetic — see Bucket — but keeps leaked buckets
// looking valid).
func NewEmptyBlock(bid, leaf int) Block {
	return Block{BID: bid, State: Plain{Name: EmptyName, Data: EmptyName, Leaf: leaf}}
}

// Plaintext returns the block's Plain state, or false if it is
// currently Cipher.
func (b Block) Plaintext() (Plain, bool) {
	p, ok := b.State.(Plain)
	return p, ok
}

// Ciphertext returns the block's Cipher state, or false if it is
// currently Plain.
func (b Block) Ciphertext() (Cipher, bool) {
	c, ok := b.State.(Cipher)
	return c, ok
}

// IsEmptyPlain reports whether the block is currently plaintext and
// vacant.
func (b Block) IsEmptyPlain() bool {
	p, ok := b.Plaintext()
	return ok && p.IsEmpty()
}

func init() {
	registerBlockGobTypes()
}
