package pathoram

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"strconv"
)

// encryptBytes RSA-OAEP encrypts message under pub, MGF1(SHA-256), no
// label, matching the reference implementation's encrypt exactly.
func encryptBytes(pub *rsa.PublicKey, message []byte) ([]byte, error) {
	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, message, nil)
	if err != nil {
		return nil, ErrEncryptionFailed
	}
	return ct, nil
}

// decryptBytes RSA-OAEP decrypts ciphertext under priv.
func decryptBytes(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	pt, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return pt, nil
}

// encryptBlock turns a Plain block into its Cipher form. Payload and
// leaf id are independently encrypted, per spec.
func encryptBlock(pub *rsa.PublicKey, p Plain) (Cipher, error) {
	payloadCT, err := encryptBytes(pub, []byte(p.Payload()))
	if err != nil {
		return Cipher{}, err
	}
	leafCT, err := encryptBytes(pub, []byte(strconv.Itoa(p.Leaf)))
	if err != nil {
		return Cipher{}, err
	}
	return Cipher{Payload: payloadCT, Leaf: leafCT}, nil
}

// decryptBlock turns a Cipher block back into Plain. A payload with no
// ';' separator after decryption, or a leaf id that is not an integer,
// is reported as ErrDecryptionFailed like any other failed decryption;
// decryptBucket then leaves that block as Cipher and skips it.
func decryptBlock(priv *rsa.PrivateKey, c Cipher) (Plain, error) {
	payloadPT, err := decryptBytes(priv, c.Payload)
	if err != nil {
		return Plain{}, err
	}
	leafPT, err := decryptBytes(priv, c.Leaf)
	if err != nil {
		return Plain{}, err
	}
	name, data, ok := SplitPayload(string(payloadPT))
	if !ok {
		return Plain{}, ErrDecryptionFailed
	}
	leaf, err := strconv.Atoi(string(leafPT))
	if err != nil {
		return Plain{}, ErrDecryptionFailed
	}
	return Plain{Name: name, Data: data, Leaf: leaf}, nil
}

// encryptBucket re-encrypts every currently-Plain block in place under
// pub, leaving any already-Cipher block untouched. Returns a new
// Bucket value; the receiver is not mutated.
func encryptBucket(pub *rsa.PublicKey, skip bool, b Bucket) Bucket {
	out := b.Clone()
	if skip {
		return out
	}
	for i, blk := range out.Blocks {
		p, ok := blk.Plaintext()
		if !ok {
			continue
		}
		c, err := encryptBlock(pub, p)
		if err != nil {
			// Encryption of our own well-formed plaintext should not
			// fail; an invalid key pair is an invariant violation.
			panic(ErrInvariantViolated)
		}
		out.Blocks[i] = Block{BID: blk.BID, State: c}
	}
	return out
}

// decryptBucket attempts to decrypt every currently-Cipher block in
// place under priv. A block that fails to decrypt (foreign ciphertext,
// corruption) is left as Cipher and simply skipped — per spec, a
// single bad block must not abort the whole sweep. A block that is
// already Plain (e.g. a freshly constructed, never-yet-touched bucket)
// is left as-is. Returns a new Bucket value; the receiver is not
// mutated.
func decryptBucket(priv *rsa.PrivateKey, skip bool, b Bucket) Bucket {
	out := b.Clone()
	if skip {
		return out
	}
	for i, blk := range out.Blocks {
		c, ok := blk.Ciphertext()
		if !ok {
			continue
		}
		p, err := decryptBlock(priv, c)
		if err != nil {
			continue
		}
		out.Blocks[i] = Block{BID: blk.BID, State: p}
	}
	return out
}
