package pathoram

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
)

// pssOptions fixes RSASSA-PSS to MGF1(SHA-256), salt length = maximum,
// matching the reference implementation's sign/verify exactly.
var pssOptions = &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthAuto, Hash: crypto.SHA256}

// Sign produces an RSASSA-PSS signature over message under priv.
func Sign(priv *rsa.PrivateKey, message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	return rsa.SignPSS(rand.Reader, priv, crypto.SHA256, digest[:], pssOptions)
}

// Verify reports whether sig is a valid RSASSA-PSS signature over
// message under pub.
func Verify(pub *rsa.PublicKey, message, sig []byte) bool {
	digest := sha256.Sum256(message)
	return rsa.VerifyPSS(pub, crypto.SHA256, digest[:], sig, pssOptions) == nil
}
