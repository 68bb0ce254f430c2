package pathoram

import "errors"

// Sentinel errors for the operation taxonomy. Recoverable conditions are
// returned through these; internal invariant violations are returned as
// ErrInvariantViolated and abort the operation (see client.go,
// eviction.go), except that encryptBucket panics with it when the
// client's own plaintext cannot be encrypted (see encryptor.go).
var (
	ErrInvalidConfig     = errors.New("pathoram: invalid configuration")
	ErrUnknownNode       = errors.New("pathoram: unknown node key")
	ErrNotFound          = errors.New("pathoram: filename not found")
	ErrTamperDetected    = errors.New("pathoram: signature verification failed")
	ErrUnknownHost       = errors.New("pathoram: server public key is not a known host")
	ErrEncryptionFailed  = errors.New("pathoram: block encryption failed")
	ErrDecryptionFailed  = errors.New("pathoram: block decryption failed")
	ErrInvariantViolated = errors.New("pathoram: internal invariant violated")
)
