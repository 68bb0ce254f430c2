package pathoram

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"

	"github.com/google/uuid"
)

// hostEntry pairs a pinned server's fingerprint with an opaque id
// minted at pin time, so a Client.Debug trace can refer to "host X"
// across a session without ever naming a filename or leaf id.
type hostEntry struct {
	id uuid.UUID
}

// KnownHosts is the client-side trust store of server public keys,
// fingerprinted the way an SSH known_hosts file pins host keys.
// Registration against a server whose key is not already pinned adds
// it; a client that wants strict pinning should check Contains before
// Register and reject unknown fingerprints itself.
type KnownHosts struct {
	hosts map[string]hostEntry
}

// NewKnownHosts creates an empty known-hosts set.
func NewKnownHosts() *KnownHosts {
	return &KnownHosts{hosts: make(map[string]hostEntry)}
}

// Fingerprint returns the hex-encoded SHA-256 digest of pub's
// SubjectPublicKeyInfo encoding.
func Fingerprint(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:]), nil
}

// Add pins pub as a known host, minting a fresh correlation id for it
// if it is not already pinned, and returns that id.
func (k *KnownHosts) Add(pub *rsa.PublicKey) (uuid.UUID, error) {
	fp, err := Fingerprint(pub)
	if err != nil {
		return uuid.UUID{}, err
	}
	if entry, ok := k.hosts[fp]; ok {
		return entry.id, nil
	}
	entry := hostEntry{id: uuid.New()}
	k.hosts[fp] = entry
	return entry.id, nil
}

// Contains reports whether pub's fingerprint is already pinned.
func (k *KnownHosts) Contains(pub *rsa.PublicKey) bool {
	fp, err := Fingerprint(pub)
	if err != nil {
		return false
	}
	_, ok := k.hosts[fp]
	return ok
}

// HostID returns the correlation id pinned for pub, or false if pub is
// not a known host.
func (k *KnownHosts) HostID(pub *rsa.PublicKey) (uuid.UUID, bool) {
	fp, err := Fingerprint(pub)
	if err != nil {
		return uuid.UUID{}, false
	}
	entry, ok := k.hosts[fp]
	return entry.id, ok
}
