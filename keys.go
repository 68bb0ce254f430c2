package pathoram

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

const rsaKeyBits = 4096

// LoadOrGenerateKeyPair loads an RSA-4096 key pair from
// dir/privName.pem and dir/pubName.pem if both exist, PKCS8/SubjectPublicKeyInfo
// PEM, unencrypted; otherwise it generates a fresh pair (public exponent
// 65537) and persists it there for subsequent calls. This mirrors the
// reference implementation's generate_key_pair: generate once, reload
// forever after.
func LoadOrGenerateKeyPair(dir, privName, pubName string) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privPath := filepath.Join(dir, privName+".pem")
	pubPath := filepath.Join(dir, pubName+".pem")

	if fileExists(privPath) && fileExists(pubPath) {
		return loadKeyPair(privPath, pubPath)
	}

	priv, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, nil, fmt.Errorf("pathoram: generate key pair: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("pathoram: create keys dir: %w", err)
	}
	if err := writePrivateKeyPEM(privPath, priv); err != nil {
		return nil, nil, err
	}
	if err := writePublicKeyPEM(pubPath, &priv.PublicKey); err != nil {
		return nil, nil, err
	}

	return priv, &priv.PublicKey, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func loadKeyPair(privPath, pubPath string) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privBytes, err := os.ReadFile(privPath)
	if err != nil {
		return nil, nil, fmt.Errorf("pathoram: read private key: %w", err)
	}
	priv, err := parsePrivateKeyPEM(privBytes)
	if err != nil {
		return nil, nil, err
	}

	pubBytes, err := os.ReadFile(pubPath)
	if err != nil {
		return nil, nil, fmt.Errorf("pathoram: read public key: %w", err)
	}
	pub, err := parsePublicKeyPEM(pubBytes)
	if err != nil {
		return nil, nil, err
	}

	return priv, pub, nil
}

func writePrivateKeyPEM(path string, priv *rsa.PrivateKey) error {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return fmt.Errorf("pathoram: marshal private key: %w", err)
	}
	block := &pem.Block{Type: "PRIVATE KEY", Bytes: der}
	return os.WriteFile(path, pem.EncodeToMemory(block), 0o600)
}

func writePublicKeyPEM(path string, pub *rsa.PublicKey) error {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return fmt.Errorf("pathoram: marshal public key: %w", err)
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return os.WriteFile(path, pem.EncodeToMemory(block), 0o644)
}

func parsePrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("pathoram: no PEM block in private key file")
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("pathoram: parse private key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("pathoram: private key is not RSA")
	}
	return rsaKey, nil
}

func parsePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("pathoram: no PEM block in public key file")
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("pathoram: parse public key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("pathoram: public key is not RSA")
	}
	return rsaKey, nil
}
