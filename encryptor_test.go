package pathoram

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
)

func testKeyPair(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return priv, &priv.PublicKey
}

func TestEncryptDecryptBlockRoundTrip(t *testing.T) {
	priv, pub := testKeyPair(t)
	p := Plain{Name: "f", Data: "d", Leaf: 5}

	c, err := encryptBlock(pub, p)
	if err != nil {
		t.Fatalf("encryptBlock: %v", err)
	}
	got, err := decryptBlock(priv, c)
	if err != nil {
		t.Fatalf("decryptBlock: %v", err)
	}
	if got != p {
		t.Errorf("decryptBlock() = %+v, want %+v", got, p)
	}
}

func TestDecryptBlockRejectsForeignCiphertext(t *testing.T) {
	_, pub := testKeyPair(t)
	otherPriv, _ := testKeyPair(t)

	c, err := encryptBlock(pub, Plain{Name: "f", Data: "d", Leaf: 1})
	if err != nil {
		t.Fatalf("encryptBlock: %v", err)
	}
	if _, err := decryptBlock(otherPriv, c); err == nil {
		t.Errorf("decryptBlock with wrong key succeeded, want error")
	}
}

func TestDecryptBucketSkipsBadBlockWithoutAborting(t *testing.T) {
	priv, pub := testKeyPair(t)
	_, otherPub := testKeyPair(t)

	good, err := encryptBlock(pub, Plain{Name: "good", Data: "d1", Leaf: 1})
	if err != nil {
		t.Fatalf("encryptBlock: %v", err)
	}
	bad, err := encryptBlock(otherPub, Plain{Name: "bad", Data: "d2", Leaf: 2})
	if err != nil {
		t.Fatalf("encryptBlock: %v", err)
	}

	bucket := Bucket{
		Size: 2,
		Key:  0,
		Blocks: []Block{
			{BID: 0, State: good},
			{BID: 1, State: bad},
		},
	}

	out := decryptBucket(priv, false, bucket)

	p0, ok := out.Blocks[0].Plaintext()
	if !ok || p0.Name != "good" {
		t.Errorf("Blocks[0] = %+v, ok=%v, want decrypted good block", p0, ok)
	}
	if _, ok := out.Blocks[1].Plaintext(); ok {
		t.Errorf("Blocks[1] decrypted under the wrong key, want left as ciphertext")
	}
}

func TestEncryptBucketSkipWhenDebugFlagSet(t *testing.T) {
	_, pub := testKeyPair(t)
	bucket := Bucket{
		Size: 1,
		Blocks: []Block{
			{BID: 0, State: Plain{Name: "f", Data: "d", Leaf: 1}},
		},
	}
	out := encryptBucket(pub, true, bucket)
	if _, ok := out.Blocks[0].Plaintext(); !ok {
		t.Errorf("encryptBucket with skip=true encrypted anyway")
	}
}
