package pathoram

import "testing"

func TestSignVerifyRoundTrip(t *testing.T) {
	priv, pub := testKeyPair(t)
	msg := []byte("f;data")

	sig, err := Sign(priv, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !Verify(pub, msg, sig) {
		t.Errorf("Verify() = false, want true")
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	priv, pub := testKeyPair(t)
	sig, err := Sign(priv, []byte("f;data"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if Verify(pub, []byte("f;tampered"), sig) {
		t.Errorf("Verify() = true for tampered message, want false")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	priv, _ := testKeyPair(t)
	_, otherPub := testKeyPair(t)
	sig, err := Sign(priv, []byte("f;data"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if Verify(otherPub, []byte("f;data"), sig) {
		t.Errorf("Verify() = true under wrong key, want false")
	}
}
