package pathoram

import "testing"

func TestNewEmptyBlockIsVacantPlain(t *testing.T) {
	b := NewEmptyBlock(7, 3)

	if b.BID != 7 {
		t.Errorf("BID = %d, want 7", b.BID)
	}
	p, ok := b.Plaintext()
	if !ok {
		t.Fatalf("Plaintext() ok = false, want true")
	}
	if !p.IsEmpty() {
		t.Errorf("IsEmpty() = false, want true")
	}
	if p.Leaf != 3 {
		t.Errorf("Leaf = %d, want 3", p.Leaf)
	}
	if !b.IsEmptyPlain() {
		t.Errorf("IsEmptyPlain() = false, want true")
	}
	if _, ok := b.Ciphertext(); ok {
		t.Errorf("Ciphertext() ok = true on a plaintext block")
	}
}

func TestPlainPayloadRoundTripsThroughSplitPayload(t *testing.T) {
	p := Plain{Name: "notes.txt", Data: "hello;world", Leaf: 5}

	name, data, ok := SplitPayload(p.Payload())
	if !ok {
		t.Fatalf("SplitPayload(%q) ok = false", p.Payload())
	}
	if name != p.Name {
		t.Errorf("name = %q, want %q", name, p.Name)
	}
	if data != p.Data {
		t.Errorf("data = %q, want %q", data, p.Data)
	}
}

func TestSplitPayloadRejectsMissingSeparator(t *testing.T) {
	if _, _, ok := SplitPayload("no-separator-here"); ok {
		t.Errorf("SplitPayload on malformed payload ok = true, want false")
	}
}

func TestIsEmptyOnlyMatchesExactPlaceholder(t *testing.T) {
	cases := []struct {
		name string
		p    Plain
		want bool
	}{
		{"vacant", Plain{Name: EmptyName, Data: EmptyName}, true},
		{"named-zero-data", Plain{Name: "file", Data: EmptyName}, false},
		{"zero-name-real-data", Plain{Name: EmptyName, Data: "x"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.IsEmpty(); got != tc.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBlockCiphertextAccessor(t *testing.T) {
	b := Block{BID: 1, State: Cipher{Payload: []byte("ct"), Leaf: []byte("lt")}}

	c, ok := b.Ciphertext()
	if !ok {
		t.Fatalf("Ciphertext() ok = false, want true")
	}
	if string(c.Payload) != "ct" || string(c.Leaf) != "lt" {
		t.Errorf("Ciphertext() = %+v, unexpected contents", c)
	}
	if _, ok := b.Plaintext(); ok {
		t.Errorf("Plaintext() ok = true on a ciphertext block")
	}
	if b.IsEmptyPlain() {
		t.Errorf("IsEmptyPlain() = true on a ciphertext block")
	}
}
