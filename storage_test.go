package pathoram

import "testing"

func TestInMemoryStorageReadWriteRoundTrip(t *testing.T) {
	s := NewInMemoryStorage(4)

	b, err := NewBucket(2, 3, []int{0, 1, 2, 3}, nil)
	if err != nil {
		t.Fatalf("NewBucket: %v", err)
	}
	if err := s.WriteBucket(2, b); err != nil {
		t.Fatalf("WriteBucket: %v", err)
	}

	got, err := s.ReadBucket(2)
	if err != nil {
		t.Fatalf("ReadBucket: %v", err)
	}
	if len(got.Blocks) != 3 {
		t.Errorf("len(Blocks) = %d, want 3", len(got.Blocks))
	}
	if got.Key != 2 {
		t.Errorf("Key = %d, want 2", got.Key)
	}
}

func TestInMemoryStorageReadBucketIsACopy(t *testing.T) {
	s := NewInMemoryStorage(1)

	b, err := NewBucket(0, 2, []int{0, 1}, nil)
	if err != nil {
		t.Fatalf("NewBucket: %v", err)
	}
	if err := s.WriteBucket(0, b); err != nil {
		t.Fatalf("WriteBucket: %v", err)
	}

	got, err := s.ReadBucket(0)
	if err != nil {
		t.Fatalf("ReadBucket: %v", err)
	}
	got.WriteData("mutated;payload", 1)

	again, err := s.ReadBucket(0)
	if err != nil {
		t.Fatalf("ReadBucket: %v", err)
	}
	for _, blk := range again.Blocks {
		p, ok := blk.Plaintext()
		if ok && p.Name == "mutated" {
			t.Fatalf("mutating a ReadBucket result leaked into storage")
		}
	}
}

func TestInMemoryStorageUnknownNode(t *testing.T) {
	s := NewInMemoryStorage(2)

	if _, err := s.ReadBucket(5); err != ErrUnknownNode {
		t.Errorf("ReadBucket(5) error = %v, want ErrUnknownNode", err)
	}
	if err := s.WriteBucket(-1, Bucket{}); err != ErrUnknownNode {
		t.Errorf("WriteBucket(-1) error = %v, want ErrUnknownNode", err)
	}
}

func TestInMemoryStorageNumNodes(t *testing.T) {
	s := NewInMemoryStorage(7)
	if got := s.NumNodes(); got != 7 {
		t.Errorf("NumNodes() = %d, want 7", got)
	}
}
