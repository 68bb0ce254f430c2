package pebblestore

import (
	"testing"

	"github.com/oblivtree/pathoram"
)

func TestReadWriteBucketRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	bucket := pathoram.Bucket{
		Size: 2,
		Key:  5,
		Blocks: []pathoram.Block{
			pathoram.NewEmptyBlock(10, 3),
			pathoram.NewEmptyBlock(11, 4),
		},
	}

	if err := store.WriteBucket(5, bucket); err != nil {
		t.Fatalf("WriteBucket: %v", err)
	}
	got, err := store.ReadBucket(5)
	if err != nil {
		t.Fatalf("ReadBucket: %v", err)
	}
	if len(got.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(got.Blocks))
	}
	p, ok := got.Blocks[0].Plaintext()
	if !ok || !p.IsEmpty() {
		t.Errorf("Blocks[0] = %+v, want vacant plain block", p)
	}
}

func TestReadBucketUnknownNode(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.ReadBucket(99); err != pathoram.ErrUnknownNode {
		t.Errorf("ReadBucket(unknown) error = %v, want ErrUnknownNode", err)
	}
}
