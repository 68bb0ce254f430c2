package pathoram

import (
	"bytes"
	"encoding/gob"
	"sync"
)

var registerOnce sync.Once

func registerBlockGobTypes() {
	registerOnce.Do(func() {
		gob.Register(Plain{})
		gob.Register(Cipher{})
	})
}

// EncodeBucket serializes a bucket (including whichever block states it
// currently holds) for storage backends that persist bytes rather than
// Go values, e.g. storage/pebblestore.
func EncodeBucket(b Bucket) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBucket is the inverse of EncodeBucket.
func DecodeBucket(data []byte) (Bucket, error) {
	var b Bucket
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&b); err != nil {
		return Bucket{}, err
	}
	return b, nil
}
