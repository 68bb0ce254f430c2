package pathoram

import (
	"crypto/rand"
	"crypto/rsa"
)

// Server hosts the bucket tree. It never decrypts a block, never
// inspects a filename, and never chooses where a block goes within a
// bucket beyond the vacancy/round-robin rule in Bucket.WriteData; every
// policy decision (which leaf, when to flush, what to keep) belongs to
// the Client.
type Server struct {
	tree       *BinaryTree
	storage    Storage
	bucketSize int
	priv       *rsa.PrivateKey
	pub        *rsa.PublicKey
	recorder   Recorder
}

// New constructs a Server per cfg: rounds NumLeaves up to a power of
// two, builds the bucket tree, loads or generates the server key pair,
// and initializes every node's bucket with bucketSize empty blocks,
// each pre-assigned a uniformly random leaf drawn from that node's
// reachable-leaf set.
func New(cfg ServerConfig) (*Server, error) {
	cfg, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	numLeaves := nextPowerOfTwo(cfg.NumLeaves)
	numNodes := 2*numLeaves - 1
	tree, err := BuildTree(numNodes)
	if err != nil {
		return nil, err
	}

	priv, pub, err := LoadOrGenerateKeyPair(cfg.KeysDir, "pr_key_server", "pb_key_server")
	if err != nil {
		return nil, err
	}

	storage := cfg.Storage
	if storage == nil {
		storage = NewInMemoryStorage(numNodes)
	}

	s := &Server{
		tree:       tree,
		storage:    storage,
		bucketSize: tree.Height() + 1,
		priv:       priv,
		pub:        pub,
		recorder:   cfg.Recorder,
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}

	if err := s.construct(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewInMemory is a convenience constructor for New with explicit
// in-memory storage, matching the reference server's default setup.
func NewInMemory(cfg ServerConfig) (*Server, error) {
	cfg.Storage = nil
	return New(cfg)
}

// nextPowerOfTwo rounds n up to the nearest power of two, n ≥ 1.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// construct fills every node's bucket with bucketSize empty blocks,
// each cosmetically assigned a random reachable leaf so that a leaked
// bucket never shows an obviously-unassigned block.
func (s *Server) construct() error {
	for node := 0; node < s.tree.NumNodes(); node++ {
		leaves, ok := s.tree.ReachableLeaves(node)
		if !ok {
			return ErrUnknownNode
		}
		bucket, err := NewBucket(node, s.bucketSize, leaves, rand.Reader)
		if err != nil {
			return err
		}
		if err := s.storage.WriteBucket(node, bucket); err != nil {
			return err
		}
	}
	return nil
}

// ORead returns the bucket at node_key. The server performs no
// decryption; the returned bucket holds whatever ciphertext it holds.
func (s *Server) ORead(node int) (Bucket, error) {
	if !s.tree.IsNode(node) {
		return Bucket{}, ErrUnknownNode
	}
	s.recorder.Record("oread", node)
	return s.storage.ReadBucket(node)
}

// OWriteBack overwrites the bucket at node with bucket. Used by the
// client to persist a bucket it read, mutated, and re-encrypted.
func (s *Server) OWriteBack(node int, bucket Bucket) error {
	if !s.tree.IsNode(node) {
		return ErrUnknownNode
	}
	s.recorder.Record("owriteback", node)
	return s.storage.WriteBucket(node, bucket)
}

// OWrite inserts an already-encrypted bucket at the root. This is the
// only entry point through which new data joins the tree; the caller
// (the Client, which alone holds the decryption key) is responsible
// for having produced bucket by decrypting the current root, running
// Bucket.WriteData, and re-encrypting.
func (s *Server) OWrite(bucket Bucket) error {
	root := 0
	s.recorder.Record("owrite", root)
	return s.storage.WriteBucket(root, bucket)
}

// PublicKey returns the server's public key for client registration.
func (s *Server) PublicKey() *rsa.PublicKey {
	return s.pub
}

// Tree returns the server's bucket tree topology.
func (s *Server) Tree() *BinaryTree {
	return s.tree
}

// BucketSize returns Z, the number of block slots per bucket.
func (s *Server) BucketSize() int {
	return s.bucketSize
}

// NumLeaves returns the number of leaves in the bucket tree.
func (s *Server) NumLeaves() int {
	return s.tree.NumLeaves()
}
