package pathoram

// EmptyLeaf marks a block as not yet assigned to any leaf.
const EmptyLeaf = -1

// ServerConfig holds the parameters needed to construct a Server.
type ServerConfig struct {
	// NumLeaves is the number of leaves the caller wants; it is rounded
	// up to the nearest power of two, exactly like the reference
	// server's num_leaves rounding.
	NumLeaves int

	// KeysDir is where the server's key pair is persisted/reloaded from.
	// Defaults to "./keys".
	KeysDir string

	// Recorder, if set, observes every ORead/OWrite/OWriteBack call by
	// node key. It never sees payloads, leaf ids, or filenames. Nil by
	// default (no-op).
	Recorder Recorder

	// Storage backs the bucket tree. Nil selects NewInMemoryStorage sized
	// to the rounded NumLeaves. A caller supplying a custom Storage (e.g.
	// storage/pebblestore) must size it for 2*L-1 nodes, where L is the
	// next power of two ≥ NumLeaves.
	Storage Storage
}

// Validate checks the configuration and fills in defaults. Returns a
// copy with defaults applied.
func (c ServerConfig) Validate() (ServerConfig, error) {
	if c.NumLeaves <= 0 {
		return c, ErrInvalidConfig
	}
	if c.KeysDir == "" {
		c.KeysDir = "./keys"
	}
	return c, nil
}

// ClientConfig holds the parameters needed to construct a Client.
type ClientConfig struct {
	// KeysDir is where the client's key pair is persisted/reloaded from.
	// Defaults to "./keys".
	KeysDir string

	// ConstantTime enables constant-time scanning of bucket contents
	// during the filename lookup in Read/Delete, at the cost of always
	// touching every block in every bucket on the path instead of
	// stopping at the first match.
	ConstantTime bool

	// DebugSkipEncryption disables block encryption so tests can inspect
	// plaintext bucket contents directly. Must never be set outside
	// tests: a client configured this way writes unencrypted payloads
	// to the server.
	DebugSkipEncryption bool
}

// Validate checks the configuration and fills in defaults.
func (c ClientConfig) Validate() (ClientConfig, error) {
	if c.KeysDir == "" {
		c.KeysDir = "./keys"
	}
	return c, nil
}

// Recorder observes bucket-level server traffic for audit/metrics
// purposes. Implementations must not attempt to interpret node content;
// Record is called with the node key only.
type Recorder interface {
	Record(op string, node int)
}

type noopRecorder struct{}

func (noopRecorder) Record(string, int) {}
