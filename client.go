package pathoram

import (
	"crypto/rand"
	"crypto/rsa"
	"io"

	"github.com/google/uuid"
)

// Client is the protocol core: it alone holds the decryption key, the
// position map, and the signature table. The server never sees any of
// these. A single Client must not be shared across goroutines without
// external synchronization.
type Client struct {
	priv *rsa.PrivateKey
	pub  *rsa.PublicKey

	posMap     PositionMap
	sigTable   SignatureTable
	knownHosts *KnownHosts

	minLeaf, maxLeaf int
	registered       bool
	lastNonce        uuid.UUID

	constantTime        bool
	debugSkipEncryption bool

	rng io.Reader

	// Debug, if set, is invoked before every server call this client
	// issues, naming the operation and node touched. Intended for tests
	// that assert on access-shape uniformity; never used by the
	// protocol itself.
	Debug func(op string, node int)
}

// NewClient constructs a Client per cfg, loading or generating its RSA
// key pair, with fresh empty position map, signature table, and
// known-hosts set.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	priv, pub, err := LoadOrGenerateKeyPair(cfg.KeysDir, "pr_key_client", "pb_key_client")
	if err != nil {
		return nil, err
	}
	return &Client{
		priv:                priv,
		pub:                 pub,
		posMap:              NewInMemoryPositionMap(),
		sigTable:            NewInMemorySignatureTable(),
		knownHosts:          NewKnownHosts(),
		constantTime:        cfg.ConstantTime,
		debugSkipEncryption: cfg.DebugSkipEncryption,
		rng:                 rand.Reader,
	}, nil
}

// Register pins server's public key as a known host (if not already
// pinned) and derives this client's leaf range from the server's tree.
// Each call mints a fresh nonce (retrievable via LastNonce) so a
// Debug trace can tell two registration attempts apart even when
// both target the same server. A client may register against at most
// one server's shape at a time; re-registering against a different
// tree size resets the range.
func (c *Client) Register(server *Server) error {
	c.lastNonce = uuid.New()
	if _, err := c.knownHosts.Add(server.PublicKey()); err != nil {
		return err
	}
	tree := server.Tree()
	c.minLeaf = tree.MinLeaf()
	c.maxLeaf = tree.MaxLeaf()
	c.registered = true
	return nil
}

// LastNonce returns the nonce minted by the most recent Register call.
func (c *Client) LastNonce() uuid.UUID {
	return c.lastNonce
}

func (c *Client) decryptBucketLocal(b Bucket) Bucket {
	return decryptBucket(c.priv, c.debugSkipEncryption, b)
}

func (c *Client) encryptBucketLocal(b Bucket) Bucket {
	return encryptBucket(c.pub, c.debugSkipEncryption, b)
}

func (c *Client) randomLeaf() (int, error) {
	span := c.maxLeaf - c.minLeaf + 1
	idx, err := randIndex(c.rng, span)
	if err != nil {
		return 0, err
	}
	return c.minLeaf + idx, nil
}

func (c *Client) trace(op string, node int) {
	if c.Debug != nil {
		c.Debug(op, node)
	}
}

// requireKnownHost fails closed if server's public key was never pinned
// via Register: the client must not run the protocol against a server
// it cannot verify as the one it registered with.
func (c *Client) requireKnownHost(server *Server) error {
	if !c.registered || !c.knownHosts.Contains(server.PublicKey()) {
		return ErrUnknownHost
	}
	return nil
}

// oreadDecrypt fetches node from server, decrypts it, and traces the
// call.
func (c *Client) oreadDecrypt(server *Server, node int) (Bucket, error) {
	c.trace("oread", node)
	raw, err := server.ORead(node)
	if err != nil {
		return Bucket{}, err
	}
	return c.decryptBucketLocal(raw), nil
}

// pathSweep performs the uniform root-to-leaf decrypt/re-encrypt pass
// shared by Write, Read, and Delete, invoking visit on each bucket
// along the way so the caller can scan/mutate it before it is
// re-encrypted and written back.
func (c *Client) pathSweep(server *Server, leaf int, visit func(bucket *Bucket) error) error {
	path, ok := server.Tree().RootPath(leaf)
	if !ok {
		return ErrInvariantViolated
	}
	for _, node := range path {
		bucket, err := c.oreadDecrypt(server, node)
		if err != nil {
			return err
		}
		if visit != nil {
			if err := visit(&bucket); err != nil {
				return err
			}
		}
		enc := c.encryptBucketLocal(bucket)
		c.trace("owriteback", node)
		if err := server.OWriteBack(node, enc); err != nil {
			return err
		}
	}
	return nil
}

// insertAtRoot re-inserts payload under leaf at the root, the single
// entry point through which new or relocated data joins the tree.
func (c *Client) insertAtRoot(server *Server, payload string, leaf int) error {
	root, err := c.oreadDecrypt(server, 0)
	if err != nil {
		return err
	}
	root.WriteData(payload, leaf)
	enc := c.encryptBucketLocal(root)
	c.trace("owrite", 0)
	return server.OWrite(enc)
}

// Write stores data under filename, drawing a fresh uniformly random
// leaf and signing the new payload.
func (c *Client) Write(server *Server, filename, data string) error {
	if err := c.requireKnownHost(server); err != nil {
		return err
	}
	leaf, err := c.randomLeaf()
	if err != nil {
		return err
	}
	c.posMap.Set(filename, leaf)

	if err := c.pathSweep(server, leaf, nil); err != nil {
		return err
	}
	if _, err := c.Flush(server); err != nil {
		return err
	}

	payload := filename + ";" + data
	if err := c.insertAtRoot(server, payload, leaf); err != nil {
		return err
	}

	sig, err := Sign(c.priv, []byte(payload))
	if err != nil {
		return err
	}
	c.sigTable.Set(filename, sig)
	return nil
}

// Read returns the data stored under filename, or ErrNotFound if no
// such file is known or if it could not be located on its assigned
// path (e.g. lost to eviction overflow).
func (c *Client) Read(server *Server, filename string) (string, error) {
	data, found, err := c.readOrDelete(server, filename, false)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotFound
	}
	return data, nil
}

// Delete removes filename, failing with ErrNotFound if it does not
// exist.
func (c *Client) Delete(server *Server, filename string) error {
	_, found, err := c.readOrDelete(server, filename, true)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	c.posMap.Delete(filename)
	c.sigTable.Delete(filename)
	return nil
}

func (c *Client) readOrDelete(server *Server, filename string, deleteOp bool) (string, bool, error) {
	if err := c.requireKnownHost(server); err != nil {
		return "", false, err
	}
	leaf, ok := c.posMap.Get(filename)
	if !ok {
		return "", false, ErrNotFound
	}

	var (
		captured string
		found    bool
	)

	visit := func(bucket *Bucket) error {
		for _, blk := range bucket.Blocks {
			p, ok := blk.Plaintext()
			if !ok || p.IsEmpty() {
				continue
			}
			if !nameEqual(c.constantTime, p.Name, filename) {
				continue
			}
			sig, sok := c.sigTable.Get(filename)
			if !sok || !Verify(c.pub, []byte(p.Payload()), sig) {
				return ErrTamperDetected
			}
			captured = p.Data
			found = true
			bucket.ClearByBID(blk.BID)

			var newLeaf int
			var newPayload string
			if deleteOp {
				newLeaf = leaf
				newPayload = EmptyPayload
			} else {
				fresh, err := c.randomLeaf()
				if err != nil {
					return err
				}
				newLeaf = fresh
				c.posMap.Set(filename, fresh)
				newPayload = p.Payload()
				sig2, err := Sign(c.priv, []byte(newPayload))
				if err != nil {
					return err
				}
				c.sigTable.Set(filename, sig2)
			}
			// A match found in the root bucket itself must be re-inserted
			// into this same in-flight bucket rather than via a separate
			// insertAtRoot call: pathSweep has not yet written this bucket
			// back to the server, so an independent read-modify-write of
			// node 0 here would be clobbered by pathSweep's own writeback
			// once visit returns.
			if bucket.Key == 0 {
				bucket.WriteData(newPayload, newLeaf)
			} else if err := c.insertAtRoot(server, newPayload, newLeaf); err != nil {
				return err
			}
			if !c.constantTime {
				break
			}
		}
		return nil
	}

	if err := c.pathSweep(server, leaf, visit); err != nil {
		return "", false, err
	}
	if _, err := c.Flush(server); err != nil {
		return "", false, err
	}

	return captured, found, nil
}

// Locate returns, for each name in filenames, its current position-map
// leaf, or EmptyLeaf if unknown. It performs no server calls and is
// meant for tests and debugging, mirroring the reference client's
// bucket_bfs inspection helper.
func (c *Client) Locate(filenames []string) []int {
	out := make([]int, len(filenames))
	for i, name := range filenames {
		if leaf, ok := c.posMap.Get(name); ok {
			out[i] = leaf
		} else {
			out[i] = EmptyLeaf
		}
	}
	return out
}
