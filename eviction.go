package pathoram

// Flush is the engine that prevents root starvation and spreads blocks
// toward their assigned leaves, while preserving access-pattern
// uniformity. For every level from root to leaves it samples two nodes
// independently and uniformly with replacement, decrypts each distinct
// sampled bucket, picks one block from each sample, and pushes it down
// by one level. It returns the payload of every block that was pushed
// off a leaf (an "eviction" in the strict sense); this is observable
// only to the client, never to the server.
func (c *Client) Flush(server *Server) ([]string, error) {
	tree := server.Tree()
	var evicted []string

	for _, level := range tree.Levels() {
		idx1, err := randIndex(c.rng, len(level))
		if err != nil {
			return nil, err
		}
		idx2, err := randIndex(c.rng, len(level))
		if err != nil {
			return nil, err
		}
		node1, node2 := level[idx1], level[idx2]

		nodes := []int{node1}
		if node2 != node1 {
			nodes = append(nodes, node2)
		}

		buckets := make(map[int]*Bucket, len(nodes))
		for _, node := range nodes {
			c.trace("oread", node)
			raw, err := server.ORead(node)
			if err != nil {
				return nil, err
			}
			dec := c.decryptBucketLocal(raw)
			buckets[node] = &dec
		}

		for _, node := range nodes {
			b := buckets[node]
			blockIdx, err := randIndex(c.rng, len(b.Blocks))
			if err != nil {
				return nil, err
			}
			data, err := c.pushDown(server, b, blockIdx)
			if err != nil {
				return nil, err
			}
			if data != "" {
				evicted = append(evicted, data)
			}
		}

		for _, node := range nodes {
			enc := c.encryptBucketLocal(*buckets[node])
			c.trace("owriteback", node)
			if err := server.OWriteBack(node, enc); err != nil {
				return nil, err
			}
		}
	}

	return evicted, nil
}

// pushDown moves the block at bucket.Blocks[blockIdx] one level closer
// to its assigned leaf, mutating bucket in place (the caller is
// responsible for re-encrypting and writing bucket back). It returns a
// non-empty payload only when the block was sitting at a leaf and thus
// could not descend further.
//
// The children are not touched symmetrically: an empty block reads and
// re-encrypts both children, while a non-empty block reads and
// re-encrypts only the child on its assigned leaf's path and leaves the
// sibling untouched.
func (c *Client) pushDown(server *Server, bucket *Bucket, blockIdx int) (string, error) {
	tree := server.Tree()
	node := bucket.Key

	blk := bucket.Blocks[blockIdx]
	p, ok := blk.Plaintext()
	if !ok {
		return "", ErrInvariantViolated
	}

	if tree.IsLeaf(node) {
		if p.IsEmpty() {
			return "", nil
		}
		payload := p.Payload()
		bucket.ClearByBID(blk.BID)
		return payload, nil
	}

	left, right, ok := tree.Children(node)
	if !ok {
		return "", ErrInvariantViolated
	}

	if p.IsEmpty() {
		// No data moves, but both children are touched so the access
		// shape is identical to a real push.
		for _, child := range [2]int{left, right} {
			c.trace("oread", child)
			raw, err := server.ORead(child)
			if err != nil {
				return "", err
			}
			dec := c.decryptBucketLocal(raw)
			enc := c.encryptBucketLocal(dec)
			c.trace("owriteback", child)
			if err := server.OWriteBack(child, enc); err != nil {
				return "", err
			}
		}
		return "", nil
	}

	path, ok := tree.RootPath(p.Leaf)
	if !ok {
		return "", ErrInvariantViolated
	}
	target := -1
	for _, k := range path {
		if k == left || k == right {
			target = k
			break
		}
	}
	if target < 0 {
		return "", ErrInvariantViolated
	}

	bucket.ClearByBID(blk.BID)

	c.trace("oread", target)
	raw, err := server.ORead(target)
	if err != nil {
		return "", err
	}
	child := c.decryptBucketLocal(raw)
	child.WriteData(p.Payload(), p.Leaf)
	child = c.encryptBucketLocal(child)
	c.trace("owriteback", target)
	if err := server.OWriteBack(target, child); err != nil {
		return "", err
	}

	return "", nil
}
