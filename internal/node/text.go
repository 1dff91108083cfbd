package node

// Text is the payload type of a tree.
type Text interface {
	~string | ~[]byte
}

// Borrowed text aliases the source buffer; the buffer must outlive the tree.
type Borrowed = []byte

// Owned text is an independent copy.
type Owned = string
