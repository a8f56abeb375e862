package suffixindex

import "fmt"

// ListNode is one element of a key's value list, most-recent-first: the
// list order is an observable contract, not an implementation detail,
// since callers walk it to prefer newer insertions over older ones.
type ListNode struct {
	value int
	next  *ListNode
}

// Value returns the node's stored int (a partOrigIndex in this engine's
// usage).
func (n *ListNode) Value() int { return n.value }

// Next returns the next-most-recent node, or nil at the list's end.
func (n *ListNode) Next() *ListNode { return n.next }

// listKey is one bucket-chain node: a distinct key with its own value
// list.
type listKey struct {
	key  []byte
	head *ListNode
	next *listKey
}

// ListTable is a fixed-size hash map from a byte-slice key to a
// singly-linked list of int values, newest insertion first. It is used
// for the per-length part-code suffix tables, where every part sharing a
// suffix must be reachable, not just the first.
//
// Like UniqueTable, ListTable never grows or rehashes. Capacity bounds
// both the number of distinct keys and the total number of Prepend
// calls — in the worst case every Prepend introduces a new key.
type ListTable struct {
	buckets  []*listKey
	keyPool  []listKey
	nextKey  int
	nodePool []ListNode
	nextNode int
}

// NewListTable reserves a bucket array sized to the next power of two >=
// max(capacity, 1), a key-entry pool of capacity slots, and a list-node
// pool of capacity slots.
func NewListTable(capacity int) *ListTable {
	return &ListTable{
		buckets:  make([]*listKey, nextPowerOfTwo(max(capacity, 1))),
		keyPool:  make([]listKey, capacity),
		nodePool: make([]ListNode, capacity),
	}
}

// Prepend always adds value to key's list, creating the list on first
// touch. The new node becomes the list head, so Lookup's traversal visits
// values in most-recent-insertion-first order.
//
// Panics with ErrCapacity if either pool is exhausted, which indicates
// the table was sized smaller than the inserts it would ever see.
func (t *ListTable) Prepend(key []byte, value int) {
	idx := hashKey(key, len(t.buckets))

	var entry *listKey
	for e := t.buckets[idx]; e != nil; e = e.next {
		if keyEquals(e.key, key) {
			entry = e
			break
		}
	}

	if entry == nil {
		if t.nextKey >= len(t.keyPool) {
			panic(fmt.Errorf("%w: key capacity %d", ErrCapacity, len(t.keyPool)))
		}
		entry = &t.keyPool[t.nextKey]
		t.nextKey++
		entry.key = key
		entry.next = t.buckets[idx]
		t.buckets[idx] = entry
	}

	if t.nextNode >= len(t.nodePool) {
		panic(fmt.Errorf("%w: node capacity %d", ErrCapacity, len(t.nodePool)))
	}
	node := &t.nodePool[t.nextNode]
	t.nextNode++
	node.value = value
	node.next = entry.head
	entry.head = node
}

// Lookup returns the head of key's value list (most recent first), if
// key was ever prepended.
func (t *ListTable) Lookup(key []byte) (*ListNode, bool) {
	idx := hashKey(key, len(t.buckets))
	for e := t.buckets[idx]; e != nil; e = e.next {
		if keyEquals(e.key, key) {
			return e.head, true
		}
	}
	return nil, false
}
