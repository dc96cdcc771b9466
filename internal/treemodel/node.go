package treemodel

// nodeKind classifies a node by the filesystem entry it mirrors.
type nodeKind uint8

const (
	// kindUnknown marks a root whose filesystem entry could not be inspected.
	kindUnknown nodeKind = iota
	// kindDirectory marks an entry that can enumerate children.
	kindDirectory
	// kindFile marks a leaf entry. Symbolic links count as leaves.
	kindFile
)

// treeNode is one filesystem entry in the arena. Nodes are referenced by
// arena index; holding a *treeNode across appends is unsafe because the
// backing slice reallocates.
type treeNode struct {
	path     string
	name     string
	parent   int32
	row      int32
	kind     nodeKind
	loaded   bool
	children []int32
}
