// Package treemodel maintains a lazily populated tree of filesystem entries
// addressed through stable, generation-tagged handles.
package treemodel

import (
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/afero"
)

const (
	// treeColumnCount is the single column the model exposes.
	treeColumnCount = 1
	// invalidRowIndex is reported for addresses that do not resolve.
	invalidRowIndex = -1
	// rootNodeIdentifier is the arena slot of the synthetic root node.
	rootNodeIdentifier int32 = 0
	// noParentIdentifier marks the root node, which has no parent slot.
	noParentIdentifier int32 = -1
)

// addressEpochs issues one generation per graph build. Addresses carry the
// generation they were minted under and resolve only against it.
var addressEpochs atomic.Uint64

// Address is an opaque handle to one node of a Model. The zero Address never
// names a node; operations that take a parent treat it as the root level.
// Addresses for the same node compare equal with ==.
type Address struct {
	epoch uint64
	node  int32
}

// IsValid reports whether the address was minted for a node. It does not
// check liveness: an address minted before the last SetRoot is valid in form
// yet resolves to nothing.
func (address Address) IsValid() bool {
	return address.node > rootNodeIdentifier
}

// Attribute selects which display attribute Value reports for a node.
type Attribute int

const (
	// AttributeDisplayName is the entry base name shown for a node.
	AttributeDisplayName Attribute = iota
	// AttributeTooltip is hover text. The model supplies no value for it.
	AttributeTooltip
	// AttributeIcon is a decoration hint. The model supplies no value for it.
	AttributeIcon
)

// Model is a lazily populated tree over one filesystem root. Levels
// materialize on first child access and never refresh; SetRoot discards the
// whole graph and starts over. A Model is not safe for concurrent use.
type Model struct {
	filesystem afero.Fs
	policy     ExclusionPolicy
	rootPath   string
	epoch      uint64
	nodes      []treeNode
}

// NewModel builds a model over the operating-system filesystem rooted at
// rootPath. The root may point at a missing path; the model still constructs
// and reports zero rows for it.
func NewModel(rootPath string, policy ExclusionPolicy) *Model {
	return NewModelWithFilesystem(rootPath, policy, afero.NewOsFs())
}

// NewModelWithFilesystem builds a model over the supplied filesystem.
func NewModelWithFilesystem(rootPath string, policy ExclusionPolicy, filesystem afero.Fs) *Model {
	model := &Model{filesystem: filesystem, policy: policy}
	model.rebuild(rootPath)
	return model
}

// SetRoot points the model at a new root path. The previous graph is
// discarded and every address minted before the call stops resolving.
func (model *Model) SetRoot(rootPath string) {
	model.rebuild(rootPath)
}

// RootPath returns the path the model is rooted at.
func (model *Model) RootPath() string {
	return model.rootPath
}

// RootIsDirectory reports whether the root path named a directory when the
// model was last rebuilt.
func (model *Model) RootIsDirectory() bool {
	return model.nodes[rootNodeIdentifier].kind == kindDirectory
}

// Policy returns the exclusion policy the model was built with.
func (model *Model) Policy() ExclusionPolicy {
	return model.policy
}

// ColumnCount returns the number of columns, always one.
func (model *Model) ColumnCount() int {
	return treeColumnCount
}

// RowCount returns how many children the parent level holds, materializing
// the level on first use. Addresses that do not resolve report zero rows.
func (model *Model) RowCount(parent Address) int {
	levelIdentifier, resolved := model.resolveLevel(parent)
	if !resolved {
		return 0
	}
	model.materialize(levelIdentifier)
	return len(model.nodes[levelIdentifier].children)
}

// IndexFor returns the address of the child at row under parent. Negative or
// out-of-range rows, columns other than zero, and parents that do not resolve
// all yield the zero address.
func (model *Model) IndexFor(row int, column int, parent Address) Address {
	if row < 0 || column != 0 {
		return Address{}
	}
	levelIdentifier, resolved := model.resolveLevel(parent)
	if !resolved {
		return Address{}
	}
	model.materialize(levelIdentifier)
	childIdentifiers := model.nodes[levelIdentifier].children
	if row >= len(childIdentifiers) {
		return Address{}
	}
	return Address{epoch: model.epoch, node: childIdentifiers[row]}
}

// ParentOf returns the address of the node's parent. Children of the root
// level and addresses that do not resolve yield the zero address.
func (model *Model) ParentOf(address Address) Address {
	nodeIdentifier, resolved := model.resolve(address)
	if !resolved {
		return Address{}
	}
	parentIdentifier := model.nodes[nodeIdentifier].parent
	if parentIdentifier <= rootNodeIdentifier {
		return Address{}
	}
	return Address{epoch: model.epoch, node: parentIdentifier}
}

// RowOf returns the node's row within its parent, or -1 when the address does
// not resolve.
func (model *Model) RowOf(address Address) int {
	nodeIdentifier, resolved := model.resolve(address)
	if !resolved {
		return invalidRowIndex
	}
	return int(model.nodes[nodeIdentifier].row)
}

// Value returns the requested display attribute for a node. Only
// AttributeDisplayName carries a value; every other attribute reports none.
func (model *Model) Value(address Address, attribute Attribute) (string, bool) {
	nodeIdentifier, resolved := model.resolve(address)
	if !resolved {
		return "", false
	}
	if attribute != AttributeDisplayName {
		return "", false
	}
	return model.nodes[nodeIdentifier].name, true
}

// DisplayValue returns the entry base name, or an empty string when the
// address does not resolve.
func (model *Model) DisplayValue(address Address) string {
	displayName, _ := model.Value(address, AttributeDisplayName)
	return displayName
}

// Path returns the filesystem path behind an address. It never materializes
// the node.
func (model *Model) Path(address Address) (string, bool) {
	nodeIdentifier, resolved := model.resolve(address)
	if !resolved {
		return "", false
	}
	return model.nodes[nodeIdentifier].path, true
}

// IsDirectory reports whether the address points at a directory. It never
// materializes the node.
func (model *Model) IsDirectory(address Address) bool {
	nodeIdentifier, resolved := model.resolve(address)
	if !resolved {
		return false
	}
	return model.nodes[nodeIdentifier].kind == kindDirectory
}

// rebuild discards the node arena and seeds it with a fresh root under a new
// address generation. The root entry is inspected once here; children learn
// their kind from directory listings as levels materialize.
func (model *Model) rebuild(rootPath string) {
	if rootPath != "" {
		rootPath = filepath.Clean(rootPath)
	}
	rootKind := kindUnknown
	if rootInformation, statError := model.filesystem.Stat(rootPath); statError == nil {
		rootKind = kindFile
		if rootInformation.IsDir() {
			rootKind = kindDirectory
		}
	}
	model.rootPath = rootPath
	model.epoch = addressEpochs.Add(1)
	model.nodes = []treeNode{{
		path:   rootPath,
		name:   filepath.Base(rootPath),
		parent: noParentIdentifier,
		kind:   rootKind,
	}}
}

// materialize populates a node's children on first access. The loaded flag is
// set before enumeration so a failed listing caches as an empty level; file
// nodes load without touching the filesystem.
func (model *Model) materialize(nodeIdentifier int32) {
	if model.nodes[nodeIdentifier].loaded {
		return
	}
	model.nodes[nodeIdentifier].loaded = true
	if model.nodes[nodeIdentifier].kind == kindFile {
		return
	}
	parentPath := model.nodes[nodeIdentifier].path
	// afero.ReadDir returns entries sorted by name, which is the row order.
	entries, readError := afero.ReadDir(model.filesystem, parentPath)
	if readError != nil {
		return
	}
	childIdentifiers := make([]int32, 0, len(entries))
	for _, entry := range entries {
		if model.policy.Excludes(entry.Name()) {
			continue
		}
		childKind := kindFile
		if entry.IsDir() {
			childKind = kindDirectory
		}
		childIdentifier := int32(len(model.nodes))
		model.nodes = append(model.nodes, treeNode{
			path:   filepath.Join(parentPath, entry.Name()),
			name:   entry.Name(),
			parent: nodeIdentifier,
			row:    int32(len(childIdentifiers)),
			kind:   childKind,
		})
		childIdentifiers = append(childIdentifiers, childIdentifier)
	}
	model.nodes[nodeIdentifier].children = childIdentifiers
}

// resolve maps an address to its arena slot. Addresses minted under another
// generation or pointing outside the arena do not resolve.
func (model *Model) resolve(address Address) (int32, bool) {
	if address.node <= rootNodeIdentifier || address.epoch != model.epoch {
		return rootNodeIdentifier, false
	}
	if int(address.node) >= len(model.nodes) {
		return rootNodeIdentifier, false
	}
	return address.node, true
}

// resolveLevel maps a parent argument to an arena slot, treating the zero
// address as the root level.
func (model *Model) resolveLevel(parent Address) (int32, bool) {
	if parent == (Address{}) {
		return rootNodeIdentifier, true
	}
	return model.resolve(parent)
}
