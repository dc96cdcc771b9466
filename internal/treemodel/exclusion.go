package treemodel

import "strings"

// DefaultHiddenPrefix marks entries treated as hidden.
const DefaultHiddenPrefix = "."

const (
	pycacheDirectoryName     = "__pycache__"
	nodeModulesDirectoryName = "node_modules"
	virtualEnvDirectoryName  = "venv"
)

// DefaultDeniedNames returns the entry names excluded from every tree level.
func DefaultDeniedNames() []string {
	return []string{pycacheDirectoryName, nodeModulesDirectoryName, virtualEnvDirectoryName}
}

// ExclusionPolicy decides which directory entries stay out of the tree. The
// decision is made once per entry when its parent materializes; changing the
// policy requires building a new model.
type ExclusionPolicy struct {
	// HiddenPrefix excludes entries whose name starts with it. An empty
	// prefix disables the hidden rule.
	HiddenPrefix string
	// DeniedNames excludes entries whose name matches exactly, regardless
	// of entry type.
	DeniedNames map[string]struct{}
}

// NewExclusionPolicy builds a policy from a hidden prefix and a list of denied names.
func NewExclusionPolicy(hiddenPrefix string, deniedNames []string) ExclusionPolicy {
	denied := make(map[string]struct{}, len(deniedNames))
	for _, deniedName := range deniedNames {
		denied[deniedName] = struct{}{}
	}
	return ExclusionPolicy{HiddenPrefix: hiddenPrefix, DeniedNames: denied}
}

// DefaultExclusionPolicy hides dot entries and the standard dependency directories.
func DefaultExclusionPolicy() ExclusionPolicy {
	return NewExclusionPolicy(DefaultHiddenPrefix, DefaultDeniedNames())
}

// Excludes reports whether an entry name is kept out of the tree.
func (policy ExclusionPolicy) Excludes(entryName string) bool {
	if policy.HiddenPrefix != "" && strings.HasPrefix(entryName, policy.HiddenPrefix) {
		return true
	}
	_, denied := policy.DeniedNames[entryName]
	return denied
}
