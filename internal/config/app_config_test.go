package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arborfs/arbor/internal/utils"
)

type configTestCase struct {
	name          string
	globalContent string
	localContent  string
	explicitPath  string
	expectFormat  string
	expectSummary *bool
	expectDepth   *int
	expectRoot    string
	expectLimit   *int
	expectNames   []string
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	summaryFalse := boolPointer(false)

	testCases := []configTestCase{
		{
			name:          "local_overrides_global",
			globalContent: "print:\n  format: raw\n  summary: false\nexclude:\n  names:\n    - dist\n",
			localContent:  "print:\n  format: xml\n  depth: 2\nexclude:\n  names:\n    - build\n",
			expectFormat:  "xml",
			expectSummary: summaryFalse,
			expectDepth:   intPointer(2),
			expectNames:   []string{"build"},
		},
		{
			name:          "explicit_path_overrides_global",
			globalContent: "print:\n  format: json\n",
			explicitPath:  "custom.yaml",
			expectFormat:  "raw",
		},
		{
			name:          "global_only",
			globalContent: "browse:\n  root: /srv/projects\nrecent:\n  limit: 5\n",
			expectRoot:    "/srv/projects",
			expectLimit:   intPointer(5),
		},
		{
			name: "no_configuration_files",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.ConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.ConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte("print:\n  format: raw\n"), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			if loadedConfig.Print.Format != testCase.expectFormat {
				t.Fatalf("expected format %q, got %q", testCase.expectFormat, loadedConfig.Print.Format)
			}
			if testCase.expectSummary == nil {
				if loadedConfig.Print.Summary != nil {
					t.Fatalf("expected no summary override")
				}
			} else {
				if loadedConfig.Print.Summary == nil || *loadedConfig.Print.Summary != *testCase.expectSummary {
					t.Fatalf("unexpected summary value")
				}
			}
			if testCase.expectDepth == nil {
				if loadedConfig.Print.Depth != nil {
					t.Fatalf("expected no depth override")
				}
			} else {
				if loadedConfig.Print.Depth == nil || *loadedConfig.Print.Depth != *testCase.expectDepth {
					t.Fatalf("unexpected depth value")
				}
			}
			if loadedConfig.Browse.Root != testCase.expectRoot {
				t.Fatalf("expected browse root %q, got %q", testCase.expectRoot, loadedConfig.Browse.Root)
			}
			if testCase.expectLimit == nil {
				if loadedConfig.Recent.Limit != nil {
					t.Fatalf("expected no recent limit override")
				}
			} else {
				if loadedConfig.Recent.Limit == nil || *loadedConfig.Recent.Limit != *testCase.expectLimit {
					t.Fatalf("unexpected recent limit value")
				}
			}
			if len(loadedConfig.Exclude.Names) != len(testCase.expectNames) {
				t.Fatalf("expected exclude names %v, got %v", testCase.expectNames, loadedConfig.Exclude.Names)
			}
			for nameIndex, expectedName := range testCase.expectNames {
				if loadedConfig.Exclude.Names[nameIndex] != expectedName {
					t.Fatalf("expected exclude names %v, got %v", testCase.expectNames, loadedConfig.Exclude.Names)
				}
			}
		})
	}
}

func TestLoadApplicationConfigurationRejectsDirectoryPath(t *testing.T) {
	homeDir := t.TempDir()
	workingDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	if err := os.MkdirAll(filepath.Join(workingDir, "confdir"), 0o755); err != nil {
		t.Fatalf("create directory: %v", err)
	}
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: workingDir,
		ExplicitFilePath: "confdir",
	})
	if err == nil {
		t.Fatalf("expected error when the configuration path is a directory")
	}
}

func TestMergeClonesOverridePointers(t *testing.T) {
	overrideSummary := boolPointer(false)
	overrideLimit := intPointer(3)
	override := ApplicationConfiguration{}
	override.Print.Summary = overrideSummary
	override.Recent.Limit = overrideLimit

	merged := ApplicationConfiguration{}.Merge(override)

	*overrideSummary = true
	*overrideLimit = 99

	if merged.Print.Summary == nil || *merged.Print.Summary {
		t.Fatalf("expected merged summary to keep the value it was merged with")
	}
	if merged.Recent.Limit == nil || *merged.Recent.Limit != 3 {
		t.Fatalf("expected merged limit to keep the value it was merged with")
	}
}

func TestPolicyFromConfigurationDefaults(t *testing.T) {
	policy := PolicyFromConfiguration(ApplicationConfiguration{})
	if !policy.Excludes(".git") {
		t.Fatalf("expected hidden entries to be excluded by default")
	}
	if !policy.Excludes("node_modules") {
		t.Fatalf("expected built-in denylist entries to be excluded")
	}
	if policy.Excludes("main.go") {
		t.Fatalf("expected ordinary entries to be kept")
	}
}

func TestPolicyFromConfigurationHiddenDisabled(t *testing.T) {
	configuration := ApplicationConfiguration{}
	configuration.Exclude.Hidden = boolPointer(false)
	policy := PolicyFromConfiguration(configuration)
	if policy.Excludes(".git") {
		t.Fatalf("expected hidden entries to be kept when hidden filtering is disabled")
	}
	if !policy.Excludes("venv") {
		t.Fatalf("expected built-in denylist entries to stay excluded")
	}
}

func TestPolicyFromConfigurationNamesExtendDefaults(t *testing.T) {
	configuration := ApplicationConfiguration{}
	configuration.Exclude.Names = []string{"dist", "dist"}
	policy := PolicyFromConfiguration(configuration)
	if !policy.Excludes("dist") {
		t.Fatalf("expected configured names to be excluded")
	}
	if !policy.Excludes("__pycache__") {
		t.Fatalf("expected configured names to extend the built-in denylist")
	}
}
