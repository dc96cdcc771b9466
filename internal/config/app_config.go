package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/arborfs/arbor/internal/treemodel"
	"github.com/arborfs/arbor/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Exclude ExclusionConfiguration `mapstructure:"exclude"`
	Browse  BrowseConfiguration    `mapstructure:"browse"`
	Print   PrintConfiguration     `mapstructure:"print"`
	Recent  RecentConfiguration    `mapstructure:"recent"`
}

// ExclusionConfiguration controls which directory entries the tree skips.
type ExclusionConfiguration struct {
	Hidden *bool    `mapstructure:"hidden"`
	Names  []string `mapstructure:"names"`
}

// BrowseConfiguration defines defaults for the browse command.
type BrowseConfiguration struct {
	Root string `mapstructure:"root"`
}

// PrintConfiguration defines defaults for the print command.
type PrintConfiguration struct {
	Format    string `mapstructure:"format"`
	Summary   *bool  `mapstructure:"summary"`
	Depth     *int   `mapstructure:"depth"`
	Clipboard *bool  `mapstructure:"clipboard"`
}

// RecentConfiguration defines defaults for the recent command.
type RecentConfiguration struct {
	Limit *int `mapstructure:"limit"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Exclude.Names = utils.DeduplicateNames(merged.Exclude.Names)

	return merged, nil
}

// PolicyFromConfiguration builds the exclusion policy applied when listing a
// directory. Configured names extend the built-in denylist rather than
// replacing it; hidden-entry filtering stays on unless disabled explicitly.
func PolicyFromConfiguration(configuration ApplicationConfiguration) treemodel.ExclusionPolicy {
	hiddenPrefix := treemodel.DefaultHiddenPrefix
	if configuration.Exclude.Hidden != nil && !*configuration.Exclude.Hidden {
		hiddenPrefix = ""
	}
	deniedNames := append(treemodel.DefaultDeniedNames(), configuration.Exclude.Names...)
	return treemodel.NewExclusionPolicy(hiddenPrefix, utils.DeduplicateNames(deniedNames))
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Exclude = result.Exclude.merge(override.Exclude)
	result.Browse = result.Browse.merge(override.Browse)
	result.Print = result.Print.merge(override.Print)
	result.Recent = result.Recent.merge(override.Recent)
	return result
}

func (config ExclusionConfiguration) merge(override ExclusionConfiguration) ExclusionConfiguration {
	result := config
	if override.Hidden != nil {
		result.Hidden = cloneBool(override.Hidden)
	}
	if len(override.Names) > 0 {
		result.Names = append([]string{}, utils.DeduplicateNames(override.Names)...)
	}
	return result
}

func (config BrowseConfiguration) merge(override BrowseConfiguration) BrowseConfiguration {
	result := config
	if override.Root != "" {
		result.Root = override.Root
	}
	return result
}

func (config PrintConfiguration) merge(override PrintConfiguration) PrintConfiguration {
	result := config
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Summary != nil {
		result.Summary = cloneBool(override.Summary)
	}
	if override.Depth != nil {
		result.Depth = cloneInt(override.Depth)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (config RecentConfiguration) merge(override RecentConfiguration) RecentConfiguration {
	result := config
	if override.Limit != nil {
		result.Limit = cloneInt(override.Limit)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
