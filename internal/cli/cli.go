// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arborfs/arbor/internal/browser"
	"github.com/arborfs/arbor/internal/config"
	"github.com/arborfs/arbor/internal/recent"
	"github.com/arborfs/arbor/internal/services/clipboard"
	"github.com/arborfs/arbor/internal/services/stream"
	"github.com/arborfs/arbor/internal/treemodel"
	"github.com/arborfs/arbor/internal/types"
	"github.com/arborfs/arbor/internal/utils"
)

const (
	configFlagName    = "config"
	exclusionFlagName = "e"
	hiddenFlagName    = "hidden"
	formatFlagName    = "format"
	summaryFlagName   = "summary"
	depthFlagName     = "depth"
	copyFlagName      = "copy"
	globalFlagName    = "global"
	forceFlagName     = "force"
	versionFlagName   = "version"
	versionTemplate   = "arbor version: %s\n"
	defaultPath       = "."

	rootUse              = "arbor"
	rootShortDescription = "arbor command line interface"
	rootLongDescription  = `arbor models a directory as a lazily populated tree.
It browses the tree interactively, prints it as raw text, JSON, or XML, and
remembers recently browsed roots. Use --version to print the application version.`
	versionFlagDescription = "display application version"

	browseUse              = "browse [path]"
	browseAlias            = "b"
	browseShortDescription = "browse a directory tree interactively (" + browseAlias + ")"
	printUse               = "print [path]"
	printAlias             = "p"
	printShortDescription  = "print a directory tree (" + printAlias + ")"
	recentUse              = "recent"
	recentAlias            = "r"
	recentShortDescription = "list recently browsed roots (" + recentAlias + ")"
	initUse                = "init"
	initShortDescription   = "write a starter configuration file"

	// browseLongDescription provides detailed help for the browse command.
	browseLongDescription = `Open an interactive tree view rooted at the given directory.
A directory reads its entries only when it is first expanded on screen.
Use --hidden to include dot-prefixed entries and -e to exclude extra names.`
	// browseUsageExample demonstrates browse command usage.
	browseUsageExample = `  # Browse the current directory
  arbor browse

  # Browse a project, including hidden entries
  arbor browse --hidden ~/projects/arbor`

	// printLongDescription provides detailed help for the print command.
	printLongDescription = `Render the tree rooted at the given path.
Use --format to select raw, json, or xml output, --depth to bound traversal,
and --copy to place the rendering on the system clipboard as well.`
	// printUsageExample demonstrates print command usage.
	printUsageExample = `  # Print two levels of the current directory
  arbor print --depth 2

  # Print a subtree as JSON and copy it
  arbor print --format json --copy ./cmd`

	// initLongDescription provides detailed help for the init command.
	initLongDescription = `Write a starter configuration file.
The local target writes ./.arbor.yaml; --global writes it under the home
configuration directory instead. Existing files are kept unless --force.`

	configFlagDescription    = "configuration file path"
	exclusionFlagDescription = "additional entry name to exclude"
	hiddenFlagDescription    = "include hidden entries"
	formatFlagDescription    = "output format"
	summaryFlagDescription   = "include a summary line"
	depthFlagDescription     = "maximum depth to descend (0 = unlimited)"
	copyFlagDescription      = "copy the rendering to the system clipboard"
	globalFlagDescription    = "write the global configuration file"
	forceFlagDescription     = "overwrite an existing configuration file"

	invalidFormatMessage        = "invalid format value '%s'"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	recentStoreErrorFormat      = "open recent roots store: %w"
	noRecentRootsMessage        = "no recent roots"
	initializedFileFormat       = "wrote configuration to %s\n"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a browse target that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
)

// supportedFormats lists the accepted values of the format flag.
var supportedFormats = []string{types.FormatRaw, types.FormatJSON, types.FormatXML}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	return utils.ContainsString(supportedFormats, format)
}

// Execute runs the arbor application.
func Execute() error {
	rootCommand := createRootCommand()
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createBrowseCommand(),
		createPrintCommand(),
		createRecentCommand(),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// exclusionOptions stores configuration shared by the browse and print commands.
type exclusionOptions struct {
	configurationPath string
	extraDeniedNames  []string
	showHidden        bool
}

// addExclusionFlags registers the exclusion-related flags on the command.
func addExclusionFlags(command *cobra.Command, options *exclusionOptions) {
	command.Flags().StringVar(&options.configurationPath, configFlagName, "", configFlagDescription)
	command.Flags().StringArrayVarP(&options.extraDeniedNames, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	registerBooleanFlag(command.Flags(), &options.showHidden, hiddenFlagName, false, hiddenFlagDescription)
}

// loadConfiguration loads the layered application configuration, honoring an
// explicit --config path when one is given.
func loadConfiguration(configurationPath string) (config.ApplicationConfiguration, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return config.ApplicationConfiguration{}, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	return config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configurationPath,
	})
}

// applyExclusionFlags overlays command line exclusion settings onto the loaded
// configuration. Extra names extend the configured list; --hidden, when set,
// wins over the configured hidden rule.
func applyExclusionFlags(configuration config.ApplicationConfiguration, command *cobra.Command, options exclusionOptions) config.ApplicationConfiguration {
	result := configuration
	if len(options.extraDeniedNames) > 0 {
		combined := append([]string{}, result.Exclude.Names...)
		combined = append(combined, options.extraDeniedNames...)
		result.Exclude.Names = utils.DeduplicateNames(combined)
	}
	if command.Flags().Changed(hiddenFlagName) {
		excludeHidden := !options.showHidden
		result.Exclude.Hidden = &excludeHidden
	}
	return result
}

// showHiddenSetting reports whether hidden entries should be visible under the
// effective configuration.
func showHiddenSetting(configuration config.ApplicationConfiguration) bool {
	return configuration.Exclude.Hidden != nil && !*configuration.Exclude.Hidden
}

// resolveBrowseRoot picks the browse root from the argument, the configured
// default, or the working directory, in that order.
func resolveBrowseRoot(requestedPath string, configuredRoot string) string {
	if requestedPath != "" {
		return requestedPath
	}
	if configuredRoot != "" {
		return configuredRoot
	}
	return defaultPath
}

// recentLimit returns the configured recent-roots limit or the default.
func recentLimit(configuration config.ApplicationConfiguration) int {
	if configuration.Recent.Limit != nil {
		return *configuration.Recent.Limit
	}
	return recent.DefaultLimit
}

// createBrowseCommand returns the browse subcommand.
func createBrowseCommand() *cobra.Command {
	var exclusionConfiguration exclusionOptions

	browseCommand := &cobra.Command{
		Use:     browseUse,
		Aliases: []string{browseAlias},
		Short:   browseShortDescription,
		Long:    browseLongDescription,
		Example: browseUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, configurationError := loadConfiguration(exclusionConfiguration.configurationPath)
			if configurationError != nil {
				return configurationError
			}
			effective := applyExclusionFlags(configuration, command, exclusionConfiguration)

			requestedPath := ""
			if len(arguments) > 0 {
				requestedPath = arguments[0]
			}
			rootPath := resolveBrowseRoot(requestedPath, effective.Browse.Root)

			filesystem := afero.NewOsFs()
			validated, pathError := resolveTargetPath(filesystem, rootPath)
			if pathError != nil {
				return pathError
			}
			if !validated.IsDir {
				return fmt.Errorf(errorNotDirectoryFormat, rootPath)
			}

			recentStore, storeError := recent.NewStore(recentLimit(effective))
			if storeError != nil {
				return fmt.Errorf(recentStoreErrorFormat, storeError)
			}

			return browser.Run(browser.Options{
				Filesystem:  filesystem,
				RootPath:    validated.AbsolutePath,
				DeniedNames: effectiveDeniedNames(effective),
				ShowHidden:  showHiddenSetting(effective),
				Clipboard:   clipboard.NewService(),
				Recents:     recentStore,
			})
		},
	}

	addExclusionFlags(browseCommand, &exclusionConfiguration)
	return browseCommand
}

// effectiveDeniedNames combines the built-in denylist with configured names.
func effectiveDeniedNames(configuration config.ApplicationConfiguration) []string {
	names := append([]string{}, treemodel.DefaultDeniedNames()...)
	names = append(names, configuration.Exclude.Names...)
	return utils.DeduplicateNames(names)
}

// createPrintCommand returns the print subcommand.
func createPrintCommand() *cobra.Command {
	var exclusionConfiguration exclusionOptions
	var outputFormat string = types.FormatRaw
	var summaryEnabled bool
	var maxDepth int
	var copyEnabled bool

	printCommand := &cobra.Command{
		Use:     printUse,
		Aliases: []string{printAlias},
		Short:   printShortDescription,
		Long:    printLongDescription,
		Example: printUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, configurationError := loadConfiguration(exclusionConfiguration.configurationPath)
			if configurationError != nil {
				return configurationError
			}
			effective := applyExclusionFlags(configuration, command, exclusionConfiguration)

			targetPath := defaultPath
			if len(arguments) > 0 {
				targetPath = arguments[0]
			}

			outputFormatLower := strings.ToLower(outputFormat)
			if !command.Flags().Changed(formatFlagName) && effective.Print.Format != "" {
				outputFormatLower = strings.ToLower(effective.Print.Format)
			}
			if !isSupportedFormat(outputFormatLower) {
				return fmt.Errorf(invalidFormatMessage, outputFormatLower)
			}

			includeSummary := summaryEnabled
			if !command.Flags().Changed(summaryFlagName) && effective.Print.Summary != nil {
				includeSummary = *effective.Print.Summary
			}
			traversalDepth := maxDepth
			if !command.Flags().Changed(depthFlagName) && effective.Print.Depth != nil {
				traversalDepth = *effective.Print.Depth
			}
			copyToClipboard := copyEnabled
			if !command.Flags().Changed(copyFlagName) && effective.Print.Clipboard != nil {
				copyToClipboard = *effective.Print.Clipboard
			}

			return runPrint(command.Context(), printOptions{
				TargetPath:      targetPath,
				Format:          outputFormatLower,
				MaxDepth:        traversalDepth,
				IncludeSummary:  includeSummary,
				CopyToClipboard: copyToClipboard,
				Policy:          config.PolicyFromConfiguration(effective),
			})
		},
	}

	addExclusionFlags(printCommand, &exclusionConfiguration)
	printCommand.Flags().StringVar(&outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerBooleanFlag(printCommand.Flags(), &summaryEnabled, summaryFlagName, true, summaryFlagDescription)
	printCommand.Flags().IntVar(&maxDepth, depthFlagName, stream.UnlimitedDepth, depthFlagDescription)
	registerBooleanFlag(printCommand.Flags(), &copyEnabled, copyFlagName, false, copyFlagDescription)
	return printCommand
}

// createRecentCommand returns the recent subcommand.
func createRecentCommand() *cobra.Command {
	var configurationPath string

	recentCommand := &cobra.Command{
		Use:     recentUse,
		Aliases: []string{recentAlias},
		Short:   recentShortDescription,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, configurationError := loadConfiguration(configurationPath)
			if configurationError != nil {
				return configurationError
			}
			store, storeError := recent.NewStore(recentLimit(configuration))
			if storeError != nil {
				return fmt.Errorf(recentStoreErrorFormat, storeError)
			}
			return runRecent(command.OutOrStdout(), store)
		},
	}

	recentCommand.Flags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	return recentCommand
}

// runRecent writes the recently browsed roots, newest first.
func runRecent(stdout io.Writer, store *recent.Store) error {
	roots, rootsError := store.Roots()
	if rootsError != nil {
		return rootsError
	}
	if len(roots) == 0 {
		fmt.Fprintln(stdout, noRecentRootsMessage)
		return nil
	}
	for _, root := range roots {
		fmt.Fprintln(stdout, root)
	}
	return nil
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			writtenPath, initializeError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            forceOverwrite,
				WorkingDirectory: workingDirectory,
			})
			if initializeError != nil {
				return initializeError
			}
			fmt.Fprintf(command.OutOrStdout(), initializedFileFormat, writtenPath)
			return nil
		},
	}

	registerBooleanFlag(initCommand.Flags(), &writeGlobal, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}
