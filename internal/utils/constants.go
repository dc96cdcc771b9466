package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal command failures.
const ApplicationExecutionFailedMessage = "application execution failed"

// GlobalConfigDirectoryName is the directory under the user home that holds
// global configuration and state files.
const GlobalConfigDirectoryName = ".arbor"

// ConfigFileName is the name of the configuration file looked up both in the
// working directory and inside the global configuration directory.
const ConfigFileName = ".arbor.yaml"

// RecentRootsFileName is the name of the recent-roots state file inside the
// global configuration directory.
const RecentRootsFileName = "recent.json"
