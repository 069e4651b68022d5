package mmv

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Rename, move and delete files by editing a list"
	MsgInitShort       = "Create a change set for the workspace"
	MsgUpdateShort     = "Merge new and removed files into the change set"
	MsgStatusShort     = "Show pending changes"
	MsgEditShort       = "Edit the change set in your editor"
	MsgExecuteShort    = "Apply the change set"
	MsgConfigShort     = "Show the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagSource    = "Workspace directory (default: $MMV_SOURCE or the current directory)"
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor   = "Disable colored output"
	MsgFlagConfig    = "User configuration file"
	MsgFlagFormat    = "Output format: auto, term, text, json or yaml"
	MsgFlagForce     = "Reset an initialized workspace"
	MsgFlagTarget    = "Directory moved files are placed under"
	MsgFlagDryRun    = "Check the change set without changing anything"
	MsgFlagStrategy  = "Order of copies and removals: sequential or staged"
	MsgFlagReflink   = "Copy-on-write clones: auto, always or never"
	MsgFlagOverwrite = "Replace files that already exist at a destination"
	MsgFlagDefaults  = "Print the built-in defaults instead"

	// Error messages
	MsgErrNoTarget       = "a target directory is required: mmv execute <dir>"
	MsgErrTargetConflict = "target given twice: %s and %s"
	MsgErrNoCommand      = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/update-example.txt
	msgUpdateExampleRaw string
	MsgUpdateExample    = strings.TrimRight(msgUpdateExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/edit-long.txt
	msgEditLongRaw string
	MsgEditLong    = strings.TrimSpace(msgEditLongRaw)

	//go:embed msgs/edit-example.txt
	msgEditExampleRaw string
	MsgEditExample    = strings.TrimRight(msgEditExampleRaw, "\n")

	//go:embed msgs/execute-long.txt
	msgExecuteLongRaw string
	MsgExecuteLong    = strings.TrimSpace(msgExecuteLongRaw)

	//go:embed msgs/execute-example.txt
	msgExecuteExampleRaw string
	MsgExecuteExample    = strings.TrimRight(msgExecuteExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
