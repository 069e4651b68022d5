package mmv

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arthur-debert/mmv/internal/version"
	"github.com/arthur-debert/mmv/pkg/cobrax/topics"
	"github.com/arthur-debert/mmv/pkg/config"
	"github.com/arthur-debert/mmv/pkg/editor"
	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/filesystem"
	"github.com/arthur-debert/mmv/pkg/logging"
	"github.com/arthur-debert/mmv/pkg/paths"
	"github.com/arthur-debert/mmv/pkg/ui"
)

//go:embed topics
var topicsFS embed.FS

// configKeyAnnotation maps a flag to the configuration key it overrides
const configKeyAnnotation = "mmv_config_key"

// app holds the global flags and what PersistentPreRunE builds from them
type app struct {
	verbosity  int
	source     string
	noColor    bool
	configFile string
	format     string

	paths    paths.Paths
	cfg      *config.Config
	renderer ui.Renderer

	// nil outside tests
	fs     filesystem.FS
	runner editor.Runner
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "mmv",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.source, "source", "s", "", MsgFlagSource)
	flags.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&a.noColor, "no-color", false, MsgFlagNoColor)
	flags.StringVar(&a.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&a.format, "format", "auto", MsgFlagFormat)
	_ = rootCmd.MarkPersistentFlagFilename("config", "toml")
	_ = rootCmd.MarkPersistentFlagDirname("source")
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newExecuteCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newCompletionCmd())

	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		opts := topics.Options{Renderer: topics.NewGlamourRenderer(stdoutIsTerminal())}
		if _, err := topics.Initialize(rootCmd, sub, opts); err != nil {
			log.Debug().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// setup configures logging, resolves the workspace, loads configuration
// and picks the renderer.
func (a *app) setup(cmd *cobra.Command) error {
	logging.SetupLogger(a.verbosity)
	log.Debug().Str("command", cmd.Name()).Msg("Command started")

	p, err := paths.New(a.source)
	if err != nil {
		return err
	}
	a.paths = p
	if p.UsedFallback() && a.verbosity > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, p.SourceDir())
	}

	userFile := p.ConfigFilePath()
	if a.configFile != "" {
		userFile = paths.ExpandHome(a.configFile)
		if _, err := os.Stat(userFile); err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", userFile)
		}
	}

	cfg, err := config.Load(config.Options{
		UserFile:      userFile,
		WorkspaceFile: p.WorkspaceConfigPath(),
		Overrides:     flagOverrides(cmd, a.noColor),
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.renderer, err = ui.NewRenderer(ui.ApplyColor(format, cfg.Output.Color), cmd.OutOrStdout())
	return err
}

// flagOverrides collects the flags set on the command line that carry a
// configuration key.
func flagOverrides(cmd *cobra.Command, noColor bool) map[string]interface{} {
	overrides := make(map[string]interface{})
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if keys, ok := f.Annotations[configKeyAnnotation]; ok && len(keys) > 0 {
			overrides[keys[0]] = f.Value.String()
		}
	})
	if noColor {
		overrides["output.color"] = "never"
	}
	return overrides
}

// bindConfig marks flag as overriding key
func bindConfig(cmd *cobra.Command, flag, key string) {
	_ = cmd.Flags().SetAnnotation(flag, configKeyAnnotation, []string{key})
}

// filesystem returns the filesystem commands operate on
func (a *app) fsys() filesystem.FS {
	if a.fs != nil {
		return a.fs
	}
	return filesystem.NewOS()
}
