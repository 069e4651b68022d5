package mmv

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/mmv/internal/version"
	"github.com/arthur-debert/mmv/pkg/commands/edit"
	"github.com/arthur-debert/mmv/pkg/commands/execute"
	"github.com/arthur-debert/mmv/pkg/commands/initialize"
	"github.com/arthur-debert/mmv/pkg/commands/status"
	"github.com/arthur-debert/mmv/pkg/commands/update"
	"github.com/arthur-debert/mmv/pkg/config"
	"github.com/arthur-debert/mmv/pkg/editor"
	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/executor"
	"github.com/arthur-debert/mmv/pkg/filesystem"
	"github.com/arthur-debert/mmv/pkg/scan"
	"github.com/arthur-debert/mmv/pkg/ui"
)

func (a *app) scanOptions() scan.Options {
	return scan.Options{
		Ignore:         a.cfg.Scan.Ignore,
		FollowSymlinks: a.cfg.Scan.FollowSymlinks,
	}
}

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"reset"},
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := initialize.Run(initialize.Options{
				Dir:   a.paths.SourceDir(),
				Force: force,
				Scan:  a.scanOptions(),
				FS:    a.fsys(),
			})
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(result)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "update",
		Aliases: []string{"refresh"},
		Short:   MsgUpdateShort,
		Long:    MsgUpdateLong,
		Example: MsgUpdateExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := update.Run(update.Options{
				Dir:  a.paths.SourceDir(),
				Scan: a.scanOptions(),
				FS:   a.fsys(),
			})
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(result)
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := status.Run(status.Options{
				Dir: a.paths.SourceDir(),
				FS:  a.fsys(),
			})
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(result)
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "edit",
		Short:   MsgEditShort,
		Long:    MsgEditLong,
		Example: MsgEditExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := a.runner
			if runner == nil {
				runner = editor.ExecRunner{
					Stdin:  cmd.InOrStdin(),
					Stdout: cmd.OutOrStdout(),
					Stderr: cmd.ErrOrStderr(),
				}
			}
			result, err := edit.Run(cmd.Context(), edit.Options{
				Dir:    a.paths.SourceDir(),
				FS:     a.fsys(),
				Editor: a.cfg.Editor,
				Runner: runner,
			})
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(result)
		},
	}
}

func newExecuteCmd(a *app) *cobra.Command {
	var (
		target    string
		dryRun    bool
		strategy  string
		reflink   string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:     "execute [target]",
		Aliases: []string{"exec"},
		Short:   MsgExecuteShort,
		Long:    MsgExecuteLong,
		Example: MsgExecuteExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := resolveTarget(target, args)
			if err != nil {
				return err
			}

			mode, err := filesystem.ParseCloneMode(a.cfg.Execute.Reflink)
			if err != nil {
				return err
			}
			order, err := executor.ParseStrategy(a.cfg.Execute.Strategy)
			if err != nil {
				return err
			}

			opts := execute.Options{
				Dir:       a.paths.SourceDir(),
				Target:    dest,
				FS:        a.fsys(),
				DryRun:    dryRun,
				Reflink:   mode,
				Strategy:  order,
				Overwrite: a.cfg.Execute.Overwrite,
			}
			progress, streaming := a.renderer.(ui.ProgressRenderer)
			if streaming {
				opts.Progress = progress.Progress
			}

			log.Debug().Str("target", dest).Bool("dry_run", dryRun).Msg("Running execute")
			result, err := execute.Run(cmd.Context(), opts)
			if err != nil {
				if result != nil && !streaming {
					_ = a.renderer.RenderResult(result)
				}
				return err
			}
			return a.renderer.RenderResult(result)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&target, "target", "t", "", MsgFlagTarget)
	flags.BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVar(&strategy, "strategy", "", MsgFlagStrategy)
	flags.StringVar(&reflink, "reflink", "", MsgFlagReflink)
	flags.BoolVar(&overwrite, "overwrite", false, MsgFlagOverwrite)
	_ = cmd.MarkFlagDirname("target")

	bindConfig(cmd, "strategy", "execute.strategy")
	bindConfig(cmd, "reflink", "execute.reflink")
	bindConfig(cmd, "overwrite", "execute.overwrite")

	_ = cmd.RegisterFlagCompletionFunc("strategy", fixedCompletion("sequential", "staged"))
	_ = cmd.RegisterFlagCompletionFunc("reflink", fixedCompletion("auto", "always", "never"))

	return cmd
}

// resolveTarget accepts the destination either positionally or as
// --target, but not two different ones.
func resolveTarget(flag string, args []string) (string, error) {
	var positional string
	if len(args) > 0 {
		positional = args[0]
	}

	switch {
	case flag == "" && positional == "":
		return "", errors.New(errors.ErrInvalidInput, MsgErrNoTarget)
	case flag == "":
		return positional, nil
	case positional == "" || positional == flag:
		return flag, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, MsgErrTargetConflict, positional, flag)
	}
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// configView is what mmv config prints
type configView struct {
	UserFile      string         `json:"user_file" yaml:"user_file"`
	WorkspaceFile string         `json:"workspace_file" yaml:"workspace_file"`
	Config        *config.Config `json:"config" yaml:"config"`
}

func (v configView) String() string {
	body, err := v.Config.TOML()
	if err != nil {
		body = err.Error()
	}
	return fmt.Sprintf("# user file:      %s\n# workspace file: %s\n\n%s", v.UserFile, v.WorkspaceFile, body)
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				return a.renderer.RenderMessage(config.DefaultsContent())
			}
			userFile := a.paths.ConfigFilePath()
			if a.configFile != "" {
				userFile = a.configFile
			}
			return a.renderer.RenderResult(configView{
				UserFile:      userFile,
				WorkspaceFile: a.paths.WorkspaceConfigPath(),
				Config:        a.cfg,
			})
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderer.RenderResult(version.Get())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
