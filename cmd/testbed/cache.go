package testbed

import (
	"fmt"
	"os"

	"github.com/arthur-debert/testbed/pkg/filesystem"
	"github.com/arthur-debert/testbed/pkg/logging"
	"github.com/arthur-debert/testbed/pkg/modload"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cache",
		Short:   MsgCacheShort,
		Example: MsgCacheExample,
	}

	cmd.AddCommand(newCacheListCmd())
	cmd.AddCommand(newCachePurgeCmd())

	return cmd
}

func cacheRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func newCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: MsgCacheListShort,
		Long:  MsgCacheListLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cacheRoot(args)
			fs := filesystem.NewOS()

			log.Info().Str("root", root).Msg("Listing compiled module artifacts")

			artifacts := modload.Artifacts(fs, root)
			if len(artifacts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoArtifacts)
				return nil
			}

			// Plain paths when piped, a table on a terminal
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				for _, path := range artifacts {
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
				return nil
			}

			data := pterm.TableData{{"ARTIFACT", "SIZE", "MODIFIED"}}
			for _, path := range artifacts {
				info, err := fs.Stat(path)
				if err != nil {
					data = append(data, []string{path, "?", "?"})
					continue
				}
				data = append(data, []string{
					path,
					fmt.Sprintf("%d", info.Size()),
					info.ModTime().Format("2006-01-02 15:04:05"),
				})
			}

			rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}

func newCachePurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge [dir]",
		Short: MsgCachePurgeShort,
		Long:  MsgCachePurgeLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cacheRoot(args)
			fs := filesystem.NewOS()

			logger := logging.GetLogger("cmd.cache")
			done := logging.LogOperationStart(logger, "purge")
			defer done()
			logger.Info().Str("root", root).Msg("Purging compiled module artifacts")

			modload.RemoveCaches(fs, root)
			fmt.Fprintf(cmd.OutOrStdout(), MsgArtifactsPurged, root)
			return nil
		},
	}
}
