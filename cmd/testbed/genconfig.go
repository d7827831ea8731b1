package testbed

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/testbed/pkg/config"
	"github.com/arthur-debert/testbed/pkg/paths"
	"github.com/spf13/cobra"
)

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.GenerateConfigContent()
			if err != nil {
				return err
			}

			write, _ := cmd.Flags().GetBool("write")
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			p, err := paths.New("")
			if err != nil {
				return err
			}
			target := p.ConfigFilePath()
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)

	return cmd
}
