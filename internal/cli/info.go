package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bmpedit/pkg/bmp"
	"github.com/matzehuels/bmpedit/pkg/fileio"
)

func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Print a bitmap's header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var h bmp.Header
			err := fileio.WithReadable(args[0], func(buf []byte) error {
				var err error
				h, err = bmp.ReadHeader(buf)
				return err
			})
			if err != nil {
				return err
			}
			renderHeader(cmd.OutOrStdout(), args[0], h)
			return nil
		},
	}
}
