package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bmpedit/pkg/bitmap/transform"
)

func (c *CLI) editCommand() *cobra.Command {
	var compat bool

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Edit a bitmap interactively",
		Long: `Open a 24-bit BMP and edit it from a menu.

Each key applies one transform to the image in memory:

  G grayscale   P posterize   U squash   M mirror
  R reflect     O rotate      K skew     H shrink

S asks for a filename and saves the current image, Q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, true, nil)
			if err != nil {
				return err
			}
			defer runner.Close()

			g, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("loaded bitmap", "path", args[0], "width", g.Width, "height", g.Height)

			opts := transform.Options{Compat: compat || c.Config.Transform.Compat}
			final, err := tea.NewProgram(NewEditorModel(ctx, runner, args[0], g, opts), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("editor: %w", err)
			}
			if m, ok := final.(EditorModel); ok && len(m.Saved) == 0 && len(m.History) > 0 {
				printWarning("Quit without saving %d edit(s)", len(m.History))
			}
			fmt.Println("Bye.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&compat, "compat", false, "use the legacy reflect and posterize variants")
	return cmd
}
