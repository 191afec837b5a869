package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bmpedit/pkg/bitmap/transform"
	"github.com/matzehuels/bmpedit/pkg/pipeline"
)

type applyFlags struct {
	ops     string
	output  string
	compat  bool
	noCache bool
	refresh bool
}

func (c *CLI) applyCommand() *cobra.Command {
	var flags applyFlags

	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply transforms to a bitmap and save the result",
		Long: `Apply a chain of transforms to a 24-bit BMP and write the result.

Transforms run left to right and may be given by name or menu key:
` + "  " + strings.Join(transform.Names(), ", ") + `

Results are cached by input content and transform chain.`,
		Example: `  bmpedit apply photo.bmp -t mirror,grayscale -o out.bmp
  bmpedit apply photo.bmp -t o,o -o flipped.bmp --no-cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runApply(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.ops, "transform", "t", "", "comma-separated transforms to apply in order")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (required)")
	cmd.Flags().BoolVar(&flags.compat, "compat", false, "use the legacy reflect and posterize variants")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute and overwrite a cached result")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (c *CLI) runApply(cmd *cobra.Command, input string, flags applyFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, flags.noCache, nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := pipeline.Options{
		Input:   input,
		Output:  flags.output,
		Ops:     parseOps(flags.ops),
		Compat:  flags.compat || c.Config.Transform.Compat,
		NoCache: flags.noCache,
		Refresh: flags.refresh,
		Logger:  logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(logger)
	var spin *Spinner
	if c.Logger.GetLevel() > LogDebug {
		spin = newSpinner(ctx, os.Stderr, "Applying "+strings.Join(opts.Ops, ", ")+"...")
		spin.Start()
	}
	res, err := runner.Execute(ctx, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("Wrote " + flags.output)

	printSuccess("Applied %d transform(s)", len(opts.Ops))
	printStats(res.Stats.InWidth, res.Stats.InHeight, res.Stats.OutWidth, res.Stats.OutHeight, res.CacheInfo.Hit)
	printFile(flags.output)
	return nil
}

// parseOps splits a comma-separated transform list, dropping empty items.
func parseOps(s string) []string {
	var ops []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ops = append(ops, part)
		}
	}
	return ops
}
