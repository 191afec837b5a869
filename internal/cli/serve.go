package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bmpedit/internal/server"
	"github.com/matzehuels/bmpedit/pkg/cache"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transform API over HTTP",
		Long: `Serve the bitmap API:

  GET  /healthz
  GET  /v1/transforms
  POST /v1/info                      (BMP body)
  POST /v1/transform?op=a&op=b       (BMP body, returns BMP)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache, cache.NewScopedKeyer(nil, "api:"))
			if err != nil {
				return err
			}
			defer runner.Close()

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv := server.New(runner, loggerFromContext(ctx), server.Config{
				Addr:         addr,
				MaxBodyBytes: c.Config.Server.MaxBodyBytes,
				Compat:       c.Config.Transform.Compat,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}
