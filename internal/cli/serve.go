package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mwarrick/digital-business-card-sub004/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API until the
// context is cancelled.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve name tag downloads and previews over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			a, err := openApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := server.New(a.runner,
				server.WithLogger(logger),
				server.WithRequestTimeout(timeout),
			)
			printInfo("Listening on %s", StyleLink.Render("http://"+displayAddr(cfg.Server.Addr)))
			printDetail("store=%s qr=%s cache=%s audit=%s",
				cfg.Store.Backend, cfg.QR.Provider, cfg.Cache.Backend, cfg.Audit.Backend)
			return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().DurationVar(&timeout, "request-timeout", 0, "per-request render timeout (default 60s)")

	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
