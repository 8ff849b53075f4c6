package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourorg/financiero/internal/api"
	"github.com/yourorg/financiero/internal/auth"
	"github.com/yourorg/financiero/internal/report"
)

var addr string

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiCfg := api.LoadConfig()
			if addr != "" {
				apiCfg.Addr = addr
			}
			authCfg := auth.LoadConfig()
			var limiter *auth.RateLimiter
			if authCfg.RateLimitPerMinute > 0 {
				limiter = auth.NewRateLimiter(authCfg.RateLimitPerMinute, authCfg.RateBurst)
			}
			if !authCfg.Enabled() {
				appCtx.logger.Warn("API_KEY_HASH not set; API is open to any caller on " + apiCfg.Addr)
			}

			h := api.NewHandler(apiCfg, appCtx.svc, report.NewRenderer(report.LoadConfig()), appCtx.logger)
			router := api.NewRouter(h, authCfg, limiter)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return api.Serve(ctx, apiCfg, router, appCtx.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (env HTTP_ADDR, default :8080)")
	return cmd
}
