package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/energylevels/internal/server"
	"github.com/matzehuels/energylevels/pkg/cache"
	"github.com/matzehuels/energylevels/pkg/observability"
	"github.com/matzehuels/energylevels/pkg/pipeline"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		keyPrefix string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render and layout API over HTTP",
		Long: `Serve the render and layout API over HTTP.

  POST /v1/render?format=svg   render the posted diagram
  POST /v1/layout              label positions as JSON
  GET  /healthz                liveness probe

Rendered artifacts are cached on disk, or in Redis with --redis so that several
instances can share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, keyPrefix, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (host:port) for a shared cache")
	cmd.Flags().StringVar(&keyPrefix, "key-prefix", "", "namespace for cache keys in a shared Redis")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr, keyPrefix string, noCache bool) error {
	logger := loggerFromContext(ctx)

	var store cache.Cache
	switch {
	case noCache:
		store = cache.NewNullCache()
	case redisAddr != "":
		rc, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("using redis cache", "addr", redisAddr)
		store = rc
	default:
		var err error
		if store, err = newCache(false); err != nil {
			return err
		}
	}

	hooks := observability.LogHooks{Logger: logger}
	observability.SetPipelineHooks(hooks)
	observability.SetHTTPHooks(hooks)

	var keyer cache.Keyer
	if keyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, keyPrefix)
	}

	runner := pipeline.NewRunner(store, keyer, logger)
	defer runner.Close()

	return server.New(runner, logger).ListenAndServe(ctx, addr)
}
