package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian/starchart/internal/api"
	"github.com/meridian/starchart/pkg/buildinfo"
	"github.com/meridian/starchart/pkg/cache"
	"github.com/meridian/starchart/pkg/drafts"
	"github.com/meridian/starchart/pkg/pipeline"
)

// serveCommand creates the API server command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin console API server",
		Long: `Serve exposes the map pipeline, the allocator, and draft management
over HTTP for the admin console frontend. The cache and draft backends
come from the config file; a multi-instance deployment wants redis and
mongo there instead of the file defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.newUniverseClient()
			if err != nil {
				return err
			}

			store, err := c.newServerCache(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			draftStore, err := c.newDraftStore(ctx)
			if err != nil {
				return err
			}
			defer draftStore.Close(ctx)

			server := &api.Server{
				Runner:  pipeline.NewRunner(client, store, nil, c.Logger),
				Galaxy:  client,
				Drafts:  draftStore,
				Logger:  c.Logger,
				Version: buildinfo.Version,
			}

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				c.Logger.Info("shutting down")
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8090", "listen address")

	return cmd
}

// newServerCache builds the cache backend for the API server. Unlike the
// CLI path, redis is honored here.
func (c *CLI) newServerCache(ctx context.Context) (cache.Cache, error) {
	switch c.Config.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.Redis.Addr,
			Password: c.Config.Cache.Redis.Password,
			DB:       c.Config.Cache.Redis.DB,
		})
	default:
		return c.newCache(false)
	}
}

// newDraftStore builds the draft store from config.
func (c *CLI) newDraftStore(ctx context.Context) (drafts.Store, error) {
	if c.Config.Drafts.Backend == "mongo" {
		return drafts.NewMongoStore(ctx, drafts.MongoConfig{
			URI:      c.Config.Drafts.Mongo.URI,
			Database: c.Config.Drafts.Mongo.Database,
		})
	}
	return drafts.NewFileStore(c.Config.Drafts.Dir)
}
