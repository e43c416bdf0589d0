package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowpad/flowpad/internal/server"
	"github.com/flowpad/flowpad/pkg/store"
)

// newServeCmd creates the serve command: the HTTP API for the editor.
func newServeCmd() *cobra.Command {
	var (
		listen  string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram HTTP API",
		Long: `Serve starts the HTTP API used by the editor frontend: parsing,
layout, diagram CRUD, export, share tokens, and autosave. The persistence
backend comes from the config file and can be overridden with --store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			if listen == "" {
				listen = cfg.Listen
			}
			if backend != "" {
				cfg.Store.Backend = backend
			}

			st, err := store.Open(ctx, store.Config{
				Backend:       cfg.Store.Backend,
				Path:          cfg.Store.Path,
				RedisAddr:     cfg.Store.RedisAddr,
				RedisPassword: cfg.Store.RedisPassword,
				RedisDB:       cfg.Store.RedisDB,
				TTL:           cfg.Store.TTL(),
				MongoURI:      cfg.Store.MongoURI,
				MongoDatabase: cfg.Store.MongoDatabase,
			})
			if err != nil {
				return err
			}
			defer st.Close()

			srv := &http.Server{
				Addr:              listen,
				Handler:           server.New(st, engineFromConfig(cfg), logger).Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Listening", "addr", listen, "store", cfg.Store.Backend)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				logger.Info("Shut down cleanly")
				return ctx.Err()
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config, :8420)")
	cmd.Flags().StringVar(&backend, "store", "", "persistence backend: memory, file, redis, mongo")

	return cmd
}
