/*
serve.go - HTTP service startup and graceful shutdown

STARTUP SEQUENCE:
 1. Resolve config (flags > env > config file)
 2. Open the SQLite audit store (":memory:" and "" both supported)
 3. Wire the handler with the Claude extraction backend
 4. Start the HTTP server, shut down gracefully on SIGINT/SIGTERM
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/warp/actuarial-engine/api"
	"github.com/warp/actuarial-engine/parse"
	"github.com/warp/actuarial-engine/store/sqlite"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the projection HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		port := viper.GetInt("port")
		dbPath := viper.GetString("db")

		// Initialize store. An empty path disables audit logging.
		var store *sqlite.Store
		if dbPath != "" {
			var err error
			store, err = sqlite.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer store.Close()
		}

		backend := &parse.ClaudeBackend{
			APIKey: viper.GetString("anthropic_api_key"),
			Model:  viper.GetString("model"),
		}

		handler := api.NewHandler(store, backend)
		router := api.NewRouter(handler)

		server := &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second, // long terms are quadratic to project
			IdleTimeout:  60 * time.Second,
		}

		// Start server in goroutine
		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server starting on http://localhost:%d", port)
			log.Printf("API available at http://localhost:%d/api", port)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		// Wait for interrupt signal
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-quit:
		}

		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Println("Server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "HTTP server port")
	serveCmd.Flags().String("db", "activity.db", "SQLite audit log path (empty disables audit logging)")

	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("db", serveCmd.Flags().Lookup("db"))

	rootCmd.AddCommand(serveCmd)
}
