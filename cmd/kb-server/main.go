package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nrivera/botkb/internal/config"
	"github.com/nrivera/botkb/internal/mcp"
)

const shutdownGrace = 5 * time.Second

func main() {
	root := newRootCommand()
	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("kb-server: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "kb-server",
		Short: "Serve the knowledge base over MCP",
		RunE:  serve,
	}
	flags := root.PersistentFlags()
	flags.String("postgres-url", "", "Postgres connection URL")
	flags.String("ollama-url", "", "Ollama base URL")
	flags.String("cache-dir", "", "Cache directory path")
	flags.String("host", "0.0.0.0", "HTTP listen host")
	flags.Int("port", 8000, "HTTP listen port")
	return root
}

func serve(cmd *cobra.Command, args []string) error {
	srv := mcp.New(mcp.DefaultConfig())
	defer srv.Close()

	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: srv.Handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("MCP server listening on %s", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
