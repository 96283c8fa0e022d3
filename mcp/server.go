// Package mcp exposes the RenderJet operations as MCP tools so agent
// hosts can render HTML and process images/PDFs without a bespoke
// integration.
package mcp

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/renderjet/renderjet-go/client"
	"github.com/renderjet/renderjet-go/internal/config"
	"github.com/renderjet/renderjet-go/mcp/internal/handlers"
)

type serverConfig struct {
	ServerName      string
	ServerVersion   string
	ListenAddr      string
	ShutdownTimeout time.Duration
	HTTPReadTimeout time.Duration
	HTTPIdleTimeout time.Duration
}

func loadServerConfig() serverConfig {
	return serverConfig{
		ServerName:      getEnvOrDefault("MCP_SERVER_NAME", "renderjet-mcp-server"),
		ServerVersion:   getEnvOrDefault("MCP_SERVER_VERSION", "0.1.0"),
		ListenAddr:      getEnvOrDefault("MCP_LISTEN_ADDR", ":8196"),
		ShutdownTimeout: parseDurationOrDefault("SHUTDOWN_TIMEOUT", "10s"),
		HTTPReadTimeout: parseDurationOrDefault("HTTP_READ_TIMEOUT", "5s"),
		HTTPIdleTimeout: parseDurationOrDefault("HTTP_IDLE_TIMEOUT", "120s"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(envKey, defaultValue string) time.Duration {
	if value := os.Getenv(envKey); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

func registerHandler(s *server.MCPServer, handler toolRegisterer, name string) {
	if err := handler.RegisterTools(s); err != nil {
		log.Fatal().Err(err).Msgf("Failed to register %s tools", name)
	}
}

// RunMCPServer starts the MCP server, choosing stdio or streamable HTTP
// transport automatically.
func RunMCPServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.InitLogger()
	config.SetLogLevel(cfg.LogLevel)

	srvCfg := loadServerConfig()

	api := client.New(cfg.BaseURL, cfg.APIKey,
		client.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		client.WithUserAgent(srvCfg.ServerName+"/"+srvCfg.ServerVersion),
	)

	s := server.NewMCPServer(
		srvCfg.ServerName,
		srvCfg.ServerVersion,
		server.WithToolCapabilities(true),
	)

	registerHandler(s, handlers.NewRenderHandler(api), "render")
	registerHandler(s, handlers.NewImageHandler(api), "image")
	registerHandler(s, handlers.NewPDFHandler(api), "pdf")
	registerHandler(s, handlers.NewToolsHandler(api), "tools")

	if shouldUseStdio() {
		log.Info().Msg("Starting RenderJet MCP server (stdio transport)")
		if err := server.ServeStdio(s); err != nil {
			log.Fatal().Err(err).Msg("Stdio server error")
		}
		return nil
	}

	log.Info().Str("addr", srvCfg.ListenAddr).Msg("Starting RenderJet MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	shutdownComplete := make(chan struct{})

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)

	srv := &http.Server{
		Addr:         srvCfg.ListenAddr,
		Handler:      streamSrv,
		ReadTimeout:  srvCfg.HTTPReadTimeout,
		WriteTimeout: 0, // no deadline, required for SSE streaming
		IdleTimeout:  srvCfg.HTTPIdleTimeout,
	}

	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("HTTP server error")
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio determines the transport: forced via MCP_STDIO/MCP_HTTP,
// otherwise stdio when stdin is not a terminal (launched by a host).
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
