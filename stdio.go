package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/wricardo/tilemerge/api"
	"github.com/wricardo/tilemerge/game/config"
	"github.com/wricardo/tilemerge/game/service"
	"github.com/wricardo/tilemerge/transport/mcp"
	"github.com/wricardo/tilemerge/transport/websocket"
)

// externalAPIAvailable reports whether a tilemerge API answers at baseURL.
func externalAPIAvailable(ctx context.Context, baseURL string) bool {
	if baseURL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// startInternalAPI serves the REST API on a random loopback port until ctx
// is cancelled and returns its base URL.
func startInternalAPI(ctx context.Context, settings config.Settings, logger *zap.Logger) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to get available port: %w", err)
	}

	manager := newSessionManager(settings, logger)
	gameService := service.NewGameService(manager, logger.Named("service"))
	hub := websocket.NewHub(logger.Named("websocket"))
	go hub.Run(ctx)
	go cleanupLoop(ctx, manager, settings.SessionTTL, settings.CleanupInterval, logger)

	httpServer := &http.Server{Handler: api.NewServer(gameService, hub, logger.Named("api"))}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("internal http server error", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	baseURL := "http://" + listener.Addr().String()
	logger.Info("internal http server started", zap.String("url", baseURL))
	return baseURL, nil
}

// runStdioMCP serves MCP over stdin/stdout. It reuses the external API when
// one answers and otherwise starts an internal one.
func runStdioMCP(ctx context.Context, settings config.Settings, logger *zap.Logger) error {
	baseURL := settings.ExternalAPI
	if externalAPIAvailable(ctx, baseURL) {
		logger.Info("using external API", zap.String("url", baseURL))
	} else {
		var err error
		baseURL, err = startInternalAPI(ctx, settings, logger)
		if err != nil {
			return err
		}
	}

	mcpClient := mcp.NewClient(baseURL, logger.Named("mcp"))

	stdio := server.NewStdioServer(mcpClient.GetMCPServer())
	stdio.SetErrorLogger(zap.NewStdLog(logger.Named("stdio")))

	logger.Info("mcp stdio server ready")
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp stdio server: %w", err)
	}
	return nil
}
