package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/tilemerge/api"
	"github.com/wricardo/tilemerge/game/config"
	"github.com/wricardo/tilemerge/game/service"
	"github.com/wricardo/tilemerge/game/session"
	"github.com/wricardo/tilemerge/transport/mcp"
	"github.com/wricardo/tilemerge/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

// newSessionManager builds the in-memory session registry.
func newSessionManager(settings config.Settings, logger *zap.Logger) *session.Manager {
	manager := session.NewManagerWithLogger(logger.Named("session"))
	if settings.DefaultSeed != nil {
		manager.SetDefaultSeed(*settings.DefaultSeed)
	}
	return manager
}

// newHandler mounts the REST API at / and the MCP proxy at /mcp. The MCP
// tools call back into the REST API at baseURL.
func newHandler(baseURL string, gameService service.GameService, hub *websocket.Hub, logger *zap.Logger) http.Handler {
	apiServer := api.NewServer(gameService, hub, logger.Named("api"))
	mcpClient := mcp.NewClient(baseURL, logger.Named("mcp"))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))
	return mainRouter
}

// mcpHandler answers one JSON-RPC message per POST
func mcpHandler(client *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	}
}

// runServer serves HTTP (and optionally an ngrok tunnel) until ctx is
// cancelled, then shuts everything down.
func runServer(ctx context.Context, settings config.Settings, logger *zap.Logger) error {
	manager := newSessionManager(settings, logger)
	gameService := service.NewGameService(manager, logger.Named("service"))
	hub := websocket.NewHub(logger.Named("websocket"))

	addr := settings.Addr()
	handler := newHandler("http://"+addr, gameService, hub, logger)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		cleanupLoop(gctx, manager, settings.SessionTTL, settings.CleanupInterval, logger)
		return nil
	})

	g.Go(func() error {
		logger.Info("http server listening",
			zap.String("addr", addr),
			zap.String("api", fmt.Sprintf("http://%s/api", addr)),
			zap.String("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)),
			zap.String("mcp", fmt.Sprintf("http://%s/mcp", addr)))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	if settings.Ngrok.Enabled {
		g.Go(func() error {
			return serveNgrok(gctx, settings.Ngrok, handler, logger.Named("ngrok"))
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	logger.Info("server stopped")
	return err
}

// cleanupLoop removes idle sessions every interval until ctx is cancelled.
// A non-positive interval or ttl disables cleanup.
func cleanupLoop(ctx context.Context, manager *session.Manager, ttl, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 || ttl <= 0 {
		logger.Info("session cleanup disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				logger.Info("cleaned up expired sessions",
					zap.Int("removed", removed),
					zap.Int("remaining", manager.Count()))
			}
		}
	}
}

// serveNgrok exposes handler through an ngrok tunnel until ctx is cancelled.
func serveNgrok(ctx context.Context, settings config.NgrokSettings, handler http.Handler, logger *zap.Logger) error {
	var tunnel ngrokConfig.Tunnel
	if settings.Domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(settings.Domain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(settings.AuthToken))
	if err != nil {
		// The local server keeps running without the tunnel
		logger.Error("failed to start ngrok tunnel", zap.Error(err))
		return nil
	}

	url := tun.URL()
	logger.Info("ngrok tunnel established",
		zap.String("url", url),
		zap.String("api", url+"/api"),
		zap.String("mcp", url+"/mcp"))

	tunnelServer := &http.Server{Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		tunnelServer.Shutdown(shutdownCtx)
	}()

	if err := tunnelServer.Serve(tun); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("ngrok server error", zap.Error(err))
	}
	logger.Info("ngrok tunnel closed")
	return nil
}
