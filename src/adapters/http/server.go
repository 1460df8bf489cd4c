package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/cantdoitbye/backend-sub007/src/services/connections"
	"github.com/cantdoitbye/backend-sub007/src/services/stats"
)

// Server representa o servidor HTTP da API
type Server struct {
	logger            *slog.Logger
	server            *http.Server
	mux               *http.ServeMux
	port              int
	connectionService *connections.ConnectionService
	statsService      *stats.StatsService
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	connectionService *connections.ConnectionService,
	statsService *stats.StatsService,
) *Server {
	server := &Server{
		mux:               http.NewServeMux(),
		port:              port,
		logger:            logger,
		connectionService: connectionService,
		statsService:      statsService,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Rotas de escrita V1
	server.mux.HandleFunc("POST /v1/connections", server.CreateConnection)
	server.mux.HandleFunc("PATCH /v1/connections/{id}/status", server.UpdateConnectionStatus)
	server.mux.HandleFunc("PATCH /v1/connections/{id}", server.RelabelConnection)
	server.mux.HandleFunc("DELETE /v1/connections/{id}", server.DeleteConnection)

	// Rotas de escrita V2
	server.mux.HandleFunc("POST /v2/connections", server.CreateConnectionV2)
	server.mux.HandleFunc("PATCH /v2/connections/{id}/status", server.UpdateConnectionV2Status)
	server.mux.HandleFunc("PATCH /v2/connections/{id}", server.RelabelConnectionV2)

	// Rotas de leitura
	server.mux.HandleFunc("GET /v1/connections", server.ListConnections)
	server.mux.HandleFunc("GET /v1/connections/{id}", server.GetConnection)
	server.mux.HandleFunc("GET /v2/connections/{id}", server.GetConnectionV2)
	server.mux.HandleFunc("GET /v1/users/{id}/stats", server.GetUserStats)
	server.mux.HandleFunc("POST /v1/users/{id}/stats/refresh", server.RefreshUserStats)

	return server
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
