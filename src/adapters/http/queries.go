package http

import (
	"log"
	"net/http"

	"github.com/cantdoitbye/backend-sub007/src/domain"
)

func (s *Server) ListConnections(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeError(w, domain.NewUnauthorized("missing actor identity"))
		return
	}

	status, ok := parseStatusFilter(r.URL.Query().Get("status"))
	if !ok {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	bucket, ok := parseBucketFilter(r.URL.Query().Get("bucket"))
	if !ok {
		http.Error(w, "Invalid bucket filter", http.StatusBadRequest)
		return
	}

	connections, err := s.connectionService.ListConnections(r.Context(), actor, domain.ConnectionFilter{
		Status:     status,
		BucketType: bucket,
	})
	if err != nil {
		log.Printf("ERROR: Failed to list connections for %s: %v", actor, err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", connections)
}

func (s *Server) GetConnection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid connection id", http.StatusBadRequest)
		return
	}

	connection, err := s.connectionService.GetConnection(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", connection)
}

func (s *Server) GetConnectionV2(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid connection id", http.StatusBadRequest)
		return
	}

	connection, err := s.connectionService.GetConnectionV2(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", connection)
}

func (s *Server) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	stats, err := s.statsService.GetUserStats(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR: Failed to get stats for %s: %v", userID, err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", stats)
}

func (s *Server) RefreshUserStats(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	stats, err := s.statsService.RefreshSentReceived(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR: Failed to refresh stats for %s: %v", userID, err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "stats refreshed", stats)
}
