package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

func (s *Server) CreateConnectionV2(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeError(w, domain.NewUnauthorized("missing actor identity"))
		return
	}

	var body CreateConnectionV2DTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	// A resposta de criação V2 nunca inclui a aresta, mesmo em sucesso.
	// Comportamento de referência preservado.
	_, err := s.connectionService.CreateConnectionV2(r.Context(), actor, body.ReceiverID, body.SubRelation)
	if err != nil {
		log.Printf("ERROR: Failed to create v2 connection: %v", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "connection request sent", nil)
}

func (s *Server) UpdateConnectionV2Status(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeError(w, domain.NewUnauthorized("missing actor identity"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid connection id", http.StatusBadRequest)
		return
	}

	var body UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	_, err = s.connectionService.UpdateConnectionV2Status(r.Context(), id, entities.ConnectionStatus(body.NewStatus), actor)
	if err != nil {
		log.Printf("ERROR: Failed to update v2 connection %d status: %v", id, err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "connection status updated", nil)
}

func (s *Server) RelabelConnectionV2(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeError(w, domain.NewUnauthorized("missing actor identity"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid connection id", http.StatusBadRequest)
		return
	}

	var body RelabelConnectionDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	request := domain.RelabelConnectionV2Request{
		SubRelation: body.SubRelation,
	}
	if body.BucketType != nil {
		bucket := entities.BucketType(*body.BucketType)
		request.BucketType = &bucket
	}

	_, err = s.connectionService.RelabelConnectionV2(r.Context(), id, actor, request)
	if err != nil {
		log.Printf("ERROR: Failed to relabel v2 connection %d: %v", id, err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "connection updated", nil)
}
