package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

func (s *Server) CreateConnection(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeError(w, domain.NewUnauthorized("missing actor identity"))
		return
	}

	var body CreateConnectionDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	connection, err := s.connectionService.CreateConnection(r.Context(), domain.CreateConnectionRequest{
		InitiatorID:      actor,
		RecipientID:      body.ReceiverID,
		BucketType:       entities.BucketType(body.BucketType),
		RelationLabel:    body.RelationLabel,
		SubRelationLabel: body.SubRelationLabel,
	})
	if err != nil {
		log.Printf("ERROR: Failed to create connection: %v", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "connection request sent", connection)
}

func (s *Server) UpdateConnectionStatus(w http.ResponseWriter, r *http.Request) {
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

	connection, err := s.connectionService.UpdateConnectionStatus(r.Context(), id, entities.ConnectionStatus(body.NewStatus), actor)
	if err != nil {
		log.Printf("ERROR: Failed to update connection %d status: %v", id, err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "connection status updated", connection)
}

func (s *Server) RelabelConnection(w http.ResponseWriter, r *http.Request) {
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

	request := domain.RelabelConnectionRequest{
		SubRelationLabel: body.SubRelation,
	}
	if body.BucketType != nil {
		bucket := entities.BucketType(*body.BucketType)
		request.BucketType = &bucket
	}

	connection, err := s.connectionService.RelabelConnection(r.Context(), id, actor, request)
	if err != nil {
		log.Printf("ERROR: Failed to relabel connection %d: %v", id, err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "connection updated", connection)
}

func (s *Server) DeleteConnection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid connection id", http.StatusBadRequest)
		return
	}

	if err := s.connectionService.DeleteConnection(r.Context(), id); err != nil {
		log.Printf("ERROR: Failed to delete connection %d: %v", id, err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "connection deleted", nil)
}
