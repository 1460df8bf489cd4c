package connections

import (
	"context"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// ListConnections lista as arestas V1 do ator, filtráveis por status e
// bucket.
func (s *ConnectionService) ListConnections(ctx context.Context, actorID string, filter domain.ConnectionFilter) ([]entities.Connection, error) {
	return s.connectionRepository.ListForUser(ctx, actorID, filter)
}

// GetConnection busca uma aresta V1 por id.
func (s *ConnectionService) GetConnection(ctx context.Context, connectionID int64) (entities.Connection, error) {
	return s.connectionRepository.GetByID(ctx, connectionID)
}

// GetConnectionV2 busca uma aresta V2 por id, com o mapa de participantes.
func (s *ConnectionService) GetConnectionV2(ctx context.Context, connectionID int64) (entities.ConnectionV2, error) {
	return s.connectionV2Repository.GetByID(ctx, connectionID)
}
