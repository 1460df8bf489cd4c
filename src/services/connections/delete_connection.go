package connections

import (
	"context"
)

// DeleteConnection remove a aresta V1 e seu bucket assignment. Hard delete
// incondicional: autorização fica na borda que chama, não aqui.
func (s *ConnectionService) DeleteConnection(ctx context.Context, connectionID int64) error {
	if err := s.connectionRepository.Delete(ctx, connectionID); err != nil {
		return err
	}

	s.logger.Info("Connection deleted", "connection_id", connectionID)
	return nil
}
