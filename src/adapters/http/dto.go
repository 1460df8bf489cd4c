package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// Envelope padrão de todas as respostas: o caller decide pelo error_kind,
// nunca pelo texto de message.
type ResultDTO struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	ErrorKind string      `json:"error_kind,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

type CreateConnectionDTO struct {
	ReceiverID       string `json:"receiver_id"`
	BucketType       string `json:"bucket_type"`
	RelationLabel    string `json:"relation"`
	SubRelationLabel string `json:"sub_relation"`
}

type CreateConnectionV2DTO struct {
	ReceiverID  string `json:"receiver_id"`
	SubRelation string `json:"sub_relation"`
}

type UpdateStatusDTO struct {
	NewStatus string `json:"new_status"`
}

type RelabelConnectionDTO struct {
	BucketType  *string `json:"bucket_type,omitempty"`
	SubRelation *string `json:"sub_relation,omitempty"`
}

// actorID extrai a identidade já resolvida pelo gateway de autenticação.
func actorID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func writeResult(w http.ResponseWriter, statusCode int, result ResultDTO) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(result)
}

func writeSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	writeResult(w, statusCode, ResultDTO{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// writeError traduz a taxonomia de erros do domínio para HTTP. Falhas não
// estruturadas nunca vazam detalhe interno para o caller.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	message := err.Error()
	statusCode := http.StatusInternalServerError

	switch kind {
	case domain.ErrorKindNotFound:
		statusCode = http.StatusNotFound
	case domain.ErrorKindUnauthorized:
		statusCode = http.StatusForbidden
	case domain.ErrorKindConflict:
		statusCode = http.StatusConflict
	case domain.ErrorKindLimitExceeded:
		statusCode = http.StatusTooManyRequests
	case domain.ErrorKindInternal:
		message = "Oops, something unexpected happened. Please try again later."
	}

	writeResult(w, statusCode, ResultDTO{
		Success:   false,
		Message:   message,
		ErrorKind: string(kind),
	})
}

func parseStatusFilter(value string) (*entities.ConnectionStatus, bool) {
	if value == "" {
		return nil, true
	}

	status := entities.ConnectionStatus(value)
	if !status.Valid() {
		return nil, false
	}
	return &status, true
}

func parseBucketFilter(value string) (*entities.BucketType, bool) {
	if value == "" {
		return nil, true
	}

	bucket := entities.BucketType(value)
	if !bucket.Valid() {
		return nil, false
	}
	return &bucket, true
}
