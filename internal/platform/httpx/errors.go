package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrUnknownEntity = errors.New("entidade não encontrada")
	ErrNotFound      = errors.New("registro não encontrado")
	ErrValidation    = errors.New("dados inválidos")
	ErrDuplicate     = errors.New("registro duplicado")
	ErrUnauthorized  = errors.New("credenciais inválidas")
)

// RespondError maps domain errors to `{"message": ...}` HTTP responses.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownEntity):
		Message(w, http.StatusNotFound, ErrUnknownEntity.Error())
	case errors.Is(err, ErrNotFound):
		Message(w, http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrValidation):
		Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDuplicate):
		Message(w, http.StatusConflict, ErrDuplicate.Error())
	case errors.Is(err, ErrUnauthorized):
		Message(w, http.StatusUnauthorized, ErrUnauthorized.Error())
	default:
		Message(w, http.StatusInternalServerError, "erro interno")
	}
}
