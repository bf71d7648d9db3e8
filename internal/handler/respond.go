package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/silvarafa06/1023A-backend-novo-1/internal/entity"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

const internalErrorMessage = "Erro interno do servidor"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeBusinessError maps the error taxonomy onto HTTP statuses: validation
// and conflict errors are 400, not-found errors are 404, anything else is a
// storage failure reported as a generic 500 without internal detail.
func writeBusinessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrCamposObrigatorios),
		errors.Is(err, entity.ErrUsuarioIDObrigatorio),
		errors.Is(err, entity.ErrProdutoJaNoCarrinho),
		errors.Is(err, entity.ErrCarrinhoCheio):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrCarrinhoNaoEncontrado),
		errors.Is(err, entity.ErrItemNaoEncontrado):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: internalErrorMessage})
	}
}
