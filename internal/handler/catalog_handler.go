package handler

import (
	"encoding/json"
	"net/http"

	"github.com/silvarafa06/1023A-backend-novo-1/internal/usecase"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
	logger    *zap.Logger
}

func NewCatalogHandler(catalogUC *usecase.CatalogUseCase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

func (h *CatalogHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var doc map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.logger.Debug("Failed to decode product request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Corpo da requisição inválido"})
		return
	}

	stored, err := h.catalogUC.AddProduct(r.Context(), doc)
	if err != nil {
		h.logger.Error("Failed to add product", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: internalErrorMessage})
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: internalErrorMessage})
		return
	}
	writeJSON(w, http.StatusOK, products)
}
