package handler

import (
	"encoding/json"
	"net/http"

	"github.com/silvarafa06/1023A-backend-novo-1/internal/usecase"
	"go.uber.org/zap"
)

type UserHandler struct {
	userUC *usecase.UserUseCase
	logger *zap.Logger
}

func NewUserHandler(userUC *usecase.UserUseCase, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userUC: userUC,
		logger: logger,
	}
}

func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var doc map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.logger.Debug("Failed to decode user request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Corpo da requisição inválido"})
		return
	}

	stored, err := h.userUC.AddUser(r.Context(), doc)
	if err != nil {
		h.logger.Error("Failed to add user", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: internalErrorMessage})
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUC.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: internalErrorMessage})
		return
	}
	writeJSON(w, http.StatusOK, users)
}
