package handler

import (
	"encoding/json"
	"net/http"

	"github.com/silvarafa06/1023A-backend-novo-1/internal/entity"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/usecase"
	"go.uber.org/zap"
)

type CartHandler struct {
	cartUC *usecase.CartUseCase
	logger *zap.Logger
}

func NewCartHandler(cartUC *usecase.CartUseCase, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartUC: cartUC,
		logger: logger,
	}
}

type addItemRequest struct {
	UsuarioID     string  `json:"usuarioId"`
	ProdutoID     string  `json:"produtoId"`
	Quantidade    float64 `json:"quantidade"`
	PrecoUnitario float64 `json:"precoUnitario"`
	Nome          string  `json:"nome"`
}

type updateQuantityRequest struct {
	UsuarioID  string  `json:"usuarioId"`
	ProdutoID  string  `json:"produtoId"`
	Quantidade float64 `json:"quantidade"`
}

type removeItemRequest struct {
	UsuarioID string `json:"usuarioId"`
	ProdutoID string `json:"produtoId"`
}

type removeCartRequest struct {
	UsuarioID string `json:"usuarioId"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode add item request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: entity.ErrCamposObrigatorios.Error()})
		return
	}

	carrinho, created, err := h.cartUC.AddItem(r.Context(), usecase.AddItemInput{
		UsuarioID:     req.UsuarioID,
		ProdutoID:     req.ProdutoID,
		Quantidade:    req.Quantidade,
		PrecoUnitario: req.PrecoUnitario,
		Nome:          req.Nome,
	})
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, carrinho)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode update quantity request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: entity.ErrCamposObrigatorios.Error()})
		return
	}

	carrinho, err := h.cartUC.UpdateQuantity(r.Context(), usecase.UpdateQuantityInput{
		UsuarioID:  req.UsuarioID,
		ProdutoID:  req.ProdutoID,
		Quantidade: req.Quantidade,
	})
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, carrinho)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode remove item request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: entity.ErrCamposObrigatorios.Error()})
		return
	}

	carrinho, err := h.cartUC.RemoveItem(r.Context(), req.UsuarioID, req.ProdutoID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, carrinho)
}

func (h *CartHandler) RemoveCart(w http.ResponseWriter, r *http.Request) {
	var req removeCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode remove cart request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: entity.ErrUsuarioIDObrigatorio.Error()})
		return
	}

	if err := h.cartUC.RemoveCart(r.Context(), req.UsuarioID); err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Carrinho removido"})
}

// GetCart reads the cart identified by the usuarioId query parameter.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.URL.Query().Get("usuarioId")

	carrinho, err := h.cartUC.GetCart(r.Context(), usuarioID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, carrinho)
}
