package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/entity"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/handler"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/port/repository"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/router"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memCartRepo is an in-memory CartRepository so handler tests can run the
// full request path through the real router and usecase.
type memCartRepo struct {
	carts map[string]*entity.Carrinho
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*entity.Carrinho)}
}

func clone(c *entity.Carrinho) *entity.Carrinho {
	cp := *c
	cp.Itens = append([]entity.ItemCarrinho(nil), c.Itens...)
	return &cp
}

func (r *memCartRepo) GetByUserID(_ context.Context, usuarioID string) (*entity.Carrinho, error) {
	c, ok := r.carts[usuarioID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(c), nil
}

func (r *memCartRepo) Insert(_ context.Context, c *entity.Carrinho) error {
	if _, ok := r.carts[c.UsuarioID]; ok {
		return repository.ErrAlreadyExists
	}
	r.carts[c.UsuarioID] = clone(c)
	return nil
}

func (r *memCartRepo) Update(_ context.Context, c *entity.Carrinho) error {
	if _, ok := r.carts[c.UsuarioID]; !ok {
		return repository.ErrNotFound
	}
	r.carts[c.UsuarioID] = clone(c)
	return nil
}

func (r *memCartRepo) DeleteByUserID(_ context.Context, usuarioID string) error {
	delete(r.carts, usuarioID)
	return nil
}

type memDocRepo struct {
	docs []map[string]interface{}
}

func (r *memDocRepo) Insert(_ context.Context, doc map[string]interface{}) (map[string]interface{}, error) {
	r.docs = append(r.docs, doc)
	return doc, nil
}

func (r *memDocRepo) List(_ context.Context) ([]map[string]interface{}, error) {
	if r.docs == nil {
		return []map[string]interface{}{}, nil
	}
	return r.docs, nil
}

func newTestRouter() *chi.Mux {
	log := zap.NewNop()
	cartUC := usecase.NewCartUseCase(newMemCartRepo(), nil, nil, nil, log, 0)
	catalogUC := usecase.NewCatalogUseCase(&memDocRepo{}, log)
	userUC := usecase.NewUserUseCase(&memDocRepo{}, log)

	return router.New(
		handler.NewCartHandler(cartUC, log),
		handler.NewCatalogHandler(catalogUC, log),
		handler.NewUserHandler(userUC, log),
		nil,
		log,
	)
}

func doRequest(t *testing.T, mux *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) entity.Carrinho {
	t.Helper()
	var c entity.Carrinho
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	return c
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestCartLifecycle(t *testing.T) {
	mux := newTestRouter()

	// First add creates the cart.
	rec := doRequest(t, mux, http.MethodPost, "/carrinho",
		`{"usuarioId":"u1","produtoId":"p1","quantidade":2,"precoUnitario":10,"nome":"Widget"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	cart := decodeCart(t, rec)
	assert.Equal(t, "u1", cart.UsuarioID)
	require.Len(t, cart.Itens, 1)
	assert.Equal(t, "p1", cart.Itens[0].ProdutoID)
	assert.Equal(t, 20.0, cart.Total)
	assert.False(t, cart.DataAtualizacao.IsZero())

	// Quantity update recomputes the total.
	rec = doRequest(t, mux, http.MethodPut, "/carrinho/quantidade",
		`{"usuarioId":"u1","produtoId":"p1","quantidade":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decodeCart(t, rec)
	assert.Equal(t, 50.0, cart.Total)

	// Read back.
	rec = doRequest(t, mux, http.MethodGet, "/carrinho?usuarioId=u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decodeCart(t, rec)
	assert.Equal(t, 50.0, cart.Total)

	// Removing an absent item is a no-op with an unchanged total.
	rec = doRequest(t, mux, http.MethodDelete, "/carrinho/item",
		`{"usuarioId":"u1","produtoId":"p9"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decodeCart(t, rec)
	assert.Equal(t, 50.0, cart.Total)
	assert.Len(t, cart.Itens, 1)

	// Removing the real item empties the cart.
	rec = doRequest(t, mux, http.MethodDelete, "/carrinho/item",
		`{"usuarioId":"u1","produtoId":"p1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decodeCart(t, rec)
	assert.Equal(t, 0.0, cart.Total)
	assert.Empty(t, cart.Itens)

	// Cart removal is idempotent.
	rec = doRequest(t, mux, http.MethodDelete, "/carrinho", `{"usuarioId":"u1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, mux, http.MethodDelete, "/carrinho", `{"usuarioId":"u1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Gone afterwards.
	rec = doRequest(t, mux, http.MethodGet, "/carrinho?usuarioId=u1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Carrinho não encontrado", decodeError(t, rec))
}

func TestAddItemValidation(t *testing.T) {
	mux := newTestRouter()

	rec := doRequest(t, mux, http.MethodPost, "/carrinho",
		`{"usuarioId":"u1","produtoId":"p1","quantidade":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Campos obrigatórios ausentes", decodeError(t, rec))

	rec = doRequest(t, mux, http.MethodPost, "/carrinho", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItemConflicts(t *testing.T) {
	mux := newTestRouter()

	rec := doRequest(t, mux, http.MethodPost, "/carrinho",
		`{"usuarioId":"u1","produtoId":"p1","quantidade":2,"precoUnitario":10,"nome":"Widget"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same product again: update quantity instead.
	rec = doRequest(t, mux, http.MethodPost, "/carrinho",
		`{"usuarioId":"u1","produtoId":"p1","quantidade":1,"precoUnitario":10,"nome":"Widget"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Produto já existe no carrinho. Atualize a quantidade.", decodeError(t, rec))

	// A second distinct product is also rejected.
	rec = doRequest(t, mux, http.MethodPost, "/carrinho",
		`{"usuarioId":"u1","produtoId":"p2","quantidade":1,"precoUnitario":5,"nome":"Gadget"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Só é permitido 1 tipo de produto por carrinho.", decodeError(t, rec))

	// Cart unchanged after both rejections.
	rec = doRequest(t, mux, http.MethodGet, "/carrinho?usuarioId=u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	assert.Len(t, cart.Itens, 1)
	assert.Equal(t, 20.0, cart.Total)
}

func TestUpdateQuantityErrors(t *testing.T) {
	mux := newTestRouter()

	rec := doRequest(t, mux, http.MethodPut, "/carrinho/quantidade",
		`{"usuarioId":"u1","produtoId":"p1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, mux, http.MethodPut, "/carrinho/quantidade",
		`{"usuarioId":"ghost","produtoId":"p1","quantidade":3}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Carrinho não encontrado", decodeError(t, rec))

	doRequest(t, mux, http.MethodPost, "/carrinho",
		`{"usuarioId":"u1","produtoId":"p1","quantidade":2,"precoUnitario":10,"nome":"Widget"}`)
	rec = doRequest(t, mux, http.MethodPut, "/carrinho/quantidade",
		`{"usuarioId":"u1","produtoId":"p9","quantidade":3}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Produto não encontrado no carrinho", decodeError(t, rec))
}

func TestGetCartRequiresUserID(t *testing.T) {
	mux := newTestRouter()

	rec := doRequest(t, mux, http.MethodGet, "/carrinho", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "usuarioId é obrigatório", decodeError(t, rec))
}

func TestRemoveCartRequiresUserID(t *testing.T) {
	mux := newTestRouter()

	rec := doRequest(t, mux, http.MethodDelete, "/carrinho", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "usuarioId é obrigatório", decodeError(t, rec))
}
