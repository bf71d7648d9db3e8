package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/silvarafa06/1023A-backend-novo-1/internal/entity"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/platform/metrics"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/port/cache"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/port/repository"
	"go.uber.org/zap"
)

type CartEventPublisher interface {
	PublishCartUpdated(ctx context.Context, carrinho *entity.Carrinho) error
	PublishCartRemoved(ctx context.Context, usuarioID string) error
}

const defaultCartCacheTTL = 5 * time.Minute

func cartCacheKey(usuarioID string) string {
	return fmt.Sprintf("carrinho:%s", usuarioID)
}

// CartUseCase owns the cart workflow: the one-product-per-cart rule and the
// total/dataAtualizacao consistency on every mutation. The cache, publisher
// and metrics are optional collaborators; storage is not.
type CartUseCase struct {
	cartRepo  repository.CartRepository
	cacheRepo cache.CacheRepository
	publisher CartEventPublisher
	metrics   *metrics.Manager
	logger    *zap.Logger
	cacheTTL  time.Duration
}

func NewCartUseCase(
	cr repository.CartRepository,
	cache cache.CacheRepository,
	pub CartEventPublisher,
	m *metrics.Manager,
	log *zap.Logger,
	cacheTTL time.Duration,
) *CartUseCase {
	if cacheTTL <= 0 {
		cacheTTL = defaultCartCacheTTL
	}
	return &CartUseCase{
		cartRepo:  cr,
		cacheRepo: cache,
		publisher: pub,
		metrics:   m,
		logger:    log,
		cacheTTL:  cacheTTL,
	}
}

type AddItemInput struct {
	UsuarioID     string
	ProdutoID     string
	Quantidade    float64
	PrecoUnitario float64
	Nome          string
}

// AddItem creates the user's cart on first use, or appends to the existing
// one subject to the single-product rule. The returned bool reports whether a
// new cart was created.
func (uc *CartUseCase) AddItem(ctx context.Context, input AddItemInput) (*entity.Carrinho, bool, error) {
	if input.UsuarioID == "" || input.ProdutoID == "" || input.Nome == "" ||
		input.Quantidade <= 0 || input.PrecoUnitario <= 0 {
		return nil, false, entity.ErrCamposObrigatorios
	}

	item := entity.ItemCarrinho{
		ProdutoID:     input.ProdutoID,
		Quantidade:    input.Quantidade,
		PrecoUnitario: input.PrecoUnitario,
		Nome:          input.Nome,
	}

	carrinho, err := uc.cartRepo.GetByUserID(ctx, input.UsuarioID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to get cart from repository", zap.Error(err), zap.String("usuario_id", input.UsuarioID))
			return nil, false, fmt.Errorf("CartUseCase.AddItem: failed to get cart: %w", err)
		}

		novo := entity.NewCarrinho(input.UsuarioID, item)
		if err := uc.cartRepo.Insert(ctx, novo); err != nil {
			uc.logger.Error("Failed to insert cart in repository", zap.Error(err), zap.String("usuario_id", input.UsuarioID))
			return nil, false, fmt.Errorf("CartUseCase.AddItem: failed to insert cart: %w", err)
		}

		if uc.metrics != nil {
			uc.metrics.CartsCreatedTotal.Inc()
		}
		uc.invalidateCache(ctx, input.UsuarioID)
		uc.publishUpdated(ctx, novo)
		return novo, true, nil
	}

	if err := carrinho.AddItem(item); err != nil {
		return nil, false, err
	}

	if err := uc.cartRepo.Update(ctx, carrinho); err != nil {
		uc.logger.Error("Failed to update cart in repository", zap.Error(err), zap.String("usuario_id", input.UsuarioID))
		return nil, false, fmt.Errorf("CartUseCase.AddItem: failed to update cart: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.CartUpdatesTotal.Inc()
	}
	uc.invalidateCache(ctx, input.UsuarioID)
	uc.publishUpdated(ctx, carrinho)
	return carrinho, false, nil
}

type UpdateQuantityInput struct {
	UsuarioID  string
	ProdutoID  string
	Quantidade float64
}

func (uc *CartUseCase) UpdateQuantity(ctx context.Context, input UpdateQuantityInput) (*entity.Carrinho, error) {
	if input.UsuarioID == "" || input.ProdutoID == "" || input.Quantidade <= 0 {
		return nil, entity.ErrCamposObrigatorios
	}

	carrinho, err := uc.getFromRepo(ctx, input.UsuarioID, "UpdateQuantity")
	if err != nil {
		return nil, err
	}

	if err := carrinho.SetQuantidade(input.ProdutoID, input.Quantidade); err != nil {
		return nil, err
	}

	if err := uc.cartRepo.Update(ctx, carrinho); err != nil {
		uc.logger.Error("Failed to update cart in repository", zap.Error(err), zap.String("usuario_id", input.UsuarioID))
		return nil, fmt.Errorf("CartUseCase.UpdateQuantity: failed to update cart: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.CartUpdatesTotal.Inc()
	}
	uc.invalidateCache(ctx, input.UsuarioID)
	uc.publishUpdated(ctx, carrinho)
	return carrinho, nil
}

func (uc *CartUseCase) RemoveItem(ctx context.Context, usuarioID, produtoID string) (*entity.Carrinho, error) {
	if usuarioID == "" || produtoID == "" {
		return nil, entity.ErrCamposObrigatorios
	}

	carrinho, err := uc.getFromRepo(ctx, usuarioID, "RemoveItem")
	if err != nil {
		return nil, err
	}

	carrinho.RemoveItem(produtoID)

	if err := uc.cartRepo.Update(ctx, carrinho); err != nil {
		uc.logger.Error("Failed to update cart in repository", zap.Error(err), zap.String("usuario_id", usuarioID))
		return nil, fmt.Errorf("CartUseCase.RemoveItem: failed to update cart: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.CartUpdatesTotal.Inc()
	}
	uc.invalidateCache(ctx, usuarioID)
	uc.publishUpdated(ctx, carrinho)
	return carrinho, nil
}

// RemoveCart deletes the user's cart. Deleting an absent cart still succeeds.
func (uc *CartUseCase) RemoveCart(ctx context.Context, usuarioID string) error {
	if usuarioID == "" {
		return entity.ErrUsuarioIDObrigatorio
	}

	if err := uc.cartRepo.DeleteByUserID(ctx, usuarioID); err != nil {
		uc.logger.Error("Failed to delete cart from repository", zap.Error(err), zap.String("usuario_id", usuarioID))
		return fmt.Errorf("CartUseCase.RemoveCart: failed to delete cart: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.CartRemovalsTotal.Inc()
	}
	uc.invalidateCache(ctx, usuarioID)
	if uc.publisher != nil {
		if err := uc.publisher.PublishCartRemoved(ctx, usuarioID); err != nil {
			uc.logger.Warn("Failed to publish cart removed event", zap.Error(err), zap.String("usuario_id", usuarioID))
		}
	}
	return nil
}

func (uc *CartUseCase) GetCart(ctx context.Context, usuarioID string) (*entity.Carrinho, error) {
	if usuarioID == "" {
		return nil, entity.ErrUsuarioIDObrigatorio
	}

	if uc.cacheRepo != nil {
		key := cartCacheKey(usuarioID)
		cachedBytes, err := uc.cacheRepo.Get(ctx, key)
		if err == nil {
			var cached entity.Carrinho
			if unmarshalErr := json.Unmarshal(cachedBytes, &cached); unmarshalErr == nil {
				uc.logger.Debug("Cart fetched from cache", zap.String("key", key))
				return &cached, nil
			}
			if delErr := uc.cacheRepo.Delete(ctx, key); delErr != nil {
				uc.logger.Warn("Failed to delete corrupted data from cache", zap.String("key", key), zap.Error(delErr))
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			uc.logger.Warn("Failed to get cart from cache (not a cache miss)", zap.Error(err), zap.String("key", key))
		}
	}

	carrinho, err := uc.getFromRepo(ctx, usuarioID, "GetCart")
	if err != nil {
		return nil, err
	}

	if uc.cacheRepo != nil {
		cartBytes, marshalErr := json.Marshal(carrinho)
		if marshalErr != nil {
			uc.logger.Warn("Failed to marshal cart for caching", zap.Error(marshalErr), zap.String("usuario_id", usuarioID))
		} else {
			key := cartCacheKey(usuarioID)
			if setErr := uc.cacheRepo.Set(ctx, key, cartBytes, uc.cacheTTL); setErr != nil {
				uc.logger.Warn("Failed to set cart in cache", zap.Error(setErr), zap.String("key", key))
			}
		}
	}
	return carrinho, nil
}

func (uc *CartUseCase) getFromRepo(ctx context.Context, usuarioID, op string) (*entity.Carrinho, error) {
	carrinho, err := uc.cartRepo.GetByUserID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrCarrinhoNaoEncontrado
		}
		uc.logger.Error("Failed to get cart from repository", zap.Error(err), zap.String("usuario_id", usuarioID))
		return nil, fmt.Errorf("CartUseCase.%s: failed to get cart: %w", op, err)
	}
	return carrinho, nil
}

func (uc *CartUseCase) invalidateCache(ctx context.Context, usuarioID string) {
	if uc.cacheRepo == nil {
		return
	}
	key := cartCacheKey(usuarioID)
	if err := uc.cacheRepo.Delete(ctx, key); err != nil {
		uc.logger.Warn("Failed to invalidate cart cache", zap.String("key", key), zap.Error(err))
	}
}

func (uc *CartUseCase) publishUpdated(ctx context.Context, carrinho *entity.Carrinho) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishCartUpdated(ctx, carrinho); err != nil {
		uc.logger.Warn("Failed to publish cart updated event",
			zap.Error(err),
			zap.String("usuario_id", carrinho.UsuarioID),
		)
	}
}
