package repository

import (
	"context"

	"github.com/silvarafa06/1023A-backend-novo-1/internal/entity"
)

type CartRepository interface {
	GetByUserID(ctx context.Context, usuarioID string) (*entity.Carrinho, error)
	Insert(ctx context.Context, carrinho *entity.Carrinho) error
	Update(ctx context.Context, carrinho *entity.Carrinho) error
	// DeleteByUserID is idempotent: deleting an absent cart is not an error.
	DeleteByUserID(ctx context.Context, usuarioID string) error
}
