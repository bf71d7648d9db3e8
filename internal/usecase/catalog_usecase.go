package usecase

import (
	"context"
	"fmt"

	"github.com/silvarafa06/1023A-backend-novo-1/internal/port/repository"
	"go.uber.org/zap"
)

// CatalogUseCase is pass-through persistence: no business rule, every
// operation forwards to storage.
type CatalogUseCase struct {
	productRepo repository.DocumentRepository
	logger      *zap.Logger
}

func NewCatalogUseCase(pr repository.DocumentRepository, log *zap.Logger) *CatalogUseCase {
	return &CatalogUseCase{productRepo: pr, logger: log}
}

func (uc *CatalogUseCase) AddProduct(ctx context.Context, doc map[string]interface{}) (map[string]interface{}, error) {
	stored, err := uc.productRepo.Insert(ctx, doc)
	if err != nil {
		uc.logger.Error("Failed to insert product in repository", zap.Error(err))
		return nil, fmt.Errorf("CatalogUseCase.AddProduct: %w", err)
	}
	return stored, nil
}

func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]map[string]interface{}, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list products from repository", zap.Error(err))
		return nil, fmt.Errorf("CatalogUseCase.ListProducts: %w", err)
	}
	return products, nil
}
