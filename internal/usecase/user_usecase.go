package usecase

import (
	"context"
	"fmt"

	"github.com/silvarafa06/1023A-backend-novo-1/internal/port/repository"
	"go.uber.org/zap"
)

type UserUseCase struct {
	userRepo repository.DocumentRepository
	logger   *zap.Logger
}

func NewUserUseCase(ur repository.DocumentRepository, log *zap.Logger) *UserUseCase {
	return &UserUseCase{userRepo: ur, logger: log}
}

func (uc *UserUseCase) AddUser(ctx context.Context, doc map[string]interface{}) (map[string]interface{}, error) {
	stored, err := uc.userRepo.Insert(ctx, doc)
	if err != nil {
		uc.logger.Error("Failed to insert user in repository", zap.Error(err))
		return nil, fmt.Errorf("UserUseCase.AddUser: %w", err)
	}
	return stored, nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context) ([]map[string]interface{}, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list users from repository", zap.Error(err))
		return nil, fmt.Errorf("UserUseCase.ListUsers: %w", err)
	}
	return users, nil
}
