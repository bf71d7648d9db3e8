package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/config"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/entity"
	"go.uber.org/zap"
)

const (
	CartUpdatedSubject = "carrinho.atualizado"
	CartRemovedSubject = "carrinho.removido"
)

type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

type removedEventPayload struct {
	UsuarioID string `json:"usuarioId"`
}

func NewNATSPublisher(cfg *config.NATSConfig, logger *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.ConnectTimeout),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			logger.Error("NATS error", zap.String("subject", sub.Subject), zap.Error(err))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: logger}, nil
}

func (p *Publisher) PublishCartUpdated(ctx context.Context, carrinho *entity.Carrinho) error {
	data, err := json.Marshal(carrinho)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for %s: %w", CartUpdatedSubject, err)
	}

	if err := p.nc.Publish(CartUpdatedSubject, data); err != nil {
		p.logger.Error("Failed to publish NATS message",
			zap.String("subject", CartUpdatedSubject),
			zap.String("usuario_id", carrinho.UsuarioID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish NATS message for %s: %w", CartUpdatedSubject, err)
	}
	p.logger.Debug("Published NATS message",
		zap.String("subject", CartUpdatedSubject),
		zap.String("usuario_id", carrinho.UsuarioID),
	)
	return nil
}

func (p *Publisher) PublishCartRemoved(ctx context.Context, usuarioID string) error {
	data, err := json.Marshal(removedEventPayload{UsuarioID: usuarioID})
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", CartRemovedSubject, err)
	}

	if err := p.nc.Publish(CartRemovedSubject, data); err != nil {
		p.logger.Error("Failed to publish NATS message",
			zap.String("subject", CartRemovedSubject),
			zap.String("usuario_id", usuarioID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish NATS message for %s: %w", CartRemovedSubject, err)
	}
	p.logger.Debug("Published NATS message",
		zap.String("subject", CartRemovedSubject),
		zap.String("usuario_id", usuarioID),
	)
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.logger.Error("Error draining NATS connection", zap.Error(err))
		}
		p.nc.Close()
		p.logger.Info("NATS publisher connection closed")
	}
}
