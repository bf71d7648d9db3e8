package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/silvarafa06/1023A-backend-novo-1/internal/entity"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cartCollectionName = "carrinhos"

type CartMongoRepository struct {
	db *mongo.Database
}

func NewCartMongoRepository(client *mongo.Client, dbName string) *CartMongoRepository {
	return &CartMongoRepository{
		db: client.Database(dbName),
	}
}

type itemDocument struct {
	ProdutoID     string  `bson:"produtoId"`
	Quantidade    float64 `bson:"quantidade"`
	PrecoUnitario float64 `bson:"precoUnitario"`
	Nome          string  `bson:"nome"`
}

type cartDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UsuarioID       string             `bson:"usuarioId"`
	Itens           []itemDocument     `bson:"itens"`
	DataAtualizacao primitive.DateTime `bson:"dataAtualizacao"`
	Total           float64            `bson:"total"`
}

func toCartDocument(c *entity.Carrinho) *cartDocument {
	doc := &cartDocument{
		UsuarioID:       c.UsuarioID,
		Itens:           make([]itemDocument, 0, len(c.Itens)),
		DataAtualizacao: primitive.NewDateTimeFromTime(c.DataAtualizacao),
		Total:           c.Total,
	}
	for _, item := range c.Itens {
		doc.Itens = append(doc.Itens, itemDocument(item))
	}
	return doc
}

func toCartEntity(doc *cartDocument) *entity.Carrinho {
	c := &entity.Carrinho{
		UsuarioID:       doc.UsuarioID,
		Itens:           make([]entity.ItemCarrinho, 0, len(doc.Itens)),
		DataAtualizacao: doc.DataAtualizacao.Time(),
		Total:           doc.Total,
	}
	for _, item := range doc.Itens {
		c.Itens = append(c.Itens, entity.ItemCarrinho(item))
	}
	return c
}

// EnsureIndexes creates the unique index on usuarioId so concurrent first-adds
// cannot leave two carts for the same user.
func (r *CartMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(cartCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "usuarioId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create usuarioId index: %w", err)
	}
	return nil
}

func (r *CartMongoRepository) GetByUserID(ctx context.Context, usuarioID string) (*entity.Carrinho, error) {
	var doc cartDocument
	err := r.db.Collection(cartCollectionName).FindOne(ctx, bson.M{"usuarioId": usuarioID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart by usuarioId from mongo: %w", err)
	}
	return toCartEntity(&doc), nil
}

func (r *CartMongoRepository) Insert(ctx context.Context, carrinho *entity.Carrinho) error {
	_, err := r.db.Collection(cartCollectionName).InsertOne(ctx, toCartDocument(carrinho))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert cart in mongo: %w", err)
	}
	return nil
}

func (r *CartMongoRepository) Update(ctx context.Context, carrinho *entity.Carrinho) error {
	doc := toCartDocument(carrinho)
	update := bson.M{
		"$set": bson.M{
			"itens":           doc.Itens,
			"total":           doc.Total,
			"dataAtualizacao": doc.DataAtualizacao,
		},
	}

	res, err := r.db.Collection(cartCollectionName).UpdateOne(ctx, bson.M{"usuarioId": carrinho.UsuarioID}, update)
	if err != nil {
		return fmt.Errorf("failed to update cart in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CartMongoRepository) DeleteByUserID(ctx context.Context, usuarioID string) error {
	_, err := r.db.Collection(cartCollectionName).DeleteOne(ctx, bson.M{"usuarioId": usuarioID})
	if err != nil {
		return fmt.Errorf("failed to delete cart from mongo: %w", err)
	}
	// DeletedCount of zero is fine here: cart removal is idempotent.
	return nil
}
