package entity

import (
	"time"
)

// ItemCarrinho is a snapshot of a product at the moment it was added to the
// cart. The unit price is not re-fetched from the catalog afterwards.
type ItemCarrinho struct {
	ProdutoID     string  `json:"produtoId" bson:"produtoId"`
	Quantidade    float64 `json:"quantidade" bson:"quantidade"`
	PrecoUnitario float64 `json:"precoUnitario" bson:"precoUnitario"`
	Nome          string  `json:"nome" bson:"nome"`
}

func (i ItemCarrinho) Subtotal() float64 {
	return i.Quantidade * i.PrecoUnitario
}

// Carrinho is the per-user cart, keyed by UsuarioID in storage. Total is
// always derived from the items, never trusted independently.
type Carrinho struct {
	UsuarioID       string         `json:"usuarioId" bson:"usuarioId"`
	Itens           []ItemCarrinho `json:"itens" bson:"itens"`
	DataAtualizacao time.Time      `json:"dataAtualizacao" bson:"dataAtualizacao"`
	Total           float64        `json:"total" bson:"total"`
}

func NewCarrinho(usuarioID string, item ItemCarrinho) *Carrinho {
	c := &Carrinho{
		UsuarioID: usuarioID,
		Itens:     []ItemCarrinho{item},
	}
	c.recalcular()
	return c
}

func (c *Carrinho) FindItem(produtoID string) (*ItemCarrinho, int) {
	for i := range c.Itens {
		if c.Itens[i].ProdutoID == produtoID {
			return &c.Itens[i], i
		}
	}
	return nil, -1
}

// AddItem appends a new item. A cart holds at most one product type: re-adding
// the same product is rejected in favor of a quantity update, and any add to a
// non-empty cart is rejected as well.
func (c *Carrinho) AddItem(item ItemCarrinho) error {
	if existing, _ := c.FindItem(item.ProdutoID); existing != nil {
		return ErrProdutoJaNoCarrinho
	}
	if len(c.Itens) > 0 {
		return ErrCarrinhoCheio
	}
	c.Itens = append(c.Itens, item)
	c.recalcular()
	return nil
}

func (c *Carrinho) SetQuantidade(produtoID string, quantidade float64) error {
	item, _ := c.FindItem(produtoID)
	if item == nil {
		return ErrItemNaoEncontrado
	}
	item.Quantidade = quantidade
	c.recalcular()
	return nil
}

// RemoveItem drops any item matching produtoID. Removing an absent item is a
// no-op, not an error; the total is still recomputed and the cart re-stamped.
func (c *Carrinho) RemoveItem(produtoID string) {
	itens := c.Itens[:0]
	for _, item := range c.Itens {
		if item.ProdutoID != produtoID {
			itens = append(itens, item)
		}
	}
	c.Itens = itens
	c.recalcular()
}

func (c *Carrinho) recalcular() {
	var total float64
	for _, item := range c.Itens {
		total += item.Subtotal()
	}
	c.Total = total
	c.DataAtualizacao = time.Now().UTC()
}
