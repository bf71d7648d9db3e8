package entity

import "errors"

// The message strings are part of the wire contract: clients receive them
// verbatim in the {"error": ...} response body.
var (
	ErrCamposObrigatorios    = errors.New("Campos obrigatórios ausentes")
	ErrUsuarioIDObrigatorio  = errors.New("usuarioId é obrigatório")
	ErrProdutoJaNoCarrinho   = errors.New("Produto já existe no carrinho. Atualize a quantidade.")
	ErrCarrinhoCheio         = errors.New("Só é permitido 1 tipo de produto por carrinho.")
	ErrCarrinhoNaoEncontrado = errors.New("Carrinho não encontrado")
	ErrItemNaoEncontrado     = errors.New("Produto não encontrado no carrinho")
)
