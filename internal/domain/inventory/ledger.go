// Package inventory contiene las reglas puras del libro de stock (servicio de dominio).
package inventory

import (
	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
)

// ValidateMovement verifica tipo, cantidad, producto y actor antes de tocar la base.
func ValidateMovement(productID string, t entity.MovementType, quantity int64, actor string) error {
	switch {
	case productID == "":
		return &domain.InvalidMovementInputError{Field: "product_id", Reason: "es requerido"}
	case !t.Valid():
		return &domain.InvalidMovementInputError{Field: "movement_type", Reason: "desconocido: " + string(t)}
	case quantity <= 0:
		return &domain.InvalidMovementInputError{Field: "quantity", Reason: "debe ser un entero positivo"}
	case actor == "":
		return &domain.InvalidMovementInputError{Field: "created_by", Reason: "es requerido"}
	}
	return nil
}

// NextQuantity calcula el stock resultante de aplicar un movimiento sobre previous.
// in/return suman; out/adjustment restan y fallan con InsufficientStockError si previous < quantity.
func NextQuantity(productID string, previous int64, t entity.MovementType, quantity int64) (int64, error) {
	if t.Increases() {
		return previous + quantity, nil
	}
	if previous < quantity {
		return previous, &domain.InsufficientStockError{ProductID: productID, Available: previous, Requested: quantity}
	}
	return previous - quantity, nil
}

// NewMovement arma el registro inmutable con ambas instantáneas ya calculadas.
func NewMovement(product *entity.Product, t entity.MovementType, quantity int64, reference, notes, actor string) (*entity.StockMovement, error) {
	next, err := NextQuantity(product.ID, product.StockQuantity, t, quantity)
	if err != nil {
		return nil, err
	}
	return &entity.StockMovement{
		ProductID:        product.ID,
		Type:             t,
		Quantity:         quantity,
		PreviousQuantity: product.StockQuantity,
		NewQuantity:      next,
		Reference:        reference,
		Notes:            notes,
		CreatedBy:        actor,
	}, nil
}
