package ledger

import (
	"github.com/cducote/pawstock-backend/pkg/enums"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
)

// Movement is a validated stock movement. Construct one through the
// typed constructors; the zero value is not usable.
type Movement struct {
	txType enums.TransactionType
	delta  int
}

// Received records units arriving from a supplier. Quantity must not
// be negative; zero records a movement with no stock effect.
func Received(qty int) (Movement, error) {
	if qty < 0 {
		return Movement{}, pkgerrors.New(pkgerrors.CodeValidation, "received quantity must not be negative")
	}
	return Movement{txType: enums.TransactionTypeReceived, delta: qty}, nil
}

// Sold records units leaving through a sale. Quantity must not be
// negative.
func Sold(qty int) (Movement, error) {
	if qty < 0 {
		return Movement{}, pkgerrors.New(pkgerrors.CodeValidation, "sold quantity must not be negative")
	}
	return Movement{txType: enums.TransactionTypeSold, delta: -qty}, nil
}

// Damaged records units written off. Quantity must not be negative.
func Damaged(qty int) (Movement, error) {
	if qty < 0 {
		return Movement{}, pkgerrors.New(pkgerrors.CodeValidation, "damaged quantity must not be negative")
	}
	return Movement{txType: enums.TransactionTypeDamaged, delta: -qty}, nil
}

// Adjustment records a manual correction. The delta is signed; zero is
// a recorded no-op.
func Adjustment(delta int) (Movement, error) {
	return Movement{txType: enums.TransactionTypeAdjustment, delta: delta}, nil
}

// NewMovement maps an API-level (type, quantity) pair onto a movement.
// For received/sold/damaged the quantity is a positive magnitude; for
// adjustments it is the signed delta.
func NewMovement(txType enums.TransactionType, quantity int) (Movement, error) {
	switch txType {
	case enums.TransactionTypeReceived:
		return Received(quantity)
	case enums.TransactionTypeSold:
		return Sold(quantity)
	case enums.TransactionTypeDamaged:
		return Damaged(quantity)
	case enums.TransactionTypeAdjustment:
		return Adjustment(quantity)
	default:
		return Movement{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown transaction type")
	}
}

// Type returns the transaction type this movement records.
func (m Movement) Type() enums.TransactionType {
	return m.txType
}

// Delta is the signed effect the movement has on current stock.
func (m Movement) Delta() int {
	return m.delta
}

// Quantity is the value persisted on the transaction row: a positive
// magnitude for received/sold/damaged, the signed delta for adjustments.
func (m Movement) Quantity() int {
	if m.txType == enums.TransactionTypeAdjustment {
		return m.delta
	}
	if m.delta < 0 {
		return -m.delta
	}
	return m.delta
}
