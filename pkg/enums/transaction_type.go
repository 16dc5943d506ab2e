package enums

import "fmt"

// TransactionType represents the closed set of inventory movement kinds.
type TransactionType string

const (
	TransactionTypeReceived   TransactionType = "received"
	TransactionTypeSold       TransactionType = "sold"
	TransactionTypeDamaged    TransactionType = "damaged"
	TransactionTypeAdjustment TransactionType = "adjustment"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeReceived,
	TransactionTypeSold,
	TransactionTypeDamaged,
	TransactionTypeAdjustment,
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionType.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
