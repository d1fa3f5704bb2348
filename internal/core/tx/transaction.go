package tx

import (
	"github.com/permadex/godexd/internal/core/types"
)

// Transaction is the interface that all transaction types must implement
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// GetCommon returns the common transaction fields
	GetCommon() *Common

	// Validate checks the transaction's static well-formedness. State is not
	// consulted; failures surface as tem codes.
	Validate() error
}

// Appliable is implemented by transaction types that can apply themselves to
// ledger state. Keeping Apply on the type replaces a central switch in the
// engine.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// Common contains fields common to all transaction types. Account is the
// pre-verified caller identity: authentication happens in the hosting layer,
// never here.
type Common struct {
	Account         types.AccountID `json:"Account"`
	TransactionType string          `json:"TransactionType"`
}

// Validate validates the common fields
func (c *Common) Validate() error {
	if c.Account == "" {
		return NewValidationError(TemMALFORMED, "Account is required")
	}
	if c.TransactionType == "" {
		return NewValidationError(TemMALFORMED, "TransactionType is required")
	}
	return nil
}

// BaseTx provides a base implementation for transactions
type BaseTx struct {
	Common
	txType Type
}

// TxType returns the transaction type
func (b *BaseTx) TxType() Type {
	return b.txType
}

// GetCommon returns the common transaction fields
func (b *BaseTx) GetCommon() *Common {
	return &b.Common
}

// Validate validates the base transaction
func (b *BaseTx) Validate() error {
	return b.Common.Validate()
}

// NewBaseTx creates a new base transaction
func NewBaseTx(txType Type, account types.AccountID) *BaseTx {
	return &BaseTx{
		Common: Common{
			Account:         account,
			TransactionType: txType.String(),
		},
		txType: txType,
	}
}
