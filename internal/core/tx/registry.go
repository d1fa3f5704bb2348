package tx

import (
	"encoding/json"
	"errors"
	"sort"
)

// ErrUnknownTransactionType is returned when a transaction type is unknown
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// Factory builds an empty transaction of one type.
type Factory func() Transaction

var factories = map[Type]Factory{}

// Register makes a transaction type constructible by the registry. Transaction
// packages call this from init; linking a package in is what enables its
// types.
func Register(t Type, f Factory) {
	factories[t] = f
}

// NewFromType creates a new transaction of the given type
func NewFromType(t Type) (Transaction, error) {
	f, ok := factories[t]
	if !ok {
		return nil, ErrUnknownTransactionType
	}
	return f(), nil
}

// FromJSON creates a Transaction from a JSON object
func FromJSON(data []byte) (Transaction, error) {
	var raw struct {
		TransactionType string `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	t, ok := TypeFromName(raw.TransactionType)
	if !ok {
		return nil, ErrUnknownTransactionType
	}

	txn, err := NewFromType(t)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// ToJSON converts a Transaction to JSON
func ToJSON(txn Transaction) ([]byte, error) {
	return json.Marshal(txn)
}

// SupportedTypes returns all registered transaction types.
func SupportedTypes() []Type {
	out := make([]Type, 0, len(factories))
	for t := range factories {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
