package tx

import "fmt"

// Result represents a transaction result code
type Result int

// Result codes, organized by category the way ledger engines usually band
// them: tes (success), tec (well-formed but failed against current state,
// nothing applied), tem (malformed, rejected in preflight).
const (
	TesSUCCESS Result = 0

	// tec codes (100-199): the transaction was well formed but cannot be
	// applied to the current state. No side effects are persisted.
	TecNO_PERMISSION          Result = 100
	TecACCOUNT_NOT_FOUND      Result = 101
	TecALREADY_REGISTERED     Result = 102
	TecNO_ENTRY               Result = 103
	TecALREADY_INITIALIZED    Result = 104
	TecUNBALANCED_DEPOSIT     Result = 105
	TecINSUFFICIENT_LIQUIDITY Result = 106
	TecUNFUNDED               Result = 107
	TecINTERNAL               Result = 108

	// tem codes (-299 to -200): the transaction is malformed and is rejected
	// before touching state.
	TemMALFORMED       Result = -299
	TemBAD_AMOUNT      Result = -298
	TemDUPLICATE_TOKEN Result = -297
	TemUNKNOWN         Result = -296
)

var resultNames = map[Result]string{
	TesSUCCESS:                "tesSUCCESS",
	TecNO_PERMISSION:          "tecNO_PERMISSION",
	TecACCOUNT_NOT_FOUND:      "tecACCOUNT_NOT_FOUND",
	TecALREADY_REGISTERED:     "tecALREADY_REGISTERED",
	TecNO_ENTRY:               "tecNO_ENTRY",
	TecALREADY_INITIALIZED:    "tecALREADY_INITIALIZED",
	TecUNBALANCED_DEPOSIT:     "tecUNBALANCED_DEPOSIT",
	TecINSUFFICIENT_LIQUIDITY: "tecINSUFFICIENT_LIQUIDITY",
	TecUNFUNDED:               "tecUNFUNDED",
	TecINTERNAL:               "tecINTERNAL",
	TemMALFORMED:              "temMALFORMED",
	TemBAD_AMOUNT:             "temBAD_AMOUNT",
	TemDUPLICATE_TOKEN:        "temDUPLICATE_TOKEN",
	TemUNKNOWN:                "temUNKNOWN",
}

// String returns the canonical code name.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(r))
}

// IsSuccess reports whether the transaction applied.
func (r Result) IsSuccess() bool { return r == TesSUCCESS }

// IsTec reports a state-dependent failure.
func (r Result) IsTec() bool { return r >= 100 && r < 200 }

// IsTem reports a malformed transaction.
func (r Result) IsTem() bool { return r >= -299 && r < -200 }

// ValidationError is returned by Transaction.Validate to carry the precise
// tem code for a malformed transaction.
type ValidationError struct {
	Code   Result
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Code.String() + ": " + e.Reason
}

// NewValidationError builds a ValidationError.
func NewValidationError(code Result, reason string) error {
	return &ValidationError{Code: code, Reason: reason}
}
