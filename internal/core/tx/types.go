package tx

// Type identifies a transaction type.
type Type int

const (
	TypeAdminRegister Type = iota + 1
	TypeSubAdminRegister
	TypeUserRegister
	TypeFundDeposit
	TypePoolCreate
	TypePoolDeposit
	TypePoolWithdraw
	TypePoolSwap
	TypeTokenWithdraw
	TypeTreasuryTransfer
)

var typeNames = map[Type]string{
	TypeAdminRegister:    "AdminRegister",
	TypeSubAdminRegister: "SubAdminRegister",
	TypeUserRegister:     "UserRegister",
	TypeFundDeposit:      "FundDeposit",
	TypePoolCreate:       "PoolCreate",
	TypePoolDeposit:      "PoolDeposit",
	TypePoolWithdraw:     "PoolWithdraw",
	TypePoolSwap:         "PoolSwap",
	TypeTokenWithdraw:    "TokenWithdraw",
	TypeTreasuryTransfer: "TreasuryTransfer",
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// String returns the wire name of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// TypeFromName resolves a wire name to its Type.
func TypeFromName(name string) (Type, bool) {
	t, ok := typesByName[name]
	return t, ok
}
