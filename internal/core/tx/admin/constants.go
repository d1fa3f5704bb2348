// Package admin implements the access-control transactions: root-admin
// bootstrap, sub-admin appointment, user whitelisting, the root-admin native
// top-up, and the two custodial escape-hatch transfers.
package admin

import "github.com/permadex/godexd/internal/core/types"

const (
	// WalletBootstrapCredit is the native amount minted into the custodial
	// wallet when the root admin registers.
	WalletBootstrapCredit types.Balance = 10000

	// UserBootstrapCredit is the native amount minted for each newly
	// whitelisted user.
	UserBootstrapCredit types.Balance = 10000

	// RootFundCredit is the native amount minted by a FundDeposit.
	RootFundCredit types.Balance = 1000000000000000000
)
