// Package amm implements the constant-product pool transactions: pool
// registration, proportional deposits with share issuance, full-share
// withdrawal, and fee-charging swaps.
package amm

const (
	// feeNumerator and feeDenominator give the 2% swap fee: only 98/100 of
	// the input amount participates in the output quote, while the full input
	// is added to the reserve.
	feeNumerator   = 98
	feeDenominator = 100

	// toleranceLow, toleranceHigh and toleranceScale bound the accepted
	// deposit ratio deviation at half a percent on either side of the pool's
	// reserve ratio.
	toleranceLow   = 995
	toleranceHigh  = 1005
	toleranceScale = 1000
)
