package state

import (
	"github.com/holiman/uint256"
	"github.com/ugorji/go/codec"

	"github.com/permadex/godexd/internal/core/types"
)

var cborHandle = func() *codec.CborHandle {
	h := new(codec.CborHandle)
	h.Canonical = true
	return h
}()

// LiquidityPool is the stored form of a pool: the (order-significant for
// display) token pair, both reserves, and the outstanding share total carried
// as big-endian bytes of a 128-bit count.
type LiquidityPool struct {
	Token1      types.TokenID `codec:"t1"`
	Token2      types.TokenID `codec:"t2"`
	Reserve1    types.Balance `codec:"r1"`
	Reserve2    types.Balance `codec:"r2"`
	TotalShares []byte        `codec:"ts"`
}

// TotalSharesWide returns the outstanding share total as a wide integer.
func (p *LiquidityPool) TotalSharesWide() *uint256.Int {
	return new(uint256.Int).SetBytes(p.TotalShares)
}

// SetTotalShares stores a wide share total.
func (p *LiquidityPool) SetTotalShares(x *uint256.Int) {
	p.TotalShares = x.Bytes()
}

// Empty reports whether the pool holds no liquidity.
func (p *LiquidityPool) Empty() bool {
	return p.Reserve1 == 0 && p.Reserve2 == 0 && len(p.TotalShares) == 0
}

func encodeEntry(v any) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, cborHandle).Encode(v); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeEntry(data []byte, v any) error {
	return codec.NewDecoderBytes(data, cborHandle).Decode(v)
}
