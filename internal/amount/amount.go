// Package amount implements the money arithmetic used by reports.
//
// Upstream amounts are either whole tokens or micro units (1 token = 1,000,000 micro
// units). Arithmetic is done in decimal so that differences such as 0.3 - 0.1 come out
// exact before being handed back as float64.
package amount

import "github.com/shopspring/decimal"

// MicroUnitsPerToken is the scale between micro units and whole tokens.
const MicroUnitsPerToken = 1_000_000

// DisplayDecimals is the number of fractional digits shown to operators.
const DisplayDecimals = 6

var microDivisor = decimal.NewFromInt(MicroUnitsPerToken)

// FromMicro converts a micro-unit amount to whole tokens when convert is set.
func FromMicro(v float64, convert bool) decimal.Decimal {
	d := decimal.NewFromFloat(v)
	if convert {
		d = d.Div(microDivisor)
	}
	return d
}

// Difference returns sent - requested, scaling both operands down from micro units
// first when convertMicro is set.
func Difference(sent, requested float64, convertMicro bool) float64 {
	return FromMicro(sent, convertMicro).Sub(FromMicro(requested, convertMicro)).InexactFloat64()
}

// Format renders v with DisplayDecimals fractional digits, rounding half away from zero.
func Format(v float64, convertMicro bool) string {
	return FromMicro(v, convertMicro).StringFixed(DisplayDecimals)
}
