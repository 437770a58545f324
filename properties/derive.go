package properties

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Reserved property names used by DeriveTotal. They match exactly.
const (
	QuantityName = "ItemQuantity"
	PriceName    = "ItemPrice"
	TotalName    = "TotalAmount"
)

// ErrInvalidQuantityOrPrice is returned by DeriveTotal when the quantity
// or the price is not strictly positive.
var ErrInvalidQuantityOrPrice = errors.New(
	"ItemQuantity and ItemPrice must be greater than zero",
)

var decimalCtx = apd.BaseContext.WithPrecision(34)

// DeriveTotal sets TotalAmount to ItemQuantity * ItemPrice.
//
// It does nothing when either input is missing or not a finite number,
// and when the store has no TotalAmount property. A non-positive input
// returns an error wrapping ErrInvalidQuantityOrPrice and leaves
// TotalAmount unchanged. The product is stored as an invariant decimal
// string without exponent or trailing zeros.
func (st *Store) DeriveTotal() error {
	const errCtx = "deriving total"

	qi, pi := st.exact(QuantityName), st.exact(PriceName)
	if qi < 0 || pi < 0 {
		return nil
	}

	qty, ok := parseDecimal(st.props[qi].Value)
	if !ok {
		return nil
	}

	price, ok := parseDecimal(st.props[pi].Value)
	if !ok {
		return nil
	}

	if qty.Sign() <= 0 || price.Sign() <= 0 {
		return fmt.Errorf(
			"%s: %w (quantity %s, price %s)",
			errCtx, ErrInvalidQuantityOrPrice,
			qty.Text('f'), price.Text('f'),
		)
	}

	ti := st.exact(TotalName)
	if ti < 0 {
		return nil
	}

	var total apd.Decimal
	if _, err := decimalCtx.Mul(&total, qty, price); err != nil {
		slog.Warn(
			"skipping total derivation",
			"quantity", qty.Text('f'),
			"price", price.Text('f'),
			"error", err,
		)

		return nil
	}

	total.Reduce(&total)
	st.props[ti].Value = total.Text('f')

	return nil
}

// parseDecimal reads a finite number using the invariant format: no
// thousands separators and '.' as decimal point.
func parseDecimal(value any) (*apd.Decimal, bool) {
	raw := strings.TrimSpace(Text(value))
	if raw == "" {
		return nil, false
	}

	dec, _, err := apd.NewFromString(raw)
	if err != nil || dec.Form != apd.Finite {
		return nil, false
	}

	return dec, true
}
