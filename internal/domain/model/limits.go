package model

import "fmt"

// Every unit of an eligible line gets its own entry in the adjusted price list,
// so quantity limits also bound the memory one cart can claim.
const (
	DefaultMaxLineQuantity = 10_000
	DefaultMaxCartQuantity = 100_000

	// MaxQuantityCeiling is the largest limit that may be configured.
	MaxQuantityCeiling = 1_000_000
)

// QuantityLimits bounds line and cart quantities.
type QuantityLimits struct {
	MaxLine int
	MaxCart int
}

// DefaultQuantityLimits returns the limits used when none are configured.
func DefaultQuantityLimits() QuantityLimits {
	return QuantityLimits{MaxLine: DefaultMaxLineQuantity, MaxCart: DefaultMaxCartQuantity}
}

// OrDefault replaces unset fields with the defaults.
func (l QuantityLimits) OrDefault() QuantityLimits {
	if l.MaxLine <= 0 {
		l.MaxLine = DefaultMaxLineQuantity
	}
	if l.MaxCart <= 0 {
		l.MaxCart = DefaultMaxCartQuantity
	}
	return l
}

// Validate rejects limits above MaxQuantityCeiling or a line limit above the cart limit.
func (l QuantityLimits) Validate() error {
	switch {
	case l.MaxLine > MaxQuantityCeiling:
		return &ConfigurationError{Field: "max_line_quantity", Message: fmt.Sprintf("must not exceed %d", MaxQuantityCeiling)}
	case l.MaxCart > MaxQuantityCeiling:
		return &ConfigurationError{Field: "max_cart_quantity", Message: fmt.Sprintf("must not exceed %d", MaxQuantityCeiling)}
	case l.MaxLine > 0 && l.MaxCart > 0 && l.MaxLine > l.MaxCart:
		return &ConfigurationError{Field: "max_line_quantity", Message: "must not exceed max_cart_quantity"}
	}
	return nil
}

// QuantityLimitError reports a quantity above the configured limit. Key is
// empty when the cart total is over the limit.
type QuantityLimitError struct {
	Key      string
	Quantity int
	Limit    int
}

func (e *QuantityLimitError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("cart quantity exceeds the limit of %d", e.Limit)
	}
	return fmt.Sprintf("line %q quantity %d exceeds the limit of %d", e.Key, e.Quantity, e.Limit)
}

// CheckLine reports whether one line's quantity is within the line limit.
func (l QuantityLimits) CheckLine(key string, quantity int) error {
	l = l.OrDefault()
	if quantity > l.MaxLine {
		return &QuantityLimitError{Key: key, Quantity: quantity, Limit: l.MaxLine}
	}
	return nil
}

// Check validates every line and the cart total. The running total stops at the
// first violation, so it cannot overflow.
func (l QuantityLimits) Check(items []LineItem) error {
	l = l.OrDefault()
	total := 0
	for _, it := range items {
		if err := l.CheckLine(it.Key, it.Quantity); err != nil {
			return err
		}
		if it.Quantity > 0 {
			total += it.Quantity
		}
		if total > l.MaxCart {
			return &QuantityLimitError{Quantity: total, Limit: l.MaxCart}
		}
	}
	return nil
}
