package domain

import (
	"errors"
	"fmt"
)

// Error codes surfaced to API callers. The strings are part of the contract
// and must stay stable.
const (
	CodeDuplicateSerial    = "DUPLICATE_SERIAL"
	CodeImmutableUnit      = "IMMUTABLE_UNIT"
	CodeUnitSold           = "UNIT_SOLD"
	CodeUnitUnavailable    = "UNIT_UNAVAILABLE"
	CodeNegativeQuantity   = "NEGATIVE_QUANTITY"
	CodeSupplierConstraint = "SUPPLIER_CONSTRAINT"
	CodeNotFound           = "NOT_FOUND"
)

// DomainError is a caller fault with a stable machine code. All of these
// map to 4xx responses and are never retried automatically.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrDuplicateSerial builds the error for a serial that already exists for
// the product.
func ErrDuplicateSerial(serial string) *DomainError {
	return &DomainError{Code: CodeDuplicateSerial, Message: fmt.Sprintf("serial number %q already exists for this product", serial)}
}

// ErrImmutableUnit rejects edits beyond notes on a sold unit.
func ErrImmutableUnit(unitID uint) *DomainError {
	return &DomainError{Code: CodeImmutableUnit, Message: fmt.Sprintf("unit %d is sold; only notes may change", unitID)}
}

// ErrUnitSold rejects deletion of a sold unit.
func ErrUnitSold(unitID uint) *DomainError {
	return &DomainError{Code: CodeUnitSold, Message: fmt.Sprintf("unit %d is sold and can not be deleted", unitID)}
}

// ErrUnitUnavailable is returned to the loser of a claim race or when the
// unit is not in a claimable state.
func ErrUnitUnavailable(unitID uint) *DomainError {
	return &DomainError{Code: CodeUnitUnavailable, Message: fmt.Sprintf("unit %d is not available for sale", unitID)}
}

// ErrNegativeQuantity rejects a manual adjustment below zero.
func ErrNegativeQuantity(q int64) *DomainError {
	return &DomainError{Code: CodeNegativeQuantity, Message: fmt.Sprintf("target quantity %d is negative", q)}
}

// ErrSupplierConstraint blocks deleting a supplier that still owns units.
func ErrSupplierConstraint(supplierID uint, units int64) *DomainError {
	return &DomainError{Code: CodeSupplierConstraint, Message: fmt.Sprintf("supplier %d still owns %d unit(s)", supplierID, units)}
}

// ErrNotFound reports a missing product, unit, supplier or order.
func ErrNotFound(kind string, id interface{}) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: fmt.Sprintf("%s %v not found", kind, id)}
}

// AsDomainError unwraps err to a *DomainError when it is one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
