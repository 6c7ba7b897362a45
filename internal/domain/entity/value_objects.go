package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Identifiers are opaque generated tokens; equality is by value.
type (
	UserID    string
	OrderID   string
	ProductID string
)

func NewUserID() UserID       { return UserID(uuid.NewString()) }
func NewOrderID() OrderID     { return OrderID(uuid.NewString()) }
func NewProductID() ProductID { return ProductID(uuid.NewString()) }

func (id UserID) String() string    { return string(id) }
func (id OrderID) String() string   { return string(id) }
func (id ProductID) String() string { return string(id) }

// Email is a validated value object; the wrapped value is never mutated.
type Email string

// NewEmail validates the address shape. The rule is intentionally loose:
// an address must carry both '@' and '.'.
func NewEmail(raw string) (Email, error) {
	if !strings.Contains(raw, "@") || !strings.Contains(raw, ".") {
		return "", fmt.Errorf("%w: malformed email %q", ErrInvalidArgument, raw)
	}
	return Email(raw), nil
}

func (e Email) String() string { return string(e) }
