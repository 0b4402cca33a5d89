package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User holds the wallet balance for one account. The row is created by the
// identity collaborator with a zero balance; only the wallet ledger mutates it.
type User struct {
	ID        uuid.UUID       `json:"id"`
	Balance   decimal.Decimal `json:"balance"` // Never negative
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Role is the claim supplied by the external identity provider.
type Role string

const (
	RoleUser     Role = "user"
	RoleOperator Role = "operator"
)

// Principal is the verified caller identity attached to each request.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}
