package domain

import "time"

// Account holds a user's balance in the minor currency unit.
type Account struct {
	ID        string    `json:"account_id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
