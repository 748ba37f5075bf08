package incomes

import "time"

// Income is one monthly income entry.
type Income struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Amount    float64   `json:"amount"`
	Month     string    `json:"month"`
	CreatedAt time.Time `json:"createdAt"`
}
