package expenses

import "time"

// Expense is one monthly expense entry.
type Expense struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Essential bool      `json:"essential"`
	Month     string    `json:"month"`
	CreatedAt time.Time `json:"createdAt"`
}

// Totals aggregates a month of spending for the dashboard.
type Totals struct {
	Total        float64 `json:"total"`
	Essential    float64 `json:"essential"`
	NonEssential float64 `json:"nonEssential"`
}

// CategoryTotal is the spend for one category in a month.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}
