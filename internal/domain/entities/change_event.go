package entities

import "time"

type Collection string

const (
	CollectionServices     Collection = "services"
	CollectionAppointments Collection = "appointments"
	CollectionBudgets      Collection = "budgets"
	CollectionSettings     Collection = "settings"
)

// ChangeEvent tells subscribers that one collection of a user changed.
// It carries no payload: subscribers reload the whole collection.
type ChangeEvent struct {
	UserID     string     `json:"user_id"`
	Collection Collection `json:"collection"`
	At         time.Time  `json:"at"`
}
