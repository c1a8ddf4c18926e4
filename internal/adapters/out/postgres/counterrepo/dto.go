// Package counterrepo stores the global order sequence in a relational table.
package counterrepo

import "time"

// OrderSequenceName is the row holding the order identifier sequence.
const OrderSequenceName = "order_sequence"

// CounterDTO is one named monotonic counter.
type CounterDTO struct {
	Name      string `gorm:"primaryKey;size:64"`
	Count     int64  `gorm:"not null"`
	UpdatedAt time.Time
}

func (CounterDTO) TableName() string {
	return "sequence_counters"
}
