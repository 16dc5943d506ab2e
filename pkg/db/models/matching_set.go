package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MatchingSet groups products sold as a coordinated pattern, such as a
// harness, leash, and collar in the same print.
type MatchingSet struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string         `gorm:"column:name;not null"`
	Pattern    *string        `gorm:"column:pattern"`
	ProductIDs pq.StringArray `gorm:"column:product_ids;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
}
