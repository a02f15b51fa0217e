package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the relational schema. Adapters do not automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&stockLevelRecord{})
}

// stockLevelRecord mirrors the store Postgres stock ledger.
type stockLevelRecord struct {
	ProductID string    `gorm:"primaryKey;column:product_id;type:varchar(36)"`
	Quantity  int       `gorm:"column:quantity;not null;check:chk_stock_levels_quantity,quantity >= 0"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (stockLevelRecord) TableName() string { return "stock_levels" }
