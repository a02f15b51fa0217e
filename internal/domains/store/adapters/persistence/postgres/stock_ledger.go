package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/store/ports"
)

var _ ports.StockLedger = (*StockLedger)(nil)

// StockLedger keeps stock levels in PostgreSQL using GORM. Every mutation is a
// single conditional statement, so concurrent reservations never oversell.
type StockLedger struct {
	db *gorm.DB
}

// NewStockLedger wires a PostgreSQL-backed ledger. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewStockLedger(db *gorm.DB) *StockLedger {
	return &StockLedger{db: db}
}

// stockRecord maps one ledger entry to the stock_levels table.
type stockRecord struct {
	ProductID string    `gorm:"primaryKey;column:product_id;type:varchar(36)"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (stockRecord) TableName() string { return "stock_levels" }

// Reserve decrements stock only when enough units remain.
func (l *StockLedger) Reserve(ctx context.Context, id domain.ProductID, amount int) error {
	if err := l.ensureDB(); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: reserve %d of %s", domain.ErrInvalidQuantity, amount, id)
	}
	result := l.db.WithContext(ctx).
		Model(&stockRecord{}).
		Where("product_id = ? AND quantity >= ?", id.String(), amount).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", amount),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	available, err := l.Quantity(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: requested %d of %s, %d available", domain.ErrInsufficientStock, amount, id, available)
}

// Restock upserts the entry, adding amount to any existing quantity.
func (l *StockLedger) Restock(ctx context.Context, id domain.ProductID, amount int) error {
	if err := l.ensureDB(); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: restock %d of %s", domain.ErrInvalidQuantity, amount, id)
	}
	record := stockRecord{ProductID: id.String(), Quantity: amount}
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("stock_levels.quantity + ?", amount),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

func (l *StockLedger) Quantity(ctx context.Context, id domain.ProductID) (int, error) {
	if err := l.ensureDB(); err != nil {
		return 0, err
	}
	var record stockRecord
	if err := l.db.WithContext(ctx).First(&record, "product_id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: %s is not stocked", domain.ErrNotFound, id)
		}
		return 0, err
	}
	return record.Quantity, nil
}

// Levels returns every ledger entry ordered by product id.
func (l *StockLedger) Levels(ctx context.Context) ([]domain.StockLevel, error) {
	return l.LevelsFor(ctx, nil)
}

// LevelsFor restricts Levels to the given products. An empty filter returns all entries.
func (l *StockLedger) LevelsFor(ctx context.Context, ids []domain.ProductID) ([]domain.StockLevel, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	query := l.db.WithContext(ctx).Order("product_id")
	if len(ids) > 0 {
		filter := make(pq.StringArray, 0, len(ids))
		for _, id := range ids {
			filter = append(filter, id.String())
		}
		query = query.Where("product_id = ANY(?)", filter)
	}
	var records []stockRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	levels := make([]domain.StockLevel, 0, len(records))
	for _, record := range records {
		id, err := domain.ParseProductID(record.ProductID)
		if err != nil {
			return nil, fmt.Errorf("stock_levels row %q: %w", record.ProductID, err)
		}
		levels = append(levels, domain.StockLevel{ProductID: id, Quantity: record.Quantity})
	}
	return levels, nil
}

func (l *StockLedger) ensureDB() error {
	if l == nil || l.db == nil {
		return errors.New("postgres stock ledger not configured")
	}
	return nil
}
