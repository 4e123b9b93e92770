package repositories

import (
	"context"
	"fmt"

	"collabhub_backend/pkg/contextkeys"

	"gorm.io/gorm"
)

// UnitOfWork выполняет функцию внутри одной транзакции БД.
// Транзакция кладется в контекст, репозитории достают ее через dbFrom.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type UnitOfWorkImpl struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	// Вложенный Do переиспользует уже открытую транзакцию
	if _, ok := ctx.Value(contextkeys.DBContextKey).(*gorm.DB); ok {
		return fn(ctx)
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	txCtx := context.WithValue(ctx, contextkeys.DBContextKey, tx)

	if err := fn(txCtx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// dbFrom возвращает транзакцию из контекста, либо обычное соединение.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(contextkeys.DBContextKey).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
