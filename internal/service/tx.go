package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// txTimeout bounds every multi-row stock transaction. Generous on purpose: a
// multi-line write-off against slow storage must not spuriously abort.
const txTimeout = 15 * time.Second

// runTx executes fn inside a GORM transaction with a deadline when db is
// available, or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	txCtx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()
	return db.WithContext(txCtx).Transaction(fn)
}

// AlertaStockNotifier receives the products touched by a committed stock
// mutation so the alert worker can flag the ones below their minimum.
// Implementations must be non-blocking; failures are logged, never returned
// into the mutation path.
type AlertaStockNotifier interface {
	NotificarStockBajo(ctx context.Context, productoIDs []uuid.UUID)
}
