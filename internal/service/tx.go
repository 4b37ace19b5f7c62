// Package service contains the business logic: eligibility evaluation, the
// stock ledger, the fulfillment workflow, sales and notifications. Services
// depend on repository interfaces and in-memory queues, never on gin.
package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx executes fn inside a database transaction. When db is nil (unit tests
// with stub repositories) fn runs directly with a nil tx, which the stubs
// ignore.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
