package dbhandler

import (
	"context"
	"log"

	"database/sql"
	_ "embed"

	"github.com/behrang/sqlbatch"
	"github.com/lib/pq"
)

const (
	serializationFailure = "40001"
	maxRetries           = 5
)

//go:embed schema.sql
var schema string

// DBHandler holds the pool the deployment journal is stored in.
type DBHandler struct {
	DB *sql.DB
}

// Migrate creates the journal table when it does not exist yet.
func (handler DBHandler) Migrate(ctx context.Context) error {
	if _, err := handler.DB.ExecContext(ctx, schema); err != nil {
		log.Printf("🔴 creating journal schema - %v\n", err.Error())
		return err
	}
	return nil
}

// Batch runs the commands in one transaction. A serialization failure is
// retried up to maxRetries times.
func (handler DBHandler) Batch(opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error) {

	for attempt := 1; ; attempt++ {
		results, err := handler.runInTx(opts, commands)
		pqErr, ok := err.(*pq.Error)
		if !ok || pqErr.Code != serializationFailure || attempt >= maxRetries {
			return results, err
		}
		log.Printf("🟡 Journal write conflicted (attempt %v of %v), retrying: %v", attempt, maxRetries, err)
	}
}

func (handler DBHandler) runInTx(opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error) {
	tx, err := handler.DB.BeginTx(context.Background(), opts)
	if err != nil {
		return make([]interface{}, len(commands)), err
	}
	defer tx.Rollback()

	results, err := sqlbatch.Batch(tx, commands)
	if err != nil {
		return results, err
	}
	return results, tx.Commit()
}
