package txs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TxManager struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewTxManager(db *pgxpool.Pool, logger *slog.Logger) *TxManager {
	return &TxManager{
		db:     db,
		logger: logger,
	}
}

func (t *TxManager) WithTransaction(ctx context.Context, txFunc func(ctx context.Context) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.logger.Error("Error al iniciar la transacción", "error", err)
		return fmt.Errorf("error al iniciar la transacción: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("Pánico dentro de la transacción, ejecutando rollback", "panic", r)

			_ = tx.Rollback(ctx)

			panic(r)
		}
	}()

	if err := txFunc(txCtx); err != nil {
		t.logger.Error("Error en la transacción, ejecutando rollback", "error", err)

		if rbErr := tx.Rollback(ctx); rbErr != nil {
			t.logger.Error("Error al hacer rollback de la transacción", "error", rbErr)
			return fmt.Errorf("error en la transacción: %w, error en rollback: %v", err, rbErr)
		}

		return fmt.Errorf("error en la transacción: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.logger.Error("Error al confirmar la transacción", "error", err)
		return fmt.Errorf("error al confirmar la transacción: %w", err)
	}

	return nil
}
