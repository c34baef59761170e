package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Repo is the "orders" document collection. Items disimpan sebagai JSON text
// (items_json), sama seperti dokumen aslinya.
type Repo struct {
	DB  *pgxpool.Pool
	Log *zap.Logger
}

func (r *Repo) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, table_id, status, items_json, created_at
	                               FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var (
			id, table, status, itemsJSON string
			createdAt                    time.Time
		)
		if err := rows.Scan(&id, &table, &status, &itemsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		var items []OrderItem
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			r.logSkip(id, err)
			continue
		}
		o, err := Restore(id, table, Status(status), items, createdAt)
		if err != nil {
			r.logSkip(id, err)
			continue
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *Repo) logSkip(id string, err error) {
	if r.Log != nil {
		r.Log.Warn("skip malformed order document", zap.String("order_id", id), zap.Error(err))
	}
}

func (r *Repo) InsertOrder(ctx context.Context, o Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO orders(id, table_id, status, total_amount, items_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, o.TableID, string(o.Status), o.TotalAmount, string(items), o.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}
	return err
}

// UpdateStatus is the best-effort write-back of a status change. Only a row
// still at from is updated, jadi write yang basi tidak menimpa status baru.
func (r *Repo) UpdateStatus(ctx context.Context, orderID string, from, to Status) error {
	ct, err := r.DB.Exec(ctx, `UPDATE orders SET status=$3, updated_at=now() WHERE id=$1 AND status=$2`,
		orderID, string(from), string(to))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s is not at %s", ErrStaleStatus, orderID, from)
	}
	return nil
}
