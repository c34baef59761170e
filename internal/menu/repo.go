package menu

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo is the "menu_items" document collection.
type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) ListItems(ctx context.Context) ([]MenuItem, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, description, price, category, image, available
	                               FROM menu_items ORDER BY created_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	defer rows.Close()

	var out []MenuItem
	for rows.Next() {
		var m MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.Image, &m.Available); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) UpsertItem(ctx context.Context, m MenuItem) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO menu_items(id, name, description, price, category, image, available)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name, description=EXCLUDED.description, price=EXCLUDED.price,
			category=EXCLUDED.category, image=EXCLUDED.image, available=EXCLUDED.available,
			updated_at=now()
	`, m.ID, m.Name, m.Description, m.Price, m.Category, m.Image, m.Available)
	return err
}

func (r *Repo) DeleteItem(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
