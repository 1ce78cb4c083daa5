package postgres

import (
	"context"

	"github.com/ajoroapp/ajoro-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contributionsRepo struct{ pool *pgxpool.Pool }

func (r *contributionsRepo) ListCompleted(circleID string) ([]models.Contribution, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, circle_id, user_id, amount, status, payment_method, contributed_at
		   FROM contributions
		  WHERE circle_id=$1 AND status='completed'
		  ORDER BY contributed_at DESC`,
		circleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Contribution
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.ID, &c.CircleID, &c.UserID, &c.Amount, &c.Status,
			&c.PaymentMethod, &c.ContributedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *contributionsRepo) TotalCompleted(circleID string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM contributions
		  WHERE circle_id=$1 AND status='completed'`,
		circleID,
	).Scan(&total)
	return total, err
}
