package postgres

import (
	"context"

	"github.com/ajoroapp/ajoro-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type circlesRepo struct{ pool *pgxpool.Pool }

const circleCols = `id, name, description, contribution_amount, max_members, frequency, start_date, status, created_by, created_at`

func scanCircle(row pgx.Row) (models.Circle, error) {
	var c models.Circle
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ContributionAmount, &c.MaxMembers,
		&c.Frequency, &c.StartDate, &c.Status, &c.CreatedBy, &c.CreatedAt)
	return c, err
}

func (r *circlesRepo) Create(c models.Circle) (models.Circle, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.CircleActive
	}
	return scanCircle(r.pool.QueryRow(context.Background(),
		`INSERT INTO circles(id, name, description, contribution_amount, max_members, frequency, start_date, status, created_by)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING `+circleCols,
		c.ID, c.Name, c.Description, c.ContributionAmount, c.MaxMembers,
		c.Frequency, c.StartDate, c.Status, c.CreatedBy,
	))
}

func (r *circlesRepo) GetByID(id string) (models.Circle, error) {
	c, err := scanCircle(r.pool.QueryRow(context.Background(),
		`SELECT `+circleCols+` FROM circles WHERE id=$1`, id))
	return c, notFound(err)
}

func (r *circlesRepo) ListOwnedBy(userID string) ([]models.Circle, error) {
	return r.list(`SELECT `+circleCols+` FROM circles
		 WHERE created_by=$1 AND status='active'
		 ORDER BY created_at DESC`, userID)
}

func (r *circlesRepo) ListJoinedBy(userID string) ([]models.Circle, error) {
	return r.list(`SELECT c.id, c.name, c.description, c.contribution_amount, c.max_members,
		        c.frequency, c.start_date, c.status, c.created_by, c.created_at
		   FROM circles c
		   JOIN circle_members m ON m.circle_id = c.id
		  WHERE m.user_id=$1
		  ORDER BY c.created_at DESC`, userID)
}

func (r *circlesRepo) list(q string, args ...any) ([]models.Circle, error) {
	rows, err := r.pool.Query(context.Background(), q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Circle
	for rows.Next() {
		c, err := scanCircle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
