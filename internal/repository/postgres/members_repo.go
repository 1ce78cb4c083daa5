package postgres

import (
	"context"

	"github.com/ajoroapp/ajoro-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type membersRepo struct{ pool *pgxpool.Pool }

func (r *membersRepo) Create(m models.CircleMember) (models.CircleMember, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = models.MemberActive
	}
	err := r.pool.QueryRow(context.Background(),
		`INSERT INTO circle_members(id, circle_id, user_id, position, status)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING id, circle_id, user_id, position, status, joined_at`,
		m.ID, m.CircleID, m.UserID, m.Position, m.Status,
	).Scan(&m.ID, &m.CircleID, &m.UserID, &m.Position, &m.Status, &m.JoinedAt)
	return m, err
}

func (r *membersRepo) Find(circleID, userID string) (models.CircleMember, error) {
	var m models.CircleMember
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, circle_id, user_id, position, status, joined_at
		   FROM circle_members WHERE circle_id=$1 AND user_id=$2`,
		circleID, userID,
	).Scan(&m.ID, &m.CircleID, &m.UserID, &m.Position, &m.Status, &m.JoinedAt)
	return m, notFound(err)
}

// ListByCircle returns members in join order with profile name and avatar
// joined in; callers apply rotation ordering themselves.
func (r *membersRepo) ListByCircle(circleID string) ([]models.CircleMember, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT m.id, m.circle_id, m.user_id, m.position, m.status, m.joined_at,
		        p.full_name, p.avatar_url
		   FROM circle_members m
		   LEFT JOIN profiles p ON p.user_id = m.user_id
		  WHERE m.circle_id=$1
		  ORDER BY m.joined_at`,
		circleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CircleMember
	for rows.Next() {
		var m models.CircleMember
		if err := rows.Scan(&m.ID, &m.CircleID, &m.UserID, &m.Position, &m.Status, &m.JoinedAt,
			&m.FullName, &m.AvatarURL); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membersRepo) UpdatePosition(memberID string, position int) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE circle_members SET position=$2 WHERE id=$1`,
		memberID, position,
	)
	return err
}

func (r *membersRepo) CountByCircle(circleID string) (int, error) {
	var n int
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM circle_members WHERE circle_id=$1`, circleID,
	).Scan(&n)
	return n, err
}
