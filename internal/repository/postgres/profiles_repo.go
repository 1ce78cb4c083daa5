package postgres

import (
	"context"

	"github.com/ajoroapp/ajoro-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profilesRepo struct{ pool *pgxpool.Pool }

func (r *profilesRepo) GetByUserID(userID string) (models.Profile, error) {
	var p models.Profile
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, user_id, full_name, phone, avatar_url, updated_at
		   FROM profiles WHERE user_id=$1`, userID,
	).Scan(&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.AvatarURL, &p.UpdatedAt)
	return p, notFound(err)
}

func (r *profilesRepo) Upsert(p models.Profile) (models.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	var out models.Profile
	err := r.pool.QueryRow(context.Background(),
		`INSERT INTO profiles(id, user_id, full_name, phone, avatar_url)
		 VALUES($1,$2,$3,$4,$5)
		 ON CONFLICT (user_id) DO UPDATE
		 SET full_name=EXCLUDED.full_name, phone=EXCLUDED.phone, updated_at=now()
		 RETURNING id, user_id, full_name, phone, avatar_url, updated_at`,
		p.ID, p.UserID, p.FullName, p.Phone, p.AvatarURL,
	).Scan(&out.ID, &out.UserID, &out.FullName, &out.Phone, &out.AvatarURL, &out.UpdatedAt)
	return out, err
}
