package postgres

import (
	"context"
	"time"

	"github.com/ajoroapp/ajoro-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type invitationsRepo struct{ pool *pgxpool.Pool }

func (r *invitationsRepo) Create(inv models.Invitation) (models.Invitation, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Status == "" {
		inv.Status = models.InviteStatusPending
	}
	// expires_at comes from the column default, never computed here.
	err := r.pool.QueryRow(context.Background(),
		`INSERT INTO invitations(id, circle_id, invited_by, email, status)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING id, circle_id, invited_by, email, status, invited_at, expires_at, accepted_at`,
		inv.ID, inv.CircleID, inv.InvitedBy, inv.Email, inv.Status,
	).Scan(&inv.ID, &inv.CircleID, &inv.InvitedBy, &inv.Email, &inv.Status,
		&inv.InvitedAt, &inv.ExpiresAt, &inv.AcceptedAt)
	return inv, err
}

func (r *invitationsRepo) GetByID(id string) (models.Invitation, error) {
	var inv models.Invitation
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, circle_id, invited_by, email, status, invited_at, expires_at, accepted_at
		   FROM invitations WHERE id=$1`, id,
	).Scan(&inv.ID, &inv.CircleID, &inv.InvitedBy, &inv.Email, &inv.Status,
		&inv.InvitedAt, &inv.ExpiresAt, &inv.AcceptedAt)
	return inv, notFound(err)
}

func (r *invitationsRepo) ListPending(email string, now time.Time) ([]models.Invitation, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT i.id, i.circle_id, i.invited_by, i.email, i.status, i.invited_at, i.expires_at, i.accepted_at,
		        c.name, c.description, c.contribution_amount, c.frequency, c.max_members,
		        p.full_name
		   FROM invitations i
		   LEFT JOIN circles c ON c.id = i.circle_id
		   LEFT JOIN profiles p ON p.user_id = i.invited_by
		  WHERE i.email=$1 AND i.status='pending' AND i.expires_at > $2
		  ORDER BY i.invited_at DESC`,
		email, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		var name, desc, freq *string
		var amount *int64
		var maxMembers *int
		if err := rows.Scan(&inv.ID, &inv.CircleID, &inv.InvitedBy, &inv.Email, &inv.Status,
			&inv.InvitedAt, &inv.ExpiresAt, &inv.AcceptedAt,
			&name, &desc, &amount, &freq, &maxMembers,
			&inv.InviterName); err != nil {
			return nil, err
		}
		if name != nil {
			inv.Circle = &models.CircleSummary{
				Name:               *name,
				Description:        deref(desc),
				ContributionAmount: derefInt64(amount),
				Frequency:          models.CircleFrequency(deref(freq)),
				MaxMembers:         derefInt(maxMembers),
			}
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) CountPending(email string, now time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invitations
		  WHERE email=$1 AND status='pending' AND expires_at > $2`,
		email, now,
	).Scan(&n)
	return n, err
}

func (r *invitationsRepo) MarkAccepted(id string, at time.Time) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE invitations SET status='accepted', accepted_at=$2 WHERE id=$1`,
		id, at,
	)
	return err
}

func (r *invitationsRepo) MarkDeclined(id string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE invitations SET status='declined' WHERE id=$1`, id,
	)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
