package postgres

import (
	repo "github.com/ajoroapp/ajoro-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users         repo.Users
	Profiles      repo.Profiles
	Circles       repo.Circles
	Members       repo.Members
	Contributions repo.Contributions
	Invitations   repo.Invitations
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:         &usersRepo{pool},
		Profiles:      &profilesRepo{pool},
		Circles:       &circlesRepo{pool},
		Members:       &membersRepo{pool},
		Contributions: &contributionsRepo{pool},
		Invitations:   &invitationsRepo{pool},
	}
}
