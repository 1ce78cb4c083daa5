package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/ajoroapp/ajoro-backend/internal/api/httpx"
	"github.com/ajoroapp/ajoro-backend/internal/api/validate"
	"github.com/ajoroapp/ajoro-backend/internal/auth"
	"github.com/ajoroapp/ajoro-backend/internal/config"
	"github.com/ajoroapp/ajoro-backend/internal/metrics"
	"github.com/ajoroapp/ajoro-backend/internal/middleware"
	"github.com/ajoroapp/ajoro-backend/internal/models"
	repo "github.com/ajoroapp/ajoro-backend/internal/repository"
	"github.com/ajoroapp/ajoro-backend/internal/services"
)

type RouterDeps struct {
	Cfg        config.Config
	TM         *auth.TokenManager
	UserSvc    *services.UserService
	ProfileSvc *services.ProfileService
	CircleSvc  *services.CircleService
	InviteSvc  *services.InvitationService
	MemberSvc  *services.MemberService
}

type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds until the access token expires
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	authmw := middleware.NewAuthMiddleware(d.TM)

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
			var req struct{ Email, Password string }
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
				return
			}
			u, err := d.UserSvc.Register(req.Email, req.Password)
			if err != nil {
				if errors.Is(err, services.ErrEmailTaken) {
					httpx.WriteError(w, http.StatusConflict, "email_taken", err.Error(), nil)
					return
				}
				httpx.WriteError(w, http.StatusBadRequest, "validation", err.Error(), nil)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, u)
		})

		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var req struct{ Email, Password string }
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
				return
			}
			u, err := d.UserSvc.Authenticate(req.Email, req.Password)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
				return
			}
			writeTokenPair(w, d.TM, u.ID, u.Email)
		})

		r.Post("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				RefreshToken string `json:"refresh_token"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
				return
			}
			claims, isRefresh, err := d.TM.ParseAny(req.RefreshToken)
			if err != nil || !isRefresh {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token", nil)
				return
			}
			writeTokenPair(w, d.TM, claims.UserID, claims.Email)
		})

		r.Group(func(r chi.Router) {
			r.Use(authmw.Auth)

			// ---------- profile ----------
			r.Get("/me/profile", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				email, _ := middleware.UserEmail(r.Context())
				p, err := d.ProfileSvc.Get(uid, email)
				if err != nil {
					writeServiceError(w, r, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, p)
			})

			r.Put("/me/profile", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				var req struct {
					FullName string  `json:"full_name"`
					Phone    *string `json:"phone"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
					return
				}
				p, err := d.ProfileSvc.Update(uid, req.FullName, req.Phone)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "validation", err.Error(), nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, p)
			})

			// ---------- circles ----------
			r.Post("/circles", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				var req struct {
					Name               string `json:"name"`
					Description        string `json:"description"`
					ContributionAmount int64  `json:"contribution_amount"`
					MaxMembers         int    `json:"max_members"`
					Frequency          string `json:"frequency"`
					StartDate          string `json:"start_date"` // YYYY-MM-DD
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
					return
				}
				var errs validate.Errs
				if ef := validate.Required("name", req.Name); ef != nil {
					errs = append(errs, *ef)
				}
				if ef := validate.MinInt("contribution_amount", req.ContributionAmount, 1); ef != nil {
					errs = append(errs, *ef)
				}
				if ef := validate.Required("start_date", req.StartDate); ef != nil {
					errs = append(errs, *ef)
				}
				if len(errs) > 0 {
					httpx.WriteError(w, http.StatusBadRequest, "validation", errs.Error(), errs)
					return
				}
				startDate, err := time.Parse("2006-01-02", req.StartDate)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "validation", "start_date must be YYYY-MM-DD", nil)
					return
				}
				if req.MaxMembers == 0 {
					req.MaxMembers = 10
				}
				if req.Frequency == "" {
					req.Frequency = string(models.FreqMonthly)
				}
				c, err := d.CircleSvc.Create(uid, models.Circle{
					Name:               req.Name,
					Description:        req.Description,
					ContributionAmount: req.ContributionAmount,
					MaxMembers:         req.MaxMembers,
					Frequency:          models.CircleFrequency(req.Frequency),
					StartDate:          startDate,
				})
				if err != nil {
					writeServiceError(w, r, err)
					return
				}
				httpx.WriteJSON(w, http.StatusCreated, c)
			})

			r.Get("/circles", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				out, err := d.CircleSvc.ListForUser(uid)
				if err != nil {
					writeServiceError(w, r, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, out)
			})

			r.Get("/circles/{id}", func(w http.ResponseWriter, r *http.Request) {
				detail, err := d.CircleSvc.Detail(chi.URLParam(r, "id"))
				if err != nil {
					writeServiceError(w, r, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, detail)
			})

			// ---------- invitations ----------
			r.Post("/circles/{id}/invitations", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				var req struct {
					Emails []string `json:"emails"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Emails) == 0 {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "emails required", nil)
					return
				}
				sent, err := d.InviteSvc.CreateBatch(chi.URLParam(r, "id"), uid, req.Emails)
				if err != nil {
					writeServiceError(w, r, err)
					return
				}
				httpx.WriteJSON(w, http.StatusAccepted, map[string]int{"sent": sent})
			})

			r.Get("/invitations/pending", func(w http.ResponseWriter, r *http.Request) {
				email, _ := middleware.UserEmail(r.Context())
				out, err := d.InviteSvc.ListPending(email)
				if err != nil {
					writeServiceError(w, r, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, out)
			})

			r.Get("/invitations/pending/count", func(w http.ResponseWriter, r *http.Request) {
				email, _ := middleware.UserEmail(r.Context())
				n, err := d.InviteSvc.CountPending(email)
				if err != nil {
					writeServiceError(w, r, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, map[string]int{"count": n})
			})

			r.Post("/invitations/{id}/accept", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				email, _ := middleware.UserEmail(r.Context())
				if err := d.InviteSvc.Accept(chi.URLParam(r, "id"), uid, email); err != nil {
					writeServiceError(w, r, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
			})

			r.Post("/invitations/{id}/decline", func(w http.ResponseWriter, r *http.Request) {
				email, _ := middleware.UserEmail(r.Context())
				if err := d.InviteSvc.Decline(chi.URLParam(r, "id"), email); err != nil {
					writeServiceError(w, r, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "declined"})
			})

			// ---------- rotation order ----------
			r.Put("/circles/{id}/members/positions", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				var req struct {
					MemberIDs []string `json:"member_ids"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.MemberIDs) == 0 {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "member_ids required", nil)
					return
				}
				if err := d.MemberSvc.CommitOrder(chi.URLParam(r, "id"), uid, req.MemberIDs); err != nil {
					writeServiceError(w, r, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
			})
		})
	})

	return r
}

func writeTokenPair(w http.ResponseWriter, tm *auth.TokenManager, userID, email string) {
	access, refresh, exp, err := tm.GeneratePair(userID, email)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "token generation failed", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(time.Until(exp).Seconds()),
	})
}

// writeServiceError maps service sentinels to HTTP statuses; everything else
// is logged and surfaced as a generic store error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validate.Errs
	switch {
	case errors.As(err, &verrs):
		httpx.WriteError(w, http.StatusBadRequest, "validation", verrs.Error(), verrs)
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, services.ErrNotHost):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, services.ErrAlreadyMember):
		httpx.WriteError(w, http.StatusConflict, "already_member", err.Error(), nil)
	case errors.Is(err, services.ErrNotInvitee):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, services.ErrInviteResolved):
		httpx.WriteError(w, http.StatusConflict, "invite_resolved", err.Error(), nil)
	case errors.Is(err, services.ErrOrderMismatch):
		httpx.WriteError(w, http.StatusBadRequest, "order_mismatch", err.Error(), nil)
	default:
		slog.Error("store error", "err", err, "request_id", middleware.RequestIDFrom(r.Context()))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "operation failed, please try again", nil)
	}
}
