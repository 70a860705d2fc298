package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/daltonneres/finantrack/internal/handlers"
	appmw "github.com/daltonneres/finantrack/internal/middleware"
	"github.com/daltonneres/finantrack/internal/session"
)

func New(h *handlers.Handlers, sessions *session.Manager) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)

	authed := appmw.Authenticated(sessions)

	r.With(authed).Get("/dashboard", h.Dashboard)
	r.With(authed).Get("/conta/{accountID}", h.AccountDetail)
	r.With(authed).Post("/add_account", h.AddAccount)
	r.With(authed).Post("/add_transaction", h.AddTransaction)
	r.With(authed).Post("/delete_bank_account/{accountID}", h.DeleteAccount)
	r.With(authed).Post("/delete_all_accounts", h.DeleteAllAccounts)
	r.With(authed).Get("/logout", h.Logout)

	return r
}
