package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/daltonneres/finantrack/internal/httputil"
	"github.com/daltonneres/finantrack/internal/logger"
	"github.com/daltonneres/finantrack/internal/middleware"
	"github.com/daltonneres/finantrack/internal/models"
	"github.com/daltonneres/finantrack/internal/service"
	"github.com/daltonneres/finantrack/internal/session"
)

// Handlers translates form submissions into service calls and renders
// JSON views.
type Handlers struct {
	Users        *service.Users
	Accounts     *service.Accounts
	Transactions *service.Transactions
	Sessions     *session.Manager
}

func New(users *service.Users, accounts *service.Accounts, transactions *service.Transactions, sessions *session.Manager) *Handlers {
	return &Handlers{
		Users:        users,
		Accounts:     accounts,
		Transactions: transactions,
		Sessions:     sessions,
	}
}

type accountView struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Bank    string          `json:"bank"`
	Balance decimal.Decimal `json:"balance"`
}

type transactionView struct {
	ID              uint            `json:"id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category,omitempty"`
	AccountID       uint            `json:"account_id"`
	TargetAccountID *uint           `json:"target_account_id,omitempty"`
}

func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"flash": httputil.PopFlash(w, r),
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Authenticate(r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httputil.RedirectFlash(w, r, "/login", "Incorrect username or password.")
			return
		}
		h.serverError(w, "login failed", err)
		return
	}

	if err := h.Sessions.Issue(w, user.ID); err != nil {
		h.serverError(w, "failed to create session", err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"flash": httputil.PopFlash(w, r),
	})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	_, err := h.Users.Register(r.FormValue("username"), r.FormValue("password"))
	switch {
	case err == nil:
		httputil.RedirectFlash(w, r, "/login", "Account created. Please log in.")
	case errors.Is(err, service.ErrDuplicateUsername):
		httputil.RedirectFlash(w, r, "/register", "Username already in use.")
	case service.IsValidation(err):
		httputil.RedirectFlash(w, r, "/register", err.Error())
	default:
		h.serverError(w, "registration failed", err)
	}
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	httputil.RedirectFlash(w, r, "/login", "You have been logged out.")
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	views, err := h.Accounts.ListWithBalances(userID)
	if err != nil {
		h.serverError(w, "failed to load dashboard", err)
		return
	}

	accounts := make([]accountView, 0, len(views))
	for _, v := range views {
		accounts = append(accounts, accountView{
			ID:      v.Account.ID,
			Name:    v.Account.Name,
			Bank:    v.Account.Bank,
			Balance: v.Balance,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"accounts": accounts,
		"flash":    httputil.PopFlash(w, r),
	})
}

func (h *Handlers) AccountDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID, err := parseID(chi.URLParam(r, "accountID"))
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "account not found")
		return
	}

	acc, err := h.Accounts.ForOwner(userID, accountID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	balance, err := h.Accounts.Balance(acc)
	if err != nil {
		h.serverError(w, "failed to compute balance", err)
		return
	}
	txs, err := h.Transactions.ForAccount(acc.ID)
	if err != nil {
		h.serverError(w, "failed to fetch transactions", err)
		return
	}

	views := make([]transactionView, 0, len(txs))
	for _, t := range txs {
		views = append(views, transactionView{
			ID:              t.ID,
			Type:            string(t.Type),
			Amount:          t.Amount,
			Description:     t.Description,
			Category:        t.Category,
			AccountID:       t.AccountID,
			TargetAccountID: t.TargetAccountID,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"account": accountView{
			ID:      acc.ID,
			Name:    acc.Name,
			Bank:    acc.Bank,
			Balance: balance,
		},
		"transactions": views,
		"flash":        httputil.PopFlash(w, r),
	})
}

func (h *Handlers) AddAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	opening := decimal.Zero
	if text := r.FormValue("opening_balance"); text != "" {
		var err error
		if opening, err = decimal.NewFromString(text); err != nil {
			httputil.RedirectFlash(w, r, "/dashboard", "Opening balance is not a number.")
			return
		}
	}

	_, err := h.Accounts.Create(userID, r.FormValue("name"), r.FormValue("bank"), opening)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	httputil.RedirectFlash(w, r, "/dashboard", "Account added.")
}

func (h *Handlers) AddTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	accountID, err := parseID(r.FormValue("account_id"))
	if err != nil {
		httputil.RedirectFlash(w, r, "/dashboard", "Invalid account.")
		return
	}
	amount, err := service.ParseAmount(r.FormValue("amount"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	var target *uint
	if text := r.FormValue("target_account_id"); text != "" {
		id, err := parseID(text)
		if err != nil {
			httputil.RedirectFlash(w, r, "/dashboard", "Invalid target account.")
			return
		}
		target = &id
	}

	_, err = h.Transactions.Add(userID, service.AddInput{
		AccountID:       accountID,
		Type:            models.TransactionType(r.FormValue("type")),
		Amount:          amount,
		TargetAccountID: target,
		Description:     r.FormValue("description"),
		Category:        r.FormValue("category"),
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	httputil.RedirectFlash(w, r, "/dashboard", "Transaction added.")
}

func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID, err := parseID(chi.URLParam(r, "accountID"))
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "account not found")
		return
	}

	if err := h.Accounts.Delete(userID, accountID); err != nil {
		h.domainError(w, r, err)
		return
	}
	httputil.RedirectFlash(w, r, "/dashboard", "Account and its transactions removed.")
}

func (h *Handlers) DeleteAllAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Accounts.DeleteAll(userID); err != nil {
		h.serverError(w, "failed to delete accounts", err)
		return
	}
	httputil.RedirectFlash(w, r, "/dashboard", "All accounts and transactions removed.")
}

// domainError maps expected service failures onto the flash-and-redirect
// policy; anything unexpected is a server fault.
func (h *Handlers) domainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		httputil.WriteError(w, http.StatusNotFound, "account not found")
	case errors.Is(err, service.ErrNotOwner):
		httputil.RedirectFlash(w, r, "/dashboard", "Access denied.")
	case service.IsValidation(err):
		httputil.RedirectFlash(w, r, "/dashboard", err.Error())
	default:
		h.serverError(w, "request failed", err)
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, msg string, err error) {
	logger.Log.Error(msg, zap.Error(err))
	httputil.WriteError(w, http.StatusInternalServerError, msg)
}

func parseID(text string) (uint, error) {
	id, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
