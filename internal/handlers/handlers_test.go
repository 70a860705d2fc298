package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/daltonneres/finantrack/internal/handlers"
	"github.com/daltonneres/finantrack/internal/logger"
	"github.com/daltonneres/finantrack/internal/models"
	"github.com/daltonneres/finantrack/internal/routes"
	"github.com/daltonneres/finantrack/internal/service"
	"github.com/daltonneres/finantrack/internal/session"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Account{}, &models.Transaction{}))

	sessions := session.NewManager("test-secret", time.Hour)
	h := handlers.New(
		service.NewUsers(db),
		service.NewAccounts(db),
		service.NewTransactions(db),
		sessions,
	)
	return routes.New(h, sessions)
}

func postForm(router http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(router http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func registerAndLogin(t *testing.T, router http.Handler, username string) *http.Cookie {
	t.Helper()
	rec := postForm(router, "/register", url.Values{"username": {username}, "password": {"s3cret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	rec = postForm(router, "/login", url.Values{"username": {username}, "password": {"s3cret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))
	return sessionCookie(t, rec)
}

func TestLogin_BadCredentialsRedirectsBack(t *testing.T) {
	router := newTestRouter(t)

	rec := postForm(router, "/login", url.Values{"username": {"ghost"}, "password": {"nope"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, session.CookieName, c.Name, "no session on failed login")
	}
}

func TestDashboard_RequiresSession(t *testing.T) {
	router := newTestRouter(t)

	rec := get(router, "/dashboard")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRegister_DuplicateRedirectsToRegister(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "maria")

	rec := postForm(router, "/register", url.Values{"username": {"maria"}, "password": {"other"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/register", rec.Header().Get("Location"))
}

func TestAccountAndTransactionFlow(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	rec := postForm(router, "/add_account", url.Values{"name": {"Corrente"}, "bank": {"NuBank"}}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = postForm(router, "/add_account", url.Values{"name": {"Poupança"}, "bank": {"Caixa"}}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var dash struct {
		Accounts []struct {
			ID      uint   `json:"id"`
			Name    string `json:"name"`
			Balance string `json:"balance"`
		} `json:"accounts"`
		Flash string `json:"flash"`
	}
	rec = get(router, "/dashboard", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	require.Len(t, dash.Accounts, 2)

	src := dash.Accounts[0].ID
	dst := dash.Accounts[1].ID

	rec = postForm(router, "/add_transaction", url.Values{
		"account_id": {fmt.Sprint(src)},
		"type":       {"deposit"},
		"amount":     {"100"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postForm(router, "/add_transaction", url.Values{
		"account_id": {fmt.Sprint(src)},
		"type":       {"withdrawal"},
		"amount":     {"30"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postForm(router, "/add_transaction", url.Values{
		"account_id":        {fmt.Sprint(src)},
		"type":              {"transfer"},
		"amount":            {"20"},
		"target_account_id": {fmt.Sprint(dst)},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = get(router, "/dashboard", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	require.Len(t, dash.Accounts, 2)
	assert.Equal(t, "50", dash.Accounts[0].Balance)
	assert.Equal(t, "20", dash.Accounts[1].Balance)

	var detail struct {
		Account struct {
			Balance string `json:"balance"`
		} `json:"account"`
		Transactions []json.RawMessage `json:"transactions"`
	}
	rec = get(router, fmt.Sprintf("/conta/%d", src), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "50", detail.Account.Balance)
	assert.Len(t, detail.Transactions, 3)
}

func TestAddTransaction_BadAmountFlashesNot500(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	rec := postForm(router, "/add_account", url.Values{"name": {"Corrente"}}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postForm(router, "/add_transaction", url.Values{
		"account_id": {"1"},
		"type":       {"deposit"},
		"amount":     {"not-a-number"},
	}, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestAccountDetail_OtherUserDenied(t *testing.T) {
	router := newTestRouter(t)

	ownerCookie := registerAndLogin(t, router, "owner")
	rec := postForm(router, "/add_account", url.Values{"name": {"Privada"}}, ownerCookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	intruderCookie := registerAndLogin(t, router, "intruder")
	rec = get(router, "/conta/1", intruderCookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.NotContains(t, rec.Body.String(), "Privada")
}

func TestDeleteAccount_RemovesIt(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	rec := postForm(router, "/add_account", url.Values{"name": {"Temp"}}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postForm(router, "/delete_bank_account/1", nil, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var dash struct {
		Accounts []json.RawMessage `json:"accounts"`
	}
	rec = get(router, "/dashboard", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Empty(t, dash.Accounts)
}

func TestLogout_ClearsSession(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	rec := get(router, "/logout", cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie not cleared")
}
