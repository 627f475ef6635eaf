// handlers_test.go - Shared setup for handler tests

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"bistro-backend/auth"
	"bistro-backend/database"
	"bistro-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeIntents struct {
	amount   int64
	currency string
	err      error
}

func (f *fakeIntents) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.amount, f.currency = amount, currency
	if f.err != nil {
		return "", f.err
	}
	return "pi_secret_test", nil
}

type published struct {
	topic   string
	payload interface{}
}

type fakeKitchen struct {
	sent []published
	err  error
}

func (f *fakeKitchen) Publish(topic string, payload interface{}) error {
	f.sent = append(f.sent, published{topic, payload})
	return f.err
}

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	stores  *database.Stores
	signer  *auth.Signer
	intents *fakeIntents
	kitchen *fakeKitchen
}

// setupTestEnv creates a fresh database and router for one test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	env := &testEnv{
		db:      db,
		stores:  database.NewStores(db),
		signer:  auth.NewSigner("test-secret", time.Hour, nil),
		intents: &fakeIntents{},
		kitchen: &fakeKitchen{},
	}
	h := &Handler{
		Stores:       env.stores,
		Signer:       env.signer,
		Payments:     env.intents,
		Kitchen:      env.kitchen,
		KitchenTopic: "kitchen/orders",
		Currency:     "usd",
		Log:          logger,
	}
	env.router = NewRouter(h, []string{"*"}, logger)
	return env
}

// user registers email (optionally as admin) and returns a token for it.
func (e *testEnv) user(t *testing.T, email string, admin bool) (*models.User, string) {
	t.Helper()
	ctx := context.Background()
	u := &models.User{Email: email}
	_, err := e.stores.Users.Register(ctx, u)
	require.NoError(t, err)
	if admin {
		_, err = e.stores.Users.PromoteByEmail(ctx, email)
		require.NoError(t, err)
	}
	token, err := e.signer.Sign(email)
	require.NoError(t, err)
	return u, token
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewBuffer(b)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	e.router.ServeHTTP(w, req)
	return w
}

// count returns the number of rows in model's table.
func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
