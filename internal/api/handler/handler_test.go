package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"farmingpro/internal/datastore"
	"farmingpro/internal/datastore/memstore"
	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"
	"farmingpro/internal/pkg/caching"
	"farmingpro/internal/pkg/clock"
	"farmingpro/internal/pkg/limiter"
	"farmingpro/internal/pkg/locker"
	"farmingpro/internal/pkg/logger"
	"farmingpro/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopNotifier struct{}

func (nopNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	return nil
}

type blockingLimiter struct{}

func (blockingLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) error {
	return limiter.ErrRateLimited
}

type testServer struct {
	handler  http.Handler
	injector *do.Injector
	clock    *clock.Fake
}

func newTestServer(t *testing.T, rateLimiter interfaces.Limiter) *testServer {
	t.Helper()

	injector := do.New()
	store := memstore.New()
	fake := clock.NewFake(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))

	do.ProvideNamedValue(injector, "envs", map[string]string{
		"BOT_TOKEN":                 "123456:test-token",
		"JWT_SECRET":                "test-secret",
		"INIT_DATA_SKIP_VALIDATION": "true",
	})
	do.ProvideValue[interfaces.Repository](injector, store)
	do.ProvideValue[interfaces.Locker](injector, locker.NewLocal())
	do.ProvideValue[interfaces.Clock](injector, fake)
	do.ProvideValue[interfaces.Limiter](injector, rateLimiter)
	do.ProvideValue[caching.Cache](injector, caching.NopCache{})
	do.ProvideValue[caching.ReadOnlyCache](injector, caching.NopCache{})
	do.ProvideValue(injector, logger.Discard())
	services.Provide(injector)
	do.OverrideValue[interfaces.Notifier](injector, interfaces.Notifier(nopNotifier{}))

	require.NoError(t, datastore.Seed(context.Background(), store, fake.Now()))

	h, err := New(&Config{Container: injector, Mode: "release", Origins: []string{"*"}})
	require.NoError(t, err)

	return &testServer{h, injector, fake}
}

func initData(id int64, username string) string {
	user, _ := json.Marshal(map[string]interface{}{
		"id":         id,
		"first_name": "User",
		"username":   username,
	})

	v := url.Values{}
	v.Set("query_id", "AAHdF6IQAAAAAN0XohDhrOrc")
	v.Set("user", string(user))
	v.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	v.Set("hash", "c501b71e775f74ce10e377dea85a7ea24ecd640b223ea86dfe453e0eaed2e2b2")
	return v.Encode()
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	authentication, err := do.Invoke[*services.Authentication](s.injector)
	require.NoError(t, err)
	token, err := authentication.CreateAdminToken("ops", time.Hour, time.Now())
	require.NoError(t, err)
	return token
}

func TestMeRequiresInitData(t *testing.T) {
	s := newTestServer(t, limiter.Unlimited{})

	rec := s.do(t, http.MethodGet, "/api/v1/me", "", "")
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestMeRegistersAccount(t *testing.T) {
	s := newTestServer(t, limiter.Unlimited{})
	token := initData(1001, "alice")

	rec := s.do(t, http.MethodGet, "/api/v1/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.Contains(t, rec.Body.String(), `"is_new_account":true`)

	rec = s.do(t, http.MethodGet, "/api/v1/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_new_account":false`)
}

func TestFarmingRoutes(t *testing.T) {
	s := newTestServer(t, limiter.Unlimited{})
	token := initData(1001, "alice")

	rec := s.do(t, http.MethodPost, "/api/v1/farming/start", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/farming/start", token, "")
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/farming/claim", token, "")
	assert.NotEqual(t, http.StatusOK, rec.Code)

	s.clock.Advance(services.FarmingSessionLength)
	rec = s.do(t, http.MethodGet, "/api/v1/farming", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(models.FarmingPhaseClaimable))

	rec = s.do(t, http.MethodPost, "/api/v1/farming/claim", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "480")

	rec = s.do(t, http.MethodGet, "/api/v1/me/transactions", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"farming"`)
}

func TestTaskRoutes(t *testing.T) {
	s := newTestServer(t, limiter.Unlimited{})
	token := initData(1001, "alice")

	rec := s.do(t, http.MethodGet, "/api/v1/tasks", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Join Telegram Channel")

	// seeded tasks come first
	rec = s.do(t, http.MethodPost, "/api/v1/tasks/1/complete", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/tasks/1/complete", token, "")
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/tasks/abc/complete", token, "")
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/tasks/completed", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"task_id":1`)
}

func TestWalletRoutes(t *testing.T) {
	s := newTestServer(t, limiter.Unlimited{})
	token := initData(1001, "alice")

	rec := s.do(t, http.MethodGet, "/api/v1/wallet/withdraw/check?amount=10", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"can_withdraw":false`)
	assert.Contains(t, rec.Body.String(), "Minimum withdrawal is $12")

	rec = s.do(t, http.MethodPost, "/api/v1/wallet/withdraw", token, `{"amount":"20"}`)
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/wallet/deposit", token, `{"amount":"100"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "First deposit - Withdrawal enabled")

	rec = s.do(t, http.MethodPost, "/api/v1/wallet/deposit", token, `{"amount":"1.005"}`)
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/wallet/withdraw", token, `{"amount":"20"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestBoostRoutes(t *testing.T) {
	s := newTestServer(t, limiter.Unlimited{})
	token := initData(1001, "alice")

	rec := s.do(t, http.MethodGet, "/api/v1/boosts", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "VIP Boost")

	rec = s.do(t, http.MethodPost, "/api/v1/boosts/4/purchase", token, "")
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/wallet/deposit", token, `{"amount":"100"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/boosts/4/purchase", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/boosts/active", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Basic Boost")
}

func TestReferralRoutes(t *testing.T) {
	s := newTestServer(t, limiter.Unlimited{})

	rec := s.do(t, http.MethodGet, "/api/v1/me", initData(1, "alice"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	serviceAccount, err := do.Invoke[*services.ServiceAccount](s.injector)
	require.NoError(t, err)
	referrer := int64(1)
	_, err = serviceAccount.CreateAccount(context.Background(), &models.AccountFromAuth{ID: 2, FirstName: "Bob"}, &referrer)
	require.NoError(t, err)

	rec = s.do(t, http.MethodGet, "/api/v1/referrals/stats", initData(1, "alice"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"level1":1`)

	rec = s.do(t, http.MethodGet, "/api/v1/referrals", initData(1, "alice"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"referred_id":2`)
}

func TestRateLimitedMutations(t *testing.T) {
	s := newTestServer(t, blockingLimiter{})
	token := initData(1001, "alice")

	rec := s.do(t, http.MethodPost, "/api/v1/farming/start", token, "")
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/farming", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t, limiter.Unlimited{})
	token := initData(1001, "alice")

	rec := s.do(t, http.MethodPost, "/api/v1/wallet/deposit", token, `{"amount":"100"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/v1/wallet/withdraw", token, `{"amount":"20"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/stats", "", "")
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/stats", token, "")
	assert.NotEqual(t, http.StatusOK, rec.Code)

	admin := s.adminToken(t)
	rec = s.do(t, http.MethodGet, "/api/v1/admin/stats", admin, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"total_users":1`)
	assert.Contains(t, rec.Body.String(), `"pending_withdrawals":1`)

	serviceAdmin, err := do.Invoke[*services.ServiceAdmin](s.injector)
	require.NoError(t, err)
	pending, err := serviceAdmin.ListPendingWithdrawals(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	path := "/api/v1/admin/transactions/" + strconv.FormatInt(pending[0].ID, 10) + "/status"

	rec = s.do(t, http.MethodPut, path, admin, `{"status":"bogus"}`)
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPut, path, admin, `{"status":"failed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"failed"`)

	rec = s.do(t, http.MethodPut, path, admin, `{"status":"completed"}`)
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/admin/tasks", admin, `{"title":"Follow X","reward":"250","category":"twitter"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Follow X")

	rec = s.do(t, http.MethodPut, "/api/v1/admin/tasks/1/active", admin, `{"is_active":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"is_active":false`)

	rec = s.do(t, http.MethodPost, "/api/v1/admin/boosts", admin, `{"name":"Weekend","multiplier":"1.5","duration":72,"price":"80"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPut, "/api/v1/admin/settings/withdrawal_enabled", admin, `{"value":"false"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/admin/settings/withdrawal_enabled", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"value":"false"`)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/settings/nope", admin, "")
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/wallet/withdraw", token, `{"amount":"12"}`)
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/accounts", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1001`)
}
