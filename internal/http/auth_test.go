package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub-backend-go/internal/services"
)

func testTokens() services.TokenService {
	return services.TokenService{
		Secret:     []byte("test-secret"),
		Issuer:     "mentorhub",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func authedRequest(t *testing.T, tokens services.TokenService, email, role string) *http.Request {
	t.Helper()
	access, _, err := tokens.CreateAccessToken("user-1", email, role)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	return req
}

func TestWithAuthRejectsMissingToken(t *testing.T) {
	handler := WithAuth(testTokens())(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWithAuthRejectsRefreshToken(t *testing.T) {
	tokens := testTokens()
	refresh, err := tokens.CreateRefreshToken("user-1")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)

	handler := WithAuth(tokens)(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := testTokens()
	handler := WithAuth(tokens)(RequireRole("mentor")(okHandler()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, "mihai@example.com", "mentor"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, "ana@example.com", "student"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := testTokens()
	handler := WithAuth(tokens)(RequireAdmin([]string{"Ops@Example.com"})(okHandler()))

	// Allow-listed email, case-insensitive.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, "ops@example.com", "mentor"))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Any authenticated user outside the list is rejected.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, "ana@example.com", "student"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminEmptyListRejectsEveryone(t *testing.T) {
	tokens := testTokens()
	handler := WithAuth(tokens)(RequireAdmin(nil)(okHandler()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, tokens, "ops@example.com", "mentor"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
