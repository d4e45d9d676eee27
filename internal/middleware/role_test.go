package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubRoles struct {
	roles map[uint64][]string
	err   error
}

func (s *stubRoles) HasRole(_ context.Context, userID uint64, role string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, r := range s.roles[userID] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func runRequireRole(t *testing.T, roles RoleChecker, role string, userID interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	h := RequireRole(roles, role)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	return rec
}

func TestRequireRole(t *testing.T) {
	stub := &stubRoles{roles: map[uint64][]string{1: {"admin"}, 2: {"user"}}}

	t.Run("no identity", func(t *testing.T) {
		rec := runRequireRole(t, stub, "admin", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
	t.Run("role missing", func(t *testing.T) {
		rec := runRequireRole(t, stub, "admin", uint64(2))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
	t.Run("role held", func(t *testing.T) {
		rec := runRequireRole(t, stub, "admin", uint64(1))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("jwt float identity", func(t *testing.T) {
		rec := runRequireRole(t, stub, "admin", float64(1))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("lookup error", func(t *testing.T) {
		rec := runRequireRole(t, &stubRoles{err: errors.New("db down")}, "admin", uint64(1))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
