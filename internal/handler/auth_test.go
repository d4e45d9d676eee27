package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubTokens struct {
	revokedAllFor []uint64
	err           error
}

func (s *stubTokens) StoreRefresh(context.Context, uint64, string, time.Time) error { return s.err }
func (s *stubTokens) ValidateRefresh(context.Context, string) (uint64, error)       { return 0, s.err }
func (s *stubTokens) RevokeByHash(context.Context, string) error                    { return s.err }
func (s *stubTokens) RevokeAllForUser(_ context.Context, userID uint64) error {
	if s.err != nil {
		return s.err
	}
	s.revokedAllFor = append(s.revokedAllFor, userID)
	return nil
}

func logoutAllRequest(t *testing.T, userID interface{}) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout-all", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	return rec, c
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	tokens := &stubTokens{}
	h := &AuthHandler{Tokens: tokens}

	rec, c := logoutAllRequest(t, uint64(9))
	assert.NoError(t, h.LogoutAll(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uint64{9}, tokens.revokedAllFor)
}

func TestLogoutAllUnauthorized(t *testing.T) {
	h := &AuthHandler{Tokens: &stubTokens{}}
	rec, c := logoutAllRequest(t, nil)
	assert.NoError(t, h.LogoutAll(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutAllStoreFailure(t *testing.T) {
	h := &AuthHandler{Tokens: &stubTokens{err: errors.New("db down")}}
	rec, c := logoutAllRequest(t, uint64(9))
	assert.NoError(t, h.LogoutAll(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
