package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	jwtsvc "juniorpass/internal/pkg/jwt"
)

type staticRevoker struct {
	revoked map[string]bool
}

func (r *staticRevoker) IsRevoked(ctx context.Context, tokenID string) bool {
	return r.revoked[tokenID]
}

func setupRouter(j *jwtsvc.Service, revoker TokenRevoker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(j, revoker), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("user_id")})
	})
	return r
}

func TestAuthAcceptsValidToken(t *testing.T) {
	j := jwtsvc.New("secret", time.Hour)
	r := setupRouter(j, &staticRevoker{revoked: map[string]bool{}})

	token, err := j.GenerateToken(42, "parent")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	j := jwtsvc.New("secret", time.Hour)
	r := setupRouter(j, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRejectsForgedToken(t *testing.T) {
	j := jwtsvc.New("secret", time.Hour)
	forged := jwtsvc.New("other-secret", time.Hour)
	r := setupRouter(j, nil)

	token, _ := forged.GenerateToken(42, "parent")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestAuthRejectsRevokedToken(t *testing.T) {
	j := jwtsvc.New("secret", time.Hour)

	token, err := j.GenerateToken(42, "parent")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	claims, err := j.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}

	r := setupRouter(j, &staticRevoker{revoked: map[string]bool{claims.ID: true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d", w.Code)
	}
}
