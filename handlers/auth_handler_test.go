package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/cricket-system/models"
	"github.com/Dosada05/cricket-system/services"
)

type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, input services.LoginInput) (*models.User, error) {
	return s.user, s.err
}

const testJWTSecret = "test-secret"

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "ok",
			body:       `{"username":"kohli","password":"secret","full_name":"Virat Kohli","player_role":"BATSMAN"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing fields",
			body:       `{"username":"kohli"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "username taken",
			body:       `{"username":"kohli","password":"secret","full_name":"Virat Kohli","player_role":"BATSMAN"}`,
			serviceErr: services.ErrUsernameTaken,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "invalid role",
			body:       `{"username":"kohli","password":"secret","full_name":"Virat Kohli","player_role":"UMPIRE"}`,
			serviceErr: services.ErrInvalidPlayerRole,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{
				user: &models.User{ID: 1, Username: "kohli"},
				err:  tt.serviceErr,
			}, testJWTSecret)

			rec := httptest.NewRecorder()
			h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestLogin(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{user: &models.User{ID: 42, Username: "kohli"}}, testJWTSecret)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"kohli","password":"secret"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Token == "" {
		t.Fatal("response contains no token")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(body.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims["user_id"] != float64(42) {
		t.Fatalf("user_id claim = %v, want 42", claims["user_id"])
	}
	if claims["name"] != "kohli" {
		t.Fatalf("name claim = %v, want kohli", claims["name"])
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: services.ErrAuthInvalidCredentials}, testJWTSecret)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"kohli","password":"wrong"}`)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
