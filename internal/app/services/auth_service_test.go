package services

import (
	"context"
	"errors"
	"testing"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
)

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.users["VH101"] = &models.User{ID: "VH101", Role: models.RoleStudent, Password: "secret"}
	svc := NewAuthService(store)

	tests := []struct {
		name    string
		userID  string
		pass    string
		wantErr error
	}{
		{name: "valid credentials", userID: "VH101", pass: "secret"},
		{name: "trims surrounding whitespace", userID: "  VH101 ", pass: "secret"},
		{name: "wrong password", userID: "VH101", pass: "nope", wantErr: apperrors.ErrInvalidCredentials},
		{name: "unknown user", userID: "VH999", pass: "secret", wantErr: apperrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), dto.LoginRequest{UserID: tt.userID, Password: tt.pass})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() unexpected error: %v", err)
			}
			if resp.AccessToken != "VH101" {
				t.Errorf("AccessToken = %q, want user id", resp.AccessToken)
			}
			if resp.TokenType != "bearer" {
				t.Errorf("TokenType = %q, want bearer", resp.TokenType)
			}
			if resp.Role != string(models.RoleStudent) {
				t.Errorf("Role = %q, want Student", resp.Role)
			}
		})
	}
}

func TestAuthServiceResolveToken(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.users["admin"] = &models.User{ID: "admin", Role: models.RoleAdmin, Password: "admin"}
	svc := NewAuthService(store)

	user, err := svc.ResolveToken(context.Background(), "admin")
	if err != nil {
		t.Fatalf("ResolveToken() unexpected error: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want Admin", user.Role)
	}

	if _, err := svc.ResolveToken(context.Background(), "ghost"); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("ResolveToken(unknown) error = %v, want ErrTokenInvalid", err)
	}
	if _, err := svc.ResolveToken(context.Background(), "  "); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("ResolveToken(blank) error = %v, want ErrTokenInvalid", err)
	}
}
