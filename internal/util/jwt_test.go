package util

import (
	"testing"
	"time"

	"menara_math_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		UUIDBase: model.UUIDBase{ID: "user-1"},
		Role:     model.Student,
		Name:     "Budi",
	}

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Role != model.Student {
		t.Errorf("Role = %q, want %q", claims.Role, model.Student)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{UUIDBase: model.UUIDBase{ID: "user-1"}}

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{UUIDBase: model.UUIDBase{ID: "user-1"}}

	token, err := GenerateJWT(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Error("expected error for expired token")
	}
}
