package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	m := NewManager("test-secret", 7*24*time.Hour)

	token, err := m.GenerateToken("user-123")

	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, err := m.VerifyToken(token)

	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	if userID != "user-123" {
		t.Errorf("got user id %q, want %q", userID, "user-123")
	}
}

func TestVerifyTokenFailures(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	expired := NewManager("test-secret", -time.Hour)
	expiredToken, err := expired.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("generate expired token: %v", err)
	}

	other := NewManager("other-secret", time.Hour)
	tamperedToken, err := other.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("generate tampered token: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "expired", token: expiredToken, wantErr: ErrTokenExpired},
		{name: "wrong signing key", token: tamperedToken, wantErr: ErrTokenInvalid},
		{name: "garbage", token: "not-a-token", wantErr: ErrTokenMalformed},
		{name: "empty", token: "", wantErr: ErrTokenMalformed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.VerifyToken(tc.token)

			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got error %v, want %v", err, tc.wantErr)
			}
		})
	}
}
