package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func newTestCredentials(t *testing.T) *Credentials {
	t.Helper()
	creds, err := NewCredentials("ops@example.com", "hunter2", "test-secret", "https://report.example.com", time.Hour)
	if err != nil {
		t.Fatalf("NewCredentials failed: %v", err)
	}
	return creds
}

func TestNewCredentials_Validation(t *testing.T) {
	if _, err := NewCredentials("", "pw", "secret", "", time.Hour); err == nil {
		t.Error("expected error for empty email")
	}
	if _, err := NewCredentials("a@b.c", "", "secret", "", time.Hour); err == nil {
		t.Error("expected error for empty password")
	}
	if _, err := NewCredentials("a@b.c", "pw", "", "", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestCredentials_Authenticate(t *testing.T) {
	creds := newTestCredentials(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "ops@example.com", "hunter2", false},
		{"wrong password", "ops@example.com", "hunter3", true},
		{"wrong email", "other@example.com", "hunter2", true},
		{"email case differs", "OPS@example.com", "hunter2", true},
		{"empty email", "", "hunter2", true},
		{"empty password", "ops@example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := creds.Authenticate(tt.email, tt.password)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() unexpected error: %v", err)
			}
			want := User{ID: "1", Email: "ops@example.com", Name: "Admin User"}
			if user != want {
				t.Errorf("Authenticate() = %+v, want %+v", user, want)
			}
		})
	}
}

func TestCredentials_TokenRoundTrip(t *testing.T) {
	creds := newTestCredentials(t)
	user, _ := creds.Authenticate("ops@example.com", "hunter2")

	token, expiresAt, err := creds.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("token %q is not a compact JWT", token)
	}
	if d := time.Until(expiresAt); d < 59*time.Minute || d > time.Hour+time.Minute {
		t.Errorf("expiresAt in %v, want ~1h", d)
	}

	got, err := creds.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if got != user {
		t.Errorf("VerifyToken() = %+v, want %+v", got, user)
	}
}

func TestCredentials_VerifyToken_Rejects(t *testing.T) {
	creds := newTestCredentials(t)
	user, _ := creds.Authenticate("ops@example.com", "hunter2")
	valid, _, _ := creds.IssueToken(user)

	t.Run("empty", func(t *testing.T) {
		if _, err := creds.VerifyToken(""); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := creds.VerifyToken("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("other secret", func(t *testing.T) {
		other, _ := NewCredentials("ops@example.com", "hunter2", "different", "https://report.example.com", time.Hour)
		if _, err := other.VerifyToken(valid); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("other issuer", func(t *testing.T) {
		other, _ := NewCredentials("ops@example.com", "hunter2", "test-secret", "https://elsewhere.example.com", time.Hour)
		if _, err := other.VerifyToken(valid); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		later := newTestCredentials(t)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		if _, err := later.VerifyToken(valid); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := Claims{
			Email: "ops@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   OperatorID,
				Issuer:    "https://report.example.com",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("sign none: %v", err)
		}
		if _, err := creds.VerifyToken(unsigned); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})
}
