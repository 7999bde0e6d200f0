package crypto

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func setClock(t *testing.T, at time.Time) {
	t.Helper()
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = time.Now })
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "alice", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("ValidateToken() UserID = %d, want 42", claims.UserID)
	}
	if claims.Subject != "alice" {
		t.Errorf("ValidateToken() Subject = %q, want %q", claims.Subject, "alice")
	}
}

func TestValidateTokenExpiry(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	setClock(t, issued)

	token, err := GenerateToken(42, "alice", testSecret, 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	// One minute before expiry the token still verifies.
	timeNow = func() time.Time { return issued.Add(29 * time.Minute) }
	if _, err := ValidateToken(token, testSecret); err != nil {
		t.Errorf("ValidateToken() at t+29m unexpected error: %v", err)
	}

	// One minute after expiry it fails with the expiry kind.
	timeNow = func() time.Time { return issued.Add(31 * time.Minute) }
	if _, err := ValidateToken(token, testSecret); err != ErrTokenExpired {
		t.Errorf("ValidateToken() at t+31m error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "alice", "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if _, err := ValidateToken(token, "wrong-secret"); err != ErrInvalidSignature {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidSignature", err)
	}
}

func TestValidateTokenTamperedSignature(t *testing.T) {
	token, err := GenerateToken(42, "alice", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := ValidateToken(tampered, testSecret); err != ErrInvalidSignature {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidSignature", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-valid-token", testSecret); err != ErrTokenMalformed {
		t.Errorf("ValidateToken() error = %v, want ErrTokenMalformed", err)
	}
}

func TestValidateTokenMissingClaims(t *testing.T) {
	sign := func(claims jwt.MapClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("SignedString() unexpected error: %v", err)
		}
		return s
	}

	exp := time.Now().Add(time.Hour).Unix()

	noUserID := sign(jwt.MapClaims{"sub": "alice", "exp": exp})
	if _, err := ValidateToken(noUserID, testSecret); err != ErrTokenMalformed {
		t.Errorf("ValidateToken() without user_id error = %v, want ErrTokenMalformed", err)
	}

	noSubject := sign(jwt.MapClaims{"user_id": int64(42), "exp": exp})
	if _, err := ValidateToken(noSubject, testSecret); err != ErrTokenMalformed {
		t.Errorf("ValidateToken() without sub error = %v, want ErrTokenMalformed", err)
	}
}

func TestValidateTokenWrongAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":     "alice",
		"user_id": int64(42),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := ValidateToken(token, testSecret); err == nil {
		t.Error("ValidateToken() accepted an unsigned token")
	}
}
