package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("sunny-dragon-42")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "sunny-dragon-42" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "sunny-dragon-42") {
		t.Error("CheckPassword() = false for correct password")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("CheckPassword() = true for wrong password")
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request over the limit should be denied")
	}

	// Other clients have their own bucket
	if !rl.Allow("5.6.7.8") {
		t.Error("different client should be allowed")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.Allow("client") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("client") {
		t.Fatal("second request should be denied")
	}

	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("client") {
		t.Error("request after refill window should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name      string
		forwarded string
		realIP    string
		remote    string
		want      string
	}{
		{"forwarded header wins", "10.0.0.1", "10.0.0.2", "127.0.0.1:1234", "10.0.0.1"},
		{"real IP next", "", "10.0.0.2", "127.0.0.1:1234", "10.0.0.2"},
		{"remote addr fallback", "", "", "127.0.0.1:1234", "127.0.0.1:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
