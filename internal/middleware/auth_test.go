package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spcflow/spcflow/internal/logging"
)

// generateAPIKey generates a valid API key of specified length
func generateAPIKey(length int) string {
	key := make([]byte, length)
	for i := range key {
		key[i] = 'a' + byte(i%26)
	}
	return string(key)
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected bool
	}{
		{"valid key - exactly 32 chars", generateAPIKey(32), true},
		{"valid key - longer than 32 chars", generateAPIKey(64), true},
		{"invalid key - too short", generateAPIKey(31), false},
		{"invalid key - empty string", "", false},
		{"invalid key - 32 spaces", "                                ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateAPIKey(tt.key); got != tt.expected {
				t.Errorf("ValidateAPIKey(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func newAuthApp(apiKeys []string, enabled bool) *fiber.App {
	app := fiber.New()
	app.Use(APIKeyAuth(logging.NewDevelopment(), apiKeys, enabled))
	app.Get("/protected", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAPIKeyAuth_Disabled(t *testing.T) {
	app := newAuthApp(nil, false)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected status 200 with auth disabled, got %d", resp.StatusCode)
	}
}

func TestAPIKeyAuth_MissingKey(t *testing.T) {
	app := newAuthApp([]string{generateAPIKey(32)}, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
}

func TestAPIKeyAuth_ValidKeyHeaders(t *testing.T) {
	key := generateAPIKey(32)
	app := newAuthApp([]string{key}, true)

	headers := []struct {
		name  string
		value string
	}{
		{"X-API-Key", key},
		{"Authorization", "Bearer " + key},
		{"Authorization", key},
	}

	for _, h := range headers {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(h.name, h.value)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to perform request: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("Header %s: expected status 200, got %d", h.name, resp.StatusCode)
		}
	}
}

func TestAPIKeyAuth_InvalidKey(t *testing.T) {
	app := newAuthApp([]string{generateAPIKey(32)}, true)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("X-API-Key", generateAPIKey(33))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
}

func TestAPIKeyAuth_ShortConfiguredKeyRejected(t *testing.T) {
	// A configured key below the minimum length never authenticates.
	short := "short-key"
	app := newAuthApp([]string{short}, true)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("X-API-Key", short)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
}
