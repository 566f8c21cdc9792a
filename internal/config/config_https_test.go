package config

import (
	"os"
	"testing"
)

func TestIsHTTPSEnabled(t *testing.T) {
	tests := []struct {
		name        string
		enableHTTPS string
		expected    bool
	}{
		{
			name:        "HTTPS disabled empty string",
			enableHTTPS: "",
			expected:    false,
		},
		{
			name:        "HTTPS enabled with true",
			enableHTTPS: "true",
			expected:    true,
		},
		{
			name:        "HTTPS enabled with any value",
			enableHTTPS: "yes",
			expected:    true,
		},
		{
			name:        "HTTPS enabled with 1",
			enableHTTPS: "1",
			expected:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EnableHTTPS: tt.enableHTTPS}

			if got := cfg.IsHTTPSEnabled(); got != tt.expected {
				t.Errorf("IsHTTPSEnabled() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPSConfigFromEnv(t *testing.T) {
	originalEnableHTTPS := os.Getenv("ENABLE_HTTPS")
	originalTLSCert := os.Getenv("TLS_CERT_FILE")
	originalTLSKey := os.Getenv("TLS_KEY_FILE")

	defer func() {
		os.Setenv("ENABLE_HTTPS", originalEnableHTTPS)
		os.Setenv("TLS_CERT_FILE", originalTLSCert)
		os.Setenv("TLS_KEY_FILE", originalTLSKey)
	}()

	os.Setenv("ENABLE_HTTPS", "true")
	os.Setenv("TLS_CERT_FILE", "test.crt")
	os.Setenv("TLS_KEY_FILE", "test.key")

	cfg := &Config{
		EnableHTTPS: os.Getenv("ENABLE_HTTPS"),
		TLSCertFile: os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:  os.Getenv("TLS_KEY_FILE"),
	}

	if !cfg.IsHTTPSEnabled() {
		t.Error("Expected HTTPS to be enabled when ENABLE_HTTPS=true")
	}

	if cfg.TLSCertFile != "test.crt" {
		t.Errorf("Expected TLSCertFile to be 'test.crt', got '%s'", cfg.TLSCertFile)
	}

	if cfg.TLSKeyFile != "test.key" {
		t.Errorf("Expected TLSKeyFile to be 'test.key', got '%s'", cfg.TLSKeyFile)
	}
}
