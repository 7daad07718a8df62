package httpclient

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 50*time.Second {
		t.Errorf("expected default timeout 50s, got %v", cfg.Timeout)
	}
	if cfg.MaxRedirects != 10 {
		t.Errorf("expected default max redirects 10, got %d", cfg.MaxRedirects)
	}
}

func TestConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{Timeout: 10 * time.Second, MaxRedirects: 2}
	cfg.ApplyDefaults()
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.MaxRedirects != 2 {
		t.Errorf("expected max redirects 2, got %d", cfg.MaxRedirects)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid without base url", Config{Timeout: time.Second}, false},
		{"valid with base url", Config{Timeout: time.Second, BaseURL: "http://localhost:3000"}, false},
		{"negative timeout", Config{Timeout: -1}, true},
		{"relative base url", Config{Timeout: time.Second, BaseURL: "localhost/api"}, true},
		{"unparseable base url", Config{Timeout: time.Second, BaseURL: "http://[::1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
