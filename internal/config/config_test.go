package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.ServerPort)
	}
	if cfg.JWTSecret != "dev-secret" {
		t.Fatalf("expected default JWT secret, got %q", cfg.JWTSecret)
	}
	if !cfg.OTPExposeCode {
		t.Fatal("expected OTP code exposure to default on for demo deployments")
	}
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/silaibuddy")
	t.Setenv("OTP_EXPOSE_CODE", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "9191" {
		t.Fatalf("expected SERVER_PORT override, got %q", cfg.ServerPort)
	}
	if cfg.JWTSecret != "prod-secret" {
		t.Fatalf("expected JWT_SECRET override, got %q", cfg.JWTSecret)
	}
	if cfg.DatabaseURL != "postgres://localhost:5432/silaibuddy" {
		t.Fatalf("expected DATABASE_URL override, got %q", cfg.DatabaseURL)
	}
	if cfg.OTPExposeCode {
		t.Fatal("expected OTP_EXPOSE_CODE=false to disable code exposure")
	}
}
