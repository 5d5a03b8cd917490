package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MCP_TRANSPORT", "")
	t.Setenv("BACKEND_MODE", "")
	t.Setenv("OUTPUT_SCHEMA", "")
	t.Setenv("MAX_OUTPUT_TOKENS", "")
	t.Setenv("BACKEND_RPS", "")

	cfg := Load()
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.BackendMode != "openai" {
		t.Fatalf("expected default backend mode openai, got %q", cfg.BackendMode)
	}
	if cfg.OutputSchema != "confidence" {
		t.Fatalf("expected default output schema confidence, got %q", cfg.OutputSchema)
	}
	if cfg.MaxOutputTokens != 300 {
		t.Fatalf("expected default output token cap 300, got %d", cfg.MaxOutputTokens)
	}
	if cfg.BackendRPS != 2 {
		t.Fatalf("expected default backend rps 2, got %v", cfg.BackendRPS)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("BACKEND_MODE", "mock")
	t.Setenv("OUTPUT_SCHEMA", "verified")
	t.Setenv("MAX_OUTPUT_TOKENS", "150")
	t.Setenv("BACKEND_RPS", "0.5")
	t.Setenv("BREAKER_ENABLED", "false")

	cfg := Load()
	if cfg.Transport != "http" {
		t.Fatalf("expected transport override, got %q", cfg.Transport)
	}
	if cfg.BackendMode != "mock" {
		t.Fatalf("expected backend mode override, got %q", cfg.BackendMode)
	}
	if cfg.OutputSchema != "verified" {
		t.Fatalf("expected output schema override, got %q", cfg.OutputSchema)
	}
	if cfg.MaxOutputTokens != 150 {
		t.Fatalf("expected token cap 150, got %d", cfg.MaxOutputTokens)
	}
	if cfg.BackendRPS != 0.5 {
		t.Fatalf("expected backend rps 0.5, got %v", cfg.BackendRPS)
	}
	if cfg.BreakerEnabled {
		t.Fatalf("expected breaker disabled")
	}
}

func TestLoadFallsBackOnUnparsableValues(t *testing.T) {
	t.Setenv("MAX_OUTPUT_TOKENS", "many")
	t.Setenv("BACKEND_RPS", "fast")
	t.Setenv("BREAKER_ENABLED", "maybe")

	cfg := Load()
	if cfg.MaxOutputTokens != 300 || cfg.BackendRPS != 2 || !cfg.BreakerEnabled {
		t.Fatalf("expected fallbacks on unparsable values, got %+v", cfg)
	}
}
