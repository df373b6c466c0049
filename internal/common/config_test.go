package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Pipeline.ResponseSchema != SchemaColor {
		t.Errorf("ResponseSchema = %q, want %q", cfg.Pipeline.ResponseSchema, SchemaColor)
	}
	if cfg.LLM.Primary != PrimaryClaude {
		t.Errorf("Primary = %q, want %q", cfg.LLM.Primary, PrimaryClaude)
	}
	if cfg.Zhipu.Model != "glm-4-flash" {
		t.Errorf("Zhipu model = %q, want glm-4-flash", cfg.Zhipu.Model)
	}
	// Missing credentials must select fallback paths, not fail startup
	if cfg.Tavily.APIKey != "" || cfg.Claude.APIKey != "" || cfg.Zhipu.APIKey != "" {
		t.Error("default config should carry no credentials")
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marketmood.toml")
	content := `
environment = "production"

[server]
port = 9090

[pipeline]
response_schema = "label"
expose_provenance = true
request_timeout = "15s"

[zhipu]
model = "glm-4-plus"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(path)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("Host = %q, want default localhost", cfg.Server.Host)
	}
	if cfg.Pipeline.ResponseSchema != SchemaLabel {
		t.Errorf("ResponseSchema = %q, want label", cfg.Pipeline.ResponseSchema)
	}
	if !cfg.Pipeline.ExposeProvenance {
		t.Error("expected expose_provenance = true")
	}
	if cfg.RequestTimeout() != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout())
	}
	if cfg.Zhipu.Model != "glm-4-plus" {
		t.Errorf("Zhipu model = %q, want glm-4-plus", cfg.Zhipu.Model)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "tvly-test")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("ZHIPU_API_KEY", "zhipu-test")
	t.Setenv("MARKETMOOD_SERVER_PORT", "3000")
	t.Setenv("MARKETMOOD_RESPONSE_SCHEMA", "label")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Tavily.APIKey != "tvly-test" {
		t.Errorf("Tavily key = %q, want tvly-test", cfg.Tavily.APIKey)
	}
	if cfg.Claude.APIKey != "sk-ant-test" {
		t.Errorf("Claude key = %q, want sk-ant-test", cfg.Claude.APIKey)
	}
	if cfg.Zhipu.APIKey != "zhipu-test" {
		t.Errorf("Zhipu key = %q, want zhipu-test", cfg.Zhipu.APIKey)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Pipeline.ResponseSchema != SchemaLabel {
		t.Errorf("ResponseSchema = %q, want label", cfg.Pipeline.ResponseSchema)
	}
}

func TestEnvOverridePriority(t *testing.T) {
	// MARKETMOOD_-prefixed variables take precedence over vendor-standard names
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-low")
	t.Setenv("MARKETMOOD_CLAUDE_API_KEY", "sk-ant-high")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Claude.APIKey != "sk-ant-high" {
		t.Errorf("Claude key = %q, want sk-ant-high", cfg.Claude.APIKey)
	}
}

func TestRequestTimeoutFallback(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Pipeline.RequestTimeout = "not-a-duration"
	if cfg.RequestTimeout() != 60*time.Second {
		t.Errorf("RequestTimeout = %v, want 60s fallback", cfg.RequestTimeout())
	}
}
