package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nmodels_dir: /tmp\ntotal_ram_bytes: 123\nprobe_timeout_ms: 7\nresend_url: http://chat/resend\ncors_origins: [a, b]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.ModelsDir != "/tmp" || cfg.TotalRAMBytes != 123 || cfg.ProbeTimeoutMS != 7 || cfg.ResendURL != "http://chat/resend" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","models_file":"/m.yaml","total_ram_bytes":42,"log_level":"debug","cors_enabled":true}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.ModelsFile != "/m.yaml" || cfg.TotalRAMBytes != 42 || cfg.LogLevel != "debug" || !cfg.CORS() {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nmodels_dir=\"/x\"\nprobe_cache_ttl_ms=9\nresend_timeout_ms=1\nlog_format=\"json\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.ModelsDir != "/x" || cfg.ProbeCacheTTLMS != 9 || cfg.ResendTimeoutMS != 1 || cfg.LogFormat != "json" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func boolp(b bool) *bool { return &b }

func TestMerge(t *testing.T) {
	base := Config{Addr: ":1", LogLevel: "info", ProbeTimeoutMS: 3000}
	got := Merge(base, Config{Addr: ":2", CORSOrigins: []string{"x"}, CORSEnabled: boolp(true)})
	if got.Addr != ":2" || got.LogLevel != "info" || got.ProbeTimeoutMS != 3000 || !got.CORS() || len(got.CORSOrigins) != 1 {
		t.Fatalf("unexpected merge: %+v", got)
	}
}

func TestMergeCORSCanBeDisabled(t *testing.T) {
	base := Config{CORSEnabled: boolp(true)}
	if got := Merge(base, Config{}); !got.CORS() {
		t.Fatalf("unset override must keep base value")
	}
	got := Merge(base, Config{CORSEnabled: boolp(false)})
	if got.CORS() || got.CORSEnabled == nil {
		t.Fatalf("explicit false must win: %+v", got)
	}
	if (Config{}).CORS() {
		t.Fatalf("unset must mean disabled")
	}
}
