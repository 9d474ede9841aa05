package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

// isolateEnv points XDG dirs at a temp dir and clears env overrides.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "ARTISTGRAPH_REDIS_ADDR", "ARTISTGRAPH_MONGO_URI", "ARTISTGRAPH_CACHE"} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if !slices.Equal(cfg.Seeds, defaultSeeds) {
		t.Errorf("seeds = %d entries, want default list", len(cfg.Seeds))
	}
	if cfg.Cache.Backend != backendFile {
		t.Errorf("backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Render.Output != defaultOutputPath {
		t.Errorf("output = %q", cfg.Render.Output)
	}
	if ttl, _ := cfg.cacheTTL(); ttl != defaultCacheTTL {
		t.Errorf("ttl = %v, want %v", ttl, defaultCacheTTL)
	}
}

func TestDefaultSeeds(t *testing.T) {
	if len(defaultSeeds) != 64 {
		t.Errorf("default seeds = %d, want 64", len(defaultSeeds))
	}
	for _, s := range defaultSeeds {
		if strings.Contains(s, "Takebe Wednesday") {
			t.Errorf("seed %q fuses two artists", s)
		}
	}
	if !slices.Contains(defaultSeeds, "Wednesday Campanella") {
		t.Error("missing Wednesday Campanella")
	}
}

func TestLoadConfig_DefaultLocation(t *testing.T) {
	dir := isolateEnv(t)
	writeFile(t, filepath.Join(dir, "config", appName, "config.toml"), `
seeds = ["Lamp", "Fishmans"]

[cache]
backend = "sqlite"
ttl = "1h"

[render]
output = "out/graph.svg"
`)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if !slices.Equal(cfg.Seeds, []string{"Lamp", "Fishmans"}) {
		t.Errorf("seeds = %v", cfg.Seeds)
	}
	if cfg.Cache.Backend != backendSQLite {
		t.Errorf("backend = %q", cfg.Cache.Backend)
	}
	if ttl, _ := cfg.cacheTTL(); ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", ttl)
	}
	if cfg.Render.Output != "out/graph.svg" {
		t.Errorf("output = %q", cfg.Render.Output)
	}
	if cfg.Render.Layout == "" {
		t.Error("unset layout should keep its default")
	}
}

func TestLoadConfig_ExplicitMissing(t *testing.T) {
	isolateEnv(t)
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestLoadConfig_Env(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
	t.Setenv("ARTISTGRAPH_CACHE", "redis")
	t.Setenv("ARTISTGRAPH_REDIS_ADDR", "localhost:6379")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Spotify.ClientID != "id" || cfg.Spotify.ClientSecret != "secret" {
		t.Errorf("spotify = %+v", cfg.Spotify)
	}
	if cfg.Cache.Backend != backendRedis || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad toml", "seeds = [", "load config"},
		{"unknown backend", "[cache]\nbackend = \"memcached\"", "unknown cache backend"},
		{"redis without addr", "[cache]\nbackend = \"redis\"", "redis_addr"},
		{"mongo without uri", "[cache]\nbackend = \"mongo\"", "mongo_uri"},
		{"bad ttl", "[cache]\nttl = \"forever\"", "cache.ttl"},
		{"bad layout", "[render]\nlayout = \"spring\"", "layout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			path := writeFile(t, filepath.Join(t.TempDir(), "config.toml"), tt.content)
			_, err := loadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("loadConfig() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestReadSeeds(t *testing.T) {
	in := "Lamp\n\n# comment\n  Fishmans  \nIchiko Aoba\n"
	got, err := readSeeds(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readSeeds() error: %v", err)
	}
	if want := []string{"Lamp", "Fishmans", "Ichiko Aoba"}; !slices.Equal(got, want) {
		t.Errorf("readSeeds() = %v, want %v", got, want)
	}
}

func TestReadSeedsFile(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, filepath.Join(dir, "seeds.txt"), "Lamp\nYUKI\n")
	got, err := readSeedsFile(path)
	if err != nil || len(got) != 2 {
		t.Errorf("readSeedsFile() = %v, %v", got, err)
	}

	empty := writeFile(t, filepath.Join(dir, "empty.txt"), "# nothing\n")
	if _, err := readSeedsFile(empty); err == nil {
		t.Error("empty seeds file should fail")
	}
	if _, err := readSeedsFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("missing seeds file should fail")
	}
}
