package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/artistgraph/pkg/render/nodelink"
)

// Cache backends selectable in the config file.
const (
	backendFile   = "file"
	backendSQLite = "sqlite"
	backendRedis  = "redis"
	backendMongo  = "mongo"
	backendNone   = "none"
)

const (
	defaultCacheTTL   = 7 * 24 * time.Hour
	defaultOutputPath = "assets/combined_graph.png"
	sqliteFilename    = "cache.db"
)

// defaultSeeds is the artist list used when no seeds are configured.
var defaultSeeds = []string{
	"Lamp", "Ichiko Aoba", "Lily Chou-Chou", "Magnolia Cacophony", "utari",
	"The Natsuyasumi Band", "Kaede", "Fishmans", "Nanase Aikawa", "Shiina Ringo",
	"YOASOBI", "Centimillimental", "Ado", "Fujii Kaze", "Yumi Arai",
	"Yumi Matsutoya", "Ayase", "Given", "Gen Hoshino", "Joe Hisaishi",
	"Aoi Tejima", "Macaroni Enpitsu", "yama", "Vaundy", "Kikuo",
	"Eve", "Rokudenashi", "natori", "Satoshi Takebe", "Wednesday Campanella",
	"Ryuichi Sakamoto", "Cornelius", "KIRINJI", "Yorushika", "Aimer",
	"Aimyon", "Official Hige Dandism", "King Gnu", "RADWIMPS", "Spitz",
	"Tokyo Incidents", "Utada Hikaru", "Sheena Ringo", "Suchmos", "LUCKY TAPES",
	"cero", "Sakanaction", "Awesome City Club", "Hikaru Utada", "Zutomayo",
	"Kenshi Yonezu", "Rei", "iri", "Haruka Nakamura", "Kokia",
	"Nujabes", "Shugo Tokumaru", "Mariya Takeuchi", "Tatsuro Yamashita", "Akiko Yano",
	"TWEEDEES", "Hitomitoi", "YUKI", "Chara",
}

// Config is the on-disk configuration, decoded from TOML.
type Config struct {
	Seeds       []string          `toml:"seeds"`
	Spotify     SpotifyConfig     `toml:"spotify"`
	MusicBrainz MusicBrainzConfig `toml:"musicbrainz"`
	Cache       CacheConfig       `toml:"cache"`
	Render      RenderConfig      `toml:"render"`
}

// SpotifyConfig holds client-credentials for the Spotify Web API.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// MusicBrainzConfig identifies this client to MusicBrainz.
type MusicBrainzConfig struct {
	UserAgent      string `toml:"user_agent"`
	Contact        string `toml:"contact"`
	RecordingLimit int    `toml:"recording_limit"`
}

// CacheConfig selects and configures the response cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	TTL           string `toml:"ttl"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// RenderConfig sets defaults for the render command and the shell's visualize step.
type RenderConfig struct {
	Output string `toml:"output"`
	Title  string `toml:"title"`
	Layout string `toml:"layout"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend:       backendFile,
			TTL:           defaultCacheTTL.String(),
			MongoDatabase: appName,
		},
		Render: RenderConfig{
			Output: defaultOutputPath,
			Title:  nodelink.DefaultTitle,
			Layout: nodelink.DefaultLayout,
		},
	}
}

// loadConfig reads path (or the default location when empty), fills in
// defaults and applies environment overrides. A missing default file is
// not an error; a missing explicit file is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err == nil {
			path = filepath.Join(dir, "config.toml")
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv(os.Getenv)
	if len(cfg.Seeds) == 0 {
		cfg.Seeds = defaultSeeds
	}
	return cfg, cfg.validate()
}

// applyEnv overrides secrets and connection strings from the environment.
func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Spotify.ClientID, "SPOTIFY_CLIENT_ID")
	set(&c.Spotify.ClientSecret, "SPOTIFY_CLIENT_SECRET")
	set(&c.Cache.RedisAddr, "ARTISTGRAPH_REDIS_ADDR")
	set(&c.Cache.MongoURI, "ARTISTGRAPH_MONGO_URI")
	set(&c.Cache.Backend, "ARTISTGRAPH_CACHE")
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendSQLite, backendNone:
	case backendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache backend redis requires cache.redis_addr")
		}
	case backendMongo:
		if c.Cache.MongoURI == "" {
			return fmt.Errorf("cache backend mongo requires cache.mongo_uri")
		}
	default:
		return fmt.Errorf("unknown cache backend: %s (must be file, sqlite, redis, mongo or none)", c.Cache.Backend)
	}
	if _, err := c.cacheTTL(); err != nil {
		return err
	}
	if !nodelink.ValidLayout(c.Render.Layout) {
		return fmt.Errorf("unknown render layout: %s", c.Render.Layout)
	}
	return nil
}

// cacheTTL parses the configured TTL. An empty value means the default.
func (c *Config) cacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return defaultCacheTTL, nil
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache.ttl %q: %w", c.Cache.TTL, err)
	}
	return ttl, nil
}

// readSeeds reads one artist name per line. Blank lines and lines starting
// with # are ignored.
func readSeeds(r io.Reader) ([]string, error) {
	var seeds []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seeds = append(seeds, line)
	}
	return seeds, sc.Err()
}

// readSeedsFile reads seeds from path.
func readSeedsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	seeds, err := readSeeds(f)
	if err != nil {
		return nil, fmt.Errorf("read seeds %s: %w", path, err)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("seeds file %s is empty", path)
	}
	return seeds, nil
}
