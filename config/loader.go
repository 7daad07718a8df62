package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem is the file access LoadConfig needs. Tests swap in a fake.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem is the real FileSystem.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv exports the variables in a .env file. Variables already set in
// the process environment win.
func (OSFileSystem) LoadEnv(path string) error { return godotenv.Load(path) }

// LoaderConfig collects the LoaderOptions.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

type LoaderOption func(*LoaderConfig)

func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile skips the config.yml search. A path that does not exist
// is ignored.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile skips the .env search.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Resolver finds the config.yml and .env of a service.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles are the paths LoadConfig reads. Either may be empty.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles keeps explicit paths from opts and searches for the rest.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	files := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}
	dirs := searchDirs(serviceName)
	if files.ConfigFile == "" {
		files.ConfigFile = r.first(dirs, "config.yml")
	}
	if files.EnvFile == "" {
		files.EnvFile = r.first(dirs, ".env."+serviceName, ".env")
	}
	return files
}

// first returns the first existing dir/name, trying every directory for a
// name before moving to the next name.
func (r *Resolver) first(dirs []string, names ...string) string {
	for _, name := range names {
		for _, dir := range dirs {
			p := name
			if dir != "" {
				p = dir + "/" + name
			}
			if r.FileSystem.Exists(p) {
				return p
			}
		}
	}
	return ""
}

// searchDirs lists ./cmd/<service> and ./config up to two levels above the
// working directory, then the working directory itself. Tests run from a
// package directory, hence the parents.
func searchDirs(serviceName string) []string {
	var dirs []string
	for _, up := range []string{".", "..", "../.."} {
		dirs = append(dirs, up+"/cmd/"+serviceName, up+"/config")
	}
	return append(dirs, ".", "")
}

// LoadConfig fills cfg from, in rising precedence: config.yml, the .env
// file and the process environment. Environment variables are matched
// against nested keys, so AUTH_SECRET sets auth.secret.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: OSFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}
	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(serviceName, lc)

	v := viper.New()
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", files.ConfigFile, err)
		}
	}
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return fmt.Errorf("config: load %s: %w", files.EnvFile, err)
		}
	}
	bindEnv(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", serviceName, err)
	}
	return nil
}

func bindEnv(v *viper.Viper) {
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		for _, k := range generateEnvKeyVariants(key) {
			v.Set(k, value)
		}
	}
}

// generateEnvKeyVariants spells an env var as every key it might target.
// API_BASE_URL gives api_base_url, api.base.url and api.base_url.
func generateEnvKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		v := strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_")
		if v != variants[1] {
			variants = append(variants, v)
		}
	}
	return variants
}
