package server

import (
	"fmt"
	"os"
	"strings"

	"github.com/andresmejia3/stegtext/pkg/stego"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

const (
	EnvAddr           = "STEGTEXT_ADDR"
	EnvAllowedOrigins = "STEGTEXT_ALLOWED_ORIGINS"
	EnvMaxUploadBytes = "STEGTEXT_MAX_UPLOAD_BYTES"
)

type Config struct {
	Addr string
	// AllowedOrigins lists CORS origins. A single "*" allows any origin.
	AllowedOrigins []string
	// MaxUploadBytes caps the size of an uploaded carrier image.
	MaxUploadBytes int64
}

func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadBytes: stego.DefaultMaxFileSize,
	}
}

// LoadConfig reads the server configuration from the environment. Values in
// envFile, if given, are used for variables the environment leaves unset.
func LoadConfig(envFile string) (Config, error) {
	cfg := DefaultConfig()

	fileValues := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil {
			return cfg, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
		fileValues = values
	}

	lookup := func(key string) (string, bool) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v, true
		}
		v := strings.TrimSpace(fileValues[key])
		return v, v != ""
	}

	if v, ok := lookup(EnvAddr); ok {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvAllowedOrigins); ok {
		var origins []string
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		if len(origins) == 0 {
			return cfg, fmt.Errorf("invalid %s %q: no origins listed", EnvAllowedOrigins, v)
		}
		cfg.AllowedOrigins = origins
	}
	if v, ok := lookup(EnvMaxUploadBytes); ok {
		n, err := humanize.ParseBytes(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvMaxUploadBytes, v, err)
		}
		if n == 0 {
			return cfg, fmt.Errorf("invalid %s: must be greater than zero", EnvMaxUploadBytes)
		}
		cfg.MaxUploadBytes = int64(n)
	}

	return cfg, nil
}
