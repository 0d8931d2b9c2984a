package config

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	StoreFile  string
	ProfileDir string
	SessionKey string
	Debug      bool
}

func New() *Config {
	// A local .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := Config{}
	cfg.parseFlags()

	cfg.Port = ":" + cfg.Port

	port := os.Getenv("TASKRABBIT_PORT")
	if len(port) > 0 {
		cfg.Port = ":" + port
	}

	storeFile := os.Getenv("TASKRABBIT_STORE")
	if len(storeFile) > 0 {
		cfg.StoreFile = storeFile
	}

	profileDir := os.Getenv("TASKRABBIT_PROFILE_DIR")
	if len(profileDir) > 0 {
		cfg.ProfileDir = profileDir
	}

	sessionKey := os.Getenv("TASKRABBIT_SESSION_KEY")
	if len(sessionKey) > 0 {
		cfg.SessionKey = sessionKey
	}

	if len(os.Getenv("TASKRABBIT_DEBUG")) > 0 {
		cfg.Debug = true
	}

	return &cfg
}

func (c *Config) parseFlags() {
	flag.StringVar(&c.Port, "httport", "8080", "")
	flag.StringVar(&c.StoreFile, "storefile", "./user_data.json", "")
	flag.StringVar(&c.ProfileDir, "profiledir", "./profile_pics", "")
	flag.StringVar(&c.SessionKey, "sessionkey", "taskrabbit-dev-key", "")
	flag.BoolVar(&c.Debug, "debug", false, "")

	flag.Parse()
}
