package config

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// Config holds every runtime parameter of the server.
type Config struct {
	Server   ServerConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port        int
	DataDir     string
	CORSOrigins []string
}

type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type AuthConfig struct {
	Username      string
	PasswordHash  string
	JWTSecret     string
	TokenTTLHours int
}

// Load reads the config file and applies environment overrides on
// top. The file format is a flat two-level YAML subset, parsed with a
// purpose-built scanner.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:   ServerConfig{Port: 3000, DataDir: "data"},
		RabbitMQ: RabbitMQConfig{Port: 5672, VHost: "/"},
		Auth:     AuthConfig{Username: "staff", TokenTTLHours: 24},
	}

	if path != "" {
		if err := readFile(cfg, path); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	if cfg.Server.DataDir == "" {
		return nil, fmt.Errorf("invalid config: data_dir must not be empty")
	}
	if cfg.RabbitMQ.Enabled && cfg.RabbitMQ.Host == "" {
		return nil, fmt.Errorf("invalid config: rabbitmq enabled without a host")
	}
	return cfg, nil
}

func readFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var section string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		switch section {
		case "server":
			switch key {
			case "port":
				cfg.Server.Port = atoi(value, cfg.Server.Port)
			case "data_dir":
				cfg.Server.DataDir = value
			case "cors_origins":
				cfg.Server.CORSOrigins = splitList(value)
			}
		case "rabbitmq":
			switch key {
			case "enabled":
				cfg.RabbitMQ.Enabled = value == "true"
			case "host":
				cfg.RabbitMQ.Host = value
			case "port":
				cfg.RabbitMQ.Port = atoi(value, cfg.RabbitMQ.Port)
			case "user":
				cfg.RabbitMQ.User = value
			case "password":
				cfg.RabbitMQ.Password = value
			case "vhost":
				if value != "" {
					cfg.RabbitMQ.VHost = value
				}
			}
		case "auth":
			switch key {
			case "username":
				cfg.Auth.Username = value
			case "password_hash":
				cfg.Auth.PasswordHash = value
			case "jwt_secret":
				cfg.Auth.JWTSecret = value
			case "token_ttl_hours":
				cfg.Auth.TokenTTLHours = atoi(value, cfg.Auth.TokenTTLHours)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = atoi(v, cfg.Server.Port)
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Server.DataDir = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("RABBITMQ_ENABLED"); v != "" {
		cfg.RabbitMQ.Enabled = v == "true"
	}
	if v := os.Getenv("RABBITMQ_HOST"); v != "" {
		cfg.RabbitMQ.Host = v
	}
	if v := os.Getenv("RABBITMQ_PORT"); v != "" {
		cfg.RabbitMQ.Port = atoi(v, cfg.RabbitMQ.Port)
	}
	if v := os.Getenv("RABBITMQ_USER"); v != "" {
		cfg.RabbitMQ.User = v
	}
	if v := os.Getenv("RABBITMQ_PASSWORD"); v != "" {
		cfg.RabbitMQ.Password = v
	}
	if v := os.Getenv("RABBITMQ_VHOST"); v != "" {
		cfg.RabbitMQ.VHost = v
	}
	if v := os.Getenv("AUTH_USERNAME"); v != "" {
		cfg.Auth.Username = v
	}
	if v := os.Getenv("AUTH_PASSWORD_HASH"); v != "" {
		cfg.Auth.PasswordHash = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
}

// FindConfig returns the first config file present among the usual
// candidates.
func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "config.yml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
