package cmd

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// JWTSecret enables HS256 tokens. JWTJWKSURL, when set, takes precedence
	// and enables RS256/ES256 tokens from an identity provider.
	JWTSecret  string
	JWTJWKSURL string
	JWTIssuer  string

	// KafkaBrokers is empty when the kafka mirror is disabled.
	KafkaBrokers []string
	KafkaTopic   string

	StatusTransitionPolicy string

	WSSendBuffer  int
	WSIdleTimeout time.Duration

	TrackingCacheSize int
	TrackingCacheTTL  time.Duration

	LogLevel string
}

// DSN is the postgres:// connection string for gorm and golang-migrate.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	if c.DBSslMode != "" {
		u.RawQuery = "sslmode=" + url.QueryEscape(c.DBSslMode)
	}
	return u.String()
}

// KafkaEnabled reports whether status changes are mirrored to kafka.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c Config) Validate() error {
	var missing []string
	required := []struct{ key, value string }{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}
	if c.JWTSecret == "" && c.JWTJWKSURL == "" {
		missing = append(missing, "JWT_SECRET or JWT_JWKS_URL")
	}
	if c.KafkaEnabled() && c.KafkaTopic == "" {
		missing = append(missing, "KAFKA_TOPIC")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
