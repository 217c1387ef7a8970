package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	appcmd "baggage/cmd"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort          = "8000"
	defaultDBSslMode         = "disable"
	defaultKafkaTopic        = "baggage.status-changes"
	defaultWSSendBuffer      = 16
	defaultWSIdleTimeout     = 2 * time.Minute
	defaultTrackingCacheSize = 1024
	defaultTrackingCacheTTL  = 10 * time.Minute
	defaultLogLevel          = "info"
)

// getConfigs reads the process environment after loading envFile. A missing
// envFile is not an error; variables already set win over the file.
func getConfigs(envFile string) (appcmd.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return appcmd.Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	wsBuffer, bufErr := envInt("WS_SEND_BUFFER", defaultWSSendBuffer)
	wsIdle, idleErr := envDuration("WS_IDLE_TIMEOUT", defaultWSIdleTimeout)
	cacheSize, sizeErr := envInt("TRACKING_CACHE_SIZE", defaultTrackingCacheSize)
	cacheTTL, ttlErr := envDuration("TRACKING_CACHE_TTL", defaultTrackingCacheTTL)
	if err := errors.Join(bufErr, idleErr, sizeErr, ttlErr); err != nil {
		return appcmd.Config{}, err
	}

	config := appcmd.Config{
		HTTPPort:               envString("HTTP_PORT", defaultHTTPPort),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 envString("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              envString("DB_SSLMODE", defaultDBSslMode),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		JWTJWKSURL:             os.Getenv("JWT_JWKS_URL"),
		JWTIssuer:              os.Getenv("JWT_ISSUER"),
		KafkaBrokers:           envList("KAFKA_BROKERS"),
		KafkaTopic:             envString("KAFKA_TOPIC", defaultKafkaTopic),
		StatusTransitionPolicy: os.Getenv("STATUS_TRANSITION_POLICY"),
		WSSendBuffer:           wsBuffer,
		WSIdleTimeout:          wsIdle,
		TrackingCacheSize:      cacheSize,
		TrackingCacheTTL:       cacheTTL,
		LogLevel:               strings.ToLower(envString("LOG_LEVEL", defaultLogLevel)),
	}
	return config, nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s: expected a non-negative integer, got %q", key, raw)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s: expected a positive duration such as 90s, got %q", key, raw)
	}
	return v, nil
}
