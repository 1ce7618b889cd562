package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores delivery events consumer settings. Empty brokers disable the worker consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Twilio stores WhatsApp transport credentials.
type Twilio struct {
	AccountSID string
	AuthToken  string
	From       string
	BaseURL    string
}

// Dispatch stores the offer sequencing policy.
type Dispatch struct {
	OfferWindow         time.Duration // acceptance window per candidate
	SendAttempts        int
	SendBaseDelay       time.Duration
	SendMaxDelay        time.Duration
	SendTimeout         time.Duration // per transport attempt
	FailureAdvanceDelay time.Duration // advance delay after a failed send
	MappingTTL          time.Duration
}

// RateLimit stores per-IP HTTP rate limit settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores pprof endpoint credentials for non-loopback access.
type Pprof struct {
	User string
	Pass string
}

// Config stores the service settings.
type Config struct {
	Port      int
	DB        DB
	Kafka     Kafka
	Twilio    Twilio
	Dispatch  Dispatch
	RateLimit RateLimit
	Pprof     Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      envInt("PORT", DefaultPort()),
		DB:        loadDB(),
		Kafka:     loadKafka(),
		Twilio:    loadTwilio(),
		Dispatch:  loadDispatch(),
		RateLimit: loadRateLimit(),
		Pprof: Pprof{
			User: os.Getenv("PPROF_USER"),
			Pass: os.Getenv("PPROF_PASS"),
		},
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	pflag.Parse()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Dispatch.OfferWindow <= 0 {
		return fmt.Errorf("invalid offer window: %s", c.Dispatch.OfferWindow)
	}
	if c.Dispatch.SendAttempts <= 0 {
		return fmt.Errorf("invalid send attempts: %d", c.Dispatch.SendAttempts)
	}
	if c.Dispatch.MappingTTL <= 0 {
		return fmt.Errorf("invalid mapping ttl: %s", c.Dispatch.MappingTTL)
	}
	return nil
}

func loadDB() DB {
	db := DefaultDB()
	db.Host = envStr("POSTGRES_HOST", db.Host)
	db.Port = envStr("POSTGRES_PORT", db.Port)
	db.User = envStr("POSTGRES_USER", db.User)
	db.Pass = envStr("POSTGRES_PASSWORD", db.Pass)
	db.Name = envStr("POSTGRES_DB", db.Name)
	return db
}

func loadKafka() Kafka {
	k := DefaultKafka()
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				k.Brokers = append(k.Brokers, b)
			}
		}
	}
	k.GroupID = envStr("KAFKA_GROUP_ID", k.GroupID)
	k.Topic = envStr("KAFKA_TOPIC", k.Topic)
	return k
}

func loadTwilio() Twilio {
	t := DefaultTwilio()
	t.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	t.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	t.From = os.Getenv("TWILIO_WHATSAPP_FROM")
	t.BaseURL = envStr("TWILIO_BASE_URL", t.BaseURL)
	return t
}

func loadDispatch() Dispatch {
	d := DefaultDispatch()
	d.OfferWindow = envDuration("DISPATCH_OFFER_WINDOW", d.OfferWindow)
	d.SendAttempts = envInt("DISPATCH_SEND_ATTEMPTS", d.SendAttempts)
	d.SendBaseDelay = envDuration("DISPATCH_SEND_BASE_DELAY", d.SendBaseDelay)
	d.SendMaxDelay = envDuration("DISPATCH_SEND_MAX_DELAY", d.SendMaxDelay)
	d.SendTimeout = envDuration("DISPATCH_SEND_TIMEOUT", d.SendTimeout)
	d.FailureAdvanceDelay = envDuration("DISPATCH_FAILURE_ADVANCE_DELAY", d.FailureAdvanceDelay)
	d.MappingTTL = envDuration("DISPATCH_MAPPING_TTL", d.MappingTTL)
	return d
}

func loadRateLimit() RateLimit {
	rl := DefaultRateLimit()
	rl.Enabled = envBool("RATE_LIMIT_ENABLED", rl.Enabled)
	rl.Rate = envFloat("RATE_LIMIT_RATE", rl.Rate)
	rl.Burst = envInt("RATE_LIMIT_BURST", rl.Burst)
	rl.TTL = envDuration("RATE_LIMIT_TTL", rl.TTL)
	rl.MaxBuckets = envInt("RATE_LIMIT_MAX_BUCKETS", rl.MaxBuckets)
	return rl
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("warning: %s=%q is not an int, using %d", key, v, def)
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("warning: %s=%q is not a float, using %v", key, v, def)
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("warning: %s=%q is not a bool, using %v", key, v, def)
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("warning: %s=%q is not a duration, using %s", key, v, def)
	}
	return def
}
