package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultKafka = Kafka{
	GroupID: "rider-dispatch",
	Topic:   "deliveries",
}

var defaultTwilio = Twilio{
	BaseURL: "https://api.twilio.com/2010-04-01",
}

var defaultDispatch = Dispatch{
	OfferWindow:         60 * time.Second,
	SendAttempts:        3,
	SendBaseDelay:       time.Second,
	SendMaxDelay:        8 * time.Second,
	SendTimeout:         10 * time.Second,
	FailureAdvanceDelay: time.Second,
	MappingTTL:          5 * time.Minute,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       10,
	Burst:      20,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultTwilio returns the default Twilio settings.
func DefaultTwilio() Twilio {
	return defaultTwilio
}

// DefaultDispatch returns the default dispatch policy.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
