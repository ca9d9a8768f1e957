package cmd

import "time"

// Config carries everything the application reads from the environment.
// AmqpURL may be empty, which disables event publishing.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	AmqpURL    string

	// DeliveryFee is the flat fee added to every order, e.g. "2.00".
	DeliveryFee string

	// MaxPendingAge is how long an order may sit in PENDING before the
	// expiry job cancels it.
	MaxPendingAge time.Duration

	// CartRetention is how long an untouched cart survives before the
	// cleanup job purges it.
	CartRetention time.Duration
}
