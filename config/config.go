// Package config is the server configuration, read from flags and
// LEARNHUB_* environment variables.
package config

import "time"

const Prefix = "LEARNHUB"

type Config struct {
	Web     Web
	Cors    Cors
	Session Session
	Storage Storage
	Redis   Redis
	Catalog Catalog
	DB      DB
	Notify  Notify
	Rate    Rate
	Auth    Auth
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type Session struct {
	Lifetime time.Duration `conf:"default:720h"`
	Secure   bool
}

// Storage picks where the browser's shop state lives: "session" keeps it
// in the session itself, "redis" keeps it in Redis keyed by profile.
type Storage struct {
	Backend    string `conf:"default:session"`
	QuotaBytes int    `conf:"default:65536"`
}

type Redis struct {
	URL string        `conf:"default:redis://localhost:6379/0,mask"`
	TTL time.Duration `conf:"default:720h"`
}

// Catalog picks where the courses come from: "embedded", "file" or
// "postgres".
type Catalog struct {
	Source string `conf:"default:embedded"`
	Path   string
}

type DB struct {
	User         string `conf:"default:postgres"`
	Password     string `conf:"default:postgres,mask"`
	Host         string `conf:"default:localhost:5432"`
	Name         string `conf:"default:learnhub"`
	MaxIdleConns int    `conf:"default:2"`
	MaxOpenConns int    `conf:"default:0"`
	DisableTLS   bool   `conf:"default:true"`
	Migrate      bool   `conf:"default:true"`
}

type Notify struct {
	TTL   time.Duration `conf:"default:30s"`
	Limit int           `conf:"default:20"`
}

type Rate struct {
	Burst  int           `conf:"default:60"`
	Every  time.Duration `conf:"default:250ms"`
	Expiry time.Duration `conf:"default:10m"`
}

type Auth struct {
	DemoName     string `conf:"default:Demo Learner"`
	DemoEmail    string `conf:"default:demo@learnhub.dev"`
	DemoPassword string `conf:"default:learnhub123,mask"`
	BcryptCost   int    `conf:"default:10"`
}
