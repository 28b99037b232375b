package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/platea/sector-monitor/internal/models"
)

var (
	ErrNoEvents      = errors.New("error getting SM_EVENTS: variable not specified or contains an empty string")
	ErrBadEventSpec  = errors.New("malformed SM_EVENTS entry, expected id=url")
	ErrBadInterval   = errors.New("poll interval minimum exceeds maximum")
	ErrBadEventDelay = errors.New("event delay minimum exceeds maximum")
)

type Config struct {
	Env         string // Env is the current environment: local, dev, prod.
	StoragePath string // StoragePath is the SQLite database file path.
	Events      []models.Event
	Twilio      Twilio
	Poll        Poll
	HTTPAddr    string // HTTPAddr is the listen address of the admin API.
	UserAgent   string
}

type Twilio struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	Timeout    time.Duration // Timeout bounds one carrier delivery attempt.
}

type Poll struct {
	IntervalMin        time.Duration // Lower bound of the randomized inter-cycle delay.
	IntervalMax        time.Duration
	EventDelayMin      time.Duration // Lower bound of the randomized inter-event delay.
	EventDelayMax      time.Duration
	DedupWindow        time.Duration // Trailing window for alert text deduplication.
	PageTimeout        time.Duration // Bound on one page observation.
	DefaultCountryCode string        // Prefix for bare local phone numbers.
}

// Configured reports whether all carrier credentials are present.
func (t Twilio) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("SM")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("STORAGE_PATH", "sector_monitor.db")
	viper.SetDefault("POLL_INTERVAL_MIN", "90s")
	viper.SetDefault("POLL_INTERVAL_MAX", "150s")
	viper.SetDefault("EVENT_DELAY_MIN", "5s")
	viper.SetDefault("EVENT_DELAY_MAX", "15s")
	viper.SetDefault("DEDUP_WINDOW", "5m")
	viper.SetDefault("PAGE_TIMEOUT", "30s")
	viper.SetDefault("SMS_TIMEOUT", "15s")
	viper.SetDefault("DEFAULT_COUNTRY_CODE", "+57")
	viper.SetDefault("HTTP_ADDR", ":8000")
	viper.SetDefault("USER_AGENT", "Mozilla/5.0 (compatible; SectorMonitor/1.0)")
	viper.SetDefault("CONTACT_EMAIL", "admin@example.com")

	events, err := parseEvents(viper.GetString("EVENTS"))
	if err != nil {
		panic(err)
	}

	cfg := &Config{
		Env:         viper.GetString("ENV"),
		StoragePath: viper.GetString("STORAGE_PATH"),
		Events:      events,
		Twilio: Twilio{
			AccountSID: viper.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:  viper.GetString("TWILIO_AUTH_TOKEN"),
			FromNumber: viper.GetString("TWILIO_FROM_NUMBER"),
			Timeout:    viper.GetDuration("SMS_TIMEOUT"),
		},
		Poll: Poll{
			IntervalMin:        viper.GetDuration("POLL_INTERVAL_MIN"),
			IntervalMax:        viper.GetDuration("POLL_INTERVAL_MAX"),
			EventDelayMin:      viper.GetDuration("EVENT_DELAY_MIN"),
			EventDelayMax:      viper.GetDuration("EVENT_DELAY_MAX"),
			DedupWindow:        viper.GetDuration("DEDUP_WINDOW"),
			PageTimeout:        viper.GetDuration("PAGE_TIMEOUT"),
			DefaultCountryCode: viper.GetString("DEFAULT_COUNTRY_CODE"),
		},
		HTTPAddr: viper.GetString("HTTP_ADDR"),
		UserAgent: fmt.Sprintf("%s (Contact: %s)",
			viper.GetString("USER_AGENT"), viper.GetString("CONTACT_EMAIL")),
	}

	if cfg.Poll.IntervalMin > cfg.Poll.IntervalMax {
		panic(ErrBadInterval)
	}
	if cfg.Poll.EventDelayMin > cfg.Poll.EventDelayMax {
		panic(ErrBadEventDelay)
	}

	return cfg
}

// parseEvents parses the SM_EVENTS value, a comma-separated list of
// id=url pairs, e.g. "pq23=https://tickets.example/event/pq23,pq24=...".
func parseEvents(raw string) ([]models.Event, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoEvents
	}

	var events []models.Event
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		id, url, found := strings.Cut(entry, "=")
		id = strings.TrimSpace(id)
		url = strings.TrimSpace(url)
		if !found || id == "" || url == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadEventSpec, entry)
		}

		events = append(events, models.Event{
			ID:   id,
			URL:  url,
			Name: fmt.Sprintf("Event %s", strings.ToUpper(id)),
		})
	}

	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	return events, nil
}
