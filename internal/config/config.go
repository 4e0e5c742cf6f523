// Package config loads report settings from the environment and an optional .env file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hellora/rentbook/internal/export"
	"github.com/joho/godotenv"
)

const (
	EnvTitle          = "RENTBOOK_TITLE"
	EnvAcknowledgedBy = "RENTBOOK_ACKNOWLEDGED_BY"
	EnvApprovedBy     = "RENTBOOK_APPROVED_BY"
	EnvSheetName      = "RENTBOOK_SHEET_NAME"
	EnvTimezone       = "RENTBOOK_TIMEZONE"
)

type Config struct {
	Title          string
	AcknowledgedBy string
	ApprovedBy     string
	SheetName      string
	// Timezone is an IANA zone name, or Local for the machine's zone.
	Timezone string
}

// Load reads envFile (if it exists) into the process environment without overriding variables
// that are already set, then builds the configuration from the environment.
// An empty envFile skips the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("env file %s: %w", envFile, err)
		}
	}

	return &Config{
		Title:          getEnv(EnvTitle, export.DefaultTitle),
		AcknowledgedBy: getEnv(EnvAcknowledgedBy, export.DefaultAcknowledgedBy),
		ApprovedBy:     getEnv(EnvApprovedBy, export.DefaultApprovedBy),
		SheetName:      getEnv(EnvSheetName, export.DefaultSheetName),
		Timezone:       getEnv(EnvTimezone, "Local"),
	}, nil
}

func (c *Config) Validate(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, c,
		validation.Field(&c.Title, validation.Required.Error("is required")),
		validation.Field(&c.AcknowledgedBy, validation.Required.Error("is required")),
		validation.Field(&c.ApprovedBy, validation.Required.Error("is required")),
		validation.Field(&c.SheetName, export.SheetNameRules...),
		validation.Field(&c.Timezone, validation.By(func(value any) error {
			s, _ := value.(string)
			if _, err := time.LoadLocation(s); err != nil {
				return errors.New("must be an IANA time zone name or Local")
			}

			return nil
		})),
	)
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) ExportOptions() export.Options {
	return export.Options{
		Title:          c.Title,
		AcknowledgedBy: c.AcknowledgedBy,
		ApprovedBy:     c.ApprovedBy,
		SheetName:      c.SheetName,
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}

	return fallback
}
