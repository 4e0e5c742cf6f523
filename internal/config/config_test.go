package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hellora/rentbook/internal/config"
	"github.com/hellora/rentbook/internal/export"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		config.EnvTitle,
		config.EnvAcknowledgedBy,
		config.EnvApprovedBy,
		config.EnvSheetName,
		config.EnvTimezone,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.Load("")
		require.NoError(t, err)

		require.Equal(t, &config.Config{
			Title:          export.DefaultTitle,
			AcknowledgedBy: export.DefaultAcknowledgedBy,
			ApprovedBy:     export.DefaultApprovedBy,
			SheetName:      export.DefaultSheetName,
			Timezone:       "Local",
		}, cfg)
		require.NoError(t, cfg.Validate(t.Context()))
		require.Equal(t, export.DefaultOptions(), cfg.ExportOptions())
	})

	t.Run("missing env file is ignored", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.Load(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
		require.Equal(t, export.DefaultTitle, cfg.Title)
	})

	t.Run("reads env file", func(t *testing.T) {
		clearEnv(t)

		path := filepath.Join(t.TempDir(), ".env")
		content := "RENTBOOK_TITLE=\"Laporan Mingguan\"\nRENTBOOK_TIMEZONE=Asia/Jakarta\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Cleanup(func() {
			_ = os.Unsetenv(config.EnvTitle)
			_ = os.Unsetenv(config.EnvTimezone)
		})

		// godotenv only fills variables that are unset
		require.NoError(t, os.Unsetenv(config.EnvTitle))
		require.NoError(t, os.Unsetenv(config.EnvTimezone))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "Laporan Mingguan", cfg.Title)
		require.Equal(t, "Asia/Jakarta", cfg.Timezone)
	})

	t.Run("environment wins over env file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(config.EnvApprovedBy, "Pemilik")

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("RENTBOOK_APPROVED_BY=Someone Else\n"), 0o600))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "Pemilik", cfg.ApprovedBy)
	})

	t.Run("returns error for malformed env file", func(t *testing.T) {
		clearEnv(t)

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("RENTBOOK_TITLE=\"unterminated\n"), 0o600))

		_, err := config.Load(path)
		require.ErrorContains(t, err, "env file")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *config.Config {
		return &config.Config{
			Title:          "T",
			AcknowledgedBy: "A",
			ApprovedBy:     "B",
			SheetName:      "S",
			Timezone:       "UTC",
		}
	}

	tests := map[string]struct {
		modify         func(c *config.Config)
		expectedErrMsg string
	}{
		"valid": {
			modify: func(c *config.Config) {},
		},
		"missing title": {
			modify:         func(c *config.Config) { c.Title = "" },
			expectedErrMsg: "Title: is required.",
		},
		"unknown timezone": {
			modify:         func(c *config.Config) { c.Timezone = "Mars/Olympus" },
			expectedErrMsg: "Timezone: must be an IANA time zone name or Local.",
		},
		"sheet name too long": {
			modify:         func(c *config.Config) { c.SheetName = "a sheet name that is far too long" },
			expectedErrMsg: "SheetName: the length must be between 1 and 31.",
		},
		"sheet name with reserved characters": {
			modify:         func(c *config.Config) { c.SheetName = "Transaksi [Sept]" },
			expectedErrMsg: `SheetName: must not contain any of : \ / ? * [ ].`,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			test.modify(cfg)

			err := cfg.Validate(t.Context())

			if test.expectedErrMsg != "" {
				require.EqualError(t, err, test.expectedErrMsg)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestLocation(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Timezone: "UTC"}

	location, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, time.UTC, location)
}
