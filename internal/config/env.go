package config

import (
	"os"
	"strconv"
)

// ApplyEnv overrides file values with PEAKR_* environment variables.
func (c *Config) ApplyEnv() {
	if val := os.Getenv("PEAKR_DB_PATH"); val != "" {
		c.DBPath = val
	}
	if val := os.Getenv("PEAKR_LOG_MODE"); val != "" {
		c.Log.Mode = val
	}
	if val := os.Getenv("PEAKR_LOG_FILE"); val != "" {
		c.Log.File = val
	}
	if val := os.Getenv("PEAKR_EXPORT_DIR"); val != "" {
		c.ExportDir = val
	}
	if val := getEnvInt("PEAKR_REPORT_DAYS"); val > 0 {
		c.ReportDays = val
	}
	if val, ok := getEnvBool("PEAKR_SEED_ON_FIRST_RUN"); ok {
		c.SeedOnFirstRun = val
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}
	return b, true
}
