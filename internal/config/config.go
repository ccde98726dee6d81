package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	UploadDir     string
	PublicBaseURL string
	CORSOrigins   []string

	Sheets SheetsConfig
	Zoho   ZohoConfig
	SMTP   SMTPConfig
}

// SheetsConfig holds Google Sheets service-account credentials. The sheet is
// the system of record, so missing credentials fail submissions instead of
// degrading silently.
type SheetsConfig struct {
	ClientEmail   string
	PrivateKey    string
	SpreadsheetID string
}

// Enabled reports whether all Sheets credentials are present.
func (c SheetsConfig) Enabled() bool {
	return c.ClientEmail != "" && c.PrivateKey != "" && c.SpreadsheetID != ""
}

// ZohoConfig holds Zoho CRM OAuth credentials. Leaving any of the three
// required values unset disables the CRM push.
type ZohoConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccountsURL  string
	APIDomain    string
}

// Enabled reports whether the CRM push integration is configured.
func (c ZohoConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// SMTPConfig holds credentials for the notification email transport.
type SMTPConfig struct {
	Host      string
	Port      int
	User      string
	Pass      string
	Recipient string
}

// Enabled reports whether the notification email integration is configured.
func (c SMTPConfig) Enabled() bool {
	return c.User != "" && c.Pass != "" && c.Recipient != ""
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		CORSOrigins:   splitCommaList(getEnv("CORS_ORIGIN", "")),

		Sheets: SheetsConfig{
			ClientEmail:   getEnv("GOOGLE_CLIENT_EMAIL", ""),
			PrivateKey:    getEnv("GOOGLE_PRIVATE_KEY", ""),
			SpreadsheetID: getEnv("GOOGLE_SHEET_ID", ""),
		},
		Zoho: ZohoConfig{
			ClientID:     getEnv("ZOHO_CRM_CLIENT_ID", ""),
			ClientSecret: getEnv("ZOHO_CRM_CLIENT_SECRET", ""),
			RefreshToken: getEnv("ZOHO_CRM_REFRESH_TOKEN", ""),
			AccountsURL:  getEnv("ZOHO_CRM_ACCOUNTS_URL", "https://accounts.zoho.com"),
			APIDomain:    getEnv("ZOHO_CRM_API_DOMAIN", "https://www.zohoapis.com"),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("ZOHO_SMTP_HOST", "smtp.zoho.com"),
			Port:      getEnvAsInt("ZOHO_SMTP_PORT", 465),
			User:      getEnv("ZOHO_SMTP_USER", ""),
			Pass:      getEnv("ZOHO_SMTP_PASS", ""),
			Recipient: getEnv("NOTIFICATION_EMAIL", ""),
		},
	}
}

func splitCommaList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
