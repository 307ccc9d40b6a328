package util

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	M2M_API_URL     = "M2M_API_URL"
	M2M_USERNAME    = "M2M_USERNAME"
	M2M_TOKEN       = "M2M_TOKEN"
	N2YO_API_URL    = "N2YO_API_URL"
	N2YO_API_KEY    = "N2YO_API_KEY"
	GEOCODE_API_URL = "GEOCODE_API_URL"
	GEOCODE_API_KEY = "GEOCODE_API_KEY"
	SMTP_HOST       = "SMTP_HOST"
	SMTP_PORT       = "SMTP_PORT"
	SMTP_USERNAME   = "SMTP_USERNAME"
	SMTP_PASSWORD   = "SMTP_PASSWORD"
	SMTP_SENDER     = "SMTP_SENDER"
	REFLECTRA_ROOT  = "REFLECTRA_ROOT"
	PORT            = "PORT"
)

const defaultM2MURL = "https://m2m.cr.usgs.gov/api/api/json/stable/"
const defaultN2YOURL = "https://api.n2yo.com/rest/v1/satellite/radiopasses/"
const defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// LoadDotEnv loads an optional .env file into the environment. A missing
// file is not an error; explicit environment variables always win.
func LoadDotEnv(ctx LogContext) {
	if err := godotenv.Load(); err == nil {
		LogInfo(ctx, "Loaded configuration from .env file.")
	}
}

// GetM2MAPIURL returns the provider API base URL
func GetM2MAPIURL() string {
	if url, ok := os.LookupEnv(M2M_API_URL); ok {
		return url
	}
	return defaultM2MURL
}

// GetM2MCredentials returns the provider username and application token.
// Both must come from the environment; they are never embedded in source.
func GetM2MCredentials() (string, string) {
	username, userOK := os.LookupEnv(M2M_USERNAME)
	token, tokenOK := os.LookupEnv(M2M_TOKEN)
	if !userOK || !tokenOK {
		LogAlert(&BasicLogContext{}, "Did not get provider credentials from the environment. Scene acquisition will not be available.")
	}
	return username, token
}

// GetN2YOAPIURL returns the pass-prediction API base URL
func GetN2YOAPIURL() string {
	if url, ok := os.LookupEnv(N2YO_API_URL); ok {
		return url
	}
	return defaultN2YOURL
}

// GetN2YOAPIKey returns the pass-prediction API key
func GetN2YOAPIKey() string {
	key, ok := os.LookupEnv(N2YO_API_KEY)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get pass-prediction API key from the environment. Pass tracking will not be available.")
	}
	return key
}

// GetGeocodeAPIURL returns the geocoding API base URL
func GetGeocodeAPIURL() string {
	if url, ok := os.LookupEnv(GEOCODE_API_URL); ok {
		return url
	}
	return defaultGeocodeURL
}

// GetGeocodeAPIKey returns the geocoding API key
func GetGeocodeAPIKey() string {
	key, ok := os.LookupEnv(GEOCODE_API_KEY)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get geocoding API key from the environment. Address lookup will not be available.")
	}
	return key
}

// SMTPConfig holds the outbound mail relay settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// GetSMTPConfig returns the outbound mail relay settings from the environment
func GetSMTPConfig() SMTPConfig {
	config := SMTPConfig{
		Host:     os.Getenv(SMTP_HOST),
		Username: os.Getenv(SMTP_USERNAME),
		Password: os.Getenv(SMTP_PASSWORD),
		Sender:   os.Getenv(SMTP_SENDER),
		Port:     587,
	}
	if portStr, ok := os.LookupEnv(SMTP_PORT); ok {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Port = port
		}
	}
	if config.Host == "" {
		LogAlert(&BasicLogContext{}, "Did not get SMTP relay host from the environment. Email notification will not be available.")
	}
	return config
}

// GetRootDirectory returns the pipeline output root directory, defaulting
// to the working directory
func GetRootDirectory() string {
	if root, ok := os.LookupEnv(REFLECTRA_ROOT); ok {
		return root
	}
	wd, _ := os.Getwd()
	return wd
}
