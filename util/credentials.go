package util

import (
	"encoding/json"
	"fmt"
	"os"
)

// REFLECTRA_SECRETS names an optional JSON secrets file whose entries are
// applied to the environment at startup
const REFLECTRA_SECRETS = "REFLECTRA_SECRETS"

// ParseSecretsFile parses a raw JSON secrets document into a useable object
func ParseSecretsFile(data []byte) (*SecretsFile, error) {
	secrets := SecretsFile{}
	err := json.Unmarshal(data, &secrets)
	return &secrets, err
}

// SecretsFile is a parsed JSON secrets document, keyed by service name
type SecretsFile map[string]Credentials

// FindServiceByName finds a service's credentials within the document
func (s SecretsFile) FindServiceByName(name string) Credentials {
	if credentials, ok := s[name]; ok {
		return credentials
	}
	return nil
}

// Credentials is a parsed map of credentials for a single service
type Credentials map[string]interface{}

// String recovers the value at the given key, assuming it is a string
func (c Credentials) String(key string) (string, error) {
	if val, ok := c[key]; !ok {
		return "", fmt.Errorf("Credential key does not exist: %s", key)
	} else if valStr, ok := val.(string); ok {
		return valStr, nil
	} else {
		return "", fmt.Errorf("Could not convert value to string: key=%s, value=%v", key, val)
	}
}

// Int recovers the value at the given key, assuming it is a number
func (c Credentials) Int(key string) (int, error) {
	if val, ok := c[key]; !ok {
		return 0, fmt.Errorf("Credential key does not exist: %s", key)
	} else if valFloat, ok := val.(float64); ok {
		return int(valFloat), nil
	} else {
		return 0, fmt.Errorf("Could not convert value to int: key=%s, value=%v", key, val)
	}
}

// Environment variable names recognized inside a secrets file, per service
var secretEnvKeys = map[string][]string{
	"m2m":     {M2M_USERNAME, M2M_TOKEN},
	"n2yo":    {N2YO_API_KEY},
	"geocode": {GEOCODE_API_KEY},
	"smtp":    {SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, SMTP_SENDER},
}

// ApplySecretsFile reads the secrets file named by REFLECTRA_SECRETS, if any,
// and applies its entries to the environment. Variables already present in
// the environment are left alone.
func ApplySecretsFile(ctx LogContext) error {
	path, ok := os.LookupEnv(REFLECTRA_SECRETS)
	if !ok {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return LogSimpleErr(ctx, "Failed to read secrets file "+path+".", err)
	}
	secrets, err := ParseSecretsFile(data)
	if err != nil {
		return LogSimpleErr(ctx, "Failed to parse secrets file "+path+".", err)
	}

	for service, keys := range secretEnvKeys {
		credentials := secrets.FindServiceByName(service)
		if credentials == nil {
			continue
		}
		for _, key := range keys {
			if _, present := os.LookupEnv(key); present {
				continue
			}
			if value, err := credentials.String(key); err == nil {
				os.Setenv(key, value)
			}
		}
	}
	LogInfo(ctx, "Applied secrets file "+path+" to the environment.")
	return nil
}
