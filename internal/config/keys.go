package config

import (
	"os"
	"strings"
)

// CredentialSource represents where a credential comes from.
type CredentialSource string

const (
	SourceEnv    CredentialSource = "env"
	SourceConfig CredentialSource = "config"
	SourceNone   CredentialSource = "none"
)

// CredentialStatus represents the status of a credential.
type CredentialStatus struct {
	Name   string           `json:"name"`
	Source CredentialSource `json:"source"`
	IsSet  bool             `json:"is_set"`
	Masked string           `json:"masked,omitempty"` // e.g., "Acm...com"
	Note   string           `json:"note,omitempty"`
}

// CheckCredentials returns the status of the credentials AlphaVault uses.
// EDGAR needs no API key, only a declared identity.
func CheckCredentials(cfg *Config) []CredentialStatus {
	ua := checkCredential("EDGAR User-Agent", cfg.Edgar.UserAgent, EnvPrefix+"_EDGAR_USER_AGENT", "SEC_USER_AGENT")
	if ua.IsSet && !strings.Contains(cfg.Edgar.UserAgent, "@") {
		ua.Note = "should include a contact email"
	}
	return []CredentialStatus{ua}
}

// checkCredential checks if a value is set and where it came from.
func checkCredential(name, value string, envVars ...string) CredentialStatus {
	status := CredentialStatus{
		Name:   name,
		IsSet:  value != "",
		Source: SourceNone,
	}
	if value == "" {
		return status
	}
	status.Source = SourceConfig
	for _, e := range envVars {
		if os.Getenv(e) != "" {
			status.Source = SourceEnv
			break
		}
	}
	status.Masked = mask(value)
	return status
}

// mask hides a credential for display, showing only first 3 and last 3 chars.
func mask(s string) string {
	if len(s) <= 8 {
		return "***"
	}
	return s[:3] + "..." + s[len(s)-3:]
}
