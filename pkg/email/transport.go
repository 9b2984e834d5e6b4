package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"easein-studio-backend/config"
)

// Encryption selects how the SMTP session is secured.
type Encryption string

const (
	EncryptionSMTPS    Encryption = "smtps"    // implicit TLS, usually port 465
	EncryptionSTARTTLS Encryption = "starttls" // upgrade after EHLO, usually port 587
	EncryptionNone     Encryption = "none"
)

// Transport delivers a batch of messages over one connection.
type Transport interface {
	Name() string
	Send(ctx context.Context, msgs ...*Message) error
}

// SMTPConfig describes one entry of the relay's ordered transport list.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	Encryption Encryption
	Timeout    time.Duration
}

// Name identifies the transport in logs, e.g. "smtp.example.com:465/smtps".
func (c SMTPConfig) Name() string {
	return fmt.Sprintf("%s:%d/%s", c.Host, c.Port, c.Encryption)
}

// EncryptionForPort picks implicit TLS for 465 and STARTTLS for anything else.
func EncryptionForPort(port int) Encryption {
	if port == 465 {
		return EncryptionSMTPS
	}
	return EncryptionSTARTTLS
}

// ParseEncryption maps a config value to an Encryption, deriving it from the
// port when the value is empty or unknown.
func ParseEncryption(value string, port int) Encryption {
	switch Encryption(strings.ToLower(strings.TrimSpace(value))) {
	case EncryptionSMTPS:
		return EncryptionSMTPS
	case EncryptionSTARTTLS:
		return EncryptionSTARTTLS
	case EncryptionNone:
		return EncryptionNone
	}
	return EncryptionForPort(port)
}

// TransportConfigs returns the primary then fallback SMTP configs. The
// fallback is skipped when it points at the exact same endpoint.
func TransportConfigs(cfg *config.Config) []SMTPConfig {
	timeout := time.Duration(cfg.SMTPTimeoutSeconds) * time.Second

	primary := SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		Encryption: ParseEncryption(cfg.SMTPEncryption, cfg.SMTPPort),
		Timeout:    timeout,
	}
	configs := []SMTPConfig{primary}

	if cfg.SMTPFallbackHost != "" && cfg.SMTPFallbackPort > 0 {
		fallback := primary
		fallback.Host = cfg.SMTPFallbackHost
		fallback.Port = cfg.SMTPFallbackPort
		fallback.Encryption = ParseEncryption(cfg.SMTPFallbackEncryption, cfg.SMTPFallbackPort)
		if fallback.Name() != primary.Name() {
			configs = append(configs, fallback)
		}
	}

	return configs
}

// IsConfigured checks if the SMTP credentials needed to log in are present
func IsConfigured(cfg *config.Config) bool {
	return cfg.SMTPHost != "" && cfg.SMTPUsername != "" && cfg.SMTPPassword != ""
}
