package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultNameKey = "receiverName"
	DefaultIDKey   = "sessionId"
	DefaultTypeKey = "callType"

	// CallActionKey is the fixed payload field carrying the call action; it
	// is not remappable, unlike the name/id/type keys.
	CallActionKey = "callAction"
)

type PayloadKeysConfig struct {
	NameKey string `koanf:"name_key" mapstructure:"name_key"`
	IDKey   string `koanf:"id_key" mapstructure:"id_key"`
	TypeKey string `koanf:"type_key" mapstructure:"type_key"`
}

// Normalize fills empty key names with the defaults.
func (c PayloadKeysConfig) Normalize() PayloadKeysConfig {
	out := PayloadKeysConfig{
		NameKey: strings.TrimSpace(c.NameKey),
		IDKey:   strings.TrimSpace(c.IDKey),
		TypeKey: strings.TrimSpace(c.TypeKey),
	}
	if out.NameKey == "" {
		out.NameKey = DefaultNameKey
	}
	if out.IDKey == "" {
		out.IDKey = DefaultIDKey
	}
	if out.TypeKey == "" {
		out.TypeKey = DefaultTypeKey
	}
	return out
}

type BannerConfig struct {
	// AutoDismissSeconds is the single fixed delay before an active banner is
	// dismissed automatically. The protocol only requires one consistent
	// duration; the default matches the always-visible presentation variant.
	AutoDismissSeconds int `koanf:"auto_dismiss_seconds" mapstructure:"auto_dismiss_seconds"`
}

func (c BannerConfig) AutoDismiss() time.Duration {
	return time.Duration(c.AutoDismissSeconds) * time.Second
}

type RingConfig struct {
	// TimeoutSeconds ends a still-ringing session as unanswered after this
	// many seconds. Zero disables the timeout.
	TimeoutSeconds int `koanf:"timeout_seconds" mapstructure:"timeout_seconds"`
}

func (c RingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Config struct {
	ServiceName string            `koanf:"service_name" mapstructure:"service_name"`
	Keys        PayloadKeysConfig `koanf:"keys" mapstructure:"keys"`
	Banner      BannerConfig      `koanf:"banner" mapstructure:"banner"`
	Ring        RingConfig        `koanf:"ring" mapstructure:"ring"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "callkit",
		Keys: PayloadKeysConfig{
			NameKey: DefaultNameKey,
			IDKey:   DefaultIDKey,
			TypeKey: DefaultTypeKey,
		},
		Banner: BannerConfig{AutoDismissSeconds: 5},
		Ring:   RingConfig{TimeoutSeconds: 60},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if c.Banner.AutoDismissSeconds < 0 {
		return fmt.Errorf("core: banner auto_dismiss_seconds must be >= 0")
	}
	if c.Ring.TimeoutSeconds < 0 {
		return fmt.Errorf("core: ring timeout_seconds must be >= 0")
	}
	return nil
}
