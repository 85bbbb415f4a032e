package config

import (
	"os"
	"strings"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	APP struct {
		Name     string `mapstructure:"NAME"`
		Port     string `mapstructure:"PORT"`
		State    string `mapstructure:"STATE"`
		LogLevel string `mapstructure:"LOG_LEVEL"`
		// ProxyHeader wird nur ausgewertet, wenn die Verbindung von einem TrustedProxies-Eintrag kommt.
		ProxyHeader    string   `mapstructure:"PROXY_HEADER"`
		TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`
	}

	DATABASE struct {
		Postgres struct {
			DSN string `mapstructure:"DSN"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
			DB       int    `mapstructure:"DB"`
		}
	}

	APP_SECRET struct {
		Paseto struct {
			HexKey string `mapstructure:"HEX_KEY"`
		}
	}

	SESSION struct {
		IdleTimeout time.Duration `mapstructure:"IDLE_TIMEOUT"`
		OuterBound  time.Duration `mapstructure:"OUTER_BOUND"`
		SweepCron   string        `mapstructure:"SWEEP_CRON"`
	}

	SEQUENCE struct {
		MaxAttempts  int           `mapstructure:"MAX_ATTEMPTS"`
		RetryBackoff time.Duration `mapstructure:"RETRY_BACKOFF"`
		RepairCron   string        `mapstructure:"REPAIR_CRON"`
	}

	ATTACHMENTS struct {
		Dir      string `mapstructure:"DIR"`
		MaxBytes int    `mapstructure:"MAX_BYTES"`
	}

	LIMITER struct {
		LoginMax    int           `mapstructure:"LOGIN_MAX"`
		LoginWindow time.Duration `mapstructure:"LOGIN_WINDOW"`
		RedisDB     int           `mapstructure:"REDIS_DB"`
	}

	MAILTRAP struct {
		Sandbox struct {
			SandboxHost   string `mapstructure:"SANDBOX_HOST"`
			SandboxAPI    string `mapstructure:"SANDBOX_API"`
			SandboxURL    string `mapstructure:"SANDBOX_URL"`
			SandboxDomain string `mapstructure:"SANDBOX_DOMAIN"`
		}
		API struct {
			APIToken         string `mapstructure:"API_TOKEN"`
			APIHost          string `mapstructure:"API_HOST"`
			MailtrapTokenAPI string `mapstructure:"MAILTRAP_TOKEN_API"`
			MailtrapURL      string `mapstructure:"MAILTRAP_URL"`
			MailtrapDomain   string `mapstructure:"MAILTRAP_DOMAIN"`
		}
	}
}

// LoadConfig liest application.yaml aus dem Arbeitsverzeichnis oder aus VM_CONFIG.
func LoadConfig() *AppConfig {
	if path := os.Getenv("VM_CONFIG"); path != "" {
		return LoadConfigFrom(path)
	}
	return load(viper.New(), "")
}

// LoadConfigFrom liest die Konfiguration aus einer bestimmten Datei.
func LoadConfigFrom(path string) *AppConfig {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) *AppConfig {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("application")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Error().Err(err).Msg("Fehler beim Lesen der Konfigurationsdatei")
		return nil
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		log.Error().Err(err).Msg("Fehler beim Entpacken der Konfiguration")
		return nil
	}

	if config.DATABASE.Postgres.DSN == "" {
		log.Error().Msg("Datenbank-DSN ist nicht konfiguriert")
		return nil
	}

	if config.SESSION.OuterBound < config.SESSION.IdleTimeout {
		log.Warn().
			Dur("outer_bound", config.SESSION.OuterBound).
			Dur("idle_timeout", config.SESSION.IdleTimeout).
			Msg("SESSION.OUTER_BOUND kleiner als IDLE_TIMEOUT, wird angeglichen")
		config.SESSION.OuterBound = config.SESSION.IdleTimeout
	}

	if config.APP.ProxyHeader != "" && len(config.APP.TrustedProxies) == 0 {
		log.Warn().
			Str("proxy_header", config.APP.ProxyHeader).
			Msg("APP.PROXY_HEADER ohne APP.TRUSTED_PROXIES wird ignoriert")
		config.APP.ProxyHeader = ""
	}

	if config.APP_SECRET.Paseto.HexKey == "" {
		config.APP_SECRET.Paseto.HexKey = utils.GenerateSymmetricKey()
	}

	log.Info().Msg("Konfiguration geladen...")
	return &config
}

// ApplyProxy lässt c.IP() hinter einem Reverse Proxy die Client-Adresse liefern. Ohne
// vertrauenswürdige Proxies bleibt es bei der Adresse der Verbindung.
func (c *AppConfig) ApplyProxy(fc *fiber.Config) {
	if c.APP.ProxyHeader == "" || len(c.APP.TrustedProxies) == 0 {
		return
	}
	fc.ProxyHeader = c.APP.ProxyHeader
	fc.EnableTrustedProxyCheck = true
	fc.TrustedProxies = c.APP.TrustedProxies
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP.NAME", "vorgang-meister")
	v.SetDefault("APP.PORT", "8080")
	v.SetDefault("APP.STATE", "dev")
	v.SetDefault("APP.LOG_LEVEL", "debug")
	v.SetDefault("DATABASE.REDIS.ADDR", "localhost:6379")
	v.SetDefault("SESSION.IDLE_TIMEOUT", 15*time.Minute)
	v.SetDefault("SESSION.OUTER_BOUND", 12*time.Hour)
	v.SetDefault("SESSION.SWEEP_CRON", "*/15 * * * *")
	v.SetDefault("SEQUENCE.MAX_ATTEMPTS", 5)
	v.SetDefault("SEQUENCE.RETRY_BACKOFF", 50*time.Millisecond)
	v.SetDefault("SEQUENCE.REPAIR_CRON", "30 2 * * *")
	v.SetDefault("ATTACHMENTS.DIR", "./data/anhaenge")
	v.SetDefault("ATTACHMENTS.MAX_BYTES", 10<<20)
	v.SetDefault("LIMITER.LOGIN_MAX", 10)
	v.SetDefault("LIMITER.LOGIN_WINDOW", 5*time.Minute)
	v.SetDefault("LIMITER.REDIS_DB", 1)
}
