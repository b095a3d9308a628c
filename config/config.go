package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type documentStore struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type localCache struct {
	Path string `mapstructure:"path"`
}

type topics struct {
	CatalogSyncStream   string `mapstructure:"catalog_sync_stream"`
	CatalogVersionTable string `mapstructure:"catalog_version_table"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
}

type catalog struct {
	ResyncInterval      time.Duration `mapstructure:"resync_interval"`
	VersionPollInterval time.Duration `mapstructure:"version_poll_interval"`
}

type auth struct {
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	ResetTokenTTL time.Duration `mapstructure:"reset_token_ttl"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	DocumentStore  documentStore `mapstructure:"document_store"`
	LocalCache     localCache    `mapstructure:"local_cache"`
	Broker         broker        `mapstructure:"broker"`
	Catalog        catalog       `mapstructure:"catalog"`
	Auth           auth          `mapstructure:"auth"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	cfg.setDefaults()

	return cfg
}

func (c *Config) setDefaults() {
	if c.Catalog.ResyncInterval == 0 {
		c.Catalog.ResyncInterval = time.Hour
	}
	if c.Catalog.VersionPollInterval == 0 {
		c.Catalog.VersionPollInterval = 15 * time.Second
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 24 * time.Hour
	}
	if c.Auth.ResetTokenTTL == 0 {
		c.Auth.ResetTokenTTL = time.Hour
	}
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	DocumentStore:
	URI=%q
	Database=%q

	LocalCache:
	Path=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CatalogSyncStream=%q
		CatalogVersionTable=%q

	Catalog:
	ResyncInterval=%q
	VersionPollInterval=%q

	Auth:
	SessionTTL=%q
	ResetTokenTTL=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.DocumentStore.URI,
		c.DocumentStore.Database,
		c.LocalCache.Path,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CatalogSyncStream,
		c.Broker.Topics.CatalogVersionTable,
		c.Catalog.ResyncInterval,
		c.Catalog.VersionPollInterval,
		c.Auth.SessionTTL,
		c.Auth.ResetTokenTTL,
	)
}
