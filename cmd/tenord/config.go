package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

// Config is the daemon configuration, loaded from a TOML file. The
// DB path may be overridden through the TENORD_DB environment variable
// so containerized deployments can relocate state without editing the
// file.
type Config struct {
	// DBPath is the LevelDB directory.
	DBPath string `toml:"db_path"`
	// GenesisPath points at the JSON genesis document used to
	// bootstrap an empty store.
	GenesisPath string `toml:"genesis_path"`
	LogLevel    string `toml:"log_level"`

	// AccrualSchedule is a cron expression for the yield accrual
	// keeper run.
	AccrualSchedule string `toml:"accrual_schedule"`

	// Hex encoded operational addresses.
	Authority string `toml:"authority"`
	Registrar string `toml:"registrar"`
	Oracle    string `toml:"oracle"`
	Keeper    string `toml:"keeper"`
}

// LoadConfig reads and validates the TOML configuration.
func LoadConfig(path string) (*Config, error) {
	conf := Config{
		DBPath:          "tenord.db",
		GenesisPath:     "genesis.json",
		LogLevel:        "info",
		AccrualSchedule: "@every 1h",
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return nil, errors.Wrapf(err, "cannot decode %q", path)
	}
	if db := os.Getenv("TENORD_DB"); db != "" {
		conf.DBPath = db
	}
	for _, addr := range []string{conf.Authority, conf.Registrar, conf.Oracle, conf.Keeper} {
		if addr == "" {
			return nil, errors.Wrap(errors.ErrEmpty, "all operational addresses must be set")
		}
		if _, err := tenor.ParseAddress(addr); err != nil {
			return nil, errors.Wrapf(err, "invalid address %q", addr)
		}
	}
	if _, err := zerolog.ParseLevel(conf.LogLevel); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid log level %q", conf.LogLevel)
	}
	return &conf, nil
}

func (c *Config) address(raw string) tenor.Address {
	addr, err := tenor.ParseAddress(raw)
	if err != nil {
		// LoadConfig validated all addresses already.
		panic(err)
	}
	return addr
}

// AuthorityAddress returns the administrative authority.
func (c *Config) AuthorityAddress() tenor.Address { return c.address(c.Authority) }

// RegistrarAddress returns the compliance registrar.
func (c *Config) RegistrarAddress() tenor.Address { return c.address(c.Registrar) }

// OracleAddress returns the rate feed issuer.
func (c *Config) OracleAddress() tenor.Address { return c.address(c.Oracle) }

// KeeperAddress returns the accrual keeper identity.
func (c *Config) KeeperAddress() tenor.Address { return c.address(c.Keeper) }
