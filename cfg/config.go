package cfg

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the pagekv entrypoint needs to boot: which
// environment it's running in, where the disk collaborator keeps its
// backing file, and the buffer pool's shape.
type Config struct {
	Environment Environment `mapstructure:"ENVIRONMENT"`

	DataDir       string        `mapstructure:"DATA_DIR"`
	PoolSize      int           `mapstructure:"POOL_SIZE"`
	ReplacerK     int           `mapstructure:"REPLACER_K"`
	FlushInterval time.Duration `mapstructure:"FLUSH_INTERVAL"`
}

// LoadConfig reads a .env-style file at path (if present). PAGEKV_-prefixed
// environment variables override the file's values, and the defaults below
// fill in anything neither of them sets.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.SetEnvPrefix("PAGEKV")
	viper.AutomaticEnv()

	viper.SetOptions(viper.ExperimentalBindStruct())

	viper.SetDefault("ENVIRONMENT", DefaultEnv)
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("POOL_SIZE", 64)
	viper.SetDefault("REPLACER_K", 2)
	viper.SetDefault("FLUSH_INTERVAL", 5*time.Second)

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("config file not found, using env vars")
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("viper unmarshaling config: %w", err)
	}

	if err := c.Environment.Validate(); err != nil {
		return Config{}, fmt.Errorf("environment validation: %w", err)
	}
	if c.PoolSize <= 0 {
		return Config{}, errors.New("POOL_SIZE must be positive")
	}
	if c.ReplacerK <= 0 {
		return Config{}, errors.New("REPLACER_K must be positive")
	}

	return c, nil
}

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"

	DefaultEnv = EnvDev
)

type Environment string

func (e Environment) Validate() error {
	if e != EnvDev && e != EnvProd {
		return errors.New("environment must be either dev or prod")
	}

	return nil
}
