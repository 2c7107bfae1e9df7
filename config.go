package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "./config.yml"
	DefaultEnvFile    = "./config.env"
	EnvPrefix         = "LIBM"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit    string        `yaml:"git_commit" envconfig:"LIBM_GIT_COMMIT"`
	GitTag       string        `yaml:"git_tag" envconfig:"LIBM_GIT_TAG"`
	BuildTime    string        `yaml:"build_time" envconfig:"LIBM_BUILD_TIME"`
	IsProduction bool          `yaml:"is_production" envconfig:"LIBM_IS_PRODUCTION"`
	LogLevel     zapcore.Level `yaml:"log_level" envconfig:"LIBM_LOG_LEVEL"`
	LogFolder    string        `yaml:"log_folder" envconfig:"LIBM_LOG_FOLDER" validate:"required"`
	LogMaxSize   int           `yaml:"log_max_size" envconfig:"LIBM_LOG_MAX_SIZE" validate:"gte=1"` // in megabytes
	LogConsole   bool          `yaml:"log_console" envconfig:"LIBM_LOG_CONSOLE"`
	SeedDemoData bool          `yaml:"seed_demo_data" envconfig:"LIBM_SEED_DEMO_DATA"`
	Journal      string        `yaml:"journal" envconfig:"LIBM_JOURNAL" validate:"oneof=none bolt redis"`
	Redis        RedisConfig   `yaml:"redis"`
	BoltDB       BoltDBConfig  `yaml:"boltdb"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"LIBM_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"LIBM_REDIS_PORT"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"LIBM_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"LIBM_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"LIBM_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"LIBM_REDIS_POOL_SIZE" validate:"gte=0"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"LIBM_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"LIBM_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"LIBM_REDIS_PASSWORD"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"LIBM_REDIS_DATABASE_INDEX" validate:"gte=0"`
	JournalKey    string        `yaml:"journal_key" envconfig:"LIBM_REDIS_JOURNAL_KEY"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"LIBM_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"LIBM_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"LIBM_BOLTDB_BUCKET_NAME"`
}

// DefaultConfig provides the values used when no configuration source
// overrides them. With these the app runs purely in memory.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     zapcore.InfoLevel,
		LogFolder:    "./logs",
		LogMaxSize:   10,
		SeedDemoData: true,
		Journal:      JournalNone,
		Redis: RedisConfig{
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     2,
			PoolTimeout:  4 * time.Second,
			JournalKey:   "library:events",
		},
		BoltDB: BoltDBConfig{
			FilePath:   "./library.journal.db",
			Timeout:    2 * time.Second,
			BucketName: "events",
		},
	}
}

// LoadConfigFile decodes the yaml file on top of the given config.
// A missing file is not an error: the config is left as is.
func LoadConfigFile(configFile string, config *Config) error {
	file, err := os.Open(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()
	if err = yaml.NewDecoder(file).Decode(config); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// LoadEnvFile sets the variables of an optional dotenv file into the
// process environment without overriding the existing ones.
func LoadEnvFile(envFile string) error {
	err := godotenv.Load(envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadConfigEnvs reads the environments variables into the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig configures build tags values to be used if provided
// then ensures the final configuration is usable.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if err := validator.New().Struct(config); err != nil {
		return err
	}

	switch config.Journal {
	case JournalRedis:
		if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
			return errors.New("make sure to set valid redis address and port for the redis journal")
		}
		if len(config.Redis.JournalKey) == 0 {
			return errors.New("make sure to set a redis journal key")
		}
	case JournalBolt:
		if len(config.BoltDB.FilePath) == 0 || len(config.BoltDB.BucketName) == 0 {
			return errors.New("make sure to set valid boltdb file path and bucket name for the bolt journal")
		}
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(configFile, envFile, gitCommit, gitTag, buildTime string) (*Config, error) {
	config := DefaultConfig()

	// Setup the yaml configuration from file.
	if err := LoadConfigFile(configFile, config); err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	if err := LoadEnvFile(envFile); err != nil {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `LIBM`.
	if err := LoadConfigEnvs(EnvPrefix, config); err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	if err := InitConfig(config, gitCommit, gitTag, buildTime); err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
