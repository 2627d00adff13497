// Package config loads dbscaffold settings from a YAML file, a .env file and
// DBSCAFFOLD_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"

	"github.com/koustreak/dbscaffold/internal/codegen"
	"github.com/koustreak/dbscaffold/internal/dbtype"
	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/filestore"
	"github.com/koustreak/dbscaffold/internal/logger"
	"github.com/koustreak/dbscaffold/internal/naming"
	"github.com/koustreak/dbscaffold/internal/schema"
)

// DefaultPath is read when no config path is given. It may be absent.
const DefaultPath = "dbscaffold.yaml"

const envPrefix = "DBSCAFFOLD_"

// Template and output backends.
const (
	SourceEmbedded = "embedded"
	SourceDir      = "dir"
	SourceMinIO    = "minio"

	SinkDir   = "dir"
	SinkMinIO = "minio"
)

type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Templates TemplatesConfig `yaml:"templates"`
	Output    OutputConfig    `yaml:"output"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Server    ServerConfig    `yaml:"server"`
}

type GeneratorConfig struct {
	DatabaseType          string   `yaml:"database_type"`
	Namespace             string   `yaml:"namespace"`
	Prefix                string   `yaml:"prefix"`
	Suffix                string   `yaml:"suffix"`
	DataAnnotations       bool     `yaml:"data_annotations"`
	PrivateFields         bool     `yaml:"private_fields"`
	NameConverter         bool     `yaml:"name_converter"`
	DbDescription         bool     `yaml:"db_description"`
	TrimPrefixes          []string `yaml:"trim_prefixes"`
	CommonFields          []string `yaml:"common_fields"` // empty means the built-in set
	PrimaryKeyDescription string   `yaml:"primary_key_description"`
	Artifacts             []string `yaml:"artifacts"` // empty means all
	Concurrency           int      `yaml:"concurrency"`
}

type TemplatesConfig struct {
	Source    string `yaml:"source"` // embedded, dir, minio
	Dir       string `yaml:"dir"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	CacheSize int    `yaml:"cache_size"`
}

type OutputConfig struct {
	Sink   string `yaml:"sink"` // dir, minio
	Dir    string `yaml:"dir"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	Region    string `yaml:"region"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			DatabaseType:          "MySql",
			DataAnnotations:       true,
			PrimaryKeyDescription: codegen.DefaultPrimaryKeyDescription,
			Concurrency:           4,
		},
		Templates: TemplatesConfig{
			Source: SourceEmbedded,
			Prefix: "scaffold/",
		},
		Output: OutputConfig{
			Sink: SinkDir,
			Dir:  "generated",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
	}
}

// Load reads path (DefaultPath when empty), then .env, then the environment.
// A missing DefaultPath yields defaults; a missing explicit path is an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "failed to parse .env", err)
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errs.Wrap(errs.ErrKindInvalidInput, "failed to parse config "+path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case errors.Is(err, fs.ErrNotExist):
		return nil, errs.Wrap(errs.ErrKindNotFound, "config file "+path, err)
	default:
		return nil, errs.Wrap(errs.ErrKindUnknown, "failed to read config "+path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(c *Config) {
	c.Generator.DatabaseType = getEnv("DB_TYPE", c.Generator.DatabaseType)
	c.Generator.Namespace = getEnv("NAMESPACE", c.Generator.Namespace)
	c.Templates.Source = getEnv("TEMPLATE_SOURCE", c.Templates.Source)
	c.Templates.Dir = getEnv("TEMPLATE_DIR", c.Templates.Dir)
	c.Storage.Endpoint = getEnv("STORAGE_ENDPOINT", c.Storage.Endpoint)
	c.Storage.AccessKey = getEnv("STORAGE_ACCESS_KEY", c.Storage.AccessKey)
	c.Storage.SecretKey = getEnv("STORAGE_SECRET_KEY", c.Storage.SecretKey)
	c.Storage.UseSSL = getEnvBool("STORAGE_USE_SSL", c.Storage.UseSSL)
	c.Server.Addr = getEnv("SERVER_ADDR", c.Server.Addr)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	add := func(format string, args ...interface{}) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	if _, err := dbtype.DefaultRegistry().Provider(c.Generator.DatabaseType); err != nil {
		add("generator.database_type: %v", err)
	}
	if _, err := codegen.ParseArtifactKinds(c.Generator.Artifacts); err != nil {
		add("generator.artifacts: %v", err)
	}
	if c.Generator.Concurrency < 1 {
		add("generator.concurrency must be at least 1")
	}

	switch c.Templates.Source {
	case SourceEmbedded:
	case SourceDir:
		if c.Templates.Dir == "" {
			add("templates.dir is required for source %q", SourceDir)
		}
	case SourceMinIO:
		if c.Templates.Bucket == "" {
			add("templates.bucket is required for source %q", SourceMinIO)
		}
	default:
		add("templates.source must be one of: %s", strings.Join([]string{SourceEmbedded, SourceDir, SourceMinIO}, ", "))
	}

	switch c.Output.Sink {
	case SinkDir:
		if c.Output.Dir == "" {
			add("output.dir is required for sink %q", SinkDir)
		}
	case SinkMinIO:
		if c.Output.Bucket == "" {
			add("output.bucket is required for sink %q", SinkMinIO)
		}
	default:
		add("output.sink must be one of: %s", strings.Join([]string{SinkDir, SinkMinIO}, ", "))
	}

	if c.NeedsStorage() && c.Storage.Endpoint == "" {
		add("storage.endpoint is required when minio is used")
	}

	if err := result.ErrorOrNil(); err != nil {
		return errs.Wrap(errs.ErrKindInvalidInput, "invalid configuration", err)
	}
	return nil
}

// NeedsStorage reports whether templates or output live in object storage.
func (c *Config) NeedsStorage() bool {
	return c.Templates.Source == SourceMinIO || c.Output.Sink == SinkMinIO
}

// Options converts the generator section to generation options.
func (c *Config) Options() *schema.Options {
	return &schema.Options{
		Namespace:              c.Generator.Namespace,
		Prefix:                 c.Generator.Prefix,
		Suffix:                 c.Generator.Suffix,
		GenerateDataAnnotation: c.Generator.DataAnnotations,
		GeneratePrivateFields:  c.Generator.PrivateFields,
		ApplyNameConverter:     c.Generator.NameConverter,
		GenerateDbDescription:  c.Generator.DbDescription,
	}
}

// CommonFields returns the configured set, or nil for the built-in one.
func (c *Config) CommonFields() *naming.FieldSet {
	if len(c.Generator.CommonFields) == 0 {
		return nil
	}
	s := naming.NewFieldSet(c.Generator.CommonFields...)
	return &s
}

// Converter returns the table-to-model converter.
func (c *Config) Converter() naming.Converter {
	return naming.InflectionConverter{TrimPrefixes: c.Generator.TrimPrefixes}
}

// LoggerConfig converts the log section.
func (c *Config) LoggerConfig() *logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Format = c.Log.Format
	lc.File = c.Log.File
	lc.MaxSizeMB = c.Log.MaxSizeMB
	lc.MaxBackups = c.Log.MaxBackups
	lc.MaxAgeDays = c.Log.MaxAgeDays
	lc.Compress = c.Log.Compress
	return lc
}

// StorageConfig converts the storage section.
func (c *Config) StorageConfig() *filestore.Config {
	sc := filestore.DefaultConfig(c.Storage.Endpoint, c.Storage.AccessKey, c.Storage.SecretKey)
	sc.UseSSL = c.Storage.UseSSL
	sc.Region = c.Storage.Region
	return sc
}
