package filestore

import (
	"strings"

	"github.com/koustreak/dbscaffold/internal/errs"
)

// Config locates an S3-compatible server holding templates or generated output.
type Config struct {
	// Endpoint is host:port, e.g. "localhost:9000".
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// Region is empty for MinIO.
	Region string
}

// DefaultConfig returns a plain-HTTP config for endpoint.
func DefaultConfig(endpoint, accessKey, secretKey string) *Config {
	return &Config{
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
	}
}

// Validate requires an endpoint without a URL scheme.
func (c *Config) Validate() error {
	if c == nil || strings.TrimSpace(c.Endpoint) == "" {
		return errs.InvalidArgument("storage endpoint is required")
	}
	if strings.Contains(c.Endpoint, "://") {
		return errs.InvalidArgument("storage endpoint must be host:port, got " + c.Endpoint)
	}
	return nil
}
