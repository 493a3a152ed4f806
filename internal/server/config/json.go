package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bloglist/internal/flagx"
	"github.com/dmitrijs2005/bloglist/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Only keys that
// are present in the file override the current values.
type JsonConfig struct {
	HTTPAddr         *string         `json:"http_addr"`
	HealthAddrGRPC   *string         `json:"health_addr_grpc"`
	Storage          *string         `json:"storage"`
	DatabaseDSN      *string         `json:"database_dsn"`
	DatabaseMaxConns *int32          `json:"database_max_conns"`
	SecretKey        *string         `json:"secret_key"`
	TokenTTL         *timex.Duration `json:"token_ttl"`
	BcryptCost       *int            `json:"bcrypt_cost"`
	UpdatePolicy     *string         `json:"update_policy"`
	LogLevel         *string         `json:"log_level"`
	LogFormat        *string         `json:"log_format"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
	S3AccessKey      *string         `json:"s3_access_key"`
	S3SecretKey      *string         `json:"s3_secret_key"`
	S3Bucket         *string         `json:"s3_bucket"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	ReportURLExpiry  *timex.Duration `json:"report_url_expiry"`
}

// parseJson loads the file named by -c/-config (if any) into config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	setIf(&config.HTTPAddr, c.HTTPAddr)
	setIf(&config.HealthAddrGRPC, c.HealthAddrGRPC)
	setIf(&config.Storage, c.Storage)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.DatabaseMaxConns, c.DatabaseMaxConns)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.UpdatePolicy, c.UpdatePolicy)
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.LogFormat, c.LogFormat)
	setIf(&config.S3AccessKey, c.S3AccessKey)
	setIf(&config.S3SecretKey, c.S3SecretKey)
	setIf(&config.S3Bucket, c.S3Bucket)
	setIf(&config.S3Region, c.S3Region)
	setIf(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.TokenTTL != nil {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.ReportURLExpiry != nil {
		config.ReportURLExpiry = c.ReportURLExpiry.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
