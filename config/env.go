// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvResultsDir  = "TER_RESULTS_DIR"
	EnvVerbosity   = "TER_VERBOSITY"
	EnvScheme      = "TER_SCHEME"
	EnvFlux        = "TER_FLUX"
	EnvUpload      = "TER_UPLOAD"
	EnvS3Endpoint  = "TER_S3_ENDPOINT"
	EnvS3Region    = "TER_S3_REGION"
	EnvS3AccessKey = "TER_S3_ACCESS_KEY"
	EnvS3SecretKey = "TER_S3_SECRET_KEY"
	EnvS3Bucket    = "TER_S3_BUCKET"
	EnvS3Prefix    = "TER_S3_PREFIX"
	EnvS3UseSSL    = "TER_S3_USE_SSL"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// MapLookup adapts a map, e.g. the result of ReadEnvFile, to LookupFunc.
func MapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// FirstOf returns the first non-empty value any of lookups reports, in
// order.
func FirstOf(lookups ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, lookup := range lookups {
			if v, ok := lookup(key); ok && v != "" {
				return v, true
			}
		}

		return "", false
	}
}

// ReadEnvFile parses a .env file without touching the process environment.
func ReadEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return env, nil
}

// ApplyEnv overrides c with the TER_* variables visible through lookup.
// Empty values are ignored.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvResultsDir, &c.Output.Dir)
	str(EnvScheme, &c.Scheme)
	str(EnvFlux, &c.Flux)
	str(EnvS3Endpoint, &c.Upload.Endpoint)
	str(EnvS3Region, &c.Upload.Region)
	str(EnvS3AccessKey, &c.Upload.AccessKey)
	str(EnvS3SecretKey, &c.Upload.SecretKey)
	str(EnvS3Bucket, &c.Upload.Bucket)
	str(EnvS3Prefix, &c.Upload.Prefix)

	if v, ok := lookup(EnvVerbosity); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvVerbosity, v, ErrEnv)
		}
		c.Verbosity = n
	}
	for key, dst := range map[string]*bool{EnvUpload: &c.Upload.Enabled, EnvS3UseSSL: &c.Upload.UseSSL} {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s=%q: %w", key, v, ErrEnv)
			}
			*dst = b
		}
	}

	return nil
}
