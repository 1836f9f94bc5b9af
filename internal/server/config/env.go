package config

import (
	"strconv"
	"time"

	env "github.com/Netflix/go-env"
)

// EnvConfig lists the environment variables the server reads. Values are
// kept as strings so that an unset variable can be told apart from a zero.
type EnvConfig struct {
	EndpointAddrHTTP   string `env:"TOLDYA_HTTP_ADDR"`
	EndpointAddrGRPC   string `env:"TOLDYA_GRPC_ADDR"`
	StorageType        string `env:"TOLDYA_STORAGE"`
	DatabaseDSN        string `env:"TOLDYA_DATABASE_DSN"`
	BadgerPath         string `env:"TOLDYA_BADGER_PATH"`
	AWSRegion          string `env:"AWS_REGION"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	AWSBaseEndpoint    string `env:"TOLDYA_AWS_ENDPOINT"`
	DynamoDBTable      string `env:"TOLDYA_DYNAMODB_TABLE"`
	S3Bucket           string `env:"TOLDYA_S3_BUCKET"`
	S3Prefix           string `env:"TOLDYA_S3_PREFIX"`
	CacheSize          string `env:"TOLDYA_CACHE_SIZE"`
	CacheTTL           string `env:"TOLDYA_CACHE_TTL"`
	RequestTimeout     string `env:"TOLDYA_REQUEST_TIMEOUT"`
	ShutdownTimeout    string `env:"TOLDYA_SHUTDOWN_TIMEOUT"`
	LogLevel           string `env:"TOLDYA_LOG_LEVEL"`
	LogFile            string `env:"TOLDYA_LOG_FILE"`
}

// parseEnv overlays set environment variables onto config. Malformed numbers
// or durations panic, the same way a malformed config file does.
func parseEnv(config *Config) {
	c := &EnvConfig{}
	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.StorageType, c.StorageType)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.BadgerPath, c.BadgerPath)
	setString(&config.AWSRegion, c.AWSRegion)
	setString(&config.AWSAccessKeyID, c.AWSAccessKeyID)
	setString(&config.AWSSecretAccessKey, c.AWSSecretAccessKey)
	setString(&config.AWSBaseEndpoint, c.AWSBaseEndpoint)
	setString(&config.DynamoDBTable, c.DynamoDBTable)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Prefix, c.S3Prefix)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFile, c.LogFile)

	if c.CacheSize != "" {
		n, err := strconv.Atoi(c.CacheSize)
		if err != nil {
			panic(err)
		}
		config.CacheSize = n
	}
	setDuration(&config.CacheTTL, c.CacheTTL)
	setDuration(&config.RequestTimeout, c.RequestTimeout)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)
}

func setDuration(dst *time.Duration, v string) {
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
