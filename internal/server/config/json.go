package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/toldya/internal/flagx"
	"github.com/dmitrijs2005/toldya/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept both
// "5s"-style strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP   string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC   string          `json:"endpoint_addr_grpc"`
	StorageType        string          `json:"storage_type"`
	DatabaseDSN        string          `json:"database_dsn"`
	BadgerPath         string          `json:"badger_path"`
	AWSRegion          string          `json:"aws_region"`
	AWSAccessKeyID     string          `json:"aws_access_key_id"`
	AWSSecretAccessKey string          `json:"aws_secret_access_key"`
	AWSBaseEndpoint    string          `json:"aws_base_endpoint"`
	DynamoDBTable      string          `json:"dynamodb_table"`
	S3Bucket           string          `json:"s3_bucket"`
	S3Prefix           string          `json:"s3_prefix"`
	CacheSize          *int            `json:"cache_size"`
	CacheTTL           *timex.Duration `json:"cache_ttl"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	ShutdownTimeout    *timex.Duration `json:"shutdown_timeout"`
	LogLevel           string          `json:"log_level"`
	LogFile            string          `json:"log_file"`
}

// parseJson overlays the file named by -c/-config onto config. Keys absent
// from the file keep their current value. A missing or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
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

	if c.CacheSize != nil {
		config.CacheSize = *c.CacheSize
	}
	if c.CacheTTL != nil {
		config.CacheTTL = c.CacheTTL.Duration
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
