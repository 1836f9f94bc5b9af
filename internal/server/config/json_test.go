package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":    "www.example:9000",
		"endpoint_addr_grpc":    "www.example:9001",
		"storage_type":          "s3",
		"database_dsn":          "postgres://x",
		"badger_path":           "/tmp/badger",
		"aws_region":            "region",
		"aws_access_key_id":     "key",
		"aws_secret_access_key": "secret",
		"aws_base_endpoint":     "base_endpoint",
		"dynamodb_table":        "table",
		"s3_bucket":             "bucket",
		"s3_prefix":             "prefix/",
		"cache_size":            0,
		"cache_ttl":             "1m",
		"request_timeout":       "3s",
		"shutdown_timeout":      "20s",
		"log_level":             "debug",
		"log_file":              "toldya.log",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "www.example:9001", cfg.EndpointAddrGRPC)
		assert.Equal(t, StorageS3, cfg.StorageType)
		assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
		assert.Equal(t, "/tmp/badger", cfg.BadgerPath)
		assert.Equal(t, "region", cfg.AWSRegion)
		assert.Equal(t, "key", cfg.AWSAccessKeyID)
		assert.Equal(t, "secret", cfg.AWSSecretAccessKey)
		assert.Equal(t, "base_endpoint", cfg.AWSBaseEndpoint)
		assert.Equal(t, "table", cfg.DynamoDBTable)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "prefix/", cfg.S3Prefix)
		assert.Equal(t, 0, cfg.CacheSize, "explicit zero disables the cache")
		assert.Equal(t, time.Minute, cfg.CacheTTL)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 20*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "toldya.log", cfg.LogFile)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"storage_type": "postgres"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, StoragePostgres, cfg.StorageType)
		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, 10000, cfg.CacheSize)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: "defaults:1234", CacheSize: 7}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, 7, cfg.CacheSize)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
