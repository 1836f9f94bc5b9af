package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/toldya/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-r string   gRPC health bind address (e.g., ":50051")
//	-s string   storage backend: memory|postgres|badger|dynamodb|s3
//	-d string   PostgreSQL DSN
//	-p string   badger data directory
//	-g string   AWS region
//	-u string   AWS access key id
//	-k string   AWS secret access key
//	-e string   AWS base endpoint (e.g., "http://127.0.0.1:8000/")
//	-t string   DynamoDB table
//	-b string   S3 bucket
//	-x string   S3 key prefix
//	-m int      read cache size, records (0 disables the cache)
//	-n int      read cache TTL, seconds
//	-o int      request timeout, seconds
//	-l string   log level
//	-f string   log file
//
// Durations are accepted as integers in seconds.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-r", "-s", "-d", "-p", "-g", "-u", "-k", "-e", "-t", "-b", "-x", "-m", "-n", "-o", "-l", "-f",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "r", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.StorageType, "s", config.StorageType, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.BadgerPath, "p", config.BadgerPath, "badger data directory")
	fs.StringVar(&config.AWSRegion, "g", config.AWSRegion, "AWS region")
	fs.StringVar(&config.AWSAccessKeyID, "u", config.AWSAccessKeyID, "AWS access key id")
	fs.StringVar(&config.AWSSecretAccessKey, "k", config.AWSSecretAccessKey, "AWS secret access key")
	fs.StringVar(&config.AWSBaseEndpoint, "e", config.AWSBaseEndpoint, "AWS base endpoint")
	fs.StringVar(&config.DynamoDBTable, "t", config.DynamoDBTable, "DynamoDB table")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Prefix, "x", config.S3Prefix, "S3 key prefix")
	fs.IntVar(&config.CacheSize, "m", config.CacheSize, "read cache size (records)")

	cacheTTL := fs.Int("n", int(config.CacheTTL.Seconds()), "read cache ttl (in seconds)")
	requestTimeout := fs.Int("o", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "f", config.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CacheTTL = time.Duration(*cacheTTL) * time.Second
	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
