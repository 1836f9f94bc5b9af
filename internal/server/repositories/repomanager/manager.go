// Package repomanager opens the configured message store and hands out its
// repository.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/toldya/internal/server/config"
	"github.com/dmitrijs2005/toldya/internal/server/repositories/messages"
)

// RepositoryManager owns a store connection for the lifetime of the server.
type RepositoryManager interface {
	// Backend names the storage type, as in config.Storage*.
	Backend() string
	Messages() messages.Repository
	Close() error
}

// Open connects to the backend selected by cfg.StorageType.
func Open(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StorageType {
	case config.StorageMemory:
		return NewMemoryRepositoryManager(), nil
	case config.StoragePostgres:
		return OpenPostgres(ctx, cfg.DatabaseDSN)
	case config.StorageBadger:
		return OpenBadger(cfg.BadgerPath)
	case config.StorageDynamoDB:
		awsCfg, err := loadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewDynamoDBRepositoryManager(awsCfg, cfg.AWSBaseEndpoint, cfg.DynamoDBTable), nil
	case config.StorageS3:
		awsCfg, err := loadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3RepositoryManager(awsCfg, cfg.AWSBaseEndpoint, cfg.S3Bucket, cfg.S3Prefix), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
}
