package repomanager

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/toldya/internal/server/config"
	"github.com/dmitrijs2005/toldya/internal/server/repositories/messages"
)

// loadAWSConfig resolves region and credentials. Static keys are used when
// both are configured, otherwise the default credential chain applies.
func loadAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// DynamoDBRepositoryManager stores messages in a DynamoDB table.
type DynamoDBRepositoryManager struct {
	client *dynamodb.Client
	table  string
}

// NewDynamoDBRepositoryManager builds the client. A non-empty endpoint points
// it at a local emulator.
func NewDynamoDBRepositoryManager(awsCfg aws.Config, endpoint, table string) *DynamoDBRepositoryManager {
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &DynamoDBRepositoryManager{client: client, table: table}
}

func (m *DynamoDBRepositoryManager) Backend() string { return config.StorageDynamoDB }

func (m *DynamoDBRepositoryManager) Messages() messages.Repository {
	return messages.NewDynamoDBRepository(m.client, m.table)
}

func (m *DynamoDBRepositoryManager) Close() error { return nil }

// S3RepositoryManager stores one JSON object per message in a bucket.
type S3RepositoryManager struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3RepositoryManager builds the client. A non-empty endpoint (MinIO and
// friends) switches to path-style addressing.
func NewS3RepositoryManager(awsCfg aws.Config, endpoint, bucket, prefix string) *S3RepositoryManager {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3RepositoryManager{client: client, bucket: bucket, prefix: prefix}
}

func (m *S3RepositoryManager) Backend() string { return config.StorageS3 }

func (m *S3RepositoryManager) Messages() messages.Repository {
	return messages.NewS3Repository(m.client, m.bucket, m.prefix)
}

func (m *S3RepositoryManager) Close() error { return nil }
