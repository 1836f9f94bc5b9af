package messages

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/toldya/internal/common"
	"github.com/dmitrijs2005/toldya/internal/server/models"
)

// S3API is the subset of *s3.Client used by S3Repository.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Repository keeps each message as a JSON object "{prefix}{id}.json".
// Puts are conditional on the object not existing yet.
type S3Repository struct {
	client S3API
	bucket string
	prefix string
}

func NewS3Repository(client S3API, bucket, prefix string) *S3Repository {
	return &S3Repository{client: client, bucket: bucket, prefix: prefix}
}

func (r *S3Repository) key(id string) string {
	return r.prefix + id + ".json"
}

func (r *S3Repository) Put(ctx context.Context, m *models.Message) error {
	body, err := json.Marshal(newRecord(m))
	if err != nil {
		return err
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key(m.ID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return fmt.Errorf("message %s: %w", m.ID, common.ErrorAlreadyExists)
		}
		return fmt.Errorf("s3 error: %w", err)
	}
	return nil
}

func (r *S3Repository) Get(ctx context.Context, id string) (*models.Message, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key(id)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("s3 error: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 error: %w", err)
	}

	rec := &record{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedRecord, err)
	}
	rec.ID = id

	return rec.toMessage()
}
