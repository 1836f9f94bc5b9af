package messages

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dmitrijs2005/toldya/internal/common"
	"github.com/dmitrijs2005/toldya/internal/server/models"
	"github.com/shopspring/decimal"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by DynamoDBRepository.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// DynamoDBRepository stores one item per message in a table whose partition
// key is the string attribute message_id. Timestamps are DynamoDB numbers.
type DynamoDBRepository struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDBRepository(client DynamoDBAPI, table string) *DynamoDBRepository {
	return &DynamoDBRepository{client: client, table: table}
}

func (r *DynamoDBRepository) Put(ctx context.Context, m *models.Message) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item: map[string]types.AttributeValue{
			attrID:         &types.AttributeValueMemberS{Value: m.ID},
			attrName:       &types.AttributeValueMemberS{Value: m.Name},
			attrSubject:    &types.AttributeValueMemberS{Value: m.Subject},
			attrMessage:    &types.AttributeValueMemberS{Value: m.Body},
			attrRevealTime: &types.AttributeValueMemberN{Value: m.RevealTime.String()},
			attrCreateTime: &types.AttributeValueMemberN{Value: m.CreateTime.String()},
		},
		ConditionExpression: aws.String("attribute_not_exists(" + attrID + ")"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("message %s: %w", m.ID, common.ErrorAlreadyExists)
		}
		return fmt.Errorf("dynamodb error: %w", err)
	}
	return nil
}

func (r *DynamoDBRepository) Get(ctx context.Context, id string) (*models.Message, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			attrID: &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrorNotFound
	}

	return decodeItem(id, out.Item)
}

func decodeItem(id string, item map[string]types.AttributeValue) (*models.Message, error) {
	r := &record{
		ID:      id,
		Name:    itemString(item, attrName),
		Subject: itemString(item, attrSubject),
		Message: itemString(item, attrMessage),
	}

	var err error
	if r.RevealTime, err = itemNumber(item, attrRevealTime); err != nil {
		return nil, err
	}
	if r.CreateTime, err = itemNumber(item, attrCreateTime); err != nil {
		return nil, err
	}

	return r.toMessage()
}

func itemString(item map[string]types.AttributeValue, name string) *string {
	v, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return nil
	}
	return &v.Value
}

func itemNumber(item map[string]types.AttributeValue, name string) (*decimal.Decimal, error) {
	v, ok := item[name].(*types.AttributeValueMemberN)
	if !ok {
		return nil, nil
	}
	d, err := decimal.NewFromString(v.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errMalformedRecord, name, err)
	}
	return &d, nil
}
