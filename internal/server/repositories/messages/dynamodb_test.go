package messages

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dmitrijs2005/toldya/internal/common"
	"github.com/stretchr/testify/require"
)

// fakeDynamoDB is an in-memory stand-in for the PutItem/GetItem subset.
type fakeDynamoDB struct {
	items  map[string]map[string]types.AttributeValue
	putIn  *dynamodb.PutItemInput
	getIn  *dynamodb.GetItemInput
	putErr error
	getErr error
}

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamoDB) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	id := in.Item[attrID].(*types.AttributeValueMemberS).Value
	if _, ok := f.items[id]; ok && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional check failed")}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getIn = in
	if f.getErr != nil {
		return nil, f.getErr
	}
	id := in.Key[attrID].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[id]}, nil
}

func TestDynamoDBRepository_PutGet(t *testing.T) {
	fake := newFakeDynamoDB()
	repo := NewDynamoDBRepository(fake, "ToldYaMessages")
	ctx := context.Background()

	m := sampleMessage("m1")
	require.NoError(t, repo.Put(ctx, m))
	require.Equal(t, "ToldYaMessages", aws.ToString(fake.putIn.TableName))
	require.Equal(t, &types.AttributeValueMemberN{Value: "1700000000"}, fake.putIn.Item[attrRevealTime])
	require.Equal(t, &types.AttributeValueMemberS{Value: "secret"}, fake.putIn.Item[attrMessage])

	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.True(t, aws.ToBool(fake.getIn.ConsistentRead))
	require.Equal(t, "secret", got.Body)
	require.True(t, m.CreateTime.Equal(got.CreateTime))
}

func TestDynamoDBRepository_NotFound(t *testing.T) {
	repo := NewDynamoDBRepository(newFakeDynamoDB(), "t")
	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDynamoDBRepository_DuplicateID(t *testing.T) {
	repo := NewDynamoDBRepository(newFakeDynamoDB(), "t")
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, sampleMessage("m1")))
	require.ErrorIs(t, repo.Put(ctx, sampleMessage("m1")), common.ErrorAlreadyExists)
}

func TestDynamoDBRepository_Errors(t *testing.T) {
	fake := newFakeDynamoDB()
	fake.putErr = errors.New("throttled")
	fake.getErr = errors.New("throttled")
	repo := NewDynamoDBRepository(fake, "t")

	err := repo.Put(context.Background(), sampleMessage("m1"))
	require.ErrorContains(t, err, "throttled")
	require.NotErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = repo.Get(context.Background(), "m1")
	require.ErrorContains(t, err, "throttled")
	require.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestDynamoDBRepository_MalformedItem(t *testing.T) {
	fake := newFakeDynamoDB()
	fake.items["m1"] = map[string]types.AttributeValue{
		attrID:   &types.AttributeValueMemberS{Value: "m1"},
		attrName: &types.AttributeValueMemberS{Value: "A"},
	}
	_, err := NewDynamoDBRepository(fake, "t").Get(context.Background(), "m1")
	require.ErrorIs(t, err, errMalformedRecord)

	fake.items["m2"] = map[string]types.AttributeValue{
		attrID:         &types.AttributeValueMemberS{Value: "m2"},
		attrRevealTime: &types.AttributeValueMemberN{Value: "not-a-number"},
	}
	_, err = NewDynamoDBRepository(fake, "t").Get(context.Background(), "m2")
	require.ErrorIs(t, err, errMalformedRecord)
}
