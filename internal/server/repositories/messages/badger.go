package messages

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/toldya/internal/common"
	"github.com/dmitrijs2005/toldya/internal/server/models"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const badgerKeyPrefix = "message:"

// BadgerRepository persists messages in an embedded BadgerDB. Keys are
// "message:{id}", values are protobuf-encoded structpb.Struct documents.
type BadgerRepository struct {
	db *badger.DB
}

func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db}
}

func (r *BadgerRepository) Put(ctx context.Context, m *models.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := encodeStruct(m)
	if err != nil {
		return err
	}

	key := []byte(badgerKeyPrefix + m.ID)
	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		switch {
		case err == nil:
			return fmt.Errorf("message %s: %w", m.ID, common.ErrorAlreadyExists)
		case !errors.Is(err, badger.ErrKeyNotFound):
			return fmt.Errorf("badger error: %w", err)
		}
		return txn.Set(key, value)
	})
}

func (r *BadgerRepository) Get(ctx context.Context, id string) (*models.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + id))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("badger error: %w", err)
	}

	return decodeStruct(value)
}

func encodeStruct(m *models.Message) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		attrID:         m.ID,
		attrName:       m.Name,
		attrSubject:    m.Subject,
		attrMessage:    m.Body,
		attrRevealTime: m.RevealTime.String(),
		attrCreateTime: m.CreateTime.String(),
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func decodeStruct(value []byte) (*models.Message, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedRecord, err)
	}

	fields := s.GetFields()
	r := &record{ID: fields[attrID].GetStringValue()}
	r.Name = structString(fields, attrName)
	r.Subject = structString(fields, attrSubject)
	r.Message = structString(fields, attrMessage)

	var err error
	if r.RevealTime, err = structDecimal(fields, attrRevealTime); err != nil {
		return nil, err
	}
	if r.CreateTime, err = structDecimal(fields, attrCreateTime); err != nil {
		return nil, err
	}

	return r.toMessage()
}

func structString(fields map[string]*structpb.Value, name string) *string {
	v, ok := fields[name].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil
	}
	return &v.StringValue
}

// structDecimal accepts both string and number values; numbers are float64
// in structpb, which is exact for any unix timestamp.
func structDecimal(fields map[string]*structpb.Value, name string) (*decimal.Decimal, error) {
	switch v := fields[name].GetKind().(type) {
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(v.StringValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errMalformedRecord, name, err)
		}
		return &d, nil
	case *structpb.Value_NumberValue:
		d := decimal.NewFromFloat(v.NumberValue)
		return &d, nil
	default:
		return nil, nil
	}
}
