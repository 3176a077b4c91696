package dynamodb

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"event-handlers-api/internal/models"
	"event-handlers-api/internal/repositories"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

// API is the subset of the DynamoDB client used by RecordRepository
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// RecordRepository stores records in a DynamoDB table with a string hash key "id"
type RecordRepository struct {
	client API
	table  string
	logger *logrus.Logger
}

// NewRecordRepository creates a repository bound to table
func NewRecordRepository(client API, table string, logger *logrus.Logger) *RecordRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &RecordRepository{client: client, table: table, logger: logger}
}

// Put implements repositories.RecordRepository.Put
func (r *RecordRepository) Put(ctx context.Context, record models.Record) error {
	id := record.ID()
	if id == "" {
		return repositories.NewRepositoryError("put", r.table, id, repositories.ErrInvalidID)
	}

	item, err := attributevalue.MarshalMap(normalizeNumbers(map[string]interface{}(record)))
	if err != nil {
		return repositories.NewRepositoryError("put", r.table, id, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		r.logger.WithFields(logrus.Fields{"table": r.table, "id": id, "error": err}).Error("PutItem failed")
		return repositories.NewRepositoryError("put", r.table, id, err)
	}
	return nil
}

// Update implements repositories.RecordRepository.Update
func (r *RecordRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	if id == "" {
		return repositories.NewRepositoryError("update", r.table, id, repositories.ErrInvalidID)
	}

	expr, names, values, err := buildUpdateExpression(changes)
	if err != nil {
		return repositories.NewRepositoryError("update", r.table, id, err)
	}
	if expr == "" {
		return nil
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       keyFor(id),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		r.logger.WithFields(logrus.Fields{"table": r.table, "id": id, "error": err}).Error("UpdateItem failed")
		return repositories.NewRepositoryError("update", r.table, id, err)
	}
	return nil
}

// Get implements repositories.RecordRepository.Get
func (r *RecordRepository) Get(ctx context.Context, id string) (models.Record, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            keyFor(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, repositories.NewRepositoryError("get", r.table, id, err)
	}
	if len(out.Item) == 0 {
		return nil, repositories.NewRepositoryError("get", r.table, id, repositories.ErrNotFound)
	}

	var record models.Record
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, repositories.NewRepositoryError("get", r.table, id, err)
	}
	return record, nil
}

// Scan implements repositories.RecordRepository.Scan, following pagination until
// limit records are collected or the table is exhausted.
func (r *RecordRepository) Scan(ctx context.Context, limit int) ([]models.Record, error) {
	var (
		records  []models.Record
		startKey map[string]types.AttributeValue
	)

	for {
		input := &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: startKey,
		}
		if limit > 0 {
			input.Limit = aws.Int32(pageLimit(limit - len(records)))
		}

		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, repositories.NewRepositoryError("scan", r.table, "", err)
		}

		var page []models.Record
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, repositories.NewRepositoryError("scan", r.table, "", err)
		}
		records = append(records, page...)

		if len(out.LastEvaluatedKey) == 0 || (limit > 0 && len(records) >= limit) {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Close implements repositories.RecordRepository.Close
func (r *RecordRepository) Close() error {
	return nil
}

// pageLimit clamps the remaining record count to the int32 range of ScanInput.Limit
func pageLimit(remaining int) int32 {
	if remaining > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(remaining)
}

func keyFor(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		models.FieldID: &types.AttributeValueMemberS{Value: id},
	}
}

// buildUpdateExpression renders changes as a SET expression with placeholder
// names and values. Keys are sorted so the expression is deterministic.
func buildUpdateExpression(changes map[string]interface{}) (string, map[string]string, map[string]types.AttributeValue, error) {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		if k == models.FieldID {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "", nil, nil, nil
	}
	sort.Strings(keys)

	names := make(map[string]string, len(keys))
	values := make(map[string]types.AttributeValue, len(keys))
	expr := "SET "
	for i, k := range keys {
		name := fmt.Sprintf("#f%d", i)
		value := fmt.Sprintf(":v%d", i)

		av, err := attributevalue.Marshal(normalizeNumbers(changes[k]))
		if err != nil {
			return "", nil, nil, fmt.Errorf("marshal %s: %w", k, err)
		}

		names[name] = k
		values[value] = av
		if i > 0 {
			expr += ", "
		}
		expr += name + " = " + value
	}
	return expr, names, values, nil
}

// normalizeNumbers replaces json.Number values with int64 or float64 so they
// are stored as DynamoDB numbers rather than strings
func normalizeNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalizeNumbers(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeNumbers(item)
		}
		return out
	}
	return v
}
