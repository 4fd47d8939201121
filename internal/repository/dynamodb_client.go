package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"chat-relay/internal/domain"
)

const (
	pkPrefixCall = "CALL#"
	skPrefixTS   = "TS#"
	ttlDuration  = 30 * 24 * time.Hour // 30-day TTL
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Client writes upstream call audit records to a DynamoDB table.
type Client struct {
	api       dynamodbAPI
	tableName string
	now       func() time.Time
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName, now: time.Now}, nil
}

// callPK groups every call made for one correlation id.
func callPK(correlationID string) string {
	return pkPrefixCall + correlationID
}

func callSK(ts time.Time) string {
	return skPrefixTS + ts.UTC().Format(time.RFC3339Nano)
}

// RecordCall stores rec. Records expire after 30 days.
func (c *Client) RecordCall(ctx context.Context, rec domain.CallRecord) error {
	if strings.TrimSpace(rec.CorrelationID) == "" {
		return errors.New("repository: RecordCall: correlation id is required")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = c.now()
	}

	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                callItem(rec, c.now().Add(ttlDuration).Unix()),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return fmt.Errorf("repository: RecordCall: %w", err)
	}
	return nil
}

func callItem(rec domain.CallRecord, ttl int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":             &types.AttributeValueMemberS{Value: callPK(rec.CorrelationID)},
		"SK":             &types.AttributeValueMemberS{Value: callSK(rec.Timestamp)},
		"correlationId":  &types.AttributeValueMemberS{Value: rec.CorrelationID},
		"provider":       &types.AttributeValueMemberS{Value: rec.Provider},
		"outcome":        &types.AttributeValueMemberS{Value: rec.Outcome},
		"upstreamStatus": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", rec.UpstreamStatus)},
		"durationMs":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", rec.Duration.Milliseconds())},
		"timestamp":      &types.AttributeValueMemberS{Value: rec.Timestamp.UTC().Format(time.RFC3339Nano)},
		"ttl":            &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", ttl)},
	}
}
