/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entitydb/condition"
	"github.com/suparena/entitydb/driver"
	"github.com/suparena/entitydb/errors"
	"github.com/suparena/entitydb/record"
)

// API is the subset of the DynamoDB client the driver calls.
type API interface {
	ExecuteStatement(ctx context.Context, params *sdk.ExecuteStatementInput, optFns ...func(*sdk.Options)) (*sdk.ExecuteStatementOutput, error)
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

var _ API = (*sdk.Client)(nil)

// Driver implements driver.Driver on DynamoDB. Every entity table is a
// DynamoDB table keyed by a numeric "id" partition key. Statements passed to
// Select and Query are PartiQL; ids for Insert come from an atomic counter
// item per table in the sequence table (partition key "name").
type Driver struct {
	client  API
	options Options
}

var (
	_ driver.Driver              = (*Driver)(nil)
	_ driver.PlaceholderRequirer = (*Driver)(nil)
)

// ClientConfig holds what NewClient needs to reach DynamoDB. Empty keys fall
// back to the default AWS credential chain; Endpoint targets DynamoDB Local.
type ClientConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// NewClient initializes a DynamoDB client.
func NewClient(ctx context.Context, cfg ClientConfig) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// New constructs a Driver over client.
func New(client API, opts ...Option) *Driver {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Driver{client: client, options: options}
}

// Open creates a client from cfg and wraps it in a Driver.
func Open(ctx context.Context, cfg ClientConfig, opts ...Option) (*Driver, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	d := New(client, opts...)
	d.options.Logger.Infow("DynamoDB client initialized", "region", cfg.Region, "endpoint", cfg.Endpoint, "sequenceTable", d.options.SequenceTable)
	return d, nil
}

// Select runs a PartiQL statement and collects every page of the result.
func (d *Driver) Select(ctx context.Context, query string, args ...any) ([]*record.Record, error) {
	query = partiQL(query)
	d.options.Logger.Debugw("select", "partiql", query, "args", args)

	params, err := marshalArgs(args)
	if err != nil {
		return nil, errors.NewDriverFailureError("select", query, err)
	}

	input := &sdk.ExecuteStatementInput{
		Statement:  aws.String(query),
		Parameters: params,
	}
	if d.options.PageSize > 0 {
		input.Limit = aws.Int32(d.options.PageSize)
	}

	var rows []*record.Record
	for {
		out, err := withRetry(ctx, d.options, func() (*sdk.ExecuteStatementOutput, error) {
			return d.client.ExecuteStatement(ctx, input)
		})
		if err != nil {
			return nil, errors.NewDriverFailureError("select", query, err)
		}

		for _, item := range out.Items {
			row, err := itemToRecord(item)
			if err != nil {
				return nil, errors.NewDriverFailureError("select", query, err)
			}
			rows = append(rows, row)
		}

		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		input.NextToken = out.NextToken
	}
	return rows, nil
}

// RequiredPlaceholder reports the "?" parameters of PartiQL.
func (d *Driver) RequiredPlaceholder() condition.Placeholder {
	return condition.PlaceholderQuestion
}

// Query runs a PartiQL statement and discards its result.
func (d *Driver) Query(ctx context.Context, query string, args ...any) error {
	query = partiQL(query)
	d.options.Logger.Debugw("query", "partiql", query, "args", args)

	params, err := marshalArgs(args)
	if err != nil {
		return errors.NewDriverFailureError("query", query, err)
	}

	_, err = withRetry(ctx, d.options, func() (*sdk.ExecuteStatementOutput, error) {
		return d.client.ExecuteStatement(ctx, &sdk.ExecuteStatementInput{
			Statement:  aws.String(query),
			Parameters: params,
		})
	})
	return errors.NewDriverFailureError("query", query, err)
}

// GetRow returns the first item of the result or an empty record.
func (d *Driver) GetRow(ctx context.Context, query string, args ...any) (*record.Record, error) {
	rows, err := d.Select(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return driver.FirstRow(rows), nil
}

// GetColumn returns the first attribute of every item. Items are decoded
// with "id" first, so for a projection without id this is the
// alphabetically first attribute.
func (d *Driver) GetColumn(ctx context.Context, query string, args ...any) ([]any, error) {
	rows, err := d.Select(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return driver.FirstColumn(rows), nil
}

// GetCell returns the first attribute of the first item, or nil.
func (d *Driver) GetCell(ctx context.Context, query string, args ...any) (any, error) {
	rows, err := d.Select(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return driver.FirstCell(rows), nil
}

// Load retrieves the item with id using a consistent read.
func (d *Driver) Load(ctx context.Context, table string, id int64) (*record.Record, error) {
	d.options.Logger.Debugw("load", "table", table, "id", id)

	out, err := withRetry(ctx, d.options, func() (*sdk.GetItemOutput, error) {
		return d.client.GetItem(ctx, &sdk.GetItemInput{
			TableName:      aws.String(table),
			Key:            keyOf(id),
			ConsistentRead: aws.Bool(true),
		})
	})
	if err != nil {
		return nil, errors.NewDriverFailureError("load", table, err)
	}
	if out.Item == nil {
		return record.New(), nil
	}

	row, err := itemToRecord(out.Item)
	if err != nil {
		return nil, errors.NewDriverFailureError("load", table, err)
	}
	return row, nil
}

// Insert allocates the next id of table and puts the item. An existing item
// with that id fails the put with an AlreadyExistsError cause, itself
// wrapping the ConditionFailedError of the put.
func (d *Driver) Insert(ctx context.Context, table string, data *record.Record) (int64, error) {
	id, err := d.nextID(ctx, table)
	if err != nil {
		return 0, errors.NewDriverFailureError("insert", table, err)
	}

	item, err := recordToItem(id, data)
	if err != nil {
		return 0, errors.NewDriverFailureError("insert", table, err)
	}

	d.options.Logger.Debugw("insert", "table", table, "id", id)
	_, err = withRetry(ctx, d.options, func() (*sdk.PutItemOutput, error) {
		return d.client.PutItem(ctx, &sdk.PutItemInput{
			TableName:           aws.String(table),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(id)"),
		})
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			err = fmt.Errorf("%w: %w",
				errors.NewAlreadyExistsError(table, strconv.FormatInt(id, 10)),
				errors.NewConditionFailedError("insert", "attribute_not_exists(id)"))
		}
		return 0, errors.NewDriverFailureError("insert", table, err)
	}
	return id, nil
}

// Update sets the fields of data on the existing item with id. Updating a
// missing item or with no fields is a no-op.
func (d *Driver) Update(ctx context.Context, table string, id int64, data *record.Record) error {
	updateExpr, exprAttrNames, exprAttrValues, err := buildUpdateExpression(data)
	if err != nil {
		return errors.NewDriverFailureError("update", table, err)
	}
	if updateExpr == "" {
		return nil
	}

	d.options.Logger.Debugw("update", "table", table, "id", id, "expression", updateExpr)
	_, err = withRetry(ctx, d.options, func() (*sdk.UpdateItemOutput, error) {
		return d.client.UpdateItem(ctx, &sdk.UpdateItemInput{
			TableName:                 aws.String(table),
			Key:                       keyOf(id),
			UpdateExpression:          aws.String(updateExpr),
			ExpressionAttributeNames:  exprAttrNames,
			ExpressionAttributeValues: exprAttrValues,
			ConditionExpression:       aws.String("attribute_exists(id)"),
		})
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return nil
		}
		return errors.NewDriverFailureError("update", table, err)
	}
	return nil
}

// Delete removes the item with id.
func (d *Driver) Delete(ctx context.Context, table string, id int64) error {
	d.options.Logger.Debugw("delete", "table", table, "id", id)

	_, err := withRetry(ctx, d.options, func() (*sdk.DeleteItemOutput, error) {
		return d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
			TableName: aws.String(table),
			Key:       keyOf(id),
		})
	})
	return errors.NewDriverFailureError("delete", table, err)
}

// nextID atomically increments the counter item of table.
func (d *Driver) nextID(ctx context.Context, table string) (int64, error) {
	out, err := withRetry(ctx, d.options, func() (*sdk.UpdateItemOutput, error) {
		return d.client.UpdateItem(ctx, &sdk.UpdateItemInput{
			TableName: aws.String(d.options.SequenceTable),
			Key: map[string]types.AttributeValue{
				"name": &types.AttributeValueMemberS{Value: table},
			},
			UpdateExpression:         aws.String("ADD #v :one"),
			ExpressionAttributeNames: map[string]string{"#v": "value"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":one": &types.AttributeValueMemberN{Value: "1"},
			},
			ReturnValues: types.ReturnValueUpdatedNew,
		})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", table, err)
	}

	counter, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("sequence %s returned no counter value", table)
	}
	id, err := strconv.ParseInt(counter.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sequence %s returned invalid counter %q: %w", table, counter.Value, err)
	}
	return id, nil
}

// matchAll is the condition an empty condition tree compiles to.
const matchAll = " WHERE 1 = 1"

// partiQL drops a trailing always-true WHERE clause, which PartiQL rejects
// because it names no attribute.
func partiQL(query string) string {
	return strings.TrimSuffix(query, matchAll)
}
