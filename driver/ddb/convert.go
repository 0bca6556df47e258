/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entitydb/record"
)

// itemToRecord converts a DynamoDB item into a record with "id" first and
// the remaining attributes in name order.
func itemToRecord(item map[string]types.AttributeValue) (*record.Record, error) {
	fields := make(map[string]any, len(item))
	for name, av := range item {
		v, err := fromAttributeValue(av)
		if err != nil {
			return nil, fmt.Errorf("failed to decode attribute %q: %w", name, err)
		}
		fields[name] = v
	}
	return record.FromMap(fields), nil
}

// fromAttributeValue decodes scalars the way SQL drivers return them:
// whole numbers as int64, other numbers as float64. Lists, maps and sets
// go through attributevalue.Unmarshal.
func fromAttributeValue(av types.AttributeValue) (any, error) {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value, nil

	case *types.AttributeValueMemberN:
		if n, err := strconv.ParseInt(tv.Value, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(tv.Value, 64)
		if err != nil {
			return nil, err
		}
		return f, nil

	case *types.AttributeValueMemberBOOL:
		return tv.Value, nil

	case *types.AttributeValueMemberNULL:
		return nil, nil

	case *types.AttributeValueMemberB:
		return tv.Value, nil

	default:
		var v any
		if err := attributevalue.Unmarshal(av, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// recordToItem marshals data into a DynamoDB item with id set as the key.
func recordToItem(id int64, data *record.Record) (map[string]types.AttributeValue, error) {
	item := make(map[string]types.AttributeValue, data.Len()+1)
	var err error
	data.Range(func(field string, value any) bool {
		if field == "id" {
			return true
		}
		var av types.AttributeValue
		av, err = attributevalue.Marshal(value)
		if err != nil {
			err = fmt.Errorf("failed to marshal field %q: %w", field, err)
			return false
		}
		item[field] = av
		return true
	})
	if err != nil {
		return nil, err
	}
	item["id"] = idAttribute(id)
	return item, nil
}

func idAttribute(id int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)}
}

func keyOf(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": idAttribute(id)}
}

// marshalArgs converts statement arguments into PartiQL parameters.
func marshalArgs(args []any) ([]types.AttributeValue, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := make([]types.AttributeValue, len(args))
	for i, arg := range args {
		av, err := attributevalue.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal argument %d: %w", i+1, err)
		}
		params[i] = av
	}
	return params, nil
}

// buildUpdateExpression transforms a record of field->value into:
//   - an "update expression" (e.g., "SET #f0 = :v0, #f1 = :v1")
//   - a corresponding map of expression attribute names
//   - a corresponding map of expression attribute values
//
// Clauses follow the record's field order. The id field is skipped.
func buildUpdateExpression(updates *record.Record) (string,
	map[string]string,
	map[string]types.AttributeValue,
	error) {

	setClauses := make([]string, 0, updates.Len())
	exprAttrNames := make(map[string]string)
	exprAttrValues := make(map[string]types.AttributeValue)

	var err error
	i := 0
	updates.Range(func(field string, val any) bool {
		if field == "id" {
			return true
		}
		placeholderName := fmt.Sprintf("#f%d", i)
		placeholderValue := fmt.Sprintf(":v%d", i)

		var av types.AttributeValue
		av, err = attributevalue.Marshal(val)
		if err != nil {
			err = fmt.Errorf("unhandled update value type for field '%s': %w", field, err)
			return false
		}

		setClauses = append(setClauses, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
		exprAttrNames[placeholderName] = field
		exprAttrValues[placeholderValue] = av
		i++
		return true
	})
	if err != nil {
		return "", nil, nil, err
	}
	if len(setClauses) == 0 {
		return "", nil, nil, nil
	}

	updateExpr := "SET " + strings.Join(setClauses, ", ")
	return updateExpr, exprAttrNames, exprAttrValues, nil
}
