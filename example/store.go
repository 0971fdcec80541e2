package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/graphsmith/appsync/scalars"
)

// statusKey is the fixed partition key of the single game status item.
const statusKey = "GAME_STATUS"

// store persists players and the game status in one DynamoDB table keyed
// by "id".
type store struct {
	client *dynamodb.Client
	table  string
}

func newStore(client *dynamodb.Client, table string) *store {
	return &store{client: client, table: table}
}

func (s *store) listPlayers(ctx context.Context) ([]Player, error) {
	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(s.table),
		FilterExpression:         aws.String("#id <> :status"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: statusKey},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scan players: %w", err)
	}
	players := []Player{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &players); err != nil {
		return nil, fmt.Errorf("unmarshal players: %w", err)
	}
	return players, nil
}

func (s *store) getPlayer(ctx context.Context, id scalars.ID) (*Player, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: string(id)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get player %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var p Player
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal player %s: %w", id, err)
	}
	return &p, nil
}

func (s *store) putPlayer(ctx context.Context, p Player) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal player %s: %w", p.Id, err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put player %s: %w", p.Id, err)
	}
	return nil
}

func (s *store) deletePlayer(ctx context.Context, id scalars.ID) (*Player, error) {
	out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: string(id)},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, fmt.Errorf("delete player %s: %w", id, err)
	}
	if out.Attributes == nil {
		return nil, nil
	}
	var p Player
	if err := attributevalue.UnmarshalMap(out.Attributes, &p); err != nil {
		return nil, fmt.Errorf("unmarshal deleted player %s: %w", id, err)
	}
	return &p, nil
}

func (s *store) gameStatus(ctx context.Context) (GameStatus, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: statusKey},
		},
	})
	if err != nil {
		return "", fmt.Errorf("get game status: %w", err)
	}
	if out.Item == nil {
		return GameStatusStopped, nil
	}
	var item struct {
		Status GameStatus `dynamodbav:"status"`
	}
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return "", fmt.Errorf("unmarshal game status: %w", err)
	}
	return item.Status, nil
}

func (s *store) setGameStatus(ctx context.Context, status GameStatus) error {
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"id":     &types.AttributeValueMemberS{Value: statusKey},
			"status": &types.AttributeValueMemberS{Value: string(status)},
		},
	}); err != nil {
		return fmt.Errorf("put game status: %w", err)
	}
	return nil
}
