package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"instala_control/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ConnectDynamoDB creates a DynamoDB client. A configured endpoint (for
// example http://dynamodb:8000) targets DynamoDB Local.
func ConnectDynamoDB(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	awsCfg, err := NewDynamoDBConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamodb config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}

func NewDynamoDBConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(creds),
	}

	if endpoint := cfg.DynamoDBEndpoint; endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
}

// TableSchema describes one table: a string partition key and an optional
// string sort key.
type TableSchema struct {
	Name         string
	PartitionKey string
	SortKey      string
}

// Schemas lists every table the repositories expect.
func Schemas(t config.Tables) []TableSchema {
	return []TableSchema{
		{Name: t.Services, PartitionKey: "user_id", SortKey: "id"},
		{Name: t.Appointments, PartitionKey: "user_id", SortKey: "id"},
		{Name: t.Budgets, PartitionKey: "user_id", SortKey: "id"},
		{Name: t.Payments, PartitionKey: "user_id", SortKey: "id"},
		{Name: t.Settings, PartitionKey: "user_id"},
	}
}

// EnsureTables creates missing tables with on-demand billing and waits for
// them to become active. Existing tables are left untouched.
func EnsureTables(ctx context.Context, client *dynamodb.Client, schemas []TableSchema) error {
	for _, s := range schemas {
		_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.Name)})
		if err == nil {
			continue
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			return fmt.Errorf("describe table %s: %w", s.Name, err)
		}

		log.Printf("[database][dynamodb] creating table name=%s", s.Name)
		if _, err := client.CreateTable(ctx, createTableInput(s)); err != nil {
			return fmt.Errorf("create table %s: %w", s.Name, err)
		}
		waiter := dynamodb.NewTableExistsWaiter(client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.Name)}, time.Minute); err != nil {
			return fmt.Errorf("wait table %s: %w", s.Name, err)
		}
	}
	return nil
}

func createTableInput(s TableSchema) *dynamodb.CreateTableInput {
	attrs := []types.AttributeDefinition{
		{AttributeName: aws.String(s.PartitionKey), AttributeType: types.ScalarAttributeTypeS},
	}
	keys := []types.KeySchemaElement{
		{AttributeName: aws.String(s.PartitionKey), KeyType: types.KeyTypeHash},
	}
	if s.SortKey != "" {
		attrs = append(attrs, types.AttributeDefinition{AttributeName: aws.String(s.SortKey), AttributeType: types.ScalarAttributeTypeS})
		keys = append(keys, types.KeySchemaElement{AttributeName: aws.String(s.SortKey), KeyType: types.KeyTypeRange})
	}
	return &dynamodb.CreateTableInput{
		TableName:            aws.String(s.Name),
		AttributeDefinitions: attrs,
		KeySchema:            keys,
		BillingMode:          types.BillingModePayPerRequest,
	}
}
