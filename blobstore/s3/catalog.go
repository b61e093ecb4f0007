package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/clusterkit/blobstore"
)

// LatestName is the virtual blob name that Catalog resolves to the most
// recently committed snapshot.
const LatestName = "LATEST"

// ErrConcurrentModification is returned when another writer committed the
// same version first.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// DDBClient is the subset of the DynamoDB API used by Catalog.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Catalog is a blobstore.BlobStore that records every Put as a new version
// in DynamoDB. Open(LatestName) returns the newest committed blob.
//
// Table schema:
//   - Partition key: base_uri (string)
//   - Sort key: version (number)
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name clusterkit-models \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type Catalog struct {
	store     blobstore.BlobStore
	ddb       DDBClient
	tableName string
	baseURI   string
}

var _ blobstore.BlobStore = (*Catalog)(nil)

// NewCatalog wraps store. baseURI namespaces the versions, e.g.
// "s3://bucket/prefix".
func NewCatalog(store blobstore.BlobStore, ddb DDBClient, tableName, baseURI string) *Catalog {
	return &Catalog{
		store:     store,
		ddb:       ddb,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// Open opens a blob. LatestName resolves through DynamoDB.
func (c *Catalog) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if name == LatestName {
		version, latest, err := c.Latest(ctx)
		if err != nil {
			return nil, err
		}
		if version == 0 {
			return nil, blobstore.ErrNotFound
		}
		name = latest
	}
	return c.store.Open(ctx, name)
}

// Put writes the blob and then commits it as the next version.
func (c *Catalog) Put(ctx context.Context, name string, data []byte) error {
	if name == LatestName {
		return fmt.Errorf("catalog: %q is reserved", LatestName)
	}
	if err := c.store.Put(ctx, name, data); err != nil {
		return err
	}
	_, err := c.Commit(ctx, name)
	return err
}

// Delete removes a blob. Version records are kept.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	return c.store.Delete(ctx, name)
}

// List lists blobs with prefix.
func (c *Catalog) List(ctx context.Context, prefix string) ([]string, error) {
	return c.store.List(ctx, prefix)
}

// Latest returns the newest committed version and blob name. Version 0
// means nothing was committed yet.
func (c *Catalog) Latest(ctx context.Context) (uint64, string, error) {
	resp, err := c.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: c.baseURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to query DynamoDB: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in DynamoDB")
	}
	nameAttr, ok := item["blob_name"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid blob_name attribute in DynamoDB")
	}
	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}
	return version, nameAttr.Value, nil
}

// Commit records name as the next version with a conditional write.
func (c *Catalog) Commit(ctx context.Context, name string) (uint64, error) {
	current, _, err := c.Latest(ctx)
	if err != nil {
		return 0, err
	}
	next := current + 1

	_, err = c.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri":  &types.AttributeValueMemberS{Value: c.baseURI},
			"version":   &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"blob_name": &types.AttributeValueMemberS{Value: name},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentModification
		}
		return 0, fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}
	return next, nil
}
