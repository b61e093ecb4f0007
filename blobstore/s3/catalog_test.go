package s3

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/clusterkit/blobstore"
)

// mockDDBClient is an in-memory DynamoDB table keyed by base_uri and version.
type mockDDBClient struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{items: make(map[string]map[string]types.AttributeValue)}
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	uri := params.Item["base_uri"].(*types.AttributeValueMemberS).Value
	version := params.Item["version"].(*types.AttributeValueMemberN).Value
	key := uri + ":" + version

	if aws.ToString(params.ConditionExpression) == "attribute_not_exists(version)" {
		if _, exists := m.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}
	m.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	uri := params.ExpressionAttributeValues[":uri"].(*types.AttributeValueMemberS).Value

	var items []map[string]types.AttributeValue
	for _, item := range m.items {
		if item["base_uri"].(*types.AttributeValueMemberS).Value == uri {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		vi, _ := strconv.ParseUint(items[i]["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		vj, _ := strconv.ParseUint(items[j]["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		return vi > vj
	})
	if params.Limit != nil && len(items) > int(*params.Limit) {
		items = items[:*params.Limit]
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

func TestCatalog_NotFoundBeforeCommit(t *testing.T) {
	catalog := NewCatalog(blobstore.NewMemoryStore(), newMockDDBClient(), "models", "s3://bucket/a")

	_, err := catalog.Open(context.Background(), LatestName)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestCatalog_LatestFollowsCommits(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(blobstore.NewMemoryStore(), newMockDDBClient(), "models", "s3://bucket/a")

	require.NoError(t, catalog.Put(ctx, "run-1.cks", []byte("one")))
	require.NoError(t, catalog.Put(ctx, "run-2.cks", []byte("two")))

	version, name, err := catalog.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
	assert.Equal(t, "run-2.cks", name)

	data, err := blobstore.Get(ctx, catalog, LatestName)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)

	// Older versions stay addressable by name.
	data, err = blobstore.Get(ctx, catalog, "run-1.cks")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)

	names, err := catalog.List(ctx, "run-")
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1.cks", "run-2.cks"}, names)

	assert.Error(t, catalog.Put(ctx, LatestName, []byte("x")))
}

func TestCatalog_ConcurrentCommits(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(blobstore.NewMemoryStore(), newMockDDBClient(), "models", "s3://bucket/a")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		committed []uint64
		conflicts int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := catalog.Commit(ctx, "run-"+strconv.Itoa(i)+".cks")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, ErrConcurrentModification)
				conflicts++
				return
			}
			committed = append(committed, v)
		}(i)
	}
	wg.Wait()

	require.NotEmpty(t, committed)
	assert.Equal(t, 8, len(committed)+conflicts)

	seen := make(map[uint64]bool)
	for _, v := range committed {
		assert.False(t, seen[v], "version %d committed twice", v)
		seen[v] = true
	}
}

func TestCatalog_IsolatedNamespaces(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	store := blobstore.NewMemoryStore()
	a := NewCatalog(store, ddb, "models", "s3://bucket/a")
	b := NewCatalog(store, ddb, "models", "s3://bucket/b")

	require.NoError(t, a.Put(ctx, "a.cks", []byte("a")))

	_, err := b.Open(ctx, LatestName)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	version, _, err := a.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
}
