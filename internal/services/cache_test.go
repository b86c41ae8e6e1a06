package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/AnshRaj112/threads-backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPageCache_NilClientIsNoop(t *testing.T) {
	c := NewPageCache(nil, 0, nil)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "/", models.PostsPage{}))
	var out models.PostsPage
	hit, err := c.Get(ctx, "/", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, c.Revalidate(ctx, "/", "/onboarding"))
}

func TestRevalidationPaths(t *testing.T) {
	assert.Equal(t, []string{"/profile/edit", "/profile/ext_a"}, revalidationPaths("/profile/edit", "ext_a"))
	assert.Equal(t, []string{"/onboarding", "/", "/profile/ext_a"}, revalidationPaths("/onboarding", "ext_a"))
	assert.Equal(t, []string{"/onboarding", "/", "/profile/ext_a"}, revalidationPaths("", "ext_a"))
}

// startRedis runs redis:7 in a container for the duration of the test.
func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("set GO_TEST_INTEGRATION to run against a real Redis")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rc, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Terminate(context.Background()) })

	host, err := rc.Host(ctx)
	require.NoError(t, err)
	port, err := rc.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestPageCache_SetGetRevalidate(t *testing.T) {
	rdb := startRedis(t)
	c := NewPageCache(rdb, time.Minute, nil)
	ctx := context.Background()

	profile := models.UserProfile{ExternalID: "ext_a", Name: "Alice", Onboarded: true}
	require.NoError(t, c.Set(ctx, ProfilePath("ext_a"), profile))

	var got models.UserProfile
	hit, err := c.Get(ctx, ProfilePath("ext_a"), &got)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "Alice", got.Name)

	ttl, err := rdb.TTL(ctx, PageKeyPrefix+ProfilePath("ext_a")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Revalidate(ctx, "/", ProfilePath("ext_a")))
	hit, err = c.Get(ctx, ProfilePath("ext_a"), &got)
	require.NoError(t, err)
	assert.False(t, hit)
}
