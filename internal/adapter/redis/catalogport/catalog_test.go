package catalogport

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/pagetest.net/internal/adapter/logging"
	"gitlab.com/pagetest.net/internal/domain"
)

func newCatalog(t *testing.T) (*ArtifactCatalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewArtifactCatalog(client, "pagetest:", logging.NewNopLogger()), mr
}

func TestArtifactCatalog_RecordAndGet(t *testing.T) {
	c, mr := newCatalog(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 123, time.UTC)

	require.NoError(t, c.Record(ctx, &domain.TestArtifact{
		Key:       "https___example_com_abc",
		URL:       "https://example.com",
		Path:      "/srv/tests/https___example_com_abc.spec.js",
		CreatedAt: created,
	}))

	got, err := c.Get(ctx, "https___example_com_abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://example.com", got.URL)
	assert.Equal(t, "/srv/tests/https___example_com_abc.spec.js", got.Path)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Empty(t, got.Script)

	assert.True(t, mr.Exists("pagetest:artifact:https___example_com_abc"))
	members, err := mr.ZMembers("pagetest:artifacts")
	require.NoError(t, err)
	assert.Equal(t, []string{"https___example_com_abc"}, members)
}

func TestArtifactCatalog_GetUnknown(t *testing.T) {
	c, _ := newCatalog(t)

	got, err := c.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestArtifactCatalog_ListNewestFirst(t *testing.T) {
	c, _ := newCatalog(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, key := range []string{"a", "b", "c"} {
		require.NoError(t, c.Record(ctx, &domain.TestArtifact{
			Key:       key,
			URL:       "https://" + key + ".test",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	list, err := c.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].Key)
	assert.Equal(t, "b", list[1].Key)

	list, err = c.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestArtifactCatalog_RedisDown(t *testing.T) {
	c, mr := newCatalog(t)
	mr.Close()

	err := c.Record(context.Background(), &domain.TestArtifact{Key: "k", CreatedAt: time.Now()})
	assert.Error(t, err)
}
