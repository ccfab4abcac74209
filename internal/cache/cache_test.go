package cache

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestMemory(ttl time.Duration, maxEntries int) (*Memory, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemory(ttl, maxEntries)
	m.now = clock.now
	return m, clock
}

func TestMemory_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemory(30*time.Second, 0)

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(got))

	clock.advance(29 * time.Second)
	_, ok, _ = m.Get(ctx, "k")
	assert.True(t, ok)

	clock.advance(time.Second)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(time.Minute, 0)

	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'x'

	got, ok, _ := m.Get(ctx, "k")
	require.True(t, ok)
	got[1] = 'y'

	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemory_EvictsExpiredThenOldest(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemory(time.Minute, 2)

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	clock.advance(10 * time.Second)
	require.NoError(t, m.Set(ctx, "b", []byte("2")))
	clock.advance(10 * time.Second)
	require.NoError(t, m.Set(ctx, "c", []byte("3")))

	assert.Equal(t, 2, m.Len())
	_, ok, _ := m.Get(ctx, "a")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok, _ = m.Get(ctx, "b")
	assert.True(t, ok)

	// Both remaining entries expire; the next insert clears them instead of
	// evicting by age alone.
	clock.advance(2 * time.Minute)
	require.NoError(t, m.Set(ctx, "d", []byte("4")))
	assert.Equal(t, 1, m.Len())
}

func TestMemory_OverwriteDoesNotEvict(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(time.Minute, 2)

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "b", []byte("2")))
	require.NoError(t, m.Set(ctx, "a", []byte("3")))

	assert.Equal(t, 2, m.Len())
	got, ok, _ := m.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, "3", string(got))
}

func TestNew_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	disabled, err := New(ctx, Options{TTL: 0})
	require.NoError(t, err)
	assert.Nil(t, disabled)

	mem, err := New(ctx, Options{TTL: time.Second, MaxEntries: 4})
	require.NoError(t, err)
	require.IsType(t, &Memory{}, mem)
	assert.Equal(t, 4, mem.(*Memory).maxEntries)

	_, err = New(ctx, Options{TTL: time.Second, RedisURL: "memcached://localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func TestNew_UnreachableRedis(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := New(ctx, Options{TTL: time.Second, RedisURL: "redis://127.0.0.1:1/0?max_retries=-1&dial_timeout=200ms"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect redis")
}

func TestRedis_WrapsClientErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedis(client, time.Second)
	defer r.Close()

	ctx := context.Background()
	_, ok, err := r.Get(ctx, Key("https://shop.example.com/wp-json/wps/v1/shop"))
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "redis get")

	err = r.Set(ctx, "k", []byte("v"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis set")
}

func TestKey(t *testing.T) {
	a := Key("https://shop.example.com/wp-json/wps/v1/shop?q=shirt")
	b := Key("https://shop.example.com/wp-json/wps/v1/shop?q=shirts")

	assert.True(t, strings.HasPrefix(a, "shelf:shop:"))
	assert.Len(t, a, len("shelf:shop:")+64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Key(fmt.Sprintf("https://shop.example.com/wp-json/wps/v1/shop?q=%s", "shirt")))
}
