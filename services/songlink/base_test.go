package songlink_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"streamtoshelf/blueprint"
	"streamtoshelf/services/songlink"
)

const resolverFixture = `{
	"entityUniqueId": "ITUNES_ALBUM::123",
	"userCountry": "US",
	"pageUrl": "https://album.link/us/i/123",
	"linksByPlatform": {
		"itunes": {"url": "https://music.apple.com/us/album/ok-computer/123", "entityUniqueId": "ITUNES_ALBUM::123"},
		"spotify": {"url": "https://open.spotify.com/album/6dVIqQ8qmQ5GBnJ9shOYGE", "entityUniqueId": "SPOTIFY_ALBUM::abc"}
	},
	"entitiesByUniqueId": {
		"ITUNES_ALBUM::123": {"id": "123", "type": "album", "title": "OK Computer", "artistName": "Radiohead", "apiProvider": "itunes", "platforms": ["itunes"]}
	}
}`

func TestResolveParsesResolverPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1-alpha.1/links", r.URL.Path)
		assert.Equal(t, "https://open.spotify.com/album/6dVIqQ8qmQ5GBnJ9shOYGE", r.URL.Query().Get("url"))
		assert.Equal(t, "US", r.URL.Query().Get("userCountry"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(resolverFixture))
	}))
	defer server.Close()

	service := songlink.NewService(server.URL, nil, zap.NewNop())

	resolved, err := service.Resolve(context.Background(), "https://open.spotify.com/album/6dVIqQ8qmQ5GBnJ9shOYGE", "US")
	require.NoError(t, err)
	require.NotNil(t, resolved)

	assert.Equal(t, "ITUNES_ALBUM::123", resolved.EntityUniqueID)
	assert.Len(t, resolved.LinksByPlatform, 2)
	assert.Equal(t, "https://music.apple.com/us/album/ok-computer/123", resolved.LinksByPlatform["itunes"].URL)
	assert.Equal(t, "Radiohead", resolved.EntitiesByUniqueID["ITUNES_ALBUM::123"].ArtistName)
}

func TestResolveNonOKIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":400,"code":"could not resolve entity"}`))
	}))
	defer server.Close()

	service := songlink.NewService(server.URL, nil, zap.NewNop())

	resolved, err := service.Resolve(context.Background(), "https://example.com/not-a-release", "US")
	assert.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestResolveMalformedPayloadIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>definitely not json`))
	}))
	defer server.Close()

	service := songlink.NewService(server.URL, nil, zap.NewNop())

	resolved, err := service.Resolve(context.Background(), "https://open.spotify.com/album/abc", "US")
	assert.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestResolveTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(resolverFixture))
	}))
	defer server.Close()

	service := songlink.NewService(server.URL, nil, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	resolved, err := service.Resolve(ctx, "https://open.spotify.com/album/abc", "US")
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, blueprint.ETIMEOUT)
}

func TestResolveCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(resolverFixture))
	}))
	defer server.Close()

	service := songlink.NewService(server.URL, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	resolved, err := service.Resolve(ctx, "https://open.spotify.com/album/abc", "US")
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, blueprint.ECANCELLED)
}

func TestResolveUnreachableResolver(t *testing.T) {
	service := songlink.NewService("http://127.0.0.1:1", nil, zap.NewNop())

	resolved, err := service.Resolve(context.Background(), "https://open.spotify.com/album/abc", "US")
	assert.NoError(t, err)
	assert.Nil(t, resolved)
}
