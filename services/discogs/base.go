package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/vicanso/go-axios"
	"go.uber.org/zap"

	"streamtoshelf/blueprint"
	"streamtoshelf/util"
)

const IDENTIFIER = "discogs"

const (
	DefaultBaseURL = "https://api.discogs.com"
	detailBaseURL  = "https://www.discogs.com"
)

const (
	searchTimeout = 10 * time.Second
	cacheTTL      = 15 * time.Minute
)

// Service is the physical-media catalog client.
type Service struct {
	Token       string
	RedisClient *redis.Client
	Logger      *zap.Logger
	instance    *axios.Instance
}

// NewService creates a new discogs service. The token is a personal access
// token; without one every lookup is skipped.
func NewService(baseURL, token string, redisClient *redis.Client, logger *zap.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Service{
		Token:       token,
		RedisClient: redisClient,
		Logger:      logger,
		instance: axios.NewInstance(&axios.InstanceConfig{
			BaseURL: baseURL,
			Timeout: searchTimeout,
			Headers: map[string][]string{
				"Authorization": {"Discogs token=" + token},
				"User-Agent":    {"StreamToShelf/1.0"},
			},
		}),
	}
}

type searchResponse struct {
	Results []struct {
		URI string `json:"uri"`
	} `json:"results"`
}

// SearchRelease returns the catalog detail URL of the closest matching
// release. A search that comes back empty reports ENORESULT; an unreachable
// catalog yields the empty string with no error, since the link is
// best-effort enrichment. Cancellation surfaces as ECANCELLED.
func (s *Service) SearchRelease(ctx context.Context, artist, album string) (string, error) {
	if s.Token == "" {
		s.Logger.Warn("[services][discogs][SearchRelease] warning - catalog token not configured, skipping lookup")
		return "", nil
	}

	cacheKey := fmt.Sprintf("%s:%s:%s", IDENTIFIER, util.NormalizeString(artist), util.NormalizeString(album))
	if s.RedisClient != nil {
		cached, err := s.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			s.Logger.Info("[services][discogs][SearchRelease] release served from cache", zap.String("cached_key", cacheKey))
			return cached, nil
		}
		if err != redis.Nil {
			s.Logger.Warn("[services][discogs][SearchRelease] warning - could not read cached release", zap.Error(err))
		}
	}

	tctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("q", artist+" "+album)
	query.Set("type", "release")
	query.Set("artist", artist)
	query.Set("per_page", "5")

	response, err := s.instance.Request(&axios.Config{
		URL:     "/database/search",
		Method:  "GET",
		Query:   query,
		Context: tctx,
	})
	if err != nil {
		cerr := util.ClassifyRequestError(tctx, err)
		if errors.Is(cerr, blueprint.ECANCELLED) {
			return "", cerr
		}
		// timeouts included: the catalog link is best-effort enrichment
		s.Logger.Error("[services][discogs][SearchRelease] error - could not reach catalog", zap.Error(err))
		return "", nil
	}

	if response.Status < 200 || response.Status >= 300 {
		s.Logger.Warn("[services][discogs][SearchRelease] warning - catalog returned non-2xx", zap.Int("status", response.Status))
		return "", nil
	}

	payload := searchResponse{}
	if err := json.Unmarshal(response.Data, &payload); err != nil {
		s.Logger.Error("[services][discogs][SearchRelease] error - could not deserialize catalog response", zap.Error(err))
		return "", nil
	}

	if len(payload.Results) == 0 {
		return "", blueprint.ENORESULT
	}

	detailURL := detailBaseURL + payload.Results[0].URI
	if s.RedisClient != nil {
		_ = s.RedisClient.Set(ctx, cacheKey, detailURL, cacheTTL).Err()
	}
	return detailURL, nil
}
