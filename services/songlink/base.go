package songlink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/vicanso/go-axios"
	"go.uber.org/zap"

	"streamtoshelf/blueprint"
	"streamtoshelf/util"
)

const IDENTIFIER = "songlink"

const DefaultBaseURL = "https://api.song.link"

const resolvePath = "/v1-alpha.1/links"

const (
	resolveTimeout = 10 * time.Second
	cacheTTL       = 15 * time.Minute
)

// Service is the cross-platform link resolution client.
type Service struct {
	RedisClient *redis.Client
	Logger      *zap.Logger
	instance    *axios.Instance
}

// NewService creates a new songlink service. An empty baseURL means the
// public API; tests pass their own.
func NewService(baseURL string, redisClient *redis.Client, logger *zap.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Service{
		RedisClient: redisClient,
		Logger:      logger,
		instance: axios.NewInstance(&axios.InstanceConfig{
			BaseURL: baseURL,
			Timeout: resolveTimeout,
		}),
	}
}

// Resolve fetches the per-platform link map for one release URL. A non-2xx
// answer or an unreachable resolver is not an error: the caller gets nil and
// carries on with synthesized links only. Timeouts and cancellation do come
// back as errors so the handler can answer accordingly.
// cacheKey keys on the raw URL: release URLs carry case-sensitive IDs, so
// case-folding them would collide distinct releases onto one entry.
func cacheKey(region, pageURL string) string {
	return fmt.Sprintf("%s:%s:%s", IDENTIFIER, region, strings.TrimSpace(pageURL))
}

func (s *Service) Resolve(ctx context.Context, pageURL, region string) (*blueprint.SonglinkResponse, error) {
	key := cacheKey(region, pageURL)
	if s.RedisClient != nil {
		cached, err := s.RedisClient.Get(ctx, key).Result()
		if err != nil && err != redis.Nil {
			s.Logger.Warn("[services][songlink][Resolve] warning - could not read cached resolution", zap.Error(err))
		}
		if err == nil {
			resolved := &blueprint.SonglinkResponse{}
			if jErr := json.Unmarshal([]byte(cached), resolved); jErr == nil {
				s.Logger.Info("[services][songlink][Resolve] resolution served from cache", zap.String("cached_key", key))
				return resolved, nil
			}
		}
	}

	tctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("url", pageURL)
	query.Set("userCountry", region)

	response, err := s.instance.Request(&axios.Config{
		URL:     resolvePath,
		Method:  "GET",
		Query:   query,
		Context: tctx,
	})
	if err != nil {
		cerr := util.ClassifyRequestError(tctx, err)
		if errors.Is(cerr, blueprint.ETIMEOUT) || errors.Is(cerr, blueprint.ECANCELLED) {
			return nil, cerr
		}
		s.Logger.Error("[services][songlink][Resolve] error - could not reach resolver", zap.Error(err))
		return nil, nil
	}

	if response.Status < 200 || response.Status >= 300 {
		s.Logger.Warn("[services][songlink][Resolve] warning - resolver returned non-2xx", zap.Int("status", response.Status))
		return nil, nil
	}

	resolved := &blueprint.SonglinkResponse{}
	if err := json.Unmarshal(response.Data, resolved); err != nil {
		s.Logger.Error("[services][songlink][Resolve] error - could not deserialize resolver response", zap.Error(err))
		return nil, nil
	}

	if s.RedisClient != nil {
		serialized, jErr := json.Marshal(resolved)
		if jErr == nil {
			_ = s.RedisClient.Set(ctx, key, string(serialized), cacheTTL).Err()
		}
	}

	return resolved, nil
}
