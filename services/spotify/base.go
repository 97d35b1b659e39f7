package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nleeper/goment"
	"github.com/samber/lo"
	spotify "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"streamtoshelf/blueprint"
	"streamtoshelf/util"
)

const IDENTIFIER = "spotify"

const (
	searchTimeout       = 10 * time.Second
	autocompleteTimeout = 5 * time.Second
	cacheTTL            = 15 * time.Minute

	albumSearchLimit  = 20
	artistSearchLimit = 8
)

// Service is the metadata provider client. It owns no credentials of its
// own; the injected TokenStore does the client-credentials dance.
type Service struct {
	Tokens      *TokenStore
	RedisClient *redis.Client
	Logger      *zap.Logger
}

// NewService creates a new spotify service
func NewService(tokens *TokenStore, redisClient *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Tokens:      tokens,
		RedisClient: redisClient,
		Logger:      logger,
	}
}

func (s *Service) newClient(ctx context.Context, accessToken string) *spotify.Client {
	httpClient := spotifyauth.New(
		spotifyauth.WithClientID(s.Tokens.ClientID),
		spotifyauth.WithClientSecret(s.Tokens.ClientSecret),
	).Client(ctx, &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	return spotify.New(httpClient)
}

// IsPlausibleArtistMatch reports whether any credited artist name is a
// substring of the queried artist or vice versa, ignoring case and accents.
// This is a deliberately loose heuristic to throw away the provider's
// fuzzy-search noise: it over-accepts on substring collisions ("Muse" vs
// "Musetta") and under-accepts on renamed variants. Both are accepted
// trade-offs, not bugs.
func IsPlausibleArtistMatch(queried string, credited []string) bool {
	q := util.NormalizeString(queried)
	if q == "" {
		return false
	}
	return lo.SomeBy(credited, func(name string) bool {
		n := util.NormalizeString(name)
		return n != "" && (strings.Contains(n, q) || strings.Contains(q, n))
	})
}

// albumsCacheKey folds case and accents: "Sigur Rós" and "sigur ros" are the
// same search.
func albumsCacheKey(artist, album string) string {
	return fmt.Sprintf("%s:albums:%s:%s", IDENTIFIER, util.NormalizeString(artist), util.NormalizeString(album))
}

// SearchAlbums runs a field-scoped album search and keeps only candidates
// whose credited artists plausibly match the queried artist.
func (s *Service) SearchAlbums(ctx context.Context, artist, album string) ([]blueprint.AlbumSearchResult, error) {
	key := albumsCacheKey(artist, album)
	if s.RedisClient != nil {
		cached, cErr := s.RedisClient.Get(ctx, key).Result()
		if cErr != nil && cErr != redis.Nil {
			s.Logger.Warn("[services][spotify][SearchAlbums] warning - could not read cached results", zap.Error(cErr))
		}
		if cErr == nil {
			results := []blueprint.AlbumSearchResult{}
			if jErr := json.Unmarshal([]byte(cached), &results); jErr == nil {
				s.Logger.Info("[services][spotify][SearchAlbums] results served from cache", zap.String("cached_key", key))
				return results, nil
			}
		}
	}

	token, err := s.Tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	tctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	query := fmt.Sprintf("artist:%s", artist)
	if album != "" {
		query = fmt.Sprintf("artist:%s album:%s", artist, album)
	}

	client := s.newClient(tctx, token)
	results, err := client.Search(tctx, query, spotify.SearchTypeAlbum, spotify.Limit(albumSearchLimit))
	if err != nil {
		s.Logger.Error("[services][spotify][SearchAlbums] error - could not search for albums", zap.Error(err))
		if cerr := util.ClassifyRequestError(tctx, err); cerr != blueprint.EUPSTREAMFAILED {
			return nil, cerr
		}
		// keep the provider error so the caller can read the upstream status
		return nil, err
	}

	if results.Albums == nil {
		return []blueprint.AlbumSearchResult{}, nil
	}

	matched := lo.Filter(results.Albums.Albums, func(item spotify.SimpleAlbum, _ int) bool {
		credited := lo.Map(item.Artists, func(a spotify.SimpleArtist, _ int) string { return a.Name })
		return IsPlausibleArtistMatch(artist, credited)
	})

	out := make([]blueprint.AlbumSearchResult, 0, len(matched))
	for _, item := range matched {
		out = append(out, toAlbumResult(item))
	}

	if s.RedisClient != nil {
		serialized, jErr := json.Marshal(out)
		if jErr == nil {
			_ = s.RedisClient.Set(ctx, key, string(serialized), cacheTTL).Err()
		}
	}
	return out, nil
}

// SearchArtists returns autocomplete candidates for a partial artist name.
func (s *Service) SearchArtists(ctx context.Context, query string) ([]blueprint.ArtistSuggestion, error) {
	token, err := s.Tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	tctx, cancel := context.WithTimeout(ctx, autocompleteTimeout)
	defer cancel()

	client := s.newClient(tctx, token)
	results, err := client.Search(tctx, query, spotify.SearchTypeArtist, spotify.Limit(artistSearchLimit))
	if err != nil {
		s.Logger.Error("[services][spotify][SearchArtists] error - could not search for artists", zap.Error(err))
		if cerr := util.ClassifyRequestError(tctx, err); cerr != blueprint.EUPSTREAMFAILED {
			return nil, cerr
		}
		return nil, err
	}

	if results.Artists == nil {
		return []blueprint.ArtistSuggestion{}, nil
	}

	suggestions := make([]blueprint.ArtistSuggestion, 0, len(results.Artists.Artists))
	for _, item := range results.Artists.Artists {
		suggestion := blueprint.ArtistSuggestion{
			ID:   item.ID.String(),
			Name: item.Name,
		}
		if len(item.Images) > 0 {
			// the last image is the smallest, which is all a dropdown needs
			suggestion.ImageURL = item.Images[len(item.Images)-1].URL
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions, nil
}

func toAlbumResult(item spotify.SimpleAlbum) blueprint.AlbumSearchResult {
	result := blueprint.AlbumSearchResult{
		ID:        item.ID.String(),
		Title:     item.Name,
		AlbumType: item.AlbumType,
		Released:  formatReleaseDate(item.ReleaseDate),
		URL:       item.ExternalURLs["spotify"],
	}
	result.Artists = lo.Map(item.Artists, func(a spotify.SimpleArtist, _ int) string { return a.Name })
	if len(item.Images) > 0 {
		result.Cover = item.Images[0].URL
	}
	return result
}

func formatReleaseDate(raw string) string {
	if raw == "" {
		return ""
	}
	g, err := goment.New(raw)
	if err != nil {
		// year-only precision and similar partial dates stay as-is
		return raw
	}
	return g.Format("MMMM D, YYYY")
}
