package platforms

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"streamtoshelf/blueprint"
	"streamtoshelf/logger"
	"streamtoshelf/services/spotify"
	"streamtoshelf/util"
)

// ArtistAutocomplete returns artist suggestions for a partial query. The
// whole endpoint is best-effort: short queries and timeouts produce an empty
// list rather than an error.
func (p *Platforms) ArtistAutocomplete(ctx *fiber.Ctx) error {
	query := util.SanitizeText(ctx.Query("query"))
	if len([]rune(query)) < 2 {
		return util.SuccessResponse(ctx, http.StatusOK, []blueprint.ArtistSuggestion{})
	}

	requestID, _ := ctx.Locals("requestID").(string)
	reqLogger := logger.NewZapSentryLogger(&blueprint.LoggerOptions{
		RequestID: requestID,
		Platform:  spotify.IDENTIFIER,
		Entity:    query,
	})

	suggestions, err := p.Spotify.SearchArtists(ctx.UserContext(), query)
	if err != nil {
		switch {
		case errors.Is(err, blueprint.ECANCELLED):
			return nil
		case errors.Is(err, blueprint.ETIMEOUT):
			return util.SuccessResponse(ctx, http.StatusOK, []blueprint.ArtistSuggestion{})
		case errors.Is(err, blueprint.EAUTHFAILED):
			reqLogger.Error("[platforms][ArtistAutocomplete] error - could not authenticate with metadata provider", zap.Error(err))
			return util.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to authenticate with metadata provider")
		}
		reqLogger.Error("[platforms][ArtistAutocomplete] error - artist search failed", zap.Error(err))
		return util.ErrorResponse(ctx, http.StatusInternalServerError, "artist search failed")
	}

	return util.SuccessResponse(ctx, http.StatusOK, suggestions)
}
