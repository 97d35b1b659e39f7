package util

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"streamtoshelf/blueprint"
)

// MaxQueryTextLength is the hard cap applied to free-text query parameters.
const MaxQueryTextLength = 100

// SuccessResponse sends back a success http response to the client.
func SuccessResponse(ctx *fiber.Ctx, statusCode int, data interface{}) error {
	return ctx.Status(statusCode).JSON(fiber.Map{
		"message": "Request Ok",
		"status":  statusCode,
		"data":    data,
	})
}

// ErrorResponse sends back an error http response to the client.
func ErrorResponse(ctx *fiber.Ctx, statusCode int, err interface{}) error {
	return ctx.Status(statusCode).JSON(fiber.Map{
		"message": "Error with response",
		"status":  statusCode,
		"error":   err,
	})
}

// Find returns e if it is present in s, otherwise the empty string.
func Find(s []string, e string) string {
	for _, a := range s {
		if a == e {
			return a
		}
	}
	return ""
}

// NormalizeString lowercases, trims and strips diacritics from a string so
// that cache keys and artist comparisons survive accent variants.
func NormalizeString(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, s)
	if err != nil {
		normalized = s
	}
	return strings.ToLower(strings.TrimSpace(normalized))
}

// SanitizeText trims a free-text query parameter and truncates it to
// MaxQueryTextLength characters.
func SanitizeText(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) > MaxQueryTextLength {
		s = strings.TrimSpace(string(r[:MaxQueryTextLength]))
	}
	return s
}

// ClassifyRequestError maps a failed outbound call onto the terminal error
// set. callCtx must be the per-call context carrying the time budget: an
// expired budget reports ETIMEOUT, a cancelled parent reports ECANCELLED and
// everything else is an upstream failure.
func ClassifyRequestError(callCtx context.Context, err error) error {
	switch {
	case errors.Is(callCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded):
		return blueprint.ETIMEOUT
	case errors.Is(callCtx.Err(), context.Canceled) || errors.Is(err, context.Canceled):
		return blueprint.ECANCELLED
	default:
		return blueprint.EUPSTREAMFAILED
	}
}
