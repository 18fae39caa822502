// Package zone resolves user-supplied location hints (postal codes or map
// screenshots) into geographic bounding boxes.
package zone

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zonescout/zonescout/internal/llmjson"
	"github.com/zonescout/zonescout/internal/model"
	"github.com/zonescout/zonescout/internal/resilience"
	"github.com/zonescout/zonescout/pkg/gemini"
	"github.com/zonescout/zonescout/pkg/geocode"
)

// imagePrompt instructs the vision model to read a map screenshot.
const imagePrompt = `Analyze this map image.
1. Identify the geographic area based on visible street names and landmarks.
2. Estimate the precise bounding box (north, south, east, west coordinates).
3. Return ONLY a JSON object: {"north": float, "south": float, "east": float, "west": float}.`

// ResolutionError means the zone could not be determined. Fatal to a run.
type ResolutionError struct {
	Reason string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("zone: cannot resolve: %s", e.Reason)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// IsResolutionError reports whether the error chain contains a ResolutionError.
func IsResolutionError(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}

// Resolver converts location hints into validated bounding boxes. Results
// are memoized per process: repeated identical inputs are deterministic
// within a run, so the second lookup skips the provider entirely.
type Resolver struct {
	geocoder geocode.Client
	vision   gemini.Client

	mu    sync.Mutex
	cache map[string]model.BoundingBox
}

// NewResolver creates a Resolver. The vision client may be nil when only the
// text path is used.
func NewResolver(geocoder geocode.Client, vision gemini.Client) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		vision:   vision,
		cache:    make(map[string]model.BoundingBox),
	}
}

// FromText resolves a postal code or free-text hint via the geocoding
// provider. The provider owns the single country-qualified retry on
// ZERO_RESULTS; transient transport failures are retried here.
func (r *Resolver) FromText(ctx context.Context, hint string) (model.BoundingBox, error) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return model.BoundingBox{}, &ResolutionError{Reason: "empty location hint"}
	}

	key := cacheKey("text", []byte(strings.ToLower(hint)))
	if box, ok := r.cached(key); ok {
		return box, nil
	}

	cfg := resilience.RetryConfig{OnRetry: resilience.RetryLogger("geocode", "viewport")}
	box, err := resilience.DoVal(ctx, cfg, func(ctx context.Context) (model.BoundingBox, error) {
		return r.geocoder.Viewport(ctx, hint)
	})
	if err != nil {
		var statusErr *geocode.StatusError
		if errors.As(err, &statusErr) {
			return model.BoundingBox{}, &ResolutionError{Reason: statusErr.Status, Err: err}
		}
		return model.BoundingBox{}, &ResolutionError{Reason: err.Error(), Err: err}
	}

	if err := box.Validate(); err != nil {
		return model.BoundingBox{}, &ResolutionError{Reason: "provider returned degenerate viewport", Err: err}
	}

	r.store(key, box)
	zap.L().Info("zone resolved from text", zap.String("hint", hint))
	return box, nil
}

// FromImage resolves a map screenshot via the vision model, which replies
// with a four-field JSON bounding box possibly wrapped in markdown fences.
func (r *Resolver) FromImage(ctx context.Context, image []byte, mime string) (model.BoundingBox, error) {
	if len(image) == 0 {
		return model.BoundingBox{}, &ResolutionError{Reason: "empty image"}
	}
	if r.vision == nil {
		return model.BoundingBox{}, &ResolutionError{Reason: "vision model not configured"}
	}

	key := cacheKey("image", image)
	if box, ok := r.cached(key); ok {
		return box, nil
	}

	raw, err := r.vision.GenerateFromImage(ctx, imagePrompt, image, mime)
	if err != nil {
		return model.BoundingBox{}, &ResolutionError{Reason: err.Error(), Err: err}
	}

	var box model.BoundingBox
	if err := json.Unmarshal([]byte(llmjson.Clean(raw)), &box); err != nil {
		return model.BoundingBox{}, &ResolutionError{Reason: "unparsable model reply", Err: err}
	}

	if err := box.Validate(); err != nil {
		return model.BoundingBox{}, &ResolutionError{Reason: "model returned degenerate box", Err: err}
	}

	r.store(key, box)
	zap.L().Info("zone resolved from image", zap.Int("image_bytes", len(image)))
	return box, nil
}

func (r *Resolver) cached(key string) (model.BoundingBox, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	box, ok := r.cache[key]
	return box, ok
}

func (r *Resolver) store(key string, box model.BoundingBox) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = box
}

// cacheKey returns SHA-256 hex of the namespaced input.
func cacheKey(kind string, input []byte) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write(input)
	return fmt.Sprintf("%x", h.Sum(nil))
}
