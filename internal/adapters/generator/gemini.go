package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
)

const DefaultModel = "gemini-2.5-flash-image-preview"

var responseModalities = []string{"IMAGE", "TEXT"}

type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Gemini provides a wrapper for the Gemini image model. It holds no per-request state and can be
// shared between sessions.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, opts GeminiOptions) (*Gemini, error) {
	if opts.APIKey == "" {
		return nil, domain.ErrMissingCredential
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Transform sends the image together with the instruction and returns the first image part of the
// response. Without an image the safety ratings decide between a blocked and an unexpected response.
func (g *Gemini) Transform(ctx context.Context, payload domain.ImagePayload, instruction string) (domain.ImagePayload, error) {
	data, err := payload.Bytes()
	if err != nil {
		return domain.ImagePayload{}, &domain.TransformFailedError{Err: fmt.Errorf("invalid image payload: %w", err)}
	}

	l := log.With().
		Str("model", g.model).
		Str("mediaType", payload.MediaType).
		Int("imageBytes", len(data)).
		Logger()

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: payload.MediaType, Data: data}},
				{Text: instruction},
			},
		},
	}

	start := time.Now()
	l.Debug().Msg("sending gemini request")

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseModalities: responseModalities,
	})
	if err != nil {
		l.Error().Err(err).Msg("gemini request failed")
		return domain.ImagePayload{}, &domain.TransformFailedError{Err: err}
	}

	result, err := extractImage(resp)
	if err != nil {
		l.Warn().Err(err).Dur("duration", time.Since(start)).Msg("gemini returned no image")
		return domain.ImagePayload{}, err
	}

	l.Debug().
		Str("outputMediaType", result.MediaType).
		Dur("duration", time.Since(start)).
		Msg("gemini response")

	return result, nil
}

func extractImage(resp *genai.GenerateContentResponse) (domain.ImagePayload, error) {
	if resp == nil {
		return domain.ImagePayload{}, &domain.TransformFailedError{Err: errors.New("empty response")}
	}

	var ratings []*genai.SafetyRating

	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		candidate := resp.Candidates[0]
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part == nil || part.InlineData == nil {
					continue
				}
				if strings.HasPrefix(part.InlineData.MIMEType, "image/") {
					return domain.ImagePayload{
						EncodedData: base64.StdEncoding.EncodeToString(part.InlineData.Data),
						MediaType:   part.InlineData.MIMEType,
					}, nil
				}
			}

			logTextParts(candidate.Content.Parts)
		}
		ratings = candidate.SafetyRatings
	} else if resp.PromptFeedback != nil {
		ratings = resp.PromptFeedback.SafetyRatings
		// the block reason is only reported when no rating names a category
		if categories := blockedCategories(ratings); len(categories) == 0 && resp.PromptFeedback.BlockReason != "" {
			return domain.ImagePayload{}, &domain.ContentBlockedError{
				Categories: []string{string(resp.PromptFeedback.BlockReason)},
			}
		}
	}

	if categories := blockedCategories(ratings); len(categories) > 0 {
		return domain.ImagePayload{}, &domain.ContentBlockedError{Categories: categories}
	}

	return domain.ImagePayload{}, domain.ErrUnexpectedResponse
}

// blockedCategories returns every category whose probability is anything but negligible.
func blockedCategories(ratings []*genai.SafetyRating) []string {
	var categories []string
	for _, r := range ratings {
		if r == nil || r.Probability == genai.HarmProbabilityNegligible {
			continue
		}
		categories = append(categories, string(r.Category))
	}

	return categories
}

func logTextParts(parts []*genai.Part) {
	var text strings.Builder
	for _, part := range parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	if text.Len() > 0 {
		log.Debug().Str("text", text.String()).Msg("gemini text response")
	}
}
