package port

import (
	"context"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
)

type ImageEncoder interface {
	// Encode fetches the image behind url and returns it as an ImagePayload. declaredType is used as the media
	// type when set, otherwise the type is detected from the content.
	Encode(ctx context.Context, url string, declaredType string) (domain.ImagePayload, error)
}

type ImageTransformer interface {
	// Transform sends the image and instruction to the remote service and returns the first generated image.
	Transform(ctx context.Context, payload domain.ImagePayload, instruction string) (domain.ImagePayload, error)
}

type TransformRecorder interface {
	// ObserveTransform records the outcome and latency of a single transform request.
	ObserveTransform(outcome string, seconds float64)
}

type Authorizer interface {
	// IsAuthorized reports whether the chat may issue transforms, notifying it if not.
	IsAuthorized(ctx context.Context, chatID int64) bool
}
