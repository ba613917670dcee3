package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/port"
)

const uploadConfirmation = "Image received. Adjust the settings or run /transform."

type Upload struct {
	sessions   *domain.SessionStore
	textSender port.TextSender
	command    string
}

func NewUpload(sessions *domain.SessionStore, textSender port.TextSender, command string) *Upload {
	return &Upload{sessions: sessions, textSender: textSender, command: command}
}

func (u *Upload) GetCommand() string {
	return u.command
}

func (u *Upload) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", u.GetCommand()).
		Logger()

	if message.ImageURL == "" {
		_ = u.textSender.NotifyAndReturnError(ctx,
			errors.New("missing image, send a photo or image file with "+u.command+" as its caption"), message)
		return nil
	}

	u.sessions.Get(message.ChatID).Upload(domain.SourceImage{
		URL:       message.ImageURL,
		MediaType: message.ImageMediaType,
	})
	l.Info().Str("mediaType", message.ImageMediaType).Msg("stored source image")

	_, err := u.textSender.SendMessageReply(ctx, message, uploadConfirmation)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
