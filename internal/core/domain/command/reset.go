package command

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/port"
)

type Reset struct {
	sessions   *domain.SessionStore
	textSender port.TextSender
	command    string
}

func NewReset(sessions *domain.SessionStore, textSender port.TextSender, command string) *Reset {
	return &Reset{sessions: sessions, textSender: textSender, command: command}
}

func (r *Reset) GetCommand() string {
	return r.command
}

func (r *Reset) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	session := r.sessions.Get(message.ChatID)
	wasBusy := session.Busy()

	session.Reset()

	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", r.GetCommand()).
		Bool("abandoned", wasBusy).
		Msg("session reset")

	text := "Session reset. Upload a new image to start over."
	if wasBusy {
		text += " The running transformation will be discarded."
	}

	_, err := r.textSender.SendMessageReply(ctx, message, text)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
