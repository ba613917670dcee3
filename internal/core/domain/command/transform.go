package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/port"
)

type Transform struct {
	sessions    *domain.SessionStore
	encoder     port.ImageEncoder
	transformer port.ImageTransformer
	imageSender port.ImageSender
	textSender  port.TextSender
	auth        port.Authorizer
	recorder    port.TransformRecorder
	command     string
}

func NewTransform(sessions *domain.SessionStore,
	encoder port.ImageEncoder,
	transformer port.ImageTransformer,
	imageSender port.ImageSender,
	textSender port.TextSender,
	auth port.Authorizer,
	recorder port.TransformRecorder,
	command string) *Transform {
	return &Transform{sessions: sessions,
		encoder:     encoder,
		transformer: transformer,
		imageSender: imageSender,
		textSender:  textSender,
		auth:        auth,
		recorder:    recorder,
		command:     command}
}

func (t *Transform) GetCommand() string {
	return t.command
}

func (t *Transform) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	requestID, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("error creating request id: %w", err)
	}

	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", t.GetCommand()).
		Str("requestId", requestID.String()).
		Logger()

	l.Info().Msg("handling request")

	if !t.auth.IsAuthorized(ctx, message.ChatID) {
		l.Debug().Msg("chat not authorized")
		return nil
	}

	session := t.sessions.Get(message.ChatID)
	if message.ImageURL != "" {
		session.Upload(domain.SourceImage{URL: message.ImageURL, MediaType: message.ImageMediaType})
	}

	ticket, source, settings, err := session.Begin()
	if err != nil {
		l.Debug().Err(err).Msg("transform not started")
		_ = t.textSender.NotifyAndReturnError(ctx, errors.New(domain.UserMessage(err)), message)
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	go t.textSender.SendChatAction(callCtx, message.ChatID, domain.SendingPhoto)

	start := time.Now()
	result, err := t.run(callCtx, l, source, settings)
	outcome := domain.Outcome(err)
	t.recorder.ObserveTransform(outcome, time.Since(start).Seconds())

	if err != nil {
		l.Error().Err(err).Str("outcome", outcome).Dur("duration", time.Since(start)).Msg("transform failed")
		if !session.Fail(ticket, err) {
			l.Info().Msg("session was reset, dropping error")
			return nil
		}
		if _, sendErr := t.textSender.SendMessageReply(ctx, message, domain.UserMessage(err)); sendErr != nil {
			l.Error().Err(sendErr).Msg(domain.ErrSendingReplyFailed.Error())
		}
		return err
	}

	if !session.Complete(ticket, result) {
		l.Info().Msg("session was reset, dropping result")
		return nil
	}

	l.Info().Str("mediaType", result.MediaType).Dur("duration", time.Since(start)).Msg("transform finished")

	data, err := result.Bytes()
	if err != nil {
		err = fmt.Errorf("error decoding transformed image: %w", err)
		return t.textSender.NotifyAndReturnError(ctx, err, message)
	}

	err = t.imageSender.SendImageFileReply(ctx, message, data)
	if err != nil {
		err = fmt.Errorf("error sending transformed image: %w", err)
		return t.textSender.NotifyAndReturnError(ctx, err, message)
	}

	err = t.imageSender.SendDocumentReply(ctx, message, domain.ResultFilename, data)
	if err != nil {
		err = fmt.Errorf("error sending transformed image file: %w", err)
		return t.textSender.NotifyAndReturnError(ctx, err, message)
	}

	return nil
}

func (t *Transform) run(ctx context.Context, l zerolog.Logger, source domain.SourceImage,
	settings domain.TransformSettings) (domain.ImagePayload, error) {
	payload, err := t.encoder.Encode(ctx, source.URL, source.MediaType)
	if err != nil {
		return domain.ImagePayload{}, err
	}

	l.Debug().Str("settings", settings.String()).Str("mediaType", payload.MediaType).Msg("encoded source image")

	return t.transformer.Transform(ctx, payload, domain.BuildInstruction(settings))
}
