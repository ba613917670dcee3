package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/port"
)

// Setting changes a single transform setting of the chat session.
type Setting struct {
	sessions   *domain.SessionStore
	textSender port.TextSender
	name       string
	usage      string
	apply      func(s *domain.TransformSettings, arg string) error
	current    func(s domain.TransformSettings) string
	command    string
}

func NewRealism(sessions *domain.SessionStore, textSender port.TextSender, command string) *Setting {
	return &Setting{
		sessions:   sessions,
		textSender: textSender,
		name:       "realism",
		usage:      command + " <0-100>",
		apply: func(s *domain.TransformSettings, arg string) error {
			n, err := domain.ParseLevel(arg)
			s.Realism = n
			return err
		},
		current: func(s domain.TransformSettings) string { return strconv.Itoa(s.Realism) },
		command: command,
	}
}

func NewDetail(sessions *domain.SessionStore, textSender port.TextSender, command string) *Setting {
	return &Setting{
		sessions:   sessions,
		textSender: textSender,
		name:       "detail",
		usage:      command + " <0-100>",
		apply: func(s *domain.TransformSettings, arg string) error {
			n, err := domain.ParseLevel(arg)
			s.Detail = n
			return err
		},
		current: func(s domain.TransformSettings) string { return strconv.Itoa(s.Detail) },
		command: command,
	}
}

func NewQuality(sessions *domain.SessionStore, textSender port.TextSender, command string) *Setting {
	return &Setting{
		sessions:   sessions,
		textSender: textSender,
		name:       "quality",
		usage:      command + " <2x|4x|8K+>",
		apply: func(s *domain.TransformSettings, arg string) error {
			q, err := domain.ParseQuality(arg)
			s.Quality = q
			return err
		},
		current: func(s domain.TransformSettings) string { return string(s.Quality) },
		command: command,
	}
}

func NewAspectRatio(sessions *domain.SessionStore, textSender port.TextSender, command string) *Setting {
	return &Setting{
		sessions:   sessions,
		textSender: textSender,
		name:       "aspect ratio",
		usage:      command + " <Original|1:1|4:3|16:9>",
		apply: func(s *domain.TransformSettings, arg string) error {
			r, err := domain.ParseAspectRatio(arg)
			s.AspectRatio = r
			return err
		},
		current: func(s domain.TransformSettings) string { return string(s.AspectRatio) },
		command: command,
	}
}

func (s *Setting) GetCommand() string {
	return s.command
}

func (s *Setting) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", s.GetCommand()).
		Logger()

	session := s.sessions.Get(message.ChatID)

	arg := ParseCommandArgs(message.Text)
	if arg == "" {
		_, err := s.textSender.SendMessageReply(ctx, message,
			fmt.Sprintf("current %s: %s\nusage: %s", s.name, s.current(session.Settings()), s.usage))
		if err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
		return nil
	}

	updated, err := session.UpdateSettings(func(settings *domain.TransformSettings) error {
		return s.apply(settings, arg)
	})
	if err != nil {
		l.Debug().Err(err).Str("arg", arg).Msg("rejected setting")
		_ = s.textSender.NotifyAndReturnError(ctx, fmt.Errorf("%w\nusage: %s", err, s.usage), message)
		return nil
	}

	l.Info().Str("value", s.current(updated)).Msg("updated setting")

	_, err = s.textSender.SendMessageReply(ctx, message, fmt.Sprintf("%s set to %s", s.name, s.current(updated)))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// ShowSettings replies with the settings and state of the chat session.
type ShowSettings struct {
	sessions   *domain.SessionStore
	textSender port.TextSender
	command    string
}

func NewShowSettings(sessions *domain.SessionStore, textSender port.TextSender, command string) *ShowSettings {
	return &ShowSettings{sessions: sessions, textSender: textSender, command: command}
}

func (s *ShowSettings) GetCommand() string {
	return s.command
}

func (s *ShowSettings) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	session := s.sessions.Get(message.ChatID)

	text := "Current settings:\n" + session.Settings().String()

	if _, ok := session.Source(); ok {
		text += "\nimage: uploaded"
	} else {
		text += "\nimage: none"
	}
	if session.Busy() {
		text += "\nstatus: transforming"
	}
	if lastErr := session.LastError(); lastErr != "" {
		text += "\nlast error: " + lastErr
	}

	_, err := s.textSender.SendMessageReply(ctx, message, text)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
