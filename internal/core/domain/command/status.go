package command

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/port"
)

type Status struct {
	sessions   *domain.SessionStore
	textSender port.TextSender
	started    time.Time
	command    string
}

func NewStatus(sessions *domain.SessionStore, textSender port.TextSender, command string) *Status {
	return &Status{sessions: sessions, textSender: textSender, started: time.Now(), command: command}
}

func (s *Status) GetCommand() string {
	return s.command
}

const kb = 1024
const statusTemplate = `uptime: %s
sessions: %d (%d transforming)
allocated mem: %d KB
goroutines: %d
compiled with %s (%s)
`

func (s *Status) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	log.Info().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", s.GetCommand()).
		Msg("handling request")

	sample := []metrics.Sample{{Name: "/memory/classes/total:bytes"}}
	metrics.Read(sample)

	var allocated uint64
	if sample[0].Value.Kind() == metrics.KindUint64 {
		allocated = sample[0].Value.Uint64()
	}

	version := "devel"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}

	_, err := s.textSender.SendMessageReply(ctx, message,
		fmt.Sprintf(
			statusTemplate,
			time.Since(s.started).Truncate(time.Second),
			s.sessions.Len(), s.sessions.Busy(),
			allocated/kb,
			runtime.NumGoroutine(),
			runtime.Version(), version,
		))
	if err != nil {
		return err
	}

	return nil
}
