package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/port"
)

const helpIntro = "Send me a drawing, painting or render and I will turn it into a photorealistic image.\n\n" +
	"1. Upload a picture with /upload as its caption (JPG, PNG, WEBP, GIF or HEIC).\n" +
	"2. Adjust the settings if you like.\n" +
	"3. Run /transform, or send the picture with /transform as its caption right away.\n"

type Help struct {
	registry   port.CommandRegistry
	sessions   *domain.SessionStore
	textSender port.TextSender
	command    string
}

func NewHelp(registry port.CommandRegistry, sessions *domain.SessionStore, textSender port.TextSender,
	command string) *Help {
	return &Help{registry: registry, sessions: sessions, textSender: textSender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	sb := &strings.Builder{}

	sb.WriteString(helpIntro)
	sb.WriteString("\nAvailable commands:\n")
	for _, c := range h.registry.ListCommands() {
		fmt.Fprintf(sb, " - %s\n", c)
	}

	fmt.Fprintf(sb, "\nCurrent settings:\n%s", h.sessions.Get(message.ChatID).Settings())

	_, err := h.textSender.SendMessageReply(ctx, message, sb.String())
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
