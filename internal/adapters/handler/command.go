package handler

import (
	"context"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain/command"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/port"
)

// MaxDownloadSize is the largest file the Bot API lets bots download.
const MaxDownloadSize = 20 * 1024 * 1024

const photoMediaType = "image/jpeg"

type fileLinker interface {
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

type Command struct {
	commandRegistry port.CommandRegistry
	timeout         time.Duration
}

func NewCommand(commandRegistry port.CommandRegistry, timeout time.Duration) *Command {
	return &Command{commandRegistry: commandRegistry, timeout: timeout}
}

// Match reports whether update carries a command, either as text or as the caption of a photo or file.
func (c *Command) Match(update *models.Update) bool {
	if update.Message == nil {
		return false
	}

	return strings.HasPrefix(update.Message.Text, "/") || strings.HasPrefix(update.Message.Caption, "/")
}

func (c *Command) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	c.handle(ctx, b, update)
}

func (c *Command) handle(ctx context.Context, files fileLinker, update *models.Update) {
	if update.Message == nil {
		log.Debug().Msg("update without message")
		return
	}

	msg := update.Message
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	log.Debug().Str("message", text).Msg("received command")

	cmd := command.ParseCommand(text)
	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Msg("no handler for command")
		return
	}

	go func() {
		var imageURL, mediaType string
		if fileID, mt := findImage(msg); fileID != "" {
			if imageURL = resolveFileURL(ctx, files, fileID); imageURL != "" {
				mediaType = mt
			}
		}

		err := commandHandler.Respond(context.Background(), c.timeout, &domain.Message{
			ID:             msg.ID,
			ChatID:         msg.Chat.ID,
			Text:           text,
			Username:       getUserNameFromMessage(msg.From),
			ImageURL:       imageURL,
			ImageMediaType: mediaType,
		})
		if err != nil {
			log.Err(err).Str("command", cmd).Msg("failed to respond to command")
		}
	}()
}

// findImage returns the file ID and declared media type of the image attached to msg, or to the message it
// replies to. Documents count as images when their declared mime type says so.
func findImage(msg *models.Message) (string, string) {
	if fileID, mediaType := imageOf(msg); fileID != "" {
		return fileID, mediaType
	}

	if msg.ReplyToMessage != nil {
		return imageOf(msg.ReplyToMessage)
	}

	return "", ""
}

func imageOf(msg *models.Message) (string, string) {
	if len(msg.Photo) > 0 {
		return findLargestImage(msg.Photo), photoMediaType
	}

	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") &&
		msg.Document.FileSize <= MaxDownloadSize {
		return msg.Document.FileID, msg.Document.MimeType
	}

	return "", ""
}

func resolveFileURL(ctx context.Context, fl fileLinker, fileID string) string {
	f, err := fl.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		log.Error().Err(err).Msg("error getting file from telegram api")
		return ""
	}

	return fl.FileDownloadLink(f)
}

// findLargestImage picks the biggest photo size the bot is still allowed to download. Sizes are sorted
// ascending.
func findLargestImage(photos []models.PhotoSize) string {
	for i := len(photos) - 1; i >= 0; i-- {
		if photos[i].FileSize <= MaxDownloadSize {
			return photos[i].FileID
		}
	}

	return photos[0].FileID
}

func getUserNameFromMessage(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
