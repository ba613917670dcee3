package sender

import (
	"bytes"
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
)

//go:generate mockery --name TelegramBot

// TelegramBot is the subset of the bot API used for replies.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

const (
	TelegramMessageLimit    = 4096
	ChatActionRepeatSeconds = 5
)

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

func replyTo(message *domain.Message) *models.ReplyParameters {
	return &models.ReplyParameters{
		MessageID: message.ID,
		ChatID:    message.ChatID,
	}
}

// SendMessageReply replies with text, split into chunks of at most TelegramMessageLimit bytes. It returns the ID of
// the last message sent.
func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	var id int

	for _, chunk := range chunkText(text, TelegramMessageLimit) {
		msg, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          message.ChatID,
			Text:            chunk,
			ReplyParameters: replyTo(message),
		})
		if err != nil {
			log.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send message")
			return 0, err
		}
		if msg != nil {
			id = msg.ID
		}
	}

	return id, nil
}

func (s *Telegram) SendImageFileReply(ctx context.Context, message *domain.Message, file []byte) error {
	params := &bot.SendPhotoParams{
		ChatID: message.ChatID,
		Photo: &models.InputFileUpload{Filename: domain.ResultFilename,
			Data: bytes.NewReader(file)},
		ReplyParameters: replyTo(message),
	}

	_, err := s.bot.SendPhoto(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to send photo response")
		return err
	}

	return nil
}

func (s *Telegram) SendDocumentReply(ctx context.Context, message *domain.Message, filename string, file []byte) error {
	params := &bot.SendDocumentParams{
		ChatID: message.ChatID,
		Document: &models.InputFileUpload{Filename: filename,
			Data: bytes.NewReader(file)},
		ReplyParameters: replyTo(message),
	}

	_, err := s.bot.SendDocument(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to send document response")
		return err
	}

	return nil
}

// NotifyAndReturnError tells the user about err and hands err back, or the send error if notifying failed.
func (s *Telegram) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	log.Error().Err(err).Int("messageId", message.ID).Int64("chatId", message.ChatID).Msg("request failed")

	if _, sendErr := s.SendMessageReply(ctx, message, err.Error()); sendErr != nil {
		log.Error().Err(sendErr).Msg(domain.ErrSendingReplyFailed.Error())
		return sendErr
	}

	return err
}

func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	log.Debug().Int64("chatID", chatID).Msg("starting action routine")
	for {
		select {
		case <-ctx.Done():
			log.Debug().Int64("chatID", chatID).Msg("done, stopping action routine")
			return
		default:
		}

		var chatAction models.ChatAction
		switch action {
		case domain.SendingPhoto:
			chatAction = models.ChatActionUploadPhoto
		case domain.Typing:
			chatAction = models.ChatActionTyping
		default:
			chatAction = models.ChatActionTyping
		}

		log.Debug().Int64("chatID", chatID).Msg("transmitting action")
		_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: chatAction,
		})
		if err != nil {
			log.Err(err).Msg("error sending chat action")
			return
		}

		select {
		case <-ctx.Done():
			log.Debug().Int64("chatID", chatID).Msg("done, stopping action routine")
			return
		case <-time.After(ChatActionRepeatSeconds * time.Second):
		}
	}
}

func chunkText(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > 0 {
		end := 0
		size := 0
		for end < len(runes) && size+len(string(runes[end])) <= limit {
			size += len(string(runes[end]))
			end++
		}
		chunks = append(chunks, string(runes[:end]))
		runes = runes[end:]
	}

	return chunks
}
