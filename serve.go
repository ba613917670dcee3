package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/adapters/encoder"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/adapters/generator"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/adapters/handler"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/adapters/sender"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/config"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain/command"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	log.Info().Msg("starting photoreal bot...")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	apiKey, err := config.APIKey()
	if err != nil {
		log.Fatal().Err(err).Msg("missing gemini credential")
	}

	token, err := config.BotToken()
	if err != nil {
		log.Fatal().Err(err).Msg("missing telegram credential")
	}

	handlerTimeout, err := config.HandlerTimeout()
	if err != nil {
		return err
	}

	idleTimeout, err := config.IdleTimeout()
	if err != nil {
		return err
	}

	b, err := bot.New(token, bot.WithDefaultHandler(noOpHandler))
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegram(b)

	gemini, err := generator.NewGemini(ctx, generator.GeminiOptions{
		APIKey:  apiKey,
		Model:   viper.GetString("gemini.model"),
		BaseURL: viper.GetString("gemini.base_url"),
	})
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing gemini client")
	}

	authorizer, err := service.NewAuthorizer(s)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing authorizer")
	}

	sessions := domain.NewSessionStore()
	go sessions.Expire(ctx, idleTimeout)

	registry := prometheus.NewRegistry()
	metrics := service.NewTransformMetrics(registry, sessions.Len)
	if addr := viper.GetString("metrics.listen_addr"); addr != "" {
		go func() {
			if err := service.ServeMetrics(ctx, addr, registry); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	commandRegistry := &command.Registry{}

	commandRegistry.Register(command.NewHelp(commandRegistry, sessions, s, "/help"))
	commandRegistry.Register(command.NewHelp(commandRegistry, sessions, s, "/start"))
	commandRegistry.Register(command.NewUpload(sessions, s, "/upload"))
	commandRegistry.Register(command.NewRealism(sessions, s, "/realism"))
	commandRegistry.Register(command.NewDetail(sessions, s, "/detail"))
	commandRegistry.Register(command.NewQuality(sessions, s, "/quality"))
	commandRegistry.Register(command.NewAspectRatio(sessions, s, "/ratio"))
	commandRegistry.Register(command.NewShowSettings(sessions, s, "/settings"))
	commandRegistry.Register(command.NewTransform(sessions, encoder.NewDataURL(), gemini, s, s, authorizer, metrics,
		"/transform"))
	commandRegistry.Register(command.NewReset(sessions, s, "/reset"))
	commandRegistry.Register(command.NewStatus(sessions, s, "/status"))

	commandHandler := handler.NewCommand(commandRegistry, handlerTimeout)

	b.RegisterHandlerMatchFunc(commandHandler.Match, commandHandler.Handle)

	log.Info().Msg("bot listening")
	b.Start(ctx)

	return nil
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
