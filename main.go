package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/config"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/logging"
)

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "photoreal",
	Short: "Turn drawings and renders into photorealistic images",
	Long: `photoreal sends an image together with a photorealism instruction to Gemini and
returns the generated photo.

Run without a subcommand to start the Telegram bot.

Examples:
  photoreal serve --config config.toml
  photoreal transform --input sketch.png --realism 90 --ratio 16:9`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(configFlag); err != nil {
			return err
		}

		logging.Init(viper.GetString("bot.log_level"), viper.GetBool("bot.log_pretty"))

		return nil
	},
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to the TOML config file (default ./config.toml)")

	rootCmd.AddCommand(serveCmd, transformCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("photoreal failed")
		os.Exit(1)
	}
}
