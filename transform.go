package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/adapters/encoder"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/adapters/file"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/adapters/generator"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/config"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
)

// CLI flags
var (
	inputFlag   string
	outputFlag  string
	realismFlag int
	detailFlag  int
	qualityFlag string
	ratioFlag   string
	dataURLFlag bool
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform a local image once and write the result to a file",
	RunE:  runTransform,
}

func init() {
	defaults := domain.DefaultSettings()

	transformCmd.Flags().StringVarP(&inputFlag, "input", "i", "", "Image to transform (JPG, PNG, WEBP, GIF, HEIC)")
	transformCmd.Flags().StringVarP(&outputFlag, "output", "o", domain.ResultFilename, "File to write the generated image to")
	transformCmd.Flags().IntVar(&realismFlag, "realism", defaults.Realism, "Realism level, 0-100")
	transformCmd.Flags().IntVar(&detailFlag, "detail", defaults.Detail, "Detail enhancement, 0-100")
	transformCmd.Flags().StringVar(&qualityFlag, "quality", string(defaults.Quality), "Output quality: 2x, 4x or 8K+")
	transformCmd.Flags().StringVar(&ratioFlag, "ratio", string(defaults.AspectRatio), "Aspect ratio: Original, 1:1, 4:3 or 16:9")
	transformCmd.Flags().BoolVar(&dataURLFlag, "data-url", false, "Also print the result as a data URL to stdout")
	_ = transformCmd.MarkFlagRequired("input")
}

func runTransform(cmd *cobra.Command, _ []string) error {
	settings, err := settingsFromFlags()
	if err != nil {
		return err
	}

	apiKey, err := config.APIKey()
	if err != nil {
		log.Fatal().Err(err).Msg("missing gemini credential")
	}

	timeout, err := config.HandlerTimeout()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	payload, err := encoder.NewDataURL().EncodeFile(inputFlag)
	if err != nil {
		return fmt.Errorf("%s: %w", domain.UserMessage(err), err)
	}

	gemini, err := generator.NewGemini(ctx, generator.GeminiOptions{
		APIKey:  apiKey,
		Model:   viper.GetString("gemini.model"),
		BaseURL: viper.GetString("gemini.base_url"),
	})
	if err != nil {
		return err
	}

	log.Info().Str("input", inputFlag).Str("mediaType", payload.MediaType).Msg("transforming image")

	result, err := gemini.Transform(ctx, payload, domain.BuildInstruction(settings))
	if err != nil {
		log.Debug().Err(err).Str("outcome", domain.Outcome(err)).Msg("transform failed")
		return errors.New(domain.UserMessage(err))
	}

	data, err := result.Bytes()
	if err != nil {
		return fmt.Errorf("error decoding transformed image: %w", err)
	}

	if err := file.WriteFile(outputFlag, data); err != nil {
		return fmt.Errorf("error writing %s: %w", outputFlag, err)
	}

	log.Info().Str("output", outputFlag).Str("mediaType", result.MediaType).Msg("wrote transformed image")

	if dataURLFlag {
		fmt.Fprintln(cmd.OutOrStdout(), result.DataURL())
	}

	return nil
}

func settingsFromFlags() (domain.TransformSettings, error) {
	quality, err := domain.ParseQuality(qualityFlag)
	if err != nil {
		return domain.TransformSettings{}, err
	}

	ratio, err := domain.ParseAspectRatio(ratioFlag)
	if err != nil {
		return domain.TransformSettings{}, err
	}

	settings := domain.TransformSettings{
		Realism:     realismFlag,
		Detail:      detailFlag,
		Quality:     quality,
		AspectRatio: ratio,
	}

	return settings, settings.Validate()
}
