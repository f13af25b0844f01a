package cmd

import (
	"context"
	"log"

	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/suggestions"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configured gemini api key",
	Run: func(cmd *cobra.Command, _ []string) {
		validate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("offline", false, "only check the key format, skip the live service probe")
}

func validate(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	credential, err := resolveGeminiKey(config)
	if err != nil {
		zlog.Fatal("loading gemini api key", zap.Error(err))
	}
	if credential == "" {
		zlog.Fatal("no gemini api key configured",
			zap.String("hint", "set GEMINI_KEY_FILE environment variable or the 'ai.gemini' keys in the configuration file"),
		)
	}

	if err := suggestions.ValidateCredential(credential); err != nil {
		zlog.Fatal("api key format is invalid",
			zap.String("hint", `gemini api keys start with "AIza" and are 39 characters long`),
		)
	}
	zlog.Info("api key format is valid")

	if cmd.Flag("offline").Value.String() == "true" {
		return
	}

	status, err := suggestions.CheckCredential(ctx, credential)
	if err != nil {
		zlog.Fatal("api key rejected by the service",
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}

	zlog.Info("api key verified against the service", zap.String("status", string(status)))
}
