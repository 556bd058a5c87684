package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ehdgus4173/CheckMate/api"
	"github.com/ehdgus4173/CheckMate/gemini"
	"github.com/ehdgus4173/CheckMate/internal/extract"
	"github.com/ehdgus4173/CheckMate/internal/logger"
	"github.com/ehdgus4173/CheckMate/internal/report"
	"github.com/ehdgus4173/CheckMate/internal/server"
	"github.com/ehdgus4173/CheckMate/keyword"
	"github.com/ehdgus4173/CheckMate/llmjudge"
	"github.com/ehdgus4173/CheckMate/openai"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP evaluation service",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default :8080)")
	serveCmd.Flags().StringP("evaluator", "e", "", "evaluation strategy: keyword, openai or gemini")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("evaluator", serveCmd.Flags().Lookup("evaluator"))
}

func serve() {
	ctx := context.Background()

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		stdlog.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	evaluator, err := buildEvaluator(ctx, config)
	if err != nil {
		log.Fatal("configuring the evaluator", zap.Error(err))
	}

	service := report.NewService(evaluator, log)
	srv := server.New(service, extract.NewRegistry(), log)

	log.Info("starting checkmate",
		zap.String("version", version),
		zap.String("listen", config.Listen),
		zap.String("evaluator", config.Evaluator),
	)

	if err := srv.Router().Run(config.Listen); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// buildEvaluator wires the configured strategy. The prompt template is
// loaded here, once; a missing template fails startup rather than requests.
func buildEvaluator(ctx context.Context, config *Config) (api.Evaluator, error) {
	switch config.Evaluator {
	case "", "keyword":
		return keyword.NewMatcher(keyword.Options{}), nil

	case "openai":
		template, err := llmjudge.LoadTemplate(config.PromptTemplate)
		if err != nil {
			return nil, err
		}
		if config.OpenAI == nil || config.OpenAI.APIKey == "" {
			return nil, errors.New("openai api key is required")
		}
		var opts []openai.Option
		if config.OpenAI.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(config.OpenAI.BaseURL))
		}
		chat := openai.NewClient(config.OpenAI.APIKey, opts...)
		return llmjudge.Compliance(chat, llmjudge.ComplianceOptions{
			Model:    config.OpenAI.Model,
			Template: template,
		}), nil

	case "gemini":
		template, err := llmjudge.LoadTemplate(config.PromptTemplate)
		if err != nil {
			return nil, err
		}
		if config.Gemini == nil || config.Gemini.APIKey == "" {
			return nil, errors.New("gemini api key is required")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  config.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}
		return llmjudge.Structured(gemini.NewGenerator(client, config.Gemini.Model), llmjudge.StructuredOptions{
			Template: template,
		}), nil

	default:
		return nil, fmt.Errorf("unknown evaluator %q", config.Evaluator)
	}
}
