package main

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ehdgus4173/CheckMate/llmjudge"
)

const app = "checkmate"

type Config struct {
	Listen         string        `mapstructure:"listen"`
	Evaluator      string        `mapstructure:"evaluator"`
	PromptTemplate string        `mapstructure:"prompt-template"`
	OpenAI         *OpenAIConfig `mapstructure:"openai"`
	Gemini         *GeminiConfig `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api-key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base-url"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api-key"`
	Model  string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "checkmate evaluates a submitted document against a requirements specification",
	}
)

func init() {
	if err := viper.BindEnv("openai.api-key", "OPENAI_API_KEY"); err != nil {
		log.Fatalf("binding OPENAI_API_KEY environment variable: %v", err)
	}
	if err := viper.BindEnv("gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is checkmate.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("listen", ":8080")
	viper.SetDefault("evaluator", "keyword")
	viper.SetDefault("prompt-template", "prompts/llm_prompt.txt")
	viper.SetDefault("openai.model", llmjudge.DefaultModel)
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
}

func initConfig() {
	// Config needed only for the serve command. If there is no config
	// file, defaults and environment variables are enough.
	if serveCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
