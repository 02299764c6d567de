package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yuin/goldmark"

	"github.com/Atharva2922/notesgenai/ai"
	"github.com/Atharva2922/notesgenai/ai/core/llm"
	"github.com/Atharva2922/notesgenai/ai/metrics"
	"github.com/Atharva2922/notesgenai/ai/notegen"
	"github.com/Atharva2922/notesgenai/ai/purpose"
	"github.com/Atharva2922/notesgenai/internal/profile"
	"github.com/Atharva2922/notesgenai/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "notesgenai",
	Short: `Turn raw text into structured notes. Works with any OpenAI-compatible LLM, falls back to offline rendering.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// Try to load .env file from current directory (ignore error if file doesn't exist)
		_ = godotenv.Load()
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate a structured note from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(args)
		if err != nil {
			return err
		}

		svc, err := newNoteService()
		if err != nil {
			return err
		}

		instruction, _ := cmd.Flags().GetString("purpose")
		cfg := notegen.GenerationConfig{
			Tone:   notegen.Tone(viper.GetString("tone")),
			Format: notegen.Format(viper.GetString("format")),
		}
		def := purpose.Resolve(instruction)

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		note, err := svc.GenerateNote(ctx, content, cfg, def)
		if err != nil {
			return err
		}
		return printNote(cmd.OutOrStdout(), note)
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send a single chat message to the configured LLM",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newNoteService()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		reply := svc.ChatWithAI(ctx, []llm.Message{llm.UserMessage(strings.Join(args, " "))})
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.StringFull())
	},
}

func newNoteService() (*notegen.Service, error) {
	instanceProfile := &profile.Profile{
		Mode: viper.GetString("mode"),
	}
	instanceProfile.FromEnv()
	instanceProfile.Version = version.GetCurrentVersion(instanceProfile.Mode)
	if err := instanceProfile.Validate(); err != nil {
		return nil, err
	}

	aiConfig := ai.NewConfigFromProfile(instanceProfile)
	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}
	llmService, err := ai.NewLLMService(aiConfig)
	if err != nil {
		return nil, err
	}
	if llmService == nil {
		slog.Info("no LLM API key configured, notes will be generated offline")
	}

	recorder := metrics.NewRecorder(metrics.DefaultConfig())
	if addr := viper.GetString("metrics-addr"); addr != "" {
		go serveMetrics(addr, recorder)
	}

	svc := notegen.NewService(llmService, recorder)
	go svc.Warmup(context.Background())
	return svc, nil
}

func serveMetrics(addr string, recorder *metrics.Recorder) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	slog.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics server stopped", "error", err)
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func printNote(w io.Writer, note *notegen.StructuredNote) error {
	switch {
	case viper.GetBool("json"):
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(note)
	case viper.GetBool("html"):
		var buf strings.Builder
		fmt.Fprintf(&buf, "# %s\n\n%s\n\n%s\n", note.Title, note.Summary, note.FormattedContent)
		return goldmark.Convert([]byte(buf.String()), w)
	default:
		fmt.Fprintf(w, "# %s\n\n%s\n\n%s\n\nTags: %s\n", note.Title, note.Summary, note.FormattedContent, strings.Join(note.Tags, ", "))
		return nil
	}
}

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("tone", string(notegen.ToneProfessional))
	viper.SetDefault("format", string(notegen.FormatBulletPoints))

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the tool, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("metrics-addr", "", "address to expose Prometheus metrics on, e.g. :9090")

	generateCmd.Flags().String("purpose", "", "what the note is for, e.g. \"summarize this\" or \"meeting notes\"")
	generateCmd.Flags().String("tone", string(notegen.ToneProfessional), "tone of the note (professional, creative, concise)")
	generateCmd.Flags().String("format", string(notegen.FormatBulletPoints), "format of the note (bullet_points, paragraph, flashcards)")
	generateCmd.Flags().Bool("json", false, "print the note as JSON")
	generateCmd.Flags().Bool("html", false, "render the note body as HTML")

	if err := viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("metrics-addr", rootCmd.PersistentFlags().Lookup("metrics-addr")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("tone", generateCmd.Flags().Lookup("tone")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("format", generateCmd.Flags().Lookup("format")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("json", generateCmd.Flags().Lookup("json")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("html", generateCmd.Flags().Lookup("html")); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("notesgenai")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	rootCmd.AddCommand(generateCmd, chatCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
