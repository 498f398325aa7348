package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/orcado/orcado/internal/breaker"
	"github.com/orcado/orcado/internal/config"
	"github.com/orcado/orcado/internal/extractor"
	"github.com/orcado/orcado/internal/llm"
	"github.com/orcado/orcado/internal/logger"
	"github.com/orcado/orcado/internal/output"
	"github.com/orcado/orcado/internal/reader"
	"github.com/orcado/orcado/internal/store"
	"github.com/orcado/orcado/internal/textnorm"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract structured records from quote documents",
	Long: `Extract reads decoded quote documents, normalizes their text and runs
the provider pool until one produces a valid record.

Examples:
  # Single document to stdout
  orcado extract orcamento.txt

  # HTML export, saved to the local database
  orcado extract --save proposta.html

  # Batch as JSONL into a file
  orcado extract --format jsonl -o records.jsonl docs/*.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")
	flags.Bool("pretty", true, "pretty-print JSON output")
	flags.Bool("save", false, "persist accepted extractions to the local database")
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("json_logs"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		logError("%v", err)
		return err
	}

	registry, pool, err := buildPool(cfg)
	if err != nil {
		logError("%v", err)
		return err
	}

	ex := extractor.New(registry, pool,
		extractor.WithMaxInputBytes(cfg.Extraction.MaxInputBytes),
		extractor.WithMaxTokens(cfg.Extraction.MaxTokens),
		extractor.WithTemperature(cfg.Extraction.Temperature),
	)

	w, outFile, err := openWriter(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}
	if outFile != nil {
		defer outFile.Close()
	}

	var db *store.Store
	if save, _ := cmd.Flags().GetBool("save"); save {
		path := cfg.DatabasePath
		if path == "" {
			path = "orcado.db"
		}
		db, err = store.Open(path)
		if err != nil {
			logError("%v", err)
			return err
		}
		defer db.Close()
	}

	succeeded := 0
	for i, path := range args {
		logInfo("[%d/%d] %s", i+1, len(args), path)

		rec := extractOne(ctx, ex, cfg.Extraction.Timeout, path)
		if rec.Quote != nil {
			succeeded++
			if db != nil {
				if id, err := db.Save(ctx, path, rec.Quote); err != nil {
					logger.Warn("failed to persist extraction", "source", path, "error", err)
				} else {
					logger.Debug("extraction persisted", "source", path, "id", id)
				}
			}
		} else {
			logError("%s: %s", path, rec.Error)
		}

		if err := w.Write(rec); err != nil {
			logError("writing output: %v", err)
			return err
		}

		if ctx.Err() != nil {
			break
		}
	}

	if err := w.Flush(); err != nil {
		logError("flushing output: %v", err)
		return err
	}

	logInfo("Done: %d/%d extracted", succeeded, len(args))
	if succeeded == 0 {
		return fmt.Errorf("no documents extracted")
	}
	return nil
}

func extractOne(ctx context.Context, ex *extractor.Extractor, timeout time.Duration, path string) output.Record {
	text, err := reader.ReadFile(path)
	if err != nil {
		return output.Record{Source: path, Error: err.Error()}
	}

	text = textnorm.Normalize(text)
	if text == "" {
		return output.Record{Source: path, Error: "document is empty"}
	}

	docCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		docCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	quote, err := ex.Extract(docCtx, text)
	if err != nil {
		return output.Record{Source: path, Error: err.Error()}
	}
	return output.Record{Source: path, Quote: quote}
}

// buildPool registers every configured provider and wraps them in the
// failover pool, in configuration order.
func buildPool(cfg *config.Config) (*llm.Registry, *breaker.Pool, error) {
	registry := llm.NewRegistry()
	for _, p := range cfg.Providers {
		provider, err := llm.NewProvider(p.Type, p.Name, llm.Config{
			APIKey:  p.APIKey,
			BaseURL: p.BaseURL,
			Model:   p.Model,
			Timeout: cfg.Extraction.Timeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("provider %s: %w", p.Name, err)
		}
		registry.Register(p.Name, provider, p.RequestsPerMinute)
	}
	return registry, breaker.NewPool(cfg.ProviderIDs()), nil
}

func openWriter(cmd *cobra.Command) (output.Writer, *os.File, error) {
	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return nil, nil, err
	}

	var dst *os.File
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		dst, err = os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("creating output file: %w", err)
		}
	} else {
		dst = os.Stdout
	}

	pretty, _ := cmd.Flags().GetBool("pretty")
	w, err := output.NewWriter(dst, format, output.WithPretty(pretty))
	if err != nil {
		if dst != os.Stdout {
			dst.Close()
		}
		return nil, nil, err
	}

	if dst == os.Stdout {
		return w, nil, nil
	}
	return w, dst, nil
}
