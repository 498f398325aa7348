package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/orcado/orcado/internal/config"
	"github.com/orcado/orcado/internal/logger"
	"github.com/orcado/orcado/internal/output"
	"github.com/orcado/orcado/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously saved extractions",
	Long: `History lists extractions persisted with "orcado extract --save",
newest first.

Examples:
  orcado history
  orcado history --limit 5 --format yaml`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	flags := historyCmd.Flags()
	flags.Int("limit", 20, "maximum rows to list (0 = all)")
	flags.String("format", "jsonl", "output format: json, jsonl, yaml")
}

func runHistory(cmd *cobra.Command, _ []string) error {
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

	path := cfg.DatabasePath
	if path == "" {
		path = "orcado.db"
	}
	db, err := store.Open(path)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer db.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	exts, err := db.List(ctx, limit)
	if err != nil {
		logError("%v", err)
		return err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		logError("%v", err)
		return err
	}

	w, err := output.NewWriter(os.Stdout, format)
	if err != nil {
		logError("%v", err)
		return err
	}
	for _, ext := range exts {
		if err := w.Write(output.Record{Source: ext.Source, Quote: ext.Quote}); err != nil {
			logError("writing output: %v", err)
			return err
		}
	}
	return w.Flush()
}
