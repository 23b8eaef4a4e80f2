package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joseph-ayodele/docsorter/internal/common"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "docsorter",
		Short: "File scanned invoices and receipts into a dated category tree",
		Long: `docsorter reads the text of each PDF in an input folder (falling back to OCR
when the embedded text is not enough), detects its type, date and number from a
keyword rule file, and moves it into <output>/<category>/<year>/<month>.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

// cfg and logger are populated by initConfig before any command runs.
var (
	cfg    *common.Config
	logger *slog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./docsorter.yaml or $HOME/.config/docsorter/docsorter.yaml)")
	rootCmd.PersistentFlags().String("rules", "groups.json", "classification rule file (.json or .yaml)")
	rootCmd.PersistentFlags().String("settings", "settings.json", "OCR tool settings file")
	rootCmd.PersistentFlags().String("journal", "", "journal database (sqlite path or postgres:// DSN); empty disables")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = viper.BindPFlag("rules.path", rootCmd.PersistentFlags().Lookup("rules"))
	_ = viper.BindPFlag("settings.path", rootCmd.PersistentFlags().Lookup("settings"))
	_ = viper.BindPFlag("journal.dsn", rootCmd.PersistentFlags().Lookup("journal"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(organizeCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(ocrTestCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	bindLocalFlags(cmd)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(fmt.Sprintf("%s/.config/docsorter", home))
		}
		viper.SetConfigName("docsorter")
		viper.SetConfigType("yaml")
	}

	// DOCSORTER_OCR_MAX_PAGES -> ocr.max_pages
	viper.SetEnvPrefix("DOCSORTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg = common.LoadConfig(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := common.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	logger = l
	slog.SetDefault(logger)
	if f := viper.ConfigFileUsed(); f != "" {
		logger.Debug("config loaded", "file", f)
	}
	return nil
}
