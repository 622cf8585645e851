package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"s3-backup-replicator/internal/logging"
	"s3-backup-replicator/internal/replicator"
)

// CLI flag variables
var (
	eventPath string
	check     bool

	verbose   bool
	quiet     bool
	timeout   time.Duration
	logFormat string
	logFile   string
	noColor   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s3-backup-replicator",
	Short: "Replicate one storage object to a backup bucket and notify the outcome",
	Long: `s3-backup-replicator handles one object-created storage event per run:
it copies the named object into the configured backup bucket with server-side
encryption and publishes a success or failure notification.

The event payload is read from a file (--event) or from stdin. Configuration
comes from the environment:

  BACKUP_BUCKET             destination bucket (required)
  SNS_TOPIC_ARN             notification topic (required)
  AWS_REGION                client region (default us-east-1)
  BACKUP_STORAGE_PROVIDER   object store backend: s3, azure, gcs (default s3)
  S3_ENDPOINT               custom endpoint for S3-compatible stores
  GCS_CREDENTIALS_FILE      GCS service-account credentials file
  AZURE_STORAGE_ACCOUNT     Azure storage account name
  AZURE_STORAGE_KEY         Azure storage account key

On failure the original error is propagated with a non-zero exit status so
the invoking platform can apply its own retry policy.

Examples:
  # Handle an event stored in a file
  s3-backup-replicator --event event.json

  # Handle an event piped on stdin
  cat event.json | s3-backup-replicator

  # Verify that the backup bucket is reachable, without copying anything
  s3-backup-replicator --check`,
	SilenceUsage: true,
	RunE:         runReplicate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&eventPath, "event", "e", "-", "path to the event JSON file (\"-\" reads stdin)")
	rootCmd.Flags().BoolVar(&check, "check", false, "run a backup store health check instead of handling an event")

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall operation timeout")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to file in addition to stdout")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.Flags().Lookup("quiet"))
	viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("log_format", rootCmd.Flags().Lookup("log-format"))
	viper.BindPFlag("log_file", rootCmd.Flags().Lookup("log-file"))

	rootCmd.AddCommand(createVersionCommand())
}

// runReplicate is the main execution function for the CLI
func runReplicate(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}
	if noColor {
		color.NoColor = true
	}

	logger, err := buildLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	config := replicator.LoadConfig()

	store, err := replicator.NewObjectStore(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to initialize object store: %w", err)
	}

	if check {
		return runHealthCheck(ctx, store)
	}

	notifier, err := replicator.NewSNSNotifier(config)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	rawEvent, err := readEvent(eventPath)
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}

	handler := replicator.NewHandler(config, store, notifier, logger)
	resp, err := handler.Handle(ctx, rawEvent)
	if err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "✗ Backup failed")
		fmt.Fprintf(os.Stderr, "  %v\n", err)
		return err
	}

	if !quiet {
		color.New(color.FgGreen, color.Bold).Println("✓ Backup completed")
		printResponse(resp)
	}
	return nil
}

// runHealthCheck verifies backup store reachability and reports the result
func runHealthCheck(ctx context.Context, store replicator.ObjectStore) error {
	if err := store.HealthCheck(ctx); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "✗ Backup store unreachable")
		return err
	}
	color.New(color.FgGreen, color.Bold).Printf("✓ Backup store reachable (%s)\n", store.Provider())
	return nil
}

// validateFlags validates CLI flags and their combinations
func validateFlags() error {
	if verbose && quiet {
		return fmt.Errorf("--verbose and --quiet flags are mutually exclusive")
	}
	if logFormat != "text" && logFormat != "json" {
		return fmt.Errorf("invalid log format %q, must be text or json", logFormat)
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout must be greater than 0")
	}
	return nil
}

// buildLogger constructs the logger from CLI flags
func buildLogger() (*logging.Logger, error) {
	level := logging.LogLevelNormal
	if verbose {
		level = logging.LogLevelVerbose
	}
	if quiet {
		level = logging.LogLevelQuiet
	}

	return logging.NewLogger(logging.Config{
		Level:   level,
		Format:  logFormat,
		LogFile: logFile,
	})
}

// readEvent reads the raw event payload from a file or stdin
func readEvent(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// printResponse renders the success payload for the operator
func printResponse(resp *replicator.Response) {
	var body replicator.ResponseBody
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		fmt.Println(resp.Body)
		return
	}

	fmt.Printf("  Source:      %s\n", body.Source)
	fmt.Printf("  Destination: %s\n", body.Destination)
	fmt.Printf("  Size:        %d bytes\n", body.SizeBytes)
	fmt.Printf("  Timestamp:   %s\n", body.Timestamp)
}

// Version information (set by main package)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// SetVersionInfo sets the version information from build flags
func SetVersionInfo(v, bt, gc string) {
	version = v
	buildTime = bt
	gitCommit = gc
}

// createVersionCommand creates the version subcommand
func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("s3-backup-replicator version %s\n", version)
			fmt.Printf("Built: %s\n", buildTime)
			fmt.Printf("Commit: %s\n", gitCommit)
		},
	}
}
