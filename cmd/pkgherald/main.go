package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pkgherald/pkgherald/internal/checker"
	"github.com/pkgherald/pkgherald/internal/config"
	"github.com/pkgherald/pkgherald/internal/deps"
	"github.com/pkgherald/pkgherald/internal/distro"
	"github.com/pkgherald/pkgherald/internal/logging"
	"github.com/pkgherald/pkgherald/internal/progress"
	"github.com/pkgherald/pkgherald/internal/report"
	"github.com/pkgherald/pkgherald/internal/runner"
	"github.com/pkgherald/pkgherald/internal/sysinfo"
	"github.com/pkgherald/pkgherald/pkg/telegram"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var (
	cfgFile     string
	distroFlag  string
	prefix      string
	dryRun      bool
	logLevel    string
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "pkgherald",
	Short: "Check for pending OS package updates and report them to Telegram",
	Long: `pkgherald runs the host's package manager in check mode, composes a
report of pending updates and delivers it to a Telegram chat. Made for
cron and systemd timers: one shot, no daemon, no state.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion()
			return nil
		}
		return runCheck(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion()
	},
}

func printVersion() {
	fmt.Printf("pkgherald %s\n", version)
	fmt.Printf("Commit: %s\n", commit)
	fmt.Printf("Built: %s\n", buildDate)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is "+config.DefaultPrefix+"/config.{yaml,json})")
	rootCmd.PersistentFlags().StringVarP(&distroFlag, "distro", "d", "", "distribution family, skips detection (see 'pkgherald families')")
	rootCmd.PersistentFlags().StringVarP(&prefix, "prefix", "p", "", "base directory for config discovery (default "+config.DefaultPrefix+")")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compose and print the report without sending it")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "console log level: debug, info, warn or error")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version and exit")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(familiesCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		if guidance := guidanceFor(err); guidance != "" {
			fmt.Fprintln(os.Stderr, guidance)
		}
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}

// guidanceFor adds a corrective hint after the error line, keyed on the
// failure kind.
func guidanceFor(err error) string {
	var unsupported *distro.UnsupportedFamilyError
	var missing *deps.MissingToolsError
	var preCheck *checker.PreCheckError
	var updateCheck *checker.UpdateCheckError

	switch {
	case errors.As(err, &unsupported):
		return "Pick a family with --distro, or set distro: in the config file."
	case errors.As(err, &missing):
		return "Install the listed tools with your package manager, then run pkgherald again."
	case errors.As(err, &preCheck):
		return fmt.Sprintf("Run `%s` by hand to see what the package manager reports.", preCheck.Command)
	case errors.As(err, &updateCheck):
		return fmt.Sprintf("Run `%s` by hand to see what the package manager reports.", updateCheck.Command)
	}
	return ""
}

// runCheck is the whole pipeline: config, family, tools, system info,
// update check, compose, chunk, dispatch.
func runCheck(ctx context.Context) error {
	cfg, err := config.Load(cfgFile, prefix)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logging.Init(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	log := logging.L("main")

	// Credentials are checked before any command or network work; a dry
	// run never dispatches, so it may run without them.
	if !dryRun {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	family := distroFlag
	if family == "" {
		family = cfg.Distro
	}
	if family == "" {
		detected, err := distro.Detect("")
		if err != nil {
			return err
		}
		family = string(detected)
	}

	profile, err := distro.Resolve(family)
	if err != nil {
		return err
	}

	if err := deps.Verify(deps.Union(deps.Baseline, profile.Tools), nil); err != nil {
		return err
	}

	log.Infow("starting update check", "family", profile.Family, "version", version, "dryRun", dryRun)

	rep := progress.New(os.Stderr)
	rep.Start("Gathering system information")
	defer rep.Stop()

	info := sysinfo.New(cfg.IPEndpoint).Collect(ctx)

	rep.SetLabel(fmt.Sprintf("Checking for updates (%s)", profile.Family))
	result, err := checker.New(runner.New()).Check(ctx, profile)
	if err != nil {
		rep.Stop()
		return err
	}

	body := report.Compose(info, result)

	if dryRun {
		rep.Stop()
		fmt.Println(body)
		return nil
	}

	if !result.Found && !cfg.AlwaysNotify {
		rep.Stop()
		fmt.Println("System is up to date, nothing sent.")
		return nil
	}

	chunks := report.Split(body, report.DefaultLimit)
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	rep.SetLabel(fmt.Sprintf("Sending report (%d %s)", len(texts), plural(len(texts), "message", "messages")))
	creds := telegram.Credentials{Token: cfg.BotToken, ChatID: cfg.ChatID}
	outcomes := telegram.NewClient("").Dispatch(ctx, creds, texts)

	rep.Stop()

	failed := 0
	for _, o := range outcomes {
		if !o.OK() {
			failed++
		}
	}

	// Delivery is best effort: failures are reported on the terminal and
	// in the log, but they do not fail the run.
	switch {
	case failed == 0:
		fmt.Printf("%s Report sent: %d %s in %d %s.\n",
			color.GreenString("OK"),
			result.Count, plural(result.Count, "update", "updates"),
			len(texts), plural(len(texts), "message", "messages"))
	case failed < len(outcomes):
		fmt.Printf("%s Report partially sent: %d of %d %s failed.\n",
			color.YellowString("Warning:"), failed, len(outcomes), plural(len(outcomes), "message", "messages"))
	default:
		fmt.Printf("%s Report not sent: all %d %s failed.\n",
			color.RedString("Warning:"), len(outcomes), plural(len(outcomes), "message", "messages"))
	}

	log.Infow("run finished", "updates", result.Count, "messages", len(texts), "failedSends", failed)
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
