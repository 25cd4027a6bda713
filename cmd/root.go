package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"taskpilot/action"
	"taskpilot/config"
	"taskpilot/llm"
	"taskpilot/mailer"
	"taskpilot/quote"
	"taskpilot/schedule"
	"taskpilot/task"
)

var autoConfirm bool

var rootCmd = &cobra.Command{
	Use:   "taskpilot",
	Short: "Taskpilot is a terminal assistant that turns to-do items into actions",
	Long: `Taskpilot reads the to-do list in a directory, asks a language model
which action fits each item, confirms with you, and executes it: sending
mail, creating calendar invites, scheduling a daily stock price report,
or organizing and compressing the files in the directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVarP(&autoConfirm, "yes", "y", false, "Confirm every proposed task automatically")

	rootCmd.AddCommand(configCmd)
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := os.Stdout
	reader := bufio.NewReader(os.Stdin)

	fmt.Fprint(out, "Enter the directory path to organize: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read directory path: %w", err)
	}
	dir := normalizeDir(line)

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	adapter, err := llm.CreateAdapter(cfg.Model, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return err
	}

	sender := buildSender(cfg)
	quotes := quote.NewClient(cfg.QuoteBaseURL)
	registry := schedule.NewRegistry(quotes, sender, out)
	library := action.NewLibrary(sender, registry, dir)
	dispatcher := task.NewDispatcher(library)

	confirm := func(prompt string) (bool, error) {
		fmt.Fprint(out, prompt)
		if autoConfirm {
			fmt.Fprintln(out, "yes (auto-confirmed)")
			return true, nil
		}
		answer, err := reader.ReadString('\n')
		if err != nil {
			return false, err
		}
		return task.IsAffirmative(answer), nil
	}
	analyzer := task.NewAnalyzer(adapter, dispatcher, confirm, out)

	// The poller runs from here on so a same-minute stock report can fire
	// while the interactive flow is still blocked on input.
	registry.Start()

	tasks, err := task.ReadList(dir)
	if err != nil {
		fmt.Fprintf(out, "Error reading %s: %v\n", task.TaskListName, err)
	}
	if len(tasks) == 0 {
		fmt.Fprintf(out, "%s not found in the specified directory.\n", task.TaskListName)
	} else {
		analyzer.Run(ctx, tasks)
	}

	organizer := action.NewOrganizer(
		action.NewConvertClient(cfg.ConvertAPISecret, ""),
		cfg.ImageQuality,
		out,
	)
	if err := analyzer.RunOrganize(ctx, dir, organizer); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}

	// Keep the process alive so scheduled jobs keep firing.
	if len(registry.Jobs()) > 0 {
		fmt.Fprintln(out, "\nScheduled jobs are running. Press Ctrl+C to exit.")
	} else {
		fmt.Fprintln(out, "\nPress Ctrl+C to exit.")
	}
	<-ctx.Done()

	fmt.Fprintln(out, "\nProgram terminated by user. Exiting...")
	<-registry.Stop().Done()
	return nil
}

// buildSender wires the SMTP transport, degrading to a sender that reports
// the configuration problem at send time so the rest of the assistant
// still works without mail credentials.
func buildSender(cfg *config.Config) schedule.Sender {
	smtp, err := mailer.New(mailer.Options{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		From:     cfg.FromEmail,
		Password: cfg.EmailPassword,
	})
	if err != nil {
		return &unconfiguredSender{err: err}
	}
	return smtp
}

type unconfiguredSender struct {
	err error
}

func (s *unconfiguredSender) Send(subject, body, to string) error {
	return fmt.Errorf("mail is not configured: %w", s.err)
}

// normalizeDir strips the quotes that come along with copied paths.
func normalizeDir(input string) string {
	dir := strings.TrimSpace(input)
	dir = strings.Trim(dir, `"'`)
	return filepath.Clean(strings.TrimSpace(dir))
}
