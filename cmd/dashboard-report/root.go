package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"task_manager_app_go/config"
	"task_manager_app_go/models"
	"task_manager_app_go/services"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// dashboardAPI is the part of the task API client the report needs
type dashboardAPI interface {
	GetProfile(ctx context.Context, token string) (*models.User, error)
	GetUserDashboardData(ctx context.Context, token string) (*models.DashboardStatistics, error)
}

type reportOptions struct {
	server  string
	token   string
	xlsx    string
	asJSON  bool
	timeout time.Duration

	// overridable in tests
	newAPI    func(server string, timeout time.Duration) dashboardAPI
	readToken func(prompt string) (string, error)
	now       func() time.Time
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &reportOptions{
		newAPI: func(server string, timeout time.Duration) dashboardAPI {
			return services.NewTaskAPIClient(&config.Config{TaskAPIURL: server, TaskAPITimeout: timeout})
		},
		readToken: readPassword,
		now:       time.Now,
	}

	cmd := &cobra.Command{
		Use:   "dashboard-report",
		Short: "Print a task manager dashboard",
		Long: `Fetch the dashboard of the user owning a task API token and print its
counters and chart data. The token is read from --token, then TASK_API_TOKEN,
and is prompted for when neither is set.

Example:
  dashboard-report --server https://task-manager-5is3.onrender.com --xlsx report.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.server, "server", cfg.TaskAPIURL, "Task API URL")
	cmd.Flags().StringVar(&opts.token, "token", os.Getenv("TASK_API_TOKEN"), "Task API bearer token")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "Also write the dashboard to this spreadsheet")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the dashboard as JSON")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", cfg.TaskAPITimeout, "Task API request timeout")

	return cmd
}

func runReport(ctx context.Context, out io.Writer, opts *reportOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	server := strings.TrimRight(opts.server, "/")
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		return fmt.Errorf("server URL must start with http:// or https://")
	}

	token := strings.TrimSpace(opts.token)
	if token == "" {
		var err error
		if token, err = opts.readToken("Token: "); err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		if token = strings.TrimSpace(token); token == "" {
			return fmt.Errorf("token cannot be empty")
		}
	}

	api := opts.newAPI(server, opts.timeout)

	user, err := api.GetProfile(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	stats, err := api.GetUserDashboardData(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}
	view, err := services.BuildDashboardView(user, stats, opts.now())
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return err
		}
	} else if err := printReport(out, view); err != nil {
		return err
	}

	if opts.xlsx != "" {
		f, err := services.ExportDashboardXLSX(view)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.SaveAs(opts.xlsx); err != nil {
			return fmt.Errorf("failed to save %s: %w", opts.xlsx, err)
		}
		fmt.Fprintf(os.Stderr, "Dashboard written to %s\n", opts.xlsx)
	}
	return nil
}

func printReport(out io.Writer, view *services.DashboardView) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Good day! %s\n%s\n\n", view.UserName, view.Date)
	for _, card := range view.InfoCards {
		fmt.Fprintf(w, "%s\t%s\n", card.Label, card.Value)
	}

	fmt.Fprintln(w, "\nTask Distribution")
	for _, s := range view.Distribution {
		fmt.Fprintf(w, "  %s\t%s\n", s.Label, services.FormatThousands(s.Value))
	}

	fmt.Fprintln(w, "\nTask Priority Levels")
	for _, s := range view.Priority {
		fmt.Fprintf(w, "  %s\t%s\n", s.Label, services.FormatThousands(s.Value))
	}

	if len(view.RecentTasks) > 0 {
		fmt.Fprintln(w, "\nRecent Tasks")
		for _, task := range view.RecentTasks {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", task.Title, task.Status, task.Priority)
		}
	}

	return w.Flush()
}

// readPassword reads a secret without echoing it
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
