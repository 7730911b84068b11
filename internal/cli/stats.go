package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeshelf/codeshelf/internal/stats"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	deps *Deps
}

// NewStatsCommand creates a new stats command
func NewStatsCommand(deps *Deps) *cobra.Command {
	cmd := &StatsCommand{deps: deps}

	return &cobra.Command{
		Use:   "stats",
		Short: "Show commit activity across the shelf",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// Run executes the stats command
func (c *StatsCommand) Run(cmd *cobra.Command, _ []string) error {
	collector := stats.NewCollector(c.deps.Git)
	dashboard, err := collector.Collect(cmd.Context(), c.deps.Coordinator.Store().ListProjects())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Projects: %d\n", dashboard.TotalProjects)
	_, _ = fmt.Fprintf(out, "Commits today: %d, this week: %d\n", dashboard.TodayCommits, dashboard.WeekCommits)
	_, _ = fmt.Fprintf(out, "Unpushed commits: %d\n", dashboard.UnpushedCommits)

	if len(dashboard.RecentCommits) > 0 {
		_, _ = fmt.Fprintln(out, "\nRecent commits:")
		for _, commit := range dashboard.RecentCommits {
			_, _ = fmt.Fprintf(out, "  %s  %-20s %s\n", commit.ShortHash, commit.ProjectName, commit.Message)
		}
	}

	_, _ = fmt.Fprintln(out, "\nActivity (last 30 days):")
	for _, day := range dashboard.Activity {
		if day.Count == 0 {
			continue
		}
		_, _ = fmt.Fprintf(out, "  %s %s (%d)\n", day.Date, strings.Repeat("#", day.Count), day.Count)
	}
	return nil
}
