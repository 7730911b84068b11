// Package stats aggregates commit activity across the shelf for the
// dashboard view.
package stats

import (
	"context"
	"sort"
	"time"

	"github.com/codeshelf/codeshelf/internal/git"
	"github.com/codeshelf/codeshelf/internal/models"
)

// historyWindow is how many commits per project feed the aggregation.
const historyWindow = 200

// activityDays is the span of the daily activity series.
const activityDays = 30

// RecentCommit is a commit annotated with its project.
type RecentCommit struct {
	git.Commit
	ProjectName string `json:"projectName"`
	ProjectPath string `json:"projectPath"`
}

// DailyActivity is one bucket of the activity series.
type DailyActivity struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Dashboard summarizes activity across all projects.
type Dashboard struct {
	TotalProjects   int             `json:"totalProjects"`
	TodayCommits    int             `json:"todayCommits"`
	WeekCommits     int             `json:"weekCommits"`
	UnpushedCommits int             `json:"unpushedCommits"`
	RecentCommits   []RecentCommit  `json:"recentCommits"`
	Activity        []DailyActivity `json:"activity"`
}

// Collector computes dashboards through a GitClient.
type Collector struct {
	git git.GitClient
	now func() time.Time
}

// NewCollector creates a Collector
func NewCollector(client git.GitClient) *Collector {
	return &Collector{
		git: client,
		now: time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (c *Collector) WithClock(now func() time.Time) *Collector {
	c.now = now
	return c
}

// Collect walks every project and aggregates commit counts, unpushed
// totals and the daily activity series. Projects whose history cannot
// be read are skipped rather than failing the whole dashboard.
func (c *Collector) Collect(ctx context.Context, projects []*models.Project) (*Dashboard, error) {
	now := c.now()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7)
	activityStart := now.AddDate(0, 0, -(activityDays - 1))

	dashboard := &Dashboard{TotalProjects: len(projects)}
	activity := make(map[string]int)

	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		status, err := c.git.Status(ctx, p.Path)
		if err == nil {
			dashboard.UnpushedCommits += status.Ahead
		}

		commits, err := c.git.CommitHistory(ctx, p.Path, historyWindow, "")
		if err != nil {
			continue
		}

		for _, commit := range commits {
			when, err := time.Parse(time.RFC3339, commit.Date)
			if err != nil {
				continue
			}

			day := when.Format("2006-01-02")
			if day == today {
				dashboard.TodayCommits++
			}
			if when.After(weekAgo) {
				dashboard.WeekCommits++
			}
			if !when.Before(activityStart) {
				activity[day]++
			}
		}

		for i, commit := range commits {
			if i >= 5 {
				break
			}
			dashboard.RecentCommits = append(dashboard.RecentCommits, RecentCommit{
				Commit:      commit,
				ProjectName: p.Name,
				ProjectPath: p.Path,
			})
		}
	}

	sort.Slice(dashboard.RecentCommits, func(i, j int) bool {
		return dashboard.RecentCommits[i].Date > dashboard.RecentCommits[j].Date
	})
	if len(dashboard.RecentCommits) > 10 {
		dashboard.RecentCommits = dashboard.RecentCommits[:10]
	}

	for i := 0; i < activityDays; i++ {
		day := activityStart.AddDate(0, 0, i).Format("2006-01-02")
		dashboard.Activity = append(dashboard.Activity, DailyActivity{
			Date:  day,
			Count: activity[day],
		})
	}

	return dashboard, nil
}
