package stats

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeshelf/codeshelf/internal/git"
	"github.com/codeshelf/codeshelf/internal/models"
)

var testNow = time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

func commitAt(hash string, when time.Time) git.Commit {
	return git.Commit{
		Hash:      hash,
		ShortHash: hash,
		Message:   "commit " + hash,
		Date:      when.Format(time.RFC3339),
	}
}

func TestCollector_Collect(t *testing.T) {
	ctx := context.Background()

	client := git.NewMockGitClient()
	repoA := client.AddRepo("/repos/a")
	repoA.Status.Ahead = 2
	repoA.Commits = []git.Commit{
		commitAt("a1", testNow.Add(-1*time.Hour)),        // today
		commitAt("a2", testNow.AddDate(0, 0, -2)),        // this week
		commitAt("a3", testNow.AddDate(0, 0, -20)),       // in activity window
		commitAt("a4", testNow.AddDate(0, 0, -40)),       // outside window
	}

	repoB := client.AddRepo("/repos/b")
	repoB.Commits = []git.Commit{
		commitAt("b1", testNow.Add(-2*time.Hour)), // today
	}

	projects := []*models.Project{
		{ID: "p1", Name: "alpha", Path: "/repos/a"},
		{ID: "p2", Name: "beta", Path: "/repos/b"},
	}

	collector := NewCollector(client).WithClock(func() time.Time { return testNow })
	dashboard, err := collector.Collect(ctx, projects)
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.TotalProjects)
	assert.Equal(t, 2, dashboard.TodayCommits)
	assert.Equal(t, 3, dashboard.WeekCommits)
	assert.Equal(t, 2, dashboard.UnpushedCommits)

	// recent commits are sorted newest first and annotated with projects
	require.NotEmpty(t, dashboard.RecentCommits)
	assert.Equal(t, "a1", dashboard.RecentCommits[0].Hash)
	assert.Equal(t, "alpha", dashboard.RecentCommits[0].ProjectName)

	// the activity series always spans the full window
	require.Len(t, dashboard.Activity, 30)
	today := dashboard.Activity[len(dashboard.Activity)-1]
	assert.Equal(t, testNow.Format("2006-01-02"), today.Date)
	assert.Equal(t, 2, today.Count)
}

func TestCollector_Collect_SkipsUnreadableProjects(t *testing.T) {
	ctx := context.Background()

	client := git.NewMockGitClient()
	repo := client.AddRepo("/repos/good")
	repo.Commits = []git.Commit{commitAt("g1", testNow.Add(-time.Hour))}

	projects := []*models.Project{
		{ID: "p1", Name: "good", Path: "/repos/good"},
		{ID: "p2", Name: "gone", Path: "/repos/deleted"},
	}

	collector := NewCollector(client).WithClock(func() time.Time { return testNow })
	dashboard, err := collector.Collect(ctx, projects)
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.TotalProjects)
	assert.Equal(t, 1, dashboard.TodayCommits)
}

func TestCollector_Collect_CapsRecentCommits(t *testing.T) {
	ctx := context.Background()
	client := git.NewMockGitClient()

	for i := 0; i < 4; i++ {
		repo := client.AddRepo(fmt.Sprintf("/repos/r%d", i))
		for j := 0; j < 5; j++ {
			repo.Commits = append(repo.Commits,
				commitAt(fmt.Sprintf("c%d-%d", i, j), testNow.Add(-time.Duration(j)*time.Hour)))
		}
	}

	var projects []*models.Project
	for i := 0; i < 4; i++ {
		projects = append(projects, &models.Project{
			ID:   fmt.Sprintf("p%d", i),
			Name: fmt.Sprintf("repo%d", i),
			Path: fmt.Sprintf("/repos/r%d", i),
		})
	}

	collector := NewCollector(client).WithClock(func() time.Time { return testNow })
	dashboard, err := collector.Collect(ctx, projects)
	require.NoError(t, err)

	assert.Len(t, dashboard.RecentCommits, 10)
}

func TestCollector_Collect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	collector := NewCollector(git.NewMockGitClient())
	_, err := collector.Collect(ctx, []*models.Project{{ID: "p1", Path: "/repos/a"}})
	require.ErrorIs(t, err, context.Canceled)
}
