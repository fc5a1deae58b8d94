package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"task_manager_app_go/models"
)

// DistributionColors are the pie chart colours, in ProjectDistribution order
var DistributionColors = []string{"#8B5CF6", "#FB923C", "#22C55E"}

// InfoCard is one of the counters at the top of the dashboard
type InfoCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// DashboardView is everything the dashboard page renders
type DashboardView struct {
	UserName           string              `json:"user_name"`
	Date               string              `json:"date"`
	InfoCards          []InfoCard          `json:"info_cards"`
	Distribution       []models.ChartSlice `json:"distribution"`
	DistributionColors []string            `json:"distribution_colors"`
	Priority           []models.ChartSlice `json:"priority"`
	RecentTasks        []models.Task       `json:"recent_tasks"`
	Stale              bool                `json:"stale"`
	FetchedAt          time.Time           `json:"fetched_at"`
}

// BuildDashboardView turns a dashboard payload into the page's view model
func BuildDashboardView(user *models.User, stats *models.DashboardStatistics, now time.Time) (*DashboardView, error) {
	distribution, err := ProjectDistribution(stats)
	if err != nil {
		return nil, err
	}
	priority, err := ProjectPriority(stats)
	if err != nil {
		return nil, err
	}

	var counts models.StatusCounts
	if stats.Charts != nil {
		counts = stats.Charts.TaskDistribution
	}

	tasks := make([]models.Task, 0, len(stats.RecentTasks))
	for _, task := range stats.RecentTasks {
		task.Title = CleanText(task.Title)
		task.Description = CleanText(task.Description)
		tasks = append(tasks, task)
	}

	view := &DashboardView{
		Date: FormatDashboardDate(now),
		InfoCards: []InfoCard{
			{Label: "Total Tasks", Value: FormatThousands(counts.All), Color: "bg-gray-500 text-white"},
			{Label: "Pending Tasks", Value: FormatThousands(counts.Pending), Color: "bg-violet-500 text-white"},
			{Label: "In Progress Tasks", Value: FormatThousands(counts.InProgress), Color: "bg-orange-400 text-white"},
			{Label: "Completed Tasks", Value: FormatThousands(counts.Completed), Color: "bg-green-500 text-white"},
		},
		Distribution:       distribution,
		DistributionColors: DistributionColors,
		Priority:           priority,
		RecentTasks:        tasks,
		FetchedAt:          now,
	}
	if stats.Statistics != nil {
		view.InfoCards = append(view.InfoCards, InfoCard{
			Label: "Overdue Tasks",
			Value: FormatThousands(stats.Statistics.OverdueTasks),
			Color: "bg-red-500 text-white",
		})
	}
	if user != nil {
		view.UserName = CleanText(user.DisplayName())
	}
	return view, nil
}

// DashboardFetcher returns the raw dashboard payload for a token
type DashboardFetcher interface {
	GetUserDashboardRaw(ctx context.Context, token string) ([]byte, error)
}

// DashboardService loads dashboards from the task API and keeps a snapshot of
// the last good payload to fall back on while the API is down
type DashboardService struct {
	API       DashboardFetcher
	Snapshots *SnapshotService // nil disables the fallback
	Now       func() time.Time
}

func NewDashboardService(api DashboardFetcher, snapshots *SnapshotService) *DashboardService {
	return &DashboardService{API: api, Snapshots: snapshots, Now: time.Now}
}

// Load fetches and builds the dashboard of user
func (s *DashboardService) Load(ctx context.Context, token string, user *models.User) (*DashboardView, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}
	now := s.Now()

	raw, err := s.API.GetUserDashboardRaw(ctx, token)
	if err != nil {
		if s.Snapshots == nil || !IsAPIUnavailable(err) {
			return nil, err
		}
		view, fallbackErr := s.fromSnapshot(user, now)
		if fallbackErr != nil {
			if !errors.Is(fallbackErr, ErrNoSnapshot) {
				log.Printf("[WARNING] Dashboard snapshot fallback failed: %v", fallbackErr)
			}
			return nil, err
		}
		log.Printf("[WARNING] Task API unavailable, serving dashboard snapshot for user %s: %v", user.ID, err)
		return view, nil
	}

	stats, err := DecodeDashboardStatistics(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dashboard data: %w", err)
	}

	if s.Snapshots != nil {
		if err := s.Snapshots.Save(user.ID, raw, now); err != nil {
			log.Printf("[WARNING] %v", err)
		}
	}

	return BuildDashboardView(user, stats, now)
}

func (s *DashboardService) fromSnapshot(user *models.User, now time.Time) (*DashboardView, error) {
	snapshot, err := s.Snapshots.Latest(user.ID)
	if err != nil {
		return nil, err
	}

	stats, err := DecodeDashboardStatistics([]byte(snapshot.Payload))
	if err != nil {
		return nil, fmt.Errorf("stored snapshot is corrupt: %w", err)
	}

	view, err := BuildDashboardView(user, stats, now)
	if err != nil {
		return nil, err
	}
	view.Stale = true
	view.FetchedAt = snapshot.FetchedAt
	return view, nil
}
