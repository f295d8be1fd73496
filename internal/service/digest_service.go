package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"flowlist/internal/filter"
	"flowlist/internal/model"
	"flowlist/internal/repository"
)

// DigestService builds human-readable summaries of the task list for
// daily notifications.
type DigestService struct {
	taskRepo *repository.TaskRepository
}

func NewDigestService(taskRepo *repository.TaskRepository) *DigestService {
	return &DigestService{taskRepo: taskRepo}
}

// DailySummary renders the current visible view as Telegram-flavored
// HTML: active tasks in display order with priority icons, then the
// completed tally.
func (s *DigestService) DailySummary(ctx context.Context, now time.Time) (string, error) {
	tasks, err := s.taskRepo.GetAll(ctx)
	if err != nil {
		return "", err
	}

	cfg := filter.DefaultConfig()
	cfg.ShowCompleted = true
	view := filter.VisibleTasks(tasks, cfg)

	var builder strings.Builder
	builder.WriteString("📋 <b>FlowList daily digest</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("02.01.2006")))

	builder.WriteString("🔥 <b>Active tasks</b>\n")
	if len(view.Active) == 0 {
		builder.WriteString("— nothing open, enjoy the day\n")
	} else {
		for _, task := range view.Active {
			builder.WriteString(formatDigestTask(task))
		}
	}

	builder.WriteString(fmt.Sprintf("\n✅ Completed: %d", len(view.Completed)))

	return strings.TrimSpace(builder.String()), nil
}

func formatDigestTask(task model.Task) string {
	var sb strings.Builder

	icon := "🟢"
	switch task.Priority {
	case model.PriorityHigh:
		icon = "⚠️"
	case model.PriorityMedium:
		icon = "⏳"
	}

	title := html.EscapeString(strings.TrimSpace(task.Title))
	sb.WriteString(fmt.Sprintf("%s %s", icon, title))

	if name := strings.TrimSpace(task.Category); name != "" {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(name)))
	}

	if task.Description != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(task.Description))))
	}

	sb.WriteByte('\n')
	return sb.String()
}
