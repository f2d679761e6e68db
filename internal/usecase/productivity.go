package usecase

import (
	"context"
	"fmt"
	"sphere-core/internal/domain/entity"
	"strconv"
	"strings"
)

var (
	prioritizeTasksSpec = ToolSpec{
		Tool:        ToolTaskManager,
		Operation:   "prioritize_tasks",
		Persona:     "You are a productivity expert and time management coach.",
		Temperature: 0.6,
		MaxTokens:   1500,
	}
	scheduleSpec = ToolSpec{
		Tool:        ToolTaskManager,
		Operation:   "generate_schedule",
		Persona:     "You are a scheduling expert who creates realistic, productive schedules.",
		Temperature: 0.6,
		MaxTokens:   1200,
	}
	timeUsageSpec = ToolSpec{
		Tool:        ToolTimeManagement,
		Operation:   "analyze_time_usage",
		Persona:     "You are a time management coach specializing in productivity optimization for founders and executives.",
		Temperature: 0.6,
		MaxTokens:   2000,
	}
	calendarSpec = ToolSpec{
		Tool:        ToolTimeManagement,
		Operation:   "calendar_optimization",
		Persona:     "You are a calendar optimization expert.",
		Temperature: 0.6,
		MaxTokens:   1500,
	}
)

// defaultTaskHours is assumed for scheduling when a task has no estimate.
const defaultTaskHours = 2.0

type TaskPrioritization struct {
	Text      string
	TaskCount int
}

func (t *Toolkit) PrioritizeTasks(ctx context.Context, req entity.TaskListRequest) (*TaskPrioritization, error) {
	resp, err := t.orchestrator.Execute(ctx, prioritizeTasksSpec, renderPrioritizeTasks(req))
	if err != nil {
		return nil, err
	}
	return &TaskPrioritization{Text: resp.Content, TaskCount: len(req.Tasks)}, nil
}

func (t *Toolkit) GenerateSchedule(ctx context.Context, req entity.TaskListRequest) (string, error) {
	resp, err := t.orchestrator.Execute(ctx, scheduleSpec, renderSchedule(req))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (t *Toolkit) AnalyzeTimeUsage(ctx context.Context, req entity.WorkPatternRequest) (string, error) {
	resp, err := t.orchestrator.Execute(ctx, timeUsageSpec, renderTimeUsage(req))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (t *Toolkit) OptimizeCalendar(ctx context.Context, req entity.CalendarRequest) (string, error) {
	resp, err := t.orchestrator.Execute(ctx, calendarSpec, renderCalendar(req))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func renderPrioritizeTasks(req entity.TaskListRequest) string {
	lines := make([]string, 0, len(req.Tasks))
	for _, task := range req.Tasks {
		hours := "Unknown"
		if task.EstimatedHours != nil && *task.EstimatedHours != 0 {
			hours = formatHours(*task.EstimatedHours)
		}
		lines = append(lines, fmt.Sprintf("- %s (Deadline: %s, Priority: %s, Est. Hours: %s)",
			task.Title,
			orDefault(task.Deadline, "None"),
			orDefault(task.Priority, "medium"),
			hours,
		))
	}

	return fmt.Sprintf(`Analyze and prioritize these tasks using the Eisenhower Matrix and other productivity frameworks:

%s

Provide:
1. Prioritized Task List (with reasoning)
2. Task Categories:
   - URGENT & IMPORTANT (Do First)
   - IMPORTANT but NOT URGENT (Schedule)
   - URGENT but NOT IMPORTANT (Delegate if possible)
   - NEITHER (Eliminate or Do Later)
3. Suggested Schedule (when to do each task)
4. Time Management Tips
5. Tasks that can be batched together
6. Recommended focus order for maximum productivity

Consider deadlines, estimated time, and stated priorities.
`, strings.Join(lines, "\n"))
}

func renderSchedule(req entity.TaskListRequest) string {
	lines := make([]string, 0, len(req.Tasks))
	for _, task := range req.Tasks {
		hours := defaultTaskHours
		if task.EstimatedHours != nil && *task.EstimatedHours != 0 {
			hours = *task.EstimatedHours
		}
		lines = append(lines, fmt.Sprintf("- %s (%sh)", task.Title, formatHours(hours)))
	}

	return fmt.Sprintf(`Create an optimized schedule for these tasks:

%s

Assumptions:
- Work day: 9 AM to 6 PM (with 1h lunch)
- Focus blocks: 90-minute deep work sessions
- Include breaks every 2 hours
- Most important tasks in morning (peak productivity)

Provide:
1. Day-by-day schedule
2. Time blocking suggestions
3. Energy level considerations
4. Buffer time for unexpected items
5. Review/reflection time

Format as a clear weekly calendar.
`, strings.Join(lines, "\n"))
}

func renderTimeUsage(req entity.WorkPatternRequest) string {
	return fmt.Sprintf(`Analyze this work pattern and provide time management recommendations:

Work Hours: %s
Main Responsibilities: %s
Common Distractions: %s
Goals: %s

Provide:
1. Time Audit Analysis
2. Productivity Bottlenecks Identified
3. Time Wasters to Eliminate
4. Recommended Time Blocking Schedule
5. Focus Time Optimization
6. Meeting Optimization Suggestions
7. Energy Management Tips
8. Tools/Techniques to Implement
9. 30-day Improvement Plan
10. Key Metrics to Track

Be specific and actionable.
`,
		req.TypicalWorkHours,
		strings.Join(req.MainResponsibilities, ", "),
		strings.Join(req.CommonDistractions, ", "),
		req.Goals,
	)
}

func renderCalendar(req entity.CalendarRequest) string {
	return fmt.Sprintf(`Optimize this calendar for maximum productivity:

Current Meetings: %d per week
Work Style: %s

Provide:
1. Ideal Weekly Calendar Template
2. Focus Time Blocks (when to schedule deep work)
3. Meeting Guidelines (when to schedule, how long)
4. Buffer Time Recommendations
5. Day Themes (e.g., Monday = Strategy, Tuesday = Execution)
6. Break Schedule
7. No-Meeting Zones
8. Calendar Rules to Follow

Optimize for energy levels and productivity patterns.
`, len(req.Meetings), orDefault(req.WorkStyle, "mixed"))
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
