package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	taskdomain "focusplan-backend/internal/task/domain"
	taskusecase "focusplan-backend/internal/task/usecase"
	"focusplan-backend/pkg/ai"
)

type createTaskArgs struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

type taskTargetArgs struct {
	TaskIdentifier string `json:"taskIdentifier"`
	SyncAll        bool   `json:"syncAll"`
}

// dispatch executes the tool call the model requested and phrases the result.
func (u *assistantUsecase) dispatch(ctx context.Context, userID string, call ai.ToolCall) *ChatResponse {
	switch call.Name {
	case "create_task":
		return u.dispatchCreate(ctx, userID, call.Arguments)
	case "delete_task":
		return u.dispatchDelete(ctx, userID, call.Arguments)
	case "sync_task":
		return u.dispatchSync(ctx, userID, call.Arguments)
	default:
		log.Printf("[Assistant] model requested unknown tool %q", call.Name)
		return &ChatResponse{Reply: "I couldn't perform that action."}
	}
}

func (u *assistantUsecase) dispatchCreate(ctx context.Context, userID, rawArgs string) *ChatResponse {
	var args createTaskArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return &ChatResponse{Reply: "I couldn't read the task details, please rephrase."}
	}
	if args.Title == "" || args.Date == "" || args.StartTime == "" {
		return &ChatResponse{Reply: "I need at least a title, a date and a start time to create a task."}
	}

	req := taskusecase.CreateTaskRequest{
		Title:         args.Title,
		Notes:         args.Description,
		ScheduledTime: fmt.Sprintf("%sT%s:00", args.Date, args.StartTime),
	}
	if args.EndTime != "" {
		req.EndTime = fmt.Sprintf("%sT%s:00", args.Date, args.EndTime)
	}

	task, conflicts, err := u.tasks.CreateTask(ctx, userID, req)
	if err != nil {
		return &ChatResponse{Reply: fmt.Sprintf("I couldn't create the task: %v", err)}
	}

	reply := fmt.Sprintf("Created \"%s\" on %s at %s.", task.Title, args.Date, args.StartTime)
	if len(conflicts) > 0 {
		reply += fmt.Sprintf(" Heads up: it overlaps %s.", describeConflicts(conflicts))
	}
	return &ChatResponse{Reply: reply, Action: ActionCreateTask, Task: task}
}

func (u *assistantUsecase) dispatchDelete(ctx context.Context, userID, rawArgs string) *ChatResponse {
	var args taskTargetArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil || args.TaskIdentifier == "" {
		return &ChatResponse{Reply: "Which task should I delete?"}
	}

	task, response := u.resolveTask(userID, args.TaskIdentifier, "delete")
	if response != nil {
		return response
	}

	if err := u.tasks.DeleteTask(ctx, userID, task.ID); err != nil {
		return &ChatResponse{Reply: fmt.Sprintf("I couldn't delete \"%s\": %v", task.Title, err)}
	}
	return &ChatResponse{
		Reply:  fmt.Sprintf("Deleted \"%s\".", task.Title),
		Action: ActionDeleteTask,
		Task:   task,
	}
}

func (u *assistantUsecase) dispatchSync(ctx context.Context, userID, rawArgs string) *ChatResponse {
	var args taskTargetArgs
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return &ChatResponse{Reply: "Which task should I sync?"}
		}
	}

	if args.SyncAll {
		report, err := u.tasks.SyncAllPending(ctx, userID)
		if err != nil {
			return &ChatResponse{Reply: fmt.Sprintf("The sync failed: %v", err)}
		}
		reply := fmt.Sprintf("Synced %d task(s) to your calendar.", report.Synced)
		if report.Failed > 0 {
			reply = fmt.Sprintf("Synced %d task(s); %d failed.", report.Synced, report.Failed)
		}
		return &ChatResponse{Reply: reply, Action: ActionSyncTask, Report: report}
	}

	if args.TaskIdentifier == "" {
		return &ChatResponse{Reply: "Which task should I sync? You can also say \"sync all\"."}
	}

	task, response := u.resolveTask(userID, args.TaskIdentifier, "sync")
	if response != nil {
		return response
	}

	synced, err := u.tasks.SyncTask(ctx, userID, task.ID)
	if err != nil {
		return &ChatResponse{Reply: fmt.Sprintf("I couldn't sync \"%s\": %v", task.Title, err)}
	}
	return &ChatResponse{
		Reply:  fmt.Sprintf("Synced \"%s\" to your calendar.", synced.Title),
		Action: ActionSyncTask,
		Task:   synced,
	}
}

// resolveTask matches the identifier against the user's tasks. Zero matches
// and ambiguous matches produce a reply instead of an action.
func (u *assistantUsecase) resolveTask(userID, identifier, verb string) (*taskdomain.Task, *ChatResponse) {
	matches, err := u.tasks.FindByKeyword(userID, identifier)
	if err != nil {
		return nil, &ChatResponse{Reply: fmt.Sprintf("I couldn't look up your tasks: %v", err)}
	}
	switch len(matches) {
	case 0:
		return nil, &ChatResponse{Reply: fmt.Sprintf("I couldn't find a task matching \"%s\".", identifier)}
	case 1:
		return matches[0], nil
	default:
		titles := make([]string, 0, len(matches))
		for _, m := range matches {
			titles = append(titles, fmt.Sprintf("\"%s\"", m.Title))
		}
		return nil, &ChatResponse{Reply: fmt.Sprintf(
			"Several tasks match \"%s\": %s. Which one should I %s?",
			identifier, strings.Join(titles, ", "), verb,
		)}
	}
}

func describeConflicts(conflicts []taskusecase.Conflict) string {
	parts := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		parts = append(parts, fmt.Sprintf("\"%s\" (%s-%s)", c.Title, c.StartTime, c.EndTime))
	}
	return strings.Join(parts, ", ")
}
