package usecase

import (
	"context"
	"strings"
	"testing"

	taskdomain "focusplan-backend/internal/task/domain"
	taskusecase "focusplan-backend/internal/task/usecase"
	"focusplan-backend/pkg/ai"
)

type fakeTaskUsecase struct {
	tasks   []*taskdomain.Task
	deleted []string
	synced  []string
	created []taskusecase.CreateTaskRequest
	report  *taskusecase.SyncReport
}

func (f *fakeTaskUsecase) CreateTask(_ context.Context, _ string, req taskusecase.CreateTaskRequest) (*taskdomain.Task, []taskusecase.Conflict, error) {
	f.created = append(f.created, req)
	return &taskdomain.Task{ID: "new", Title: req.Title}, nil, nil
}

func (f *fakeTaskUsecase) GetTaskByID(_, taskID string) (*taskdomain.Task, error) {
	for _, task := range f.tasks {
		if task.ID == taskID {
			return task, nil
		}
	}
	return nil, taskusecase.ErrTaskNotFound
}

func (f *fakeTaskUsecase) GetUserTasks(string, *string, int, int) ([]*taskdomain.Task, int64, error) {
	return f.tasks, int64(len(f.tasks)), nil
}

func (f *fakeTaskUsecase) UpdateTask(string, string, taskusecase.TaskUpdateRequest) (*taskdomain.Task, error) {
	return nil, taskusecase.ErrTaskNotFound
}

func (f *fakeTaskUsecase) DeleteTask(_ context.Context, _, taskID string) error {
	f.deleted = append(f.deleted, taskID)
	return nil
}

func (f *fakeTaskUsecase) SyncTask(_ context.Context, _, taskID string) (*taskdomain.Task, error) {
	f.synced = append(f.synced, taskID)
	task, err := f.GetTaskByID("", taskID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (f *fakeTaskUsecase) SyncAllPending(context.Context, string) (*taskusecase.SyncReport, error) {
	return f.report, nil
}

func (f *fakeTaskUsecase) FindByKeyword(_, keyword string) ([]*taskdomain.Task, error) {
	var matched []*taskdomain.Task
	needle := strings.ToLower(keyword)
	for _, task := range f.tasks {
		if strings.Contains(strings.ToLower(task.Title), needle) {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

func (f *fakeTaskUsecase) CheckConflicts(context.Context, string, string, string, string) (*taskusecase.ConflictReport, error) {
	return &taskusecase.ConflictReport{}, nil
}

type fakeAssistantService struct {
	result *ai.ChatResult
}

func (f *fakeAssistantService) Chat(context.Context, []ai.Message, []ai.Tool) (*ai.ChatResult, error) {
	return f.result, nil
}

type fakeContext struct{}

func (fakeContext) ContextSummary(context.Context, string) (string, error) {
	return "The calendar has no upcoming events.", nil
}

func newAssistant(tasks *fakeTaskUsecase, result *ai.ChatResult) AssistantUsecase {
	return NewAssistantUsecase(&fakeAssistantService{result: result}, tasks, fakeContext{})
}

func TestChatPlainReply(t *testing.T) {
	uc := newAssistant(&fakeTaskUsecase{}, &ai.ChatResult{Content: "Hello!"})

	resp, err := uc.Chat(context.Background(), "user-1", "hi", nil)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Reply != "Hello!" || resp.Action != ActionNone {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestChatCreateTaskToolCall(t *testing.T) {
	tasks := &fakeTaskUsecase{}
	uc := newAssistant(tasks, &ai.ChatResult{ToolCalls: []ai.ToolCall{{
		Name:      "create_task",
		Arguments: `{"title":"Dinner","date":"2024-06-01","startTime":"18:00","endTime":"19:30"}`,
	}}})

	resp, err := uc.Chat(context.Background(), "user-1", "dinner at 6", nil)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Action != ActionCreateTask {
		t.Errorf("action = %q, want create_task", resp.Action)
	}
	if len(tasks.created) != 1 {
		t.Fatalf("created %d tasks, want 1", len(tasks.created))
	}
	if tasks.created[0].ScheduledTime != "2024-06-01T18:00:00" {
		t.Errorf("scheduled = %q", tasks.created[0].ScheduledTime)
	}
	if tasks.created[0].EndTime != "2024-06-01T19:30:00" {
		t.Errorf("end = %q", tasks.created[0].EndTime)
	}
}

func TestChatDeleteAmbiguousMatchTakesNoAction(t *testing.T) {
	tasks := &fakeTaskUsecase{tasks: []*taskdomain.Task{
		{ID: "1", Title: "Gym session"},
		{ID: "2", Title: "Gym with friends"},
	}}
	uc := newAssistant(tasks, &ai.ChatResult{ToolCalls: []ai.ToolCall{{
		Name:      "delete_task",
		Arguments: `{"taskIdentifier":"gym"}`,
	}}})

	resp, err := uc.Chat(context.Background(), "user-1", "delete the gym task", nil)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Action != ActionNone {
		t.Errorf("ambiguous match must not act, got action %q", resp.Action)
	}
	if len(tasks.deleted) != 0 {
		t.Errorf("nothing should be deleted, got %v", tasks.deleted)
	}
	if !strings.Contains(resp.Reply, "Gym session") || !strings.Contains(resp.Reply, "Gym with friends") {
		t.Errorf("disambiguation reply should list candidates, got %q", resp.Reply)
	}
}

func TestChatDeleteNoMatch(t *testing.T) {
	tasks := &fakeTaskUsecase{}
	uc := newAssistant(tasks, &ai.ChatResult{ToolCalls: []ai.ToolCall{{
		Name:      "delete_task",
		Arguments: `{"taskIdentifier":"dentist"}`,
	}}})

	resp, err := uc.Chat(context.Background(), "user-1", "delete dentist", nil)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Action != ActionNone || len(tasks.deleted) != 0 {
		t.Errorf("no match must not act, got %+v", resp)
	}
}

func TestChatDeleteSingleMatch(t *testing.T) {
	tasks := &fakeTaskUsecase{tasks: []*taskdomain.Task{{ID: "1", Title: "Gym session"}}}
	uc := newAssistant(tasks, &ai.ChatResult{ToolCalls: []ai.ToolCall{{
		Name:      "delete_task",
		Arguments: `{"taskIdentifier":"gym"}`,
	}}})

	resp, err := uc.Chat(context.Background(), "user-1", "delete the gym task", nil)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Action != ActionDeleteTask {
		t.Errorf("action = %q, want delete_task", resp.Action)
	}
	if len(tasks.deleted) != 1 || tasks.deleted[0] != "1" {
		t.Errorf("deleted = %v, want [1]", tasks.deleted)
	}
}

func TestChatSyncAll(t *testing.T) {
	tasks := &fakeTaskUsecase{report: &taskusecase.SyncReport{Synced: 3}}
	uc := newAssistant(tasks, &ai.ChatResult{ToolCalls: []ai.ToolCall{{
		Name:      "sync_task",
		Arguments: `{"syncAll":true}`,
	}}})

	resp, err := uc.Chat(context.Background(), "user-1", "sync everything", nil)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Action != ActionSyncTask || resp.Report == nil || resp.Report.Synced != 3 {
		t.Errorf("unexpected response: %+v", resp)
	}
}
