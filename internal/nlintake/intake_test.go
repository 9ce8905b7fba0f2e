package nlintake

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

// fakeClient replays a fixed sequence of ChatJSON responses, one per
// call, so retry behavior can be tested without a real LLM backend.
type fakeClient struct {
	responses []DecomposeResponse
	calls     int
}

func (f *fakeClient) Chat(ctx context.Context, messages []Message) (string, error) {
	return "", nil
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	resp := f.responses[f.calls]
	f.calls++

	b, _ := json.Marshal(resp)
	return json.Unmarshal(b, result)
}

func TestDecomposeSucceedsOnFirstAttempt(t *testing.T) {
	client := &fakeClient{responses: []DecomposeResponse{
		{Tasks: []DraftTask{{Name: "write report", Priority: 6, EstimatedDuration: hoursPtr(2)}}},
	}}

	in := New(client)
	result, err := in.Decompose(context.Background(), Request{Input: "write a report", Now: time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)}, 2)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if len(result.ValidationErrors) != 0 {
		t.Fatalf("expected no validation errors, got %v", result.ValidationErrors)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].Name != "write report" {
		t.Errorf("unexpected tasks: %+v", result.Tasks)
	}
	if client.calls != 1 {
		t.Errorf("expected exactly 1 LLM call, got %d", client.calls)
	}
}

func TestDecomposeRetriesOnInvalidResponseThenSucceeds(t *testing.T) {
	client := &fakeClient{responses: []DecomposeResponse{
		{Tasks: []DraftTask{{Name: "", Priority: 6}}},
		{Tasks: []DraftTask{{Name: "fixed task", Priority: 6}}},
	}}

	in := New(client)
	result, err := in.Decompose(context.Background(), Request{Input: "do something", Now: time.Now()}, 2)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if len(result.ValidationErrors) != 0 {
		t.Fatalf("expected the retry to succeed, got errors: %v", result.ValidationErrors)
	}
	if client.calls != 2 {
		t.Errorf("expected 2 LLM calls (1 retry), got %d", client.calls)
	}
}

func TestDecomposeReturnsValidationErrorsWhenRetriesExhausted(t *testing.T) {
	client := &fakeClient{responses: []DecomposeResponse{
		{Tasks: []DraftTask{{Name: "", Priority: 6}}},
		{Tasks: []DraftTask{{Name: "", Priority: 6}}},
	}}

	in := New(client)
	result, err := in.Decompose(context.Background(), Request{Input: "do something", Now: time.Now()}, 1)
	if err != nil {
		t.Fatalf("Decompose should not error on exhausted retries, got: %v", err)
	}
	if len(result.ValidationErrors) == 0 {
		t.Fatal("expected validation errors when retries are exhausted")
	}
	if client.calls != 2 {
		t.Errorf("expected 2 LLM calls (initial + 1 retry), got %d", client.calls)
	}
}

func TestToTasksConvertsValidDraftsAndSkipsInvalid(t *testing.T) {
	deadline := "2099-01-01"
	drafts := []DraftTask{
		{Name: "valid task", Priority: 5, EstimatedDuration: hoursPtr(1), Deadline: deadline, Tags: []string{"code"}},
		{Name: "", Priority: 5},
	}

	tasks, errs := ToTasks(drafts)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 converted task, got %d", len(tasks))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 conversion error, got %d", len(errs))
	}
	if tasks[0].Deadline == nil {
		t.Error("expected deadline to be set")
	}
	if len(tasks[0].Tags) != 1 || tasks[0].Tags[0] != "code" {
		t.Errorf("expected tags to carry over, got %v", tasks[0].Tags)
	}
}
