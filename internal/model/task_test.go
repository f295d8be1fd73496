package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPriority_Weight(t *testing.T) {
	tests := []struct {
		priority Priority
		want     int
	}{
		{PriorityHigh, 3},
		{PriorityMedium, 2},
		{PriorityLow, 1},
		{Priority("urgent"), 0},
		{Priority(""), 0},
	}
	for _, tt := range tests {
		if got := tt.priority.Weight(); got != tt.want {
			t.Errorf("Weight(%q) = %d, want %d", tt.priority, got, tt.want)
		}
	}
}

func TestPriority_Valid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Valid() {
			t.Errorf("Valid(%q) = false, want true", p)
		}
	}
	if Priority("urgent").Valid() {
		t.Error("Valid(\"urgent\") = true, want false")
	}
}

func TestTask_Clone(t *testing.T) {
	at := time.Date(2024, 1, 14, 8, 10, 0, 0, time.UTC)
	task := Task{
		ID:          3,
		Title:       "Morning run",
		Completed:   true,
		CompletedAt: &at,
	}

	clone := task.Clone()
	*clone.CompletedAt = clone.CompletedAt.Add(time.Hour)
	clone.Title = "changed"

	if task.Title != "Morning run" {
		t.Errorf("original title mutated: %q", task.Title)
	}
	if !task.CompletedAt.Equal(at) {
		t.Errorf("original CompletedAt mutated: %v", task.CompletedAt)
	}
}

func TestTask_UnmarshalJSON_Canonical(t *testing.T) {
	data := []byte(`{
		"id": 2,
		"title": "Write report",
		"description": "quarterly numbers",
		"category": "Work",
		"priority": "high",
		"completed": true,
		"createdAt": "2024-01-12T10:20:00Z",
		"completedAt": "2024-01-13T15:00:00Z"
	}`)

	var task Task
	if err := json.Unmarshal(data, &task); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if task.ID != 2 || task.Title != "Write report" || task.Priority != PriorityHigh {
		t.Errorf("unexpected task: %+v", task)
	}
	if !task.Completed || task.CompletedAt == nil {
		t.Errorf("completion not decoded: %+v", task)
	}
}

func TestTask_UnmarshalJSON_LegacyAliases(t *testing.T) {
	data := []byte(`{
		"Id": 7,
		"title_c": "Buy milk",
		"description_c": "two liters",
		"category_c": "Shopping",
		"priority_c": "low",
		"completed_c": false,
		"CreatedOn": "2024-01-15T09:30:00Z"
	}`)

	var task Task
	if err := json.Unmarshal(data, &task); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if task.ID != 7 {
		t.Errorf("ID = %d, want 7", task.ID)
	}
	if task.Title != "Buy milk" || task.Description != "two liters" {
		t.Errorf("legacy text fields not mapped: %+v", task)
	}
	if task.Category != "Shopping" || task.Priority != PriorityLow {
		t.Errorf("legacy category/priority not mapped: %+v", task)
	}
	if task.Completed || task.CompletedAt != nil {
		t.Errorf("completion should be absent: %+v", task)
	}
	want := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if !task.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", task.CreatedAt, want)
	}
}

func TestTask_UnmarshalJSON_NullCompletedAt(t *testing.T) {
	data := []byte(`{"id": 1, "title": "t", "completed": false, "completedAt": null}`)

	var task Task
	if err := json.Unmarshal(data, &task); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if task.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil", task.CompletedAt)
	}
}

func TestTask_MarshalOmitsAbsentCompletedAt(t *testing.T) {
	task := Task{ID: 1, Title: "t", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) == "" || containsField(data, "completedAt") {
		t.Errorf("completedAt should be omitted when absent: %s", data)
	}
}

func TestCategory_UnmarshalJSON_LegacyAliases(t *testing.T) {
	data := []byte(`{"Id": 4, "name_c": "Health", "color_c": "#10B981", "task_count_c": 9}`)

	var category Category
	if err := json.Unmarshal(data, &category); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if category.ID != 4 || category.Name != "Health" || category.Color != "#10B981" || category.TaskCount != 9 {
		t.Errorf("unexpected category: %+v", category)
	}
}

func containsField(data []byte, field string) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return false
	}
	_, ok := m[field]
	return ok
}
