package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/ops"
	"github.com/fantrack/fantrack/internal/tracker"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	session *ops.Session
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(session *ops.Session) *Handlers {
	return &Handlers{session: session}
}

// Request types for each tool

// ListRequest represents the arguments for tracker_list.
type ListRequest struct {
	Search string `json:"search,omitempty"`
	Type   string `json:"type,omitempty"`
	Sort   string `json:"sort,omitempty"`
}

// GetRequest represents the arguments for tracker_get.
type GetRequest struct {
	ID string `json:"id"`
}

// ViewRequest represents the arguments for tracker_view.
type ViewRequest struct {
	ID            string `json:"id"`
	Search        string `json:"search,omitempty"`
	Sort          string `json:"sort,omitempty"`
	HideCompleted bool   `json:"hide_completed,omitempty"`
}

// CreateRequest represents the arguments for tracker_create.
type CreateRequest struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Color    string `json:"color,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// UpdateRequest represents the arguments for tracker_update.
type UpdateRequest struct {
	ID       string  `json:"id"`
	Title    *string `json:"title,omitempty"`
	Color    *string `json:"color,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Currency *string `json:"currency,omitempty"`
}

// DeleteRequest represents the arguments for tracker_delete.
type DeleteRequest struct {
	ID      string `json:"id"`
	Confirm bool   `json:"confirm,omitempty"`
}

// SetNoteRequest represents the arguments for tracker_set_note.
type SetNoteRequest struct {
	ID      string `json:"id"`
	Content string `json:"content,omitempty"`
}

// TaskAddRequest represents the arguments for task_add.
type TaskAddRequest struct {
	TrackerID string   `json:"tracker_id"`
	Text      string   `json:"text"`
	Value     *float64 `json:"value,omitempty"`
	Quantity  int      `json:"quantity,omitempty"`
}

// TaskUpdateRequest represents the arguments for task_update.
type TaskUpdateRequest struct {
	TrackerID string   `json:"tracker_id"`
	TaskID    string   `json:"task_id"`
	Text      string   `json:"text"`
	Value     *float64 `json:"value,omitempty"`
	Quantity  int      `json:"quantity,omitempty"`
}

// TaskRefRequest identifies one task inside a tracker.
type TaskRefRequest struct {
	TrackerID string `json:"tracker_id"`
	TaskID    string `json:"task_id"`
}

// BulkRequest represents the arguments for task_clear_completed and
// task_delete_all.
type BulkRequest struct {
	TrackerID string `json:"tracker_id"`
	Confirm   bool   `json:"confirm,omitempty"`
}

// HabitToggleRequest represents the arguments for habit_toggle_date.
type HabitToggleRequest struct {
	TrackerID string `json:"tracker_id"`
	TaskID    string `json:"task_id"`
	Date      string `json:"date,omitempty"`
}

// SettingsUpdateRequest represents the arguments for settings_update.
type SettingsUpdateRequest struct {
	ThemeID   *string `json:"theme_id,omitempty"`
	PatternID *string `json:"pattern_id,omitempty"`
	APIKey    *string `json:"api_key,omitempty"`
	Language  *string `json:"language,omitempty"`
}

// ExportRequest represents the arguments for backup_export.
type ExportRequest struct {
	Path string `json:"path,omitempty"`
}

// ImportRequest represents the arguments for backup_import.
type ImportRequest struct {
	Path    string `json:"path"`
	Confirm bool   `json:"confirm,omitempty"`
}

// SuggestRequest represents the arguments for tracker_suggest.
type SuggestRequest struct {
	TrackerID string `json:"tracker_id"`
	Prompt    string `json:"prompt"`
	Apply     bool   `json:"apply,omitempty"`
}

// errorResult converts an error into an MCP error result with a JSON body.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if tErr, ok := err.(*errors.TrackError); ok {
		errorObj := map[string]any{
			"code":    tErr.Code,
			"message": tErr.Message,
			"status":  tErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths
		if tErr.Code != errors.ErrInternal && tErr.Details != nil {
			errorObj["details"] = tErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result with JSON content.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

// HandleList handles the tracker_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListTrackers(h.session, ops.ListTrackersInput{
		Search: input.Search,
		Kind:   tracker.Kind(input.Type),
		Sort:   input.Sort,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGet handles the tracker_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetTracker(h.session, ops.GetTrackerInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleView handles the tracker_view tool call.
func (h *Handlers) HandleView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ViewRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.TrackerView(h.session, ops.TrackerViewInput{
		TrackerID:     input.ID,
		Search:        input.Search,
		Sort:          tracker.SortKey(input.Sort),
		HideCompleted: input.HideCompleted,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCreate handles the tracker_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CreateTracker(h.session, ops.CreateTrackerInput{
		Title:    input.Title,
		Kind:     tracker.Kind(input.Type),
		Color:    input.Color,
		Icon:     input.Icon,
		Currency: input.Currency,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleUpdate handles the tracker_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdateTracker(h.session, ops.UpdateTrackerInput{
		ID:       input.ID,
		Title:    input.Title,
		Color:    input.Color,
		Icon:     input.Icon,
		Currency: input.Currency,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the tracker_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteTracker(h.session, ops.DeleteTrackerInput{
		ID:      input.ID,
		Confirm: input.Confirm,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSetNote handles the tracker_set_note tool call.
func (h *Handlers) HandleSetNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SetNoteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SetNote(h.session, ops.SetNoteInput{
		TrackerID: input.ID,
		Content:   input.Content,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTaskAdd handles the task_add tool call.
func (h *Handlers) HandleTaskAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TaskAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddTask(h.session, ops.AddTaskInput{
		TrackerID: input.TrackerID,
		Text:      input.Text,
		Value:     input.Value,
		Quantity:  input.Quantity,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTaskUpdate handles the task_update tool call.
func (h *Handlers) HandleTaskUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TaskUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdateTask(h.session, ops.UpdateTaskInput{
		TrackerID: input.TrackerID,
		TaskID:    input.TaskID,
		Text:      input.Text,
		Value:     input.Value,
		Quantity:  input.Quantity,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTaskToggle handles the task_toggle tool call.
func (h *Handlers) HandleTaskToggle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TaskRefRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ToggleTask(h.session, ops.ToggleTaskInput{
		TrackerID: input.TrackerID,
		TaskID:    input.TaskID,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTaskDelete handles the task_delete tool call.
func (h *Handlers) HandleTaskDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TaskRefRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteTask(h.session, ops.DeleteTaskInput{
		TrackerID: input.TrackerID,
		TaskID:    input.TaskID,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleClearCompleted handles the task_clear_completed tool call.
func (h *Handlers) HandleClearCompleted(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BulkRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ClearCompleted(h.session, ops.ClearCompletedInput{
		TrackerID: input.TrackerID,
		Confirm:   input.Confirm,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDeleteAll handles the task_delete_all tool call.
func (h *Handlers) HandleDeleteAll(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BulkRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteAllTasks(h.session, ops.DeleteAllTasksInput{
		TrackerID: input.TrackerID,
		Confirm:   input.Confirm,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHabitToggle handles the habit_toggle_date tool call.
func (h *Handlers) HandleHabitToggle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HabitToggleRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ToggleHabitDate(h.session, ops.ToggleHabitDateInput{
		TrackerID: input.TrackerID,
		TaskID:    input.TaskID,
		Date:      input.Date,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHabitCalendar handles the habit_calendar tool call.
func (h *Handlers) HandleHabitCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TaskRefRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.HabitCalendar(h.session, ops.HabitCalendarInput{
		TrackerID: input.TrackerID,
		TaskID:    input.TaskID,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSettingsGet handles the settings_get tool call.
func (h *Handlers) HandleSettingsGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.GetSettings(h.session))
}

// HandleSettingsUpdate handles the settings_update tool call.
func (h *Handlers) HandleSettingsUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SettingsUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdateSettings(h.session, ops.UpdateSettingsInput{
		ThemeID:   input.ThemeID,
		PatternID: input.PatternID,
		APIKey:    input.APIKey,
		Language:  input.Language,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the backup_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(h.session, ops.ExportInput{Path: input.Path})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleImport handles the backup_import tool call. Without confirm the
// payload is staged and the pending description returned; with confirm
// it is applied immediately after staging.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	staged, err := ops.StageImport(h.session, ops.StageImportInput{Path: input.Path})
	if err != nil {
		return errorResult(err), nil
	}
	if !input.Confirm {
		return successResult(staged)
	}

	result, err := ops.ConfirmImport(h.session)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleConfirm handles the pending_confirm tool call.
func (h *Handlers) HandleConfirm(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ConfirmPending(h.session)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCancel handles the pending_cancel tool call.
func (h *Handlers) HandleCancel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cancelled := h.session.Pending() != nil
	ops.CancelPending(h.session)
	return successResult(map[string]any{"cancelled": cancelled})
}

// HandleSuggest handles the tracker_suggest tool call.
func (h *Handlers) HandleSuggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SuggestRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Suggest(ctx, h.session, ops.SuggestInput{
		TrackerID: input.TrackerID,
		Prompt:    input.Prompt,
		Apply:     input.Apply,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}
