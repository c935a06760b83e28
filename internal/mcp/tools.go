package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Destructive tools take a confirm flag; without it
// they stage the action and return a pending description instead of
// executing.

var listToolDef = mcp.NewTool("tracker_list",
	mcp.WithDescription("List trackers for the dashboard with optional search, type filter, and sort."),
	mcp.WithString("search", mcp.Description("Case-insensitive title substring filter.")),
	mcp.WithString("type", mcp.Description("Filter by tracker type: SHOPPING, TODO, TRAVEL, HABIT, NOTE.")),
	mcp.WithString("sort", mcp.Description("Sort order: newest (default), oldest, name.")),
)

var getToolDef = mcp.NewTool("tracker_get",
	mcp.WithDescription("Fetch one tracker with its full task list and total value."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Tracker id.")),
)

var viewToolDef = mcp.NewTool("tracker_view",
	mcp.WithDescription("Compute the detail view for a tracker: task search, sort, and the active/completed split."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Tracker id.")),
	mcp.WithString("search", mcp.Description("Case-insensitive task text substring filter.")),
	mcp.WithString("sort", mcp.Description("Task sort: created (default), name, value.")),
	mcp.WithBoolean("hide_completed", mcp.Description("Hide the completed section in the rendered view.")),
)

var createToolDef = mcp.NewTool("tracker_create",
	mcp.WithDescription("Create a tracker. It is prepended to the dashboard."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Tracker title.")),
	mcp.WithString("type", mcp.Required(), mcp.Description("Tracker type: SHOPPING, TODO, TRAVEL, HABIT, NOTE.")),
	mcp.WithString("color", mcp.Description("Color gradient; defaults to the first palette entry.")),
	mcp.WithString("icon", mcp.Description("Icon name; defaults per type.")),
	mcp.WithString("currency", mcp.Description("Currency symbol for financial trackers.")),
)

var updateToolDef = mcp.NewTool("tracker_update",
	mcp.WithDescription("Update a tracker's title, color, icon, or currency. Omitted fields are unchanged."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Tracker id.")),
	mcp.WithString("title", mcp.Description("New title.")),
	mcp.WithString("color", mcp.Description("New color gradient.")),
	mcp.WithString("icon", mcp.Description("New icon name.")),
	mcp.WithString("currency", mcp.Description("New currency symbol.")),
)

var deleteToolDef = mcp.NewTool("tracker_delete",
	mcp.WithDescription("Delete a tracker and all its tasks. Without confirm this stages the deletion."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Tracker id.")),
	mcp.WithBoolean("confirm", mcp.Description("Execute the deletion instead of staging it.")),
)

var noteToolDef = mcp.NewTool("tracker_set_note",
	mcp.WithDescription("Replace a tracker's note body. An empty content clears it."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Tracker id.")),
	mcp.WithString("content", mcp.Description("New note body, markdown allowed.")),
)

var taskAddToolDef = mcp.NewTool("task_add",
	mcp.WithDescription("Append a task to a tracker."),
	mcp.WithString("tracker_id", mcp.Required(), mcp.Description("Tracker id.")),
	mcp.WithString("text", mcp.Required(), mcp.Description("Task text.")),
	mcp.WithNumber("value", mcp.Description("Unit value.")),
	mcp.WithNumber("quantity", mcp.Description("Unit count; defaults to 1.")),
)

var taskUpdateToolDef = mcp.NewTool("task_update",
	mcp.WithDescription("Rewrite a task's text, value, and quantity. Omitting value clears it."),
	mcp.WithString("tracker_id", mcp.Required(), mcp.Description("Tracker id.")),
	mcp.WithString("task_id", mcp.Required(), mcp.Description("Task id.")),
	mcp.WithString("text", mcp.Required(), mcp.Description("New task text.")),
	mcp.WithNumber("value", mcp.Description("New unit value; omit to clear.")),
	mcp.WithNumber("quantity", mcp.Description("New unit count; defaults to 1.")),
)

var taskToggleToolDef = mcp.NewTool("task_toggle",
	mcp.WithDescription("Flip a task's completion flag."),
	mcp.WithString("tracker_id", mcp.Required(), mcp.Description("Tracker id.")),
	mcp.WithString("task_id", mcp.Required(), mcp.Description("Task id.")),
)

var taskDeleteToolDef = mcp.NewTool("task_delete",
	mcp.WithDescription("Delete one task from a tracker."),
	mcp.WithString("tracker_id", mcp.Required(), mcp.Description("Tracker id.")),
	mcp.WithString("task_id", mcp.Required(), mcp.Description("Task id.")),
)

var clearCompletedToolDef = mcp.NewTool("task_clear_completed",
	mcp.WithDescription("Remove all completed tasks from a tracker. Without confirm this stages the removal."),
	mcp.WithString("tracker_id", mcp.Required(), mcp.Description("Tracker id.")),
	mcp.WithBoolean("confirm", mcp.Description("Execute instead of staging.")),
)

var deleteAllToolDef = mcp.NewTool("task_delete_all",
	mcp.WithDescription("Delete every task from a tracker. Without confirm this stages the removal."),
	mcp.WithString("tracker_id", mcp.Required(), mcp.Description("Tracker id.")),
	mcp.WithBoolean("confirm", mcp.Description("Execute instead of staging.")),
)

var habitToggleToolDef = mcp.NewTool("habit_toggle_date",
	mcp.WithDescription("Mark or unmark one calendar day for a habit task. The same call twice restores the original state."),
	mcp.WithString("tracker_id", mcp.Required(), mcp.Description("Habit tracker id.")),
	mcp.WithString("task_id", mcp.Required(), mcp.Description("Task id.")),
	mcp.WithString("date", mcp.Description("Day as YYYY-MM-DD; defaults to today.")),
)

var habitCalendarToolDef = mcp.NewTool("habit_calendar",
	mcp.WithDescription("Current month grid for a habit task with completed days and streak."),
	mcp.WithString("tracker_id", mcp.Required(), mcp.Description("Habit tracker id.")),
	mcp.WithString("task_id", mcp.Required(), mcp.Description("Task id.")),
)

var settingsGetToolDef = mcp.NewTool("settings_get",
	mcp.WithDescription("Read the current application settings."),
)

var settingsUpdateToolDef = mcp.NewTool("settings_update",
	mcp.WithDescription("Update settings. Omitted fields are unchanged."),
	mcp.WithString("theme_id", mcp.Description("Theme identifier.")),
	mcp.WithString("pattern_id", mcp.Description("Background pattern identifier.")),
	mcp.WithString("api_key", mcp.Description("AI suggestion credential; empty string clears it.")),
	mcp.WithString("language", mcp.Description("Interface language: en or ru.")),
)

var exportToolDef = mcp.NewTool("backup_export",
	mcp.WithDescription("Write all trackers and settings to a JSON backup file."),
	mcp.WithString("path", mcp.Description("Destination path; defaults to ~/.fantrack/exports/fantrack_backup_<date>.json.")),
)

var importToolDef = mcp.NewTool("backup_import",
	mcp.WithDescription("Stage a JSON backup for import. Present keys replace state wholesale on confirm; absent keys keep current state."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Backup file path.")),
	mcp.WithBoolean("confirm", mcp.Description("Apply immediately after staging.")),
)

var confirmToolDef = mcp.NewTool("pending_confirm",
	mcp.WithDescription("Execute the currently staged destructive action."),
)

var cancelToolDef = mcp.NewTool("pending_cancel",
	mcp.WithDescription("Discard the currently staged destructive action."),
)

var suggestToolDef = mcp.NewTool("tracker_suggest",
	mcp.WithDescription("Ask the AI collaborator for suggestions matching the tracker's type. With apply, notes get paragraphs and other types get tasks."),
	mcp.WithString("tracker_id", mcp.Required(), mcp.Description("Tracker id.")),
	mcp.WithString("prompt", mcp.Required(), mcp.Description("What to suggest.")),
	mcp.WithBoolean("apply", mcp.Description("Insert the suggestions into the tracker.")),
)
