package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fantrack/fantrack/internal/config"
	"github.com/fantrack/fantrack/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"tracker_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"tracker_get": {
		def:     getToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGet },
	},
	"tracker_view": {
		def:     viewToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleView },
	},
	"tracker_create": {
		def:     createToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreate },
	},
	"tracker_update": {
		def:     updateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUpdate },
	},
	"tracker_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"tracker_set_note": {
		def:     noteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSetNote },
	},
	"tracker_suggest": {
		def:     suggestToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSuggest },
	},
	"task_add": {
		def:     taskAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTaskAdd },
	},
	"task_update": {
		def:     taskUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTaskUpdate },
	},
	"task_toggle": {
		def:     taskToggleToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTaskToggle },
	},
	"task_delete": {
		def:     taskDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTaskDelete },
	},
	"task_clear_completed": {
		def:     clearCompletedToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClearCompleted },
	},
	"task_delete_all": {
		def:     deleteAllToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDeleteAll },
	},
	"habit_toggle_date": {
		def:     habitToggleToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHabitToggle },
	},
	"habit_calendar": {
		def:     habitCalendarToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHabitCalendar },
	},
	"settings_get": {
		def:     settingsGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSettingsGet },
	},
	"settings_update": {
		def:     settingsUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSettingsUpdate },
	},
	"backup_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"backup_import": {
		def:     importToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleImport },
	},
	"pending_confirm": {
		def:     confirmToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleConfirm },
	},
	"pending_cancel": {
		def:     cancelToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCancel },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with tracker tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(session *ops.Session, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"fantrack",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(session)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(session *ops.Session, cfg *config.Config, version string) error {
	s := NewServer(session, cfg, version)
	return server.ServeStdio(s)
}
