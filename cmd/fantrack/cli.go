package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/fantrack/fantrack/internal/config"
	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/ops"
	"github.com/fantrack/fantrack/internal/tracker"
	"github.com/fantrack/fantrack/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(session *ops.Session, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "fantrack",
		Usage:   "Personal list and habit tracker",
		Version: Version,
		Commands: []*cli.Command{
			createCmd(session),
			listCmd(session),
			getCmd(session),
			viewCmd(session),
			updateCmd(session),
			deleteCmd(session),
			noteCmd(session),
			suggestCmd(session),
			taskCmd(session),
			habitCmd(session),
			settingsCmd(session),
			exportCmd(session),
			importCmd(session),
			pendingCmd(session),
			webCmd(session, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// createCmd creates the create command.
func createCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a tracker",
		ArgsUsage: "<title>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Required: true, Usage: "Tracker type: SHOPPING|TODO|TRAVEL|HABIT|NOTE"},
			&cli.StringFlag{Name: "color", Usage: "Color gradient"},
			&cli.StringFlag{Name: "icon", Usage: "Icon name (defaults per type)"},
			&cli.StringFlag{Name: "currency", Usage: "Currency symbol for financial trackers"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.CreateTracker(session, ops.CreateTrackerInput{
				Title:    c.Args().First(),
				Kind:     tracker.Kind(c.String("type")),
				Color:    c.String("color"),
				Icon:     c.String("icon"),
				Currency: c.String("currency"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List trackers for the dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Title substring filter"},
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Filter by tracker type"},
			&cli.StringFlag{Name: "sort", Value: "newest", Usage: "Sort order: newest|oldest|name"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ListTrackers(session, ops.ListTrackersInput{
				Search: c.String("search"),
				Kind:   tracker.Kind(c.String("type")),
				Sort:   c.String("sort"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch one tracker with its full task list",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.GetTracker(session, ops.GetTrackerInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// viewCmd creates the view command.
func viewCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "Compute the detail view for a tracker",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Task text substring filter"},
			&cli.StringFlag{Name: "sort", Value: "created", Usage: "Task sort: created|name|value"},
			&cli.BoolFlag{Name: "hide-completed", Usage: "Hide the completed section"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.TrackerView(session, ops.TrackerViewInput{
				TrackerID:     c.Args().First(),
				Search:        c.String("search"),
				Sort:          tracker.SortKey(c.String("sort")),
				HideCompleted: c.Bool("hide-completed"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// updateCmd creates the update command.
func updateCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a tracker's title, color, icon, or currency",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "New title"},
			&cli.StringFlag{Name: "color", Usage: "New color gradient"},
			&cli.StringFlag{Name: "icon", Usage: "New icon name"},
			&cli.StringFlag{Name: "currency", Usage: "New currency symbol"},
		},
		Action: func(c *cli.Context) error {
			input := ops.UpdateTrackerInput{ID: c.Args().First()}
			if c.IsSet("title") {
				v := c.String("title")
				input.Title = &v
			}
			if c.IsSet("color") {
				v := c.String("color")
				input.Color = &v
			}
			if c.IsSet("icon") {
				v := c.String("icon")
				input.Icon = &v
			}
			if c.IsSet("currency") {
				v := c.String("currency")
				input.Currency = &v
			}

			output, err := ops.UpdateTracker(session, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a tracker and all its tasks (staged unless --yes)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Execute without staging"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.DeleteTracker(session, ops.DeleteTrackerInput{
				ID:      c.Args().First(),
				Confirm: c.Bool("yes"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// noteCmd creates the note command.
func noteCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:      "note",
		Usage:     "Replace a tracker's note body (reads content from stdin or --content)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "content", Usage: "Note body; overrides stdin"},
		},
		Action: func(c *cli.Context) error {
			content := c.String("content")
			if !c.IsSet("content") && stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				content = text
			}

			output, err := ops.SetNote(session, ops.SetNoteInput{
				TrackerID: c.Args().First(),
				Content:   content,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// suggestCmd creates the suggest command.
func suggestCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Ask the AI collaborator for suggestions matching the tracker's type",
		ArgsUsage: "<id> <prompt>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "apply", Usage: "Insert the suggestions into the tracker"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Suggest(c.Context, session, ops.SuggestInput{
				TrackerID: c.Args().Get(0),
				Prompt:    c.Args().Get(1),
				Apply:     c.Bool("apply"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// taskCmd creates the task command with its subcommands.
func taskCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:  "task",
		Usage: "Manage tasks within a tracker",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Append a task",
				ArgsUsage: "<tracker-id> <text>",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "value", Usage: "Unit value"},
					&cli.IntFlag{Name: "quantity", Aliases: []string{"q"}, Usage: "Unit count (defaults to 1)"},
				},
				Action: func(c *cli.Context) error {
					input := ops.AddTaskInput{
						TrackerID: c.Args().Get(0),
						Text:      c.Args().Get(1),
						Quantity:  c.Int("quantity"),
					}
					if c.IsSet("value") {
						v := c.Float64("value")
						input.Value = &v
					}

					output, err := ops.AddTask(session, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "update",
				Usage:     "Rewrite a task's text, value, and quantity",
				ArgsUsage: "<tracker-id> <task-id> <text>",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "value", Usage: "New unit value (omit to clear)"},
					&cli.IntFlag{Name: "quantity", Aliases: []string{"q"}, Usage: "New unit count"},
				},
				Action: func(c *cli.Context) error {
					input := ops.UpdateTaskInput{
						TrackerID: c.Args().Get(0),
						TaskID:    c.Args().Get(1),
						Text:      c.Args().Get(2),
						Quantity:  c.Int("quantity"),
					}
					if c.IsSet("value") {
						v := c.Float64("value")
						input.Value = &v
					}

					output, err := ops.UpdateTask(session, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "toggle",
				Usage:     "Flip a task's completion flag",
				ArgsUsage: "<tracker-id> <task-id>",
				Action: func(c *cli.Context) error {
					output, err := ops.ToggleTask(session, ops.ToggleTaskInput{
						TrackerID: c.Args().Get(0),
						TaskID:    c.Args().Get(1),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete one task",
				ArgsUsage: "<tracker-id> <task-id>",
				Action: func(c *cli.Context) error {
					output, err := ops.DeleteTask(session, ops.DeleteTaskInput{
						TrackerID: c.Args().Get(0),
						TaskID:    c.Args().Get(1),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "clear-completed",
				Usage:     "Remove all completed tasks (staged unless --yes)",
				ArgsUsage: "<tracker-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Execute without staging"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.ClearCompleted(session, ops.ClearCompletedInput{
						TrackerID: c.Args().First(),
						Confirm:   c.Bool("yes"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "delete-all",
				Usage:     "Delete every task (staged unless --yes)",
				ArgsUsage: "<tracker-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Execute without staging"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.DeleteAllTasks(session, ops.DeleteAllTasksInput{
						TrackerID: c.Args().First(),
						Confirm:   c.Bool("yes"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// habitCmd creates the habit command with its subcommands.
func habitCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:  "habit",
		Usage: "Habit calendar operations",
		Subcommands: []*cli.Command{
			{
				Name:      "toggle",
				Usage:     "Mark or unmark one calendar day for a habit task",
				ArgsUsage: "<tracker-id> <task-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Day as YYYY-MM-DD (defaults to today)"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.ToggleHabitDate(session, ops.ToggleHabitDateInput{
						TrackerID: c.Args().Get(0),
						TaskID:    c.Args().Get(1),
						Date:      c.String("date"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "calendar",
				Usage:     "Current month grid with completed days and streak",
				ArgsUsage: "<tracker-id> <task-id>",
				Action: func(c *cli.Context) error {
					output, err := ops.HabitCalendar(session, ops.HabitCalendarInput{
						TrackerID: c.Args().Get(0),
						TaskID:    c.Args().Get(1),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// settingsCmd creates the settings command with its subcommands.
func settingsCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Read or update application settings",
		Subcommands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Print the current settings",
				Action: func(c *cli.Context) error {
					return outputJSON(ops.GetSettings(session))
				},
			},
			{
				Name:  "set",
				Usage: "Update settings (omitted flags are unchanged)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "theme", Usage: "Theme identifier"},
					&cli.StringFlag{Name: "pattern", Usage: "Background pattern identifier"},
					&cli.StringFlag{Name: "api-key", Usage: "AI suggestion credential (empty clears it)"},
					&cli.StringFlag{Name: "language", Usage: "Interface language: en|ru"},
				},
				Action: func(c *cli.Context) error {
					input := ops.UpdateSettingsInput{}
					if c.IsSet("theme") {
						v := c.String("theme")
						input.ThemeID = &v
					}
					if c.IsSet("pattern") {
						v := c.String("pattern")
						input.PatternID = &v
					}
					if c.IsSet("api-key") {
						v := c.String("api-key")
						input.APIKey = &v
					}
					if c.IsSet("language") {
						v := c.String("language")
						input.Language = &v
					}

					output, err := ops.UpdateSettings(session, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// exportCmd creates the export command.
func exportCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write all trackers and settings to a JSON backup file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.fantrack/exports/fantrack_backup_<date>.json)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(session, ops.ExportInput{Path: c.String("path")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Stage a JSON backup for import (applied with --yes or 'pending confirm')",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Backup file path"},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Apply immediately after staging"},
		},
		Action: func(c *cli.Context) error {
			staged, err := ops.StageImport(session, ops.StageImportInput{Path: c.String("path")})
			if err != nil {
				return outputError(err)
			}
			if !c.Bool("yes") {
				return outputJSON(staged)
			}

			output, err := ops.ConfirmImport(session)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// pendingCmd creates the pending command with its subcommands.
func pendingCmd(session *ops.Session) *cli.Command {
	return &cli.Command{
		Name:  "pending",
		Usage: "Inspect, execute, or discard the staged destructive action",
		Subcommands: []*cli.Command{
			{
				Name:  "confirm",
				Usage: "Execute the staged action",
				Action: func(c *cli.Context) error {
					output, err := ops.ConfirmPending(session)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "cancel",
				Usage: "Discard the staged action",
				Action: func(c *cli.Context) error {
					cancelled := session.Pending() != nil
					ops.CancelPending(session)
					return outputJSON(map[string]any{"cancelled": cancelled})
				},
			},
		},
	}
}

// webCmd creates the web command.
func webCmd(session *ops.Session, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the read-only tracker viewer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Bind address (defaults to the configured web_addr)"},
		},
		Action: func(c *cli.Context) error {
			addr := c.String("addr")
			if addr == "" {
				addr = cfg.WebAddr
			}
			return web.Run(web.NewServer(session, Version, addr))
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tErr, ok := err.(*errors.TrackError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tErr.Code, tErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
