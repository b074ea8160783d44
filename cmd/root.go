// Package cmd implements the CLI command structure for checklist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/app"
	"github.com/nibzard/checklist-go/internal/checklist"
	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/export"
	"github.com/nibzard/checklist-go/internal/logging"
	"github.com/nibzard/checklist-go/internal/reminder"
	"github.com/nibzard/checklist-go/internal/search"
	"github.com/nibzard/checklist-go/internal/settings"
	"github.com/nibzard/checklist-go/internal/sorting"
	"github.com/nibzard/checklist-go/internal/storage"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the checklist CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checklist", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")
	filePath := fs.String("file", "", "Checklist file (overrides config)")
	logLevel := fs.String("log-level", "", "Log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *filePath != "" {
		cfg.ChecklistFile = *filePath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := logging.New(logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
		Prefix:          "checklist",
	})

	// Determine the subcommand; no args defaults to "list".
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	if subcommand == "version" {
		return versionCommand()
	}
	if subcommand == "help" {
		printUsage(fs, os.Stdout)
		return nil
	}

	for _, p := range []string{cfg.ChecklistFile, cfg.SettingsFile} {
		if dir := filepath.Dir(p); dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
	}

	sm := settings.NewManager(cfg.SettingsFile)
	a := app.New(storage.New(cfg.ChecklistFile), sm, cfg.HistoryDepth, logger)
	if a.LoadWarning != nil && a.LoadStatus == storage.LoadedBackup {
		fmt.Fprintf(os.Stderr, "Warning: recovered checklist from backup\n")
	}

	switch subcommand {
	case "list", "ls":
		return listCommand(a, remainingArgs)
	case "add":
		return addCommand(a, remainingArgs)
	case "toggle", "done":
		return toggleCommand(a, remainingArgs)
	case "rm":
		return rmCommand(a, remainingArgs)
	case "categories", "cat":
		return categoriesCommand(a, remainingArgs)
	case "clear-completed":
		return clearCompletedCommand(a, remainingArgs)
	case "search":
		return searchCommand(a, remainingArgs)
	case "export":
		return exportCommand(a, cfg, remainingArgs)
	case "remind":
		return remindCommand(ctx, a, cfg, logger, remainingArgs)
	case "undo":
		return undoCommand(a)
	case "redo":
		return redoCommand(a)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// resolveCategory maps a -category flag value to a category. Zero means
// the currently selected category.
func resolveCategory(a *app.App, id int) (*checklist.Category, error) {
	if id == 0 {
		cat := a.Checklist.CurrentCategory()
		if cat == nil {
			return nil, fmt.Errorf("no category selected; pass -category")
		}
		return cat, nil
	}
	cat := a.Checklist.Category(id)
	if cat == nil {
		return nil, fmt.Errorf("category %d not found", id)
	}
	return cat, nil
}

// listCommand prints tasks, optionally sorted.
func listCommand(a *app.App, args []string) error {
	fs := flag.NewFlagSet("checklist list", flag.ContinueOnError)
	categoryID := fs.Int("category", 0, "Category id (0 = current)")
	all := fs.Bool("all", false, "List every category")
	sortKey := fs.String("sort", "", "Sort key (created|due_date|priority|completion|a-z)")
	reverse := fs.Bool("reverse", false, "Reverse the sort order")
	smart := fs.Bool("smart", false, "Smart sort (pending first, then priority, then due date)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cats := a.Checklist.Categories
	if !*all {
		cat, err := resolveCategory(a, *categoryID)
		if err != nil {
			return err
		}
		cats = []*checklist.Category{cat}
	}

	for _, cat := range cats {
		printCategory(os.Stdout, cat, *sortKey, *reverse, *smart)
	}
	return nil
}

// printCategory prints one category heading with its tasks.
func printCategory(w io.Writer, cat *checklist.Category, sortKey string, reverse, smart bool) {
	fmt.Fprintf(w, "%s [%d] (%d/%d done)\n", cat.Name, cat.ID, len(cat.CompletedTasks()), cat.TaskCount())

	tasks := cat.Tasks
	if smart {
		tasks = sorting.SmartSorted(tasks)
	} else if sortKey != "" {
		if key, err := sorting.ParseKey(sortKey); err == nil {
			tasks = sorting.Sorted(tasks, key, reverse)
		}
	}

	for i, t := range tasks {
		printTask(w, i, t)
	}
}

// printTask prints one task with its subtasks and notes.
func printTask(w io.Writer, index int, t *checklist.Task) {
	fmt.Fprintf(w, "  %2d %s %s", index, checkbox(t.Completed), t.Text)
	if t.Priority != checklist.PriorityMedium {
		fmt.Fprintf(w, " (%s)", t.Priority)
	}
	if t.DueDate != "" {
		fmt.Fprintf(w, " due %s", t.DueDate)
	}
	if t.Reminder != "" {
		fmt.Fprintf(w, " reminder %s", t.Reminder)
	}
	fmt.Fprintln(w)
	for _, st := range t.Subtasks {
		fmt.Fprintf(w, "       %s %s\n", checkbox(st.Completed), st.Text)
	}
	for _, note := range t.Notes {
		fmt.Fprintf(w, "       note: %s\n", note)
	}
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// addCommand adds a task, subtask, or note.
func addCommand(a *app.App, args []string) error {
	fs := flag.NewFlagSet("checklist add", flag.ContinueOnError)
	categoryID := fs.Int("category", 0, "Category id (0 = current)")
	taskIndex := fs.Int("task", -1, "Task index for -subtask/-note")
	subtask := fs.Bool("subtask", false, "Add a subtask instead of a task")
	note := fs.Bool("note", false, "Add a note instead of a task")
	priority := fs.String("priority", "", "Priority (low|medium|high)")
	dueDate := fs.String("due", "", "Due date (YYYY-MM-DD)")
	remindAt := fs.String("remind", "", "Reminder timestamp (YYYY-MM-DDTHH:MM:SS)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	text := strings.Join(fs.Args(), " ")

	cat, err := resolveCategory(a, *categoryID)
	if err != nil {
		return err
	}

	if *subtask || *note {
		if *taskIndex < 0 {
			return fmt.Errorf("-task is required with -subtask/-note")
		}
		if *subtask {
			return a.AddSubtask(cat.ID, *taskIndex, text)
		}
		return a.AddNote(cat.ID, *taskIndex, text)
	}

	t, err := a.AddTask(cat.ID, text)
	if err != nil {
		return err
	}
	index := cat.TaskCount() - 1
	if *priority != "" {
		if err := a.SetPriority(cat.ID, index, *priority); err != nil {
			return err
		}
	}
	if *dueDate != "" {
		if err := a.SetDueDate(cat.ID, index, *dueDate); err != nil {
			return err
		}
	}
	if *remindAt != "" {
		if err := a.SetReminder(cat.ID, index, *remindAt); err != nil {
			return err
		}
	}
	fmt.Printf("Added task %d: %s\n", index, t.Text)
	return nil
}

// toggleCommand flips completion of a task or subtask.
func toggleCommand(a *app.App, args []string) error {
	fs := flag.NewFlagSet("checklist toggle", flag.ContinueOnError)
	categoryID := fs.Int("category", 0, "Category id (0 = current)")
	subtaskIndex := fs.Int("subtask", -1, "Subtask index to toggle instead")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: checklist toggle [options] <task-index>")
	}
	index, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid task index %q", fs.Arg(0))
	}

	cat, err := resolveCategory(a, *categoryID)
	if err != nil {
		return err
	}
	if *subtaskIndex >= 0 {
		return a.ToggleSubtask(cat.ID, index, *subtaskIndex)
	}
	return a.ToggleTask(cat.ID, index)
}

// rmCommand deletes a task.
func rmCommand(a *app.App, args []string) error {
	fs := flag.NewFlagSet("checklist rm", flag.ContinueOnError)
	categoryID := fs.Int("category", 0, "Category id (0 = current)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: checklist rm [options] <task-index>")
	}
	index, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid task index %q", fs.Arg(0))
	}

	cat, err := resolveCategory(a, *categoryID)
	if err != nil {
		return err
	}
	removed, err := a.DeleteTask(cat.ID, index)
	if err != nil {
		return err
	}
	fmt.Printf("Removed: %s\n", removed.Text)
	return nil
}

// categoriesCommand lists or manages categories.
func categoriesCommand(a *app.App, args []string) error {
	fs := flag.NewFlagSet("checklist categories", flag.ContinueOnError)
	add := fs.String("add", "", "Add a category with the given name")
	remove := fs.Int("rm", 0, "Remove the category with the given id")
	selectID := fs.Int("select", 0, "Select the category with the given id")
	moveFrom := fs.Int("from", -1, "Source position for -to")
	moveTo := fs.Int("to", -1, "Destination position for -from")

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *add != "":
		cat, err := a.AddCategory(*add)
		if err != nil {
			return err
		}
		fmt.Printf("Added category %d: %s\n", cat.ID, cat.Name)
		return nil
	case *remove != 0:
		removed, err := a.RemoveCategory(*remove)
		if err != nil {
			return err
		}
		fmt.Printf("Removed category: %s\n", removed.Name)
		return nil
	case *selectID != 0:
		return a.SetCurrentCategory(*selectID)
	case *moveFrom >= 0 || *moveTo >= 0:
		if *moveFrom < 0 || *moveTo < 0 {
			return fmt.Errorf("-from and -to must be given together")
		}
		moved, err := a.ReorderCategories(*moveFrom, *moveTo)
		if err != nil {
			return err
		}
		if !moved {
			fmt.Println("Nothing to move")
		}
		return nil
	}

	cur := a.Checklist.CurrentCategoryID
	for _, cat := range a.Checklist.Categories {
		marker := " "
		if cur != nil && *cur == cat.ID {
			marker = "*"
		}
		fmt.Printf("%s %2d %s (%d/%d done, %.0f%%)\n",
			marker, cat.ID, cat.Name,
			len(cat.CompletedTasks()), cat.TaskCount(), cat.CompletionPercentage())
	}
	return nil
}

// clearCompletedCommand removes completed tasks from a category.
func clearCompletedCommand(a *app.App, args []string) error {
	fs := flag.NewFlagSet("checklist clear-completed", flag.ContinueOnError)
	categoryID := fs.Int("category", 0, "Category id (0 = current)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cat, err := resolveCategory(a, *categoryID)
	if err != nil {
		return err
	}
	removed, err := a.ClearCompleted(cat.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d completed task(s)\n", removed)
	return nil
}

// searchCommand finds tasks matching a query.
func searchCommand(a *app.App, args []string) error {
	fs := flag.NewFlagSet("checklist search", flag.ContinueOnError)
	categoryID := fs.Int("category", 0, "Restrict to one category id")
	excludeCompleted := fs.Bool("pending", false, "Exclude completed tasks")

	if err := fs.Parse(args); err != nil {
		return err
	}
	query := strings.Join(fs.Args(), " ")

	opts := search.Options{ExcludeCompleted: *excludeCompleted}
	if *categoryID != 0 {
		opts.CategoryID = categoryID
	}

	results := search.Tasks(a.Checklist, query, opts)
	if len(results) == 0 {
		fmt.Println("No matches")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%s/%d %s %s (matched %s)\n",
			r.CategoryName, r.TaskIndex, checkbox(r.Task.Completed), r.Task.Text, r.MatchType)
	}
	return nil
}

// exportCommand writes a markdown export.
func exportCommand(a *app.App, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("checklist export", flag.ContinueOnError)
	categoryID := fs.Int("category", 0, "Export only this category id")
	completedOnly := fs.Bool("completed", false, "Export only completed tasks")
	output := fs.String("o", "", "Output file (default stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	exp := export.New(a.Checklist, cfg.ChecklistFile)
	if *output == "" {
		fmt.Print(exp.String(true))
		return nil
	}
	switch {
	case *categoryID != 0:
		return exp.WriteCategory(*categoryID, *output)
	case *completedOnly:
		return exp.WriteCompletedOnly(*output)
	default:
		return exp.WriteFile(*output, true)
	}
}

// undoCommand reverts the most recent mutation.
func undoCommand(a *app.App) error {
	desc := a.History.UndoDescription()
	if err := a.Undo(); err != nil {
		return err
	}
	if desc != "" {
		fmt.Printf("Undone: %s\n", desc)
	}
	return nil
}

// redoCommand re-applies the most recently undone mutation.
func redoCommand(a *app.App) error {
	desc := a.History.RedoDescription()
	if err := a.Redo(); err != nil {
		return err
	}
	if desc != "" {
		fmt.Printf("Redone: %s\n", desc)
	}
	return nil
}

// remindCommand runs the reminder scheduler until interrupted.
func remindCommand(ctx context.Context, a *app.App, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("checklist remind", flag.ContinueOnError)
	intervalSec := fs.Int("interval", cfg.ReminderIntervalSeconds, "Scan interval in seconds")
	once := fs.Bool("once", false, "Run a single scan and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	sched := reminder.New(
		newDesktopNotifier(),
		logger,
		reminder.WithInterval(time.Duration(*intervalSec)*time.Second),
	)
	if *once {
		report := sched.Scan(a.Checklist)
		a.HandleReminderReport(report)
		fmt.Printf("Fired %d reminder(s), cleared %d corrupted\n", report.Fired, report.Corrupted)
		return nil
	}

	logger.Info("reminder scheduler running", "interval_seconds", *intervalSec)
	sched.Run(ctx, a.Checklist, a.HandleReminderReport)
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("checklist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Checklist - categorized task tracking with undo and reminders")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  checklist [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list             List tasks (default command)")
	fmt.Fprintln(w, "  add <text>       Add a task, subtask (-subtask), or note (-note)")
	fmt.Fprintln(w, "  toggle <index>   Toggle a task (or -subtask N) completion")
	fmt.Fprintln(w, "  rm <index>       Delete a task")
	fmt.Fprintln(w, "  categories       List categories; -add/-rm/-select/-from/-to to manage")
	fmt.Fprintln(w, "  clear-completed  Remove completed tasks from a category")
	fmt.Fprintln(w, "  search <query>   Search task text, subtasks, and notes")
	fmt.Fprintln(w, "  export           Export to markdown (-o file, -category, -completed)")
	fmt.Fprintln(w, "  remind           Run the reminder scheduler (-once for a single scan)")
	fmt.Fprintln(w, "  undo             Revert the most recent change")
	fmt.Fprintln(w, "  redo             Re-apply the most recently undone change")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
