package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// EditResult is the JSON payload of add, remove and update.
type EditResult struct {
	Action string      `json:"action"`
	Record RecordView  `json:"record"`
	Old    *RecordView `json:"old,omitempty"`
	Count  int         `json:"count"`
}

func (r EditResult) String() string {
	switch r.Action {
	case "added":
		return fmt.Sprintf("Added %s %.1f at index %d (%d grades)", r.Record.Subject, r.Record.Score, r.Record.Index, r.Count)
	case "removed":
		return fmt.Sprintf("Removed %s %.1f from index %d (%d grades)", r.Record.Subject, r.Record.Score, r.Record.Index, r.Count)
	default:
		return fmt.Sprintf("Updated index %d: %s %.1f -> %s %.1f", r.Record.Index, r.Old.Subject, r.Old.Score, r.Record.Subject, r.Record.Score)
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <subject> <score>",
		Short: "Add a grade at the front of the list",
		Long: `Add a grade at the front of the list. The new grade becomes index 0.

The subject is a name (case-insensitive) or its number 1-5:
  1 Mathematics, 2 Physics, 3 Chemistry, 4 Biology, 5 Literature.
The score must be between 0 and 100; 60 and above is a pass.

Example:
  gradebook add Mathematics 55
  gradebook add 2 82.5 --file term1.yaml`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, args, cmd)
		},
	}
}

func runAdd(opts *RootOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	rec, err := parseRecord(args[0], args[1])
	if err != nil {
		return f.Fail(err)
	}
	wb, err := openWorkbook(opts.File)
	if err != nil {
		return f.Fail(err)
	}

	wb.list.InsertFront(rec)
	if err := wb.save(); err != nil {
		return f.Fail(err)
	}

	slog.Info("grade added", "subject", rec.Subject, "score", rec.Score)
	return f.Success(EditResult{Action: "added", Record: newRecordView(0, rec), Count: wb.list.Len()})
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove the grade at an index",
		Long: `Remove the grade at a zero-based index, as shown by "gradebook list".

Example:
  gradebook remove 0`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], cmd)
		},
	}
}

func runRemove(opts *RootOptions, indexArg string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	index, err := parseIndex(indexArg)
	if err != nil {
		return f.Fail(err)
	}
	wb, err := openWorkbook(opts.File)
	if err != nil {
		return f.Fail(err)
	}

	removed, err := wb.list.DeleteAt(index)
	if err != nil {
		return f.Fail(err)
	}
	if err := wb.save(); err != nil {
		return f.Fail(err)
	}

	slog.Info("grade removed", "index", index, "subject", removed.Subject)
	return f.Success(EditResult{Action: "removed", Record: newRecordView(index, removed), Count: wb.list.Len()})
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <index> <subject> <score>",
		Short: "Replace the grade at an index",
		Long: `Replace the grade at a zero-based index. The list order is unchanged.

Example:
  gradebook update 1 Physics 64`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(rootOpts, args, cmd)
		},
	}
}

func runUpdate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	index, err := parseIndex(args[0])
	if err != nil {
		return f.Fail(err)
	}
	rec, err := parseRecord(args[1], args[2])
	if err != nil {
		return f.Fail(err)
	}
	wb, err := openWorkbook(opts.File)
	if err != nil {
		return f.Fail(err)
	}

	old, err := wb.list.Get(index)
	if err != nil {
		return f.Fail(err)
	}
	if err := wb.list.Set(index, rec); err != nil {
		return f.Fail(err)
	}
	if err := wb.save(); err != nil {
		return f.Fail(err)
	}

	oldView := newRecordView(index, old)
	slog.Info("grade updated", "index", index, "subject", rec.Subject, "score", rec.Score)
	return f.Success(EditResult{Action: "updated", Record: newRecordView(index, rec), Old: &oldView, Count: wb.list.Len()})
}
