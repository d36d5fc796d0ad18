package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/grade"
)

// ListResult is the JSON payload of list and failing.
type ListResult struct {
	Grades []RecordView `json:"grades"`
	Count  int          `json:"count"`
}

// StatsResult is the JSON payload of stats.
type StatsResult struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every grade",
		Long: `Show every grade with its index, subject, score and pass/fail state.

Example:
  gradebook list
  gradebook list --reverse --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, reverse, cmd)
		},
	}

	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "list from the back of the list")

	return cmd
}

func runList(opts *RootOptions, reverse bool, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	wb, err := openWorkbook(opts.File)
	if err != nil {
		return f.Fail(err)
	}

	rows := make([]RecordView, 0, wb.list.Len())
	seq := wb.list.All()
	if reverse {
		seq = wb.list.Backward()
	}
	for i, r := range seq {
		rows = append(rows, newRecordView(i, r))
	}

	if f.Format == "json" {
		return f.Success(ListResult{Grades: rows, Count: len(rows)})
	}
	writeTable(f.Writer, rows, "Total items")
	return nil
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Show the lowest and highest score",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	wb, err := openWorkbook(opts.File)
	if err != nil {
		return f.Fail(err)
	}

	lo, hi, err := wb.list.MinMaxScore()
	if err != nil {
		return f.Fail(err)
	}

	if f.Format == "json" {
		return f.Success(StatsResult{Min: lo, Max: hi, Count: wb.list.Len()})
	}
	fmt.Fprintf(f.Writer, "Min score: %.1f\nMax score: %.1f\n", lo, hi)
	return nil
}

// NewFailingCommand creates the failing command.
func NewFailingCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "failing [subject]",
		Short: "Show failing grades in a subject",
		Long: `Show every grade below 60 in one subject, in list order.
The subject defaults to Mathematics.

Example:
  gradebook failing
  gradebook failing physics`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := grade.Mathematics.String()
			if len(args) == 1 {
				subject = args[0]
			}
			return runFailing(rootOpts, subject, cmd)
		},
	}
}

func runFailing(opts *RootOptions, subjectArg string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	subject, err := grade.ParseSubject(subjectArg)
	if err != nil {
		return f.Fail(&inputError{err: err})
	}
	wb, err := openWorkbook(opts.File)
	if err != nil {
		return f.Fail(err)
	}

	rows := []RecordView{}
	for i, r := range wb.list.Failing(subject) {
		rows = append(rows, newRecordView(i, r))
	}

	if f.Format == "json" {
		return f.Success(ListResult{Grades: rows, Count: len(rows)})
	}
	fmt.Fprintf(f.Writer, "Failing grades in %s:\n", subject)
	writeTable(f.Writer, rows, "Total found")
	return nil
}
