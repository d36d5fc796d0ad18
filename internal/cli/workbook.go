package cli

import (
	"errors"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/roach88/gradebook/internal/grade"
	"github.com/roach88/gradebook/internal/gradelist"
)

// workbook is the grade list a single command operates on, together with
// the file it was loaded from.
type workbook struct {
	path   string
	format gradelist.Format
	list   *gradelist.List
}

// openWorkbook loads path. A file that does not exist yet is an empty
// workbook; any other failure is returned.
func openWorkbook(path string) (*workbook, error) {
	wb := &workbook{
		path:   path,
		format: gradelist.FormatFromPath(path),
		list:   gradelist.New(),
	}

	err := wb.list.LoadFile(path, wb.format)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("workbook not found, starting empty", "path", path)
		return wb, nil
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("workbook loaded", "path", path, "format", wb.format, "grades", wb.list.Len())
	return wb, nil
}

// openWorkbookForReplace is openWorkbook for commands that discard the
// current contents. A workbook that is not a valid grade document is
// treated as empty so it can be overwritten.
func openWorkbookForReplace(path string) (*workbook, error) {
	wb, err := openWorkbook(path)
	if gradelist.IsFormatError(err) {
		slog.Warn("workbook is not a valid grade document, replacing it", "path", path, "error", err)
		return &workbook{path: path, format: gradelist.FormatFromPath(path), list: gradelist.New()}, nil
	}
	return wb, err
}

func (wb *workbook) save() error {
	if err := wb.list.SaveFile(wb.path, wb.format); err != nil {
		return err
	}
	slog.Debug("workbook saved", "path", wb.path, "grades", wb.list.Len())
	return nil
}

// views renders the workbook front to back.
func (wb *workbook) views() []RecordView {
	rows := make([]RecordView, 0, wb.list.Len())
	for i, r := range wb.list.All() {
		rows = append(rows, newRecordView(i, r))
	}
	return rows
}

func parseRecord(subjectArg, scoreArg string) (grade.Record, error) {
	subject, err := grade.ParseSubject(subjectArg)
	if err != nil {
		return grade.Record{}, &inputError{err: err}
	}
	score, err := strconv.ParseFloat(scoreArg, 64)
	if err != nil {
		return grade.Record{}, invalidInput("invalid score %q", scoreArg)
	}
	if err := grade.ValidateScore(score); err != nil {
		return grade.Record{}, &inputError{err: err}
	}
	return grade.New(subject, score), nil
}

func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, invalidInput("invalid index %q", arg)
	}
	return i, nil
}
