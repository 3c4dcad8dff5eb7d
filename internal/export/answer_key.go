// Package export renders the teacher's answer key as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/aziyat1977/Inter-1.1/internal/content"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetBattle   = "Battle"
	SheetPractice = "Practice"
	SheetVocab    = "Vocabulary"
	SheetCCQ      = "CCQs"
)

// Sheets lists the workbook's sheets in tab order.
var Sheets = []string{SheetBattle, SheetPractice, SheetVocab, SheetCCQ}

// Workbook is the material exported in an answer key.
type Workbook struct {
	Battle   []models.Question
	Practice []models.Question
	Vocab    []models.VocabItem
	Notes    models.TeacherNotes
}

// FromContent builds a Workbook from the built-in unit tables.
func FromContent() Workbook {
	return Workbook{
		Battle:   content.BattleQuestions(),
		Practice: content.PracticeExercises(),
		Vocab:    content.Vocab(),
		Notes:    content.Teacher(),
	}
}

// AnswerKey writes the built-in unit's answer key to w.
func AnswerKey(w io.Writer) error {
	return FromContent().Write(w)
}

func (wb Workbook) Write(w io.Writer) error {
	f, err := wb.Build()
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Build lays the workbook out in memory. The caller closes the file.
func (wb Workbook) Build() (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", Sheets[0])
	for _, name := range Sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
		width  float64
	}{
		{SheetBattle, []any{"ID", "Question", "Option A", "Option B", "Answer", "Explanation"}, wb.battleRows(), 28},
		{SheetPractice, []any{"ID", "Prompt", "Accepted answers", "Explanation"}, wb.practiceRows(), 36},
		{SheetVocab, []any{"Word", "Part of speech", "Definition", "Example", "Russian", "Uzbek"}, wb.vocabRows(), 22},
		{SheetCCQ, []any{"Target", "Usage", "Question", "Answer"}, wb.ccqRows(), 34},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.header, s.rows, header, s.width); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, style int, width float64) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, width); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func option(q models.Question, i int) string {
	if i < len(q.Options) {
		return q.Options[i]
	}
	return ""
}

func (wb Workbook) battleRows() [][]any {
	rows := make([][]any, 0, len(wb.Battle))
	for _, q := range wb.Battle {
		rows = append(rows, []any{q.ID, q.Prompt, option(q, 0), option(q, 1), q.Answer(), q.Explanation})
	}
	return rows
}

func (wb Workbook) practiceRows() [][]any {
	rows := make([][]any, 0, len(wb.Practice))
	for _, q := range wb.Practice {
		rows = append(rows, []any{q.ID, q.Prompt, strings.Join(q.CorrectAnswers, " / "), q.Explanation})
	}
	return rows
}

func (wb Workbook) vocabRows() [][]any {
	rows := make([][]any, 0, len(wb.Vocab))
	for _, v := range wb.Vocab {
		rows = append(rows, []any{v.Word, v.PartOfSpeech, v.Definition, v.ContextSentence,
			v.Translation[models.Russian], v.Translation[models.Uzbek]})
	}
	return rows
}

// ccqRows puts one concept question per row; the target repeats.
func (wb Workbook) ccqRows() [][]any {
	var rows [][]any
	for _, c := range wb.Notes.ConceptChecks {
		for _, qa := range c.Questions {
			rows = append(rows, []any{c.Target, string(c.Usage), qa.Question, qa.Answer})
		}
	}
	return rows
}
