package export

import (
	"bytes"
	"testing"

	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestAnswerKey_Sheets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, AnswerKey(&buf))

	f := openWorkbook(t, &buf)
	assert.Equal(t, Sheets, f.GetSheetList())

	battle, err := f.GetRows(SheetBattle)
	require.NoError(t, err)
	require.Len(t, battle, 9)
	assert.Equal(t, []string{"ID", "Question", "Option A", "Option B", "Answer", "Explanation"}, battle[0])
	assert.Equal(t, []string{"k1", "Rob _____ his friends right now.", "meets", "is meeting", "is meeting", "NOW = Continuous."}, battle[1])

	practice, err := f.GetRows(SheetPractice)
	require.NoError(t, err)
	require.Len(t, practice, 5)
	assert.Equal(t, "has met / 's met", practice[3][2])

	vocab, err := f.GetRows(SheetVocab)
	require.NoError(t, err)
	require.Len(t, vocab, 9)
	assert.Equal(t, []string{"persuade", "v", "convince someone", "Can I persuade you?", "убеждать", "ishontirmoq"}, vocab[5])

	ccq, err := f.GetRows(SheetCCQ)
	require.NoError(t, err)
	require.Len(t, ccq, 6)
	assert.Equal(t, "I have known him for 3 years.", ccq[1][0])
	assert.Equal(t, "perfect", ccq[1][1])
	assert.Equal(t, "No", ccq[3][3])
}

func TestWorkbook_Custom(t *testing.T) {
	wb := Workbook{
		Battle: []models.Question{{ID: "x", Prompt: "?", Options: []string{"only"}, CorrectAnswers: []string{"only"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))

	f := openWorkbook(t, &buf)
	v, err := f.GetCellValue(SheetBattle, "E2")
	require.NoError(t, err)
	assert.Equal(t, "only", v)

	rows, err := f.GetRows(SheetCCQ)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
