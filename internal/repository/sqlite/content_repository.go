package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/aziyat1977/Inter-1.1/internal/repository"
	"github.com/jmoiron/sqlx"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type contentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) repository.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) ListVocab(ctx context.Context, filter models.VocabFilter) ([]models.VocabItem, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("listing vocab: pos=%q search=%q", filter.PartOfSpeech, filter.Search)

	query := sqlBuilder.Select("id", "word", "part_of_speech", "definition", "context_sentence").
		From("vocab").
		OrderBy("position ASC")
	if filter.PartOfSpeech != "" {
		query = query.Where(squirrel.Eq{"part_of_speech": filter.PartOfSpeech})
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		query = query.Where(squirrel.Expr(`word LIKE ? ESCAPE '\'`, likeEscaper.Replace(s)+"%"))
	}
	switch {
	case filter.Limit > 0:
		query = query.Limit(uint64(filter.Limit))
	case filter.Offset > 0:
		// SQLite only accepts OFFSET after a LIMIT.
		query = query.Limit(math.MaxInt64)
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	var items []models.VocabItem
	if err := r.db.SelectContext(ctx, &items, stmt, args...); err != nil {
		log.Error("failed to list vocab: %v", err)
		return nil, err
	}
	if err := r.attachTranslations(ctx, items); err != nil {
		return nil, err
	}
	log.Debug("found %d vocab items", len(items))
	return items, nil
}

func (r *contentRepository) GetVocab(ctx context.Context, id string) (*models.VocabItem, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")

	var v models.VocabItem
	err := r.db.GetContext(ctx, &v, `
SELECT id, word, part_of_speech, definition, context_sentence
FROM vocab
WHERE id = ?
`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("vocab not found: id=%s", id)
		} else {
			log.Error("failed to get vocab: %v", err)
		}
		return nil, err
	}
	items := []models.VocabItem{v}
	if err := r.attachTranslations(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (r *contentRepository) attachTranslations(ctx context.Context, items []models.VocabItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	byID := make(map[string]int, len(items))
	for i, v := range items {
		ids[i] = v.ID
		byID[v.ID] = i
	}
	stmt, args, err := sqlBuilder.Select("vocab_id", "language", "text").
		From("vocab_translations").
		Where(squirrel.Eq{"vocab_id": ids}).
		ToSql()
	if err != nil {
		return err
	}
	var rows []struct {
		VocabID  string `db:"vocab_id"`
		Language string `db:"language"`
		Text     string `db:"text"`
	}
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		logger.FromContext(ctx).WithPrefix("content_repo").Error("failed to load translations: %v", err)
		return err
	}
	for _, row := range rows {
		item := &items[byID[row.VocabID]]
		if item.Translation == nil {
			item.Translation = make(map[models.Language]string)
		}
		item.Translation[models.Language(row.Language)] = row.Text
	}
	return nil
}

type questionRow struct {
	ID          string `db:"id"`
	Bank        string `db:"bank"`
	Prompt      string `db:"prompt"`
	Type        string `db:"type"`
	Explanation string `db:"explanation"`
	Hint        string `db:"hint"`
}

type textRow struct {
	OwnerID  string `db:"owner_id"`
	Position int    `db:"position"`
	Text     string `db:"text"`
}

func (r *contentRepository) ListQuestions(ctx context.Context, bank models.QuestionBank) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo").WithField("bank", bank)

	var rows []questionRow
	err := r.db.SelectContext(ctx, &rows, `
SELECT id, bank, prompt, type, explanation, hint
FROM questions
WHERE bank = ?
ORDER BY position ASC
`, string(bank))
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	options, err := r.texts(ctx, "question_options", string(bank))
	if err != nil {
		log.Error("failed to load options: %v", err)
		return nil, err
	}
	answers, err := r.texts(ctx, "question_answers", string(bank))
	if err != nil {
		log.Error("failed to load answers: %v", err)
		return nil, err
	}

	out := make([]models.Question, len(rows))
	for i, row := range rows {
		out[i] = models.Question{
			ID:             row.ID,
			Bank:           models.QuestionBank(row.Bank),
			Prompt:         row.Prompt,
			Type:           models.QuestionType(row.Type),
			Options:        options[row.ID],
			CorrectAnswers: answers[row.ID],
			Explanation:    row.Explanation,
			Hint:           row.Hint,
		}
	}
	log.Debug("found %d questions", len(out))
	return out, nil
}

// texts loads an ordered child text table keyed by question id.
func (r *contentRepository) texts(ctx context.Context, table, bank string) (map[string][]string, error) {
	stmt, args, err := sqlBuilder.Select("t.question_id AS owner_id", "t.position AS position", "t.text AS text").
		From(table+" t").
		Join("questions q ON q.id = t.question_id").
		Where(squirrel.Eq{"q.bank": bank}).
		OrderBy("t.question_id", "t.position").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []textRow
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	for _, row := range rows {
		out[row.OwnerID] = append(out[row.OwnerID], row.Text)
	}
	return out, nil
}

func (r *contentRepository) ListGrammar(ctx context.Context, usage models.TenseUsage) ([]models.GrammarRule, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")

	query := sqlBuilder.Select("id", "title", "usage", "description").From("grammar_rules").OrderBy("id")
	if usage != "" {
		query = query.Where(squirrel.Eq{"usage": string(usage)})
	}
	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID          int64  `db:"id"`
		Title       string `db:"title"`
		Usage       string `db:"usage"`
		Description string `db:"description"`
	}
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		log.Error("failed to list grammar: %v", err)
		return nil, err
	}

	var examples []struct {
		RuleID int64  `db:"rule_id"`
		Text   string `db:"text"`
	}
	if err := r.db.SelectContext(ctx, &examples, `SELECT rule_id, text FROM grammar_examples ORDER BY rule_id, position`); err != nil {
		log.Error("failed to list grammar examples: %v", err)
		return nil, err
	}
	byRule := make(map[int64][]string)
	for _, e := range examples {
		byRule[e.RuleID] = append(byRule[e.RuleID], e.Text)
	}

	out := make([]models.GrammarRule, len(rows))
	for i, row := range rows {
		out[i] = models.GrammarRule{
			Title:       row.Title,
			Usage:       models.TenseUsage(row.Usage),
			Description: row.Description,
			Examples:    byRule[row.ID],
		}
	}
	return out, nil
}
