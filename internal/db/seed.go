package db

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/aziyat1977/Inter-1.1/internal/content"
	"github.com/aziyat1977/Inter-1.1/internal/models"
	"github.com/jmoiron/sqlx"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// contentTables lists seeded tables children first so deletes respect the
// foreign keys.
var contentTables = []string{
	"grammar_examples", "grammar_rules",
	"question_answers", "question_options", "questions",
	"vocab_translations", "vocab",
}

// Seed replaces the content tables with the built-in lesson tables in one
// transaction. Running it twice leaves the same rows.
func (db *DB) Seed(ctx context.Context) error {
	return db.tx(ctx, func(tx *sqlx.Tx) error {
		for _, table := range contentTables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		if err := seedVocab(ctx, tx, content.Vocab()); err != nil {
			return err
		}
		questions := append(content.BattleQuestions(), content.PracticeExercises()...)
		if err := seedQuestions(ctx, tx, questions); err != nil {
			return err
		}
		if err := seedGrammar(ctx, tx, content.Grammar()); err != nil {
			return err
		}
		db.log.Debug("seeded %d vocab items, %d questions", len(content.Vocab()), len(questions))
		return nil
	})
}

func exec(ctx context.Context, tx *sqlx.Tx, q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

func seedVocab(ctx context.Context, tx *sqlx.Tx, items []models.VocabItem) error {
	words := sqlBuilder.Insert("vocab").
		Columns("id", "word", "part_of_speech", "definition", "context_sentence", "position")
	translations := sqlBuilder.Insert("vocab_translations").Columns("vocab_id", "language", "text")
	hasTranslations := false
	for i, v := range items {
		words = words.Values(v.ID, v.Word, v.PartOfSpeech, v.Definition, v.ContextSentence, i)
		for _, lang := range models.Languages {
			if text, ok := v.Translation[lang]; ok {
				translations = translations.Values(v.ID, string(lang), text)
				hasTranslations = true
			}
		}
	}
	if err := exec(ctx, tx, words); err != nil {
		return fmt.Errorf("seed vocab: %w", err)
	}
	if hasTranslations {
		if err := exec(ctx, tx, translations); err != nil {
			return fmt.Errorf("seed translations: %w", err)
		}
	}
	return nil
}

func seedQuestions(ctx context.Context, tx *sqlx.Tx, questions []models.Question) error {
	for i, q := range questions {
		row := sqlBuilder.Insert("questions").
			Columns("id", "bank", "prompt", "type", "explanation", "hint", "position").
			Values(q.ID, string(q.Bank), q.Prompt, string(q.Type), q.Explanation, q.Hint, i)
		if err := exec(ctx, tx, row); err != nil {
			return fmt.Errorf("seed question %s: %w", q.ID, err)
		}
		if len(q.Options) > 0 {
			opts := sqlBuilder.Insert("question_options").Columns("question_id", "position", "text")
			for j, o := range q.Options {
				opts = opts.Values(q.ID, j, o)
			}
			if err := exec(ctx, tx, opts); err != nil {
				return fmt.Errorf("seed options for %s: %w", q.ID, err)
			}
		}
		if len(q.CorrectAnswers) == 0 {
			continue
		}
		answers := sqlBuilder.Insert("question_answers").Columns("question_id", "position", "text")
		for j, a := range q.CorrectAnswers {
			answers = answers.Values(q.ID, j, a)
		}
		if err := exec(ctx, tx, answers); err != nil {
			return fmt.Errorf("seed answers for %s: %w", q.ID, err)
		}
	}
	return nil
}

func seedGrammar(ctx context.Context, tx *sqlx.Tx, rules []models.GrammarRule) error {
	for i, r := range rules {
		id := i + 1
		row := sqlBuilder.Insert("grammar_rules").
			Columns("id", "title", "usage", "description").
			Values(id, r.Title, string(r.Usage), r.Description)
		if err := exec(ctx, tx, row); err != nil {
			return fmt.Errorf("seed grammar %q: %w", r.Title, err)
		}
		if len(r.Examples) == 0 {
			continue
		}
		ex := sqlBuilder.Insert("grammar_examples").Columns("rule_id", "position", "text")
		for j, e := range r.Examples {
			ex = ex.Values(id, j, e)
		}
		if err := exec(ctx, tx, ex); err != nil {
			return fmt.Errorf("seed grammar examples: %w", err)
		}
	}
	return nil
}
