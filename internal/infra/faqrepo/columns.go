package faqrepo

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

// translationColumn maps a target language to its question/answer columns.
type translationColumn struct {
	lang     faq.Language
	question string
	answer   string
}

// translationColumns is the single source of the per-language column layout shared by the
// SQL repositories. Order matches the scan/insert argument order.
var translationColumns = []translationColumn{
	{lang: faq.LanguageHindi, question: "question_hi", answer: "answer_hi"},
	{lang: faq.LanguageBengali, question: "question_bn", answer: "answer_bn"},
	{lang: faq.LanguageSpanish, question: "question_es", answer: "answer_es"},
	{lang: faq.LanguageTelugu, question: "question_te", answer: "answer_te"},
	{lang: faq.LanguageSanskrit, question: "question_sa", answer: "answer_sa"},
}

// selectColumns lists every faqs column in scan order.
func selectColumns() string {
	cols := []string{"id", "question", "answer"}
	cols = append(cols, translatedColumnNames()...)
	cols = append(cols, "created_at", "updated_at")
	return strings.Join(cols, ", ")
}

func translatedColumnNames() []string {
	out := make([]string, 0, len(translationColumns)*2)
	for _, col := range translationColumns {
		out = append(out, col.question, col.answer)
	}
	return out
}

// translatedValues returns the translated fields of record in column order; empty fields
// are stored as NULL.
func translatedValues(record faq.FAQ) []any {
	out := make([]any, 0, len(translationColumns)*2)
	for _, col := range translationColumns {
		tr := record.Translation(col.lang)
		out = append(out, nullable(tr.Question), nullable(tr.Answer))
	}
	return out
}

func nullable(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanFAQ reads a row selected with selectColumns.
func scanFAQ(row rowScanner) (faq.FAQ, error) {
	var record faq.FAQ
	translated := make([]sql.NullString, len(translationColumns)*2)
	dest := []any{&record.ID, &record.Question, &record.Answer}
	for i := range translated {
		dest = append(dest, &translated[i])
	}
	dest = append(dest, &record.CreatedAt, &record.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return faq.FAQ{}, err
	}
	for i, col := range translationColumns {
		record.SetTranslation(col.lang, faq.Translation{
			Question: translated[2*i].String,
			Answer:   translated[2*i+1].String,
		})
	}
	return record, nil
}

// placeholder renders the n-th (1-based) bind parameter for a SQL dialect.
type placeholder func(n int) string

func dollarPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func questionPlaceholder(int) string {
	return "?"
}

// insertStatement inserts question, answer, translations, created_at, updated_at.
func insertStatement(bind placeholder) string {
	cols := []string{"question", "answer"}
	cols = append(cols, translatedColumnNames()...)
	cols = append(cols, "created_at", "updated_at")
	binds := make([]string, len(cols))
	for i := range cols {
		binds[i] = bind(i + 1)
	}
	return "INSERT INTO faqs (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(binds, ", ") + ")"
}

// insertArgs matches insertStatement.
func insertArgs(record faq.FAQ) []any {
	args := []any{record.Question, record.Answer}
	args = append(args, translatedValues(record)...)
	return append(args, record.CreatedAt, record.UpdatedAt)
}

// updateStatement sets question, answer, translations and updated_at, keyed by the last bind.
func updateStatement(bind placeholder) string {
	cols := []string{"question", "answer"}
	cols = append(cols, translatedColumnNames()...)
	cols = append(cols, "updated_at")
	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = col + " = " + bind(i+1)
	}
	return "UPDATE faqs SET " + strings.Join(sets, ", ") + " WHERE id = " + bind(len(cols)+1)
}

// updateArgs matches updateStatement.
func updateArgs(record faq.FAQ) []any {
	args := []any{record.Question, record.Answer}
	args = append(args, translatedValues(record)...)
	return append(args, record.UpdatedAt, record.ID)
}
