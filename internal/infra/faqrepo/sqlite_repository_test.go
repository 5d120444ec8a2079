package faqrepo

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

func newSQLiteUnderTest(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS faqs")).WillReturnResult(sqlmock.NewResult(0, 0))
	repo, err := NewSQLiteRepository(context.Background(), db)
	require.NoError(t, err)
	return repo, mock
}

func faqRow(id int64, question, answer string, ts time.Time, translated ...driver.Value) []driver.Value {
	row := []driver.Value{id, question, answer}
	for i := 0; i < len(translationColumns)*2; i++ {
		if i < len(translated) {
			row = append(row, translated[i])
		} else {
			row = append(row, nil)
		}
	}
	return append(row, ts, ts)
}

func allColumns() []string {
	cols := []string{"id", "question", "answer"}
	cols = append(cols, translatedColumnNames()...)
	return append(cols, "created_at", "updated_at")
}

func TestSQLiteRepositoryList(t *testing.T) {
	repo, mock := newSQLiteUnderTest(t)
	ts := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(allColumns()).
		AddRow(faqRow(1, "Q1", "A1", ts, "क्यू", "उत्तर")...).
		AddRow(faqRow(2, "Q2", "A2", ts)...)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + selectColumns() + " FROM faqs ORDER BY id")).WillReturnRows(rows)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, faq.Translation{Question: "क्यू", Answer: "उत्तर"}, records[0].Translation(faq.LanguageHindi))
	require.Equal(t, faq.Translation{}, records[1].Translation(faq.LanguageHindi))
	require.Equal(t, "Q2", faq.Render(records[1], faq.LanguageHindi).Question)
	require.Equal(t, ts, records[0].CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepositoryGetMissing(t *testing.T) {
	repo, mock := newSQLiteUnderTest(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM faqs WHERE id = ?")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(allColumns()))

	_, found, err := repo.Get(context.Background(), 9)
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepositoryInsert(t *testing.T) {
	repo, mock := newSQLiteUnderTest(t)
	ts := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	record := faq.FAQ{Question: "Q", Answer: "A", CreatedAt: ts, UpdatedAt: ts}
	record.SetTranslation(faq.LanguageHindi, faq.Translation{Question: "qhi", Answer: "ahi"})

	args := []driver.Value{"Q", "A", "qhi", "ahi"}
	for i := 2; i < len(translationColumns)*2; i++ {
		args = append(args, nil)
	}
	args = append(args, ts, ts)
	mock.ExpectExec(regexp.QuoteMeta(insertStatement(questionPlaceholder))).
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(5, 1))

	stored, err := repo.Insert(context.Background(), record)
	require.NoError(t, err)
	require.Equal(t, int64(5), stored.ID)
	require.Equal(t, "qhi", stored.Translation(faq.LanguageHindi).Question)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepositoryUpdate(t *testing.T) {
	repo, mock := newSQLiteUnderTest(t)
	record := faq.FAQ{ID: 3, Question: "Q", Answer: "A", UpdatedAt: time.Now().UTC()}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE faqs SET question = ?, answer = ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	stored, found, err := repo.Update(context.Background(), record)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(3), stored.ID)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE faqs SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	_, found, err = repo.Update(context.Background(), record)
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepositoryDelete(t *testing.T) {
	repo, mock := newSQLiteUnderTest(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faqs WHERE id = ?")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	found, err := repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	require.True(t, found)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faqs WHERE id = ?")).
		WithArgs(int64(4)).
		WillReturnError(errors.New("database is locked"))
	_, err = repo.Delete(context.Background(), 4)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewSQLiteRepositorySchemaFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("readonly database"))
	_, err = NewSQLiteRepository(context.Background(), db)
	require.Error(t, err)
}
