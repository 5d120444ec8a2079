package faqrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

func TestMemoryRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	created := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	first, err := repo.Insert(ctx, faq.FAQ{ID: 99, Question: "Q1", Answer: "A1", CreatedAt: created})
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)
	second, err := repo.Insert(ctx, faq.FAQ{Question: "Q2", Answer: "A2"})
	require.NoError(t, err)
	require.Equal(t, int64(2), second.ID)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, int64(1), records[0].ID)

	first.Question = "Q1 updated"
	first.CreatedAt = time.Time{}
	first.SetTranslation(faq.LanguageEnglish, faq.Translation{})
	first.SetTranslation(faq.LanguageSpanish, faq.Translation{Question: "P1", Answer: "R1"})
	updated, found, err := repo.Update(ctx, first)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, created, updated.CreatedAt)

	got, found, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Q1 updated", got.Question)
	require.Equal(t, "P1", got.Translation(faq.LanguageSpanish).Question)

	deleted, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	require.True(t, deleted)
	deleted, err = repo.Delete(ctx, 1)
	require.NoError(t, err)
	require.False(t, deleted)

	_, found, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	require.False(t, found)

	_, found, err = repo.Update(ctx, faq.FAQ{ID: 1, Question: "gone"})
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	record := faq.FAQ{Question: "Q", Answer: "A"}
	record.SetTranslation(faq.LanguageHindi, faq.Translation{Question: "q", Answer: "a"})
	stored, err := repo.Insert(ctx, record)
	require.NoError(t, err)

	stored.Translations[faq.LanguageHindi] = faq.Translation{Question: "mutated"}
	got, _, err := repo.Get(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, "q", got.Translation(faq.LanguageHindi).Question)
}
