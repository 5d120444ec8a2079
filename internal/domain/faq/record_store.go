package faq

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/polyglot-faq/pkg/errors"
	"github.com/yanqian/polyglot-faq/pkg/util"
)

// RecordStore owns FAQ records and fills missing translations before every persist.
type RecordStore struct {
	repo    Repository
	gateway *Gateway
	cfg     Config
	logger  *slog.Logger
	now     util.Clock
}

// NewRecordStore wires the store to its repository and translation gateway.
func NewRecordStore(repo Repository, gateway *Gateway, cfg Config, logger *slog.Logger) *RecordStore {
	return &RecordStore{
		repo:    repo,
		gateway: gateway,
		cfg:     cfg.withDefaults(),
		logger:  logger.With("component", "faq.record_store"),
		now:     util.NowUTC,
	}
}

// Create validates the canonical text, translates it and inserts a new record.
func (s *RecordStore) Create(ctx context.Context, in Input) (FAQ, error) {
	question, answer, err := validateCanonical(in.Question, in.Answer)
	if err != nil {
		return FAQ{}, err
	}
	now := s.now()
	record := FAQ{
		Question:  question,
		Answer:    answer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.fillTranslations(ctx, &record)

	stored, err := s.repo.Insert(ctx, record)
	if err != nil {
		return FAQ{}, apperrors.Wrap(apperrors.CodeInternal, "failed to create faq", err)
	}
	return stored, nil
}

// Update applies patch to the record with id and persists it.
// Populated translations survive unless RetranslateOnChange is set and the source changed.
func (s *RecordStore) Update(ctx context.Context, id int64, patch Patch) (FAQ, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return FAQ{}, err
	}

	question, answer := current.Question, current.Answer
	if patch.Question != nil {
		question = *patch.Question
	}
	if patch.Answer != nil {
		answer = *patch.Answer
	}
	question, answer, err = validateCanonical(question, answer)
	if err != nil {
		return FAQ{}, err
	}

	next := current.Clone()
	next.Question = question
	next.Answer = answer
	next.UpdatedAt = s.now()
	if s.cfg.RetranslateOnChange {
		clearStale(&next, question != current.Question, answer != current.Answer)
	}
	s.fillTranslations(ctx, &next)

	stored, found, err := s.repo.Update(ctx, next)
	if err != nil {
		return FAQ{}, apperrors.Wrap(apperrors.CodeInternal, "failed to update faq", err)
	}
	if !found {
		return FAQ{}, notFound(id)
	}
	return stored, nil
}

// Delete removes the record with id.
func (s *RecordStore) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "failed to delete faq", err)
	}
	if !found {
		return notFound(id)
	}
	return nil
}

// Get loads a single record.
func (s *RecordStore) Get(ctx context.Context, id int64) (FAQ, error) {
	record, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return FAQ{}, apperrors.Wrap(apperrors.CodeInternal, "failed to load faq", err)
	}
	if !found {
		return FAQ{}, notFound(id)
	}
	return record, nil
}

// List returns every record ordered by id.
func (s *RecordStore) List(ctx context.Context) ([]FAQ, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to list faqs", err)
	}
	return records, nil
}

func (s *RecordStore) fillTranslations(ctx context.Context, record *FAQ) {
	for _, lang := range targetLanguages {
		tr := record.Translation(lang)
		if tr.IsComplete() {
			continue
		}
		if tr.Question == "" {
			tr.Question = s.translate(ctx, record.Question, lang, FormatPlain)
		}
		if tr.Answer == "" {
			tr.Answer = s.translate(ctx, record.Answer, lang, FormatRich)
		}
		record.SetTranslation(lang, tr)
	}
}

// translate sends questions as plain text; only answers may carry markup.
func (s *RecordStore) translate(ctx context.Context, text string, lang Language, format Format) string {
	field := "question"
	if format == FormatRich {
		field = "answer"
	}
	result := s.gateway.TranslateFormat(ctx, text, lang, format)
	if result.Fallback {
		s.logger.Warn("translation fell back to source text", "lang", lang, "field", field, "reason", result.Reason)
	}
	return result.Text
}

func clearStale(record *FAQ, questionChanged, answerChanged bool) {
	if !questionChanged && !answerChanged {
		return
	}
	for _, lang := range targetLanguages {
		tr := record.Translation(lang)
		if questionChanged {
			tr.Question = ""
		}
		if answerChanged {
			tr.Answer = ""
		}
		record.SetTranslation(lang, tr)
	}
}

// validateCanonical rejects blank text but keeps the submitted text verbatim.
func validateCanonical(question, answer string) (string, string, error) {
	if strings.TrimSpace(question) == "" {
		return "", "", apperrors.Wrap(apperrors.CodeInvalidInput, "question cannot be empty", nil)
	}
	if strings.TrimSpace(answer) == "" {
		return "", "", apperrors.Wrap(apperrors.CodeInvalidInput, "answer cannot be empty", nil)
	}
	return question, answer, nil
}

func notFound(id int64) error {
	return apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("faq %d not found", id), nil)
}
