package faqrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

// faqModel is the ORM row for the faqs table.
type faqModel struct {
	ID         int64          `gorm:"primaryKey"`
	Question   string         `gorm:"type:text;not null"`
	Answer     string         `gorm:"type:text;not null"`
	QuestionHi sql.NullString `gorm:"column:question_hi;type:text"`
	AnswerHi   sql.NullString `gorm:"column:answer_hi;type:text"`
	QuestionBn sql.NullString `gorm:"column:question_bn;type:text"`
	AnswerBn   sql.NullString `gorm:"column:answer_bn;type:text"`
	QuestionEs sql.NullString `gorm:"column:question_es;type:text"`
	AnswerEs   sql.NullString `gorm:"column:answer_es;type:text"`
	QuestionTe sql.NullString `gorm:"column:question_te;type:text"`
	AnswerTe   sql.NullString `gorm:"column:answer_te;type:text"`
	QuestionSa sql.NullString `gorm:"column:question_sa;type:text"`
	AnswerSa   sql.NullString `gorm:"column:answer_sa;type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (faqModel) TableName() string {
	return "faqs"
}

// fields returns the translated column pair of the model for lang.
func (m *faqModel) fields(lang faq.Language) (question, answer *sql.NullString) {
	switch lang {
	case faq.LanguageHindi:
		return &m.QuestionHi, &m.AnswerHi
	case faq.LanguageBengali:
		return &m.QuestionBn, &m.AnswerBn
	case faq.LanguageSpanish:
		return &m.QuestionEs, &m.AnswerEs
	case faq.LanguageTelugu:
		return &m.QuestionTe, &m.AnswerTe
	case faq.LanguageSanskrit:
		return &m.QuestionSa, &m.AnswerSa
	default:
		return nil, nil
	}
}

func toModel(record faq.FAQ) faqModel {
	m := faqModel{
		ID:        record.ID,
		Question:  record.Question,
		Answer:    record.Answer,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
	for _, lang := range faq.TargetLanguages() {
		q, a := m.fields(lang)
		if q == nil {
			continue
		}
		tr := record.Translation(lang)
		*q = nullable(tr.Question)
		*a = nullable(tr.Answer)
	}
	return m
}

func (m faqModel) toDomain() faq.FAQ {
	record := faq.FAQ{
		ID:        m.ID,
		Question:  m.Question,
		Answer:    m.Answer,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, lang := range faq.TargetLanguages() {
		q, a := m.fields(lang)
		if q == nil {
			continue
		}
		record.SetTranslation(lang, faq.Translation{Question: q.String, Answer: a.String})
	}
	return record
}

// GormRepository implements faq.Repository on top of gorm.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository constructs the repository and auto-migrates the faqs table.
func NewGormRepository(db *gorm.DB) (*GormRepository, error) {
	if err := db.AutoMigrate(&faqModel{}); err != nil {
		return nil, err
	}
	return &GormRepository{db: db}, nil
}

// List implements faq.Repository.
func (r *GormRepository) List(ctx context.Context) ([]faq.FAQ, error) {
	var models []faqModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]faq.FAQ, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

// Get implements faq.Repository.
func (r *GormRepository) Get(ctx context.Context, id int64) (faq.FAQ, bool, error) {
	var m faqModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return faq.FAQ{}, false, nil
	}
	if err != nil {
		return faq.FAQ{}, false, err
	}
	return m.toDomain(), true, nil
}

// Insert implements faq.Repository.
func (r *GormRepository) Insert(ctx context.Context, record faq.FAQ) (faq.FAQ, error) {
	m := toModel(record)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return faq.FAQ{}, err
	}
	return m.toDomain(), nil
}

// Update implements faq.Repository.
func (r *GormRepository) Update(ctx context.Context, record faq.FAQ) (faq.FAQ, bool, error) {
	m := toModel(record)
	result := r.db.WithContext(ctx).Model(&faqModel{ID: m.ID}).Select("*").Omit("id", "created_at").Updates(&m)
	if result.Error != nil {
		return faq.FAQ{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return faq.FAQ{}, false, nil
	}
	return r.Get(ctx, m.ID)
}

// Delete implements faq.Repository.
func (r *GormRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&faqModel{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

var _ faq.Repository = (*GormRepository)(nil)
