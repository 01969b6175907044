package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/google/uuid"
)

type journalService struct {
	journals repository.JournalRepo
	loc      *time.Location
	now      func() time.Time
}

func NewJournalService(journals repository.JournalRepo, loc *time.Location) JournalService {
	if loc == nil {
		loc = time.UTC
	}
	return &journalService{journals: journals, loc: loc, now: time.Now}
}

func (s *journalService) Write(ctx context.Context, userID, date, content string) (*domain.JournalEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, validationErr("content is required")
	}
	now := s.now()
	if date == "" {
		date = domain.Today(now, s.loc)
	} else if _, err := domain.ParseDate(date); err != nil {
		return nil, validationErr("%v", err)
	}

	j := &domain.JournalEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		Content:   content,
		WordCount: domain.CountWords(content),
		CreatedAt: now.UTC(),
	}
	if err := s.journals.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *journalService) GetByDate(ctx context.Context, userID, date string) (*domain.JournalEntry, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, validationErr("%v", err)
	}
	return s.journals.GetByDate(ctx, userID, date)
}

func (s *journalService) List(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error) {
	return s.journals.ListByUser(ctx, userID, limit)
}
