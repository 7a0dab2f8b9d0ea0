package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/skrapbuk/skrapbuk/internal/domain"
	"github.com/skrapbuk/skrapbuk/internal/repository"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
	"github.com/skrapbuk/skrapbuk/pkg/validator"
)

type AnswersInput struct {
	Game   string `json:"game"`
	Colour string `json:"colour"`
	Song   string `json:"song"`
	Film   string `json:"film"`
	Food   string `json:"food"`
	Hobby  string `json:"hobby"`
}

type AnswersService struct {
	answers repository.AnswersRepository
	log     *logging.Logger
}

func NewAnswersService(answers repository.AnswersRepository, log *logging.Logger) *AnswersService {
	return &AnswersService{answers: answers, log: log}
}

// Submit validates all six fields before any write, then upserts: the first
// submission creates the record, later ones overwrite every field. Fields
// are trimmed before validation so the stored value is exactly the one the
// checks ran against.
func (s *AnswersService) Submit(ctx context.Context, snowflake string, input AnswersInput) (*domain.Answers, error) {
	input.Game = strings.TrimSpace(input.Game)
	input.Colour = strings.TrimSpace(input.Colour)
	input.Song = strings.TrimSpace(input.Song)
	input.Film = strings.TrimSpace(input.Film)
	input.Food = strings.TrimSpace(input.Food)
	input.Hobby = strings.TrimSpace(input.Hobby)

	if errs := validator.ValidateAnswers(
		input.Game, input.Colour, input.Song, input.Film, input.Food, input.Hobby,
	); errs.HasErrors() {
		return nil, &ValidationError{Fields: errs}
	}

	answers := &domain.Answers{
		UserSnowflake: snowflake,
		Game:          input.Game,
		Colour:        input.Colour,
		Song:          input.Song,
		Film:          input.Film,
		Food:          input.Food,
		Hobby:         input.Hobby,
	}

	if err := s.answers.Upsert(ctx, answers); err != nil {
		return nil, fmt.Errorf("saving answers: %w", err)
	}

	s.log.Info("answers submitted", logrus.Fields{"snowflake": snowflake})
	return answers, nil
}

// Get returns the caller's own answers, or nil if none submitted yet.
func (s *AnswersService) Get(ctx context.Context, snowflake string) (*domain.Answers, error) {
	return s.answers.GetBySnowflake(ctx, snowflake)
}
