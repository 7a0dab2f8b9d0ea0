package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skrapbuk/skrapbuk/internal/domain"
	"github.com/skrapbuk/skrapbuk/internal/repository"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
	"github.com/skrapbuk/skrapbuk/pkg/validator"
)

var ErrNoArtwork = errors.New("no artwork submitted")

// BlobStore is the slice of the file store the artwork workflow needs.
type BlobStore interface {
	Save(name string, r io.Reader) (int64, error)
	Remove(name string) error
	Path(name string) string
}

type ArtworkService struct {
	artwork      repository.ArtworkRepository
	participants repository.ParticipantRepository
	files        BlobStore
	log          *logging.Logger
}

func NewArtworkService(
	artwork repository.ArtworkRepository,
	participants repository.ParticipantRepository,
	files BlobStore,
	log *logging.Logger,
) *ArtworkService {
	return &ArtworkService{
		artwork:      artwork,
		participants: participants,
		files:        files,
		log:          log,
	}
}

// Upload validates and stores a submitted file. The size ceiling is enforced
// against the bytes actually read, not a declared header. If the submitter
// already has artwork, the old file is deleted and the record updated in
// place, keeping at most one record per participant.
func (s *ArtworkService) Upload(ctx context.Context, snowflake, filename string, payload io.Reader) (*domain.Artwork, error) {
	if errs := validator.ValidateArtworkFilename(filename); errs.HasErrors() {
		return nil, &ValidationError{Fields: errs}
	}

	existing, err := s.artwork.GetByCreator(ctx, snowflake)
	if err != nil {
		return nil, fmt.Errorf("checking existing artwork: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	stored := uuid.New().String() + ext

	// Read one byte past the ceiling so an oversized payload is detected
	// from the stream itself.
	written, err := s.files.Save(stored, io.LimitReader(payload, validator.MaxArtworkBytes+1))
	if err != nil {
		s.files.Remove(stored)
		return nil, fmt.Errorf("storing artwork: %w", err)
	}
	if written > validator.MaxArtworkBytes {
		s.files.Remove(stored)
		errs := make(validator.ValidationErrors)
		errs.Add("file", "File exceeds the 50 MiB limit")
		return nil, &ValidationError{Fields: errs}
	}

	if existing != nil {
		// Repoint the record before touching the old file, so a failed
		// update still leaves a servable submission on disk.
		previous := existing.ImagePath
		existing.ImagePath = stored
		existing.CreatedAt = time.Now()
		if err := s.artwork.Update(ctx, existing); err != nil {
			s.files.Remove(stored)
			return nil, fmt.Errorf("updating artwork record: %w", err)
		}
		if err := s.files.Remove(previous); err != nil {
			s.log.Warn("could not remove replaced artwork", logrus.Fields{
				"snowflake": snowflake, "path": previous, "error": err.Error(),
			})
		}
		s.log.Info("artwork replaced", logrus.Fields{"snowflake": snowflake, "path": stored})
		return existing, nil
	}

	artwork := &domain.Artwork{
		CreatedBy: snowflake,
		ImagePath: stored,
		CreatedAt: time.Now(),
	}
	if err := s.artwork.Create(ctx, artwork); err != nil {
		s.files.Remove(stored)
		return nil, fmt.Errorf("creating artwork record: %w", err)
	}

	s.log.Info("artwork uploaded", logrus.Fields{"snowflake": snowflake, "path": stored})
	return artwork, nil
}

// Own returns the caller's artwork record and the on-disk path to serve.
func (s *ArtworkService) Own(ctx context.Context, snowflake string) (*domain.Artwork, string, error) {
	artwork, err := s.artwork.GetByCreator(ctx, snowflake)
	if err != nil {
		return nil, "", fmt.Errorf("fetching artwork: %w", err)
	}
	if artwork == nil {
		return nil, "", ErrNoArtwork
	}
	return artwork, s.files.Path(artwork.ImagePath), nil
}

// FromPartner returns the artwork the caller's partner submitted for them.
func (s *ArtworkService) FromPartner(ctx context.Context, snowflake string) (*domain.Artwork, string, error) {
	row, err := s.participants.GetBySnowflake(ctx, snowflake)
	if err != nil {
		return nil, "", fmt.Errorf("fetching participant: %w", err)
	}
	if row == nil {
		return nil, "", ErrNotJoined
	}
	if row.Partner == nil {
		return nil, "", ErrNoPartner
	}
	return s.Own(ctx, *row.Partner)
}
