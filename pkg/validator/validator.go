package validator

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// MaxAnswerLength is the per-field ceiling for questionnaire answers.
const MaxAnswerLength = 280

// MaxArtworkBytes is the upload size ceiling (50 MiB), enforced against the
// actual payload rather than the declared Content-Length.
const MaxArtworkBytes = 50 << 20

// allowedExtensions covers the image and short-video formats artwork may use.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".mp4":  true,
	".mov":  true,
	".webm": true,
}

// ValidateAnswers checks all six questionnaire fields. Every field is
// required, non-empty after trimming, and at most MaxAnswerLength characters.
func ValidateAnswers(game, colour, song, film, food, hobby string) ValidationErrors {
	errs := make(ValidationErrors)

	fields := []struct {
		name  string
		value string
	}{
		{"game", game},
		{"colour", colour},
		{"song", song},
		{"film", film},
		{"food", food},
		{"hobby", hobby},
	}

	for _, f := range fields {
		value := strings.TrimSpace(f.value)
		if value == "" {
			errs.Add(f.name, fmt.Sprintf("Favourite %s is required", f.name))
		} else if utf8.RuneCountInString(value) > MaxAnswerLength {
			errs.Add(f.name, fmt.Sprintf("Favourite %s must be at most %d characters", f.name, MaxAnswerLength))
		}
	}

	return errs
}

// ValidateArtworkFilename checks the uploaded file's extension against the
// allow-list.
func ValidateArtworkFilename(filename string) ValidationErrors {
	errs := make(ValidationErrors)

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		errs.Add("file", "File has no extension")
	} else if !allowedExtensions[ext] {
		errs.Add("file", fmt.Sprintf("File type %s is not allowed", ext))
	}

	return errs
}
