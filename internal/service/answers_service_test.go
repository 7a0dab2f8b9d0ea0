package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAnswers() AnswersInput {
	return AnswersInput{
		Game:   "Outer Wilds",
		Colour: "teal",
		Song:   "Holiday",
		Film:   "Klaus",
		Food:   "pierogi",
		Hobby:  "whittling",
	}
}

func TestAnswersService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("first submission creates the record", func(t *testing.T) {
		repo := newFakeAnswersRepo()
		svc := NewAnswersService(repo, testLogger())

		answers, err := svc.Submit(ctx, "111", validAnswers())
		require.NoError(t, err)
		assert.Equal(t, "Outer Wilds", answers.Game)

		stored, err := svc.Get(ctx, "111")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "whittling", stored.Hobby)
	})

	t.Run("second submission overwrites all fields", func(t *testing.T) {
		repo := newFakeAnswersRepo()
		svc := NewAnswersService(repo, testLogger())

		_, err := svc.Submit(ctx, "111", validAnswers())
		require.NoError(t, err)

		second := validAnswers()
		second.Game = "Celeste"
		second.Food = "ramen"
		_, err = svc.Submit(ctx, "111", second)
		require.NoError(t, err)

		assert.Len(t, repo.rows, 1, "upsert must not append a second record")
		stored := repo.rows["111"]
		assert.Equal(t, "Celeste", stored.Game)
		assert.Equal(t, "ramen", stored.Food)
	})

	t.Run("empty field rejected with no write", func(t *testing.T) {
		repo := newFakeAnswersRepo()
		svc := NewAnswersService(repo, testLogger())

		input := validAnswers()
		input.Song = ""
		_, err := svc.Submit(ctx, "111", input)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "song")
		assert.Zero(t, repo.upserts, "no write on validation failure")
	})

	t.Run("over-length field rejected with no write", func(t *testing.T) {
		repo := newFakeAnswersRepo()
		svc := NewAnswersService(repo, testLogger())

		input := validAnswers()
		input.Hobby = strings.Repeat("x", 281)
		_, err := svc.Submit(ctx, "111", input)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "hobby")
		assert.Zero(t, repo.upserts)
	})

	t.Run("multibyte answer within the character ceiling accepted", func(t *testing.T) {
		repo := newFakeAnswersRepo()
		svc := NewAnswersService(repo, testLogger())

		input := validAnswers()
		input.Game = strings.Repeat("☃", 200)
		_, err := svc.Submit(ctx, "111", input)
		require.NoError(t, err)
	})

	t.Run("padded fields are stored trimmed", func(t *testing.T) {
		repo := newFakeAnswersRepo()
		svc := NewAnswersService(repo, testLogger())

		input := validAnswers()
		input.Game = "  Outer Wilds  "
		input.Colour = "\tteal\n"
		answers, err := svc.Submit(ctx, "111", input)
		require.NoError(t, err)
		assert.Equal(t, "Outer Wilds", answers.Game)
		assert.Equal(t, "teal", answers.Colour)

		stored := repo.rows["111"]
		assert.Equal(t, "Outer Wilds", stored.Game)
		assert.Equal(t, "teal", stored.Colour)
	})

	t.Run("validation failure does not modify an existing record", func(t *testing.T) {
		repo := newFakeAnswersRepo()
		svc := NewAnswersService(repo, testLogger())

		_, err := svc.Submit(ctx, "111", validAnswers())
		require.NoError(t, err)

		bad := validAnswers()
		bad.Colour = ""
		_, err = svc.Submit(ctx, "111", bad)
		require.Error(t, err)

		stored := repo.rows["111"]
		assert.Equal(t, "teal", stored.Colour)
	})
}

func TestAnswersService_Get_NoRecord(t *testing.T) {
	svc := NewAnswersService(newFakeAnswersRepo(), testLogger())
	answers, err := svc.Get(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, answers)
}
