package boltstore

import (
	"testing"

	"github.com/idilsaglam/sheettracker/internal/model"
	"github.com/idilsaglam/sheettracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyDatabase(t *testing.T) {
	b, err := Open(t.TempDir())
	require.NoError(t, err)
	defer b.Close()

	data, err := b.Load()

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStoreRoundTripThroughBolt(t *testing.T) {
	dir := t.TempDir()

	b, err := Open(dir)
	require.NoError(t, err)
	s := store.New(b)
	s.Init()
	_, err = s.Add([]model.Question{
		{Title: "Two Sum", Link: "https://a.io/1", Category: model.CategoryExcel},
		{Title: "Word Ladder", Link: "", Category: model.CategoryGitHub},
	})
	require.NoError(t, err)
	require.NoError(t, s.Delete(0))
	want := s.Questions()
	require.NoError(t, b.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()
	again := store.New(reopened)
	again.Init()

	assert.Equal(t, want, again.Questions())
	assert.Equal(t, []model.Question{{Title: "Word Ladder", Category: model.CategoryGitHub}}, want)
}
