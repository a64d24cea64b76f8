package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montaro/algohub/internal/models"
)

type algorithmFixture struct {
	db         *sql.DB
	algorithms *AlgorithmService
	userID     int64
	categoryID int64
}

func newAlgorithmFixture(t *testing.T) algorithmFixture {
	t.Helper()

	db := newTestDB(t)
	user, err := NewUserService(db).Register("montaro@gmail.com", "password")
	require.NoError(t, err)
	cat, err := NewCategoryService(db).Create("codility")
	require.NoError(t, err)

	return algorithmFixture{
		db:         db,
		algorithms: NewAlgorithmService(db),
		userID:     user.ID,
		categoryID: cat.ID,
	}
}

func TestAlgorithmServiceCreate(t *testing.T) {
	f := newAlgorithmFixture(t)

	algo, err := f.algorithms.Create("Binary Sort", `print("hi")`, "sorting", f.categoryID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "Binary Sort", algo.Title)
	assert.Equal(t, `print("hi")`, algo.Content)
	assert.Equal(t, "sorting", algo.SubCategory)
	assert.Equal(t, f.userID, algo.UserID)
	assert.Equal(t, models.AccessPublic, algo.Access)
	require.NotNil(t, algo.CategoryID)
	assert.Equal(t, f.categoryID, *algo.CategoryID)
}

func TestAlgorithmServiceCreateRequiresTitle(t *testing.T) {
	f := newAlgorithmFixture(t)

	_, err := f.algorithms.Create("", "content", "", f.categoryID, f.userID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAlgorithmServiceCreateUnknownCategory(t *testing.T) {
	f := newAlgorithmFixture(t)

	_, err := f.algorithms.Create("Binary Sort", "content", "", 99, f.userID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAlgorithmServiceGetMissing(t *testing.T) {
	f := newAlgorithmFixture(t)

	_, err := f.algorithms.Get(22)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAlgorithmServiceUpdateAppliesOnlyPatchedFields(t *testing.T) {
	f := newAlgorithmFixture(t)

	algo, err := f.algorithms.Create("Binary Sort", `print("hi")`, "sorting", f.categoryID, f.userID)
	require.NoError(t, err)

	title := "Binary Search"
	subCategory := "searching"
	updated, err := f.algorithms.Update(algo.ID, models.AlgorithmPatch{
		Title:       &title,
		SubCategory: &subCategory,
	})
	require.NoError(t, err)
	assert.Equal(t, "Binary Search", updated.Title)
	assert.Equal(t, "searching", updated.SubCategory)
	// Untouched fields keep their stored values.
	assert.Equal(t, `print("hi")`, updated.Content)
	assert.Equal(t, models.AccessPublic, updated.Access)

	got, err := f.algorithms.Get(algo.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestAlgorithmServiceUpdateRejectsEmptyTitle(t *testing.T) {
	f := newAlgorithmFixture(t)

	algo, err := f.algorithms.Create("Binary Sort", "", "", f.categoryID, f.userID)
	require.NoError(t, err)

	empty := ""
	_, err = f.algorithms.Update(algo.ID, models.AlgorithmPatch{Title: &empty})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAlgorithmServiceUpdateMissing(t *testing.T) {
	f := newAlgorithmFixture(t)

	title := "Binary Search"
	_, err := f.algorithms.Update(22, models.AlgorithmPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAlgorithmServiceListPublicFiltersPrivate(t *testing.T) {
	f := newAlgorithmFixture(t)

	public, err := f.algorithms.Create("Binary Sort", "", "", f.categoryID, f.userID)
	require.NoError(t, err)
	hidden, err := f.algorithms.Create("Secret Sauce", "", "", f.categoryID, f.userID)
	require.NoError(t, err)

	access := "private"
	_, err = f.algorithms.Update(hidden.ID, models.AlgorithmPatch{Access: &access})
	require.NoError(t, err)

	algos, err := f.algorithms.ListPublic()
	require.NoError(t, err)
	require.Len(t, algos, 1)
	assert.Equal(t, public.ID, algos[0].ID)
}

func TestAlgorithmServiceListByUser(t *testing.T) {
	f := newAlgorithmFixture(t)

	other, err := NewUserService(f.db).Register("kenpachi@bleach.com", "bankai")
	require.NoError(t, err)

	_, err = f.algorithms.Create("Binary Sort", "", "", f.categoryID, f.userID)
	require.NoError(t, err)
	_, err = f.algorithms.Create("Quick Sort", "", "", f.categoryID, other.ID)
	require.NoError(t, err)

	algos, err := f.algorithms.ListByUser(f.userID)
	require.NoError(t, err)
	require.Len(t, algos, 1)
	assert.Equal(t, "Binary Sort", algos[0].Title)

	none, err := f.algorithms.ListByUser(99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAlgorithmServiceDelete(t *testing.T) {
	f := newAlgorithmFixture(t)

	algo, err := f.algorithms.Create("Binary Sort", "", "", f.categoryID, f.userID)
	require.NoError(t, err)

	require.NoError(t, f.algorithms.Delete(algo.ID))

	_, err = f.algorithms.Get(algo.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, f.algorithms.Delete(algo.ID), ErrNotFound)
}
