package reservation

import (
	"testing"
	"time"

	"upc-cli/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSportsForm(t *testing.T) *Form {
	t.Helper()
	form, err := NewForm(storage.CategorySports, DefaultCatalog(), today)
	require.NoError(t, err)
	return form
}

func TestNewForm(t *testing.T) {
	form := newSportsForm(t)
	assert.Equal(t, storage.CategorySports, form.Category())
	assert.Equal(t, "RESERVAR UN ESPACIO DEPORTIVO", form.Title())
	assert.Equal(t, "19/09/2025", form.DateLabel())
	assert.Equal(t, form.Date(), form.MinDate())
	assert.Equal(t, DropdownNone, form.Active())
	assert.Len(t, form.SpaceOptions(), 3)

	lab, err := NewForm(storage.CategoryLaboratory, DefaultCatalog(), today)
	require.NoError(t, err)
	assert.Equal(t, "RESERVAR DE LABORATORIO", lab.Title())
	assert.Contains(t, lab.SpaceOptions(), "Laboratorio de Física")

	_, err = NewForm(storage.Category("piscina"), DefaultCatalog(), today)
	require.ErrorIs(t, err, storage.ErrUnknownCategory)
}

func TestDropdownsAreExclusive(t *testing.T) {
	form := newSportsForm(t)

	form.Toggle(DropdownCampus)
	assert.Equal(t, DropdownCampus, form.Active())

	form.Toggle(DropdownSpace)
	assert.Equal(t, DropdownSpace, form.Active())

	form.Toggle(DropdownSpace)
	assert.Equal(t, DropdownNone, form.Active())

	form.Toggle(DropdownCampus)
	form.OpenDatePicker()
	assert.Equal(t, DropdownDate, form.Active())

	form.CloseAll()
	assert.Equal(t, DropdownNone, form.Active())
}

func TestSelectClosesDropdown(t *testing.T) {
	form := newSportsForm(t)

	form.Toggle(DropdownCampus)
	require.NoError(t, form.SelectCampus("Monterrico"))
	assert.Equal(t, "Monterrico", form.Campus())
	assert.Equal(t, DropdownNone, form.Active())

	form.Toggle(DropdownSpace)
	require.NoError(t, form.SelectSpace("Espacio deportivos/Losa 1"))
	assert.Equal(t, "Espacio deportivos/Losa 1", form.SpaceType())
	assert.Equal(t, DropdownNone, form.Active())
}

func TestSelectUnknownOption(t *testing.T) {
	form := newSportsForm(t)

	require.ErrorIs(t, form.SelectCampus("Lima Centro"), ErrUnknownOption)
	require.ErrorIs(t, form.SelectSpace("Laboratorio de Física"), ErrUnknownOption)
	assert.Empty(t, form.Campus())
	assert.Empty(t, form.SpaceType())
}

func TestSetDate(t *testing.T) {
	form := newSportsForm(t)

	form.OpenDatePicker()
	require.NoError(t, form.SetDate(today.AddDate(0, 0, 3)))
	assert.Equal(t, "22/09/2025", form.DateLabel())
	assert.Equal(t, DropdownNone, form.Active())

	require.NoError(t, form.SetDate(today.Add(-time.Hour)))
	assert.Equal(t, "19/09/2025", form.DateLabel())

	err := form.SetDate(today.AddDate(0, 0, -1))
	require.ErrorIs(t, err, ErrPastDate)
	assert.Equal(t, "19/09/2025", form.DateLabel())
}

func TestSubmit(t *testing.T) {
	t.Run("campus missing", func(t *testing.T) {
		form := newSportsForm(t)
		require.NoError(t, form.SelectSpace("Espacio deportivos/Losa 1"))

		_, err := form.Submit()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "campus", verr.Field)
		assert.Equal(t, "Por favor selecciona un campus", verr.Message)
		assert.Equal(t, "Espacio deportivos/Losa 1", form.SpaceType())
	})

	t.Run("both missing reports campus first", func(t *testing.T) {
		form := newSportsForm(t)
		_, err := form.Submit()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "campus", verr.Field)
	})

	t.Run("space missing", func(t *testing.T) {
		form, err := NewForm(storage.CategoryLaboratory, DefaultCatalog(), today)
		require.NoError(t, err)
		require.NoError(t, form.SelectCampus("Villa"))

		_, err = form.Submit()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "spaceType", verr.Field)
		assert.Equal(t, "Por favor selecciona un tipo de laboratorio", verr.Error())
	})

	t.Run("valid", func(t *testing.T) {
		form := newSportsForm(t)
		require.NoError(t, form.SelectCampus("Monterrico"))
		require.NoError(t, form.SelectSpace("Espacio deportivos/Losa 1"))

		intent, err := form.Submit()
		require.NoError(t, err)
		assert.Equal(t, Intent{
			Category:  storage.CategorySports,
			Campus:    "Monterrico",
			SpaceType: "Espacio deportivos/Losa 1",
			Date:      time.Date(2025, 9, 19, 0, 0, 0, 0, time.UTC),
		}, intent)
		assert.Equal(t, "19/09/2025", intent.DateLabel())
	})
}

func TestCatalogOverrides(t *testing.T) {
	base := DefaultCatalog()
	custom := base.WithOverrides([]string{"Monterrico"}, nil, []string{"Laboratorio de Redes"})

	assert.Equal(t, []string{"Monterrico"}, custom.Campuses)
	assert.Equal(t, base.SpaceOptions(storage.CategorySports), custom.SpaceOptions(storage.CategorySports))
	assert.Equal(t, []string{"Laboratorio de Redes"}, custom.SpaceOptions(storage.CategoryLaboratory))
	assert.Len(t, base.Campuses, 4)
}
