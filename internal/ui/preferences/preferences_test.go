package preferences

import (
	"errors"
	"testing"
	"time"

	"mindfulpause/internal/core/model"
	"mindfulpause/internal/storage"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormRoundTripKeepsUnits(t *testing.T) {
	settings := model.DefaultSettings()
	settings.ShortPauseDuration = 45 * time.Second
	settings.DarkenShortPause = true

	form := FormFromSettings(settings)
	assert.Equal(t, "60", form.BigBreakInterval)
	assert.Equal(t, "45", form.ShortPauseDuration)
	assert.Equal(t, "30", form.WarningTime)

	parsed, err := form.Settings()
	require.NoError(t, err)
	assert.Equal(t, settings, parsed)
}

func TestFormRejectsInvalidNumbers(t *testing.T) {
	form := FormFromSettings(model.DefaultSettings())
	form.BigBreakInterval = "soon"
	form.WarningTime = "-1"

	_, err := form.Settings()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidNumber)
	assert.Contains(t, err.Error(), "big break interval")
	assert.Contains(t, err.Error(), "warning time")
}

func TestFormAcceptsZeroAndSpaces(t *testing.T) {
	form := FormFromSettings(model.DefaultSettings())
	form.ShortPauseInterval = " 0 "

	settings, err := form.Settings()

	require.NoError(t, err)
	assert.Zero(t, settings.ShortPauseInterval)
}

func TestSaveButtonPassesParsedSettings(t *testing.T) {
	app := test.NewTempApp(t)
	store := storage.NewPracticeStore(t.TempDir(), zerolog.Nop())
	var saved []model.Settings
	prefs := New(app, model.DefaultSettings(), store, func(settings model.Settings) error {
		saved = append(saved, settings)
		return nil
	})

	prefs.bigInterval.SetText("45")
	prefs.strict.SetChecked(true)
	test.Tap(prefs.saveButton)

	require.Len(t, saved, 1)
	assert.Equal(t, 45*time.Minute, saved[0].BigBreakInterval)
	assert.True(t, saved[0].StrictMode)
	assert.Equal(t, saved[0], prefs.settings)
}

func TestSaveKeepsOldSettingsOnError(t *testing.T) {
	app := test.NewTempApp(t)
	store := storage.NewPracticeStore(t.TempDir(), zerolog.Nop())
	calls := 0
	prefs := New(app, model.DefaultSettings(), store, func(model.Settings) error {
		calls++
		return errors.New("disk full")
	})

	prefs.bigInterval.SetText("abc")
	test.Tap(prefs.saveButton)
	assert.Zero(t, calls)

	prefs.bigInterval.SetText("30")
	test.Tap(prefs.saveButton)
	assert.Equal(t, 1, calls)
	assert.Equal(t, model.DefaultSettings(), prefs.settings)
}

func TestPracticeEditorAddAndDelete(t *testing.T) {
	app := test.NewTempApp(t)
	store := storage.NewPracticeStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, store.Add(storage.PracticesMicro, "stretch"))
	window := app.NewWindow("test")
	editor := newPracticeEditor(store, storage.PracticesMicro, window)
	editor.reload()
	assert.Equal(t, []string{"stretch"}, editor.items)

	editor.entry.SetText("drink water")
	test.Tap(editor.addButton)
	assert.Equal(t, []string{"stretch", "drink water"}, editor.items)
	assert.Empty(t, editor.entry.Text)

	editor.list.Select(0)
	test.Tap(editor.deleteButton)

	practices, err := store.List(storage.PracticesMicro)
	require.NoError(t, err)
	assert.Equal(t, []string{"drink water"}, practices)
	assert.True(t, editor.deleteButton.Disabled())
}
