package preferences

import (
	"mindfulpause/internal/core/model"
	"mindfulpause/internal/storage"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// PracticeStore is the practice list CRUD used by the editor tabs.
type PracticeStore interface {
	List(kind storage.PracticeKind) ([]string, error)
	Add(kind storage.PracticeKind, text string) error
	Delete(kind storage.PracticeKind, texts ...string) (int, error)
}

// Window handles the preferences UI. All methods must be called on the
// fyne goroutine.
type Window struct {
	window   fyne.Window
	settings model.Settings
	onSave   func(model.Settings) error

	bigEnabled    *widget.Check
	bigInterval   *widget.Entry
	bigDuration   *widget.Entry
	shortEnabled  *widget.Check
	shortInterval *widget.Entry
	shortDuration *widget.Entry
	warnEnabled   *widget.Check
	warnTime      *widget.Entry
	strict        *widget.Check
	track         *widget.Check
	sound         *widget.Check
	soundStart    *widget.Check
	darken        *widget.Check
	autostart     *widget.Check
	saveButton    *widget.Button

	editors []*practiceEditor
}

// New creates a preferences window. onSave receives the parsed settings; a
// returned error is shown to the user and keeps the window open.
func New(app fyne.App, settings model.Settings, store PracticeStore, onSave func(model.Settings) error) *Window {
	window := app.NewWindow("MindfulPause Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		bigEnabled:    widget.NewCheck("Big breaks", nil),
		bigInterval:   widget.NewEntry(),
		bigDuration:   widget.NewEntry(),
		shortEnabled:  widget.NewCheck("Short pauses", nil),
		shortInterval: widget.NewEntry(),
		shortDuration: widget.NewEntry(),
		warnEnabled:   widget.NewCheck("Warn before big breaks", nil),
		warnTime:      widget.NewEntry(),
		strict:        widget.NewCheck("Strict mode (big breaks cannot be skipped)", nil),
		track:         widget.NewCheck("Pause timers while I am away", nil),
		sound:         widget.NewCheck("Play a sound when a break ends", nil),
		soundStart:    widget.NewCheck("Play a sound when a short pause starts", nil),
		darken:        widget.NewCheck("Darken the screen during short pauses", nil),
		autostart:     widget.NewCheck("Start with the system", nil),
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Big break", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.bigEnabled,
		unitRow("Every", prefs.bigInterval, "min"),
		unitRow("Lasts", prefs.bigDuration, "min"),
		prefs.warnEnabled,
		unitRow("Warn", prefs.warnTime, "sec before"),
		prefs.strict,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Short pause", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.shortEnabled,
		unitRow("Every", prefs.shortInterval, "min"),
		unitRow("Lasts", prefs.shortDuration, "sec"),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.track,
		prefs.sound,
		prefs.soundStart,
		prefs.darken,
		prefs.autostart,
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	prefs.saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(layout.NewSpacer(), cancelButton, prefs.saveButton)

	bigEditor := newPracticeEditor(store, storage.PracticesBig, window)
	microEditor := newPracticeEditor(store, storage.PracticesMicro, window)
	prefs.editors = []*practiceEditor{bigEditor, microEditor}

	tabs := container.NewAppTabs(
		container.NewTabItem("Settings", container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form))),
		container.NewTabItem("Practices", bigEditor.content),
		container.NewTabItem("Micro-practices", microEditor.content),
	)
	window.SetContent(tabs)
	window.Resize(fyne.NewSize(480, 560))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window with fresh practice lists.
func (prefs *Window) Show() {
	for _, editor := range prefs.editors {
		editor.reload()
	}
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.writeForm(FormFromSettings(settings))
}

func (prefs *Window) writeForm(form Form) {
	prefs.bigEnabled.SetChecked(form.BigBreakEnabled)
	prefs.bigInterval.SetText(form.BigBreakInterval)
	prefs.bigDuration.SetText(form.BigBreakDuration)
	prefs.shortEnabled.SetChecked(form.ShortPauseEnabled)
	prefs.shortInterval.SetText(form.ShortPauseInterval)
	prefs.shortDuration.SetText(form.ShortPauseDuration)
	prefs.warnEnabled.SetChecked(form.WarningEnabled)
	prefs.warnTime.SetText(form.WarningTime)
	prefs.strict.SetChecked(form.StrictMode)
	prefs.track.SetChecked(form.TrackActivity)
	prefs.sound.SetChecked(form.SoundEnabled)
	prefs.soundStart.SetChecked(form.SoundStartEnabled)
	prefs.darken.SetChecked(form.DarkenShortPause)
	prefs.autostart.SetChecked(form.Autostart)
}

func (prefs *Window) readForm() Form {
	return Form{
		BigBreakEnabled:    prefs.bigEnabled.Checked,
		BigBreakInterval:   prefs.bigInterval.Text,
		BigBreakDuration:   prefs.bigDuration.Text,
		ShortPauseEnabled:  prefs.shortEnabled.Checked,
		ShortPauseInterval: prefs.shortInterval.Text,
		ShortPauseDuration: prefs.shortDuration.Text,
		WarningEnabled:     prefs.warnEnabled.Checked,
		WarningTime:        prefs.warnTime.Text,
		StrictMode:         prefs.strict.Checked,
		TrackActivity:      prefs.track.Checked,
		SoundEnabled:       prefs.sound.Checked,
		SoundStartEnabled:  prefs.soundStart.Checked,
		DarkenShortPause:   prefs.darken.Checked,
		Autostart:          prefs.autostart.Checked,
	}
}

func (prefs *Window) handleSave() {
	settings, err := prefs.readForm().Settings()
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.settings = settings
	prefs.window.Hide()
}

func unitRow(label string, entry *widget.Entry, unit string) fyne.CanvasObject {
	return container.NewBorder(nil, nil, widget.NewLabel(label), widget.NewLabel(unit), entry)
}
