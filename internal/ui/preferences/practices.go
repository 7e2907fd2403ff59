package preferences

import (
	"mindfulpause/internal/storage"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// practiceEditor is one tab listing a practice file with add and delete.
type practiceEditor struct {
	store    PracticeStore
	kind     storage.PracticeKind
	parent   fyne.Window
	items    []string
	selected int

	list         *widget.List
	entry        *widget.Entry
	addButton    *widget.Button
	deleteButton *widget.Button
	content      fyne.CanvasObject
}

func newPracticeEditor(store PracticeStore, kind storage.PracticeKind, parent fyne.Window) *practiceEditor {
	editor := &practiceEditor{
		store:    store,
		kind:     kind,
		parent:   parent,
		selected: -1,
	}

	editor.list = widget.NewList(
		func() int { return len(editor.items) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, object fyne.CanvasObject) {
			object.(*widget.Label).SetText(editor.items[id])
		},
	)
	editor.list.OnSelected = func(id widget.ListItemID) {
		editor.selected = id
		editor.deleteButton.Enable()
	}
	editor.list.OnUnselected = func(widget.ListItemID) {
		editor.selected = -1
		editor.deleteButton.Disable()
	}

	editor.entry = widget.NewEntry()
	editor.entry.SetPlaceHolder("New practice")
	editor.entry.OnSubmitted = func(string) { editor.add() }
	editor.addButton = widget.NewButton("Add", editor.add)
	editor.deleteButton = widget.NewButton("Delete", editor.deleteSelected)
	editor.deleteButton.Disable()

	controls := container.NewBorder(nil, nil, nil, container.NewHBox(editor.addButton, editor.deleteButton), editor.entry)
	editor.content = container.NewBorder(nil, controls, nil, nil, editor.list)
	return editor
}

func (editor *practiceEditor) reload() {
	items, err := editor.store.List(editor.kind)
	if err != nil {
		dialog.ShowError(err, editor.parent)
		items = nil
	}
	editor.items = items
	editor.selected = -1
	editor.list.UnselectAll()
	editor.deleteButton.Disable()
	editor.list.Refresh()
}

func (editor *practiceEditor) add() {
	if err := editor.store.Add(editor.kind, editor.entry.Text); err != nil {
		dialog.ShowError(err, editor.parent)
		return
	}
	editor.entry.SetText("")
	editor.reload()
}

// deleteSelected removes every entry with the selected text.
func (editor *practiceEditor) deleteSelected() {
	if editor.selected < 0 || editor.selected >= len(editor.items) {
		return
	}
	if _, err := editor.store.Delete(editor.kind, editor.items[editor.selected]); err != nil {
		dialog.ShowError(err, editor.parent)
		return
	}
	editor.reload()
}
