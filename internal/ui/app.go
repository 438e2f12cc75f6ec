package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"LocalNotes/internal/editor"
	"LocalNotes/internal/export"
	"LocalNotes/internal/input"
	"LocalNotes/internal/store"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Library is the note storage the shell browses and edits.
type Library interface {
	editor.Storage
	Notes(ctx context.Context, folderID string) ([]store.Summary, error)
	DeleteNote(ctx context.Context, noteID string) error
	Folders(ctx context.Context) ([]store.Folder, error)
	CreateFolder(ctx context.Context, name string) (store.Folder, error)
	AddTag(ctx context.Context, noteID, tag string) error
	RemoveTag(ctx context.Context, noteID, tag string) error
	Tags(ctx context.Context, noteID string) ([]string, error)
	NotesWithTag(ctx context.Context, tag string) ([]store.Summary, error)
}

// Config wires the shell to its collaborators.
type Config struct {
	Library  Library
	Exporter export.Exporter
	Policy   editor.SwitchPolicy
	Editor   []editor.Option
}

const allNotes = "All notes"

// App is the main window: sidebar, toolbar and canvas.
type App struct {
	win      fyne.Window
	lib      Library
	exporter export.Exporter
	session  *editor.Session
	keys     *input.Dispatcher
	board    *CanvasWidget

	status    *widget.Label
	title     *widget.Entry
	tags      *fyne.Container
	tagEntry  *widget.Entry
	tagFilter *widget.Entry
	filter    *widget.Select
	fileIn    *widget.Select
	noteList  *widget.List
	toolRadio *widget.RadioGroup

	notes   []store.Summary
	folders []store.Folder

	// set while widgets are synced to a newly opened note
	syncing bool
}

func RunApp(cfg Config) {
	myApp := app.New()
	myWindow := myApp.NewWindow("LocalNotes")
	myWindow.Resize(fyne.NewSize(1024, 768))

	a := newApp(myWindow, cfg)
	myWindow.SetContent(a.content())
	installKeys(myWindow.Canvas(), a.keys)
	myWindow.SetCloseIntercept(a.onClose)

	a.reloadFolders()
	a.reloadNotes()
	a.updateTitle()
	myWindow.ShowAndRun()
}

func newApp(win fyne.Window, cfg Config) *App {
	a := &App{
		win:      win,
		lib:      cfg.Library,
		exporter: cfg.Exporter,
		keys:     input.NewDispatcher(),
		status:   widget.NewLabel("Ready"),
		tags:     container.NewHBox(),
	}
	a.keys.BindDefaults()
	a.board = newCanvasWidget(a.keys)

	opts := append([]editor.Option{
		editor.WithRepaint(a.board.Refresh),
		editor.WithSceneChanged(a.updateTitle),
		editor.WithTextEdit(a.board.beginText, a.board.endText),
	}, cfg.Editor...)
	ed := editor.New(opts...)
	a.board.setEditor(ed)
	a.session = editor.NewSession(ed, cfg.Library, cfg.Exporter, cfg.Policy)

	a.title = widget.NewEntry()
	a.title.SetText(a.session.Title())
	a.title.OnChanged = func(s string) {
		a.session.SetTitle(s)
		a.updateTitle()
	}

	a.tagEntry = widget.NewEntry()
	a.tagEntry.SetPlaceHolder("Add tag")
	a.tagEntry.OnSubmitted = a.addTag

	a.filter = widget.NewSelect(nil, func(string) { a.reloadNotes() })
	a.tagFilter = widget.NewEntry()
	a.tagFilter.SetPlaceHolder("Filter by tag")
	a.tagFilter.OnChanged = func(string) { a.reloadNotes() }
	a.fileIn = widget.NewSelect(nil, a.moveToFolder)
	a.fileIn.PlaceHolder = "File in folder"

	a.noteList = widget.NewList(
		func() int { return len(a.notes) },
		func() fyne.CanvasObject { return widget.NewLabel("template") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(a.notes) {
				obj.(*widget.Label).SetText(a.notes[id].Title)
			}
		},
	)
	a.noteList.OnSelected = func(id widget.ListItemID) {
		if id < len(a.notes) && a.notes[id].ID != a.session.NoteID() {
			a.openNote(a.notes[id].ID)
		}
	}

	a.registerIntents()
	return a
}

func (a *App) registerIntents() {
	ed := a.session.Editor()
	a.keys.Register(input.IntentUndo, func() { ed.Undo() })
	a.keys.Register(input.IntentRedo, func() { ed.Redo() })
	a.keys.Register(input.IntentDelete, func() { ed.DeleteSelected() })
	a.keys.Register(input.IntentCancel, ed.EndTextEdit)
	a.keys.Register(input.IntentSave, a.save)
	a.keys.Register(input.IntentToolPen, func() { a.setTool(editor.ToolPen) })
	a.keys.Register(input.IntentToolSelect, func() { a.setTool(editor.ToolSelect) })
	a.keys.Register(input.IntentToolErase, func() { a.setTool(editor.ToolErase) })
	a.keys.Register(input.IntentToolText, func() { a.setTool(editor.ToolText) })
}

func (a *App) content() fyne.CanvasObject {
	newFolder := widget.NewEntry()
	newFolder.SetPlaceHolder("New folder")
	newFolder.OnSubmitted = func(name string) {
		if a.createFolder(name) {
			newFolder.SetText("")
		}
	}

	sidebar := container.NewBorder(
		container.NewVBox(a.filter, a.tagFilter, widget.NewSeparator()),
		container.NewVBox(
			widget.NewSeparator(),
			widget.NewLabel("Title"), a.title,
			a.fileIn,
			a.tagEntry, container.NewHScroll(a.tags),
			newFolder,
			widget.NewButton("Delete note", a.deleteNote),
		),
		nil, nil,
		a.noteList,
	)

	body := container.NewBorder(newToolbar(a), a.status, nil, nil, a.board)
	split := container.NewHSplit(sidebar, body)
	split.Offset = 0.22
	return split
}

func (a *App) setStatus(text string) {
	a.status.SetText(text)
}

func (a *App) updateTitle() {
	mark := ""
	if a.session != nil && a.session.Dirty() {
		mark = " *"
	}
	name := "Untitled"
	if a.session != nil {
		name = a.session.Title()
	}
	a.win.SetTitle(fmt.Sprintf("LocalNotes - %s%s", name, mark))
}

func (a *App) setTool(t editor.Tool) {
	a.session.Editor().SetTool(t)
	if a.toolRadio != nil {
		a.toolRadio.SetSelected(t.String())
	}
}

// zoomCenter zooms around the middle of the canvas.
func (a *App) zoomCenter(direction int) {
	size := a.board.Size()
	a.session.Editor().ZoomAt(float64(size.Width)/2, float64(size.Height)/2, direction)
}

func (a *App) newNote() {
	if err := a.session.SwitchNote(context.Background(), ""); err != nil {
		log.Printf("[UI] New note: %v", err)
		a.setStatus("Could not save the current note")
		return
	}
	a.afterSwitch()
}

func (a *App) openNote(id string) {
	if err := a.session.SwitchNote(context.Background(), id); err != nil {
		log.Printf("[UI] Open note %s: %v", id, err)
		a.setStatus("Could not open note")
		a.noteList.UnselectAll()
		return
	}
	a.afterSwitch()
}

func (a *App) afterSwitch() {
	a.syncing = true
	defer func() { a.syncing = false }()
	a.title.SetText(a.session.Title())
	a.fileIn.ClearSelected()
	for _, f := range a.folders {
		if f.ID == a.session.FolderID() {
			a.fileIn.SetSelected(f.Name)
		}
	}
	a.refreshTags()
	a.reloadNotes()
	a.updateTitle()
	a.setStatus("Opened " + a.session.Title())
}

func (a *App) save() {
	a.session.Editor().EndTextEdit()
	if err := a.session.Save(context.Background()); err != nil {
		log.Printf("[UI] Save: %v", err)
		a.setStatus("Save failed")
		return
	}
	a.reloadNotes()
	a.updateTitle()
	a.setStatus("Saved")
}

// exportPDF renders a private copy of the scene in the background.
func (a *App) exportPDF() {
	if a.exporter == nil {
		a.setStatus("Export not available")
		return
	}
	req := a.session.ExportRequest()
	a.setStatus("Exporting...")
	go func() {
		path, err := a.exporter.Export(context.Background(), req)
		fyne.Do(func() {
			if err != nil {
				log.Printf("[UI] Export: %v", err)
				a.setStatus("Export failed")
				return
			}
			a.setStatus("Exported to " + path)
		})
	}()
}

func (a *App) deleteNote() {
	id := a.session.NoteID()
	if id != "" {
		if err := a.lib.DeleteNote(context.Background(), id); err != nil {
			log.Printf("[UI] Delete note %s: %v", id, err)
			a.setStatus("Delete failed")
			return
		}
	}
	a.session.New()
	a.noteList.UnselectAll()
	a.afterSwitch()
	a.setStatus("Note deleted")
}

// reloadNotes lists the notes matching the folder and tag filters.
func (a *App) reloadNotes() {
	ctx := context.Background()
	folderID := a.folderByName(a.filter.Selected)
	tag := strings.TrimSpace(a.tagFilter.Text)

	var notes []store.Summary
	var err error
	if tag == "" {
		notes, err = a.lib.Notes(ctx, folderID)
	} else {
		notes, err = a.lib.NotesWithTag(ctx, tag)
		if err == nil && folderID != "" {
			notes = inFolder(notes, folderID)
		}
	}
	if err != nil {
		log.Printf("[UI] List notes: %v", err)
		a.setStatus("Could not list notes")
		return
	}
	a.notes = notes
	a.noteList.Refresh()
}

func inFolder(notes []store.Summary, folderID string) []store.Summary {
	out := notes[:0]
	for _, n := range notes {
		if n.FolderID == folderID {
			out = append(out, n)
		}
	}
	return out
}

func (a *App) reloadFolders() {
	folders, err := a.lib.Folders(context.Background())
	if err != nil {
		log.Printf("[UI] List folders: %v", err)
		return
	}
	a.folders = folders
	names := make([]string, 0, len(folders))
	for _, f := range folders {
		names = append(names, f.Name)
	}
	a.fileIn.Options = names
	a.fileIn.Refresh()
	a.filter.Options = append([]string{allNotes}, names...)
	if a.filter.Selected == "" {
		a.filter.Selected = allNotes
	}
	a.filter.Refresh()
}

func (a *App) createFolder(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if _, err := a.lib.CreateFolder(context.Background(), name); err != nil {
		log.Printf("[UI] Create folder: %v", err)
		a.setStatus("Could not create folder")
		return false
	}
	a.reloadFolders()
	return true
}

func (a *App) moveToFolder(name string) {
	if a.syncing {
		return
	}
	id := a.folderByName(name)
	if id == a.session.FolderID() {
		return
	}
	if err := a.session.MoveToFolder(context.Background(), id); err != nil {
		log.Printf("[UI] Move note: %v", err)
		a.setStatus("Could not move note")
		return
	}
	a.reloadNotes()
}

func (a *App) folderByName(name string) string {
	for _, f := range a.folders {
		if f.Name == name {
			return f.ID
		}
	}
	return ""
}

// addTag tags the open note, saving it first if it was never stored.
func (a *App) addTag(tag string) {
	if strings.TrimSpace(tag) == "" {
		return
	}
	if a.session.NoteID() == "" {
		a.save()
		if a.session.NoteID() == "" {
			return
		}
	}
	if err := a.lib.AddTag(context.Background(), a.session.NoteID(), tag); err != nil {
		log.Printf("[UI] Add tag: %v", err)
		a.setStatus("Could not add tag")
		return
	}
	a.tagEntry.SetText("")
	a.refreshTags()
}

func (a *App) removeTag(tag string) {
	if a.session.NoteID() == "" {
		return
	}
	if err := a.lib.RemoveTag(context.Background(), a.session.NoteID(), tag); err != nil {
		log.Printf("[UI] Remove tag: %v", err)
		a.setStatus("Could not remove tag")
		return
	}
	a.refreshTags()
	a.reloadNotes()
}

// refreshTags shows the open note's tags, each with a button removing it.
func (a *App) refreshTags() {
	a.tags.RemoveAll()
	if a.session.NoteID() == "" {
		return
	}
	tags, err := a.lib.Tags(context.Background(), a.session.NoteID())
	if err != nil {
		log.Printf("[UI] Tags: %v", err)
		return
	}
	for _, tag := range tags {
		a.tags.Add(widget.NewButtonWithIcon(tag, theme.CancelIcon(), func() { a.removeTag(tag) }))
	}
}

// onClose applies the switch policy to the open note before quitting.
func (a *App) onClose() {
	a.session.Editor().FinalizeStroke()
	if a.session.Dirty() && a.session.Policy() == editor.SwitchAutosave {
		if err := a.session.Save(context.Background()); err != nil {
			log.Printf("[UI] Save on close: %v", err)
		}
	}
	a.win.Close()
}
