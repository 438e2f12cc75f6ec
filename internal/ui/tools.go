package ui

import (
	"image/color"

	"LocalNotes/internal/editor"
	"LocalNotes/internal/render"
	"LocalNotes/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var palette = []string{"black", "red", "green", "blue", "yellow"}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Name     string
	OnTapped func(string)
}

func newColorSwatch(name string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Name: name, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(render.ParseColor(s.Name))
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Name)
	}
}

// --- The Main Toolbar ---
func newToolbar(a *App) fyne.CanvasObject {
	ed := a.session.Editor()

	names := make([]string, 0, 4)
	for _, t := range []editor.Tool{editor.ToolPen, editor.ToolSelect, editor.ToolErase, editor.ToolText} {
		names = append(names, t.String())
	}
	a.toolRadio = widget.NewRadioGroup(names, func(name string) {
		if t, ok := editor.ParseTool(name); ok {
			ed.SetTool(t)
		}
	})
	a.toolRadio.Horizontal = true
	a.toolRadio.Required = true
	a.toolRadio.SetSelected(ed.Tool().String())

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), a.newNote),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.save),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), a.exportPDF),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() { ed.Undo() }),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() { ed.Redo() }),
		widget.NewToolbarAction(theme.DeleteIcon(), func() { ed.DeleteSelected() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomInIcon(), func() { a.zoomCenter(1) }),
		widget.NewToolbarAction(theme.ZoomOutIcon(), func() { a.zoomCenter(-1) }),
		widget.NewToolbarAction(theme.ZoomFitIcon(), ed.ResetView),
	)

	// --- Color Palette ---
	onColorTapped := func(name string) {
		ed.SetPenColor(name)
	}
	colorBox := container.NewHBox()
	for _, name := range palette {
		colorBox.Add(newColorSwatch(name, onColorTapped))
	}
	colorBox.Add(widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() {
		picker := dialog.NewColorPicker("Pen color", "Pick a custom pen color", func(c color.Color) {
			ed.SetPenColor(render.ColorString(c))
		}, a.win)
		picker.Advanced = true
		picker.Show()
	}))

	// --- Stroke Width Slider ---
	strokeSlider := widget.NewSlider(1.0, 50.0)
	strokeSlider.SetValue(ed.PenWidth())
	strokeSlider.OnChanged = func(val float64) {
		ed.SetPenWidth(val)
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	// --- Text Alignment ---
	align := widget.NewSelect([]string{string(state.AlignLeft), string(state.AlignCenter), string(state.AlignRight)}, func(s string) {
		targets := ed.Selection()
		if i := ed.EditingIndex(); i >= 0 {
			targets = append(targets, i)
		}
		for _, i := range targets {
			ed.SetTextAlign(i, state.Align(s))
		}
	})
	align.PlaceHolder = "Align"

	// --- Assemble everything ---
	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Tool:"),
		a.toolRadio,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widget.NewSeparator(),
		align,
		layout.NewSpacer(),
	)
}
