package main

import (
	"fmt"
	"image/color"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gosketch/internal/board"
	"github.com/philipparndt/gosketch/internal/config"
	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/pkg/stl"
	"github.com/philipparndt/gosketch/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gosketch-gui [model.stl]",
	Short: "Freehand annotation board",
	Long: `gosketch-gui opens an annotation board. Without a model it is a plain
drawing surface; with an STL model the strokes can also be drawn on the
model surface.`,
	Version: version.GetFullVersion(),
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Text(os.Stderr, verbose)
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return run(cfg, args)
	},
	SilenceUsage: true,
}

type App struct {
	window  fyne.Window
	session *session.Session
	board   *board.Board
	palette []color.NRGBA
	status  *widget.Label
}

func main() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log engine activity to stderr")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, args []string) error {
	sessionCfg, err := cfg.Session()
	if err != nil {
		return err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	var model *stl.Model
	if len(args) == 1 {
		if model, err = stl.Parse(args[0]); err != nil {
			return fmt.Errorf("failed to load STL file: %w", err)
		}
	}

	a := app.New()
	w := a.NewWindow("GoSketch")

	appInstance := &App{
		window:  w,
		session: session.New(sessionCfg),
		palette: palette,
		status:  widget.NewLabel(""),
	}
	appInstance.board = board.New(appInstance.session, model)
	appInstance.board.SetOnChange(appInstance.updateStatus)
	appInstance.setupMainUI()

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
	return nil
}

func (a *App) setupMainUI() {
	s := a.session
	style := s.State().Style()

	toolSelect := widget.NewSelect(toolNames(), func(name string) {
		if tool, err := state.ParseTool(name); err == nil {
			s.SetTool(tool)
			a.updateStatus()
		}
	})
	toolSelect.SetSelected(s.Tool().String())

	colors := make([]string, len(a.palette))
	for i, c := range a.palette {
		colors[i] = config.FormatColor(c)
	}
	colorSelect := widget.NewSelect(colors, func(hex string) {
		if c, err := config.ParseColor(hex); err == nil {
			s.SetColor(c)
		}
	})
	colorSelect.SetSelected(config.FormatColor(style.Color))

	pencilWidth := widget.NewSlider(state.MinPencilWidth, state.MaxPencilWidth)
	pencilWidth.SetValue(style.PencilWidth)
	pencilWidth.OnChanged = func(v float64) { s.SetPencilWidth(v) }

	eraserWidth := widget.NewSlider(state.MinEraserWidth, state.MaxEraserWidth)
	eraserWidth.SetValue(style.EraserWidth)
	eraserWidth.OnChanged = func(v float64) { s.SetEraserWidth(v) }

	undoButton := widget.NewButton("Undo", a.undo)
	clearButton := widget.NewButton("Clear", func() {
		s.Clear()
		a.board.Refresh()
		a.updateStatus()
	})
	openButton := widget.NewButton("Open Model", a.showFileDialog)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Pick a tool, then drag on the board\n" +
			"• 3D tools draw on and erase from the model\n" +
			"• View mode or Shift+drag rotates the model\n" +
			"• Scroll to zoom in/out\n" +
			"• Ctrl+Z undoes the last stroke",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Tool:"),
		toolSelect,
		widget.NewLabel("Color:"),
		colorSelect,
		widget.NewLabel("Pencil width:"),
		pencilWidth,
		widget.NewLabel("Eraser width:"),
		eraserWidth,
		widget.NewSeparator(),
		undoButton,
		clearButton,
		openButton,
		widget.NewSeparator(),
		a.status,
		widget.NewSeparator(),
		instructions,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(260, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.board,    // center
	)

	a.window.SetContent(content)
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.undo()
	})
	a.updateStatus()
}

func (a *App) undo() {
	if a.session.Undo() {
		a.board.Refresh()
		a.updateStatus()
	}
}

func (a *App) updateStatus() {
	a.status.SetText(fmt.Sprintf("Overlay paths: %d\nSurface paths: %d", a.session.Store().Len(), a.session.Store().Len3D()))
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		model, err := stl.ParseReader(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to load STL file: %w", err), a.window)
			return
		}
		a.session.Store().Clear3D()
		a.board.SetModel(model)
		a.updateStatus()
	}, a.window)
}

func toolNames() []string {
	tools := []state.Tool{state.View, state.Pencil, state.Eraser, state.Pencil3D, state.Eraser3D}
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.String()
	}
	return names
}
