package main

import (
	"fmt"
	"image/color"

	"github.com/philipparndt/gosketch/internal/analysis"
	"github.com/philipparndt/gosketch/internal/config"
	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/philipparndt/gosketch/internal/picking"
	"github.com/philipparndt/gosketch/internal/script"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/stl"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	replayConfig  string
	replayOverlay string
	replayScene   string
)

var replayCmd = &cobra.Command{
	Use:   "replay <model.stl> <script.yaml>",
	Short: "Replay an annotation script against a model",
	Long: `Replay feeds the recorded pointer events of a script into a fresh
annotation session, prints the resulting paths and optionally renders the
2D overlay and the annotated scene to PNG files.`,
	Args: cobra.ExactArgs(2),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayConfig, "config", "c", "", "TOML settings file")
	replayCmd.Flags().StringVar(&replayOverlay, "overlay", "", "Write the 2D overlay to this PNG file")
	replayCmd.Flags().StringVar(&replayScene, "scene", "", "Write the annotated scene to this PNG file")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(replayConfig)
	if err != nil {
		return err
	}
	model, err := stl.Parse(args[0])
	if err != nil {
		return fmt.Errorf("error parsing STL file: %w", err)
	}
	sc, err := script.Load(args[1])
	if err != nil {
		return err
	}
	logging.Logger().Info("loaded model", "file", args[0], "triangles", model.TriangleCount())

	sessionCfg, err := cfg.Session()
	if err != nil {
		return err
	}
	sessionCfg.OverlayWidth = sc.Camera.Width
	sessionCfg.OverlayHeight = sc.Camera.Height
	s := session.New(sessionCfg)

	cam := viewer.NewCamera(model.BoundingBox())
	script.PlaceCamera(cam, sc.Camera)
	orientation := geometry.IdentityOrientation()
	replayer := script.NewReplayer(s, picking.New(model, orientation), cam, sc.Camera)
	if err := replayer.Run(sc.Events); err != nil {
		return err
	}

	printSummary(s)

	overlay, _ := s.Overlay()
	if replayOverlay != "" {
		if err := viewer.SavePNG(replayOverlay, overlay); err != nil {
			return err
		}
		fmt.Printf("Overlay written to %s\n", replayOverlay)
	}
	if replayScene != "" {
		scene := viewer.Scene{
			Model:       model,
			Orientation: orientation,
			Background:  color.RGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff},
		}
		for _, strip := range s.Strokes3D(cam.Position) {
			scene.Lines = append(scene.Lines, viewer.Polyline{Points: strip.Points, Color: strip.Color, Width: strip.Width})
		}
		img := viewer.Snapshot(scene, cam, sc.Camera.Width, sc.Camera.Height)
		viewer.Composite(img, overlay)
		if err := viewer.SavePNG(replayScene, img); err != nil {
			return err
		}
		fmt.Printf("Scene written to %s\n", replayScene)
	}
	return nil
}

func printSummary(s *session.Session) {
	paths := s.Store().Paths()
	paths3D := s.Store().Paths3D()
	summary := analysis.Summarize(paths, paths3D)

	fmt.Printf("2D paths: %d (%d pencil, %d eraser)\n", len(paths), summary.Pencil2D, summary.Eraser2D)
	for i, p := range paths {
		kind := "pencil"
		if p.IsEraser {
			kind = "eraser"
		}
		stats := summary.Paths2D[i]
		fmt.Printf("  #%d %-6s %s width %.0f, %d points, length %.1f px\n", i+1, kind, config.FormatColor(p.Color), p.Width, stats.Points, stats.Length)
	}

	fmt.Printf("3D paths: %d\n", len(paths3D))
	for i, p := range paths3D {
		stats := summary.Paths3D[i]
		fmt.Printf("  %s %s width %.0f, %d points, length %.4f\n", p.ID, config.FormatColor(p.Color), p.Width, stats.Points, stats.Length)
	}
	if summary.SegmentCount > 0 {
		fmt.Printf("  Extent: %s .. %s\n", analysis.FormatVector(summary.Bounds3D.Min), analysis.FormatVector(summary.Bounds3D.Max))
		fmt.Printf("  Segments: %d (min %.4f, max %.4f, avg %.4f)\n", summary.SegmentCount, summary.MinSegment, summary.MaxSegment, summary.AvgSegment)
	}
}
