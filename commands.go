package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to a PPM or PNG image",
		Long: `Render a built-in scene or a scene file. Output defaults to
output/<scene>/render_<timestamp>.ppm.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sceneType, _ := cmd.Flags().GetString("scene")
			outPath, _ := cmd.Flags().GetString("out")

			cfg, err := createSceneConfig(appFs, sceneType)
			if err != nil {
				return err
			}
			if width, _ := cmd.Flags().GetInt("width"); width > 0 {
				cfg.Resolution.Width = width
			}
			if height, _ := cmd.Flags().GetInt("height"); height > 0 {
				cfg.Resolution.Height = height
			}
			if cmd.Flags().Changed("max-depth") {
				cfg.MaxDepth, _ = cmd.Flags().GetInt("max-depth")
			}

			s, err := scene.FromConfig(cfg)
			if err != nil {
				return err
			}

			format, err := resolveFormat(viper.GetString("format"), outPath)
			if err != nil {
				return err
			}
			if outPath == "" {
				timestamp := time.Now().Format("20060102_150405")
				outPath = filepath.Join(createOutputDir(sceneType), "render_"+timestamp+format.Extension())
			}

			return renderScene(ctx, s, outPath, format, renderer.RenderConfig{
				TileSize:   viper.GetInt("tile_size"),
				NumWorkers: viper.GetInt("workers"),
			})
		},
	}

	cmd.Flags().String("scene", "cornell", "built-in scene name or scene file (.yaml, .json, .toml)")
	cmd.Flags().String("out", "", "output image path (default output/<scene>/render_<timestamp>.<format>)")
	cmd.Flags().String("format", "", "output format: ppm or png (default from --out extension, else ppm)")
	cmd.Flags().Int("workers", 0, "parallel workers (0 = CPU count, 1 = sequential)")
	cmd.Flags().Int("tile-size", renderer.DefaultRenderConfig().TileSize, "tile size in pixels")
	cmd.Flags().Int("width", 0, "override the scene's raster width")
	cmd.Flags().Int("height", 0, "override the scene's raster height")
	cmd.Flags().Int("max-depth", scene.DefaultMaxDepth, "override the scene's reflection depth")

	viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("tile_size", cmd.Flags().Lookup("tile-size"))

	return cmd
}

// resolveFormat picks the output format from the explicit flag, then the
// output path extension, then falls back to PPM
func resolveFormat(flagValue, outPath string) (output.Format, error) {
	if flagValue != "" {
		return output.ParseFormat(flagValue)
	}
	if outPath != "" && filepath.Ext(outPath) != "" {
		return output.FormatFromPath(outPath)
	}
	return output.FormatPPM, nil
}

// renderScene renders s and writes the image atomically to outPath
func renderScene(ctx context.Context, s *scene.Scene, outPath string, format output.Format, config renderer.RenderConfig) error {
	logger.Info().
		Int("width", s.SamplingConfig.Width).
		Int("height", s.SamplingConfig.Height).
		Int("objects", s.GetPrimitiveCount()).
		Int("max_depth", s.SamplingConfig.MaxDepth).
		Msg("Starting render")

	r := renderer.NewRenderer(s, config, renderLogger{log: logger})
	fb, stats, err := r.Render(ctx, func(tile renderer.TileCompletionResult) {
		logger.Debug().Msgf("Tile (%d,%d) done, %d/%d", tile.TileX, tile.TileY, tile.TileNumber, tile.TotalTiles)
	})
	if err != nil {
		return err
	}

	if err := output.NewWriter(appFs).Save(outPath, fb.ToRGBA(), format); err != nil {
		return err
	}

	size := "unknown size"
	if info, err := appFs.Stat(outPath); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}

	logger.Info().
		Str("pixels", humanize.Comma(int64(stats.TotalPixels))).
		Str("lit", humanize.Comma(int64(stats.HitPixels))).
		Str("shadowed", humanize.Comma(int64(stats.ShadowedPixels))).
		Str("background", humanize.Comma(int64(stats.BackgroundPixels))).
		Float64("mean_luminance", stats.MeanLuminance).
		Dur("duration", stats.Duration).
		Msgf("Render saved as %s (%s)", outPath, size)

	return nil
}

func scenesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List or export built-in scenes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, info := range scene.ListBuiltinScenes() {
				cfg := info.Config()
				fmt.Fprintf(w, "%s\t%dx%d\t%d objects\t%s\n",
					info.Name, cfg.Resolution.Width, cfg.Resolution.Height, len(cfg.Objects), info.Description)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <name> <path>",
		Short: "Write a built-in scene as an editable YAML scene file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := createSceneConfig(appFs, args[0])
			if err != nil {
				return err
			}
			if err := loaders.SaveSceneConfig(appFs, args[1], cfg); err != nil {
				return err
			}
			logger.Info().Str("scene", args[0]).Msgf("Scene written to %s", args[1])
			return nil
		},
	})

	return cmd
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <image>",
		Short: "Print size and luminance statistics of a rendered image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loaders.LoadImage(appFs, args[0])
			if err != nil {
				return err
			}
			mean, stdDev := renderer.LuminanceStats(img.Pixels)

			size := ""
			if info, err := appFs.Stat(args[0]); err == nil {
				size = humanize.Bytes(uint64(info.Size()))
			}

			mean8 := renderer.CalculateAverageLuminance(img.ToRGBA())

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d, %s\nmean luminance %.4f, stddev %.4f, 8-bit mean %.4f\n",
				args[0], img.Width, img.Height, size, mean, stdDev, mean8)
			return nil
		},
	}
}
