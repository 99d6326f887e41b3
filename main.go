package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var (
	cfgFile string
	verbose bool

	// appFs is the filesystem used for scene files and rendered images
	appFs afero.Fs = afero.NewOsFs()

	logger = newLogger(false)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("raytracer failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "raytracer",
		Short: "Whitted-style sphere raytracer",
		Long: `An offline recursive raytracer for spheres with Lambertian, ambient and
mirror reflection shading, hard shadows from a single point light, and
PPM or PNG output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(verbose)
			return initConfig()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./raytracer.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		renderCmd(),
		scenesCmd(),
		inspectCmd(),
	)

	return rootCmd
}

// initConfig reads the global config file and environment. A missing
// ./raytracer.yaml is fine; an explicit --config that cannot be read is not.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("raytracer")
		viper.SetConfigType("yaml")
	}

	viper.SetFs(appFs)
	viper.SetEnvPrefix("RAYTRACER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return core.Wrapf(core.ErrInvalidConfig, "reading config file: %v", err)
	}
	logger.Debug().Str("file", viper.ConfigFileUsed()).Msg("Using config file")
	return nil
}

// newLogger creates the console logger used by all commands
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// renderLogger adapts zerolog to the renderer's core.Logger
type renderLogger struct {
	log zerolog.Logger
}

func (l renderLogger) Printf(format string, args ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSuffix(format, "\n"), args...)
}

// createSceneConfig resolves a scene name to its description. Names of
// built-in scenes win; anything that looks like a path is loaded from a file.
func createSceneConfig(fs afero.Fs, sceneType string) (scene.Config, error) {
	if cfg, ok := scene.LookupBuiltin(sceneType); ok {
		return cfg, nil
	}
	if sceneType != "" && loaders.IsSceneFile(sceneType) {
		return loaders.LoadSceneConfig(fs, sceneType)
	}
	return scene.Config{}, core.Wrapf(core.ErrUnknownScene, "unknown scene %q", sceneType)
}

// createScene builds a renderable scene from a built-in name or scene file
func createScene(fs afero.Fs, sceneType string) (*scene.Scene, error) {
	cfg, err := createSceneConfig(fs, sceneType)
	if err != nil {
		return nil, err
	}
	return scene.FromConfig(cfg)
}

// createOutputDir returns output/<scene> for a built-in name or scene file path
func createOutputDir(sceneType string) string {
	base := strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}
	return filepath.Join("output", base)
}
