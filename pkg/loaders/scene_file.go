package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// SceneEnvPrefix is the environment prefix for scene overrides, e.g. RAYTRACER_SCENE_MAX_DEPTH
const SceneEnvPrefix = "RAYTRACER_SCENE"

var vec3Type = reflect.TypeOf(core.Vec3{})

// LoadSceneConfig reads a YAML, JSON or TOML scene description.
// Fields left out of the file take the scene package defaults, and any known
// key can be overridden from the environment.
func LoadSceneConfig(fs afero.Fs, path string) (scene.Config, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil || !exists {
		return scene.Config{}, core.Wrapf(core.ErrUnknownScene, "scene file %s not found", path)
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)

	v.SetDefault("max_depth", scene.DefaultMaxDepth)
	v.SetDefault("ambient_brightness", scene.DefaultAmbientBrightness)
	v.SetDefault("ambient", scene.DefaultAmbient)
	v.SetDefault("epsilon", scene.DefaultEpsilon)

	v.SetEnvPrefix(SceneEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return scene.Config{}, core.Wrapf(core.ErrInvalidConfig, "reading scene file %s: %v", path, err)
	}

	var cfg scene.Config
	hook := mapstructure.ComposeDecodeHookFunc(
		vec3DecodeHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hook)); err != nil {
		return scene.Config{}, core.Wrapf(core.ErrInvalidConfig, "decoding scene file %s: %v", path, err)
	}

	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return cfg, nil
}

// SaveSceneConfig writes a scene description as YAML
func SaveSceneConfig(fs afero.Fs, path string, cfg scene.Config) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return core.Wrapf(core.ErrSceneWrite, "creating directory for %s: %v", path, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return core.Wrapf(core.ErrSceneWrite, "marshaling scene %q: %v", cfg.Name, err)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return core.Wrapf(core.ErrSceneWrite, "writing %s: %v", path, err)
	}
	return nil
}

// vec3DecodeHook accepts vectors written as [x, y, z] lists or "x,y,z" strings.
// Maps with x, y and z keys decode without help.
func vec3DecodeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != vec3Type {
		return data, nil
	}

	var components []interface{}
	switch d := data.(type) {
	case []interface{}:
		components = d
	case []float64:
		for _, c := range d {
			components = append(components, c)
		}
	case string:
		for _, part := range strings.Split(d, ",") {
			components = append(components, strings.TrimSpace(part))
		}
	default:
		return data, nil
	}

	if len(components) != 3 {
		return nil, fmt.Errorf("vector needs 3 components, got %d", len(components))
	}
	var xyz [3]float64
	for i, c := range components {
		f, err := toFloat(c)
		if err != nil {
			return nil, fmt.Errorf("vector component %d: %w", i, err)
		}
		xyz[i] = f
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("unsupported number %v (%T)", v, v)
}

// IsSceneFile reports whether name looks like a path to a scene file rather
// than the name of a built-in scene
func IsSceneFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json", ".toml":
		return true
	}
	return strings.ContainsRune(name, os.PathSeparator)
}
