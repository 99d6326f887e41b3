package scene

import (
	"sort"
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	Name        string // Name used on the command line
	Description string // One-line description
	config      func() Config
}

// Config returns a fresh copy of the scene description
func (si SceneInfo) Config() Config {
	return si.config()
}

var builtinScenes = map[string]SceneInfo{
	"cornell": {
		Name:        "cornell",
		Description: "Cornell box with sphere walls and three reflective spheres",
		config:      CornellConfig,
	},
	"single-sphere": {
		Name:        "single-sphere",
		Description: "One diffuse red sphere under a point light",
		config:      SingleSphereConfig,
	},
	"mirror": {
		Name:        "mirror",
		Description: "Black mirror sphere reflecting a green sphere behind the camera",
		config:      MirrorConfig,
	},
}

// ListBuiltinScenes returns all built-in scenes sorted by name
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, info := range builtinScenes {
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// LookupBuiltin returns the description of a built-in scene by name
func LookupBuiltin(name string) (Config, bool) {
	info, ok := builtinScenes[name]
	if !ok {
		return Config{}, false
	}
	return info.Config(), true
}
