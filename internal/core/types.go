package core

import "sort"

// Size describes the dimensions of a generation grid.
type Size struct {
	W int
	H int
}

// Scene is the contract between a generated layout and the preview shell.
type Scene interface {
	Name() string
	Size() Size
	// Reset discards the current layout and rebuilds it from seed.
	Reset(seed int64)
	// Cells returns one display code per grid cell.
	Cells() []uint8
}

// Factory constructs a Scene using an optional configuration map.
type Factory func(cfg map[string]string) Scene

var scenes = map[string]Factory{}

// Register adds a scene factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	scenes[name] = f
}

// Scenes exposes the registry of available scene factories.
func Scenes() map[string]Factory {
	return scenes
}

// SceneNames lists registered scene names in sorted order.
func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
