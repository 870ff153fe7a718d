package material

import (
	"fmt"
	"sync"
)

// Material is the runtime ID of a voxel material. The zero Material is Empty, the material found in every
// voxel that has not been filled.
type Material uint16

// Empty is the material of voxels holding nothing, such as air.
const Empty Material = 0

// Properties holds the static properties of a Material.
type Properties struct {
	// Name is the unique name of the material, for example "stone".
	Name string
	// Solid specifies if the material blocks movement and supports props placed on top of it.
	Solid bool
	// Fluid specifies if the material is a liquid. Fluids are never considered solid.
	Fluid bool
}

// Registry maps material names to runtime IDs. Materials are registered once while loading and only read
// afterwards, so lookups may happen from any goroutine.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Material
	props  []Properties
}

// NewRegistry returns a Registry holding only the Empty material, registered under the name "air".
func NewRegistry() *Registry {
	return &Registry{
		byName: map[string]Material{"air": Empty},
		props:  []Properties{{Name: "air"}},
	}
}

// Register registers a material with the properties passed and returns its runtime ID. Registering a name
// twice returns the ID registered first.
func (r *Registry) Register(props Properties) Material {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.byName[props.Name]; ok {
		return m
	}
	if len(r.props) > int(^Material(0)) {
		panic(fmt.Sprintf("material: registry full, cannot register %q", props.Name))
	}
	if props.Fluid {
		props.Solid = false
	}
	m := Material(len(r.props))
	r.props = append(r.props, props)
	r.byName[props.Name] = m
	return m
}

// Lookup returns the material registered under the name passed.
func (r *Registry) Lookup(name string) (Material, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byName[name]
	return m, ok
}

// Properties returns the properties of the material passed. Unknown materials return the properties of
// Empty.
func (r *Registry) Properties(m Material) Properties {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(m) >= len(r.props) {
		return r.props[Empty]
	}
	return r.props[m]
}

// Name returns the name of the material passed.
func (r *Registry) Name(m Material) string {
	return r.Properties(m).Name
}

// Len returns the amount of materials registered, including Empty.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.props)
}

// DefaultRegistry returns a Registry with the materials used by the default world structures registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, name := range []string{
		"stone", "dirt", "grass", "sand", "sandstone", "gravel", "bedrock", "clay",
		"coal_ore", "iron_ore", "gold_ore", "lapis_ore", "diamond_ore",
		"oak_log", "birch_log", "spruce_log",
	} {
		r.Register(Properties{Name: name, Solid: true})
	}
	for _, name := range []string{"oak_leaves", "birch_leaves", "spruce_leaves", "short_grass", "snow_layer"} {
		r.Register(Properties{Name: name})
	}
	r.Register(Properties{Name: "water", Fluid: true})
	r.Register(Properties{Name: "lava", Fluid: true})
	return r
}
