package scene

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"

	"github.com/rmdl/go-diorama-raytracer/pkg/core"
	"github.com/rmdl/go-diorama-raytracer/pkg/geometry"
	"github.com/rmdl/go-diorama-raytracer/pkg/loaders"
	"github.com/rmdl/go-diorama-raytracer/pkg/material"
	"github.com/rmdl/go-diorama-raytracer/pkg/renderer"
)

// maxTextureDimension caps decoded texture sizes; larger images are
// downscaled by the loader before sampling
const maxTextureDimension = 1024

// SceneFile is the TOML description of a diorama. Block and fill
// placements use unit-cube grid coordinates; everything else is world
// space.
type SceneFile struct {
	Camera    CameraSection   `toml:"camera"`
	Sky       SkySection      `toml:"sky"`
	Ambient   AmbientSection  `toml:"ambient"`
	Materials []MaterialEntry `toml:"material"`
	Blocks    []BlockEntry    `toml:"block"`
	Fills     []FillEntry     `toml:"fill"`
	Spheres   []SphereEntry   `toml:"sphere"`
	Lights    []LightEntry    `toml:"light"`
}

// CameraSection configures the initial camera pose
type CameraSection struct {
	Eye        []float64 `toml:"eye"`
	Center     []float64 `toml:"center"`
	Up         []float64 `toml:"up"`
	FovDegrees float64   `toml:"fov_degrees"`
}

// SkySection configures the environment: a flat color, optionally
// replaced by an equirectangular texture
type SkySection struct {
	Color   []float64 `toml:"color"`
	Texture string    `toml:"texture"`
}

// AmbientSection configures the ambient light term
type AmbientSection struct {
	Color     []float64 `toml:"color"`
	Intensity float64   `toml:"intensity"`
}

// MaterialEntry is a named material in the scene's palette
type MaterialEntry struct {
	Name            string    `toml:"name"`
	Diffuse         []float64 `toml:"diffuse"`
	Texture         string    `toml:"texture"`
	UV              string    `toml:"uv"` // "grid" (default) or "strip"
	Specular        float64   `toml:"specular"`
	Albedo          []float64 `toml:"albedo"` // diffuse, specular, reflective, transmissive
	RefractiveIndex float64   `toml:"refractive_index"`
	Emissive        []float64 `toml:"emissive"`
}

// BlockEntry places a single axis-aligned box
type BlockEntry struct {
	Material string    `toml:"material"`
	Min      []float64 `toml:"min"`
	Max      []float64 `toml:"max"`
}

// FillEntry places unit cubes over an inclusive grid range
type FillEntry struct {
	Material string `toml:"material"`
	From     []int  `toml:"from"`
	To       []int  `toml:"to"`
}

// SphereEntry places a sphere
type SphereEntry struct {
	Material string    `toml:"material"`
	Center   []float64 `toml:"center"`
	Radius   float64   `toml:"radius"`
}

// LightEntry places a point light
type LightEntry struct {
	Position  []float64 `toml:"position"`
	Color     []float64 `toml:"color"`
	Intensity float64   `toml:"intensity"`
}

// LoadSceneFile parses a TOML scene description and builds the scene
// and its camera. Texture paths are resolved relative to the scene
// file's directory and decoded concurrently; the first failure aborts
// the load.
func LoadSceneFile(path string, logger core.Logger) (*Scene, *renderer.Camera, float64, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("reading scene file: %w", err)
	}

	var file SceneFile
	if err := toml.Unmarshal(blob, &file); err != nil {
		return nil, nil, 0, fmt.Errorf("parsing scene file %s: %w", path, err)
	}

	return BuildScene(&file, filepath.Dir(path), logger)
}

// BuildScene turns a parsed scene description into a renderable scene.
// assetDir is the directory texture paths are resolved against.
func BuildScene(file *SceneFile, assetDir string, logger core.Logger) (*Scene, *renderer.Camera, float64, error) {
	textures, err := loadTextures(file, assetDir, logger)
	if err != nil {
		return nil, nil, 0, err
	}

	materials := make(map[string]*material.Material, len(file.Materials))
	schemes := make(map[string]geometry.UVScheme, len(file.Materials))
	for _, entry := range file.Materials {
		if entry.Name == "" {
			return nil, nil, 0, fmt.Errorf("material with empty name")
		}
		if _, exists := materials[entry.Name]; exists {
			return nil, nil, 0, fmt.Errorf("duplicate material %q", entry.Name)
		}
		mat, scheme, err := buildMaterial(entry, textures)
		if err != nil {
			return nil, nil, 0, err
		}
		materials[entry.Name] = mat
		schemes[entry.Name] = scheme
	}

	s := NewScene()

	if len(file.Sky.Color) > 0 {
		color, err := vec3Field(file.Sky.Color, "sky.color")
		if err != nil {
			return nil, nil, 0, err
		}
		s.SetSkyColor(color)
	}
	if file.Sky.Texture != "" {
		s.SetSkyTexture(textures[file.Sky.Texture])
	}
	if len(file.Ambient.Color) > 0 {
		color, err := vec3Field(file.Ambient.Color, "ambient.color")
		if err != nil {
			return nil, nil, 0, err
		}
		s.SetAmbient(color, file.Ambient.Intensity)
	}

	for i, block := range file.Blocks {
		mat, ok := materials[block.Material]
		if !ok {
			return nil, nil, 0, fmt.Errorf("block %d: unknown material %q", i, block.Material)
		}
		min, err := vec3Field(block.Min, "block.min")
		if err != nil {
			return nil, nil, 0, err
		}
		max, err := vec3Field(block.Max, "block.max")
		if err != nil {
			return nil, nil, 0, err
		}
		cube := s.AddCube(min, max, mat)
		cube.Scheme = schemes[block.Material]
	}

	for i, fill := range file.Fills {
		mat, ok := materials[fill.Material]
		if !ok {
			return nil, nil, 0, fmt.Errorf("fill %d: unknown material %q", i, fill.Material)
		}
		if len(fill.From) != 3 || len(fill.To) != 3 {
			return nil, nil, 0, fmt.Errorf("fill %d: from/to must have 3 components", i)
		}
		for x := fill.From[0]; x <= fill.To[0]; x++ {
			for y := fill.From[1]; y <= fill.To[1]; y++ {
				for z := fill.From[2]; z <= fill.To[2]; z++ {
					min := core.NewVec3(float64(x), float64(y), float64(z))
					cube := s.AddCube(min, min.Add(core.NewVec3(1, 1, 1)), mat)
					cube.Scheme = schemes[fill.Material]
				}
			}
		}
	}

	for i, sphere := range file.Spheres {
		mat, ok := materials[sphere.Material]
		if !ok {
			return nil, nil, 0, fmt.Errorf("sphere %d: unknown material %q", i, sphere.Material)
		}
		center, err := vec3Field(sphere.Center, "sphere.center")
		if err != nil {
			return nil, nil, 0, err
		}
		if sphere.Radius <= 0 {
			return nil, nil, 0, fmt.Errorf("sphere %d: radius must be positive", i)
		}
		s.AddSphere(center, sphere.Radius, mat)
	}

	for _, light := range file.Lights {
		position, err := vec3Field(light.Position, "light.position")
		if err != nil {
			return nil, nil, 0, err
		}
		color := core.NewVec3(1, 1, 1)
		if len(light.Color) > 0 {
			if color, err = vec3Field(light.Color, "light.color"); err != nil {
				return nil, nil, 0, err
			}
		}
		s.AddLight(position, color, light.Intensity)
	}

	camera, fov, err := buildCamera(file.Camera)
	if err != nil {
		return nil, nil, 0, err
	}

	logger.Printf("Scene built: %d primitives, %d lights, %d textures\n",
		s.PrimitiveCount(), len(s.Lights()), len(textures))
	return s, camera, fov, nil
}

// loadTextures decodes every image the description references, one
// decode per distinct path
func loadTextures(file *SceneFile, assetDir string, logger core.Logger) (map[string]*material.Texture, error) {
	paths := make(map[string]struct{})
	for _, entry := range file.Materials {
		if entry.Texture != "" {
			paths[entry.Texture] = struct{}{}
		}
	}
	if file.Sky.Texture != "" {
		paths[file.Sky.Texture] = struct{}{}
	}

	textures := make(map[string]*material.Texture, len(paths))
	var mu sync.Mutex
	var g errgroup.Group
	for path := range paths {
		g.Go(func() error {
			texture, err := loaders.LoadTexture(filepath.Join(assetDir, path), maxTextureDimension)
			if err != nil {
				return fmt.Errorf("loading texture %s: %w", path, err)
			}
			logger.Printf("Loaded texture %s (%dx%d)\n", path, texture.Width, texture.Height)
			mu.Lock()
			textures[path] = texture
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return textures, nil
}

func buildMaterial(entry MaterialEntry, textures map[string]*material.Texture) (*material.Material, geometry.UVScheme, error) {
	albedo := material.NewAlbedo(1, 0, 0, 0)
	if len(entry.Albedo) > 0 {
		if len(entry.Albedo) != 4 {
			return nil, 0, fmt.Errorf("material %q: albedo must have 4 components", entry.Name)
		}
		albedo = material.NewAlbedo(entry.Albedo[0], entry.Albedo[1], entry.Albedo[2], entry.Albedo[3])
	}

	index := entry.RefractiveIndex
	if index <= 0 {
		index = 1.0
	}

	scheme := geometry.UVAtlasGrid
	switch entry.UV {
	case "", "grid":
	case "strip":
		scheme = geometry.UVAtlasStrip
	default:
		return nil, 0, fmt.Errorf("material %q: unknown uv scheme %q", entry.Name, entry.UV)
	}

	var mat *material.Material
	switch {
	case entry.Texture != "":
		mat = material.NewTexturedMaterial(textures[entry.Texture], entry.Specular, albedo, index)
	default:
		diffuse, err := vec3Field(entry.Diffuse, "material "+entry.Name+" diffuse")
		if err != nil {
			return nil, 0, err
		}
		mat = material.NewMaterial(diffuse, entry.Specular, albedo, index)
	}

	if len(entry.Emissive) > 0 {
		emissive, err := vec3Field(entry.Emissive, "material "+entry.Name+" emissive")
		if err != nil {
			return nil, 0, err
		}
		mat.Emissive = emissive
	}
	return mat, scheme, nil
}

func buildCamera(section CameraSection) (*renderer.Camera, float64, error) {
	eye := core.NewVec3(0, 3, 8)
	center := core.NewVec3(0, 0, 0)
	up := core.NewVec3(0, 1, 0)

	var err error
	if len(section.Eye) > 0 {
		if eye, err = vec3Field(section.Eye, "camera.eye"); err != nil {
			return nil, 0, err
		}
	}
	if len(section.Center) > 0 {
		if center, err = vec3Field(section.Center, "camera.center"); err != nil {
			return nil, 0, err
		}
	}
	if len(section.Up) > 0 {
		if up, err = vec3Field(section.Up, "camera.up"); err != nil {
			return nil, 0, err
		}
	}

	fov := 0.0 // Renderer falls back to its default
	if section.FovDegrees > 0 {
		fov = section.FovDegrees * math.Pi / 180
	}
	return renderer.NewCamera(eye, center, up), fov, nil
}

func vec3Field(values []float64, name string) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s must have 3 components, got %d", name, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
