package biome

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed scenes/*.yaml
var builtinScenes embed.FS

// DefaultSceneName is the builtin composition used when no scene is given.
const DefaultSceneName = "microbiome"

// Config is the mount configuration. Zero fields take DefaultConfig values.
type Config struct {
	Window struct {
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
		Title  string `yaml:"title"`
	} `yaml:"window"`

	// DPR clamps the device pixel ratio of the drawing surface.
	DPR struct {
		Min float64 `yaml:"min"`
		Max float64 `yaml:"max"`
	} `yaml:"dpr"`

	// Scene is a builtin scene name or a path to a scene YAML file.
	Scene  string  `yaml:"scene"`
	Seed   int64   `yaml:"seed"`
	Watch  bool    `yaml:"watch"`
	Debug  bool    `yaml:"debug"`
	FadeIn float32 `yaml:"fade_in"`
	TPS    int     `yaml:"tps"`
}

func DefaultConfig() Config {
	var c Config
	c.Window.Width = 1280
	c.Window.Height = 720
	c.Window.Title = "biome"
	c.DPR.Min = 1
	c.DPR.Max = 1.5
	c.Scene = DefaultSceneName
	c.FadeIn = 1.2
	c.TPS = 60
	return c
}

// LoadConfig overlays the YAML file at path onto DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.DPR.Min <= 0 || c.DPR.Max < c.DPR.Min {
		return fmt.Errorf("%w: dpr range [%v, %v]", ErrInvalidConfig, c.DPR.Min, c.DPR.Max)
	}
	if c.FadeIn < 0 {
		return fmt.Errorf("%w: negative fade_in %v", ErrInvalidConfig, c.FadeIn)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.TPS)
	}
	if c.Watch && IsBuiltinScene(c.Scene) {
		return fmt.Errorf("%w: watch needs a scene file, got builtin %q", ErrInvalidConfig, c.Scene)
	}
	return nil
}

// ParseSceneDef decodes a scene. Unknown keys are rejected.
func ParseSceneDef(data []byte) (SceneDef, error) {
	var def SceneDef
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return def, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return def, nil
}

// LoadSceneDef resolves a builtin scene name or reads a scene file.
func LoadSceneDef(nameOrPath string) (SceneDef, error) {
	if IsBuiltinScene(nameOrPath) {
		data, err := builtinScenes.ReadFile(path.Join("scenes", nameOrPath+".yaml"))
		if err != nil {
			return SceneDef{}, err
		}
		return ParseSceneDef(data)
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		return SceneDef{}, fmt.Errorf("read scene %s: %w", nameOrPath, err)
	}
	def, err := ParseSceneDef(data)
	if err != nil {
		return def, fmt.Errorf("%s: %w", nameOrPath, err)
	}
	return def, nil
}

func IsBuiltinScene(name string) bool {
	for _, n := range BuiltinSceneNames() {
		if n == name {
			return true
		}
	}
	return false
}

func BuiltinSceneNames() []string {
	entries, err := builtinScenes.ReadDir("scenes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// MarshalSceneDef renders a scene definition back to YAML.
func MarshalSceneDef(def SceneDef) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
