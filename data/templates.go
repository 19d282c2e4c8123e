package data

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"hades-rogue/components"
	"hades-rogue/ecs"
	"hades-rogue/scripting"
)

// ErrUnknownTemplate is returned when no template has the requested ID
var ErrUnknownTemplate = errors.New("unknown template")

//go:embed gameobjects.yaml
var builtinTemplates []byte

// StatTemplate is the initial value and upgrade limit of a stat
type StatTemplate struct {
	Value    float64 `yaml:"value"`
	MaxLevel int     `yaml:"max_level"` // -1 = not upgradable
}

// BodyTemplate describes a kinematic body in pixels
type BodyTemplate struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

type SizeTemplate struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type PotionTemplate struct {
	Stat     string  `yaml:"stat"`
	Amount   float64 `yaml:"amount"`
	Duration float64 `yaml:"duration"`
}

// GameObjectTemplate describes the components a game object is spawned with
type GameObjectTemplate struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Color string   `yaml:"color"` // hex, e.g. "#00FF00"
	Tags  []string `yaml:"tags"`

	Body      *BodyTemplate           `yaml:"body"`
	Stats     map[string]StatTemplate `yaml:"stats"`
	Inventory *SizeTemplate           `yaml:"inventory"`
	Attacks   []string                `yaml:"attacks"`
	Money     *int                    `yaml:"money"`
	Upgrades  map[string]string       `yaml:"upgrades"`
	Potion    *PotionTemplate         `yaml:"potion"`
}

// HasTag reports whether the template carries a tag
func (t *GameObjectTemplate) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

type templateFile struct {
	Templates []GameObjectTemplate `yaml:"templates"`
}

// TemplateManager holds game object templates indexed by ID
type TemplateManager struct {
	templates map[string]*GameObjectTemplate
	scripts   *scripting.Engine
}

// NewTemplateManager creates an empty manager. Upgrade formulas are compiled
// with scripts.
func NewTemplateManager(scripts *scripting.Engine) *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*GameObjectTemplate),
		scripts:   scripts,
	}
}

// LoadBuiltin loads the templates embedded in the binary
func (m *TemplateManager) LoadBuiltin() error {
	if err := m.Load(builtinTemplates); err != nil {
		return fmt.Errorf("load builtin templates: %w", err)
	}
	return nil
}

// LoadFile loads templates from a YAML file, replacing any with the same ID
func (m *TemplateManager) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read templates %s: %w", path, err)
	}
	if err := m.Load(data); err != nil {
		return fmt.Errorf("templates %s: %w", path, err)
	}
	return nil
}

// Load parses YAML templates, replacing any with the same ID
func (m *TemplateManager) Load(data []byte) error {
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	for i := range f.Templates {
		t := &f.Templates[i]
		if err := validateTemplate(t); err != nil {
			return err
		}
		m.templates[t.ID] = t
	}
	return nil
}

func validateTemplate(t *GameObjectTemplate) error {
	if t.ID == "" {
		return fmt.Errorf("template missing id")
	}
	for name := range t.Stats {
		if _, ok := components.StatKindByName(name); !ok {
			return fmt.Errorf("template '%s' has unknown stat %q", t.ID, name)
		}
	}
	for name := range t.Upgrades {
		if _, ok := t.Stats[name]; !ok {
			return fmt.Errorf("template '%s' upgrades missing stat %q", t.ID, name)
		}
	}
	for _, name := range t.Attacks {
		if _, ok := components.AttackAlgorithmByName(name); !ok {
			return fmt.Errorf("template '%s' has unknown attack %q", t.ID, name)
		}
	}
	if t.Potion != nil {
		if _, ok := components.StatKindByName(t.Potion.Stat); !ok {
			return fmt.Errorf("template '%s' potion has unknown stat %q", t.ID, t.Potion.Stat)
		}
	}
	return nil
}

// Template returns a template by ID
func (m *TemplateManager) Template(id string) (*GameObjectTemplate, bool) {
	t, ok := m.templates[id]
	return t, ok
}

// FindByName returns the template whose display name is name
func (m *TemplateManager) FindByName(name string) (*GameObjectTemplate, bool) {
	for _, id := range m.IDs() {
		if t := m.templates[id]; t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// IDs returns the loaded template IDs in sorted order
func (m *TemplateManager) IDs() []string {
	ids := make([]string, 0, len(m.templates))
	for id := range m.templates {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Components builds a fresh set of components from the template with the given ID
func (m *TemplateManager) Components(id string) ([]ecs.Component, error) {
	t, ok := m.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", id, ErrUnknownTemplate)
	}

	comps := []ecs.Component{components.NewNameComponent(t.Name)}
	if t.HasTag("player") {
		comps = append(comps, &components.PlayerComponent{})
	}
	if t.HasTag("enemy") {
		comps = append(comps, &components.EnemyComponent{})
	}
	if t.Body != nil {
		body := components.NewKinematicComponent(t.Body.Width, t.Body.Height)
		if t.Body.Mass > 0 {
			body.Mass = t.Body.Mass
		}
		comps = append(comps, body)
	}

	// map order is random; keep component order stable
	kinds := make([]string, 0, len(t.Stats))
	for name := range t.Stats {
		kinds = append(kinds, name)
	}
	slices.Sort(kinds)
	for _, name := range kinds {
		kind, _ := components.StatKindByName(name)
		st := t.Stats[name]
		c, _ := components.NewStatComponent(kind, st.Value, st.MaxLevel)
		comps = append(comps, c)
	}

	if t.Inventory != nil {
		comps = append(comps, components.NewInventory(t.Inventory.Width, t.Inventory.Height))
	}
	if len(t.Attacks) > 0 {
		algorithms := make([]components.AttackAlgorithm, len(t.Attacks))
		for i, name := range t.Attacks {
			algorithms[i], _ = components.AttackAlgorithmByName(name)
		}
		comps = append(comps, components.NewAttacks(algorithms...))
	}
	if t.Money != nil {
		comps = append(comps, &components.Money{Amount: *t.Money})
	}
	if len(t.Upgrades) > 0 {
		formulas := make(map[components.StatKind]components.Formula, len(t.Upgrades))
		for name, src := range t.Upgrades {
			if m.scripts == nil {
				return nil, fmt.Errorf("template %q has upgrades but no scripting engine", id)
			}
			f, err := m.scripts.Formula(src)
			if err != nil {
				return nil, fmt.Errorf("template %q: %w", id, err)
			}
			kind, _ := components.StatKindByName(name)
			formulas[kind] = f
		}
		comps = append(comps, components.NewUpgrades(formulas))
	}
	if t.Potion != nil {
		kind, _ := components.StatKindByName(t.Potion.Stat)
		comps = append(comps, &components.PotionComponent{
			Stat:     kind,
			Amount:   t.Potion.Amount,
			Duration: t.Potion.Duration,
		})
	}
	return comps, nil
}

// DisplayColor returns the template's display color, white when unset or invalid
func (t *GameObjectTemplate) DisplayColor() color.RGBA {
	return ParseHexColor(t.Color)
}

// ParseHexColor converts a hex string to a color.RGBA
func ParseHexColor(hex string) (c color.RGBA) {
	c.A = 0xff

	if len(hex) < 7 {
		return color.RGBA{255, 255, 255, 255}
	}

	_, err := fmt.Sscanf(hex, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}

	return
}
