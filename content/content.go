// Package content embeds the static learning path shipped with the binary.
package content

import (
	_ "embed"
	"fmt"
	"math/rand/v2"

	"elasticsense/models"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Catalog struct {
	Modules          []models.ModuleDefinition `yaml:"modules"`
	Tips             []string                  `yaml:"tips"`
	StarterQuestions []string                  `yaml:"starterQuestions"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Modules) == 0 {
		return nil, fmt.Errorf("catalog has no modules")
	}
	return &c, nil
}

// Module returns the module with the given id.
func (c *Catalog) Module(id string) (models.ModuleDefinition, bool) {
	return lo.Find(c.Modules, func(m models.ModuleDefinition) bool { return m.ID == id })
}

// Titles lists module titles in catalog order. They double as quiz topics.
func (c *Catalog) Titles() []string {
	return lo.Map(c.Modules, func(m models.ModuleDefinition, _ int) string { return m.Title })
}

func (c *Catalog) RandomTip() string {
	if len(c.Tips) == 0 {
		return ""
	}
	return c.Tips[rand.IntN(len(c.Tips))]
}
