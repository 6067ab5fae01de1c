// Package architecture generates a sized cluster design for a scenario.
package architecture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"elasticsense/models"
	"elasticsense/services/llm"
	"elasticsense/services/prompts"

	log "github.com/sirupsen/logrus"
)

const (
	designPrompt = `Design an Elastic Cluster for this scenario: "%s".
    Consider ingestion rate, retention, query load, and redundancy.
    Follow the sizing rules (20-50GB shards, <32GB Heap) explicitly.`

	designToolName        = "design_cluster"
	designToolDescription = "Return the proposed Elastic cluster architecture"
)

var errNoNodes = errors.New("design has no nodes")

type Generator struct {
	llm llm.Client
}

func NewGenerator(client llm.Client) *Generator {
	return &Generator{llm: client}
}

// Generate returns a design for scenario, or nil when the scenario is blank
// or the model output is unusable.
func (g *Generator) Generate(ctx context.Context, scenario string) *models.ArchitectureDesign {
	scenario = strings.TrimSpace(scenario)
	if scenario == "" {
		return nil
	}

	log.Infof("Starting architecture design for scenario (%d chars)", len(scenario))
	design, err := g.generate(ctx, scenario)
	if err != nil {
		log.Errorf("Failed to generate architecture design: %v", err)
		return nil
	}

	log.Infof("Successfully generated design with %d nodes", design.TotalNodes())
	return design
}

func (g *Generator) generate(ctx context.Context, scenario string) (*models.ArchitectureDesign, error) {
	schema, err := llm.SchemaFor[models.ArchitectureDesign]()
	if err != nil {
		return nil, err
	}

	raw, err := g.llm.GenerateStructured(ctx, llm.StructuredRequest{
		Prompt:            fmt.Sprintf(designPrompt, scenario),
		SystemInstruction: prompts.ArchitectureSystemPrompt,
		Name:              designToolName,
		Description:       designToolDescription,
		Schema:            schema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call model: %w", err)
	}

	var design models.ArchitectureDesign
	if err := json.Unmarshal([]byte(raw), &design); err != nil {
		return nil, fmt.Errorf("failed to parse design: %w", err)
	}

	if err := validate(&design); err != nil {
		return nil, err
	}
	return &design, nil
}

func validate(d *models.ArchitectureDesign) error {
	if len(d.Nodes) == 0 {
		return errNoNodes
	}
	for _, n := range d.Nodes {
		if !n.Type.Valid() {
			return fmt.Errorf("unknown node type %q", n.Type)
		}
		if n.Count < 0 {
			return fmt.Errorf("negative count for %s nodes", n.Type)
		}
	}
	return nil
}
