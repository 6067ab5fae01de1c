package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"elasticsense/content"
	"elasticsense/models"
	"elasticsense/services/llm"
	"elasticsense/services/prompts"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	EmptyDeepDive  = "Failed to load content."
	FailedDeepDive = "Error loading module content. Please check your API key."

	deepDivePrompt = `Write a "Deep Dive" study guide for the module: "%s".
        Cover these topics: %s.

        CRITICAL INSTRUCTIONS:
        1. Use the provided CORE KNOWLEDGE BASE for analogies (e.g. Cluster=Airport, Beats=Microwave).
        2. STRUCTURE: Use clear Headings (#), Subheadings (##), and Bullet points.
        3. FORMATTING: Use **Bold** for important terms. Use ` + "`code`" + ` for tech terms.
        4. DEFINITIONS: Define all acronyms like ILM (Index Lifecycle Management) on first use.
        5. VISUALS: Create ASCII diagrams or use Box-drawing characters to explain flows (e.g. Data -> Ingest -> Index).
        6. RESOURCES: Add a "Resources" section with [Google Search Links](url) and [YouTube Links](url) for key concepts.
        7. PERSONA: Teach me like I'm a smart engineer preparing for a Solution Architect role. Switch between "Technical Details" and "Business Value".
        8. DAVID TIP: Include a random > "David's Tip" in a blockquote.

        Context Data:
        %s`
)

// ModuleService serves the learning path and writes study guides for it.
type ModuleService struct {
	catalog *content.Catalog
	llm     llm.Client
}

func NewModuleService(catalog *content.Catalog, client llm.Client) *ModuleService {
	return &ModuleService{catalog: catalog, llm: client}
}

func (s *ModuleService) Modules() []models.ModuleDefinition {
	return s.catalog.Modules
}

// Search returns the modules matching any of the words in query, in catalog
// order. A blank query matches everything.
func (s *ModuleService) Search(query string) []models.ModuleDefinition {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return s.catalog.Modules
	}

	log.Infof("Searching modules for terms %v", terms)
	return lo.Filter(s.catalog.Modules, func(m models.ModuleDefinition, _ int) bool {
		return s.moduleMatchesSearch(m, terms)
	})
}

func (s *ModuleService) moduleMatchesSearch(m models.ModuleDefinition, searchTerms []string) bool {
	fields := append([]string{m.Title, m.Description}, m.Topics...)

	var words []string
	for _, field := range fields {
		for _, word := range strings.Fields(strings.ToLower(field)) {
			if clean := strings.Trim(word, ".,!?;:()[]{}\"'/"); clean != "" {
				words = append(words, clean)
			}
		}
	}

	for _, term := range searchTerms {
		if len(fuzzy.FindFold(term, words)) > 0 {
			return true
		}
	}
	return false
}

// DeepDive asks the tutor for a study guide covering module. It always
// returns displayable text; failures are replaced by fixed messages.
func (s *ModuleService) DeepDive(ctx context.Context, module models.ModuleDefinition) string {
	log.Infof("Starting deep dive for module %s", module.ID)

	prompt := fmt.Sprintf(deepDivePrompt, module.Title, strings.Join(module.Topics, ", "), prompts.CoreKnowledgeBase)
	text, err := s.llm.Converse(ctx, prompts.TutorSystemPrompt(s.catalog.Tips, ""), nil, prompt+prompts.FormattingInstructions)
	switch {
	case errors.Is(err, llm.ErrEmptyResponse):
		log.Errorf("Empty deep dive for module %s", module.ID)
		return EmptyDeepDive
	case err != nil:
		log.Errorf("Failed to load module content: %v", err)
		return FailedDeepDive
	case strings.TrimSpace(text) == "":
		return EmptyDeepDive
	}

	log.Infof("Successfully loaded deep dive for module %s (%d chars)", module.ID, len(text))
	return text
}
