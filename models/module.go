package models

// ModuleDefinition is one entry of the learning path.
type ModuleDefinition struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Topics      []string `json:"topics" yaml:"topics"`
	Icon        string   `json:"icon" yaml:"icon"`
}
