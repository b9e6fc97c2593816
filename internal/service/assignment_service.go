package service

import (
	"encoding/json"
	"os"
	"strings"
)

// SkillCategory groups keywords under a default owner. Categories live in an
// ordered slice because earlier entries win score ties.
type SkillCategory struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Owner    string   `json:"owner"`
}

// AssignmentService resolves a responsible team member from ticket text.
type AssignmentService struct {
	categories []SkillCategory
}

// NewAssignmentService creates the service over the given category table.
func NewAssignmentService(categories []SkillCategory) *AssignmentService {
	return &AssignmentService{categories: categories}
}

// DefaultSkillCategories returns the built-in category table.
func DefaultSkillCategories() []SkillCategory {
	return []SkillCategory{
		{Name: "frontend", Owner: "Alice", Keywords: []string{"ui", "frontend", "css", "react", "button", "layout"}},
		{Name: "backend", Owner: "Bob", Keywords: []string{"api", "backend", "server", "database", "endpoint"}},
		{Name: "devops", Owner: "Charlie", Keywords: []string{"deploy", "docker", "pipeline", "kubernetes", "infra"}},
		{Name: "design", Owner: "Diana", Keywords: []string{"ux", "design", "mockup", "wireframe"}},
		{Name: "qa", Owner: "Eve", Keywords: []string{"test", "qa", "regression", "coverage"}},
	}
}

// LoadSkillCategories reads a category table from a JSON rules file. An empty
// path or unreadable file falls back to the built-in table.
func LoadSkillCategories(path string) ([]SkillCategory, error) {
	if path == "" {
		return DefaultSkillCategories(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSkillCategories(), err
	}
	var categories []SkillCategory
	if err := json.Unmarshal(data, &categories); err != nil {
		return DefaultSkillCategories(), err
	}
	if len(categories) == 0 {
		return DefaultSkillCategories(), nil
	}
	return categories, nil
}

// Resolve scores each category by counting its keywords that appear as
// case-insensitive substrings of the combined title and description text.
// The first category with the strictly highest score wins; a best score of
// zero means no owner.
func (s *AssignmentService) Resolve(title, description string) *string {
	text := strings.ToLower(title + " " + description)

	bestScore := 0
	var bestOwner string
	for _, category := range s.categories {
		score := 0
		for _, keyword := range category.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(keyword)) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestOwner = category.Owner
		}
	}
	if bestScore == 0 {
		return nil
	}
	return &bestOwner
}
