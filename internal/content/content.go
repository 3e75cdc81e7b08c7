// Package content holds the fixed portfolio data the page renders.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Site is everything rendered on the page.
type Site struct {
	Profile    Profile      `yaml:"profile"`
	Articles   []Article    `yaml:"articles"`
	Experience []Experience `yaml:"experience"`
}

type Profile struct {
	Name           string      `yaml:"name"`
	Tagline        string      `yaml:"tagline"`
	Headline       string      `yaml:"headline"`
	Bio            string      `yaml:"bio"`
	HeadshotURL    string      `yaml:"headshot_url"`
	NarrativeIntro string      `yaml:"narrative_intro"`
	Location       string      `yaml:"location"`
	Social         Social      `yaml:"social"`
	Credentials    Credentials `yaml:"credentials"`
}

type Social struct {
	LinkedIn string `yaml:"linkedin"`
	GitHub   string `yaml:"github"`
}

type Credentials struct {
	Education   []Education   `yaml:"education"`
	Development []Development `yaml:"development"`
	Languages   []Language    `yaml:"languages"`
	// Skills keeps categories in file order.
	Skills []SkillGroup `yaml:"skills"`
}

type Education struct {
	Degree string `yaml:"degree"`
	School string `yaml:"school"`
}

type Development struct {
	Program string `yaml:"program"`
	School  string `yaml:"school"`
	Context string `yaml:"context"`
}

type Language struct {
	Flag     string `yaml:"flag"`
	Language string `yaml:"language"`
	Level    string `yaml:"level"`
	Context  string `yaml:"context"`
}

type SkillGroup struct {
	Category string   `yaml:"category"`
	Skills   []string `yaml:"skills"`
}

// Article is an upcoming essay teaser.
type Article struct {
	ID      string `yaml:"id"`
	Tag     string `yaml:"tag"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// Experience is one role on the career timeline. Expandable descriptions
// are shown truncated until the visitor asks for more.
type Experience struct {
	Role        string   `yaml:"role"`
	Company     string   `yaml:"company"`
	Active      bool     `yaml:"active"`
	Description string   `yaml:"description"`
	Expandable  bool     `yaml:"expandable"`
	Tags        []string `yaml:"tags"`
}

// Default returns the built-in site content.
func Default() (*Site, error) {
	return parse(defaultContent)
}

// Load reads site content from path, falling back to the built-in content
// when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	site, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	return site, nil
}

func parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, err
	}
	return &site, nil
}
