package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yml
var catalogYAML []byte

// Account is a fixed demo login.
type Account struct {
	ID       string `yaml:"id"`
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Password string `yaml:"password"`
}

// Catalog lists the categories, tags and demo accounts the seeder draws from.
type Catalog struct {
	Categories struct {
		News      []string `yaml:"news"`
		Videos    []string `yaml:"videos"`
		Images    []string `yaml:"images"`
		Community []string `yaml:"community"`
	} `yaml:"categories"`
	Tags     []string  `yaml:"tags"`
	Accounts []Account `yaml:"accounts"`
}

// LoadCatalog parses the embedded catalogue.
func LoadCatalog() (*Catalog, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	if len(c.Categories.News) == 0 || len(c.Categories.Videos) == 0 ||
		len(c.Categories.Images) == 0 || len(c.Categories.Community) == 0 {
		return nil, fmt.Errorf("seed catalog: every resource needs at least one category")
	}
	return &c, nil
}
