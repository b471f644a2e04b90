// Package recommend maps quiz answers to curated product suggestions.
// Rules are pure functions over the answer map; product copy lives in an
// embedded catalog so wording and links can change without touching logic.
package recommend

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/finpulse/finpulse-cli/internal/model"
)

//go:embed products.yaml
var productsYAML []byte

var catalog = mustLoadCatalog(productsYAML)

func mustLoadCatalog(raw []byte) map[string]model.RecommendationCategory {
	var c map[string]model.RecommendationCategory
	if err := yaml.Unmarshal(raw, &c); err != nil {
		panic(fmt.Sprintf("recommend: embedded catalog is malformed: %v", err))
	}
	return c
}

// category looks up a catalog entry by rule key. A missing key is a
// programming error caught by tests, not a runtime condition.
func category(key string) model.RecommendationCategory {
	c, ok := catalog[key]
	if !ok {
		panic(fmt.Sprintf("recommend: no catalog entry for rule %q", key))
	}
	return c
}
