package provider

import (
	"context"
	"fmt"
	"sort"
)

// ListModels queries the /models endpoint and returns the model ids sorted
func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	list, err := p.CreateClient().ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	models := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, m.ID)
	}
	sort.Strings(models)
	return models, nil
}
