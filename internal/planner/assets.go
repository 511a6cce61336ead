package planner

import (
	"fmt"
	"strings"

	"github.com/emilianohg/storyboard/internal/models"
)

type AssetInput struct {
	Type    models.AssetType
	Name    string
	URL     string
	Notes   string
	SceneID string
}

func (pl *Planner) AddAsset(p *models.Project, in AssetInput) (models.Asset, error) {
	if !in.Type.Valid() {
		return models.Asset{}, fmt.Errorf("asset type %q is not valid", in.Type)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Asset{}, fmt.Errorf("asset name is required")
	}

	asset := models.Asset{
		ID:        newID(),
		Type:      in.Type,
		Name:      name,
		URL:       strings.TrimSpace(in.URL),
		Notes:     in.Notes,
		SceneID:   in.SceneID,
		CreatedAt: pl.now(),
	}
	p.Assets = append(p.Assets, asset)
	return asset, nil
}

func DeleteAsset(p *models.Project, id string) bool {
	out := p.Assets[:0:0]
	for _, a := range p.Assets {
		if a.ID != id {
			out = append(out, a)
		}
	}
	found := len(out) != len(p.Assets)
	p.Assets = out
	return found
}

// FilterAssets lists assets of type typ belonging to sceneID. An empty
// sceneID matches every asset and an empty typ matches every type.
func FilterAssets(assets []models.Asset, sceneID string, typ models.AssetType) []models.Asset {
	var out []models.Asset
	for _, a := range assets {
		if sceneID != "" && a.SceneID != sceneID {
			continue
		}
		if typ != "" && a.Type != typ {
			continue
		}
		out = append(out, a)
	}
	return out
}

func FindAsset(p *models.Project, id string) (models.Asset, bool) {
	for _, a := range p.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return models.Asset{}, false
}
