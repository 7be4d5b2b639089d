/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package accounts

import (
	"context"
	"fmt"
	"sort"

	"uptran-invest-go/internal/models"
	"uptran-invest-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AssetInput describes a catalog entry; the id and section are assigned by the catalog
type AssetInput struct {
	Name      string
	Roi       decimal.Decimal
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	Duration  int
}

// AssetUpdate is a shallow patch; nil fields are left unchanged
type AssetUpdate struct {
	Name      *string
	Roi       *decimal.Decimal
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Duration  *int
}

// AddInvestmentAsset appends an asset to section, creating the section when needed
func (m *Manager) AddInvestmentAsset(ctx context.Context, section string, in AssetInput) (*models.InvestmentAsset, error) {
	if section == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: section and name are required", ErrInvalidInput)
	}

	asset := models.InvestmentAsset{
		Id:        newId(),
		Name:      in.Name,
		Roi:       in.Roi,
		MinAmount: in.MinAmount,
		MaxAmount: in.MaxAmount,
		Duration:  in.Duration,
		Section:   section,
	}
	if err := validateAsset(asset); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.catalog == nil {
		m.catalog = models.Catalog{}
	}
	m.catalog[section] = append(m.catalog[section], asset)

	if err := m.persist(ctx, store.KeyInvestmentAssets); err != nil {
		return nil, err
	}

	zap.L().Info("Investment asset added",
		zap.String("asset_id", asset.Id),
		zap.String("section", section),
		zap.String("name", asset.Name))
	return &asset, nil
}

// UpdateInvestmentAsset merges the non-nil fields of upd into the asset with the given id
func (m *Manager) UpdateInvestmentAsset(ctx context.Context, assetId string, upd AssetUpdate) (*models.InvestmentAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	asset := m.findAsset(assetId)
	if asset == nil {
		return nil, ErrAssetNotFound
	}

	updated := *asset
	if upd.Name != nil {
		updated.Name = *upd.Name
	}
	if upd.Roi != nil {
		updated.Roi = *upd.Roi
	}
	if upd.MinAmount != nil {
		updated.MinAmount = *upd.MinAmount
	}
	if upd.MaxAmount != nil {
		updated.MaxAmount = *upd.MaxAmount
	}
	if upd.Duration != nil {
		updated.Duration = *upd.Duration
	}
	if updated.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := validateAsset(updated); err != nil {
		return nil, err
	}

	*asset = updated
	if err := m.persist(ctx, store.KeyInvestmentAssets); err != nil {
		return nil, err
	}

	zap.L().Info("Investment asset updated", zap.String("asset_id", assetId))
	return &updated, nil
}

// DeleteInvestmentAsset removes the asset from every section. It reports whether
// anything was removed; deleting an unknown id writes nothing.
func (m *Manager) DeleteInvestmentAsset(ctx context.Context, assetId string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := false
	for section, assets := range m.catalog {
		kept := assets[:0:0]
		for _, a := range assets {
			if a.Id == assetId {
				removed = true
				continue
			}
			kept = append(kept, a)
		}
		m.catalog[section] = kept
	}
	if !removed {
		return false, nil
	}

	if err := m.persist(ctx, store.KeyInvestmentAssets); err != nil {
		return false, err
	}

	zap.L().Info("Investment asset deleted", zap.String("asset_id", assetId))
	return true, nil
}

// InvestmentAssets returns a copy of the catalog keyed by section
func (m *Manager) InvestmentAssets() models.Catalog {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.catalog.Clone()
}

// FindInvestmentAsset looks an asset up by id across all sections
func (m *Manager) FindInvestmentAsset(assetId string) (*models.InvestmentAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	asset := m.findAsset(assetId)
	if asset == nil {
		return nil, ErrAssetNotFound
	}
	out := *asset
	return &out, nil
}

// Sections returns the catalog section names in alphabetical order
func (m *Manager) Sections() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	sections := make([]string, 0, len(m.catalog))
	for section := range m.catalog {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	return sections
}

func (m *Manager) findAsset(assetId string) *models.InvestmentAsset {
	for _, assets := range m.catalog {
		for i := range assets {
			if assets[i].Id == assetId {
				return &assets[i]
			}
		}
	}
	return nil
}

func validateAsset(a models.InvestmentAsset) error {
	if a.Roi.IsNegative() || a.MinAmount.IsNegative() || a.MaxAmount.IsNegative() || a.Duration < 0 {
		return fmt.Errorf("%w: asset values cannot be negative", ErrInvalidInput)
	}
	if a.MaxAmount.IsPositive() && a.MinAmount.GreaterThan(a.MaxAmount) {
		return fmt.Errorf("%w: minimum amount exceeds maximum", ErrInvalidInput)
	}
	return nil
}
