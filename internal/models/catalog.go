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

package models

import "github.com/shopspring/decimal"

// InvestmentAsset is a product offered in the catalog
type InvestmentAsset struct {
	Id        string          `json:"id"`
	Name      string          `json:"name"`
	Roi       decimal.Decimal `json:"roi"`
	MinAmount decimal.Decimal `json:"minAmount"`
	MaxAmount decimal.Decimal `json:"maxAmount"`
	Duration  int             `json:"duration"`
	Section   string          `json:"section"`
}

// Catalog groups investment assets by section name
type Catalog map[string][]InvestmentAsset

// Clone deep-copies the catalog
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for section, assets := range c {
		out[section] = append([]InvestmentAsset(nil), assets...)
	}
	return out
}

// WalletAddresses maps a currency code (BTC, USDT, ...) to the platform deposit address
type WalletAddresses map[string]string
