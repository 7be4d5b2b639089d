package common

import (
	"fmt"
	"os"
	"path/filepath"

	"uptran-invest-go/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

type SeedAsset struct {
	Id        string `yaml:"id"`
	Name      string `yaml:"name"`
	Roi       string `yaml:"roi"`
	MinAmount string `yaml:"min_amount"`
	MaxAmount string `yaml:"max_amount"`
	Duration  int    `yaml:"duration"`
}

type SeedSection struct {
	Section string      `yaml:"section"`
	Assets  []SeedAsset `yaml:"assets"`
}

type SeedConfig struct {
	Catalog []SeedSection     `yaml:"catalog"`
	Wallets map[string]string `yaml:"wallets"`
}

// Seed holds the parsed defaults; nil fields fall back to the built-in values
type Seed struct {
	Catalog models.Catalog
	Wallets models.WalletAddresses
}

// LoadSeedFile reads the catalog and wallet defaults. A missing file yields an
// error matching os.ErrNotExist.
func LoadSeedFile(seedFile string) (*Seed, error) {
	var seedPath string
	if filepath.IsAbs(seedFile) {
		seedPath = seedFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		seedPath = filepath.Join(wd, seedFile)
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", seedFile, err)
	}

	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	var config SeedConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse seed: %w", err)
	}

	seed := &Seed{}

	if len(config.Catalog) > 0 {
		seed.Catalog = make(models.Catalog, len(config.Catalog))
		for i, section := range config.Catalog {
			if section.Section == "" {
				return nil, fmt.Errorf("catalog section at index %d missing name", i)
			}
			assets := make([]models.InvestmentAsset, 0, len(section.Assets))
			for j, a := range section.Assets {
				asset, err := a.toModel(section.Section)
				if err != nil {
					return nil, fmt.Errorf("section %s asset at index %d: %w", section.Section, j, err)
				}
				assets = append(assets, asset)
			}
			seed.Catalog[section.Section] = append(seed.Catalog[section.Section], assets...)
		}
	}

	if len(config.Wallets) > 0 {
		seed.Wallets = make(models.WalletAddresses, len(config.Wallets))
		for currency, address := range config.Wallets {
			if address == "" {
				return nil, fmt.Errorf("wallet %s missing address", currency)
			}
			seed.Wallets[currency] = address
		}
	}

	return seed, nil
}

func (a SeedAsset) toModel(section string) (models.InvestmentAsset, error) {
	if a.Id == "" {
		return models.InvestmentAsset{}, fmt.Errorf("missing id")
	}
	if a.Name == "" {
		return models.InvestmentAsset{}, fmt.Errorf("missing name")
	}

	roi, err := parseSeedDecimal("roi", a.Roi)
	if err != nil {
		return models.InvestmentAsset{}, err
	}
	minAmount, err := parseSeedDecimal("min_amount", a.MinAmount)
	if err != nil {
		return models.InvestmentAsset{}, err
	}
	maxAmount, err := parseSeedDecimal("max_amount", a.MaxAmount)
	if err != nil {
		return models.InvestmentAsset{}, err
	}

	return models.InvestmentAsset{
		Id:        a.Id,
		Name:      a.Name,
		Roi:       roi,
		MinAmount: minAmount,
		MaxAmount: maxAmount,
		Duration:  a.Duration,
		Section:   section,
	}, nil
}

func parseSeedDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}
