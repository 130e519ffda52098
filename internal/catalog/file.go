package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileDocument struct {
	Products []fileProduct `yaml:"products"`
}

type fileProduct struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Edible      bool   `yaml:"edible"`
	Price       int64  `yaml:"price"`
	Currency    string `yaml:"currency"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
}

const defaultCurrency = "SEK"

// LoadFile reads a YAML product seed file. Descriptions are rendered when a renderer is supplied.
func LoadFile(path string, renderer *DescriptionRenderer) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	products, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	if renderer != nil {
		if err := renderer.Apply(products); err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", path, err)
		}
	}
	return products, nil
}

// Decode parses a YAML product document and validates it. File order is preserved.
func Decode(r io.Reader) ([]Product, error) {
	var doc fileDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []Product{}, nil
		}
		return nil, fmt.Errorf("parse products: %w", err)
	}

	products := make([]Product, 0, len(doc.Products))
	for _, raw := range doc.Products {
		currency := strings.ToUpper(strings.TrimSpace(raw.Currency))
		if currency == "" {
			currency = defaultCurrency
		}
		products = append(products, Product{
			ID:          strings.TrimSpace(raw.ID),
			Name:        strings.TrimSpace(raw.Name),
			Edible:      raw.Edible,
			PriceMinor:  raw.Price,
			Currency:    currency,
			ImageURL:    strings.TrimSpace(raw.Image),
			Description: raw.Description,
		})
	}
	if err := Validate(products); err != nil {
		return nil, err
	}
	return products, nil
}
