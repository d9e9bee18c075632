package catalogfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"vehicle-allocation-service/internal/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// One vehicle type as written in a catalog or seed file.
// Prices are strings so they are parsed as exact decimals, never floats.
type VehicleTypeRecord struct {
	ID              int    `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Capacity        int    `json:"capacity" yaml:"capacity"`
	LuggageCapacity int    `json:"luggage_capacity" yaml:"luggage_capacity"`
	PricePerDay     string `json:"price_per_day" yaml:"price_per_day"`
	Active          *bool  `json:"active" yaml:"active"`
}

type catalogDocument struct {
	VehicleTypes []VehicleTypeRecord `json:"vehicle_types" yaml:"vehicle_types"`
}

// Parse catalog bytes. The format is picked from the file extension:
// ".json" is JSON, anything else is YAML. Both a top-level list and a
// {vehicle_types: [...]} document are accepted.
func Parse(name string, data []byte) ([]domain.VehicleType, error) {
	records, err := decodeRecords(name, data)
	if err != nil {
		return nil, err
	}

	out := make([]domain.VehicleType, 0, len(records))
	seen := make(map[int]struct{}, len(records))
	for i, r := range records {
		vt, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("parse catalog %q: item at index %d: %w", name, i, err)
		}
		if _, dup := seen[vt.ID]; dup {
			return nil, fmt.Errorf("parse catalog %q: duplicate vehicle type id %d", name, vt.ID)
		}
		seen[vt.ID] = struct{}{}
		out = append(out, vt)
	}

	return out, nil
}

// Read and parse a catalog file.
func Load(path string) ([]domain.VehicleType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: read %q: %w", path, err)
	}
	return Parse(path, data)
}

func decodeRecords(name string, data []byte) ([]VehicleTypeRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("parse catalog %q: file is empty", name)
	}

	var records []VehicleTypeRecord
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &records); err != nil {
				return nil, fmt.Errorf("parse catalog %q: parse json: %w", name, err)
			}
			return records, nil
		}
		var doc catalogDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("parse catalog %q: parse json: %w", name, err)
		}
		return doc.VehicleTypes, nil
	}

	if err := yaml.Unmarshal(trimmed, &records); err == nil {
		return records, nil
	}
	var doc catalogDocument
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog %q: parse yaml: %w", name, err)
	}
	return doc.VehicleTypes, nil
}

func (r VehicleTypeRecord) toDomain() (domain.VehicleType, error) {
	price := strings.TrimSpace(r.PricePerDay)
	if price == "" {
		return domain.VehicleType{}, errors.New("price_per_day is required")
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return domain.VehicleType{}, fmt.Errorf("price_per_day %q: %w", r.PricePerDay, err)
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	vt := domain.VehicleType{
		ID:              r.ID,
		Name:            strings.TrimSpace(r.Name),
		Capacity:        r.Capacity,
		LuggageCapacity: r.LuggageCapacity,
		PricePerDay:     p,
		Active:          active,
	}
	// Inactive entries never reach the optimizer; pricing still reads them as stored.
	if vt.Active {
		if err := vt.Validate(); err != nil {
			return domain.VehicleType{}, err
		}
	}

	return vt, nil
}

// File-backed implementation of the VehicleTypeRepository port.
// The file is re-read on every call so edits are picked up without a restart.
type FileVehicleTypeRepository struct{ Path string }

func NewFileVehicleTypeRepository(path string) *FileVehicleTypeRepository {
	return &FileVehicleTypeRepository{Path: path}
}

func (f *FileVehicleTypeRepository) ListVehicleTypes(ctx context.Context) ([]domain.VehicleType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file vehicle type repository: path is empty")
	}
	return Load(f.Path)
}
