package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backoffice-kit/backoffice/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Seed is the initial content of a store, loaded from a YAML or JSON file.
type Seed struct {
	Owners []schema.Owner        `json:"owners" yaml:"owners"`
	Audit  []schema.AuditLogItem `json:"audit,omitempty" yaml:"audit,omitempty"`
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DefaultOwners returns the demo owners the API starts with.
func DefaultOwners() []schema.Owner {
	return []schema.Owner{
		{ID: "1", Name: "Sarah Johnson", Email: "sarah.johnson@example.com", OwnershipPercentage: 45, Role: schema.RoleCEO, CreatedAt: date(2023, time.January, 15), UpdatedAt: date(2023, time.January, 15)},
		{ID: "2", Name: "Michael Chen", Email: "michael.chen@example.com", OwnershipPercentage: 30, Role: schema.RoleCTO, CreatedAt: date(2023, time.February, 20), UpdatedAt: date(2023, time.February, 20)},
		{ID: "3", Name: "Emily Rodriguez", Email: "emily.rodriguez@example.com", OwnershipPercentage: 15, Role: schema.RoleCFO, CreatedAt: date(2023, time.March, 10), UpdatedAt: date(2023, time.March, 10)},
		{ID: "4", Name: "David Kim", Email: "david.kim@example.com", OwnershipPercentage: 10, Role: schema.RoleShareholder, CreatedAt: date(2023, time.April, 5), UpdatedAt: date(2023, time.April, 5)},
	}
}

// DefaultSeed is the demo owners plus one CREATE entry per owner.
func DefaultSeed() Seed {
	owners := DefaultOwners()
	audit := make([]schema.AuditLogItem, 0, len(owners))
	for _, o := range owners {
		audit = append(audit, schema.AuditLogItem{
			ID:         "seed-" + o.ID,
			Timestamp:  o.CreatedAt,
			UserID:     schema.SystemActor.ID,
			UserName:   schema.SystemActor.Name,
			Action:     schema.AuditCreate,
			EntityType: schema.EntityOwner,
			EntityID:   o.ID,
			Changes:    diffOwners(nil, &o),
		})
	}
	return Seed{Owners: owners, Audit: audit}
}

// LoadSeed reads a seed file. Files ending in .json are decoded as JSON,
// anything else as YAML.
func LoadSeed(path string) (Seed, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
	}

	var seed Seed
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &seed)
	} else {
		err = yaml.Unmarshal(content, &seed)
	}
	if err != nil {
		return Seed{}, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return seed, nil
}

// SaveSeed writes seed to path atomically: a temporary file is written
// first and then renamed over the target.
func SaveSeed(path string, seed Seed) error {
	var (
		content []byte
		err     error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		content, err = json.MarshalIndent(seed, "", "  ")
	} else {
		content, err = yaml.Marshal(seed)
	}
	if err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}

// NewSeededStore builds an audited store from seed.
func NewSeededStore(seed Seed, opts ...Option) *AuditedStore {
	return NewAuditedStore(NewMemStore(seed.Owners, opts...), NewAuditLog(seed.Audit, opts...))
}
