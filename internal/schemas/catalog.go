package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/jobboard/internal/types"
)

//go:embed data/jobs.json data/job_catalog.schema.json
var files embed.FS

const (
	catalogSchemaFile  = "data/job_catalog.schema.json"
	defaultCatalogFile = "data/jobs.json"
)

// CatalogSchema returns the JSON Schema every job catalog must satisfy.
func CatalogSchema() []byte {
	b, err := files.ReadFile(catalogSchemaFile)
	if err != nil {
		panic(fmt.Sprintf("embedded %s missing: %v", catalogSchemaFile, err))
	}
	return b
}

// ParseCatalog validates data against the catalog schema and decodes it.
func ParseCatalog(data []byte) ([]types.CreateJobRequest, error) {
	if err := Validate("job_catalog", CatalogSchema(), data); err != nil {
		return nil, err
	}

	var jobs []types.CreateJobRequest
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode job catalog: %w", err)
	}
	return jobs, nil
}

// LoadCatalogFile reads and parses a catalog from disk.
func LoadCatalogFile(path string) ([]types.CreateJobRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job catalog: %w", err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the built-in postings used to seed an empty catalog.
func DefaultCatalog() ([]types.CreateJobRequest, error) {
	data, err := files.ReadFile(defaultCatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read default catalog: %w", err)
	}
	return ParseCatalog(data)
}
