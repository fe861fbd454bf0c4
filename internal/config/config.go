// Package config holds the endpoint bindings and UI preferences for
// the client. Configuration comes from a JSON file with environment
// overrides; a missing admin binding fails loudly, once, at first use.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peaksport/vitrina/internal/logging"
)

// Config is the persistent application configuration.
type Config struct {
	// APIBase is the backend root, e.g. http://localhost:5000.
	APIBase string `json:"api_base"`

	// Endpoints override the defaults derived from APIBase.
	Endpoints Endpoints `json:"endpoints"`

	// UI preferences
	UI UIConfig `json:"ui"`

	// SnapshotPath is the sqlite file backing the offline catalog
	// snapshot. Empty means the default under ~/.vitrina.
	SnapshotPath string `json:"snapshot_path"`
}

// Endpoints are the URL bindings the client needs. Templates use {id}
// for the target identifier.
type Endpoints struct {
	ProductList   string `json:"product_list"`
	ProductDetail string `json:"product_detail"`
	ProductDelete string `json:"product_delete"`
	ProductEdit   string `json:"product_edit"` // navigation URL, not an API call
	Cart          string `json:"cart"`
	CartUpdate    string `json:"cart_update"`
	CartRemove    string `json:"cart_remove"`
	ReviewList    string `json:"review_list"`
	ReviewCreate  string `json:"review_create"`
}

// UIConfig holds UI preferences.
type UIConfig struct {
	PerPage     int    `json:"per_page"`
	DefaultView string `json:"default_view"` // "table" or "grid"
}

// DefaultConfig returns defaults with endpoints derived from base.
func DefaultConfig(base string) *Config {
	base = strings.TrimRight(base, "/")
	return &Config{
		APIBase: base,
		Endpoints: Endpoints{
			ProductList:   base + "/api/productos/list",
			ProductDetail: base + "/api/productos/{id}",
			ProductDelete: base + "/api/productos/{id}",
			ProductEdit:   base + "/administrador/principal/productos/{id}/editar",
			Cart:          base + "/cart/api/cart",
			CartUpdate:    base + "/cart/api/cart/update/{id}",
			CartRemove:    base + "/cart/api/cart/remove/{id}",
			ReviewList:    base + "/api/resenas/productos/{id}/resenas",
			ReviewCreate:  base + "/api/resenas/productos/{id}/resenas",
		},
		UI: UIConfig{
			PerPage:     20,
			DefaultView: "table",
		},
	}
}

// Path returns the path to the config file.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vitrina", "config.json")
}

// Load reads config from disk, or returns defaults. Environment
// variables override in either case.
func Load() (*Config, error) {
	cfg := DefaultConfig(envOr("VITRINA_API_BASE", "http://localhost:5000"))

	data, err := os.ReadFile(Path())
	if err == nil {
		var fileCfg Config
		if jsonErr := json.Unmarshal(data, &fileCfg); jsonErr != nil {
			return nil, fmt.Errorf("parse %s: %w", Path(), jsonErr)
		}
		merge(cfg, &fileCfg)
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	if cfg.UI.PerPage < 1 {
		cfg.UI.PerPage = 20
	}
	if cfg.SnapshotPath == "" {
		home, _ := os.UserHomeDir()
		cfg.SnapshotPath = filepath.Join(home, ".vitrina", "catalog.db")
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func merge(dst, src *Config) {
	if src.APIBase != "" {
		*dst = *DefaultConfig(src.APIBase)
	}
	overrideEndpoints(&dst.Endpoints, &src.Endpoints)
	if src.UI.PerPage > 0 {
		dst.UI.PerPage = src.UI.PerPage
	}
	if src.UI.DefaultView != "" {
		dst.UI.DefaultView = src.UI.DefaultView
	}
	if src.SnapshotPath != "" {
		dst.SnapshotPath = src.SnapshotPath
	}
}

func overrideEndpoints(dst, src *Endpoints) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.ProductList, src.ProductList)
	set(&dst.ProductDetail, src.ProductDetail)
	set(&dst.ProductDelete, src.ProductDelete)
	set(&dst.ProductEdit, src.ProductEdit)
	set(&dst.Cart, src.Cart)
	set(&dst.CartUpdate, src.CartUpdate)
	set(&dst.CartRemove, src.CartRemove)
	set(&dst.ReviewList, src.ReviewList)
	set(&dst.ReviewCreate, src.ReviewCreate)
}

func (c *Config) applyEnv() {
	if base := os.Getenv("VITRINA_API_BASE"); base != "" && c.APIBase != strings.TrimRight(base, "/") {
		endpoints := c.Endpoints
		*c = *DefaultConfig(base)
		overrideEndpoints(&c.Endpoints, &endpoints)
	}
	if v := os.Getenv("VITRINA_PRODUCT_LIST_URL"); v != "" {
		c.Endpoints.ProductList = v
	}
	if v := os.Getenv("VITRINA_PRODUCT_DELETE_URL"); v != "" {
		c.Endpoints.ProductDelete = v
	}
	if v := os.Getenv("VITRINA_SNAPSHOT_PATH"); v != "" {
		c.SnapshotPath = v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var adminCheckOnce sync.Once

// RequireAdmin verifies the bindings the admin flow cannot run
// without. The failure is logged loudly exactly once; read-only flows
// skip this and degrade to the snapshot instead.
func (c *Config) RequireAdmin() error {
	var missing []string
	if c.Endpoints.ProductList == "" {
		missing = append(missing, "product_list")
	}
	if c.Endpoints.ProductDelete == "" {
		missing = append(missing, "product_delete")
	}
	if c.Endpoints.ProductEdit == "" {
		missing = append(missing, "product_edit")
	}
	if len(missing) == 0 {
		return nil
	}
	err := fmt.Errorf("missing required endpoint bindings: %s", strings.Join(missing, ", "))
	adminCheckOnce.Do(func() {
		logging.Error("admin flow not configured", "missing", strings.Join(missing, ", "))
	})
	return err
}
