package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDerivesEndpoints(t *testing.T) {
	cfg := DefaultConfig("http://localhost:5000/")

	assert.Equal(t, "http://localhost:5000", cfg.APIBase, "trailing slash is trimmed")
	assert.Equal(t, "http://localhost:5000/api/productos/list", cfg.Endpoints.ProductList)
	assert.Equal(t, "http://localhost:5000/api/productos/{id}", cfg.Endpoints.ProductDetail)
	assert.Equal(t, "http://localhost:5000/api/productos/{id}", cfg.Endpoints.ProductDelete)
	assert.Equal(t, "http://localhost:5000/cart/api/cart/update/{id}", cfg.Endpoints.CartUpdate)
	assert.Equal(t, "http://localhost:5000/api/resenas/productos/{id}/resenas", cfg.Endpoints.ReviewList)
	assert.Equal(t, 20, cfg.UI.PerPage)
	assert.Equal(t, "table", cfg.UI.DefaultView)
}

func TestMergeKeepsDefaultsForEmptyFields(t *testing.T) {
	dst := DefaultConfig("http://localhost:5000")
	src := &Config{
		Endpoints: Endpoints{ProductList: "http://other/api/list"},
		UI:        UIConfig{PerPage: 50},
	}
	merge(dst, src)

	assert.Equal(t, "http://other/api/list", dst.Endpoints.ProductList)
	assert.Equal(t, "http://localhost:5000/api/productos/{id}", dst.Endpoints.ProductDelete,
		"unset fields keep the derived default")
	assert.Equal(t, 50, dst.UI.PerPage)
	assert.Equal(t, "table", dst.UI.DefaultView)
}

func TestMergeRebasesOnNewAPIBase(t *testing.T) {
	dst := DefaultConfig("http://localhost:5000")
	merge(dst, &Config{APIBase: "https://store.example.com"})

	assert.Equal(t, "https://store.example.com/api/productos/list", dst.Endpoints.ProductList)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("VITRINA_PRODUCT_LIST_URL", "http://env/list")
	t.Setenv("VITRINA_SNAPSHOT_PATH", "/tmp/snap.db")

	cfg := DefaultConfig("http://localhost:5000")
	cfg.applyEnv()

	assert.Equal(t, "http://env/list", cfg.Endpoints.ProductList)
	assert.Equal(t, "/tmp/snap.db", cfg.SnapshotPath)
}

func TestRequireAdmin(t *testing.T) {
	require.NoError(t, DefaultConfig("http://localhost:5000").RequireAdmin())

	cfg := &Config{Endpoints: Endpoints{ProductList: "http://x/list"}}
	err := cfg.RequireAdmin()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product_delete")
	assert.Contains(t, err.Error(), "product_edit")
	assert.NotContains(t, err.Error(), "product_list,", "bound endpoints are not reported missing")
}
