package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/peaksport/vitrina/internal/catalog"
	"github.com/peaksport/vitrina/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient(5 * time.Second)
}

func listRequest(endpoint string) query.Request {
	return query.Build(endpoint, query.Params{Page: 1, PerPage: 20})
}

func TestListSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"id": 1, "name": "Trail Runner", "price_minor_units": 1250000, "currency": "COP", "active": true, "stock": 12},
				{"id": 2, "name": "City Walker", "price_minor_units": 890000, "active": false, "stock": 2}
			],
			"total": 45
		}`))
	}))
	defer srv.Close()

	page, err := List[catalog.Product](context.Background(), testClient(), listRequest(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, 45, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Trail Runner", page.Items[0].Name)
	assert.Equal(t, int64(1250000), page.Items[0].PriceMinorUnits)
}

func TestListTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := List[catalog.Product](context.Background(), testClient(), listRequest(srv.URL))
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, kind)
}

func TestListUnreachable(t *testing.T) {
	_, err := List[catalog.Product](context.Background(), testClient(),
		listRequest("http://127.0.0.1:1/nothing"))
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, kind)
}

func TestListDecodeFailure(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"missing items", `{"total": 4}`},
		{"missing total", `{"items": []}`},
		{"negative total", `{"items": [], "total": -1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := List[catalog.Product](context.Background(), testClient(), listRequest(srv.URL))
			require.Error(t, err)
			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, KindDecode, kind)
		})
	}
}

func TestListNotConfigured(t *testing.T) {
	_, err := List[catalog.Product](context.Background(), testClient(), query.Request{})
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindNotConfigured, kind)
}

func TestDeleteSuccess(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	err := testClient().Delete(context.Background(), srv.URL+"/api/productos/{id}", "42")
	require.NoError(t, err)
	assert.Equal(t, "/api/productos/42", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestMutationApplicationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "Producto no encontrado"}`))
	}))
	defer srv.Close()

	err := testClient().Delete(context.Background(), srv.URL+"/{id}", "42")
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindApplication, kind)
	// The server message is surfaced verbatim.
	assert.Equal(t, "Producto no encontrado", UserMessage(err, "fallback"))
}

func TestUpdateQuantityBody(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody = make([]byte, r.ContentLength)
		r.Body.Read(gotBody)
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	err := testClient().UpdateQuantity(context.Background(), srv.URL+"/cart/update/{id}", "9", 3)
	require.NoError(t, err)
	assert.JSONEq(t, `{"quantity": 3}`, string(gotBody))
}

func TestSubmitReviewBody(t *testing.T) {
	var gotBody []byte
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody = make([]byte, r.ContentLength)
		r.Body.Read(gotBody)
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"success": true, "message": "Reseña creada"}`))
	}))
	defer srv.Close()

	err := testClient().SubmitReview(context.Background(), srv.URL+"/productos/{id}/resenas", "5", 4, "solid build quality")
	require.NoError(t, err)
	assert.Equal(t, "/productos/5/resenas", gotPath)
	assert.JSONEq(t, `{"rating": 4, "comment": "solid build quality"}`, string(gotBody))
}

func TestUserMessageFallback(t *testing.T) {
	err := &Error{Kind: KindTransport}
	assert.Equal(t, "fallback", UserMessage(err, "fallback"))
}

func TestExpandTemplate(t *testing.T) {
	assert.Equal(t, "/api/x/7", ExpandTemplate("/api/x/{id}", "7"))
	assert.Equal(t, "/api/x/a%2Fb", ExpandTemplate("/api/x/{id}", "a/b"))
}
