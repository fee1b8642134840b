package accqsure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentsGet(t *testing.T) {
	id := uuid.NewString()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/document/"+id, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"entity_id": %q, "name": "SOP", "doc_id": "SOP-001", "status": "active"}`, id)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	doc, err := client.Documents.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.EntityID)
	assert.Equal(t, "SOP", doc.Name)
	assert.Equal(t, "SOP-001", doc.DocID)
	assert.Equal(t, "active", doc.Status)
}

func TestDocumentsList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/document", r.URL.Path)
		assert.Equal(t, "dt-1", r.URL.Query().Get("document_type_id"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"results": [{"entity_id": "a"}, {"entity_id": "b"}], "last_key": "cursor-1"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	docs, lastKey, err := client.Documents.List(context.Background(), "dt-1", 10, "")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].EntityID)
	assert.Equal(t, "cursor-1", lastKey)
}

func TestDocumentsListAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dt-1", r.URL.Query().Get("document_type_id"))
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("start_key") == "" {
			fmt.Fprintf(w, `{"results": [{"entity_id": "a"}], "last_key": "next"}`)
			return
		}
		fmt.Fprintf(w, `{"results": [{"entity_id": "b"}]}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	docs, err := client.Documents.ListAll(context.Background(), "dt-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[1].EntityID)
}

func TestDocumentsCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SOP", body["name"])
		assert.Equal(t, "dt-1", body["document_type_id"])
		assert.Equal(t, "SOP-001", body["doc_id"])
		assert.Equal(t, "draft", body["status"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"entity_id": "doc-1", "name": "SOP"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	doc, err := client.Documents.Create(context.Background(), CreateDocumentInput{
		DocumentTypeID: "dt-1",
		Name:           "SOP",
		DocID:          "SOP-001",
		Attributes:     map[string]interface{}{"status": "draft", "skip": nil},
	})
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.EntityID)
}

func TestDocumentRename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/document/doc-1", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Renamed", body["name"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"entity_id": "doc-1", "name": "Renamed"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	doc := &Document{client: client, EntityID: "doc-1", Name: "SOP"}
	require.NoError(t, doc.Rename(context.Background(), "Renamed"))
	assert.Equal(t, "Renamed", doc.Name)
}

func TestDocumentGetContentsRequiresUpload(t *testing.T) {
	client := newTestClient(t, "http://unreachable.invalid")

	doc := &Document{client: client, EntityID: "doc-1"}
	_, err := doc.GetContents(context.Background())
	require.Error(t, err)

	var specErr *SpecificationError
	require.ErrorAs(t, err, &specErr)
	assert.Equal(t, "content_id", specErr.Attribute)
	assert.Contains(t, err.Error(), "Content not uploaded for document")
}

func TestDocumentSetContents(t *testing.T) {
	var uploaded bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost:
			assert.Equal(t, "/v1/document/doc-1/asset/", r.URL.Path)
			assert.Equal(t, "sop.md", r.URL.Query().Get("file_name"))
			assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
			uploaded = true
			fmt.Fprintf(w, `{"asset_id": "asset-1"}`)
		case r.Method == http.MethodPut:
			assert.Equal(t, "/v1/document/doc-1", r.URL.Path)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "asset-1", body["content_id"])
			fmt.Fprintf(w, `{"entity_id": "doc-1", "content_id": "asset-1"}`)
		default:
			t.Errorf("unexpected %s request", r.Method)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	doc := &Document{client: client, EntityID: "doc-1"}
	require.NoError(t, doc.SetContents(context.Background(), "sop.md", "# SOP"))
	assert.True(t, uploaded)
	assert.Equal(t, "asset-1", doc.ContentID)
}

func TestDocumentsMarkdownConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/document/markdown", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sop", body["name"])
		assert.Equal(t, "pdf", body["file_type"])
		assert.NotEmpty(t, body["base64_contents"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"markdown": "# Converted"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	markdown, err := client.Documents.MarkdownConvert(context.Background(), "sop", "pdf", "ZGF0YQ==")
	require.NoError(t, err)
	assert.Equal(t, "# Converted", markdown)
}

func TestDocumentsMarkdownConvertStringResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `"# Converted"`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	markdown, err := client.Documents.MarkdownConvert(context.Background(), "sop", "pdf", "ZGF0YQ==")
	require.NoError(t, err)
	assert.Equal(t, "# Converted", markdown)
}
