package accqsure

import (
	"context"
	"fmt"
)

// Documents manages document resources.
type Documents struct {
	client *Client
}

// Document is a controlled document tracked by the service.
type Document struct {
	client *Client

	EntityID       string `mapstructure:"entity_id"`
	DocumentTypeID string `mapstructure:"document_type_id"`
	Name           string `mapstructure:"name"`
	Status         string `mapstructure:"status"`
	DocID          string `mapstructure:"doc_id"`
	ContentID      string `mapstructure:"content_id"`
	CreatedAt      string `mapstructure:"created_at"`
	UpdatedAt      string `mapstructure:"updated_at"`
}

// CreateDocumentInput holds the fields for Documents.Create. Attributes is
// merged into the request body for optional server-side fields.
type CreateDocumentInput struct {
	DocumentTypeID string
	Name           string
	DocID          string
	Attributes     map[string]interface{}
}

func (d *Documents) documentFromAPI(payload interface{}) (*Document, error) {
	if payload == nil {
		return nil, nil
	}
	doc := &Document{client: d.client}
	if err := decodeEntity(payload, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get fetches a document by id.
func (d *Documents) Get(ctx context.Context, id string) (*Document, error) {
	resp, err := d.client.query(ctx, "GET", "/document/"+id, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return d.documentFromAPI(resp)
}

// List returns one page of documents for a document type, along with the
// cursor for the next page ("" when exhausted).
func (d *Documents) List(ctx context.Context, documentTypeID string, limit int, startKey string) ([]*Document, string, error) {
	params := map[string]interface{}{
		"document_type_id": documentTypeID,
	}
	if limit > 0 {
		params["limit"] = limit
	}
	if startKey != "" {
		params["start_key"] = startKey
	}

	resp, err := d.client.query(ctx, "GET", "/document", params, nil, nil)
	if err != nil {
		return nil, "", err
	}

	page, ok := resp.(map[string]interface{})
	if !ok {
		return nil, "", fmt.Errorf("unexpected document listing shape")
	}

	results, _ := page["results"].([]interface{})
	documents := make([]*Document, 0, len(results))
	for _, item := range results {
		doc, err := d.documentFromAPI(item)
		if err != nil {
			return nil, "", err
		}
		documents = append(documents, doc)
	}

	lastKey, _ := page["last_key"].(string)
	return documents, lastKey, nil
}

// ListAll drains every page of documents for a document type.
func (d *Documents) ListAll(ctx context.Context, documentTypeID string) ([]*Document, error) {
	results, err := d.client.queryAll(ctx, "GET", "/document", map[string]interface{}{
		"document_type_id": documentTypeID,
	})
	if err != nil {
		return nil, err
	}

	documents := make([]*Document, 0, len(results))
	for _, item := range results {
		doc, err := d.documentFromAPI(item)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}
	return documents, nil
}

// Create registers a new document.
func (d *Documents) Create(ctx context.Context, input CreateDocumentInput) (*Document, error) {
	body := map[string]interface{}{
		"name":             input.Name,
		"document_type_id": input.DocumentTypeID,
		"doc_id":           input.DocID,
	}
	for k, v := range input.Attributes {
		if v != nil {
			body[k] = v
		}
	}

	d.client.logger.Info("creating document", "name", input.Name)

	resp, err := d.client.query(ctx, "POST", "/document", nil, body, nil)
	if err != nil {
		return nil, err
	}

	doc, err := d.documentFromAPI(resp)
	if err != nil {
		return nil, err
	}

	d.client.logger.Info("created document", "name", input.Name, "id", doc.EntityID)
	return doc, nil
}

// Remove deletes a document by id.
func (d *Documents) Remove(ctx context.Context, id string) error {
	_, err := d.client.query(ctx, "DELETE", "/document/"+id, nil, nil, nil)
	return err
}

// MarkdownConvert converts an uploaded file (base64-encoded) to markdown.
func (d *Documents) MarkdownConvert(ctx context.Context, title, fileType, base64Contents string) (string, error) {
	resp, err := d.client.query(ctx, "POST", "/document/markdown", nil, map[string]interface{}{
		"name":            title,
		"file_type":       fileType,
		"base64_contents": base64Contents,
	}, nil)
	if err != nil {
		return "", err
	}

	switch v := resp.(type) {
	case string:
		return v, nil
	case map[string]interface{}:
		if markdown, ok := v["markdown"].(string); ok {
			return markdown, nil
		}
	}
	return "", fmt.Errorf("unexpected markdown conversion response")
}

// Refresh re-reads the document from the API.
func (doc *Document) Refresh(ctx context.Context) error {
	resp, err := doc.client.query(ctx, "GET", "/document/"+doc.EntityID, nil, nil, nil)
	if err != nil {
		return err
	}
	return decodeEntity(resp, doc)
}

// Rename changes the document's display name.
func (doc *Document) Rename(ctx context.Context, name string) error {
	resp, err := doc.client.query(ctx, "PUT", "/document/"+doc.EntityID, nil, map[string]interface{}{
		"name": name,
	}, nil)
	if err != nil {
		return err
	}
	return decodeEntity(resp, doc)
}

// Remove deletes the document.
func (doc *Document) Remove(ctx context.Context) error {
	_, err := doc.client.query(ctx, "DELETE", "/document/"+doc.EntityID, nil, nil, nil)
	return err
}

// GetContents downloads the document's uploaded content. The result follows
// the query contract: a string for text content, raw bytes otherwise.
func (doc *Document) GetContents(ctx context.Context) (interface{}, error) {
	if doc.ContentID == "" {
		return nil, &SpecificationError{
			Attribute: "content_id",
			Message:   "Content not uploaded for document",
		}
	}
	return doc.client.query(ctx, "GET", fmt.Sprintf("/document/%s/asset/%s", doc.EntityID, doc.ContentID), nil, nil, nil)
}

// SetContents uploads plain-text contents as the document's asset and points
// the document's content id at it.
func (doc *Document) SetContents(ctx context.Context, fileName, contents string) error {
	resp, err := doc.client.query(ctx, "POST", fmt.Sprintf("/document/%s/asset/", doc.EntityID),
		map[string]interface{}{"file_name": fileName},
		contents,
		map[string]string{"Content-Type": "text/plain"},
	)
	if err != nil {
		return err
	}

	upload, ok := resp.(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected asset upload response")
	}
	assetID, _ := upload["asset_id"].(string)

	updated, err := doc.client.query(ctx, "PUT", "/document/"+doc.EntityID, nil, map[string]interface{}{
		"content_id": assetID,
	}, nil)
	if err != nil {
		return err
	}
	return decodeEntity(updated, doc)
}
