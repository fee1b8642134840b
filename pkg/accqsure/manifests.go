package accqsure

import (
	"context"
	"fmt"
)

// Manifests manages inspection manifest resources. A manifest is a named
// set of checks, optionally anchored to a reference document.
type Manifests struct {
	client *Client
}

// ReferenceDocument is the document a manifest's checks are written
// against.
type ReferenceDocument struct {
	EntityID  string `mapstructure:"entity_id"`
	DocID     string `mapstructure:"doc_id"`
	Name      string `mapstructure:"name"`
	ContentID string `mapstructure:"content_id"`
}

// Manifest is a collection of checks applied during inspections.
type Manifest struct {
	client *Client

	EntityID          string             `mapstructure:"entity_id"`
	Name              string             `mapstructure:"name"`
	DocumentTypeID    string             `mapstructure:"document_type_id"`
	ReferenceDocument *ReferenceDocument `mapstructure:"reference_document"`
	CreatedAt         string             `mapstructure:"created_at"`
	UpdatedAt         string             `mapstructure:"updated_at"`
}

// ManifestCheck is a single prompt-driven check within a manifest.
type ManifestCheck struct {
	client *Client

	EntityID   string `mapstructure:"entity_id"`
	ManifestID string `mapstructure:"manifest_id"`
	Name       string `mapstructure:"name"`
	Prompt     string `mapstructure:"prompt"`
	Section    string `mapstructure:"section"`
	CreatedAt  string `mapstructure:"created_at"`
	UpdatedAt  string `mapstructure:"updated_at"`
}

func (m *Manifests) manifestFromAPI(payload interface{}) (*Manifest, error) {
	if payload == nil {
		return nil, nil
	}
	manifest := &Manifest{client: m.client}
	if err := decodeEntity(payload, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) checkFromAPI(payload interface{}) (*ManifestCheck, error) {
	if payload == nil {
		return nil, nil
	}
	check := &ManifestCheck{client: m.client}
	if err := decodeEntity(payload, check); err != nil {
		return nil, err
	}
	return check, nil
}

// Get fetches a manifest by id.
func (m *Manifests) Get(ctx context.Context, id string) (*Manifest, error) {
	resp, err := m.client.query(ctx, "GET", "/manifest/"+id, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return m.manifestFromAPI(resp)
}

// GetGlobal fetches the organization-wide global manifest.
func (m *Manifests) GetGlobal(ctx context.Context) (*Manifest, error) {
	resp, err := m.client.query(ctx, "GET", "/manifest/global", nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return m.manifestFromAPI(resp)
}

// List returns one page of manifests and the cursor for the next page.
func (m *Manifests) List(ctx context.Context, limit int, startKey string) ([]*Manifest, string, error) {
	params := map[string]interface{}{}
	if limit > 0 {
		params["limit"] = limit
	}
	if startKey != "" {
		params["start_key"] = startKey
	}

	resp, err := m.client.query(ctx, "GET", "/manifest", params, nil, nil)
	if err != nil {
		return nil, "", err
	}

	page, ok := resp.(map[string]interface{})
	if !ok {
		return nil, "", fmt.Errorf("unexpected manifest listing shape")
	}

	results, _ := page["results"].([]interface{})
	manifests := make([]*Manifest, 0, len(results))
	for _, item := range results {
		manifest, err := m.manifestFromAPI(item)
		if err != nil {
			return nil, "", err
		}
		manifests = append(manifests, manifest)
	}

	lastKey, _ := page["last_key"].(string)
	return manifests, lastKey, nil
}

// ListAll drains every page of manifests.
func (m *Manifests) ListAll(ctx context.Context) ([]*Manifest, error) {
	results, err := m.client.queryAll(ctx, "GET", "/manifest", nil)
	if err != nil {
		return nil, err
	}

	manifests := make([]*Manifest, 0, len(results))
	for _, item := range results {
		manifest, err := m.manifestFromAPI(item)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, manifest)
	}
	return manifests, nil
}

// Create registers a new manifest for a document type.
func (m *Manifests) Create(ctx context.Context, name, documentTypeID string) (*Manifest, error) {
	resp, err := m.client.query(ctx, "POST", "/manifest", nil, map[string]interface{}{
		"name":             name,
		"document_type_id": documentTypeID,
	}, nil)
	if err != nil {
		return nil, err
	}
	return m.manifestFromAPI(resp)
}

// Remove deletes a manifest by id.
func (m *Manifests) Remove(ctx context.Context, id string) error {
	_, err := m.client.query(ctx, "DELETE", "/manifest/"+id, nil, nil, nil)
	return err
}

// Refresh re-reads the manifest from the API.
func (m *Manifest) Refresh(ctx context.Context) error {
	resp, err := m.client.query(ctx, "GET", "/manifest/"+m.EntityID, nil, nil, nil)
	if err != nil {
		return err
	}
	// Reset the nested reference so a payload without one doesn't leave a
	// stale document behind.
	m.ReferenceDocument = nil
	return decodeEntity(resp, m)
}

// Rename changes the manifest's display name.
func (m *Manifest) Rename(ctx context.Context, name string) error {
	resp, err := m.client.query(ctx, "PUT", "/manifest/"+m.EntityID, nil, map[string]interface{}{
		"name": name,
	}, nil)
	if err != nil {
		return err
	}
	return decodeEntity(resp, m)
}

// Remove deletes the manifest.
func (m *Manifest) Remove(ctx context.Context) error {
	_, err := m.client.query(ctx, "DELETE", "/manifest/"+m.EntityID, nil, nil, nil)
	return err
}

// referenceContentPath guards access to the reference document's asset.
func (m *Manifest) referenceContentPath() (string, error) {
	if m.ReferenceDocument == nil || m.ReferenceDocument.EntityID == "" {
		return "", &SpecificationError{
			Attribute: "reference_document",
			Message:   "Reference document not found for manifest",
		}
	}
	if m.ReferenceDocument.ContentID == "" {
		return "", &SpecificationError{
			Attribute: "content_id",
			Message:   "Content not uploaded for manifest reference document",
		}
	}
	return fmt.Sprintf("/document/%s/asset/%s", m.ReferenceDocument.EntityID, m.ReferenceDocument.ContentID), nil
}

// GetReferenceContents downloads the manifest's reference document content.
func (m *Manifest) GetReferenceContents(ctx context.Context) (interface{}, error) {
	path, err := m.referenceContentPath()
	if err != nil {
		return nil, err
	}
	return m.client.query(ctx, "GET", path, nil, nil, nil)
}

// GetReferenceContentItem downloads a named item from the reference
// document's content bundle.
func (m *Manifest) GetReferenceContentItem(ctx context.Context, name string) (interface{}, error) {
	path, err := m.referenceContentPath()
	if err != nil {
		return nil, err
	}
	return m.client.query(ctx, "GET", path+"/"+name, nil, nil, nil)
}

// ListChecks returns one page of the manifest's checks and the cursor for
// the next page.
func (m *Manifest) ListChecks(ctx context.Context, limit int, startKey string) ([]*ManifestCheck, string, error) {
	params := map[string]interface{}{}
	if limit > 0 {
		params["limit"] = limit
	}
	if startKey != "" {
		params["start_key"] = startKey
	}

	resp, err := m.client.query(ctx, "GET", fmt.Sprintf("/manifest/%s/check", m.EntityID), params, nil, nil)
	if err != nil {
		return nil, "", err
	}

	page, ok := resp.(map[string]interface{})
	if !ok {
		return nil, "", fmt.Errorf("unexpected manifest check listing shape")
	}

	results, _ := page["results"].([]interface{})
	checks := make([]*ManifestCheck, 0, len(results))
	for _, item := range results {
		check, err := m.checkFromAPI(item)
		if err != nil {
			return nil, "", err
		}
		checks = append(checks, check)
	}

	lastKey, _ := page["last_key"].(string)
	return checks, lastKey, nil
}

// CreateCheck adds a check to the manifest.
func (m *Manifest) CreateCheck(ctx context.Context, name, prompt, section string) (*ManifestCheck, error) {
	body := map[string]interface{}{
		"name":   name,
		"prompt": prompt,
	}
	if section != "" {
		body["section"] = section
	}

	resp, err := m.client.query(ctx, "POST", fmt.Sprintf("/manifest/%s/check", m.EntityID), nil, body, nil)
	if err != nil {
		return nil, err
	}
	return m.checkFromAPI(resp)
}

// RemoveCheck deletes a check from the manifest.
func (m *Manifest) RemoveCheck(ctx context.Context, checkID string) error {
	_, err := m.client.query(ctx, "DELETE", fmt.Sprintf("/manifest/%s/check/%s", m.EntityID, checkID), nil, nil, nil)
	return err
}

func (mc *ManifestCheck) path() string {
	return fmt.Sprintf("/manifest/%s/check/%s", mc.ManifestID, mc.EntityID)
}

// Update changes mutable check fields; nil entries are dropped.
func (mc *ManifestCheck) Update(ctx context.Context, fields map[string]interface{}) error {
	body := map[string]interface{}{}
	for k, v := range fields {
		if v != nil {
			body[k] = v
		}
	}

	resp, err := mc.client.query(ctx, "PUT", mc.path(), nil, body, nil)
	if err != nil {
		return err
	}
	return decodeEntity(resp, mc)
}

// Refresh re-reads the check from the API.
func (mc *ManifestCheck) Refresh(ctx context.Context) error {
	resp, err := mc.client.query(ctx, "GET", mc.path(), nil, nil, nil)
	if err != nil {
		return err
	}
	return decodeEntity(resp, mc)
}

// Remove deletes the check.
func (mc *ManifestCheck) Remove(ctx context.Context) error {
	_, err := mc.client.query(ctx, "DELETE", mc.path(), nil, nil, nil)
	return err
}
