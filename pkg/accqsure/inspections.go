package accqsure

import (
	"context"
	"fmt"
	"time"
)

// Inspections manages inspection resources. An inspection runs a manifest's
// checks against a document and records per-check compliance findings.
type Inspections struct {
	client *Client
}

// Inspection types accepted by Create.
const (
	InspectionTypePreliminary = "preliminary"
	InspectionTypeEffective   = "effective"
)

// runTimeout bounds how long Run waits for the server-side inspection task.
const runTimeout = time.Hour

// Inspection is a single inspection run over a document.
type Inspection struct {
	client *Client

	EntityID        string `mapstructure:"entity_id"`
	Name            string `mapstructure:"name"`
	Type            string `mapstructure:"type"`
	Status          string `mapstructure:"status"`
	DocumentTypeID  string `mapstructure:"document_type_id"`
	ManifestID      string `mapstructure:"manifest_id"`
	DocContentID    string `mapstructure:"doc_content_id"`
	ContentID       string `mapstructure:"content_id"`
	ReportContentID string `mapstructure:"report_content_id"`
	CreatedAt       string `mapstructure:"created_at"`
	UpdatedAt       string `mapstructure:"updated_at"`
}

// InspectionCheck is one check's finding within an inspection.
type InspectionCheck struct {
	client *Client

	EntityID     string `mapstructure:"entity_id"`
	InspectionID string `mapstructure:"inspection_id"`
	Name         string `mapstructure:"name"`
	Prompt       string `mapstructure:"prompt"`
	Section      string `mapstructure:"section"`
	Compliant    *bool  `mapstructure:"compliant"`
	Rationale    string `mapstructure:"rationale"`
}

// CreateInspectionInput holds the fields for Inspections.Create.
type CreateInspectionInput struct {
	Name           string
	Type           string
	DocumentTypeID string
	ManifestID     string
	DocID          string
}

func (i *Inspections) inspectionFromAPI(payload interface{}) (*Inspection, error) {
	if payload == nil {
		return nil, nil
	}
	inspection := &Inspection{client: i.client}
	if err := decodeEntity(payload, inspection); err != nil {
		return nil, err
	}
	return inspection, nil
}

func (ins *Inspection) checkFromAPI(payload interface{}) (*InspectionCheck, error) {
	if payload == nil {
		return nil, nil
	}
	check := &InspectionCheck{client: ins.client}
	if err := decodeEntity(payload, check); err != nil {
		return nil, err
	}
	return check, nil
}

// Get fetches an inspection by id.
func (i *Inspections) Get(ctx context.Context, id string) (*Inspection, error) {
	resp, err := i.client.query(ctx, "GET", "/inspection/"+id, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return i.inspectionFromAPI(resp)
}

// List returns one page of inspections and the cursor for the next page.
func (i *Inspections) List(ctx context.Context, limit int, startKey string) ([]*Inspection, string, error) {
	params := map[string]interface{}{}
	if limit > 0 {
		params["limit"] = limit
	}
	if startKey != "" {
		params["start_key"] = startKey
	}

	resp, err := i.client.query(ctx, "GET", "/inspection", params, nil, nil)
	if err != nil {
		return nil, "", err
	}

	page, ok := resp.(map[string]interface{})
	if !ok {
		return nil, "", fmt.Errorf("unexpected inspection listing shape")
	}

	results, _ := page["results"].([]interface{})
	inspections := make([]*Inspection, 0, len(results))
	for _, item := range results {
		inspection, err := i.inspectionFromAPI(item)
		if err != nil {
			return nil, "", err
		}
		inspections = append(inspections, inspection)
	}

	lastKey, _ := page["last_key"].(string)
	return inspections, lastKey, nil
}

// Create registers a new inspection.
func (i *Inspections) Create(ctx context.Context, input CreateInspectionInput) (*Inspection, error) {
	body := map[string]interface{}{
		"name":             input.Name,
		"type":             input.Type,
		"document_type_id": input.DocumentTypeID,
	}
	if input.ManifestID != "" {
		body["manifest_id"] = input.ManifestID
	}
	if input.DocID != "" {
		body["doc_id"] = input.DocID
	}

	resp, err := i.client.query(ctx, "POST", "/inspection", nil, body, nil)
	if err != nil {
		return nil, err
	}
	return i.inspectionFromAPI(resp)
}

// Remove deletes an inspection by id.
func (i *Inspections) Remove(ctx context.Context, id string) error {
	_, err := i.client.query(ctx, "DELETE", "/inspection/"+id, nil, nil, nil)
	return err
}

// Refresh re-reads the inspection from the API.
func (ins *Inspection) Refresh(ctx context.Context) error {
	resp, err := ins.client.query(ctx, "GET", "/inspection/"+ins.EntityID, nil, nil, nil)
	if err != nil {
		return err
	}
	return decodeEntity(resp, ins)
}

// Rename changes the inspection's display name.
func (ins *Inspection) Rename(ctx context.Context, name string) error {
	resp, err := ins.client.query(ctx, "PUT", "/inspection/"+ins.EntityID, nil, map[string]interface{}{
		"name": name,
	}, nil)
	if err != nil {
		return err
	}
	return decodeEntity(resp, ins)
}

// Remove deletes the inspection.
func (ins *Inspection) Remove(ctx context.Context) error {
	_, err := ins.client.query(ctx, "DELETE", "/inspection/"+ins.EntityID, nil, nil, nil)
	return err
}

// Run starts the server-side inspection task and polls it to completion,
// returning the task result.
func (ins *Inspection) Run(ctx context.Context) (interface{}, error) {
	resp, err := ins.client.query(ctx, "POST", fmt.Sprintf("/inspection/%s/run", ins.EntityID), nil, nil, nil)
	if err != nil {
		return nil, err
	}

	started, ok := resp.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected inspection run response")
	}
	taskID, _ := started["task_id"].(string)
	if taskID == "" {
		return nil, fmt.Errorf("inspection run response missing task_id")
	}

	return ins.client.pollTask(ctx, taskID, runTimeout)
}

// assetPath guards access to one of the inspection's content bundles.
func (ins *Inspection) assetPath(contentID, attribute, what string) (string, error) {
	if contentID == "" {
		return "", &SpecificationError{
			Attribute: attribute,
			Message:   fmt.Sprintf("%s not uploaded for inspection", what),
		}
	}
	return fmt.Sprintf("/inspection/%s/asset/%s", ins.EntityID, contentID), nil
}

// GetDocContents downloads the inspected document's contents.
func (ins *Inspection) GetDocContents(ctx context.Context) (interface{}, error) {
	path, err := ins.assetPath(ins.DocContentID, "doc_content_id", "Document content")
	if err != nil {
		return nil, err
	}
	return ins.client.query(ctx, "GET", path, nil, nil, nil)
}

// GetDocContentItem downloads a named item from the inspected document's
// content bundle.
func (ins *Inspection) GetDocContentItem(ctx context.Context, name string) (interface{}, error) {
	path, err := ins.assetPath(ins.DocContentID, "doc_content_id", "Document content")
	if err != nil {
		return nil, err
	}
	return ins.client.query(ctx, "GET", path+"/"+name, nil, nil, nil)
}

// GetContents downloads the inspection's own content bundle.
func (ins *Inspection) GetContents(ctx context.Context) (interface{}, error) {
	path, err := ins.assetPath(ins.ContentID, "content_id", "Content")
	if err != nil {
		return nil, err
	}
	return ins.client.query(ctx, "GET", path, nil, nil, nil)
}

// GetContentItem downloads a named item from the inspection's content
// bundle.
func (ins *Inspection) GetContentItem(ctx context.Context, name string) (interface{}, error) {
	path, err := ins.assetPath(ins.ContentID, "content_id", "Content")
	if err != nil {
		return nil, err
	}
	return ins.client.query(ctx, "GET", path+"/"+name, nil, nil, nil)
}

// DownloadReport downloads the generated inspection report.
func (ins *Inspection) DownloadReport(ctx context.Context) (interface{}, error) {
	path, err := ins.assetPath(ins.ReportContentID, "report_content_id", "Report")
	if err != nil {
		return nil, err
	}
	return ins.client.query(ctx, "GET", path, nil, nil, nil)
}

// ListChecks returns one page of the inspection's check findings. The
// compliant filter is tri-state: nil means unfiltered.
func (ins *Inspection) ListChecks(ctx context.Context, compliant *bool, section string, limit int, startKey string) ([]*InspectionCheck, string, error) {
	params := map[string]interface{}{}
	if compliant != nil {
		params["compliant"] = *compliant
	}
	if section != "" {
		params["section"] = section
	}
	if limit > 0 {
		params["limit"] = limit
	}
	if startKey != "" {
		params["start_key"] = startKey
	}

	resp, err := ins.client.query(ctx, "GET", fmt.Sprintf("/inspection/%s/check", ins.EntityID), params, nil, nil)
	if err != nil {
		return nil, "", err
	}

	page, ok := resp.(map[string]interface{})
	if !ok {
		return nil, "", fmt.Errorf("unexpected inspection check listing shape")
	}

	results, _ := page["results"].([]interface{})
	checks := make([]*InspectionCheck, 0, len(results))
	for _, item := range results {
		check, err := ins.checkFromAPI(item)
		if err != nil {
			return nil, "", err
		}
		checks = append(checks, check)
	}

	lastKey, _ := page["last_key"].(string)
	return checks, lastKey, nil
}

func (ic *InspectionCheck) path() string {
	return fmt.Sprintf("/inspection/%s/check/%s", ic.InspectionID, ic.EntityID)
}

// Update records a compliance finding on the check; nil entries are
// dropped.
func (ic *InspectionCheck) Update(ctx context.Context, fields map[string]interface{}) error {
	body := map[string]interface{}{}
	for k, v := range fields {
		if v != nil {
			body[k] = v
		}
	}

	resp, err := ic.client.query(ctx, "PUT", ic.path(), nil, body, nil)
	if err != nil {
		return err
	}
	return decodeEntity(resp, ic)
}

// Refresh re-reads the check from the API.
func (ic *InspectionCheck) Refresh(ctx context.Context) error {
	resp, err := ic.client.query(ctx, "GET", ic.path(), nil, nil, nil)
	if err != nil {
		return err
	}
	return decodeEntity(resp, ic)
}
