package accqsure

import "context"

// DocumentTypes manages document type resources.
type DocumentTypes struct {
	client *Client
}

// DocumentType classifies documents, e.g. SOPs vs. work instructions.
type DocumentType struct {
	client *Client

	EntityID  string `mapstructure:"entity_id"`
	Name      string `mapstructure:"name"`
	Code      string `mapstructure:"code"`
	Level     int    `mapstructure:"level"`
	CreatedAt string `mapstructure:"created_at"`
	UpdatedAt string `mapstructure:"updated_at"`
}

func (t *DocumentTypes) documentTypeFromAPI(payload interface{}) (*DocumentType, error) {
	if payload == nil {
		return nil, nil
	}
	dt := &DocumentType{client: t.client}
	if err := decodeEntity(payload, dt); err != nil {
		return nil, err
	}
	return dt, nil
}

// Get fetches a document type by id.
func (t *DocumentTypes) Get(ctx context.Context, id string) (*DocumentType, error) {
	resp, err := t.client.query(ctx, "GET", "/document/type/"+id, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return t.documentTypeFromAPI(resp)
}

// List returns all document types. The collection is small and the server
// returns it unpaginated.
func (t *DocumentTypes) List(ctx context.Context) ([]*DocumentType, error) {
	resp, err := t.client.query(ctx, "GET", "/document/type", nil, nil, nil)
	if err != nil {
		return nil, err
	}

	items, _ := resp.([]interface{})
	types := make([]*DocumentType, 0, len(items))
	for _, item := range items {
		dt, err := t.documentTypeFromAPI(item)
		if err != nil {
			return nil, err
		}
		types = append(types, dt)
	}
	return types, nil
}

// Create registers a new document type.
func (t *DocumentTypes) Create(ctx context.Context, name, code string, level int) (*DocumentType, error) {
	resp, err := t.client.query(ctx, "POST", "/document/type", nil, map[string]interface{}{
		"name":  name,
		"code":  code,
		"level": level,
	}, nil)
	if err != nil {
		return nil, err
	}
	return t.documentTypeFromAPI(resp)
}

// Remove deletes a document type by id.
func (t *DocumentTypes) Remove(ctx context.Context, id string) error {
	_, err := t.client.query(ctx, "DELETE", "/document/type/"+id, nil, nil, nil)
	return err
}

// Refresh re-reads the document type from the API.
func (dt *DocumentType) Refresh(ctx context.Context) error {
	resp, err := dt.client.query(ctx, "GET", "/document/type/"+dt.EntityID, nil, nil, nil)
	if err != nil {
		return err
	}
	return decodeEntity(resp, dt)
}

// Update changes mutable document type fields; nil entries are dropped.
func (dt *DocumentType) Update(ctx context.Context, fields map[string]interface{}) error {
	body := map[string]interface{}{}
	for k, v := range fields {
		if v != nil {
			body[k] = v
		}
	}

	resp, err := dt.client.query(ctx, "PUT", "/document/type/"+dt.EntityID, nil, body, nil)
	if err != nil {
		return err
	}
	return decodeEntity(resp, dt)
}

// Remove deletes the document type.
func (dt *DocumentType) Remove(ctx context.Context) error {
	_, err := dt.client.query(ctx, "DELETE", "/document/type/"+dt.EntityID, nil, nil, nil)
	return err
}
