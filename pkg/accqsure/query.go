package accqsure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/accqsure/accqsure-go/pkg/accqsure/auth"
)

// defaultPageLimit is the page size queryAll requests when the caller
// doesn't specify one.
const defaultPageLimit = 100

// prepareRequest resolves a token and builds an authenticated request
// against <token.APIEndpoint>/v1<path>.
func (c *Client) prepareRequest(
	ctx context.Context,
	method string,
	path string,
	params map[string]interface{},
	body interface{},
	headers map[string]string,
) (*http.Request, error) {
	token, err := c.auth.GetToken(ctx)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, &auth.AuthenticationError{
			Message: "error getting authorization tokens, verify configured credentials",
			Err:     err,
		}
	}

	endpoint := token.APIEndpoint + apiVersionPrefix + path

	var bodyReader io.Reader
	rawBody := false
	if body != nil {
		switch b := body.(type) {
		case []byte:
			bodyReader = bytes.NewReader(b)
			rawBody = true
		case string:
			bodyReader = bytes.NewReader([]byte(b))
			rawBody = true
		default:
			encoded, err := json.Marshal(b)
			if err != nil {
				return nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			bodyReader = bytes.NewReader(encoded)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.URL.RawQuery = encodeParams(params)

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("User-Agent", c.userAgent)
	if req.Header.Get("Content-Type") == "" && !rawBody {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("request", "method", method, "url", endpoint, "params", params)

	return req, nil
}

// encodeParams serializes query parameters. Booleans become the literal
// strings "true"/"false" and nil values are dropped entirely.
func encodeParams(params map[string]interface{}) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range params {
		switch val := v.(type) {
		case nil:
			continue
		case bool:
			values.Set(k, strconv.FormatBool(val))
		case string:
			values.Set(k, val)
		default:
			values.Set(k, fmt.Sprintf("%v", val))
		}
	}
	return values.Encode()
}

// apiErrorFromResponse builds an APIError from a 4xx/5xx response, decoding
// the body as JSON when the response declares it and wrapping raw text
// otherwise.
func apiErrorFromResponse(status int, contentType string, body []byte) *APIError {
	if contentTypeIsJSON(contentType) {
		var parsed interface{}
		if err := json.Unmarshal(body, &parsed); err == nil {
			return &APIError{Status: status, Body: parsed}
		}
	}
	return &APIError{Status: status, Body: map[string]interface{}{"message": string(body)}}
}

// query performs an authenticated API request and decodes the response by
// its declared content type: JSON values for application/json, a string for
// text/*, and raw bytes for anything else. Resource managers rely on this
// three-way contract and never inspect content types themselves.
func (c *Client) query(
	ctx context.Context,
	method string,
	path string,
	params map[string]interface{},
	body interface{},
	headers map[string]string,
) (interface{}, error) {
	req, err := c.prepareRequest(ctx, method, path, params, body, headers)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")

	if resp.StatusCode >= 400 {
		return nil, apiErrorFromResponse(resp.StatusCode, contentType, respBody)
	}

	switch {
	case contentTypeIsJSON(contentType):
		if len(respBody) == 0 {
			return nil, nil
		}
		var result interface{}
		if err := json.Unmarshal(respBody, &result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return result, nil
	case contentTypeIsText(contentType):
		return string(respBody), nil
	default:
		return respBody, nil
	}
}

// queryAll drains a cursor-paginated listing: it follows the last_key
// cursor with start_key requests until the server reports no further page,
// returning the concatenated results.
func (c *Client) queryAll(
	ctx context.Context,
	method string,
	path string,
	params map[string]interface{},
) ([]interface{}, error) {
	merged := map[string]interface{}{"limit": defaultPageLimit}
	for k, v := range params {
		merged[k] = v
	}

	var all []interface{}
	for {
		resp, err := c.query(ctx, method, path, merged, nil, nil)
		if err != nil {
			return nil, err
		}

		page, ok := resp.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected page shape from %s", path)
		}

		if results, ok := page["results"].([]interface{}); ok {
			all = append(all, results...)
		}

		lastKey, _ := page["last_key"].(string)
		if lastKey == "" {
			return all, nil
		}
		merged["start_key"] = lastKey
	}
}
