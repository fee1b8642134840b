package accqsure

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// doneSentinel terminates a newline-delimited event stream. It marks
// end-of-stream and is not a data event.
const doneSentinel = "[DONE]"

// streamEvent is one decoded line of a generation stream. A populated
// GeneratedText is the complete final answer; otherwise deltas accumulate
// from the first choice.
type streamEvent struct {
	GeneratedText string `json:"generated_text"`
	Choices       []struct {
		FinishReason string `json:"finish_reason"`
		Delta        struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// queryStream performs an authenticated request whose response is a
// newline-delimited event stream, accumulating the generated answer.
// Undecodable lines are logged and skipped; a generated_text event
// short-circuits the rest of the stream.
func (c *Client) queryStream(
	ctx context.Context,
	method string,
	path string,
	params map[string]interface{},
	body interface{},
	headers map[string]string,
) (string, error) {
	req, err := c.prepareRequest(ctx, method, path, params, body, headers)
	if err != nil {
		return "", err
	}

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return "", &APIError{Status: resp.StatusCode, Body: nil}
		}
		return "", apiErrorFromResponse(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
	}

	var answer strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if line == doneSentinel {
			continue
		}

		var event streamEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			c.logger.Warn("skipping undecodable stream line", "line", line)
			continue
		}

		if event.GeneratedText != "" {
			return event.GeneratedText, nil
		}
		if len(event.Choices) == 0 {
			continue
		}
		if event.Choices[0].FinishReason != "" {
			continue
		}
		answer.WriteString(event.Choices[0].Delta.Content)
	}

	if err := scanner.Err(); err != nil {
		c.logger.Error("error reading generation stream", "error", err)
		// Best-effort read of a trailing diagnostic payload; its failure
		// must not mask the stream error.
		if diag, readErr := io.ReadAll(resp.Body); readErr == nil && len(diag) > 0 {
			c.logger.Error("stream diagnostic", "body", string(diag))
		}
		return "", err
	}

	return answer.String(), nil
}
