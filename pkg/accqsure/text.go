package accqsure

import "context"

// Text exposes the service's text operations: streamed generation,
// embedding, and tokenization.
type Text struct {
	client *Client
}

// ChatMessage is one turn of a generation conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Embeddings is the result of a vectorize call, one vector per input.
type Embeddings struct {
	Embeddings [][]float64 `mapstructure:"embeddings"`
}

// Tokens is the result of a tokenize call, one token sequence per input.
type Tokens struct {
	Tokens [][]int `mapstructure:"tokens"`
}

// Generate streams a text generation and returns the accumulated answer.
func (t *Text) Generate(ctx context.Context, messages []ChatMessage, options map[string]interface{}) (string, error) {
	body := map[string]interface{}{
		"messages": messages,
		"stream":   true,
	}
	for k, v := range options {
		if v != nil {
			body[k] = v
		}
	}

	return t.client.queryStream(ctx, "POST", "/text/generate", nil, body, nil)
}

// Vectorize embeds one or more inputs.
func (t *Text) Vectorize(ctx context.Context, inputs ...string) (*Embeddings, error) {
	resp, err := t.client.query(ctx, "POST", "/text/vectorize", nil, map[string]interface{}{
		"inputs": inputs,
	}, nil)
	if err != nil {
		return nil, err
	}

	var embeddings Embeddings
	if err := decodeEntity(resp, &embeddings); err != nil {
		return nil, err
	}
	return &embeddings, nil
}

// Tokenize tokenizes one or more inputs.
func (t *Text) Tokenize(ctx context.Context, inputs ...string) (*Tokens, error) {
	resp, err := t.client.query(ctx, "POST", "/text/tokenize", nil, map[string]interface{}{
		"inputs": inputs,
	}, nil)
	if err != nil {
		return nil, err
	}

	var tokens Tokens
	if err := decodeEntity(resp, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}
