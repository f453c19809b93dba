package diagfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/theory/jsonpath"
)

// ErrEmptyQuery is returned when QueryTokens receives an empty expression.
var ErrEmptyQuery = errors.New("JSONPath expression is empty")

// SelectTokens evaluates a JSONPath expression against the JSON form of dumps.
// Корень запроса ($) это массив TokenDump.
func SelectTokens(dumps []TokenDump, expr string) ([]any, error) {
	if expr == "" {
		return nil, ErrEmptyQuery
	}

	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %s: %w", expr, err)
	}

	body, err := json.Marshal(dumps)
	if err != nil {
		return nil, fmt.Errorf("encode token dump: %w", err)
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode token dump: %w", err)
	}

	nodes := path.Select(data)
	out := make([]any, len(nodes))
	copy(out, nodes)
	return out, nil
}

// QueryTokens writes the nodes selected by expr as an indented JSON array.
func QueryTokens(w io.Writer, dumps []TokenDump, expr string) error {
	nodes, err := SelectTokens(dumps, expr)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(nodes)
}
