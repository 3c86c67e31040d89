// Package batch — input decoding.
// A batch file is a JSON array of documents, or a single document
// object. Entries that are not objects or carry no page_html stay in
// the batch as zero-value documents so their index survives into the
// outcome list.
package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gaurav-prasanna/auditpipe/core"
)

// DecodeDocuments reads the batch input from r.
func DecodeDocuments(r io.Reader) ([]core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading batch input: %w", err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err == nil {
		docs := make([]core.Document, len(raws))
		for i, raw := range raws {
			// Malformed entries stay zero-valued; the runner reports them.
			_ = json.Unmarshal(raw, &docs[i])
		}
		return docs, nil
	}

	var single core.Document
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("decoding batch input: %w", err)
	}
	return []core.Document{single}, nil
}
