// Package enrich — prompt construction.
package enrich

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/auditpipe/core"
)

// promptPreamble frames the model's task.
const promptPreamble = "You are an SEO expert. Analyze the following SEO audit report and provide recommendations for improvement:"

// BuildPrompt renders the model prompt: the framing preamble, the audit
// report as indented JSON, and the page-content excerpt when one exists.
func BuildPrompt(report *core.AuditReport, excerpt string) (string, error) {
	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}

	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\n")
	b.Write(data)
	if excerpt != "" {
		b.WriteString("\n\nPage content (Markdown excerpt):\n\n")
		b.WriteString(excerpt)
	}
	return b.String(), nil
}
