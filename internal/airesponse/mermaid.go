package airesponse

import (
	"regexp"
	"strings"
)

var (
	mermaidFence = regexp.MustCompile("(?s)```mermaid\n(.*?)```")
	bareFence    = regexp.MustCompile("(?s)```\n(.*?)```")
)

// mermaidPrefixes are the diagram headers we accept from an untagged fence.
var mermaidPrefixes = []string{"graph", "flowchart", "sequenceDiagram"}

// ExtractMermaid pulls Mermaid code out of a model response: a ```mermaid
// block first, then an untagged block that starts with a diagram header,
// otherwise the trimmed text as-is.
func ExtractMermaid(text string) string {
	if m := mermaidFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	if m := bareFence.FindStringSubmatch(text); m != nil {
		code := strings.TrimSpace(m[1])
		for _, prefix := range mermaidPrefixes {
			if strings.HasPrefix(code, prefix) {
				return code
			}
		}
	}

	return strings.TrimSpace(text)
}
