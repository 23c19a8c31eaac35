package tools

import (
	"github.com/lexandro/gnews-mcp/client"
)

// Envelope is the uniform wrapper returned by every tool call, success or
// failure. A tool call never surfaces a bare error to the MCP transport.
type Envelope struct {
	Success        bool              `json:"success"`
	Query          string            `json:"query,omitempty"`
	Category       string            `json:"category,omitempty"`
	Error          string            `json:"error,omitempty"`
	TotalArticles  *int              `json:"totalArticles,omitempty"`
	Articles       *[]client.Article `json:"articles,omitempty"`
	ParametersUsed map[string]string `json:"parameters_used"`
}

// successEnvelope shapes a provider response into the success envelope. It is
// a pure function of its inputs: shaping the same response twice yields
// identical envelopes. Articles is always present on success, as "[]" when
// the provider returned no results; failure envelopes omit it entirely.
func successEnvelope(resp *client.NewsResponse, used map[string]string) Envelope {
	total := resp.TotalArticles
	articles := resp.Articles
	if articles == nil {
		articles = []client.Article{}
	}
	return Envelope{
		Success:        true,
		TotalArticles:  &total,
		Articles:       &articles,
		ParametersUsed: used,
	}
}

// failureEnvelope shapes any of the call's error kinds into the failure
// envelope. The error strings already name the offending field, HTTP status
// or network condition, and never contain the API key.
func failureEnvelope(err error, used map[string]string) Envelope {
	return Envelope{
		Success:        false,
		Error:          err.Error(),
		ParametersUsed: used,
	}
}
