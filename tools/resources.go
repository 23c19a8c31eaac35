package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// refEntry pairs a 2-letter code with its display name. The tables below are
// advisory reference data from the GNews documentation; validation only
// enforces the 2-letter shape, matching the provider's own permissiveness.
type refEntry struct {
	code string
	name string
}

var supportedLanguages = []refEntry{
	{"ar", "Arabic"}, {"zh", "Chinese"}, {"nl", "Dutch"}, {"en", "English"},
	{"fr", "French"}, {"de", "German"}, {"el", "Greek"}, {"hi", "Hindi"},
	{"it", "Italian"}, {"ja", "Japanese"}, {"ml", "Malayalam"}, {"mr", "Marathi"},
	{"no", "Norwegian"}, {"pt", "Portuguese"}, {"ro", "Romanian"}, {"ru", "Russian"},
	{"es", "Spanish"}, {"sv", "Swedish"}, {"ta", "Tamil"}, {"te", "Telugu"},
	{"uk", "Ukrainian"},
}

var supportedCountries = []refEntry{
	{"au", "Australia"}, {"br", "Brazil"}, {"ca", "Canada"}, {"cn", "China"},
	{"eg", "Egypt"}, {"fr", "France"}, {"de", "Germany"}, {"gr", "Greece"},
	{"hk", "Hong Kong"}, {"in", "India"}, {"ie", "Ireland"}, {"it", "Italy"},
	{"jp", "Japan"}, {"nl", "Netherlands"}, {"no", "Norway"}, {"pk", "Pakistan"},
	{"pe", "Peru"}, {"ph", "Philippines"}, {"pt", "Portugal"}, {"ro", "Romania"},
	{"ru", "Russian Federation"}, {"sg", "Singapore"}, {"es", "Spain"},
	{"se", "Sweden"}, {"ch", "Switzerland"}, {"tw", "Taiwan"}, {"ua", "Ukraine"},
	{"gb", "United Kingdom"}, {"us", "United States"},
}

const querySyntaxText = `GNews API Query Syntax Guide:

BASIC SEARCH:
- Simple keywords: Apple iPhone
- Space acts as AND operator: Apple iPhone = Apple AND iPhone

PHRASE SEARCH:
- Exact phrases: "Apple iPhone 15"
- Use quotes for exact keyword sequence

LOGICAL OPERATORS:
- AND: Apple AND iPhone (ensure both keywords appear)
- OR: Apple OR Microsoft (either keyword can appear)
- NOT: Apple NOT iPhone (exclude articles with "iPhone")

OPERATOR PRECEDENCE:
- OR has higher precedence than AND
- Use parentheses for clarity: (Apple AND iPhone) OR Microsoft

SPECIAL CHARACTERS:
- Must be quoted if used: "Hello!", "Left - Right", "Question?"

EXAMPLE QUERIES:
- Microsoft Windows 10
- Apple OR Microsoft
- Apple AND NOT iPhone
- (Windows 7) AND (Windows 10)
- "Apple iPhone 13" AND NOT "Apple iPhone 14"
- Intel AND (i7 OR i9)
- (Intel AND (i7 OR "i9-14900K")) AND NOT AMD AND NOT "i7-14700K"

IMPORTANT NOTES:
- Query must be URL-encoded when sent
- Cannot use special characters without quotes
- Logical operators are case-sensitive (use uppercase)
`

func languagesText() string {
	var b strings.Builder
	b.WriteString("Supported Languages for GNews API:\n\n")
	for _, entry := range supportedLanguages {
		fmt.Fprintf(&b, "  %s: %s\n", entry.code, entry.name)
	}
	b.WriteString("\nUsage: Use the 2-letter language code in the 'lang' parameter.\n")
	b.WriteString("Example: lang=\"en\" for English, lang=\"es\" for Spanish\n")
	return b.String()
}

func countriesText() string {
	var b strings.Builder
	b.WriteString("Supported Countries for GNews API:\n\n")
	for _, entry := range supportedCountries {
		fmt.Fprintf(&b, "  %s: %s\n", entry.code, entry.name)
	}
	b.WriteString("\nUsage: Use the 2-letter country code in the 'country' parameter.\n")
	b.WriteString("Example: country=\"us\" for United States, country=\"gb\" for United Kingdom\n")
	return b.String()
}

// registerResources adds the three static reference documents. Their content
// is fixed at registration time; handlers only wrap it in resource contents.
func registerResources(mcpServer *mcp.Server) {
	addTextResource(mcpServer, &mcp.Resource{
		URI:         "gnews://supported-languages",
		Name:        "supported-languages",
		Description: "Languages accepted by the 'lang' parameter",
		MIMEType:    "text/plain",
	}, languagesText())

	addTextResource(mcpServer, &mcp.Resource{
		URI:         "gnews://supported-countries",
		Name:        "supported-countries",
		Description: "Countries accepted by the 'country' parameter",
		MIMEType:    "text/plain",
	}, countriesText())

	addTextResource(mcpServer, &mcp.Resource{
		URI:         "gnews://query-syntax",
		Name:        "query-syntax",
		Description: "Query syntax guide for search_news",
		MIMEType:    "text/plain",
	}, querySyntaxText)
}

func addTextResource(mcpServer *mcp.Server, resource *mcp.Resource, text string) {
	mcpServer.AddResource(resource, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      resource.URI,
				MIMEType: resource.MIMEType,
				Text:     text,
			}},
		}, nil
	})
}
