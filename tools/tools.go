package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/gnews-mcp/client"
)

// SearchInput is the search_news tool input. Field names follow the GNews
// query-parameter spelling so tool calls read like the upstream API.
type SearchInput struct {
	Query    string `json:"q" jsonschema:"Search keywords. Supports AND, OR, NOT and quoted exact phrases, e.g. 'Apple AND iPhone'"`
	Language string `json:"lang,omitempty" jsonschema:"2-letter language code, e.g. en, es (see gnews://supported-languages)"`
	Country  string `json:"country,omitempty" jsonschema:"2-letter country code, e.g. us, gb (see gnews://supported-countries)"`
	Max      *int   `json:"max,omitempty" jsonschema:"Number of articles to return, 1-100 (default 10)"`
	In       string `json:"in,omitempty" jsonschema:"Comma-separated fields to search: title, description, content"`
	Nullable string `json:"nullable,omitempty" jsonschema:"Comma-separated fields allowed to be null: description, content, image"`
	From     string `json:"from,omitempty" jsonschema:"Only articles published at or after this ISO-8601 timestamp, e.g. 2025-01-01T00:00:00Z"`
	To       string `json:"to,omitempty" jsonschema:"Only articles published at or before this ISO-8601 timestamp"`
	SortBy   string `json:"sortby,omitempty" jsonschema:"Sort order: publishedAt or relevance (default publishedAt)"`
	Page     *int   `json:"page,omitempty" jsonschema:"Page number for pagination, 1-based"`
}

// HeadlinesInput is the get_top_headlines tool input.
type HeadlinesInput struct {
	Category string `json:"category,omitempty" jsonschema:"News category: general, world, nation, business, technology, entertainment, sports, science, health (default general)"`
	Query    string `json:"q,omitempty" jsonschema:"Optional keywords to narrow the headlines"`
	Language string `json:"lang,omitempty" jsonschema:"2-letter language code, e.g. en, es (see gnews://supported-languages)"`
	Country  string `json:"country,omitempty" jsonschema:"2-letter country code, e.g. us, gb (see gnews://supported-countries)"`
	Max      *int   `json:"max,omitempty" jsonschema:"Number of articles to return, 1-100 (default 10)"`
	Nullable string `json:"nullable,omitempty" jsonschema:"Comma-separated fields allowed to be null: description, content, image"`
	From     string `json:"from,omitempty" jsonschema:"Only articles published at or after this ISO-8601 timestamp"`
	To       string `json:"to,omitempty" jsonschema:"Only articles published at or before this ISO-8601 timestamp"`
	Page     *int   `json:"page,omitempty" jsonschema:"Page number for pagination, 1-based"`
}

const searchDescription = "Search for news articles by keyword via the GNews API. " +
	"Queries support logical operators (Apple AND iPhone, Apple OR Microsoft, Apple NOT iPhone), " +
	"quoted exact phrases and parentheses; read gnews://query-syntax for the full grammar. " +
	"Results can be filtered by language, country, date range and sorted by publication date or relevance."

const headlinesDescription = "Get the current trending news articles for a category via the GNews API. " +
	"Categories: " + "general, world, nation, business, technology, entertainment, sports, science, health. " +
	"Optionally narrowed by keywords, language, country and date range."

// Register adds the two news tools, the three reference resources and the
// research prompt to the MCP server.
func Register(mcpServer *mcp.Server, gnews *client.Client) error {
	searchSchema, err := jsonschema.For[SearchInput](nil)
	if err != nil {
		return fmt.Errorf("schema for search_news: %w", err)
	}
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "search_news",
		Description: searchDescription,
		InputSchema: searchSchema,
	}, makeSearchHandler(gnews))

	headlinesSchema, err := jsonschema.For[HeadlinesInput](nil)
	if err != nil {
		return fmt.Errorf("schema for get_top_headlines: %w", err)
	}
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "get_top_headlines",
		Description: headlinesDescription,
		InputSchema: headlinesSchema,
	}, makeHeadlinesHandler(gnews))

	registerResources(mcpServer)
	registerPrompt(mcpServer)
	return nil
}

func makeSearchHandler(gnews *client.Client) func(context.Context, *mcp.CallToolRequest, SearchInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, any, error) {
		params := client.SearchParams{
			Query:    in.Query,
			Language: in.Language,
			Country:  in.Country,
			Max:      10,
			In:       splitList(in.In),
			Nullable: splitList(in.Nullable),
			From:     in.From,
			To:       in.To,
			SortBy:   in.SortBy,
		}
		if in.Max != nil {
			params.Max = *in.Max
		}
		if in.Page != nil {
			params.Page = *in.Page
		}

		if err := params.Validate(); err != nil {
			env := failureEnvelope(err, params.Used())
			env.Query = in.Query
			return envelopeResult(env)
		}

		resp, err := gnews.Search(ctx, params)
		if err != nil {
			env := failureEnvelope(err, params.Used())
			env.Query = params.Query
			return envelopeResult(env)
		}

		env := successEnvelope(resp, params.Used())
		env.Query = params.Query
		return envelopeResult(env)
	}
}

func makeHeadlinesHandler(gnews *client.Client) func(context.Context, *mcp.CallToolRequest, HeadlinesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in HeadlinesInput) (*mcp.CallToolResult, any, error) {
		category := in.Category
		if category == "" {
			category = "general"
		}

		params := client.HeadlinesParams{
			Category: category,
			Query:    in.Query,
			Language: in.Language,
			Country:  in.Country,
			Max:      10,
			Nullable: splitList(in.Nullable),
			From:     in.From,
			To:       in.To,
		}
		if in.Max != nil {
			params.Max = *in.Max
		}
		if in.Page != nil {
			params.Page = *in.Page
		}

		if err := params.Validate(); err != nil {
			env := failureEnvelope(err, params.Used())
			env.Category = category
			return envelopeResult(env)
		}

		resp, err := gnews.TopHeadlines(ctx, params)
		if err != nil {
			env := failureEnvelope(err, params.Used())
			env.Category = params.Category
			return envelopeResult(env)
		}

		env := successEnvelope(resp, params.Used())
		env.Category = params.Category
		return envelopeResult(env)
	}
}

// envelopeResult marshals the envelope as the tool's JSON text content.
// Failure envelopes are flagged with IsError but still carry the full
// envelope, so no call ever crosses the tool boundary as a protocol fault.
func envelopeResult(env Envelope) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling envelope: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: !env.Success,
	}, nil, nil
}

// splitList parses a comma-separated field list, trimming whitespace and
// dropping empty elements, so "title, content" and "title,content" agree.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
