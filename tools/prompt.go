package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultDaysBack = 7

func registerPrompt(mcpServer *mcp.Server) {
	mcpServer.AddPrompt(&mcp.Prompt{
		Name:        "create_news_search_prompt",
		Description: "Create a comprehensive news research prompt for a specific topic",
		Arguments: []*mcp.PromptArgument{
			{Name: "topic", Description: "Topic to research", Required: true},
			{Name: "days_back", Description: "How many days of coverage to include (default 7)"},
		},
	}, newsSearchPrompt)
}

func newsSearchPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := strings.TrimSpace(req.Params.Arguments["topic"])
	if topic == "" {
		return nil, fmt.Errorf("argument %q is required", "topic")
	}

	daysBack := defaultDaysBack
	if raw := req.Params.Arguments["days_back"]; raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("argument %q must be a positive integer, got %q", "days_back", raw)
		}
		daysBack = parsed
	}

	fromDate := time.Now().UTC().AddDate(0, 0, -daysBack).Format("2006-01-02")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("News research plan for %q", topic),
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: buildResearchPrompt(topic, daysBack, fromDate)},
		}},
	}, nil
}

func buildResearchPrompt(topic string, daysBack int, fromDate string) string {
	return fmt.Sprintf(`You are a news research assistant. Search for comprehensive news coverage about %[1]q from the last %[2]d days.

Please use the search_news tool with the following approach:

1. First, search for recent articles about %[1]q using:
   - Query: %[1]q
   - Time range: from %[3]s (the last %[2]d days)
   - Sort by: "publishedAt" for most recent news

2. Then, search for different perspectives using varied keywords:
   - Main topic variations
   - Related industry terms
   - Impact and analysis angles

3. Finally, search for any breaking news or developments using:
   - Query: %[1]q AND ("breaking" OR "latest" OR "update")

After gathering the articles, please:
- Summarize the key developments
- Identify different perspectives or viewpoints
- Highlight any breaking news or recent updates
- Note any patterns or trends in the coverage

Use the get_top_headlines tool if this topic might be trending in specific categories like business, technology, or world news.`, topic, daysBack, fromDate)
}
