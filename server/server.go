package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const instructions = "A Model Context Protocol server for accessing the GNews API. " +
	"Provides tools to search news articles and get top headlines, reference resources " +
	"for supported languages and countries, and a news research prompt."

func New(version string) *mcp.Server {
	return mcp.NewServer(
		&mcp.Implementation{
			Name:    "gnews-mcp",
			Version: version,
		},
		&mcp.ServerOptions{
			Instructions: instructions,
		},
	)
}

func Run(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
