// Command mcp-wizard runs the MCP tool server for wizard case operations.
// Uses stdio transport for integration with AI assistants.
package main

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.temporal.io/sdk/client"

	"github.com/landlord-heaven/wizard-go/internal/config"
	"github.com/landlord-heaven/wizard-go/internal/mcpserver"
	"github.com/landlord-heaven/wizard-go/internal/temporal/querier"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
	})
	if err != nil {
		log.Fatalf("unable to create Temporal client: %v", err)
	}
	defer c.Close()

	q := querier.New(c, nil)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "landlord-wizard",
		Version: "v1.0.0",
	}, nil)
	mcpserver.RegisterTools(server, q)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}
