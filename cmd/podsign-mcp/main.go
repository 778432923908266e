// Command podsign-mcp is an MCP (Model Context Protocol) server that
// exposes delivery-note signing to AI assistants.
//
// # Installation
//
//	go install github.com/lvillar/podsign/cmd/podsign-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "podsign": {
//	      "command": "podsign-mcp"
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - sign_pdf: Sign a delivery-note PDF
//   - extract_fields: Extract the subcon/receiver fields
//   - preview_layout: Preview the two-line name layout
//
// # Available Resources
//
//   - podsign://fields?path=... : Extracted fields as JSON
package main

import (
	"fmt"
	"os"

	"github.com/lvillar/podsign/mcp"
)

func main() {
	server := mcp.NewServer()

	mcp.RegisterDefaultTools(server, nil)
	mcp.RegisterDefaultResources(server, nil)

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "podsign-mcp: %v\n", err)
		os.Exit(1)
	}
}
