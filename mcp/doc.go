// Package mcp provides MCP (Model Context Protocol) integration.
//
// MCP is a protocol that enables AI assistants to access external tools and data.
// This package provides bidirectional integration:
//
//   - Server: Expose a [tool.Set] as an MCP server, allowing MCP clients
//     like Claude Desktop to discover and call your tools.
//   - Client: Connect to MCP servers and turn their tools into executable
//     tools through [Remote], ready for the tool-calling loop.
//
// # Exposing Tools as an MCP Server
//
//	tools := tool.MustSet(
//	    tool.MustFunc("weather", "Get weather", weatherHandler),
//	    tool.MustFunc("search", "Search web", searchHandler),
//	)
//
//	// Serve over stdio (for subprocess-based MCP clients)
//	if err := mcp.ServeStdio(tools); err != nil {
//	    log.Fatal(err)
//	}
//
// # Consuming MCP Servers
//
//	remote, err := mcp.Connect(ctx, "./my-mcp-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
//
//	tools, err := remote.Set(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := c.Send(ctx, "openai/gpt-4o", edgee.Text("..."), client.WithTools(tools))
//
// Remote tools validate arguments against the server's input schema before
// the call is forwarded. A result flagged as an error by the server becomes a
// tool failure reported to the model.
package mcp
