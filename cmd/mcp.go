package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	coreconfig "github.com/AzielCF/az-planner/core/config"
	"github.com/AzielCF/az-planner/ui/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var (
	mcpPort string
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the planner MCP server using SSE",
	Long:  `Start an MCP (Model Context Protocol) server over Server-Sent Events so AI agents can pick dates, generate calendars and read statistics.`,
	Run:   mcpServer,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpPort, "mcp-port", "", "Port for the SSE MCP server (default MCP_PORT or 8080)")
	mcpCmd.Flags().StringVar(&mcpHost, "host", "", "Host for the SSE MCP server (default MCP_HOST or localhost)")
}

func mcpServer(_ *cobra.Command, _ []string) {
	cfg := coreconfig.Global
	if mcpPort != "" {
		cfg.MCP.Port = mcpPort
	}
	if mcpHost != "" {
		cfg.MCP.Host = mcpHost
	}

	mcpServer := server.NewMCPServer(
		"Content Calendar Planner MCP Server",
		cfg.App.Version,
		server.WithToolCapabilities(true),
	)

	plannerHandler := mcp.InitMcpPlanner(plannerUsecase)
	plannerHandler.AddPlannerTools(mcpServer)

	sseServer := server.NewSSEServer(
		mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://%s:%s", cfg.MCP.Host, cfg.MCP.Port)),
		server.WithKeepAlive(true),
	)

	addr := fmt.Sprintf("%s:%s", cfg.MCP.Host, cfg.MCP.Port)
	logrus.Printf("[MCP] Starting planner MCP SSE server on %s", addr)
	logrus.Printf("[MCP] SSE endpoint: http://%s/sse", addr)
	logrus.Printf("[MCP] Message endpoint: http://%s/message", addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[MCP] Reception of termination signal, shutting down gracefully...")
		StopApp()
		os.Exit(0)
	}()

	if err := sseServer.Start(addr); err != nil {
		logrus.Fatalf("Failed to start SSE server: %v", err)
	}
}
