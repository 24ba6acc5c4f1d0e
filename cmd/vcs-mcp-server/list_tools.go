package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vcsbridge/vcs-mcp-server/pkg/tools"
)

// ToolInfo describes one tool for the list-tools command.
type ToolInfo struct {
	Name        string `json:"name"`
	Toolset     string `json:"toolset"`
	ReadOnly    bool   `json:"read_only"`
	Description string `json:"description"`
}

var listToolsCmd = &cobra.Command{
	Use:   "list-tools",
	Short: "List tools enabled by the current flags",
	Long: `List the tools that would be exposed with the current --toolsets,
--tools and --read-only flags. Useful for checking a configuration before
wiring the server into a client.

Examples:
  # List tools for default toolsets
  vcs-mcp-server list-tools

  # List every tool
  vcs-mcp-server list-tools --toolsets=all

  # Output as JSON
  vcs-mcp-server list-tools --output=json`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runListTools()
	},
}

func init() {
	listToolsCmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	_ = viper.BindPFlag("list-tools-output", listToolsCmd.Flags().Lookup("output"))

	rootCmd.AddCommand(listToolsCmd)
}

func runListTools() error {
	var toolsets []string
	if viper.IsSet("toolsets") {
		var err error
		toolsets, err = rootCmd.PersistentFlags().GetStringSlice("toolsets")
		if err != nil {
			return fmt.Errorf("failed to get toolsets: %w", err)
		}
	}
	additional, err := rootCmd.PersistentFlags().GetStringSlice("tools")
	if err != nil {
		return fmt.Errorf("failed to get tools: %w", err)
	}

	inv := tools.NewInventory(toolsets, additional, viper.GetBool("read-only"))

	var infos []ToolInfo
	for _, tool := range inv.AvailableTools() {
		infos = append(infos, ToolInfo{
			Name:        tool.Tool.Name,
			Toolset:     string(tool.Toolset.ID),
			ReadOnly:    tool.IsReadOnly(),
			Description: tool.Tool.Description,
		})
	}

	if viper.GetString("list-tools-output") == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	var lastToolset string
	for _, info := range infos {
		if info.Toolset != lastToolset {
			lastToolset = info.Toolset
			fmt.Printf("%s:\n", info.Toolset)
		}
		mode := "write"
		if info.ReadOnly {
			mode = "read"
		}
		fmt.Printf("  %-24s [%s] %s\n", info.Name, mode, info.Description)
	}
	return nil
}
