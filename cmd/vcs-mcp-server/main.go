package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vcsbridge/vcs-mcp-server/internal/vcsmcp"
)

// These variables are set by the build process using ldflags.
var version = "version"
var commit = "commit"
var date = "date"

var (
	rootCmd = &cobra.Command{
		Use:     "vcs-mcp-server",
		Short:   "VCS MCP Server",
		Long:    `A VCS MCP server that exposes issue, release, repository, file, webhook, CI, deployment, security, analytics, code review and git bundle tools over GitHub and Gitea backends.`,
		Version: fmt.Sprintf("Version: %s\nCommit: %s\nBuild Date: %s", version, commit, date),
	}

	stdioCmd = &cobra.Command{
		Use:   "stdio",
		Short: "Start stdio server",
		Long:  `Start a server that communicates via standard input/output streams using JSON-RPC messages.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			var toolsets []string
			if viper.IsSet("toolsets") {
				var err error
				toolsets, err = rootCmd.PersistentFlags().GetStringSlice("toolsets")
				if err != nil {
					return fmt.Errorf("failed to get toolsets: %w", err)
				}
			}
			tools, err := rootCmd.PersistentFlags().GetStringSlice("tools")
			if err != nil {
				return fmt.Errorf("failed to get tools: %w", err)
			}

			cfg := vcsmcp.StdioServerConfig{
				MCPServerConfig: vcsmcp.MCPServerConfig{
					Version:         version,
					GitHubToken:     viper.GetString("github_token"),
					GitHubHost:      viper.GetString("github_host"),
					GiteaURL:        viper.GetString("gitea_url"),
					GiteaToken:      viper.GetString("gitea_token"),
					DefaultProvider: viper.GetString("default_provider"),
					Toolsets:        toolsets,
					Tools:           tools,
					ReadOnly:        viper.GetBool("read-only"),
				},
				LogFilePath: viper.GetString("log-file"),
			}
			return vcsmcp.RunStdioServer(cfg)
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SetVersionTemplate("{{.Short}}\n{{.Version}}\n")

	rootCmd.PersistentFlags().StringSlice("toolsets", nil, "Comma-separated list of toolsets to enable (use \"all\" for everything)")
	rootCmd.PersistentFlags().StringSlice("tools", nil, "Comma-separated list of individual tools to enable regardless of toolset")
	rootCmd.PersistentFlags().Bool("read-only", false, "Restrict the server to read-only tools")
	rootCmd.PersistentFlags().String("github-host", "", "GitHub hostname for GitHub Enterprise")
	rootCmd.PersistentFlags().String("gitea-url", "", "Base URL of a Gitea instance")
	rootCmd.PersistentFlags().String("default-provider", "", "Provider used when a tool call omits one (github or gitea)")
	rootCmd.PersistentFlags().String("log-file", "", "Path to log file")

	_ = viper.BindPFlag("toolsets", rootCmd.PersistentFlags().Lookup("toolsets"))
	_ = viper.BindPFlag("tools", rootCmd.PersistentFlags().Lookup("tools"))
	_ = viper.BindPFlag("read-only", rootCmd.PersistentFlags().Lookup("read-only"))
	_ = viper.BindPFlag("github_host", rootCmd.PersistentFlags().Lookup("github-host"))
	_ = viper.BindPFlag("gitea_url", rootCmd.PersistentFlags().Lookup("gitea-url"))
	_ = viper.BindPFlag("default_provider", rootCmd.PersistentFlags().Lookup("default-provider"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.AddCommand(stdioCmd)
}

// initConfig maps flags to environment variables with the VCS prefix, so
// VCS_GITHUB_TOKEN and VCS_GITEA_TOKEN supply credentials without flags.
func initConfig() {
	viper.SetEnvPrefix("vcs")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
