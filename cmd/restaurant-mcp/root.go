package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/restaurant-mcp/internal/config"
)

const configName = "restaurant-mcp.toml"

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "restaurant-mcp",
		Short: "MCP tools for the restaurant management API",
		Long: "restaurant-mcp exposes menus, dishes, sales and their relationships\n" +
			"as MCP tools backed by the restaurant REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadVersionFromFile()
		},
	}
	cmd.Version = config.GetVersion()
	cmd.PersistentFlags().StringSliceVarP(&opts.configFiles, "config", "c", nil, "Configuration file path (repeatable; later files override earlier ones)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newProbeCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig resolves config files, applies overrides and validates the result.
// Validation problems are listed on stderr before an error is returned.
func (o *rootOptions) loadConfig(stderr io.Writer, port int, host, transport string) (*config.Config, error) {
	files := o.configFiles
	if len(files) == 0 {
		for _, path := range configSearchPaths() {
			if _, err := os.Stat(path); err == nil {
				files = []string{path}
				break
			}
		}
	}

	cfg, err := config.LoadFromFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config.ApplyFlagOverrides(cfg, port, host, transport)

	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Configuration error: mandatory fields are missing or invalid:")
		fmt.Fprintln(stderr, "")
		for _, issue := range issues {
			fmt.Fprintf(stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Values can be set via TOML file, RESTAURANT_* environment variables, .env or CLI flags.")
		fmt.Fprintln(stderr, "")
		return nil, fmt.Errorf("invalid configuration (%d issues)", len(issues))
	}

	return cfg, nil
}

// configSearchPaths returns TOML files to auto-discover (first match wins).
// Binary-relative paths are tried first, then the working directory.
func configSearchPaths() []string {
	candidates := []string{
		configName,
		filepath.Join("config", configName),
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, configName),
		filepath.Join(binDir, "config", configName),
	}
	paths = append(paths, candidates...)

	seen := make(map[string]bool, len(paths))
	deduped := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}
	return deduped
}
