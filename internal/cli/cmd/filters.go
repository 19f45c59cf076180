package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/paneshell/internal/cli/styles"
	"github.com/bnema/paneshell/internal/infrastructure/filtering"
)

var errNoFilterStore = errors.New("content_filtering.store_dir is not set")

var filtersJSON bool

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Manage compiled content filters",
	Long: `Compile, list and remove the content filters new panes look up.

A rule list is a JSON array of content-blocker rules. New panes use the
filter named by content_filtering.identifier when content_filtering.enabled
is true.`,
}

var filtersCompileCmd = &cobra.Command{
	Use:   "compile <identifier> <rules.json>",
	Short: "Validate a rule list and store it under identifier",
	Args:  cobra.ExactArgs(2),
	RunE:  runFiltersCompile,
}

var filtersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List compiled filters",
	Args:  cobra.NoArgs,
	RunE:  runFiltersList,
}

var filtersRemoveCmd = &cobra.Command{
	Use:   "remove <identifier>",
	Short: "Delete a compiled filter",
	Args:  cobra.ExactArgs(1),
	RunE:  runFiltersRemove,
}

func init() {
	rootCmd.AddCommand(filtersCmd)
	filtersCmd.AddCommand(filtersCompileCmd, filtersListCmd, filtersRemoveCmd)
	filtersListCmd.Flags().BoolVar(&filtersJSON, "json", false, "output as JSON")
}

func filterStore() (filtering.FilterStore, *styles.FiltersRenderer, string, error) {
	app := GetApp()
	if app == nil {
		return nil, nil, "", fmt.Errorf("app not initialized")
	}
	if app.FilterStore == nil {
		return nil, nil, "", errNoFilterStore
	}
	return app.FilterStore, styles.NewFiltersRenderer(app.Theme), app.Config.ContentFiltering.Identifier, nil
}

func runFiltersCompile(cmd *cobra.Command, args []string) error {
	store, renderer, _, err := filterStore()
	if err != nil {
		return err
	}
	return compileFilter(GetApp().Ctx(), cmd.OutOrStdout(), renderer, store, args[0], args[1])
}

func runFiltersList(cmd *cobra.Command, _ []string) error {
	store, renderer, active, err := filterStore()
	if err != nil {
		return err
	}
	return listFilters(GetApp().Ctx(), cmd.OutOrStdout(), renderer, store, active, filtersJSON)
}

func runFiltersRemove(cmd *cobra.Command, args []string) error {
	store, renderer, _, err := filterStore()
	if err != nil {
		return err
	}
	return removeFilter(GetApp().Ctx(), cmd.OutOrStdout(), renderer, store, args[0])
}

func compileFilter(
	ctx context.Context,
	out io.Writer,
	renderer *styles.FiltersRenderer,
	store filtering.FilterStore,
	identifier, rulesPath string,
) error {
	replaced := store.HasCompiledFilter(ctx, identifier)
	filter, err := store.Compile(ctx, identifier, rulesPath)
	if err != nil {
		return fmt.Errorf("compile filter: %w", err)
	}
	_, _ = fmt.Fprintln(out, renderer.RenderCompiled(filterEntry(filter), replaced))
	return nil
}

func listFilters(
	ctx context.Context,
	out io.Writer,
	renderer *styles.FiltersRenderer,
	store filtering.FilterStore,
	active string,
	asJSON bool,
) error {
	identifiers, err := store.FetchIdentifiers(ctx)
	if err != nil {
		return fmt.Errorf("list filters: %w", err)
	}

	entries := make([]styles.FilterEntry, 0, len(identifiers))
	for _, id := range identifiers {
		filter, err := store.Load(ctx, id)
		if err != nil {
			return fmt.Errorf("load filter %s: %w", id, err)
		}
		entries = append(entries, filterEntry(filter))
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	_, _ = fmt.Fprintln(out, renderer.RenderList(entries, active))
	return nil
}

func removeFilter(
	ctx context.Context,
	out io.Writer,
	renderer *styles.FiltersRenderer,
	store filtering.FilterStore,
	identifier string,
) error {
	if err := store.Remove(ctx, identifier); err != nil {
		return fmt.Errorf("remove filter: %w", err)
	}
	_, _ = fmt.Fprintln(out, renderer.RenderRemoved(identifier))
	return nil
}

func filterEntry(f *filtering.CompiledFilter) styles.FilterEntry {
	return styles.FilterEntry{ID: f.Identifier(), Rules: f.RuleCount(), CompiledAt: f.CompiledAt}
}
