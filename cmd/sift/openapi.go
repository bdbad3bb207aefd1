package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sift/pkg/openapi"
)

func newOpenAPICmd(a *app) *cobra.Command {
	var schemaFile, name string

	cmd := &cobra.Command{
		Use:   "openapi --schema FILE --name NAME",
		Short: "Print the OpenAPI components generated from a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := compileSchema(cmd, schemaFile)
			if err != nil {
				return err
			}

			gen := openapi.NewGenerator()
			gen.Register(name, v)
			components := gen.Components()

			body, err := json.MarshalIndent(map[string]any{
				"components": map[string]any{"schemas": components.Schemas},
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("encode components: %w", err)
			}
			a.log.DebugContext(cmd.Context(), "components generated", "schemas", len(components.Schemas))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return err
		},
	}

	cmd.Flags().StringVarP(&schemaFile, "schema", "s", "", "schema file (YAML or JSON)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "component name of the schema")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
