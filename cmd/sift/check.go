package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/sift/pkg/logger"
	"github.com/dmitrymomot/sift/pkg/schemaspec"
	"github.com/dmitrymomot/sift/pkg/validator"
)

var errDocumentsInvalid = errors.New("one or more documents failed validation")

func newCheckCmd(a *app) *cobra.Command {
	var (
		schemaFile string
		async      bool
		lang       string
	)

	cmd := &cobra.Command{
		Use:   "check --schema FILE DOC...",
		Short: "Validate documents against a schema",
		Long: `Validates each YAML or JSON document against the schema and prints
"ok" or the failure for every document. Use "-" to read a document from
standard input. The command exits with a non-zero status when any document
fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("async") {
				async = a.cfg.Async
			}
			if lang == "" {
				lang = a.cfg.Lang
			}
			return a.runCheck(cmd, schemaFile, args, async, lang)
		},
	}

	cmd.Flags().StringVarP(&schemaFile, "schema", "s", "", "schema file (YAML or JSON)")
	cmd.Flags().BoolVar(&async, "async", false, "validate concurrently, overrides SIFT_ASYNC")
	cmd.Flags().StringVar(&lang, "lang", "", "language for failure messages, overrides SIFT_LANG")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, schemaFile string, docs []string, async bool, lang string) error {
	ctx := cmd.Context()

	v, err := compileSchema(cmd, schemaFile)
	if err != nil {
		return err
	}

	tr, err := a.loadTranslator(ctx)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	lang = tr.Match(lang)

	out := cmd.OutOrStdout()
	failed := 0
	for _, name := range docs {
		dctx := withDocument(ctx, name)

		data, err := readFile(cmd, name)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		doc, err := decodeDocument(name, data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		start := time.Now()
		if async {
			_, err = validator.ValidateAsync(dctx, v, doc)
		} else {
			_, err = validator.Validate(v, doc)
		}
		a.log.DebugContext(dctx, "document checked",
			logger.Duration(time.Since(start)),
			slog.Bool("async", async),
			logger.Error(err),
		)

		f, ok := validator.AsFailure(err)
		switch {
		case err == nil:
			fmt.Fprintf(out, "%s: ok\n", name)
		case ok:
			failed++
			fmt.Fprintf(out, "%s: %s: %s\n", name, f.Path, f.Localize(tr, lang))
		default:
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if failed > 0 {
		a.log.InfoContext(ctx, "validation finished", logger.Schema(schemaFile), "failed", failed, "total", len(docs))
		return errDocumentsInvalid
	}
	return nil
}

func compileSchema(cmd *cobra.Command, name string) (validator.Validator, error) {
	content, err := readFile(cmd, name)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	v, err := schemaspec.Compile(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// decodeDocument decodes .json files with encoding/json, keeping numbers as
// json.Number, and everything else as YAML.
func decodeDocument(name string, data []byte) (any, error) {
	var doc any
	if strings.EqualFold(filepath.Ext(name), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	return doc, nil
}
