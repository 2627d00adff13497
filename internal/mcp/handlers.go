package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	goMCP "github.com/mark3labs/mcp-go/mcp"

	"github.com/koustreak/dbscaffold/internal/codegen"
	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/scaffold"
	"github.com/koustreak/dbscaffold/internal/schema"
)

type toolHandler = func(context.Context, goMCP.CallToolRequest) (*goMCP.CallToolResult, error)

type artifactResult struct {
	Kind     string `json:"kind"`
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

type tableResult struct {
	Table     string           `json:"table"`
	Artifacts []artifactResult `json:"artifacts"`
	Errors    []string         `json:"errors,omitempty"`
}

type generateResult struct {
	RunID   string        `json:"run_id"`
	Results []tableResult `json:"results"`
}

// GenerateHandler creates a handler for the generate_artifacts tool
func GenerateHandler(deps Deps) toolHandler {
	return func(ctx context.Context, request goMCP.CallToolRequest) (*goMCP.CallToolResult, error) {
		if deps.Generator == nil {
			return goMCP.NewToolResultError("generator not configured"), nil
		}
		src, err := request.RequireString("schema")
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Missing schema parameter: %v", err)), nil
		}
		doc, err := schema.Parse([]byte(src))
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Invalid schema: %v", err)), nil
		}

		args := arguments(request)
		dbType := stringArg(args, "database_type", deps.DatabaseType)
		if _, err := deps.Registry.Provider(dbType); err != nil {
			return goMCP.NewToolResultError(err.Error()), nil
		}

		kinds := deps.Artifacts
		if list := stringArg(args, "artifacts", ""); list != "" {
			if kinds, err = codegen.ParseArtifactKinds(splitList(list)); err != nil {
				return goMCP.NewToolResultError(err.Error()), nil
			}
		}

		opts := *deps.Options
		if ns := stringArg(args, "namespace", ""); ns != "" {
			opts.Namespace = ns
		}

		ctx = deps.Logger.WithContext(ctx)
		run, err := codegen.GenerateTables(ctx, deps.Generator, doc.Tables, &opts, dbType, kinds, deps.Concurrency)
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Generation failed: %v", err)), nil
		}

		out := generateResult{RunID: run.ID, Results: make([]tableResult, 0, len(run.Results))}
		for _, res := range run.Results {
			tr := tableResult{Table: res.Table, Artifacts: []artifactResult{}}
			for _, a := range res.Artifacts {
				tr.Artifacts = append(tr.Artifacts, artifactResult{Kind: a.Kind, FileName: a.FileName, Content: a.Content})
			}
			for _, f := range res.Failures {
				tr.Errors = append(tr.Errors, fmt.Sprintf("%s: %v", f.Kind, f.Err))
			}
			out.Results = append(out.Results, tr)
		}

		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Failed to marshal results: %v", err)), nil
		}
		return goMCP.NewToolResultText(string(jsonData)), nil
	}
}

// DatabaseTypesHandler creates a handler for the list_database_types tool
func DatabaseTypesHandler(deps Deps) toolHandler {
	return func(ctx context.Context, request goMCP.CallToolRequest) (*goMCP.CallToolResult, error) {
		jsonData, err := json.Marshal(deps.Registry.Names())
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Failed to marshal database types: %v", err)), nil
		}
		return goMCP.NewToolResultText(string(jsonData)), nil
	}
}

// TemplateHandler creates a handler for the get_template tool
func TemplateHandler(deps Deps) toolHandler {
	return func(ctx context.Context, request goMCP.CallToolRequest) (*goMCP.CallToolResult, error) {
		name, err := request.RequireString("kind")
		if err != nil {
			return goMCP.NewToolResultError(fmt.Sprintf("Missing kind parameter: %v", err)), nil
		}
		kind, err := scaffold.ParseKind(name)
		if err != nil {
			return goMCP.NewToolResultError(err.Error()), nil
		}
		tmpl, err := deps.Templates.Load(ctx, kind)
		if err != nil {
			if errs.IsNotFound(err) {
				return goMCP.NewToolResultError(fmt.Sprintf("Template %s not found", kind)), nil
			}
			return goMCP.NewToolResultError(fmt.Sprintf("Load template failed: %v", err)), nil
		}
		return goMCP.NewToolResultText(tmpl), nil
	}
}

func arguments(request goMCP.CallToolRequest) map[string]any {
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		return args
	}
	return nil
}

func stringArg(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
