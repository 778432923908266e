package mcp

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/lvillar/podsign"
	"github.com/lvillar/podsign/extract"
	"github.com/lvillar/podsign/layout"
)

// RegisterDefaultTools adds the podsign tools to the server. A nil signer
// gets the default delivery-note pipeline.
func RegisterDefaultTools(s *Server, signer *podsign.Signer) {
	if signer == nil {
		signer = podsign.New()
	}
	s.AddTool(signPDFTool(signer))
	s.AddTool(extractFieldsTool(signer))
	s.AddTool(previewLayoutTool())
}

// RegisterDefaultResources adds the podsign resources to the server.
func RegisterDefaultResources(s *Server, signer *podsign.Signer) {
	if signer == nil {
		signer = podsign.New()
	}
	s.AddResource(Resource{
		URI:         "podsign://fields",
		Name:        "Extracted delivery-note fields",
		Description: "Subcontractor and receiver fields extracted from page 1 of a delivery-note PDF. Pass ?path=/path/to/note.pdf.",
		MIMEType:    "application/json",
		Handler:     fieldsResourceHandler(signer),
	})
}

func signPDFTool(signer *podsign.Signer) Tool {
	return Tool{
		Name:        "sign_pdf",
		Description: "Sign a delivery-note PDF: extract the subcontractor and receiver from page 1, stamp the overlay (name, signature, date) onto the first page, and save or return the result.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Path to the source PDF",
				},
				"outputPath": map[string]any{
					"type":        "string",
					"description": "Optional path for the signed PDF. If omitted, the derived filename is used next to the source; set to \"-\" to return base64 instead.",
				},
			},
			"required": []string{"path"},
		},
		Handler: func(args json.RawMessage) (ToolResult, error) {
			var params struct {
				Path       string `json:"path"`
				OutputPath string `json:"outputPath"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return ToolResult{}, fmt.Errorf("decoding arguments: %w", err)
			}
			if params.Path == "" {
				return ToolResult{}, fmt.Errorf("missing 'path' argument")
			}

			res, err := signer.SignFile(params.Path)
			if err != nil {
				return ToolResult{}, fmt.Errorf("signing %s: %w", params.Path, err)
			}

			summary := fmt.Sprintf("Signed %s: subcon=%q receiver=%q",
				params.Path, res.Fields.Subcon.Value, res.Fields.Receiver.Value)

			if params.OutputPath == "-" {
				return ToolResult{
					Content: []ContentBlock{{
						Type: "text",
						Text: fmt.Sprintf("%s (%d bytes). Base64 data:\n%s",
							summary, len(res.Signed), base64.StdEncoding.EncodeToString(res.Signed)),
					}},
				}, nil
			}

			out := params.OutputPath
			if out == "" {
				out = filepath.Join(filepath.Dir(params.Path), res.Filename)
			}
			if err := os.WriteFile(out, res.Signed, 0644); err != nil {
				return ToolResult{}, fmt.Errorf("writing %s: %w", out, err)
			}
			return ToolResult{
				Content: []ContentBlock{{
					Type: "text",
					Text: fmt.Sprintf("%s -> %s (%d bytes)", summary, out, len(res.Signed)),
				}},
			}, nil
		},
	}
}

func extractFieldsTool(signer *podsign.Signer) Tool {
	return Tool{
		Name:        "extract_fields",
		Description: "Extract the subcontractor and site-receiver fields from page 1 of a delivery-note PDF without producing a signed document. Returns each field's value and whether its pattern matched.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Path to the PDF file",
				},
			},
			"required": []string{"path"},
		},
		Handler: func(args json.RawMessage) (ToolResult, error) {
			var params struct {
				Path string `json:"path"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return ToolResult{}, fmt.Errorf("decoding arguments: %w", err)
			}
			if params.Path == "" {
				return ToolResult{}, fmt.Errorf("missing 'path' argument")
			}

			fields, err := signer.ExtractFile(params.Path)
			if err != nil {
				return ToolResult{}, fmt.Errorf("extracting from %s: %w", params.Path, err)
			}
			return ToolResult{
				Content: []ContentBlock{{Type: "text", Text: fieldsJSON(fields)}},
			}, nil
		},
	}
}

func previewLayoutTool() Tool {
	return Tool{
		Name:        "preview_layout",
		Description: "Preview how a subcontractor name will be wrapped across the overlay's two-line region and which font size it gets.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"subcon": map[string]any{
					"type":        "string",
					"description": "Subcontractor name to lay out",
				},
			},
			"required": []string{"subcon"},
		},
		Handler: func(args json.RawMessage) (ToolResult, error) {
			var params struct {
				Subcon string `json:"subcon"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return ToolResult{}, fmt.Errorf("decoding arguments: %w", err)
			}

			res := layout.Split(params.Subcon)
			out, _ := json.MarshalIndent(map[string]any{
				"line1":    res.Line1,
				"line2":    res.Line2,
				"fontSize": res.FontSize,
			}, "", "  ")
			return ToolResult{
				Content: []ContentBlock{{Type: "text", Text: string(out)}},
			}, nil
		},
	}
}

func fieldsResourceHandler(signer *podsign.Signer) ResourceHandler {
	return func(uri string) ([]ResourceContent, error) {
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("parsing URI: %w", err)
		}
		path := u.Query().Get("path")
		if path == "" {
			return nil, fmt.Errorf("missing 'path' query parameter")
		}

		fields, err := signer.ExtractFile(path)
		if err != nil {
			return nil, fmt.Errorf("extracting from %s: %w", path, err)
		}
		return []ResourceContent{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     fieldsJSON(fields),
		}}, nil
	}
}

func fieldsJSON(fields extract.Fields) string {
	out, _ := json.MarshalIndent(map[string]any{
		"subcon":        fields.Subcon.Value,
		"subconFound":   fields.Subcon.Found,
		"receiver":      fields.Receiver.Value,
		"receiverFound": fields.Receiver.Found,
	}, "", "  ")
	return string(out)
}
