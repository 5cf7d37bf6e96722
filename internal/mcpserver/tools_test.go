package mcpserver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasclientgen/generator"
	"github.com/erraggy/oasclientgen/internal/testutil"
)

// resultText returns the text of the first content item of an error result.
func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, r)
	require.True(t, r.IsError)
	require.NotEmpty(t, r.Content)
	text, ok := r.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", r.Content[0])
	return text.Text
}

const lenientOnlyYAML = `openapi: 3.0.3
info:
  title: Notes
  version: "2"
paths:
  /notes:
    post:
      operationId: noteController_createNote
      requestBody:
        content:
          application/json:
            schema:
              type: object
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Missing'
`

func TestGenerateTool(t *testing.T) {
	dir := t.TempDir()

	_, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, generateInput{
		Spec:        specInput{Content: testutil.PetstoreYAML},
		OutputDir:   dir,
		PackageName: "petstore",
	})
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, dir, output.OutputDir)
	assert.Equal(t, "petstore", output.PackageName)
	assert.Equal(t, "strict", output.Policy)
	assert.Equal(t, 3, output.FileCount)
	assert.Equal(t, 5, output.GeneratedOperations)
	assert.Equal(t, 12, output.GeneratedTypes)
	assert.Zero(t, output.CriticalCount)

	var names []string
	for _, f := range output.Files {
		names = append(names, f.Name)
		info, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(f.Name)))
		require.NoError(t, statErr)
		assert.Equal(t, int64(f.Size), info.Size())
	}
	assert.Equal(t, []string{"client.go", "pet/pet.go", "store/store.go"}, names)
}

func TestGenerateTool_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   generateInput
		wantErr string
	}{
		{
			name:    "missing output dir",
			input:   generateInput{Spec: specInput{Content: testutil.PetstoreYAML}},
			wantErr: "output_dir is required",
		},
		{
			name:    "no spec",
			input:   generateInput{OutputDir: "out"},
			wantErr: "exactly one of file, url, or content",
		},
		{
			name: "two specs",
			input: generateInput{
				Spec:      specInput{Content: testutil.PetstoreYAML, File: "x.yaml"},
				OutputDir: "out",
			},
			wantErr: "got 2",
		},
		{
			name: "strict policy rejects placeholders",
			input: generateInput{
				Spec:      specInput{Content: lenientOnlyYAML},
				OutputDir: "out",
			},
			wantErr: "request schema",
		},
		{
			name: "unknown policy",
			input: generateInput{
				Spec:      specInput{Content: testutil.PetstoreYAML},
				OutputDir: "out",
				Policy:    "sloppy",
			},
			wantErr: "must be strict or lenient",
		},
		{
			name: "bad package name",
			input: generateInput{
				Spec:        specInput{Content: testutil.PetstoreYAML},
				OutputDir:   "out",
				PackageName: "my-client",
			},
			wantErr: "not a valid Go package name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			assert.Contains(t, resultText(t, r), tt.wantErr)
		})
	}
}

func TestGenerateTool_Lenient(t *testing.T) {
	dir := t.TempDir()
	format := false

	_, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, generateInput{
		Spec:      specInput{Content: lenientOnlyYAML},
		OutputDir: dir,
		Policy:    "lenient",
		Format:    &format,
	})
	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, "lenient", output.Policy)
	assert.Positive(t, output.WarningCount)
	var warnings int
	for _, i := range output.Issues {
		if i.Severity == "warning" {
			warnings++
		}
	}
	assert.Equal(t, output.WarningCount, warnings)

	src, err := os.ReadFile(filepath.Join(dir, "note", "note.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "// Diagnostic:")
}

func TestInspectTool(t *testing.T) {
	_, output, err := handleInspect(context.Background(), &mcp.CallToolRequest{}, inspectInput{
		Spec: specInput{Content: testutil.PetstoreYAML},
	})
	require.NoError(t, err)

	assert.Equal(t, "Petstore", output.Title)
	assert.Equal(t, "1.0.0", output.Version)
	assert.Equal(t, "api", output.PackageName)
	assert.Equal(t, 2, output.ModuleCount)
	assert.Equal(t, 5, output.OperationCount)
	require.Len(t, output.Modules, 2)

	pet := output.Modules[0]
	assert.Equal(t, "Pet", pet.Name)
	assert.Equal(t, "pet", pet.Package)
	assert.Equal(t, []string{"Pet", "GetV1PetsResponse", "CreateV1PetsRequest", "DeleteV1ByPetIdResponse"}, pet.Owned)
	assert.Equal(t, []string{"Error", "Category", "Tag"}, pet.Imported)
	assert.Empty(t, pet.Unresolved)
	require.Len(t, pet.Operations, 4)
	assert.Equal(t, generator.OperationSummary{
		Method:      "GetV1ByPetId",
		Verb:        "GET",
		Path:        "/api/v1/pets/{petId}",
		OperationID: "PetController_getPet",
		Response:    "Pet",
	}, pet.Operations[2])
	assert.True(t, pet.Operations[3].Deprecated)

	store := output.Modules[1]
	assert.Equal(t, []string{"Order"}, store.Owned)
	assert.Equal(t, []string{"Error", "Pet", "Category", "Tag"}, store.Imported)
}

func TestInspectTool_ModuleFilter(t *testing.T) {
	_, output, err := handleInspect(context.Background(), &mcp.CallToolRequest{}, inspectInput{
		Spec:   specInput{Content: testutil.PetstoreYAML},
		Module: "Store",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, output.ModuleCount)
	require.Len(t, output.Modules, 1)
	assert.Equal(t, "Store", output.Modules[0].Name)
}

func TestInspectTool_Unresolved(t *testing.T) {
	_, output, err := handleInspect(context.Background(), &mcp.CallToolRequest{}, inspectInput{
		Spec:   specInput{Content: lenientOnlyYAML},
		Policy: "lenient",
	})
	require.NoError(t, err)
	require.Len(t, output.Modules, 1)
	assert.Equal(t, []string{"Missing"}, output.Modules[0].Unresolved)
	assert.NotContains(t, output.Modules[0].Imported, "Missing")
}

func TestSpecInput_InlineLimit(t *testing.T) {
	saved := cfg.MaxInlineSize
	cfg.MaxInlineSize = 8
	t.Cleanup(func() { cfg.MaxInlineSize = saved })

	_, err := specInput{Content: testutil.PetstoreYAML}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OASCLIENTGEN_MAX_INLINE_SIZE")
}

func TestSpecInput_File(t *testing.T) {
	path := testutil.WriteTempYAML(t, testutil.PetstoreYAML)
	pr, err := specInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Equal(t, path, pr.SourcePath)
	assert.Equal(t, "Petstore", pr.Document.Info.Title)
}

func TestSanitizeError(t *testing.T) {
	assert.Empty(t, sanitizeError(nil))
	assert.Equal(t, "open <path>: no such file",
		sanitizeError(errors.New("open /home/dev/specs/api.yaml: no such file")))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("OASCLIENTGEN_POLICY", "LENIENT")
	t.Setenv("OASCLIENTGEN_PACKAGE", "shop")
	t.Setenv("OASCLIENTGEN_FORMAT", "nope")
	t.Setenv("OASCLIENTGEN_MAX_INLINE_SIZE", "-1")

	c := loadConfig()
	assert.Equal(t, "lenient", c.Policy)
	assert.Equal(t, "shop", c.PackageName)
	assert.True(t, c.Format)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.AllowPrivateIPs)

	t.Setenv("OASCLIENTGEN_POLICY", "sloppy")
	assert.Equal(t, "strict", loadConfig().Policy)
}
