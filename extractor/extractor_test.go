package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasclientgen/internal/issues"
	"github.com/erraggy/oasclientgen/internal/maputil"
	"github.com/erraggy/oasclientgen/internal/severity"
	"github.com/erraggy/oasclientgen/internal/testutil"
	"github.com/erraggy/oasclientgen/model"
	"github.com/erraggy/oasclientgen/oaserrors"
	"github.com/erraggy/oasclientgen/parser"
)

const header = "openapi: 3.0.3\ninfo:\n  title: t\n  version: '1'\n"

func extract(t *testing.T, src string, policy TypeResolutionPolicy) (*Result, error) {
	t.Helper()
	return New(WithPolicy(policy)).Extract(testutil.ParseYAML(t, src))
}

func TestExtract_ScenarioA(t *testing.T) {
	result, err := extract(t, testutil.UsersYAML, StrictPolicy{})
	require.NoError(t, err)
	require.Len(t, result.Operations, 1)

	op := result.Operations[0]
	assert.Equal(t, "userController_getUsers", op.ExternalID)
	assert.Equal(t, "User", op.Module)
	assert.Equal(t, "getV1Users", op.MethodName)
	assert.Equal(t, "GET", op.Verb)
	assert.Equal(t, "/api/v1/users", op.PathTemplate)
	assert.Empty(t, op.RequestTypeName)
	assert.Equal(t, "GetV1UsersResponse", op.ResponseTypeName)
	assert.Empty(t, op.PathParams)

	resp, ok := result.Pool.Get("GetV1UsersResponse")
	require.True(t, ok)
	assert.True(t, resp.Resolved)
	assert.True(t, resp.Synthesized)
	require.Len(t, resp.Properties, 1)
	data := resp.Properties[0]
	assert.Equal(t, "data", data.Name)
	assert.False(t, data.Required)
	assert.Equal(t, model.ArrayOf(model.Primitive(model.Object)), data.Type)
	assert.Empty(t, result.Issues)
}

func TestExtract_ScenarioB(t *testing.T) {
	src := header + `paths:
  /things:
    get:
      operationId: Controller_
      responses:
        "200":
          description: ok
  /things/{thingId}:
    delete:
      responses:
        "200":
          description: ok
    put:
      operationId: thingController_replace
      responses:
        "200":
          description: ok
`
	for _, policy := range []TypeResolutionPolicy{StrictPolicy{}, LenientPolicy{}} {
		t.Run(policy.Name(), func(t *testing.T) {
			result, err := extract(t, src, policy)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, oaserrors.ErrMalformedOperationID))
			assert.True(t, errors.Is(err, oaserrors.ErrMissingOperationID))

			var agg *oaserrors.AggregateError
			require.True(t, errors.As(err, &agg))
			require.Len(t, agg.Errors, 2)

			var malformed *oaserrors.OperationIDError
			require.True(t, errors.As(agg.Errors[0], &malformed))
			assert.Equal(t, "GET", malformed.Verb)
			assert.Equal(t, "/things", malformed.Path)
			assert.Equal(t, "Controller_", malformed.OperationID)
			assert.Contains(t, err.Error(), "GET /things")

			var missing *oaserrors.OperationIDError
			require.True(t, errors.As(agg.Errors[1], &missing))
			assert.Equal(t, oaserrors.MissingOperationID, missing.Kind)
			assert.Equal(t, "DELETE", missing.Verb)
			assert.Equal(t, "thingsController_deleteByThingId", missing.Suggestion)
		})
	}
}

func TestExtract_ScenarioC(t *testing.T) {
	result, err := extract(t, testutil.OrdersYAML, StrictPolicy{})
	require.NoError(t, err)
	require.Len(t, result.Operations, 1)

	op := result.Operations[0]
	assert.Equal(t, "Order", op.Module)
	assert.Equal(t, "updateStatusById", op.MethodName)
	assert.Equal(t, []model.PathParam{{Name: "id", Type: model.String}}, op.PathParams)
	assert.Equal(t, "UpdateStatusByIdRequest", op.RequestTypeName)
	assert.Equal(t, "UpdateStatusByIdResponse", op.ResponseTypeName)

	req, ok := result.Pool.Get("UpdateStatusByIdRequest")
	require.True(t, ok)
	status, ok := req.Property("status")
	require.True(t, ok)
	assert.True(t, status.Required)
	assert.Equal(t, []any{"open", "closed"}, status.Constraints.Enum)
}

func TestExtract_Petstore(t *testing.T) {
	result, err := extract(t, testutil.PetstoreYAML, StrictPolicy{})
	require.NoError(t, err)

	type summary struct {
		module, method, request, response string
	}
	var got []summary
	for _, op := range result.Operations {
		got = append(got, summary{op.Module, op.MethodName, op.RequestTypeName, op.ResponseTypeName})
	}
	assert.Equal(t, []summary{
		{"Pet", "getV1Pets", "", "GetV1PetsResponse"},
		{"Pet", "createV1Pets", "CreateV1PetsRequest", "Pet"},
		{"Pet", "getV1ByPetId", "", "Pet"},
		{"Pet", "deleteV1ByPetId", "", "DeleteV1ByPetIdResponse"},
		{"Store", "getStoreByOrderId", "", "StoreOrder"},
	}, got)

	// path-item level parameter keeps its declared type
	assert.Equal(t, []model.PathParam{{Name: "petId", Type: model.Integer}}, result.Operations[2].PathParams)
	// $ref parameter resolved from components
	assert.Equal(t, []model.PathParam{{Name: "orderId", Type: model.String}}, result.Operations[4].PathParams)
	assert.True(t, result.Operations[3].Deprecated)
	assert.Equal(t, "List pets", result.Operations[0].Summary)

	assert.Equal(t, []string{
		"Pet", "Category", "Tag", "StoreOrder", "Error",
		"GetV1PetsResponse", "CreateV1PetsRequest", "DeleteV1ByPetIdResponse",
	}, result.Pool.Names())

	req, _ := result.Pool.Get("CreateV1PetsRequest")
	name, ok := req.Property("name")
	require.True(t, ok)
	assert.True(t, name.Required)
}

const emptyRequestYAML = header + `paths:
  /widgets:
    post:
      operationId: widgetController_create
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
                $ref: '#/components/schemas/Widget'
components:
  schemas:
    Widget:
      type: object
      properties:
        id:
          type: string
`

const missingResponseYAML = header + `paths:
  /widgets:
    get:
      operationId: widgetController_list
      responses:
        "404":
          description: missing
  /widgets/{id}:
    get:
      operationId: widgetController_get
      responses:
        "200":
          description: no body
`

func TestExtract_Policies(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		strictErr  error
		typeName   string
		diagnostic string
	}{
		{
			name:       "empty request schema",
			src:        emptyRequestYAML,
			strictErr:  oaserrors.ErrEmptyRequestSchema,
			typeName:   "CreateWidgetsRequest",
			diagnostic: "request schema empty for POST /widgets",
		},
		{
			name:       "missing 200 response",
			src:        missingResponseYAML,
			strictErr:  oaserrors.ErrMissing200Response,
			typeName:   "GetWidgetsResponse",
			diagnostic: "200 response missing for GET /widgets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/strict", func(t *testing.T) {
			_, err := extract(t, tt.src, StrictPolicy{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.strictErr), "got %v", err)

			var se *oaserrors.SchemaError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.typeName, se.TypeName)
		})
		t.Run(tt.name+"/lenient", func(t *testing.T) {
			result, err := extract(t, tt.src, LenientPolicy{})
			require.NoError(t, err)

			td, ok := result.Pool.Get(tt.typeName)
			require.True(t, ok)
			assert.False(t, td.Resolved)
			assert.True(t, td.Synthesized)
			assert.Equal(t, tt.diagnostic, td.Diagnostic)

			require.NotEmpty(t, result.Issues)
			assert.Equal(t, severity.SeverityWarning, result.Issues[0].Severity)
			assert.Equal(t, tt.diagnostic, result.Issues[0].Message)
			assert.Equal(t, "Widget", result.Issues[0].Module)
		})
	}
}

func TestExtract_MissingResponseSchema(t *testing.T) {
	result, err := extract(t, missingResponseYAML, LenientPolicy{})
	require.NoError(t, err)
	require.Len(t, result.Operations, 2)

	td, ok := result.Pool.Get("GetByIdResponse")
	require.True(t, ok)
	assert.Equal(t, "response schema missing for GET /widgets/{id}", td.Diagnostic)
	// the undeclared {id} placeholder becomes a string parameter
	assert.Equal(t, []model.PathParam{{Name: "id", Type: model.String}}, result.Operations[1].PathParams)

	counts := issues.Tally(result.Issues)
	assert.Equal(t, 2, counts.Warning)
	assert.Equal(t, 1, counts.Info)
}

func TestExtract_EmptyReferencedPayload(t *testing.T) {
	src := header + `paths:
  /widgets:
    get:
      operationId: widgetController_list
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Widget'
components:
  schemas:
    Widget:
      type: object
`
	_, err := extract(t, src, StrictPolicy{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrEmptyResponseSchema))

	result, err := extract(t, src, LenientPolicy{})
	require.NoError(t, err)
	assert.Equal(t, "Widget", result.Operations[0].ResponseTypeName)
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0].Message, "Widget has no properties")
}

func TestExtract_MethodCollision(t *testing.T) {
	src := header + `paths:
  /widgets/{id}:
    get:
      operationId: widgetController_get
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  id:
                    type: string
  /gadgets/{id}:
    get:
      operationId: widgetController_getGadget
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  id:
                    type: string
`
	_, err := extract(t, src, StrictPolicy{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrMethodNameCollision))
	var ce *oaserrors.CollisionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "GET /widgets/{id}", ce.First)
	assert.Equal(t, "GET /gadgets/{id}", ce.Second)

	result, err := extract(t, src, LenientPolicy{})
	require.NoError(t, err)
	assert.Equal(t, "getById", result.Operations[0].MethodName)
	assert.Equal(t, "getById2", result.Operations[1].MethodName)
	assert.Equal(t, "GetById2Response", result.Operations[1].ResponseTypeName)
	warns := warnings(result.Issues)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0].Message, "renamed to getById2")
	assert.Equal(t, 2, issues.Tally(result.Issues).Info, "undeclared {id} placeholders")
}

func TestExtract_QualifiesClashingSynthesizedNames(t *testing.T) {
	src := header + `paths:
  /alpha/{id}:
    get:
      operationId: alpha_getOne
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  a:
                    type: string
  /beta/{id}:
    get:
      operationId: beta_getOne
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  b:
                    type: string
`
	result, err := extract(t, src, StrictPolicy{})
	require.NoError(t, err)
	assert.Equal(t, "GetByIdResponse", result.Operations[0].ResponseTypeName)
	assert.Equal(t, "BetaGetByIdResponse", result.Operations[1].ResponseTypeName)
	assert.Equal(t, []string{"GetByIdResponse", "BetaGetByIdResponse"}, result.Pool.Names())
}

func TestExtract_Components(t *testing.T) {
	src := header + `paths: {}
components:
  schemas:
    Status:
      type: string
      enum: [on, off]
    Shape:
      type: object
      properties:
        kind:
          oneOf:
            - type: string
            - type: integer
    Point:
      type: object
      properties:
        x:
          type: number
`
	_, err := extract(t, src, StrictPolicy{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedSchemaKind))
	var se *oaserrors.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "component", se.Role)
	assert.Equal(t, "Shape", se.TypeName)

	result, err := extract(t, src, LenientPolicy{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Shape", "Point"}, result.Pool.Names())
	shape, _ := result.Pool.Get("Shape")
	assert.False(t, shape.Resolved)
	assert.Contains(t, shape.Diagnostic, "component schema Shape unsupported")

	counts := issues.Tally(result.Issues)
	assert.Equal(t, 1, counts.Info)
	assert.Equal(t, 1, counts.Warning)
	assert.Equal(t, "components.schemas.Status", result.Issues[0].Path)
}

func TestExtract_DanglingParameterRef(t *testing.T) {
	src := header + `paths:
  /widgets/{id}:
    get:
      operationId: widgetController_get
      parameters:
        - $ref: '#/components/parameters/Missing'
      responses:
        "200":
          description: ok
`
	_, err := extract(t, src, LenientPolicy{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrDanglingReference))
	assert.Contains(t, err.Error(), "GET /widgets/{id}")
}

func TestExtract_OperationParamsOverridePathItem(t *testing.T) {
	src := header + `paths:
  /widgets/{id}/parts/{partId}:
    parameters:
      - name: id
        in: path
        schema:
          type: string
      - name: partId
        in: path
        schema:
          type: string
    get:
      operationId: widgetController_getPart
      parameters:
        - name: id
          in: path
          schema:
            type: integer
        - name: verbose
          in: query
          schema:
            type: boolean
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  name:
                    type: string
`
	result, err := extract(t, src, StrictPolicy{})
	require.NoError(t, err)
	op := result.Operations[0]
	assert.Equal(t, []model.PathParam{
		{Name: "id", Type: model.Integer},
		{Name: "partId", Type: model.String},
	}, op.PathParams)
	assert.Equal(t, "getByIdPartId", op.MethodName)
}

func TestExtract_NilDocument(t *testing.T) {
	_, err := New().Extract(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestNew_Defaults(t *testing.T) {
	e := New(WithPolicy(nil), WithLogger(nil))
	assert.Equal(t, "strict", e.Policy().Name())
}

func TestPickJSON(t *testing.T) {
	schema := &parser.Schema{}
	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{"application/json first", []string{"text/plain", "application/vnd.api+json", "application/json"}, "application/json"},
		{"vendor json", []string{"text/plain", "application/problem+json; charset=utf-8"}, "application/problem+json; charset=utf-8"},
		{"wildcard", []string{"text/plain", "*/*"}, "*/*"},
		{"none", []string{"text/plain"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := maputil.NewOrdered[*parser.MediaType](len(tt.types))
			media := make(map[string]*parser.MediaType)
			for _, ct := range tt.types {
				mt := &parser.MediaType{Schema: schema}
				media[ct] = mt
				content.Set(ct, mt)
			}
			got := pickJSON(content)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			assert.Same(t, media[tt.want], got)
		})
	}
}

func warnings(list []issues.Issue) []issues.Issue {
	var out []issues.Issue
	for _, is := range list {
		if is.Severity == severity.SeverityWarning {
			out = append(out, is)
		}
	}
	return out
}

func TestExtract_NonObjectComponentReferences(t *testing.T) {
	tests := []struct {
		name string
		src  string
		from string
	}{
		{
			name: "response payload",
			src: header + `paths:
  /tags:
    get:
      operationId: tagController_list
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Tags'
components:
  schemas:
    Tags:
      type: array
      items:
        type: string
`,
			from: "GET /tags",
		},
		{
			name: "property",
			src: header + `paths:
  /tags:
    get:
      operationId: tagController_list
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Page'
components:
  schemas:
    Page:
      type: object
      properties:
        tags:
          $ref: '#/components/schemas/Tags'
    Tags:
      type: array
      items:
        type: string
`,
			from: "Page.tags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extract(t, tt.src, StrictPolicy{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedSchemaKind))
			assert.False(t, errors.Is(err, oaserrors.ErrDanglingReference))
			assert.Contains(t, err.Error(), tt.from)

			result, err := extract(t, tt.src, LenientPolicy{})
			require.NoError(t, err)
			td, ok := result.Pool.Get("Tags")
			require.True(t, ok)
			assert.False(t, td.Resolved)
			assert.Contains(t, td.Diagnostic, "is not an object")
			assert.Contains(t, td.Diagnostic, tt.from)

			warns := warnings(result.Issues)
			require.Len(t, warns, 1)
			assert.Equal(t, issues.ComponentPath("Tags"), warns[0].Path)
		})
	}
}

func TestExtract_UnreferencedNonObjectComponent(t *testing.T) {
	src := header + `paths:
  /tags:
    get:
      operationId: tagController_list
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  id:
                    type: string
components:
  schemas:
    Tags:
      type: array
      items:
        type: string
`
	result, err := extract(t, src, StrictPolicy{})
	require.NoError(t, err)
	assert.False(t, result.Pool.Has("Tags"))
	assert.Empty(t, warnings(result.Issues))
}

func TestExtract_EmptyComponentProperty(t *testing.T) {
	src := header + `paths:
  /widgets:
    get:
      operationId: widgetController_list
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Page'
components:
  schemas:
    Page:
      type: object
      properties:
        meta:
          $ref: '#/components/schemas/Meta'
    Meta:
      type: object
`
	_, err := extract(t, src, StrictPolicy{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrEmptySchema))
	assert.Contains(t, err.Error(), "Page.meta")

	result, err := extract(t, src, LenientPolicy{})
	require.NoError(t, err)
	td, ok := result.Pool.Get("Meta")
	require.True(t, ok)
	assert.False(t, td.Resolved)
	assert.Equal(t, "component schema Meta has no properties; referenced by Page.meta", td.Diagnostic)
	page, ok := result.Pool.Get("Page")
	require.True(t, ok)
	assert.True(t, page.Resolved)

	warns := warnings(result.Issues)
	require.Len(t, warns, 1)
	assert.Equal(t, issues.ComponentPath("Meta"), warns[0].Path)
}
