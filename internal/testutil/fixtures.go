// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oasclientgen/parser"
)

// PetstoreYAML is a two-module document (Pet and Store) sharing an Error
// component, with one path-item level parameter and a $ref request body.
const PetstoreYAML = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
servers:
  - url: https://petstore.example.com/api
paths:
  /api/v1/pets:
    get:
      operationId: petController_listPets
      summary: List pets
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  items:
                    type: array
                    items:
                      $ref: '#/components/schemas/Pet'
                  next:
                    type: string
        default:
          description: error
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
    post:
      operationId: petController_createPet
      requestBody:
        $ref: '#/components/requestBodies/NewPet'
      responses:
        "200":
          description: created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
  /api/v1/pets/{petId}:
    parameters:
      - name: petId
        in: path
        required: true
        schema:
          type: integer
          format: int64
    get:
      operationId: PetController_getPet
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
    delete:
      operationId: pet_deletePet
      deprecated: true
      responses:
        "200":
          description: deleted
          content:
            application/json:
              schema:
                type: object
                properties:
                  deleted:
                    type: boolean
  /store/orders/{orderId}:
    get:
      operationId: storeController_getOrder
      parameters:
        - $ref: '#/components/parameters/OrderId'
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/StoreOrder'
components:
  parameters:
    OrderId:
      name: orderId
      in: path
      required: true
      schema:
        type: string
  requestBodies:
    NewPet:
      content:
        application/json:
          schema:
            type: object
            required: [name]
            properties:
              name:
                type: string
                minLength: 1
                maxLength: 64
              tag:
                type: string
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
        category:
          $ref: '#/components/schemas/Category'
        tags:
          type: array
          items:
            $ref: '#/components/schemas/Tag'
    Category:
      type: object
      properties:
        name:
          type: string
    Tag:
      type: object
      properties:
        label:
          type: string
          pattern: '^[a-z]+$'
    StoreOrder:
      type: object
      required: [id]
      properties:
        id:
          type: string
        quantity:
          type: integer
          minimum: 1
          maximum: 100
        pet:
          $ref: '#/components/schemas/Pet'
        status:
          type: string
          enum: [placed, approved, delivered]
    Error:
      type: object
      required: [message]
      properties:
        code:
          type: integer
        message:
          type: string
`

// UsersYAML is a single-module document whose 200 response is an inline
// object with an array-of-object property.
const UsersYAML = `openapi: 3.0.3
info:
  title: Users
  version: 1.0.0
paths:
  /api/v1/users:
    get:
      operationId: userController_getUsers
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  data:
                    type: array
                    items:
                      type: object
`

// OrdersYAML has a PUT with one path parameter and an inline request body.
const OrdersYAML = `openapi: 3.0.3
info:
  title: Orders
  version: 1.0.0
paths:
  /orders/{id}/status:
    put:
      operationId: orderController_updateStatus
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [status]
              properties:
                status:
                  type: string
                  enum: [open, closed]
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  status:
                    type: string
`

// Parse parses src and fails the test on error.
func Parse(t *testing.T, src string) *parser.ParseResult {
	t.Helper()

	result, err := parser.New().ParseBytes([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse test document: %v", err)
	}
	return result
}

// ParseYAML parses src and returns its document.
func ParseYAML(t *testing.T, src string) *parser.Document {
	t.Helper()
	return Parse(t, src).Document
}

// WriteTempYAML writes src to a temporary .yaml file and returns its path.
func WriteTempYAML(t *testing.T, src string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, []byte(src), 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}
