package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "single lowercase letter", input: "a", want: "A"},
		{name: "snake_case simple", input: "user_profile", want: "UserProfile"},
		{name: "snake_case three words", input: "get_user_by_id", want: "GetUserById"},
		{name: "leading underscore", input: "_private", want: "Private"},
		{name: "double underscore", input: "double__under", want: "DoubleUnder"},
		{name: "kebab-case", input: "api-client", want: "ApiClient"},
		{name: "dot separator", input: "com.example.api", want: "ComExampleApi"},
		{name: "path-like", input: "/api/v1/users", want: "ApiV1Users"},
		{name: "spaces", input: "hello world", want: "HelloWorld"},
		{name: "already PascalCase", input: "UserProfile", want: "UserProfile"},
		{name: "acronym preserved", input: "API", want: "API"},
		{name: "camelCase", input: "userProfile", want: "UserProfile"},
		{name: "unicode lowercase", input: "über_user", want: "ÜberUser"},
		{name: "japanese characters", input: "日本語_test", want: "日本語Test"},
		{name: "with numbers", input: "api_v2_client", want: "ApiV2Client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPascalCase(tt.input))
		})
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"user_profile", "userProfile"},
		{"UserProfile", "userProfile"},
		{"get-user-by-id", "getUserById"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToCamelCase(tt.input), "ToCamelCase(%q)", tt.input)
	}
}

func TestToSnakeAndKebabCase(t *testing.T) {
	tests := []struct {
		input string
		snake string
		kebab string
	}{
		{"", "", ""},
		{"UserProfile", "user_profile", "user-profile"},
		{"APIClient", "api_client", "api-client"},
		{"getV1Users", "get_v1_users", "get-v1-users"},
		{"user-profile", "user_profile", "user-profile"},
		{"already_snake", "already_snake", "already-snake"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.snake, ToSnakeCase(tt.input), "ToSnakeCase(%q)", tt.input)
		assert.Equal(t, tt.kebab, ToKebabCase(tt.input), "ToKebabCase(%q)", tt.input)
	}
}

func TestToTypeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "Type"},
		{"user-id", "UserId"},
		{"type", "Type"},
		{"9", "T9"},
		{"Pet", "Pet"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToTypeName(tt.input), "ToTypeName(%q)", tt.input)
	}
}

func TestToParamName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"id", "id"},
		{"user_id", "userId"},
		{"OrderID", "orderID"},
		{"type", "type_"},
		{"range", "range_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToParamName(tt.input), "ToParamName(%q)", tt.input)
	}
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"User", "user"},
		{"UserAccount", "useraccount"},
		{"Type", "type_"},
		{"Map", "map_"},
		{"", "module"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PackageName(tt.input), "PackageName(%q)", tt.input)
	}
}

func TestEscapeReservedWord(t *testing.T) {
	assert.Equal(t, "func_", EscapeReservedWord("func"))
	assert.Equal(t, "Range", EscapeReservedWord("Range"))
	assert.Equal(t, "range_", EscapeReservedWord("range"))
	assert.Equal(t, "error", EscapeReservedWord("error"))
	assert.Equal(t, "User", EscapeReservedWord("User"))
}
