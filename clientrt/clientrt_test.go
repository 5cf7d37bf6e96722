package clientrt

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pet struct {
	ID   int64   `json:"id"`
	Name string  `json:"name" validate:"required,min=1,max=16"`
	Tag  *string `json:"tag,omitempty" validate:"omitempty,pattern" pattern:"^[a-z]+$"`
}

type petList struct {
	Items []pet `json:"items"`
}

// executor is the shape of a generated client's Execute method.
type executor struct {
	t Transport
}

func (e executor) Execute(ctx context.Context, call *Call, out any) error {
	if err := Validate(call.Payload); err != nil {
		return err
	}
	return Send(ctx, e.t, JSON{}, call, out)
}

func newTransport(url string, opts ...TransportOption) *HTTPTransport {
	opts = append([]TransportOption{WithMaxRetries(2), WithRetryWait(time.Millisecond, 5*time.Millisecond)}, opts...)
	return NewHTTPTransport(url+"/", opts...)
}

func TestDo_RoundTrip(t *testing.T) {
	var got struct {
		method, path, query, auth, contentType, ua string
		body                                      pet
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.RawQuery
		got.auth = r.Header.Get("Authorization")
		got.contentType = r.Header.Get("Content-Type")
		got.ua = r.Header.Get("User-Agent")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &got.body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "name": "rex"}`))
	}))
	defer srv.Close()

	exec := executor{t: newTransport(srv.URL, WithUserAgent("petstore-client/1.0"))}
	resp, err := Do[pet](context.Background(), exec, http.MethodPut, "/pets/7",
		&pet{Name: "rex"},
		WithBearerToken("secret"),
		WithQuery("dryRun", "true"),
	)
	require.NoError(t, err)
	assert.Equal(t, &pet{ID: 7, Name: "rex"}, resp)

	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/pets/7", got.path)
	assert.Equal(t, "dryRun=true", got.query)
	assert.Equal(t, "Bearer secret", got.auth)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, "petstore-client/1.0", got.ua)
	assert.Equal(t, "rex", got.body.Name)
}

func TestDo_EmptyPayloadSendsNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		assert.Empty(t, data)
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"items": [{"id": 1, "name": "a"}, {"id": 2, "name": "b"}]}`))
	}))
	defer srv.Close()

	resp, err := Do[petList](context.Background(), executor{t: newTransport(srv.URL)}, http.MethodGet, "/pets", Empty{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "b", resp.Items[1].Name)
}

func TestDo_StatusError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"message": "not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Do[pet](context.Background(), executor{t: newTransport(srv.URL)}, http.MethodGet, "/pets/9", Empty{})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusInternalServerError))
	assert.Contains(t, err.Error(), "not found")
	assert.Equal(t, int32(1), calls.Load(), "4xx is not retried")
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"id": 1, "name": "ok"}`))
	}))
	defer srv.Close()

	resp, err := Do[pet](context.Background(), executor{t: newTransport(srv.URL)}, http.MethodGet, "/pets/1", Empty{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDo_GivesUpWithStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := Do[pet](context.Background(), executor{t: newTransport(srv.URL)}, http.MethodGet, "/pets/1", Empty{})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadGateway))
}

func TestDo_TooManyRequestsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := Do[pet](context.Background(), executor{t: newTransport(srv.URL)}, http.MethodGet, "/pets", Empty{})
	assert.True(t, IsStatus(err, http.StatusTooManyRequests))
	assert.Equal(t, int32(1), calls.Load())
}

func TestDo_ValidationStopsRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	_, err := Do[pet](context.Background(), executor{t: newTransport(srv.URL)}, http.MethodPost, "/pets", &pet{})
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "pet.name")
	assert.Equal(t, int32(0), calls.Load())
}

func TestDo_UnmarshalError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := Do[pet](context.Background(), executor{t: newTransport(srv.URL)}, http.MethodGet, "/pets/1", Empty{})
	var me *MarshalError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "unmarshal", me.Op)
}

func TestWithHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, WithHTTPClient(srv.Client()))
	assert.Equal(t, srv.URL, tr.BaseURL())
	_, err := tr.NewRequest().Path("pets").Execute(context.Background())
	assert.True(t, IsStatus(err, http.StatusServiceUnavailable))
}

func TestValidate(t *testing.T) {
	upper := "REX"
	lower := "rex"
	type order struct {
		Quantity int64    `json:"quantity" validate:"gte=1,lte=10,multipleof=2"`
		Status   string   `json:"status" validate:"oneof=placed delivered"`
		Tags     []string `json:"tags,omitempty" validate:"omitempty,max=2,unique"`
	}
	type account struct {
		Password string `json:"password" validate:"required,pattern" pattern:"^(?=.*[0-9]).{8,}$"`
	}

	tests := []struct {
		name    string
		v       any
		wantErr string
	}{
		{"valid", &pet{Name: "rex", Tag: &lower}, ""},
		{"missing required", pet{}, "pet.name"},
		{"too long", pet{Name: "abcdefghijklmnopq"}, `"max=16"`},
		{"pattern mismatch", pet{Name: "rex", Tag: &upper}, `"pattern"`},
		{"valid order", order{Quantity: 4, Status: "placed"}, ""},
		{"not a multiple", order{Quantity: 3, Status: "placed"}, `"multipleof=2"`},
		{"out of range", order{Quantity: 12, Status: "placed"}, `"lte=10"`},
		{"not in enum", order{Quantity: 2, Status: "lost"}, "order.status"},
		{"duplicate items", order{Quantity: 2, Status: "placed", Tags: []string{"a", "a"}}, `"unique"`},
		{"uncompilable pattern", account{Password: "abcdefg1"}, ""},
		{"uncompilable pattern keeps other rules", account{}, "account.password"},
		{"nil", nil, ""},
		{"empty", Empty{}, ""},
		{"non struct", map[string]any{"a": 1}, ""},
		{"nil pointer", (*pet)(nil), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.v)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCall(t *testing.T) {
	call := NewCall(http.MethodGet, "/x", Empty{}, WithHeader("X-A", "1"), WithHeader("X-A", "2"), nil, WithQuery("q", "a"), WithQuery("q", "b"))
	assert.Equal(t, "2", call.Header.Get("X-A"))
	assert.Equal(t, []string{"a", "b"}, call.Query["q"])
	assert.False(t, call.HasBody())
	assert.False(t, NewCall(http.MethodGet, "/x", nil).HasBody())
	assert.True(t, NewCall(http.MethodPost, "/x", &pet{}).HasBody())
}
