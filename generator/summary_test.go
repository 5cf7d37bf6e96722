package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasclientgen/internal/testutil"
	"github.com/erraggy/oasclientgen/model"
)

func TestSummaries(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML, func(g *Generator) { g.DryRun = true })
	summaries := result.Summaries()
	require.Len(t, summaries, 2)

	store := summaries[1]
	assert.Equal(t, "Store", store.Name)
	assert.Equal(t, "store", store.Package)
	assert.Equal(t, []string{"Order"}, store.Owned)
	assert.Equal(t, []string{"Error", "Pet", "Category", "Tag"}, store.Imported)
	assert.Empty(t, store.Unresolved)
	assert.Equal(t, []OperationSummary{{
		Method:      "GetStoreByOrderId",
		Verb:        "GET",
		Path:        "/store/orders/{orderId}",
		OperationID: "storeController_getOrder",
		Response:    "Order",
	}}, store.Operations)
}

func TestSummarizeModule_Unresolved(t *testing.T) {
	types := model.NewTypeSet()
	types.Add(&model.TypeDescriptor{Name: "Cart", Resolved: true})
	types.Add(&model.TypeDescriptor{Name: "Customer", Resolved: true})
	types.Add(model.Placeholder("Ghost", "type Ghost could not be resolved"))

	s := SummarizeModule(&model.ModuleDescriptor{
		Name:        "Cart",
		PackageName: "cart",
		Operations: []*model.OperationDescriptor{{
			ExternalID:       "cartController_getCart",
			MethodName:       "getCart",
			Verb:             "GET",
			PathTemplate:     "/cart",
			ResponseTypeName: "Cart",
			Deprecated:       true,
		}},
		Types:      types,
		Owned:      []string{"Cart"},
		Unresolved: []string{"Ghost"},
	})
	assert.Equal(t, []string{"Customer"}, s.Imported)
	assert.Equal(t, []string{"Ghost"}, s.Unresolved)
	require.Len(t, s.Operations, 1)
	assert.Equal(t, "GetCart", s.Operations[0].Method)
	assert.True(t, s.Operations[0].Deprecated)
}
