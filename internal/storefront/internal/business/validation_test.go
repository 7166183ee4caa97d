package business_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/internal/storefront/internal/business"
	"storefront_api/internal/storefront/internal/models"
)

func fieldParams(t *testing.T, err error) []string {
	t.Helper()
	var verr *business.ValidationError
	require.ErrorAs(t, err, &verr)
	params := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		params = append(params, f.Param)
	}
	return params
}

func TestDecodeItemPayload_Create(t *testing.T) {
	patch, err := business.DecodeItemPayload([]byte(`{"name":"Mug","price":9.5,"inStock":false}`), true)
	require.NoError(t, err)
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Mug", *patch.Name)
	assert.Equal(t, 9.5, *patch.Price)
	assert.False(t, *patch.InStock)
	assert.Nil(t, patch.Category)
}

func TestDecodeItemPayload_SchemaErrors(t *testing.T) {
	_, err := business.DecodeItemPayload([]byte(`{"description":"x"}`), true)
	assert.ElementsMatch(t, []string{"name", "price"}, fieldParams(t, err))

	_, err = business.DecodeItemPayload([]byte(`{"name":"Mug","price":"cheap"}`), true)
	assert.Equal(t, []string{"price"}, fieldParams(t, err))

	_, err = business.DecodeItemPayload([]byte(`{"price":-1}`), false)
	assert.Equal(t, []string{"price"}, fieldParams(t, err))

	_, err = business.DecodeItemPayload([]byte(`[1,2]`), false)
	assert.Equal(t, []string{"body"}, fieldParams(t, err))

	_, err = business.DecodeItemPayload([]byte(`{not json`), false)
	assert.Equal(t, []string{"body"}, fieldParams(t, err))
}

func TestNormalizeItemPatch_EscapesAndTrims(t *testing.T) {
	name := "  <b>Mug</b> "
	desc := " Tom & Jerry "
	cat := "<mugs>"
	image := " https://cdn.example/mug.png "
	price := 10.0

	out, err := business.NormalizeItemPatch(models.ItemPatch{
		Name: &name, Description: &desc, Category: &cat, Image: &image, Price: &price,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;Mug&lt;/b&gt;", *out.Name)
	assert.Equal(t, "Tom &amp; Jerry", *out.Description)
	assert.Equal(t, "&lt;mugs&gt;", *out.Category)
	assert.Equal(t, "https://cdn.example/mug.png", *out.Image)
}

func TestNormalizeItemPatch_Rejections(t *testing.T) {
	long := strings.Repeat("x", models.MaxNameLength+1)
	longDesc := strings.Repeat("y", models.MaxDescriptionLength+1)
	longCategory := strings.Repeat("c", models.MaxCategoryLength+1)
	blank := "   "
	relative := "/img/mug.png"
	ftp := "ftp://host/mug.png"
	tooExpensive := models.MaxPrice + 1
	negativeSold := -1

	cases := []struct {
		name  string
		patch models.ItemPatch
		param string
	}{
		{"long name", models.ItemPatch{Name: &long}, "name"},
		{"blank name", models.ItemPatch{Name: &blank}, "name"},
		{"long description", models.ItemPatch{Description: &longDesc}, "description"},
		{"long category", models.ItemPatch{Category: &longCategory}, "category"},
		{"relative image", models.ItemPatch{Image: &relative}, "image"},
		{"ftp image", models.ItemPatch{Image: &ftp}, "image"},
		{"price over max", models.ItemPatch{Price: &tooExpensive}, "price"},
		{"negative sold", models.ItemPatch{Sold: &negativeSold}, "sold"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := business.NormalizeItemPatch(tc.patch, false)
			assert.Contains(t, fieldParams(t, err), tc.param)
		})
	}
}

func TestNormalizeItemPatch_CreateRequiresNameAndPrice(t *testing.T) {
	_, err := business.NormalizeItemPatch(models.ItemPatch{}, true)
	assert.ElementsMatch(t, []string{"name", "price"}, fieldParams(t, err))
}

func TestNormalizeItemPatch_EmptyImageClears(t *testing.T) {
	empty := ""
	out, err := business.NormalizeItemPatch(models.ItemPatch{Image: &empty}, false)
	require.NoError(t, err)
	assert.Equal(t, "", *out.Image)
}

func TestIsAbsoluteHTTPURL(t *testing.T) {
	assert.True(t, business.IsAbsoluteHTTPURL("http://a.b/c.png"))
	assert.True(t, business.IsAbsoluteHTTPURL("https://a.b"))
	assert.False(t, business.IsAbsoluteHTTPURL("https://"))
	assert.False(t, business.IsAbsoluteHTTPURL("javascript:alert(1)"))
	assert.False(t, business.IsAbsoluteHTTPURL("mug.png"))
}

func TestNormalizeItemPatch_LengthIsCheckedBeforeEscaping(t *testing.T) {
	name := "Tom & Jerry's " + strings.Repeat("x", models.MaxNameLength-14)
	require.Len(t, []rune(name), models.MaxNameLength)

	patch, err := business.NormalizeItemPatch(models.ItemPatch{Name: &name}, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(*patch.Name, "Tom &amp; Jerry&#39;s "))
	assert.Greater(t, len([]rune(*patch.Name)), models.MaxNameLength)
}

func TestNormalizeItemPatch_PriceBoundary(t *testing.T) {
	atMax := models.MaxPrice
	patch, err := business.NormalizeItemPatch(models.ItemPatch{Price: &atMax}, false)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, *patch.Price)

	zero := 0.0
	_, err = business.NormalizeItemPatch(models.ItemPatch{Price: &zero}, false)
	require.NoError(t, err)

	justOver := 100000.01
	_, err = business.NormalizeItemPatch(models.ItemPatch{Price: &justOver}, false)
	assert.Equal(t, []string{"price"}, fieldParams(t, err))

	_, err = business.DecodeItemPayload([]byte(`{"price":100000}`), false)
	assert.NoError(t, err)
	_, err = business.DecodeItemPayload([]byte(`{"price":100000.01}`), false)
	assert.Equal(t, []string{"price"}, fieldParams(t, err))
}
