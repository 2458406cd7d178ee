package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProducts() []Product {
	return []Product{
		{Title: "Sapato Preto", Description: ""},
		{Title: "Bolsa Azul", Description: ""},
		{Title: "Vestido Longo", Description: "com detalhe em renda"},
	}
}

func TestSearchBlankTermIsIdentity(t *testing.T) {
	products := testProducts()

	for _, term := range []string{"", "   "} {
		got := Search(products, term)
		assert.Equal(t, len(products), len(got))
		for i := range products {
			assert.Equal(t, products[i].Title, got[i].Title)
		}
	}
}

func TestSearchMatchesTitle(t *testing.T) {
	got := Search(testProducts(), "sapato")

	assert.Equal(t, 1, len(got))
	assert.Equal(t, "Sapato Preto", got[0].Title)
}

func TestSearchMatchesDescription(t *testing.T) {
	got := Search(testProducts(), "renda")

	assert.Equal(t, 1, len(got))
	assert.Equal(t, "Vestido Longo", got[0].Title)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	products := testProducts()

	upper := Search(products, "SAPATO")
	lower := Search(products, "sapato")

	assert.Equal(t, lower, upper)
}

func TestSearchPreservesOrder(t *testing.T) {
	products := []Product{
		{Title: "Vestido Azul"},
		{Title: "Bolsa Preta"},
		{Title: "Vestido Longo"},
	}

	got := Search(products, "vestido")

	assert.Equal(t, 2, len(got))
	assert.Equal(t, "Vestido Azul", got[0].Title)
	assert.Equal(t, "Vestido Longo", got[1].Title)
}

func TestSearchNoMatch(t *testing.T) {
	got := Search(testProducts(), "inexistente")
	assert.Equal(t, 0, len(got))
}

func TestLimit(t *testing.T) {
	products := testProducts()

	assert.Equal(t, 3, len(Limit(products, -1)))
	assert.Equal(t, 0, len(Limit(products, 0)))
	assert.Equal(t, 2, len(Limit(products, 2)))
	assert.Equal(t, 3, len(Limit(products, 10)))
	assert.Equal(t, "Sapato Preto", Limit(products, 1)[0].Title)
}
