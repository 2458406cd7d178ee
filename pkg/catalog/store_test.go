package catalog

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreReplaceAll(t *testing.T) {
	store := NewStore()

	_, ok := store.LastRefreshedAt()
	assert.False(t, ok)
	assert.Equal(t, 0, store.Count())

	store.ReplaceAll([]Product{{Title: "Bolsa Azul"}, {Title: "Sapato Preto"}})

	assert.Equal(t, 2, store.Count())
	assert.Equal(t, "Bolsa Azul", store.All()[0].Title)

	_, ok = store.LastRefreshedAt()
	assert.True(t, ok)
}

func TestStoreCopiesInput(t *testing.T) {
	store := NewStore()
	products := []Product{{Title: "Bolsa Azul"}}
	store.ReplaceAll(products)

	products[0].Title = "mutated"

	assert.Equal(t, "Bolsa Azul", store.All()[0].Title)
}

// every snapshot read during concurrent refreshes must be homogeneous -
// all products from the same generation
func TestStoreSnapshotAtomicity(t *testing.T) {
	store := NewStore()
	store.ReplaceAll(generation(0))

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for gen := 1; gen <= 100; gen++ {
			store.ReplaceAll(generation(gen))
		}
		close(done)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}

			snapshot := store.All()
			assert.Equal(t, 10, len(snapshot))
			for _, p := range snapshot {
				assert.Equal(t, snapshot[0].Vendor, p.Vendor, "snapshot mixes generations")
			}
		}
	}()

	wg.Wait()
}

func generation(gen int) []Product {
	products := make([]Product, 10)
	for i := range products {
		products[i] = Product{
			Title:  fmt.Sprintf("Produto %d", i),
			Vendor: fmt.Sprintf("gen-%d", gen),
		}
	}
	return products
}
