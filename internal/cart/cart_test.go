package cart

import (
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func randomCandidate(id int64) Candidate {
	return Candidate{
		ID:       id,
		Name:     gofakeit.ProductName(),
		Price:    decimal.NewFromFloat(gofakeit.Price(1, 2000)).Round(2),
		ImageURL: gofakeit.URL(),
		Category: gofakeit.ProductCategory(),
	}
}

func TestAddItemNeverDuplicatesIDs(t *testing.T) {
	p := NewProvider()
	ids := []int64{1, 2, 3}
	want := map[int64]int{}

	for i := 0; i < 50; i++ {
		id := ids[gofakeit.Number(0, len(ids)-1)]
		p.AddItem(randomCandidate(id))
		want[id]++
	}

	items := p.Items()
	seen := map[int64]bool{}
	for _, item := range items {
		require.False(t, seen[item.ID], "duplicate id %d", item.ID)
		seen[item.ID] = true
		assert.Equal(t, want[item.ID], item.Quantity)
	}
	assert.Len(t, items, len(want))
}

func TestAddItemTwiceKeepsFirstPrice(t *testing.T) {
	p := NewProvider()
	p.AddItem(Candidate{ID: 7, Name: "Samosa", Price: decimal.NewFromInt(50)})
	p.AddItem(Candidate{ID: 7, Name: "Samosa (new)", Price: decimal.NewFromInt(80)})

	items := p.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "Samosa", items[0].Name)
}

func TestAddItemChangesSizeByAtMostOne(t *testing.T) {
	p := NewProvider()
	for i := 0; i < 20; i++ {
		before := len(p.Items())
		after := len(p.AddItem(randomCandidate(int64(gofakeit.Number(1, 5)))))
		assert.LessOrEqual(t, after-before, 1)
		assert.GreaterOrEqual(t, after-before, 0)
	}
}

func TestUpdateQuantityIgnoresNonPositive(t *testing.T) {
	p := NewProvider()
	p.AddItem(randomCandidate(1))
	p.AddItem(randomCandidate(1))

	for _, qty := range []int{0, -1, -10} {
		assert.False(t, p.UpdateQuantity(1, qty))
		assert.Equal(t, 2, p.Items()[0].Quantity)
	}
}

func TestUpdateQuantityUnknownID(t *testing.T) {
	p := NewProvider()
	p.AddItem(randomCandidate(1))

	assert.False(t, p.UpdateQuantity(99, 4))
	assert.Equal(t, 1, p.Items()[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	tests := []struct {
		name     string
		position int
		removed  bool
		wantIDs  []int64
	}{
		{name: "first", position: 0, removed: true, wantIDs: []int64{2, 3}},
		{name: "middle", position: 1, removed: true, wantIDs: []int64{1, 3}},
		{name: "last", position: 2, removed: true, wantIDs: []int64{1, 2}},
		{name: "past end is a no-op", position: 3, wantIDs: []int64{1, 2, 3}},
		{name: "negative is a no-op", position: -1, wantIDs: []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider()
			for _, id := range []int64{1, 2, 3} {
				p.AddItem(randomCandidate(id))
			}

			assert.Equal(t, tt.removed, p.RemoveItem(tt.position))

			var got []int64
			for _, item := range p.Items() {
				got = append(got, item.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestClearAlwaysEmpties(t *testing.T) {
	p := NewProvider()
	p.Clear()
	assert.Empty(t, p.Items())

	for i := 0; i < 5; i++ {
		p.AddItem(randomCandidate(int64(i)))
	}
	p.Clear()
	assert.Empty(t, p.Items())
	assert.Equal(t, 0, p.Snapshot().Count)
	assert.True(t, p.Snapshot().Total.IsZero())
}

func TestChipsScenario(t *testing.T) {
	p := NewProvider()
	chips := Candidate{ID: 1, Name: "Chips", Price: decimal.NewFromInt(100)}

	got := p.AddItem(chips)
	want := []Item{{ID: 1, Name: "Chips", Price: decimal.NewFromInt(100), Quantity: 1}}
	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Fatalf("after first add (-want +got):\n%s", diff)
	}

	got = p.AddItem(chips)
	want[0].Quantity = 2
	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Fatalf("after second add (-want +got):\n%s", diff)
	}

	require.True(t, p.UpdateQuantity(1, 5))
	snap := p.Snapshot()
	assert.Equal(t, 5, snap.Items[0].Quantity)
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(500)), "total %s", snap.Total)
	assert.Equal(t, 1, snap.Count)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	p := NewProvider()
	p.AddItem(randomCandidate(1))

	items := p.Items()
	items[0].Quantity = 42

	assert.Equal(t, 1, p.Items()[0].Quantity)
}

func TestIndexLookup(t *testing.T) {
	p := NewProvider()
	p.AddItem(randomCandidate(10))
	p.AddItem(randomCandidate(20))

	assert.Equal(t, 1, p.indexOf(20))
	assert.Equal(t, -1, p.indexOf(30))
}

func TestRemoveItemByID(t *testing.T) {
	p := NewProvider()
	p.AddItem(randomCandidate(10))
	p.AddItem(randomCandidate(20))
	p.AddItem(randomCandidate(30))

	assert.False(t, p.RemoveItemByID(99))
	assert.Len(t, p.Items(), 3)

	assert.True(t, p.RemoveItemByID(20))
	items := p.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(10), items[0].ID)
	assert.Equal(t, int64(30), items[1].ID)
	assert.Equal(t, -1, p.indexOf(20))
}

func TestTotalUsesDecimalArithmetic(t *testing.T) {
	items := []Item{
		{ID: 1, Price: decimal.RequireFromString("0.10"), Quantity: 3},
		{ID: 2, Price: decimal.RequireFromString("0.20"), Quantity: 1},
	}
	assert.True(t, Total(items).Equal(decimal.RequireFromString("0.50")))
	assert.Equal(t, 2, Count(items))
}

func TestConcurrentAddsKeepSingleEntry(t *testing.T) {
	p := NewProvider()
	const workers = 32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.AddItem(Candidate{ID: 1, Price: decimal.NewFromInt(10)})
		}()
	}
	wg.Wait()

	items := p.Items()
	require.Len(t, items, 1)
	assert.Equal(t, workers, items[0].Quantity)
}
