package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truestate/retail-sales-api/internal/models"
	"github.com/truestate/retail-sales-api/internal/repository"
)

// fakeStore records batches and can simulate duplicate-key rejections for
// repeated (customerId, productId, date) triples, mirroring the sparse unique
// index.
type fakeStore struct {
	batches [][]models.Sale
	seen    map[string]bool
	failAll bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{seen: make(map[string]bool)}
}

func (f *fakeStore) BulkInsert(_ context.Context, sales []models.Sale) (*repository.BulkResult, error) {
	if f.failAll {
		return nil, errors.New("connection reset by peer")
	}

	batch := make([]models.Sale, len(sales))
	copy(batch, sales)
	f.batches = append(f.batches, batch)

	res := &repository.BulkResult{}
	for i := range sales {
		s := &sales[i]
		if s.HasUniqueKey() {
			key := *s.CustomerID + "|" + *s.ProductID + "|" + s.Date.Format(time.RFC3339)
			if f.seen[key] {
				res.Failed = append(res.Failed, repository.RecordError{
					Index: i,
					Err:   errors.New("duplicate key value violates unique constraint"),
				})
				continue
			}
			f.seen[key] = true
		}
		res.Inserted++
	}
	return res, nil
}

func (f *fakeStore) inserted() int {
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

const header = "Customer ID,Customer Name,Phone Number,Gender,Age,Product ID,Product Name,Price Per Unit,Tags,Quantity,Date\n"

func row(custID, prodID, date string) string {
	return fmt.Sprintf("%s,Jane Roe,9876501234,Female,31,%s,Desk Lamp,$450.00,home,2,%s\n", custID, prodID, date)
}

func TestBatchingFlushesPartialFinalBatch(t *testing.T) {
	var b strings.Builder
	b.WriteString(header)
	for i := 0; i < 2500; i++ {
		b.WriteString(row(fmt.Sprintf("C%04d", i), fmt.Sprintf("P%04d", i), "2024-01-02"))
	}

	store := newFakeStore()
	imp := New(store, 1000)

	stats, err := imp.RunReader(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err)

	assert.Equal(t, 2500, stats.RowsRead)
	assert.Equal(t, 3, stats.Batches)
	assert.Equal(t, 2500, stats.Inserted)
	assert.Equal(t, 0, stats.Failed)

	require.Len(t, store.batches, 3)
	assert.Len(t, store.batches[0], 1000)
	assert.Len(t, store.batches[1], 1000)
	assert.Len(t, store.batches[2], 500)
}

func TestDuplicateTripleFailsOnlyTheDuplicate(t *testing.T) {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(row("C1", "P1", "2024-01-02")) // inserted
	b.WriteString(row("C1", "P1", "2024-01-02")) // duplicate triple
	b.WriteString(row("C1", "P1", "2024-01-03")) // different date: inserted
	b.WriteString(row("C1", "P1", ""))           // absent date: exempt
	b.WriteString(row("C1", "P1", ""))           // absent date again: still exempt

	store := newFakeStore()
	imp := New(store, 10)

	stats, err := imp.RunReader(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err)

	assert.Equal(t, 5, stats.RowsRead)
	assert.Equal(t, 4, stats.Inserted)
	assert.Equal(t, 1, stats.Failed)
}

func TestRowNormalizationThroughPipeline(t *testing.T) {
	csv := header +
		"NA,null,  ,Male,n/a,P9,  Chair  ,\"$1,200.50\",\"wood, oak,, wood \",3.7,2024-13-45\n"

	store := newFakeStore()
	imp := New(store, 10)

	stats, err := imp.RunReader(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, stats.RowsRead)
	require.Len(t, store.batches, 1)

	s := store.batches[0][0]
	assert.Nil(t, s.CustomerID, "NA must become absent, not the string NA")
	assert.Nil(t, s.CustomerName)
	assert.Nil(t, s.PhoneNumber)
	require.NotNil(t, s.Gender)
	assert.Equal(t, "Male", *s.Gender)
	assert.Nil(t, s.Age)
	require.NotNil(t, s.ProductName)
	assert.Equal(t, "Chair", *s.ProductName)
	require.NotNil(t, s.PricePerUnit)
	assert.InDelta(t, 1200.50, *s.PricePerUnit, 1e-9)
	assert.Equal(t, []string{"wood", "oak", "wood"}, []string(s.Tags))
	require.NotNil(t, s.Quantity)
	assert.Equal(t, 3, *s.Quantity)
	assert.Nil(t, s.Date, "unparseable date becomes absent but the row is kept")
}

func TestCamelCaseHeaderFallback(t *testing.T) {
	csv := "customerId,productId,date,customerName\n" +
		"C1,P1,2024-01-02,John Doe\n"

	store := newFakeStore()
	imp := New(store, 10)

	stats, err := imp.RunReader(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, stats.RowsRead)

	s := store.batches[0][0]
	require.NotNil(t, s.CustomerID)
	assert.Equal(t, "C1", *s.CustomerID)
	require.NotNil(t, s.CustomerName)
	assert.Equal(t, "John Doe", *s.CustomerName)
	require.NotNil(t, s.Date)
}

func TestBatchInsertFailureDoesNotHaltStream(t *testing.T) {
	var b strings.Builder
	b.WriteString(header)
	for i := 0; i < 7; i++ {
		b.WriteString(row(fmt.Sprintf("C%d", i), "P1", "2024-01-02"))
	}

	store := newFakeStore()
	store.failAll = true
	imp := New(store, 3)

	stats, err := imp.RunReader(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err, "insert failures are aggregated, not fatal")

	assert.Equal(t, 7, stats.RowsRead)
	assert.Equal(t, 3, stats.Batches)
	assert.Equal(t, 0, stats.Inserted)
	assert.Equal(t, 7, stats.Failed)
}

func TestMissingFileIsFatal(t *testing.T) {
	imp := New(newFakeStore(), 10)
	_, err := imp.Run(context.Background(), "testdata/does-not-exist.csv")
	require.Error(t, err)
}

func TestDefaultBatchSize(t *testing.T) {
	imp := New(newFakeStore(), 0)
	assert.Equal(t, DefaultBatchSize, imp.batchSize)
}
