package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/truestate/retail-sales-api/internal/models"
	"github.com/truestate/retail-sales-api/internal/repository"
)

// DefaultBatchSize is the number of normalized records flushed per bulk
// insert when no size is configured.
const DefaultBatchSize = 1000

// BulkInserter is the slice of the sale repository the importer needs. The
// insert must be unordered: one failing record must not block the rest of the
// batch.
type BulkInserter interface {
	BulkInsert(ctx context.Context, sales []models.Sale) (*repository.BulkResult, error)
}

// Stats summarizes an ingestion run. The run is successful when the stream
// was fully consumed, regardless of per-record failures.
type Stats struct {
	RowsRead int
	Batches  int
	Inserted int
	Failed   int
}

// Importer streams a sales CSV into the store in fixed-size batches. It holds
// at most one batch in memory at a time.
type Importer struct {
	store     BulkInserter
	batchSize int
}

// New creates an Importer. A batch size below 1 falls back to
// DefaultBatchSize.
func New(store BulkInserter, batchSize int) *Importer {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Importer{store: store, batchSize: batchSize}
}

// Run ingests the CSV file at path. A missing or unreadable file is a fatal
// precondition failure; per-record insert errors are aggregated into the
// returned stats.
func (im *Importer) Run(ctx context.Context, path string) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()
	return im.RunReader(ctx, f)
}

// RunReader ingests CSV content from r. The first record must be the header
// row.
func (im *Importer) RunReader(ctx context.Context, r io.Reader) (*Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.ReuseRecord = true

	headerRecord, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	header := indexHeader(headerRecord)

	stats := &Stats{}
	batch := make([]models.Sale, 0, im.batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		stats.Batches++
		im.flushBatch(ctx, batch, stats)
		batch = batch[:0]
	}

	for {
		if err := ctx.Err(); err != nil {
			// Batches already flushed stay committed.
			return stats, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed line must not abort the stream.
			log.Warn().Err(err).Int("row", stats.RowsRead+1).Msg("skipping malformed csv row")
			continue
		}

		stats.RowsRead++
		batch = append(batch, mapRow(header, record))
		if len(batch) >= im.batchSize {
			flush()
		}
	}

	// Leftover partial batch after the stream ends.
	flush()

	log.Info().
		Int("rows", stats.RowsRead).
		Int("batches", stats.Batches).
		Int("inserted", stats.Inserted).
		Int("failed", stats.Failed).
		Msg("import complete")

	return stats, nil
}

// flushBatch performs one unordered bulk insert and folds its outcome into
// the stats. Insert errors are reported but never halt the stream.
func (im *Importer) flushBatch(ctx context.Context, batch []models.Sale, stats *Stats) {
	res, err := im.store.BulkInsert(ctx, batch)
	if err != nil {
		stats.Failed += len(batch)
		log.Error().Err(err).Int("batch", stats.Batches).Int("size", len(batch)).Msg("batch insert failed")
		return
	}

	stats.Inserted += res.Inserted
	stats.Failed += len(res.Failed)

	duplicates := 0
	for _, rec := range res.Failed {
		if repository.IsDuplicate(rec.Err) {
			duplicates++
			continue
		}
		log.Warn().Err(rec.Err).Int("batch", stats.Batches).Int("record", rec.Index).Msg("record rejected")
	}

	log.Info().
		Int("batch", stats.Batches).
		Int("inserted", res.Inserted).
		Int("duplicates", duplicates).
		Int("total_inserted", stats.Inserted).
		Msg("batch flushed")
}

// indexHeader maps trimmed header names to their column positions. The first
// occurrence of a name wins.
func indexHeader(record []string) map[string]int {
	idx := make(map[string]int, len(record))
	for i, name := range record {
		name = strings.TrimSpace(name)
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}

// field returns the raw cell for the human-readable column name, falling back
// to the camel-case name, then to empty.
func field(header map[string]int, record []string, name, fallback string) string {
	if i, ok := header[name]; ok && i < len(record) {
		return record[i]
	}
	if i, ok := header[fallback]; ok && i < len(record) {
		return record[i]
	}
	return ""
}

// mapRow converts one raw CSV record into a normalized sale.
func mapRow(header map[string]int, record []string) models.Sale {
	return models.Sale{
		CustomerID:     normText(field(header, record, "Customer ID", "customerId")),
		CustomerName:   normText(field(header, record, "Customer Name", "customerName")),
		PhoneNumber:    normText(field(header, record, "Phone Number", "phoneNumber")),
		Gender:         normText(field(header, record, "Gender", "gender")),
		Age:            parseInt(field(header, record, "Age", "age")),
		CustomerRegion: normText(field(header, record, "Customer Region", "customerRegion")),
		CustomerType:   normText(field(header, record, "Customer Type", "customerType")),

		ProductID:       normText(field(header, record, "Product ID", "productId")),
		ProductName:     normText(field(header, record, "Product Name", "productName")),
		Brand:           normText(field(header, record, "Brand", "brand")),
		ProductCategory: normText(field(header, record, "Product Category", "productCategory")),
		Tags:            pq.StringArray(splitTags(field(header, record, "Tags", "tags"))),

		Quantity:           parseInt(field(header, record, "Quantity", "quantity")),
		PricePerUnit:       parseNumber(field(header, record, "Price Per Unit", "pricePerUnit")),
		DiscountPercentage: parseNumber(field(header, record, "Discount Percentage", "discountPercentage")),
		TotalAmount:        parseNumber(field(header, record, "Total Amount", "totalAmount")),
		FinalAmount:        parseNumber(field(header, record, "Final Amount", "finalAmount")),

		Date:          parseDate(field(header, record, "Date", "date")),
		PaymentMethod: normText(field(header, record, "Payment Method", "paymentMethod")),
		OrderStatus:   normText(field(header, record, "Order Status", "orderStatus")),
		DeliveryType:  normText(field(header, record, "Delivery Type", "deliveryType")),
		StoreID:       normText(field(header, record, "Store ID", "storeId")),
		StoreLocation: normText(field(header, record, "Store Location", "storeLocation")),

		SalespersonID: normText(field(header, record, "Salesperson ID", "salespersonId")),
		EmployeeName:  normText(field(header, record, "Employee Name", "employeeName")),
	}
}
