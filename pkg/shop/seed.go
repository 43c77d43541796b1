package shop

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// SeedRecord is one entry of a seed file: a customer, one order for that
// customer, and the items on the order.
type SeedRecord struct {
	Name      string      `json:"name"`
	Phone     PhoneNumber `json:"phone"`
	Timestamp int64       `json:"timestamp"`
	Notes     string      `json:"notes"`
	Items     []SeedItem  `json:"items"`
}

// SeedItem names an item on a seeded order.
type SeedItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// SeedStats counts the rows a seed load created. Customers and Items only
// count fresh inserts; records matching an existing customer by (name,
// phone) or an existing item by name reuse the row instead.
type SeedStats struct {
	Customers int
	Orders    int
	Items     int
	Links     int
}

// DecodeSeedRecords reads a JSON array of seed records.
func DecodeSeedRecords(r io.Reader) ([]SeedRecord, error) {
	var records []SeedRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode seed records: %w", err)
	}
	return records, nil
}

// ReadSeedFile loads seed records from a file on disk.
func ReadSeedFile(path string) ([]SeedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return DecodeSeedRecords(f)
}
