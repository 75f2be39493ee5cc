package arena

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"strconv"

	"github.com/dolthub/maphash"
)

var fingerprintHasher = maphash.NewHasher[string]()

// Stats is a point-in-time snapshot of an arena's bookkeeping, suitable for
// logging or exposing to an operator.
type Stats struct {
	Size         int    `json:"size"`
	SizeUsed     int    `json:"size_used"`
	HeadSize     int    `json:"head_size"`
	Count        int    `json:"count"`
	GarbageCount int    `json:"garbage_count"`
	GarbageSize  int    `json:"garbage_size"`
	MaxKeyLength int    `json:"max_key_length"`
	Fingerprint  uint64 `json:"fingerprint"`
}

// StatsGet snapshots the arena's current bookkeeping fields.
func (a *Arena) StatsGet() Stats {
	return Stats{
		Size:         a.Size(),
		SizeUsed:     a.SizeUsed(),
		HeadSize:     a.HeadSize(),
		Count:        a.Count(),
		GarbageCount: a.GarbageCount(),
		GarbageSize:  a.GarbageSize(),
		MaxKeyLength: a.MaxKeyLength(),
		Fingerprint:  a.Fingerprint(),
	}
}

// Fingerprint returns an order-independent hash of every live key/value
// pair, useful for asserting in tests that a collector pass moved data
// around without changing it. It is not part of the wire format and carries
// no stability guarantee across process runs: [maphash.NewHasher] seeds
// itself randomly per process.
func (a *Arena) Fingerprint() uint64 {
	var fp uint64
	for it := a.Begin(); !it.Equal(a.End()); it = it.Next() {
		// Keys never contain NUL, so it separates key from value unambiguously.
		fp ^= fingerprintHasher.Hash(string(it.Key()) + "\x00" + string(it.Value()))
	}
	return fp
}

// PrintStats writes StatsGet as indented JSON to w.
func (a *Arena) PrintStats(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a.StatsGet())
}

// DumpFormat controls how [Arena.StatsPrint] renders keys and values that
// may contain non-printable bytes.
type DumpFormat struct {
	// RawKey prints keys verbatim; otherwise they are rendered with
	// [strconv.Quote], making embedded control bytes visible.
	RawKey bool
	// RawValue prints values verbatim; otherwise they are hex-encoded.
	RawValue bool
}

type dumpEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// StatsPrint writes every live entry as a JSON array to w, formatted
// according to format.
func (a *Arena) StatsPrint(w io.Writer, format DumpFormat) error {
	entries := make([]dumpEntry, 0, a.Count())

	for it := a.Begin(); !it.Equal(a.End()); it = it.Next() {
		e := dumpEntry{}

		if format.RawKey {
			e.Key = string(it.Key())
		} else {
			e.Key = strconv.Quote(string(it.Key()))
		}

		if format.RawValue {
			e.Value = string(it.Value())
		} else {
			e.Value = hex.EncodeToString(it.Value())
		}

		entries = append(entries, e)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
