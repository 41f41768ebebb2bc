package core

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// BookID is the catalog identifier of a book, assigned by the ingestion
// process. This core never mints IDs.
type BookID int64

// Fingerprint computes a deterministic 64-bit content fingerprint using
// BLAKE2b. It is used to identify uploaded image payloads across requests
// without retaining the payload itself.
func Fingerprint(data []byte) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// HashUnknown is the sentinel distance reported when a perceptual hash is
// missing on either side of a comparison. It is never a raised error.
const HashUnknown = 999

// Book is a catalog record. Books are created and updated by an external
// ingestion process; this system only reads them.
//
// Year is kept as the raw catalog text because bibliographic data is not
// normalized at storage time ("1972", "c. 1972", "s.d." all occur).
// Use ParsedYear when a numeric year is needed.
type Book struct {
	ID          BookID  `json:"id"`
	Title       string  `json:"titolo"`
	Publisher   string  `json:"editore"`
	Year        string  `json:"anno"`
	Description string  `json:"descrizione"`
	Price       float64 `json:"prezzo"`
	Pages       int     `json:"pagine"`
	Language    string  `json:"lingua"`
	CoverURL    string  `json:"immagine"`
	ISBN        string  `json:"isbn"`
	Embedding   []float32 `json:"-"` // nil until the backfill has embedded the record
	ImageHash   *uint64   `json:"-"` // nil when no cover hash has been computed
}

// ParsedYear extracts a 4-digit year from the raw Year text.
// Returns false when no parseable year is present.
func (b *Book) ParsedYear() (int, bool) {
	return parseYear(b.Year)
}

func parseYear(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if y, err := strconv.Atoi(raw); err == nil && y > 0 {
		return y, true
	}
	// Scan for an embedded 4-digit run ("c. 1972", "1968-1970").
	for i := 0; i+4 <= len(raw); i++ {
		if y, err := strconv.Atoi(raw[i : i+4]); err == nil && y >= 1000 {
			return y, true
		}
	}
	return 0, false
}

// Bucket tags identify the relevance tier a ranked result came from.
// The values match the catalog wire format.
const (
	BucketMonographTitled = "monografia_titolo" // tier 1
	BucketMonograph       = "monografia"        // tier 2
	BucketCollective      = "collettiva"        // tier 3
	BucketAuthor          = "autore"            // tier 4
	BucketMention         = "menzione"          // tier 5
)

// RankedResult is a book annotated with its relevance tier.
// Ranking runs 1-5, lower is more relevant.
type RankedResult struct {
	Book
	Ranking int    `json:"ranking"`
	Bucket  string `json:"tipo"`
}

// ResultSet holds the five relevance tiers of a name search.
// A book never appears in more than one of tiers 1, 2, and 5; tier 5 is
// built excluding every id already present in tiers 1-4.
type ResultSet struct {
	MonographsTitled []RankedResult
	Monographs       []RankedResult
	Collectives      []RankedResult
	AsAuthor         []RankedResult
	Mentions         []RankedResult
}

// Total is the sum of all tier sizes.
func (rs *ResultSet) Total() int {
	return len(rs.MonographsTitled) + len(rs.Monographs) +
		len(rs.Collectives) + len(rs.AsAuthor) + len(rs.Mentions)
}

// Merged flattens the tiers in relevance order, contributing at most
// maxMentions entries from the mention tier. maxMentions < 0 keeps all.
func (rs *ResultSet) Merged(maxMentions int) []RankedResult {
	mentions := rs.Mentions
	if maxMentions >= 0 && len(mentions) > maxMentions {
		mentions = mentions[:maxMentions]
	}
	merged := make([]RankedResult, 0, rs.Total())
	merged = append(merged, rs.MonographsTitled...)
	merged = append(merged, rs.Monographs...)
	merged = append(merged, rs.Collectives...)
	merged = append(merged, rs.AsAuthor...)
	merged = append(merged, mentions...)
	return merged
}

// All iterates every result across all five tiers in relevance order.
func (rs *ResultSet) All() []RankedResult {
	return rs.Merged(-1)
}

// Counts summarizes tier sizes for the response payload.
// Tiers 1 and 2 are reported together as monographs.
type Counts struct {
	Monographs  int `json:"monografie"`
	Collectives int `json:"collettive"`
	AsAuthor    int `json:"come_autore"`
	Mentions    int `json:"citazioni"`
	Total       int `json:"totale"`
}

// Counts computes the per-bucket counts of the set.
func (rs *ResultSet) Counts() Counts {
	return Counts{
		Monographs:  len(rs.MonographsTitled) + len(rs.Monographs),
		Collectives: len(rs.Collectives),
		AsAuthor:    len(rs.AsAuthor),
		Mentions:    len(rs.Mentions),
		Total:       rs.Total(),
	}
}

// SemanticResult is a book annotated with a similarity score computed as
// 1 - cosine distance against the query embedding.
type SemanticResult struct {
	Book
	Similarity float64 `json:"similarity"`
}

// Image match confidence tiers derived from Hamming distance thresholds.
const (
	ConfidenceHigh   = "high"   // distance <= 15
	ConfidenceMedium = "medium" // distance <= 25
	ConfidenceLow    = "low"
)

// ImageCandidate is a book considered by the image match engine.
// Distance is the Hamming distance between the query hash and the stored
// cover hash, or HashUnknown when either hash is missing.
type ImageCandidate struct {
	Book
	Distance   int    `json:"distanza"`
	ImageMatch bool   `json:"image_match"`
	Confidence string `json:"confidenza"`
}
