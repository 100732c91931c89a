package protect

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// Fingerprint derives a short stable hash over a dataset's shape and
// contents (spec §4.8 step 4), used as half of the assessment cache
// key. It falls back to a timestamp when hashing the dataset panics,
// since a degraded-but-unique key beats failing the whole
// protect_function_call.
func Fingerprint(data *adri.Dataset) (fingerprint string) {
	defer func() {
		if recover() != nil {
			fingerprint = fmt.Sprintf("ts-%d", time.Now().UnixNano())
		}
	}()

	h := sha256.New()
	fmt.Fprintf(h, "rows=%d;cols=%d;", data.Rows(), len(data.Columns))
	for _, col := range data.Columns {
		fmt.Fprintf(h, "%s:%d|", col.Name, len(col.Cells))
		for _, cell := range col.Cells {
			fmt.Fprintf(h, "%d:%s;", cell.Kind, cell.AsString())
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
