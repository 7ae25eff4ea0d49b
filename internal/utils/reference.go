package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GenerateOrderReference builds the human-facing order reference,
// e.g. ORD-20240131-142512-083-4821.
func GenerateOrderReference() string {
	now := time.Now().UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	// 4-digit cryptographic random
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf(
		"ORD-%s-%03d-%04d",
		datePart,
		millis,
		n.Int64(),
	)
}

// FormatBRL renders an amount the way the storefront displays it: "R$ 40,99".
func FormatBRL(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	return "R$ " + strings.ReplaceAll(s, ".", ",")
}
