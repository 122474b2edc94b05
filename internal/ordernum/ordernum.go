// Package ordernum generates human-readable order numbers. The strategy sits
// behind an interface so it can be swapped (e.g. for a database sequence)
// without touching transaction logic.
package ordernum

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Generator produces a unique order number for a new order. customerID may
// be nil for orders without a resolved buyer.
type Generator interface {
	Next(customerID *int64) string
}

// timestampGenerator produces numbers of the form
// ORD-<unix millis><seq>[-<customerId>]. The three-digit sequence
// disambiguates orders created within the same millisecond in one process.
type timestampGenerator struct {
	seq atomic.Uint64
}

// NewTimestampGenerator creates the default timestamp-based generator.
func NewTimestampGenerator() Generator {
	return &timestampGenerator{}
}

func (g *timestampGenerator) Next(customerID *int64) string {
	n := g.seq.Add(1)
	num := fmt.Sprintf("ORD-%d%03d", time.Now().UnixMilli(), n%1000)
	if customerID != nil {
		num = fmt.Sprintf("%s-%d", num, *customerID)
	}
	return num
}
