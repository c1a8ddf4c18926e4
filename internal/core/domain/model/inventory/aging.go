package inventory

import "time"

// AgingBucket groups items by days in stock for operational reporting.
type AgingBucket string

const (
	BucketFresh  AgingBucket = "0-7"
	BucketRecent AgingBucket = "8-14"
	BucketAging  AgingBucket = "15-30"
	BucketStale  AgingBucket = "30+"
)

// AgingBuckets lists the buckets in report order.
func AgingBuckets() []AgingBucket {
	return []AgingBucket{BucketFresh, BucketRecent, BucketAging, BucketStale}
}

func BucketFor(days int) AgingBucket {
	switch {
	case days <= 7:
		return BucketFresh
	case days <= 14:
		return BucketRecent
	case days <= 30:
		return BucketAging
	default:
		return BucketStale
	}
}

// AgingDays counts whole days from stockInDate, or from createdAt when the
// stock-in date is unknown, to now. Clock skew never yields a negative age.
func AgingDays(stockInDate, createdAt, now time.Time) int {
	since := stockInDate
	if since.IsZero() {
		since = createdAt
	}
	days := int(now.Sub(since) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}
