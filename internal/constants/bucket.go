package constants

type Bucket string

const (
	BucketOverdue   Bucket = "overdue"
	BucketDueToday  Bucket = "dueToday"
	BucketUpcoming  Bucket = "upcoming"
	BucketNoDueDate Bucket = "noDueDate"
	BucketCompleted Bucket = "completed"
)

// Buckets lists every bucket in display order.
var Buckets = []Bucket{
	BucketOverdue,
	BucketDueToday,
	BucketUpcoming,
	BucketNoDueDate,
	BucketCompleted,
}

func ParseBucket(s string) (Bucket, bool) {
	for _, b := range Buckets {
		if string(b) == s {
			return b, true
		}
	}
	return "", false
}

type DueStatus string

const (
	DueStatusOverdue DueStatus = "overdue"
	DueStatusDueSoon DueStatus = "dueSoon"
	DueStatusOnTrack DueStatus = "onTrack"
)
