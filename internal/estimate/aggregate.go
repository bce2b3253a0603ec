package estimate

import "battery-params/internal/model"

// Bucket is the cumulative delta for one working mode plus the number of
// deltas that contributed to it.
type Bucket struct {
	Sum   model.Delta
	Count int
}

// Aggregate folds classified deltas into per-mode buckets via monoid
// addition. deltas and modes must be parallel slices.
func Aggregate(deltas []model.Delta, modes []model.WorkingMode) map[model.WorkingMode]Bucket {
	buckets := make(map[model.WorkingMode]Bucket, 4)
	for _, mode := range model.Modes() {
		buckets[mode] = Bucket{}
	}
	for i, d := range deltas {
		b := buckets[modes[i]]
		b.Sum = b.Sum.Add(d)
		b.Count++
		buckets[modes[i]] = b
	}
	return buckets
}
