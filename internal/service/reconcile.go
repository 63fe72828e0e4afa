package service

// VariantInput is one incoming variant in a full product payload. A nil ID
// means the variant is new; a non-nil ID refers to an existing row that is
// updated in place, keeping its identity and creation timestamp.
type VariantInput struct {
	ID         *int64  `json:"id"`
	Name       string  `json:"name"`
	ExtraPrice float64 `json:"extra_price"`
	Stock      int     `json:"stock"`
}

// VariantDiff is the result of reconciling a product's stored variants
// against an incoming payload.
type VariantDiff struct {
	Delete []int64
	Update []VariantInput
	Insert []VariantInput
}

// DiffVariants computes the three-way diff between the stored variant ids
// and the incoming list: stored ids absent from the payload are deleted,
// payload entries carrying an id are updated, entries without one are
// inserted. An incoming id that no longer exists stays in the update set;
// the store surfaces it as not found instead of silently recreating the row.
func DiffVariants(existing []int64, incoming []VariantInput) VariantDiff {
	incomingIDs := make(map[int64]bool, len(incoming))

	var diff VariantDiff
	for _, v := range incoming {
		if v.ID == nil {
			diff.Insert = append(diff.Insert, v)
			continue
		}
		incomingIDs[*v.ID] = true
		diff.Update = append(diff.Update, v)
	}

	for _, id := range existing {
		if !incomingIDs[id] {
			diff.Delete = append(diff.Delete, id)
		}
	}

	return diff
}
