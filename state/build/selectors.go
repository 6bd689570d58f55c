package build

// TotalPrice is the price of the assembled burger. The bun counts twice:
// it anchors both ends of the submitted ingredient sequence.
func (sn Snapshot) TotalPrice() int {
	total := 0
	if sn.Bun != nil {
		total += 2 * sn.Bun.Price
	}
	for _, f := range sn.Fillings {
		total += f.Price
	}
	return total
}

// Counts maps each ingredient id to the number of times it appears in the
// build, the bun counting as two. Used for "N in cart" badges.
func (sn Snapshot) Counts() map[string]int {
	counts := make(map[string]int)
	if sn.Bun != nil {
		counts[sn.Bun.ID] = 2
	}
	for _, f := range sn.Fillings {
		counts[f.ID]++
	}
	return counts
}

// SubmissionIDs builds the wire-order ingredient id sequence,
// [bun, fillings..., bun]. The duplicated bun id is the service's wire
// contract, not a local convention. ok is false when no bun is chosen,
// in which case the build must not be submitted.
func (sn Snapshot) SubmissionIDs() (ids []string, ok bool) {
	if sn.Bun == nil {
		return nil, false
	}
	ids = make([]string, 0, len(sn.Fillings)+2)
	ids = append(ids, sn.Bun.ID)
	for _, f := range sn.Fillings {
		ids = append(ids, f.ID)
	}
	ids = append(ids, sn.Bun.ID)
	return ids, true
}
