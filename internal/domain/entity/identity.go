package entity

// Identity is the anonymous per-device token used to deduplicate ratings.
// It is not an account and carries no authority.
type Identity string

// String returns the identity as stored under ratedBy.
func (i Identity) String() string {
	return string(i)
}

// IsZero reports whether the identity is empty.
func (i Identity) IsZero() bool {
	return i == ""
}
