package entity

// Owned is implemented by every resource that has a single author.
type Owned interface {
	OwnerID() string
}

// IsOwner reports whether identity may mutate r.
func IsOwner(identity string, r Owned) bool {
	return identity != "" && r != nil && r.OwnerID() == identity
}
