package auth

// Ownable is the capability a resource exposes so one policy can gate every
// resource type. Activities, media items, and comments all implement it.
type Ownable interface {
	OwnerID() int64
}

// CanMutate is the single ownership-or-role rule applied to every mutating
// operation: the actor owns the resource, or the actor is an admin.
// Reads never pass through here; a resolved identity is enough to read.
func CanMutate(identity Identity, resource Ownable) bool {
	return identity.ID == resource.OwnerID() || identity.Role.IsAdmin()
}

// AuthorizeMutation returns ErrForbidden when CanMutate denies. Gateways use
// it so the 403 taxonomy stays in one place.
func AuthorizeMutation(identity Identity, resource Ownable) error {
	if !CanMutate(identity, resource) {
		return ErrForbidden
	}
	return nil
}
