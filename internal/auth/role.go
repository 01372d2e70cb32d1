package auth

// Role identifies which side of the marketplace a user is on.
// It is resolved once at the boundary (registration / token parsing) and
// passed around as a value, never re-derived from profile lookups.
type Role string

const (
	RoleArtist       Role = "artist"
	RoleProfessional Role = "professional"
	RoleUnknown      Role = "unknown"
)

// ParseRole maps a raw string to a Role, falling back to RoleUnknown.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleArtist:
		return RoleArtist
	case RoleProfessional:
		return RoleProfessional
	default:
		return RoleUnknown
	}
}
