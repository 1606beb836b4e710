package entity

// Realm selects which principal population an auth flow operates on.
// The session manager is realm-agnostic; it is instantiated once per realm.
type Realm string

const (
	// RealmUser is the regular user population.
	RealmUser Realm = "user"
	// RealmAdmin is the administrator population.
	RealmAdmin Realm = "admin"
)

// String returns the realm name.
func (r Realm) String() string {
	return string(r)
}

// TableName returns the database table backing this realm's principals.
func (r Realm) TableName() string {
	if r == RealmAdmin {
		return "admins"
	}

	return "users"
}
