package component

// Identity names an entity for logs. SpawnID is unique per spawn.
type Identity struct {
	Name    string
	SpawnID string
}

var IdentityComponent = NewComponent[Identity]()
