package plugins

// NewUUIDWith creates a UUID plugin drawing ids from newID.
func NewUUIDWith(newID func() string) *UUID {
	return &UUID{newID: newID}
}
