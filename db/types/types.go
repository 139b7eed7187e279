package types

// Migration is a single schema change. SQL holds both directions, the Down
// statements first and the Up statements after the "-- +migrate Up" marker.
// Prefix is prepended to the table names referenced as /*dbprefix*/ so the same
// migration can be applied to several logical trees in one database.
type Migration struct {
	ID     string
	SQL    string
	Prefix string
}
