package command

// ConnState is the per-connection state that survives across commands on
// one socket (spec §3's "current database index", default 0). The teacher
// has no equivalent: GoFastServer owns one global keyspace, so it never
// needed per-connection addressing.
type ConnState struct {
	DB int
}

func NewConnState() *ConnState {
	return &ConnState{DB: 0}
}
