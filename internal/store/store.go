package store

import "fmt"

// Store owns the full set of numbered databases (spec §3 "Database"),
// replacing the teacher's single global keyspace. Each database is an
// independent Keyspace; SELECT only changes which index a connection
// addresses, never the Store itself.
type Store struct {
	databases []*Keyspace
}

func NewStore(numDatabases int) *Store {
	databases := make([]*Keyspace, numDatabases)
	for i := range databases {
		databases[i] = NewKeyspace()
	}
	return &Store{databases: databases}
}

func (s *Store) NumDatabases() int {
	return len(s.databases)
}

// Database returns the Keyspace for index i, or an error if i is out of
// range (spec §4.5 SELECT "index out of range").
func (s *Store) Database(i int) (*Keyspace, error) {
	if i < 0 || i >= len(s.databases) {
		return nil, fmt.Errorf("DB index is out of range")
	}
	return s.databases[i], nil
}

// FlushDB clears a single database.
func (s *Store) FlushDB(i int) error {
	db, err := s.Database(i)
	if err != nil {
		return err
	}
	db.Flush()
	return nil
}

// FlushAll clears every database.
func (s *Store) FlushAll() {
	for _, db := range s.databases {
		db.Flush()
	}
}
