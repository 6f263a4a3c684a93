package fingerprint

// Store holds module state shared by every IP for the lifetime of one
// interpreter run. Only one IP executes at a time, so access needs no
// locking.
type Store struct {
	shared map[string]interface{}
}

// Shared returns the state named by key, calling init to create it on
// first use. A failed init stores nothing, so a later call tries again.
func (store *Store) Shared(key string, init func() (interface{}, error)) (interface{}, error) {
	if val, ok := store.shared[key]; ok {
		return val, nil
	}
	val, err := init()
	if err != nil {
		return nil, err
	}
	if store.shared == nil {
		store.shared = make(map[string]interface{})
	}
	store.shared[key] = val
	return val, nil
}
