package fingerprint

import (
	"sort"

	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
)

// Manager is the registry of fingerprints available to a run, together
// with the shared store their modules use.
type Manager struct {
	// Sandbox refuses to load fingerprints not marked Safe.
	Sandbox bool

	// Disabled, if set, refuses to load the named fingerprints.
	Disabled func(name string) bool

	// Logf, if set, receives load and unload traces.
	Logf func(mess string, args ...interface{})

	registry map[funge.Cell]Fingerprint
	store    Store
}

func (m *Manager) logf(mess string, args ...interface{}) {
	if m.Logf != nil {
		m.Logf(mess, args...)
	}
}

// Register adds fingerprints to the registry.
func (m *Manager) Register(fps ...Fingerprint) error {
	for _, fp := range fps {
		if err := fp.validate(); err != nil {
			return err
		}
		id := fp.ID()
		if _, dup := m.registry[id]; dup {
			return ErrDuplicate
		}
		if m.registry == nil {
			m.registry = make(map[funge.Cell]Fingerprint)
		}
		m.registry[id] = fp
	}
	return nil
}

// Lookup returns the fingerprint registered under id.
func (m *Manager) Lookup(id funge.Cell) (Fingerprint, bool) {
	fp, ok := m.registry[id]
	return fp, ok
}

// List returns every registered fingerprint ordered by name.
func (m *Manager) List() []Fingerprint {
	fps := make([]Fingerprint, 0, len(m.registry))
	for _, fp := range m.registry {
		fps = append(fps, fp)
	}
	sort.Slice(fps, func(i, j int) bool { return fps[i].Name < fps[j].Name })
	return fps
}

// Available reports whether fp may be loaded under the manager's policy.
func (m *Manager) Available(fp Fingerprint) bool {
	if m.Sandbox && !fp.Safe {
		return false
	}
	return m.Disabled == nil || !m.Disabled(fp.Name)
}

// Bind pushes inst onto the shadow stack of op for the given IP.
func Bind(ptr *ip.IP, op funge.Cell, inst ip.Instruction) error {
	if ptr.Fingerprints == nil {
		return ErrNoTable
	}
	return ptr.Fingerprints.Push(op, inst)
}

// Unbind pops the active binding of op for the given IP, reporting whether
// there was one.
func Unbind(ptr *ip.IP, op funge.Cell) bool {
	return ptr.Fingerprints != nil && ptr.Fingerprints.Pop(op) != nil
}

// Load binds the opcodes of the fingerprint id for the given IP. Unknown,
// unavailable, or failing fingerprints leave the IP's table unchanged and
// reflect.
func (m *Manager) Load(ptr *ip.IP, id funge.Cell) ip.Outcome {
	if ptr.Fingerprints == nil {
		return ip.Reflect
	}
	fp, ok := m.registry[id]
	if !ok {
		m.logf("ip %v: no fingerprint 0x%x", ptr.ID, id)
		return ip.Reflect
	}
	if !m.Available(fp) {
		m.logf("ip %v: fingerprint %v unavailable", ptr.ID, fp.Name)
		return ip.Reflect
	}
	binds, err := fp.Load(&m.store)
	if err != nil {
		m.logf("ip %v: fingerprint %v failed to load: %v", ptr.ID, fp.Name, err)
		return ip.Reflect
	}
	for i := 0; i < len(fp.Opcodes); i++ {
		if op := funge.Cell(fp.Opcodes[i]); binds[op] == nil {
			m.logf("ip %v: %v", ptr.ID, BindingError{fp.Name, op})
			return ip.Reflect
		}
	}
	for i := 0; i < len(fp.Opcodes); i++ {
		op := funge.Cell(fp.Opcodes[i])
		if err := Bind(ptr, op, binds[op]); err != nil {
			// validated at registration
			panic(err)
		}
	}
	m.logf("ip %v: loaded %v", ptr.ID, fp.Name)
	return ip.Continue
}

// Unload pops one binding from each opcode the fingerprint id provides,
// whoever pushed it. Unknown fingerprints reflect.
func (m *Manager) Unload(ptr *ip.IP, id funge.Cell) ip.Outcome {
	fp, ok := m.registry[id]
	if !ok || ptr.Fingerprints == nil {
		return ip.Reflect
	}
	for i := 0; i < len(fp.Opcodes); i++ {
		Unbind(ptr, funge.Cell(fp.Opcodes[i]))
	}
	m.logf("ip %v: unloaded %v", ptr.ID, fp.Name)
	return ip.Continue
}

// Execute runs the active binding of opcode for the given IP. Opcodes
// without a binding are unimplemented and reflect.
func (m *Manager) Execute(ptr *ip.IP, env ip.Env, opcode funge.Cell) ip.Outcome {
	if ptr.Fingerprints != nil {
		if inst := ptr.Fingerprints.Top(opcode); inst != nil {
			return inst(ptr, env)
		}
	}
	return ip.Reflect
}
