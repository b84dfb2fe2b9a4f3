package toolpath

//go:generate stringer -type=Kind -linecomment

// Kind tells what an Object is.
type Kind int

const (
	// KindPath - a sequence of commands
	KindPath Kind = iota // path
	// KindGroup - a compound holding other objects (e.g. a job or an operation folder)
	KindGroup // group
	// KindMachine - machine definition; never emitted
	KindMachine // machine
	// KindStock - raw material description; never emitted
	KindStock // stock
)

// KindEnum maps a document type name to its Kind.
var KindEnum = func() map[string]Kind {
	m := make(map[string]Kind)
	for i := KindPath; i <= KindStock; i++ {
		m[i.String()] = i
	}
	return m
}()
