// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// do not need to depend on the concrete implementation.
package storedefs

// Store is an interface satisfied by the storage service.
type Store interface {
	AddCmd(text string) (int, error)
	CmdsWithSeq(from, upto int) ([]Cmd, error)

	SaveVars(name string, data []byte) error
	LoadVars(name string) ([]byte, error)
	VarsNames() ([]string, error)
	DelVars(name string) error
}

// Cmd is an entry in the command history.
type Cmd struct {
	Text string
	Seq  int
}
