package terminal

// Listener observes solver output.
type Listener interface {
	// Output is called with each line the engine produces.
	// Returning true asks the engine to print the line as well.
	Output(text string) bool
}

// ListenerFunc adapts a function to the Listener interface.
//
// Function values are not comparable, so a bare ListenerFunc is never matched
// by Remove. Use Func, which returns a pointer, when the listener must be
// removed later.
type ListenerFunc func(text string) bool

// Func wraps fn as a removable listener. Each call returns a distinct
// handle, and Remove matches exactly that handle.
func Func(fn func(text string) bool) *ListenerFunc {
	f := ListenerFunc(fn)
	return &f
}

// Output implements Listener.
func (f ListenerFunc) Output(text string) bool {
	if f == nil {
		return false
	}
	return f(text)
}

// Installer installs a gate into the native engine's output hook slot.
type Installer interface {
	InstallHook(gate Gate)
}

// InstallerFunc adapts a function to the Installer interface.
type InstallerFunc func(gate Gate)

// InstallHook implements Installer.
func (f InstallerFunc) InstallHook(gate Gate) {
	if f != nil {
		f(gate)
	}
}

// Gate is the function the native engine calls for every output line.
type Gate func(text string) Status
