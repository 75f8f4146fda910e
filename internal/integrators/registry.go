package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/coupledosc/internal/dynamo"
)

var registry = map[string]func() dynamo.Integrator{
	"rk45": func() dynamo.Integrator { return NewRK45() },
	"rk4":  func() dynamo.Integrator { return NewRK4() },
}

// ByName returns a fresh integrator. Integrators hold scratch space, so
// callers get their own instance.
func ByName(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
