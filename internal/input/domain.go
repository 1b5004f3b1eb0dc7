package input

import "fmt"

// Domain identifies one of the two independently clocked update cadences.
type Domain int

const (
	// Presentation is the variable-rate frame tick.
	Presentation Domain = iota
	// Simulation is the fixed-rate physics tick.
	Simulation
)

// DomainCount is the number of valid domains. Used to size per-domain arrays.
const DomainCount = 2

// Domains returns both domains in gather order.
func Domains() []Domain {
	return []Domain{Presentation, Simulation}
}

// Valid reports whether d is one of the two defined domains.
func (d Domain) Valid() bool {
	return d == Presentation || d == Simulation
}

// String returns the lowercase name used in scenario files and traces.
func (d Domain) String() string {
	switch d {
	case Presentation:
		return "presentation"
	case Simulation:
		return "simulation"
	default:
		return fmt.Sprintf("domain(%d)", int(d))
	}
}

// ParseDomain converts a domain name into a Domain.
// Accepts the full names and the short forms "present" and "sim".
func ParseDomain(s string) (Domain, error) {
	switch s {
	case "presentation", "present":
		return Presentation, nil
	case "simulation", "sim":
		return Simulation, nil
	default:
		return 0, NewUnknownDomainError(s)
	}
}

// CheckDomain returns an UNKNOWN_DOMAIN error if d is not valid.
func CheckDomain(d Domain) error {
	if !d.Valid() {
		return NewUnknownDomainError(d.String())
	}
	return nil
}
