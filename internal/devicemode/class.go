package devicemode

import "strings"

// Class is the detected device category.
type Class int

const (
	Desktop Class = iota
	Tablet
	Mobile
)

func (c Class) String() string {
	switch c {
	case Desktop:
		return "desktop"
	case Tablet:
		return "tablet"
	case Mobile:
		return "mobile"
	default:
		return "unknown"
	}
}

// ParseClass accepts desktop, tablet or mobile, case-insensitively.
func ParseClass(s string) (Class, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desktop":
		return Desktop, true
	case "tablet":
		return Tablet, true
	case "mobile":
		return Mobile, true
	}
	return Desktop, false
}

// Provider is the capability-detection collaborator.
type Provider interface {
	Class() Class
}

// Fixed is a Provider that always reports the same class.
type Fixed Class

func (f Fixed) Class() Class { return Class(f) }
