package component

import "fmt"

// ResourceKind enumerates the solid resources a container can hold.
type ResourceKind uint8

const (
	Iron ResourceKind = iota
	Copper

	ResourceKindCount
)

var resourceNames = [ResourceKindCount]string{
	Iron:   "iron",
	Copper: "copper",
}

func (k ResourceKind) String() string {
	if k < ResourceKindCount {
		return resourceNames[k]
	}
	return fmt.Sprintf("resource(%d)", uint8(k))
}

// ParseResourceKind maps a lowercase resource name to its kind.
func ParseResourceKind(s string) (ResourceKind, error) {
	for k, name := range resourceNames {
		if name == s {
			return ResourceKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown resource kind %q", s)
}

// SolidContainer holds a non-negative counter per resource kind.
// The zero value is an empty container.
type SolidContainer struct {
	Amounts [ResourceKindCount]uint32
}

// Amount returns the count held for kind k.
func (c *SolidContainer) Amount(k ResourceKind) uint32 {
	return c.Amounts[k]
}
