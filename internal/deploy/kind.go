package deploy

import "fmt"

// Kind identifies which stack template a StackSpec is for.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindAPIGateway Kind = "api-gateway"
)

// ParseKind converts s into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindNetwork, KindAPIGateway:
		return k, nil
	default:
		return "", fmt.Errorf("unknown stack kind %q (want %s | %s)", s, KindNetwork, KindAPIGateway)
	}
}

// stackID returns the stack name of kind in region.
func (k Kind) stackID(region string) string {
	switch k {
	case KindNetwork:
		return "IDMZ-Network-Stack-" + region
	case KindAPIGateway:
		return "iDMZ-APIGateway-HTTP-API-" + region
	}
	return string(k) + "-" + region
}
