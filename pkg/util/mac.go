package util

import "strings"

// NormalizeMAC converts a hardware address to lowercase colon-grouped form.
// Dot-grouped ("7079.B3FD.0960"), colon-grouped and hyphen-grouped input is
// accepted: "7079.b3fd.0960" -> "70:79:b3:fd:09:60".
func NormalizeMAC(addr string) (string, error) {
	stripped := strings.NewReplacer(".", "", ":", "", "-", "").Replace(strings.TrimSpace(addr))
	if len(stripped) != 12 || !isHex(stripped) {
		return "", &MalformedAddressError{Input: addr}
	}
	stripped = strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(17)
	for i := 0; i < 12; i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(stripped[i : i+2])
	}
	return b.String(), nil
}

// DotMAC renders an address in the switch's dot-grouped notation
// ("70:79:b3:fd:09:60" -> "7079.b3fd.0960").
func DotMAC(addr string) (string, error) {
	norm, err := NormalizeMAC(addr)
	if err != nil {
		return "", err
	}
	hex := strings.ReplaceAll(norm, ":", "")
	return hex[0:4] + "." + hex[4:8] + "." + hex[8:12], nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
