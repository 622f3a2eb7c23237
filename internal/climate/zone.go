// Package climate provides the CTE climate zone catalog and the solar
// data the envelope indicators need: accumulated July irradiation by
// orientation and hourly July sun positions derived from the zone's
// reference location.
//
// Orientation criteria follow UNE-EN ISO 52016-1 (S=0, E=+90, W=-90).
package climate

import (
	"fmt"
	"unicode"
)

// Zone is a CTE DB-HE climate zone. Zones with the "c" suffix are the
// Canary Islands variants.
type Zone string

const (
	ZoneA1c    Zone = "A1c"
	ZoneA2c    Zone = "A2c"
	ZoneA3c    Zone = "A3c"
	ZoneA4c    Zone = "A4c"
	ZoneAlfa1c Zone = "Alfa1c"
	ZoneAlfa2c Zone = "Alfa2c"
	ZoneAlfa3c Zone = "Alfa3c"
	ZoneAlfa4c Zone = "Alfa4c"
	ZoneB1c    Zone = "B1c"
	ZoneB2c    Zone = "B2c"
	ZoneB3c    Zone = "B3c"
	ZoneB4c    Zone = "B4c"
	ZoneC1c    Zone = "C1c"
	ZoneC2c    Zone = "C2c"
	ZoneC3c    Zone = "C3c"
	ZoneC4c    Zone = "C4c"
	ZoneD1c    Zone = "D1c"
	ZoneD2c    Zone = "D2c"
	ZoneD3c    Zone = "D3c"
	ZoneE1c    Zone = "E1c"
	ZoneA3     Zone = "A3"
	ZoneA4     Zone = "A4"
	ZoneB3     Zone = "B3"
	ZoneB4     Zone = "B4"
	ZoneC1     Zone = "C1"
	ZoneC2     Zone = "C2"
	ZoneC3     Zone = "C3"
	ZoneC4     Zone = "C4"
	ZoneD1     Zone = "D1"
	ZoneD2     Zone = "D2"
	ZoneD3     Zone = "D3"
	ZoneE1     Zone = "E1"
)

// Zones lists every recognized climate zone.
func Zones() []Zone {
	return []Zone{
		ZoneA1c, ZoneA2c, ZoneA3c, ZoneA4c,
		ZoneAlfa1c, ZoneAlfa2c, ZoneAlfa3c, ZoneAlfa4c,
		ZoneB1c, ZoneB2c, ZoneB3c, ZoneB4c,
		ZoneC1c, ZoneC2c, ZoneC3c, ZoneC4c,
		ZoneD1c, ZoneD2c, ZoneD3c, ZoneE1c,
		ZoneA3, ZoneA4, ZoneB3, ZoneB4,
		ZoneC1, ZoneC2, ZoneC3, ZoneC4,
		ZoneD1, ZoneD2, ZoneD3, ZoneE1,
	}
}

var zoneSet = func() map[Zone]bool {
	m := make(map[Zone]bool, 32)
	for _, z := range Zones() {
		m[z] = true
	}
	return m
}()

// ParseZone validates a climate zone name. The lowercase "alfa" spelling
// used by some sources is accepted.
func ParseZone(s string) (Zone, error) {
	switch s {
	case "alfa1c":
		s = "Alfa1c"
	case "alfa2c":
		s = "Alfa2c"
	case "alfa3c":
		s = "Alfa3c"
	case "alfa4c":
		s = "Alfa4c"
	}
	z := Zone(s)
	if !zoneSet[z] {
		return "", fmt.Errorf("unknown climate zone %q", s)
	}
	return z, nil
}

// IsCanary reports whether the zone is a Canary Islands variant.
func (z Zone) IsCanary() bool {
	n := len(z)
	return n > 0 && z[n-1] == 'c'
}

// SummerSeverity returns the zone's summer climatic severity digit
// (1 for mild through 4 for severe).
func (z Zone) SummerSeverity() int {
	for _, r := range z {
		if unicode.IsDigit(r) {
			return int(r - '0')
		}
	}
	return 1
}

func (z Zone) String() string { return string(z) }
