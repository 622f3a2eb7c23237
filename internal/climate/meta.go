package climate

// ZoneMeta carries the reference location of a climate zone's synthetic
// weather year. Peninsular zones share one reference site and Canary
// zones another.
type ZoneMeta struct {
	// MetName is the synthetic weather file name for the zone.
	MetName string
	// Latitude of the reference site, degrees north.
	Latitude float64
	// Longitude of the reference site, degrees east.
	Longitude float64
	// Altitude of the reference site, m above sea level.
	Altitude float64
	// RefLong is the reference meridian for solar time, degrees.
	RefLong float64
}

const (
	peninsularLatitude  = 40.68333
	peninsularLongitude = -4.133333
	canaryLatitude      = 28.325
	canaryLongitude     = -16.36666
)

// MetaFor returns the reference-site metadata for a climate zone.
func MetaFor(z Zone) (ZoneMeta, bool) {
	if !zoneSet[z] {
		return ZoneMeta{}, false
	}
	if z.IsCanary() {
		return ZoneMeta{
			MetName:   "zona" + string(z) + ".met",
			Latitude:  canaryLatitude,
			Longitude: canaryLongitude,
			Altitude:  30.0,
			RefLong:   0.0,
		}, true
	}
	return ZoneMeta{
		MetName:   "zona" + string(z) + ".met",
		Latitude:  peninsularLatitude,
		Longitude: peninsularLongitude,
		Altitude:  667.0,
		RefLong:   15.0,
	}, true
}
