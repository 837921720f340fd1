package catalogue

import "nbody.space/elements"

// Physical constants (spec §6, bit-exact).
const (
	AU = 149597870691.0 // meters
	G  = 6.6740831e-11  // m^3 kg^-1 s^-2
)

func el(aAU, e, iDeg, nodeDeg, periDeg, lDeg float64) *elements.Elements {
	return &elements.Elements{
		SemiMajorAxis:       aAU * AU,
		Eccentricity:        e,
		Inclination:         iDeg,
		AscendingNode:       nodeDeg,
		LongitudePerihelion: periDeg,
		MeanLongitude:       lDeg,
	}
}

func withRates(e *elements.Elements, aDotAU, eDot, iDot, nodeDot, periDot, lDot float64) *elements.Elements {
	e.SemiMajorAxisRate = aDotAU * AU
	e.EccentricityRate = eDot
	e.InclinationRate = iDot
	e.AscendingNodeRate = nodeDot
	e.LongitudePerihelionRate = periDot
	e.MeanLongitudeRate = lDot
	return e
}

// elementsFromPeriod builds a near-circular moon orbit around its planet
// from a semi-major axis (km), eccentricity, inclination to the planet's
// equator, and sidereal period (days); the mean-longitude rate is derived
// from the period rather than tabulated separately.
func elementsFromPeriod(aKm, e, iDeg, nodeDeg, periDeg, l0Deg, periodDays float64) *elements.Elements {
	el := &elements.Elements{
		SemiMajorAxis:       aKm * 1000,
		Eccentricity:        e,
		Inclination:         iDeg,
		AscendingNode:       nodeDeg,
		LongitudePerihelion: periDeg,
		MeanLongitude:       l0Deg,
	}
	el.MeanLongitudeRate = 360.0 / periodDays * 36525.0
	return el
}

// Default returns the catalogue used throughout nbody.space's tests and
// default wiring: the Sun, the eight planets plus Pluto, Earth's Moon, the
// four Galilean moons, a handful of Saturnian/Uranian/Neptunian moons,
// Halley's comet, Ceres, and the spacecraft named in spec §8's end-to-end
// scenarios (mass-bearing placeholders; their state comes from the
// segmented ephemeris, not from ApproximateElements).
//
// Orbital elements and rates for the planets are the JPL "Keplerian
// elements for approximate positions" set valid 1800-2050 AD; sphere-of-
// influence radii are r = a*(m_planet/m_sun)^(2/5).
func Default() *Catalogue {
	c := New()

	c.Add(Body{
		Name: "sun", Kind: KindStar,
		DiameterKm: 1392000, Mass: 1.98892e30, Mu: 1.32712440018e20,
	})

	c.Add(Body{
		Name: "mercury", Kind: KindPlanet, ParentName: "sun",
		DiameterKm: 4879, Mass: 3.302e23, Mu: 2.2032e13,
		SphereOfInfluenceM: 1.12e8,
		ApproximateElements: withRates(
			el(0.38709927, 0.20563593, 7.00497902, 48.33076593, 77.45779628, 252.25032350),
			0.00000037, 0.00001906, -0.00594749, -0.12534081, 0.16047689, 149472.67411175),
	})

	c.Add(Body{
		Name: "venus", Kind: KindPlanet, ParentName: "sun",
		DiameterKm: 12104, Mass: 4.8685e24, Mu: 3.24859e14,
		SphereOfInfluenceM: 6.16e8,
		ApproximateElements: withRates(
			el(0.72333566, 0.00677672, 3.39467605, 76.67984255, 131.60246718, 181.97909950),
			0.00000390, -0.00004107, -0.00078890, -0.27769418, 0.00268329, 58517.81538729),
	})

	c.Add(Body{
		Name: "earth", Kind: KindPlanet, ParentName: "sun",
		DiameterKm: 12742, Mass: 5.9736e24, Mu: 3.986004418e14,
		SphereOfInfluenceM: 9.29e8,
		Oblate: &Oblateness{
			J2: 1.08263e-3, EquatorialRadiusM: 6378137,
			PoleRightAscensionDeg: 0.0, PoleDeclinationDeg: 90.0,
		},
		ApproximateElements: withRates(
			el(1.00000261, 0.01671123, -0.00001531, 0.0, 102.93768193, 100.46457166),
			0.00000562, -0.00004392, -0.01294668, 0.0, 0.32327364, 35999.37244981),
	})

	c.Add(Body{
		Name: "moon", Kind: KindMoon, ParentName: "earth",
		DiameterKm: 3474, Mass: 7.342e22, Mu: 4.9028e12,
		ApproximateElements: withRates(
			el(384399.0/AU*1000, 0.0549, 5.145, 125.1228, 83.3532465+125.1228, 218.3164591),
			0, 0, 0, -1934.1362891, 4069.0137287, 481267.88134236),
	})

	c.Add(Body{
		Name: "mars", Kind: KindPlanet, ParentName: "sun",
		DiameterKm: 6779, Mass: 6.4185e23, Mu: 4.282837e13,
		SphereOfInfluenceM: 5.77e8,
		ApproximateElements: withRates(
			el(1.52371034, 0.09339410, 1.84969142, 49.55953891, -23.94362959, -4.55343205),
			0.00001847, 0.00007882, -0.00813131, -0.29257343, 0.44441088, 19140.30268499),
	})
	c.Add(Body{Name: "phobos", Kind: KindMoon, ParentName: "mars", DiameterKm: 22.5, Mass: 1.0659e16, Mu: 7.11e5,
		ApproximateElements: elementsFromPeriod(9377.2, 0.0151, 1.093, 169.2, 216.3, 0, 0.31891023)})
	c.Add(Body{Name: "deimos", Kind: KindMoon, ParentName: "mars", DiameterKm: 12.4, Mass: 1.4762e15, Mu: 9.85e4,
		ApproximateElements: elementsFromPeriod(23460.0, 0.0002, 0.93, 53.2, 0, 0, 1.262441)})

	c.Add(Body{
		Name: "jupiter", Kind: KindPlanet, ParentName: "sun",
		DiameterKm: 139820, Mass: 1.8986e27, Mu: 1.26686534e17,
		SphereOfInfluenceM: 4.82e10,
		Oblate: &Oblateness{
			J2: 0.01469643, EquatorialRadiusM: 71492000,
			PoleRightAscensionDeg: 268.057, PoleDeclinationDeg: 64.495,
			PoleRARateDegPerCty: -0.006, PoleDecRateDegPerCty: 0.002,
		},
		ApproximateElements: withRates(
			el(5.20288700, 0.04838624, 1.30439695, 100.47390909, 14.72847983, 34.39644051),
			-0.00011607, -0.00013253, -0.00183714, 0.20469106, 0.21252668, 3034.74612775),
	})
	c.Add(Body{Name: "io", Kind: KindMoon, ParentName: "jupiter", DiameterKm: 3643, Mass: 8.9319e22, Mu: 5.959e12,
		ApproximateElements: elementsFromPeriod(421800, 0.0041, 0.036, 0, 0, 0, 1.769138)})
	c.Add(Body{Name: "europa", Kind: KindMoon, ParentName: "jupiter", DiameterKm: 3122, Mass: 4.7998e22, Mu: 3.203e12,
		ApproximateElements: elementsFromPeriod(671100, 0.0094, 0.466, 0, 0, 0, 3.551181)})
	c.Add(Body{Name: "ganymede", Kind: KindMoon, ParentName: "jupiter", DiameterKm: 5268, Mass: 1.4819e23, Mu: 9.888e12,
		ApproximateElements: elementsFromPeriod(1070400, 0.0013, 0.177, 0, 0, 0, 7.154553)})
	c.Add(Body{Name: "callisto", Kind: KindMoon, ParentName: "jupiter", DiameterKm: 4821, Mass: 1.0759e23, Mu: 7.179e12,
		ApproximateElements: elementsFromPeriod(1882700, 0.0074, 0.192, 0, 0, 0, 16.689018)})

	c.Add(Body{
		Name: "saturn", Kind: KindPlanet, ParentName: "sun",
		DiameterKm: 116460, Mass: 5.6846e26, Mu: 3.7931187e16,
		SphereOfInfluenceM: 5.45e10,
		Oblate: &Oblateness{
			J2: 0.01629071, EquatorialRadiusM: 60268000,
			PoleRightAscensionDeg: 40.589, PoleDeclinationDeg: 83.537,
			PoleRARateDegPerCty: -0.036, PoleDecRateDegPerCty: -0.004,
		},
		ApproximateElements: withRates(
			el(9.53667594, 0.05386179, 2.48599187, 113.66242448, 92.59887831, 49.95424423),
			-0.00125060, -0.00050991, 0.00193609, -0.28867794, -0.41897216, 1222.49362201),
	})
	c.Add(Body{Name: "titan", Kind: KindMoon, ParentName: "saturn", DiameterKm: 5150, Mass: 1.3452e23, Mu: 8.978e12,
		ApproximateElements: elementsFromPeriod(1221870, 0.0288, 0.34854, 0, 0, 0, 15.945421)})
	c.Add(Body{Name: "enceladus", Kind: KindMoon, ParentName: "saturn", DiameterKm: 504, Mass: 1.08e20, Mu: 7.211e9,
		ApproximateElements: elementsFromPeriod(238020, 0.0047, 0.009, 0, 0, 0, 1.370218)})
	c.Add(Body{Name: "rhea", Kind: KindMoon, ParentName: "saturn", DiameterKm: 1527, Mass: 2.3e21, Mu: 1.539e11,
		ApproximateElements: elementsFromPeriod(527040, 0.001, 0.333, 0, 0, 0, 4.518212)})
	c.Add(Body{Name: "iapetus", Kind: KindMoon, ParentName: "saturn", DiameterKm: 1470, Mass: 1.8e21, Mu: 1.2e11,
		ApproximateElements: elementsFromPeriod(3560820, 0.0276, 15.47, 0, 0, 0, 79.3215)})

	c.Add(Body{
		Name: "uranus", Kind: KindPlanet, ParentName: "sun",
		DiameterKm: 50724, Mass: 8.6832e25, Mu: 5.793939e15,
		SphereOfInfluenceM: 5.19e10,
		Oblate: &Oblateness{
			J2: 0.003343430, EquatorialRadiusM: 25559000,
			PoleRightAscensionDeg: 257.311, PoleDeclinationDeg: -15.175,
		},
		ApproximateElements: withRates(
			el(19.18916464, 0.04725744, 0.77263783, 74.01692503, 170.95427630, 313.23810451),
			-0.00196176, -0.00004397, -0.00242939, 0.04240589, 0.40805281, 428.48202785),
	})
	c.Add(Body{Name: "titania", Kind: KindMoon, ParentName: "uranus", DiameterKm: 1578, Mass: 3.4e21, Mu: 2.269e11,
		ApproximateElements: elementsFromPeriod(436300, 0.0011, 0.34, 0, 0, 0, 8.706234)})
	c.Add(Body{Name: "oberon", Kind: KindMoon, ParentName: "uranus", DiameterKm: 1523, Mass: 3.1e21, Mu: 2.053e11,
		ApproximateElements: elementsFromPeriod(583500, 0.0014, 0.058, 0, 0, 0, 13.463239)})

	c.Add(Body{
		Name: "neptune", Kind: KindPlanet, ParentName: "sun",
		DiameterKm: 49244, Mass: 1.02413e26, Mu: 6.836529e15,
		SphereOfInfluenceM: 8.68e10,
		Oblate: &Oblateness{
			J2: 0.00341, EquatorialRadiusM: 24764000,
			PoleRightAscensionDeg: 299.33, PoleDeclinationDeg: 42.95,
			PoleRARateDegPerCty: 0.70, PoleDecRateDegPerCty: -0.51,
		},
		ApproximateElements: withRates(
			el(30.06992276, 0.00859048, 1.77004347, 131.78422574, 44.96476227, -55.12002969),
			0.00026291, 0.00005105, 0.00035372, -0.00508664, -0.32241464, 218.45945325),
	})
	c.Add(Body{Name: "triton", Kind: KindMoon, ParentName: "neptune", DiameterKm: 2707, Mass: 2.14e22, Mu: 1.428e12,
		ApproximateElements: elementsFromPeriod(354759, 0.000016, 156.885, 0, 0, 0, -5.876854)})

	c.Add(Body{
		Name: "pluto", Kind: KindDwarfPlanet, ParentName: "sun",
		DiameterKm: 2377, Mass: 1.303e22, Mu: 8.71e11,
		SphereOfInfluenceM: 3.08e9,
		ApproximateElements: withRates(
			el(39.48211675, 0.24882730, 17.14001206, 110.30393684, 224.06891629, 238.92903833),
			-0.00031596, 0.00005170, 0.00004818, -0.01183482, -0.04062942, 145.20780515),
	})

	c.Add(Body{
		Name: "ceres", Kind: KindAsteroid, ParentName: "sun",
		DiameterKm: 940, Mass: 9.393e20, Mu: 6.26e10,
		ApproximateElements: withRates(
			el(2.7691651, 0.0760090, 10.59407, 80.30553, 73.59764, 95.98958),
			0, 0, 0, 0, 0, 0),
	})

	c.Add(Body{
		Name: "halley", Kind: KindComet, ParentName: "sun",
		DiameterKm: 11, Mass: 2.2e14, Mu: 1.47e4,
		ApproximateElements: withRates(
			el(17.834, 0.96714, 162.26, 58.42, 169.75, -10.0),
			0, 0, 0, 0, 0, 1746.87),
	})

	for _, spacecraft := range []string{"voyager1", "voyager2", "giotto", "newhorizons"} {
		c.Add(Body{
			Name: spacecraft, Kind: KindSpacecraft, ParentName: "sun",
			DiameterKm: 0.01, Mass: 1, Mu: 0,
		})
	}

	return c
}
