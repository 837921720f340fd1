package solarsystem

// migrateSpacecraft checks every tracked spacecraft against the sphere of
// influence of each planet that has a subsystem (spec §4.I) and moves it
// between the main system and a planet subsystem when it crosses that
// boundary,
// transforming its state into (or out of) the planet-centered frame.
func (s *System) migrateSpacecraft() error {
	for name, home := range s.spacecraftHome {
		if home == "" {
			if err := s.maybeMigrateIn(name); err != nil {
				return err
			}
			continue
		}
		if err := s.maybeMigrateOut(name, home); err != nil {
			return err
		}
	}
	return nil
}

// maybeMigrateIn moves a main-system spacecraft into the first planet
// subsystem whose sphere of influence contains it.
func (s *System) maybeMigrateIn(name string) error {
	craft, err := s.main.GetParticle(name)
	if err != nil {
		return err
	}

	for _, planetName := range s.sortedSubsystemNames() {
		body, err := s.catalogue.Get(planetName)
		if err != nil {
			return err
		}
		if body.SphereOfInfluenceM <= 0 {
			continue
		}
		planetParticle, err := s.main.GetParticle(planetName)
		if err != nil {
			return err
		}
		if craft.Position.Distance(planetParticle.Position) > body.SphereOfInfluenceM {
			continue
		}

		relR := craft.Position.Sub(planetParticle.Position)
		relV := craft.Velocity.Sub(planetParticle.Velocity)
		if err := s.main.RemoveParticle(name); err != nil {
			return err
		}
		if err := s.subsystems[planetName].sys.AddTestParticle(name, relR, relV); err != nil {
			return err
		}
		s.spacecraftHome[name] = planetName
		return nil
	}
	return nil
}

// maybeMigrateOut moves a spacecraft back into the main system once it
// leaves its current subsystem's planet's sphere of influence.
func (s *System) maybeMigrateOut(name, home string) error {
	sub, ok := s.subsystems[home]
	if !ok {
		return nil
	}
	body, err := s.catalogue.Get(home)
	if err != nil {
		return err
	}
	craft, err := sub.sys.GetParticle(name)
	if err != nil {
		return err
	}
	if body.SphereOfInfluenceM > 0 && craft.Position.Norm() <= body.SphereOfInfluenceM {
		return nil
	}

	planetParticle, err := s.main.GetParticle(home)
	if err != nil {
		return err
	}
	absR := planetParticle.Position.Add(craft.Position)
	absV := planetParticle.Velocity.Add(craft.Velocity)
	if err := sub.sys.RemoveParticle(name); err != nil {
		return err
	}
	if err := s.main.AddTestParticle(name, absR, absV); err != nil {
		return err
	}
	s.spacecraftHome[name] = ""
	return nil
}

// ClosestApproach advances the simulation in steps of stepSeconds until
// the date reaches untilJD, tracking the minimum observed distance between
// bodies a and b. It is a thin, stateful convenience helper, not a general
// experiment harness (spec Non-goals): it mutates the driver's simulation
// state as it runs.
func (s *System) ClosestApproach(a, b string, untilJD, stepSeconds float64) (closestJD, closestDistance float64, err error) {
	closestDistance = -1
	for s.date < untilJD {
		ra, err := s.GetPosition(a)
		if err != nil {
			return 0, 0, err
		}
		rb, err := s.GetPosition(b)
		if err != nil {
			return 0, 0, err
		}
		d := ra.Distance(rb)
		if closestDistance < 0 || d < closestDistance {
			closestDistance = d
			closestJD = s.date
		}
		if err := s.AdvanceSingleStep(stepSeconds); err != nil {
			return 0, 0, err
		}
	}
	return closestJD, closestDistance, nil
}
