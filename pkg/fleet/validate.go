package fleet

import "fmt"

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is one validation finding, located by ship and socket where that
// makes sense.
type Issue struct {
	Severity Severity
	Ship     string
	Message  string
}

func (i Issue) String() string {
	if i.Ship == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: ship %q: %s", i.Severity, i.Ship, i.Message)
}

// HasErrors reports whether any issue is error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of a fleet file: weapon group
// member keys resolve to sockets on the same ship, formation guide keys
// resolve to ships in the same fleet, ship keys are unique GUIDs, magazine
// quantities are sane, and missile references resolve to templates.
func (f *Fleet) Validate() []Issue {
	var issues []Issue

	shipKeys := map[string]string{}
	for i := range f.Ships {
		s := &f.Ships[i]
		if prev, ok := shipKeys[s.Key]; ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Ship:     s.Name,
				Message:  fmt.Sprintf("ship key %s already used by %q", s.Key, prev),
			})
		}
		shipKeys[s.Key] = s.Name
	}

	templates := map[string]bool{}
	for i := range f.MissileTypes {
		templates[f.MissileTypes[i].MunitionName()] = true
	}

	costTotal := 0
	for i := range f.Ships {
		s := &f.Ships[i]
		costTotal += s.Cost
		issues = append(issues, f.validateShip(s, shipKeys, templates)...)
	}

	if f.TotalPoints > 0 && costTotal != f.TotalPoints {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("ship costs total %d but fleet declares %d points", costTotal, f.TotalPoints),
		})
	}

	for i := range f.MissileTypes {
		t := &f.MissileTypes[i]
		issues = append(issues, validateTemplate(t)...)
	}

	return issues
}

func (f *Fleet) validateShip(s *Ship, shipKeys map[string]string, templates map[string]bool) []Issue {
	var issues []Issue

	if !IsGUIDKey(s.Key) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Ship:     s.Name,
			Message:  fmt.Sprintf("ship key %q is not a GUID", s.Key),
		})
	}

	socketKeys := map[string]bool{}
	for j := range s.SocketMap {
		sock := &s.SocketMap[j]
		socketKeys[sock.Key] = true

		if sock.ComponentData == nil {
			continue
		}
		for _, row := range sock.ComponentData.Rows() {
			if row.Quantity < 0 {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Ship:     s.Name,
					Message:  fmt.Sprintf("socket %s holds %d of %s", sock.Key, row.Quantity, row.MunitionKey),
				})
			}
			if isModularMissileKey(row.MunitionKey) && !templates[row.MunitionKey] {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Ship:     s.Name,
					Message:  fmt.Sprintf("socket %s loads %s but the fleet has no such missile template", sock.Key, row.MunitionKey),
				})
			}
		}
	}

	for _, wg := range s.WeaponGroups {
		seen := map[string]bool{}
		for _, key := range wg.MemberKeys {
			if !socketKeys[key] {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Ship:     s.Name,
					Message:  fmt.Sprintf("weapon group %q references unknown socket %s", wg.Name, key),
				})
			}
			if seen[key] {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Ship:     s.Name,
					Message:  fmt.Sprintf("weapon group %q lists socket %s twice", wg.Name, key),
				})
			}
			seen[key] = true
		}
	}

	if s.InitialFormation != nil {
		guide := s.InitialFormation.GuideKey
		if _, ok := shipKeys[guide]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Ship:     s.Name,
				Message:  fmt.Sprintf("formation guide key %s does not match any ship in the fleet", guide),
			})
		} else if guide == s.Key {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Ship:     s.Name,
				Message:  "ship is its own formation guide",
			})
		}
	}

	for _, name := range s.TemplateMissileTypes {
		if !templates[name] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Ship:     s.Name,
				Message:  fmt.Sprintf("references missile template %s which the fleet does not define", name),
			})
		}
	}

	return issues
}

func validateTemplate(t *MissileTemplate) []Issue {
	var issues []Issue

	for _, sock := range t.Sockets {
		if sock.Size <= 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Message:  fmt.Sprintf("missile template %s has a socket of size %d", t.MunitionName(), sock.Size),
			})
		}
		if sock.InstalledComponent == nil {
			continue
		}
		if bal, ok := sock.InstalledComponent.EngineBalance(); ok {
			sum := bal.Thrust + bal.Maneuver + bal.BurnTime
			if sum < 0.999 || sum > 1.001 {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("missile template %s engine balance sums to %.3f", t.MunitionName(), sum),
				})
			}
		}
	}

	return issues
}

func isModularMissileKey(key string) bool {
	return len(key) > len(ModularMissilePrefix) && key[:len(ModularMissilePrefix)] == ModularMissilePrefix
}
