package fleet

import "sort"

// ShipSummary is the lint-level view of one ship.
type ShipSummary struct {
	Name         string
	HullType     string
	Cost         int
	Sockets      int
	WeaponGroups []string
}

// TemplateSummary is the lint-level view of one missile template.
type TemplateSummary struct {
	Name    string
	BodyKey string
	Cost    int
	Sockets int
	Engine  *EngineBalance
}

// Summary is what fleet-lint prints for a fleet.
type Summary struct {
	Name        string
	FactionKey  string
	TotalPoints int
	CostTotal   int
	Ships       []ShipSummary
	Munitions   []MunitionCount
	Templates   []TemplateSummary
}

type MunitionCount struct {
	MunitionKey string
	Quantity    int
}

// Summarize collects ship, munition, and template totals for display.
func (f *Fleet) Summarize() Summary {
	s := Summary{
		Name:        f.Name,
		FactionKey:  f.FactionKey,
		TotalPoints: f.TotalPoints,
	}

	munitions := map[string]int{}
	for i := range f.Ships {
		ship := &f.Ships[i]
		s.CostTotal += ship.Cost

		groups := make([]string, 0, len(ship.WeaponGroups))
		for _, wg := range ship.WeaponGroups {
			groups = append(groups, wg.Name)
		}

		s.Ships = append(s.Ships, ShipSummary{
			Name:         ship.Name,
			HullType:     ship.HullType,
			Cost:         ship.Cost,
			Sockets:      len(ship.SocketMap),
			WeaponGroups: groups,
		})

		for j := range ship.SocketMap {
			if ship.SocketMap[j].ComponentData == nil {
				continue
			}
			for _, row := range ship.SocketMap[j].ComponentData.Rows() {
				munitions[row.MunitionKey] += row.Quantity
			}
		}
	}

	keys := make([]string, 0, len(munitions))
	for k := range munitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s.Munitions = append(s.Munitions, MunitionCount{MunitionKey: k, Quantity: munitions[k]})
	}

	for i := range f.MissileTypes {
		t := &f.MissileTypes[i]
		ts := TemplateSummary{
			Name:    t.MunitionName(),
			BodyKey: t.BodyKey,
			Cost:    t.Cost,
			Sockets: len(t.Sockets),
		}
		for _, sock := range t.Sockets {
			if sock.InstalledComponent == nil {
				continue
			}
			if bal, ok := sock.InstalledComponent.EngineBalance(); ok {
				b := bal
				ts.Engine = &b
			}
		}
		s.Templates = append(s.Templates, ts)
	}

	return s
}
