package ledger

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/fleetledger/internal/database/repository"
)

// Reference is the dropdown data loaded once at startup.
type Reference struct {
	Vehicles []VehicleOption `json:"vehicles"`
	Types    []Type          `json:"types"`
	Statuses []Status        `json:"statuses"`
}

func staticReference(vehicles []VehicleOption) Reference {
	return Reference{
		Vehicles: vehicles,
		Types:    append([]Type(nil), Types...),
		Statuses: append([]Status(nil), Statuses...),
	}
}

// VehicleName returns the display name of vehicle id.
func (r Reference) VehicleName(id int64) (string, bool) {
	for _, v := range r.Vehicles {
		if v.ID == id {
			return v.Name, true
		}
	}
	return "", false
}

// ClosestVehicle picks the vehicle whose name best matches query: an exact
// match, then a prefix match, then the smallest edit distance.
func (r Reference) ClosestVehicle(query string) (VehicleOption, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(r.Vehicles) == 0 {
		return VehicleOption{}, false
	}
	best, bestDist := -1, 0
	for i, v := range r.Vehicles {
		name := strings.ToLower(v.Name)
		if name == q {
			return v, true
		}
		dist := levenshtein.ComputeDistance(q, name)
		if strings.HasPrefix(name, q) {
			dist = -1
		}
		if best == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return r.Vehicles[best], true
}

// Reference returns the loaded dropdown data.
func (l *Ledger) Reference() Reference {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ref
}

// LoadReference fetches the vehicle list, from the cache when it has one.
func (l *Ledger) LoadReference(ctx context.Context) error {
	var vehicles []repository.Vehicle
	if l.cache != nil {
		if cached, ok := l.cache.GetVehicles(ctx); ok {
			vehicles = cached
		}
	}
	if vehicles == nil {
		list, err := l.vehicles.List(ctx)
		if err != nil {
			return l.fail("load vehicles", err)
		}
		vehicles = list
		if l.cache != nil {
			l.cache.SetVehicles(ctx, list)
		}
	}

	opts := make([]VehicleOption, 0, len(vehicles))
	for _, v := range vehicles {
		opts = append(opts, VehicleOption{ID: v.ID, Name: v.Name})
	}
	l.mu.Lock()
	l.ref = staticReference(opts)
	l.mu.Unlock()
	return nil
}
