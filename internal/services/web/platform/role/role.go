// Package role is the single role table of the web frontend: backend role
// ids, display names and the dashboard each role lands on.
package role

import (
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// Role names a platform role as stored in the session.
type Role string

const (
	None          Role = ""
	Admin         Role = "Admin"
	Doctor        Role = "Doctor"
	Patient       Role = "Patient"
	ClinicManager Role = "ClinicManager"
)

type entry struct {
	role      Role
	id        int
	segment   string
	dashboard string
	label     string
}

// table mirrors the backend role_id values.
var table = []entry{
	{role: Admin, id: 1, segment: "admin", dashboard: routepath.AdminPrefix, label: "core.role.admin"},
	{role: Doctor, id: 2, segment: "doctor", dashboard: routepath.DoctorPrefix, label: "core.role.doctor"},
	{role: Patient, id: 3, segment: "patient", dashboard: routepath.PatientPrefix, label: "core.role.patient"},
	{role: ClinicManager, id: 4, segment: "clinic", dashboard: routepath.ClinicPrefix, label: "core.role.clinic_manager"},
}

// All returns every known role in backend id order.
func All() []Role {
	roles := make([]Role, 0, len(table))
	for _, e := range table {
		roles = append(roles, e.role)
	}
	return roles
}

// Registerable returns the roles offered on the public registration form.
func Registerable() []Role {
	return []Role{Patient, Doctor, ClinicManager}
}

// FromID maps a backend role_id to a role.
func FromID(id int) (Role, bool) {
	for _, e := range table {
		if e.id == id {
			return e.role, true
		}
	}
	return None, false
}

// Parse maps a stored role name or dashboard segment to a role. Matching is
// case-insensitive.
func Parse(raw string) (Role, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return None, false
	}
	for _, e := range table {
		if strings.EqualFold(raw, string(e.role)) || strings.EqualFold(raw, e.segment) {
			return e.role, true
		}
	}
	return None, false
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := r.lookup()
	return ok
}

// ID returns the backend role_id, or 0 for unknown roles.
func (r Role) ID() int {
	e, _ := r.lookup()
	return e.id
}

// Segment returns the URL segment of the role's dashboard.
func (r Role) Segment() string {
	e, _ := r.lookup()
	return e.segment
}

// LabelKey returns the localization key of the role's display name.
func (r Role) LabelKey() string {
	e, ok := r.lookup()
	if !ok {
		return "core.role.unknown"
	}
	return e.label
}

// DashboardPath returns the dashboard route of the role; unknown roles land
// on the site root.
func (r Role) DashboardPath() string {
	e, ok := r.lookup()
	if !ok {
		return routepath.Root
	}
	return e.dashboard
}

func (r Role) lookup() (entry, bool) {
	for _, e := range table {
		if e.role == r {
			return e, true
		}
	}
	return entry{}, false
}
