package role

import "testing"

func TestFromID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   int
		want Role
		ok   bool
	}{
		{id: 1, want: Admin, ok: true},
		{id: 2, want: Doctor, ok: true},
		{id: 3, want: Patient, ok: true},
		{id: 4, want: ClinicManager, ok: true},
		{id: 0, want: None, ok: false},
		{id: 5, want: None, ok: false},
	}
	for _, tc := range tests {
		got, ok := FromID(tc.id)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("FromID(%d) = (%q, %v), want (%q, %v)", tc.id, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseAcceptsNamesAndSegments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Role
		ok   bool
	}{
		{raw: "Patient", want: Patient, ok: true},
		{raw: " doctor ", want: Doctor, ok: true},
		{raw: "clinic", want: ClinicManager, ok: true},
		{raw: "ClinicManager", want: ClinicManager, ok: true},
		{raw: "ADMIN", want: Admin, ok: true},
		{raw: "", want: None, ok: false},
		{raw: "nurse", want: None, ok: false},
	}
	for _, tc := range tests {
		got, ok := Parse(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Parse(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDashboardPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role Role
		want string
	}{
		{role: Patient, want: "/app/patient/"},
		{role: Doctor, want: "/app/doctor/"},
		{role: ClinicManager, want: "/app/clinic/"},
		{role: Admin, want: "/app/admin/"},
		{role: None, want: "/"},
		{role: Role("Nurse"), want: "/"},
	}
	for _, tc := range tests {
		if got := tc.role.DashboardPath(); got != tc.want {
			t.Fatalf("%q.DashboardPath() = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestIDRoundTripsThroughTable(t *testing.T) {
	t.Parallel()

	for _, r := range All() {
		got, ok := FromID(r.ID())
		if !ok || got != r {
			t.Fatalf("FromID(%d) = (%q, %v), want %q", r.ID(), got, ok, r)
		}
		if !r.Valid() {
			t.Fatalf("%q.Valid() = false", r)
		}
	}
	if Role("Nurse").ID() != 0 {
		t.Fatal("unknown role id should be 0")
	}
}

func TestRegisterableExcludesAdmin(t *testing.T) {
	t.Parallel()

	for _, r := range Registerable() {
		if r == Admin {
			t.Fatal("admin must not be registerable")
		}
	}
}
