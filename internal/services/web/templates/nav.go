package templates

import (
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// NavItem is one entry of the app navigation.
type NavItem struct {
	Label  string
	URL    string
	Active bool
}

type navEntry struct {
	key  string
	path string
}

var navByRole = map[role.Role][]navEntry{
	role.Patient: {
		{key: "core.nav.dashboard", path: routepath.PatientPrefix},
		{key: "core.nav.images", path: routepath.PatientImages},
		{key: "core.nav.upload", path: routepath.PatientImageUpload},
		{key: "core.nav.reports", path: routepath.PatientReports},
		{key: "core.nav.subscription", path: routepath.PatientSubscription},
		{key: "core.nav.messages", path: routepath.MessagesPrefix},
	},
	role.Doctor: {
		{key: "core.nav.dashboard", path: routepath.DoctorPrefix},
		{key: "core.nav.patients", path: routepath.DoctorPatients},
		{key: "core.nav.reviews", path: routepath.DoctorReviews},
		{key: "core.nav.reports", path: routepath.DoctorReports},
		{key: "core.nav.messages", path: routepath.MessagesPrefix},
	},
	role.ClinicManager: {
		{key: "core.nav.dashboard", path: routepath.ClinicPrefix},
		{key: "core.nav.patients", path: routepath.ClinicPatients},
		{key: "core.nav.images", path: routepath.ClinicImages},
		{key: "core.nav.upload", path: routepath.ClinicImageUpload},
		{key: "core.nav.analytics", path: routepath.ClinicAnalytics},
	},
	role.Admin: {
		{key: "core.nav.dashboard", path: routepath.AdminPrefix},
		{key: "core.nav.clinics", path: routepath.AdminClinics},
		{key: "core.nav.analytics", path: routepath.AdminAnalytics},
	},
}

// NavItems returns the navigation of r with the entry for currentPath active.
// Every signed-in role also gets notifications and profile.
func NavItems(r role.Role, currentPath string, loc Localizer) []NavItem {
	entries := append([]navEntry{}, navByRole[r]...)
	entries = append(entries,
		navEntry{key: "core.nav.notifications", path: routepath.NotificationsPrefix},
		navEntry{key: "core.nav.profile", path: routepath.ProfilePrefix},
	)
	active := activeEntry(entries, currentPath)
	items := make([]NavItem, 0, len(entries))
	for i, entry := range entries {
		items = append(items, NavItem{
			Label:  T(loc, entry.key),
			URL:    entry.path,
			Active: i == active,
		})
	}
	return items
}

// activeEntry picks the longest entry path matching currentPath.
func activeEntry(entries []navEntry, currentPath string) int {
	best, bestLen := -1, 0
	for i, entry := range entries {
		matches := currentPath == entry.path ||
			(strings.HasSuffix(entry.path, "/") && strings.HasPrefix(currentPath, entry.path)) ||
			strings.HasPrefix(currentPath, entry.path+"/")
		if matches && len(entry.path) > bestLen {
			best, bestLen = i, len(entry.path)
		}
	}
	return best
}
