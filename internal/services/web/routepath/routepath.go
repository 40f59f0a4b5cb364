// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root           = "/"
	Health         = "/healthz"
	Metrics        = "/metrics"
	StaticPrefix   = "/static/"
	Login          = "/login"
	Register       = "/register"
	ForgotPassword = "/forgot-password"
	ResetPassword  = "/reset-password"
	Logout         = "/logout"

	AppPrefix = "/app/"
	AppRoot   = "/app/"

	PatientPrefix             = "/app/patient/"
	PatientImages             = "/app/patient/images"
	PatientImageUpload        = "/app/patient/images/upload"
	PatientImagePattern       = PatientPrefix + "images/{imageID}"
	PatientReports            = "/app/patient/reports"
	PatientSubscription       = "/app/patient/subscription"
	PatientSubscriptionCreate = "/app/patient/subscription/purchase"

	DoctorPrefix                = "/app/doctor/"
	DoctorPatients              = "/app/doctor/patients"
	DoctorReviews               = "/app/doctor/reviews"
	DoctorAnalysisReviewPrefix  = "/app/doctor/analyses/"
	DoctorAnalysisReviewPattern = DoctorAnalysisReviewPrefix + "{analysisID}/review"
	DoctorReports               = "/app/doctor/reports"
	DoctorReportCreate          = "/app/doctor/reports/create"

	ClinicPrefix          = "/app/clinic/"
	ClinicPatients        = "/app/clinic/patients"
	ClinicImages          = "/app/clinic/images"
	ClinicImageUpload     = "/app/clinic/images/upload"
	ClinicAnalytics       = "/app/clinic/analytics"
	ClinicAnalyticsExport = "/app/clinic/analytics/export.csv"

	AdminPrefix              = "/app/admin/"
	AdminClinics             = "/app/admin/clinics"
	AdminClinicVerifyPattern = AdminPrefix + "clinics/{clinicID}/verify"
	AdminClinicRejectPattern = AdminPrefix + "clinics/{clinicID}/reject"
	AdminAnalytics           = "/app/admin/analytics"
	AdminAnalyticsExport     = "/app/admin/analytics/export.csv"

	MessagesPrefix          = "/app/messages/"
	MessagesStart           = "/app/messages/start"
	ConversationPattern     = MessagesPrefix + "{conversationID}"
	ConversationSendPattern = MessagesPrefix + "{conversationID}/send"

	NotificationsPrefix     = "/app/notifications/"
	NotificationsReadAll    = "/app/notifications/read-all"
	NotificationReadPattern = NotificationsPrefix + "{notificationID}/read"

	ProfilePrefix = "/app/profile/"
	ProfileUpdate = "/app/profile/update"

	// PageQueryKey carries the 1-based table page in list routes.
	PageQueryKey = "page"
	// NextQueryKey carries the post-login destination.
	NextQueryKey = "next"
)

// PatientImage returns the patient image detail route.
func PatientImage(imageID string) string {
	return PatientPrefix + "images/" + escapeSegment(imageID)
}

// DoctorAnalysisReview returns the review form route for one AI analysis.
func DoctorAnalysisReview(analysisID string) string {
	return DoctorAnalysisReviewPrefix + escapeSegment(analysisID) + "/review"
}

// AdminClinicVerify returns the clinic verification command route.
func AdminClinicVerify(clinicID string) string {
	return AdminPrefix + "clinics/" + escapeSegment(clinicID) + "/verify"
}

// AdminClinicReject returns the clinic rejection command route.
func AdminClinicReject(clinicID string) string {
	return AdminPrefix + "clinics/" + escapeSegment(clinicID) + "/reject"
}

// Conversation returns the conversation thread route.
func Conversation(conversationID string) string {
	return MessagesPrefix + escapeSegment(conversationID)
}

// ConversationSend returns the send-message command route.
func ConversationSend(conversationID string) string {
	return Conversation(conversationID) + "/send"
}

// NotificationRead returns the mark-read command route.
func NotificationRead(notificationID string) string {
	return NotificationsPrefix + escapeSegment(notificationID) + "/read"
}

// LoginWithNext returns the login route carrying the post-login destination.
func LoginWithNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return Login
	}
	return Login + "?" + url.Values{NextQueryKey: {next}}.Encode()
}

// WithPage returns path with the page query parameter set, preserving the
// remaining query values.
func WithPage(path string, rawQuery string, page int) string {
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	if page <= 1 {
		query.Del(PageQueryKey)
	} else {
		query.Set(PageQueryKey, strconv.Itoa(page))
	}
	if encoded := query.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
