package backendapi

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

// Account is the signed-in account as returned by /auth/me.
type Account struct {
	AccountID apiclient.ID `json:"account_id"`
	Email     string       `json:"email"`
	RoleID    int          `json:"role_id"`
	ClinicID  apiclient.ID `json:"clinic_id"`
	Status    string       `json:"status"`
}

// Patient is a patient profile.
type Patient struct {
	PatientID      apiclient.ID `json:"patient_id"`
	AccountID      apiclient.ID `json:"account_id"`
	PatientName    string       `json:"patient_name"`
	DateOfBirth    string       `json:"date_of_birth"`
	Gender         string       `json:"gender"`
	MedicalHistory string       `json:"medical_history"`
}

// PatientInput creates or updates a patient profile.
type PatientInput struct {
	AccountID      apiclient.ID `json:"account_id,omitempty"`
	PatientName    string       `json:"patient_name"`
	DateOfBirth    string       `json:"date_of_birth,omitempty"`
	Gender         string       `json:"gender,omitempty"`
	MedicalHistory string       `json:"medical_history,omitempty"`
}

// Doctor is a doctor profile.
type Doctor struct {
	DoctorID       apiclient.ID `json:"doctor_id"`
	AccountID      apiclient.ID `json:"account_id"`
	DoctorName     string       `json:"doctor_name"`
	Specialization string       `json:"specialization"`
	LicenseNumber  string       `json:"license_number"`
}

// DoctorInput updates a doctor profile.
type DoctorInput struct {
	DoctorName     string `json:"doctor_name"`
	Specialization string `json:"specialization,omitempty"`
	LicenseNumber  string `json:"license_number,omitempty"`
}

// Image statuses.
const (
	ImageUploaded   = "uploaded"
	ImageProcessing = "processing"
	ImageAnalyzed   = "analyzed"
	ImageError      = "error"
)

// ImageTypes and EyeSides are the values the backend accepts on upload.
var (
	ImageTypes = []string{"fundus", "oct", "fluorescein", "angiography"}
	EyeSides   = []string{"left", "right", "both"}
)

// RetinalImage is one uploaded fundus/OCT image.
type RetinalImage struct {
	ImageID    apiclient.ID `json:"image_id"`
	PatientID  apiclient.ID `json:"patient_id"`
	ClinicID   apiclient.ID `json:"clinic_id"`
	UploadedBy apiclient.ID `json:"uploaded_by"`
	ImageType  string       `json:"image_type"`
	EyeSide    string       `json:"eye_side"`
	ImageURL   string       `json:"image_url"`
	UploadTime string       `json:"upload_time"`
	Status     string       `json:"status"`
}

// ImageInput uploads an image. ImageURL is a remote URL or a data URL.
type ImageInput struct {
	PatientID  apiclient.ID `json:"patient_id"`
	ClinicID   apiclient.ID `json:"clinic_id,omitempty"`
	UploadedBy apiclient.ID `json:"uploaded_by"`
	ImageType  string       `json:"image_type"`
	EyeSide    string       `json:"eye_side"`
	ImageURL   string       `json:"image_url"`
	Notes      string       `json:"notes,omitempty"`
}

// Analysis is an AI analysis of one image.
type Analysis struct {
	AnalysisID       apiclient.ID `json:"analysis_id"`
	ImageID          apiclient.ID `json:"image_id"`
	AIModelVersionID apiclient.ID `json:"ai_model_version_id"`
	AnalysisTime     string       `json:"analysis_time"`
	ProcessingTime   Decimal      `json:"processing_time"`
	Status           string       `json:"status"`
}

// PendingAnalysis is a completed analysis still waiting for a doctor review.
type PendingAnalysis struct {
	AnalysisID  apiclient.ID `json:"analysis_id"`
	ImageID     apiclient.ID `json:"image_id"`
	Status      string       `json:"status"`
	CompletedAt string       `json:"completed_at"`
}

// Review validation statuses.
const (
	ReviewApproved      = "approved"
	ReviewRejected      = "rejected"
	ReviewNeedsRevision = "needs_revision"
)

// Review is a doctor's validation of an AI analysis.
type Review struct {
	ReviewID         apiclient.ID `json:"review_id"`
	AnalysisID       apiclient.ID `json:"analysis_id"`
	DoctorID         apiclient.ID `json:"doctor_id"`
	ValidationStatus string       `json:"validation_status"`
	Comment          string       `json:"comment"`
	ReviewedAt       string       `json:"reviewed_at"`
}

// ReviewInput submits a review.
type ReviewInput struct {
	AnalysisID       apiclient.ID `json:"analysis_id"`
	DoctorID         apiclient.ID `json:"doctor_id"`
	ValidationStatus string       `json:"validation_status"`
	Comment          string       `json:"comment,omitempty"`
}

// Report is a medical report issued by a doctor.
type Report struct {
	ReportID   apiclient.ID `json:"report_id"`
	PatientID  apiclient.ID `json:"patient_id"`
	AnalysisID apiclient.ID `json:"analysis_id"`
	DoctorID   apiclient.ID `json:"doctor_id"`
	ReportURL  string       `json:"report_url"`
	CreatedAt  string       `json:"created_at"`
}

// ReportInput creates a report.
type ReportInput struct {
	PatientID  apiclient.ID `json:"patient_id"`
	AnalysisID apiclient.ID `json:"analysis_id"`
	DoctorID   apiclient.ID `json:"doctor_id"`
	ReportURL  string       `json:"report_url"`
}

// Conversation is a patient-doctor thread.
type Conversation struct {
	ConversationID apiclient.ID `json:"conversation_id"`
	PatientID      apiclient.ID `json:"patient_id"`
	DoctorID       apiclient.ID `json:"doctor_id"`
	CreatedAt      string       `json:"created_at"`
	Status         string       `json:"status"`
}

// ConversationInput starts a conversation.
type ConversationInput struct {
	PatientID apiclient.ID `json:"patient_id"`
	DoctorID  apiclient.ID `json:"doctor_id"`
}

// Message is one message in a conversation.
type Message struct {
	MessageID      apiclient.ID `json:"message_id"`
	ConversationID apiclient.ID `json:"conversation_id"`
	SenderType     string       `json:"sender_type"`
	SenderName     string       `json:"sender_name"`
	Content        string       `json:"content"`
	MessageType    string       `json:"message_type"`
	SentAt         string       `json:"sent_at"`
}

// MessageInput sends a message.
type MessageInput struct {
	SenderType string `json:"sender_type"`
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
}

// Notification is an in-app notification.
type Notification struct {
	NotificationID   apiclient.ID `json:"notification_id"`
	AccountID        apiclient.ID `json:"account_id"`
	NotificationType string       `json:"notification_type"`
	Content          string       `json:"content"`
	IsRead           bool         `json:"is_read"`
	CreatedAt        string       `json:"created_at"`
}

// ServicePackage is a purchasable credit bundle.
type ServicePackage struct {
	PackageID    apiclient.ID `json:"package_id"`
	Name         string       `json:"name"`
	Price        Decimal      `json:"price"`
	ImageLimit   int          `json:"image_limit"`
	DurationDays int          `json:"duration_days"`
}

// Subscription is an account's package subscription.
type Subscription struct {
	SubscriptionID   apiclient.ID `json:"subscription_id"`
	AccountID        apiclient.ID `json:"account_id"`
	PackageID        apiclient.ID `json:"package_id"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	RemainingCredits int          `json:"remaining_credits"`
	Status           string       `json:"status"`
}

// SubscriptionInput purchases a package.
type SubscriptionInput struct {
	AccountID        apiclient.ID `json:"account_id"`
	PackageID        apiclient.ID `json:"package_id"`
	RemainingCredits int          `json:"remaining_credits"`
}

// Credits summarizes an account's remaining image credits.
type Credits struct {
	AccountID             apiclient.ID `json:"account_id"`
	RemainingCredits      int          `json:"remaining_credits"`
	HasActiveSubscription bool         `json:"has_active_subscription"`
}

// Clinic verification statuses.
const (
	ClinicPending  = "pending"
	ClinicVerified = "verified"
	ClinicRejected = "rejected"
)

// Clinic is a screening clinic.
type Clinic struct {
	ClinicID           apiclient.ID `json:"clinic_id"`
	Name               string       `json:"name"`
	Address            string       `json:"address"`
	Phone              string       `json:"phone"`
	LogoURL            string       `json:"logo_url"`
	VerificationStatus string       `json:"verification_status"`
	CreatedAt          string       `json:"created_at"`
}

// Metrics is a free-form statistics object such as the admin dashboard or an
// analytics report.
type Metrics map[string]any

// Flatten returns metric rows keyed by dotted path, sorted by key. Nested
// objects are expanded; lists are summarized by their length.
func (m Metrics) Flatten() []MetricRow {
	var rows []MetricRow
	flattenInto(&rows, "", map[string]any(m))
	sortRows(rows)
	return rows
}

// MetricRow is one flattened statistic.
type MetricRow struct {
	Key   string
	Value string
}

// Decimal is a number that may arrive as a JSON number or string.
type Decimal string

// UnmarshalJSON accepts numbers, strings and null.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*d = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Decimal(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Decimal(n.String())
	return nil
}

// String returns the number text.
func (d Decimal) String() string { return string(d) }

// Float returns the numeric value, or 0.
func (d Decimal) Float() float64 {
	f, err := strconv.ParseFloat(string(d), 64)
	if err != nil {
		return 0
	}
	return f
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"Mon, 02 Jan 2006 15:04:05 GMT",
	"2006-01-02",
}

// ParseTime parses the timestamp formats the backend emits.
func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayTime formats a backend timestamp for tables, or returns it as sent
// when it does not parse.
func DisplayTime(raw string) string {
	t, ok := ParseTime(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}

// NewestFirst sorts items by the timestamp at returns, newest first. Items
// without a parseable time go last.
func NewestFirst[T any](items []T, at func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, _ := ParseTime(at(items[i]))
		tj, _ := ParseTime(at(items[j]))
		return ti.After(tj)
	})
}
