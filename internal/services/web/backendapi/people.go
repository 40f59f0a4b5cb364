package backendapi

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

// PatientSearch filters the patient search.
type PatientSearch struct {
	Name      string
	ClinicID  apiclient.ID
	RiskLevel string
}

// PatientByAccount returns the patient profile of an account.
func (c *Client) PatientByAccount(ctx context.Context, accountID apiclient.ID) (Patient, error) {
	if err := requireID("account", accountID); err != nil {
		return Patient{}, err
	}
	return getOne[Patient](ctx, c, resource("/patients/account", accountID.String()))
}

// CreatePatient creates a patient profile.
func (c *Client) CreatePatient(ctx context.Context, in PatientInput) (Patient, error) {
	return postOne[Patient](ctx, c, "/patients", in)
}

// UpdatePatient updates a patient profile.
func (c *Client) UpdatePatient(ctx context.Context, patientID apiclient.ID, in PatientInput) (Patient, error) {
	if err := requireID("patient", patientID); err != nil {
		return Patient{}, err
	}
	return putOne[Patient](ctx, c, resource("/patients", patientID.String()), in)
}

// SearchPatients searches patients by name and filters.
func (c *Client) SearchPatients(ctx context.Context, search PatientSearch) ([]Patient, error) {
	return getList[Patient](ctx, c, "/patients/search", "patients", query(
		"name", search.Name,
		"clinic_id", search.ClinicID.String(),
		"risk_level", search.RiskLevel,
	))
}

// PatientsByClinic lists the patients assigned to a clinic.
func (c *Client) PatientsByClinic(ctx context.Context, clinicID apiclient.ID) ([]Patient, error) {
	if err := requireID("clinic", clinicID); err != nil {
		return nil, err
	}
	return getList[Patient](ctx, c, resource("/patients/assigned/clinic", clinicID.String()), "patients")
}

// DoctorByAccount returns the doctor profile of an account.
func (c *Client) DoctorByAccount(ctx context.Context, accountID apiclient.ID) (Doctor, error) {
	if err := requireID("account", accountID); err != nil {
		return Doctor{}, err
	}
	return getOne[Doctor](ctx, c, resource("/doctors/account", accountID.String()))
}

// UpdateDoctor updates a doctor profile.
func (c *Client) UpdateDoctor(ctx context.Context, doctorID apiclient.ID, in DoctorInput) (Doctor, error) {
	if err := requireID("doctor", doctorID); err != nil {
		return Doctor{}, err
	}
	return putOne[Doctor](ctx, c, resource("/doctors", doctorID.String()), in)
}
