package formvalidate

import (
	"reflect"
	"testing"
)

type registerForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Confirm  string `form:"confirm_password" validate:"required,eqfield=Password"`
	Role     string `form:"role" validate:"required,oneof=Patient Doctor ClinicManager"`
}

func TestStructReportsEveryField(t *testing.T) {
	t.Parallel()

	errs := Struct(registerForm{
		Email:    "patient@example.test",
		Password: "abc",
		Confirm:  "abcdef",
		Role:     "Patient",
	})

	if got, want := errs.Fields(), []string{"confirm_password", "password"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Fields() = %v, want %v", got, want)
	}
	if got := errs["password"]; got.Key != "core.validation.min_chars" || len(got.Args) != 1 || got.Args[0] != "6" {
		t.Fatalf("password error = %+v, want min_chars 6", got)
	}
	if got := errs["confirm_password"].Key; got != "core.validation.eqfield" {
		t.Fatalf("confirm error key = %q, want core.validation.eqfield", got)
	}
}

func TestStructValid(t *testing.T) {
	t.Parallel()

	errs := Struct(registerForm{
		Email:    "doctor@example.test",
		Password: "secret1",
		Confirm:  "secret1",
		Role:     "Doctor",
	})
	if errs != nil {
		t.Fatalf("Struct() = %v, want nil", errs)
	}
}

func TestStructTagMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		form registerForm
		want map[string]string
	}{
		{
			name: "blank form",
			form: registerForm{},
			want: map[string]string{
				"email":            "core.validation.required",
				"password":         "core.validation.required",
				"confirm_password": "core.validation.required",
				"role":             "core.validation.required",
			},
		},
		{
			name: "bad email and role",
			form: registerForm{Email: "nope", Password: "secret1", Confirm: "secret1", Role: "Admin"},
			want: map[string]string{
				"email": "core.validation.email",
				"role":  "core.validation.oneof",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			errs := Struct(tc.form)
			if len(errs) != len(tc.want) {
				t.Fatalf("errors = %v, want %v", errs, tc.want)
			}
			for field, key := range tc.want {
				if errs[field].Key != key {
					t.Fatalf("%s key = %q, want %q", field, errs[field].Key, key)
				}
			}
		})
	}
}

func TestFromFields(t *testing.T) {
	t.Parallel()

	errs := FromFields(map[string][]string{
		"email": {"Email is taken.", "Try another."},
		"name":  nil,
	})
	if !errs.Has("email") || errs.Has("name") {
		t.Fatalf("errors = %v, want only email", errs)
	}
	if got := errs["email"].Text; got != "Email is taken. Try another." {
		t.Fatalf("email text = %q", got)
	}
	if FromFields(nil) != nil {
		t.Fatal("expected nil for no fields")
	}
}

type uploadForm struct {
	ImageURL string `form:"image_url" validate:"required,imagesrc"`
}

func TestImageSourceAcceptsURLsAndDataURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		ok    bool
	}{
		{value: "https://cdn.example.test/fundus.png", ok: true},
		{value: "http://cdn.example.test/a.jpg", ok: true},
		{value: "data:image/png;base64,iVBORw0KGgo=", ok: true},
		{value: "data:text/html;base64,PGgxPg==", ok: false},
		{value: "data:image/png,raw", ok: false},
		{value: "ftp://cdn.example.test/a.jpg", ok: false},
		{value: "https://", ok: false},
		{value: "fundus.png", ok: false},
	}
	for _, tc := range tests {
		errs := Struct(uploadForm{ImageURL: tc.value})
		if got := errs == nil; got != tc.ok {
			t.Fatalf("Struct(%q) ok = %v, want %v (errs %v)", tc.value, got, tc.ok, errs)
		}
		if !tc.ok && errs["image_url"].Key != "core.validation.imagesrc" {
			t.Fatalf("Struct(%q) key = %q, want core.validation.imagesrc", tc.value, errs["image_url"].Key)
		}
	}
}
