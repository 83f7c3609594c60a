package notesapi

import (
	"encoding/json"
	"testing"
)

func TestTenantUnmarshalShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Tenant
	}{
		{name: "null", raw: `null`, want: Tenant{}},
		{name: "id string", raw: `" t-1 "`, want: Tenant{ID: "t-1"}},
		{name: "mongo id", raw: `{"_id":"t-1","slug":"acme","name":"Acme","plan":"PRO"}`, want: Tenant{ID: "t-1", Slug: "acme", Name: "Acme", Plan: PlanPro}},
		{name: "plain id wins", raw: `{"_id":"m-1","id":"t-1","plan":"free"}`, want: Tenant{ID: "t-1", Plan: PlanFree}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got Tenant
			if err := json.Unmarshal([]byte(tc.raw), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("tenant = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestTenantUnmarshalRejectsNumbers(t *testing.T) {
	t.Parallel()

	var got Tenant
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestUserSurvivesStorageRoundTrip(t *testing.T) {
	t.Parallel()

	user := User{
		Email:  "admin@acme.test",
		Role:   RoleAdmin,
		UserID: "u-1",
		Tenant: Tenant{ID: "t-1", Slug: "acme", Name: "Acme", Plan: PlanFree},
	}
	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded User
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded != user {
		t.Fatalf("decoded = %+v, want %+v", decoded, user)
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	if got := ParseRole(" Admin "); got != RoleAdmin {
		t.Fatalf("ParseRole(Admin) = %q", got)
	}
	if got := ParseRole("owner"); got != RoleMember {
		t.Fatalf("ParseRole(owner) = %q", got)
	}
	if !(User{Role: RoleAdmin}).IsAdmin() || (User{Role: RoleMember}).IsAdmin() {
		t.Fatal("IsAdmin mismatch")
	}
}
