package notesapi

import "testing"

func TestEndpointsResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		endpoints Endpoints
		host      string
		want      string
	}{
		{name: "explicit wins", endpoints: Endpoints{Explicit: "http://api.internal"}, host: "localhost:3000", want: "http://api.internal"},
		{name: "localhost uses dev", host: "localhost:3000", want: DefaultDevBaseURL},
		{name: "localhost subdomain uses dev", host: "app.localhost", want: DefaultDevBaseURL},
		{name: "public host uses prod", host: "notes.example.com", want: DefaultProdBaseURL},
		{name: "custom dev", endpoints: Endpoints{Dev: "http://localhost:7000"}, host: "LOCALHOST", want: "http://localhost:7000"},
		{name: "custom prod", endpoints: Endpoints{Prod: "https://api.example.com"}, host: "", want: "https://api.example.com"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.endpoints.Resolve(tc.host); got != tc.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tc.host, got, tc.want)
			}
		})
	}
}
