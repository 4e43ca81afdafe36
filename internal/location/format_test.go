package location

import "testing"

func TestFormatSuggestion(t *testing.T) {
	tests := []struct {
		name string
		in   SearchResult
		want string
	}{
		{
			name: "house number and road",
			in:   SearchResult{Address: AddressDetails{HouseNumber: "12", Road: "MG Road", Suburb: "Indiranagar", City: "Bangalore", State: "Karnataka"}},
			want: "12 MG Road, Indiranagar, Bangalore",
		},
		{
			name: "road without number",
			in:   SearchResult{Address: AddressDetails{HouseNumber: "12", Suburb: "Indiranagar"}},
			want: "Indiranagar",
		},
		{
			name: "building first and town fallback",
			in:   SearchResult{Address: AddressDetails{Building: "Forum Mall", Road: "Hosur Road", Town: "Koramangala", State: "Karnataka"}},
			want: "Forum Mall, Hosur Road, Koramangala",
		},
		{
			name: "village then state",
			in:   SearchResult{Address: AddressDetails{Village: "Hesaraghatta", State: "Karnataka"}},
			want: "Hesaraghatta, Karnataka",
		},
		{
			name: "display name fallback",
			in:   SearchResult{DisplayName: "Cubbon Park, Sampangi Rama Nagara, Bengaluru, Karnataka, India"},
			want: "Cubbon Park, Sampangi Rama Nagara, Bengaluru",
		},
		{
			name: "short display name",
			in:   SearchResult{DisplayName: "  Lalbagh "},
			want: "Lalbagh",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSuggestion(tt.in); got != tt.want {
				t.Fatalf("FormatSuggestion = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatAddressAndCoords(t *testing.T) {
	if got := FormatAddress(Address{Street: "Church Street", Region: "Karnataka"}); got != "Church Street, Karnataka" {
		t.Fatalf("FormatAddress = %q", got)
	}
	if got := FormatCoords(-33.8688, 151.2093); got != "-33.868800, 151.209300" {
		t.Fatalf("FormatCoords = %q", got)
	}
}
