package models

import "testing"

func TestParseInteractionAction(t *testing.T) {
	tests := []struct {
		raw     string
		want    InteractionAction
		wantErr bool
	}{
		{"LIKE", ActionLike, false},
		{"like", ActionLike, false},
		{"  Pass ", ActionPass, false},
		{"SUPERLIKE", "", true},
		{"", "", true},
		{"likes", "", true},
	}

	for _, tt := range tests {
		got, err := ParseInteractionAction(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseInteractionAction(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseInteractionAction(%q): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseInteractionAction(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestInteractionCounterpartID(t *testing.T) {
	interaction := Interaction{InitiatorID: 3, ReceiverID: 9}

	if got := interaction.CounterpartID(3); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := interaction.CounterpartID(9); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestValidateAge(t *testing.T) {
	if err := ValidateAge(17); err == nil {
		t.Fatal("17 must be rejected")
	}
	if err := ValidateAge(101); err == nil {
		t.Fatal("101 must be rejected")
	}
	if err := ValidateAge(18); err != nil {
		t.Fatalf("18 must be accepted: %v", err)
	}
	if err := ValidateAge(100); err != nil {
		t.Fatalf("100 must be accepted: %v", err)
	}
}

func TestUserPublicPrimaryPhoto(t *testing.T) {
	user := User{
		ID:        1,
		FirstName: "Ada",
		Photos: []Photo{
			{ID: 2, URL: "https://cdn.example.com/a.jpg"},
			{ID: 3, URL: "https://cdn.example.com/b.jpg"},
		},
	}

	pub := user.Public()
	if pub.PhotoURL != "https://cdn.example.com/a.jpg" {
		t.Fatalf("expected first photo, got %s", pub.PhotoURL)
	}

	bare := User{ID: 2, FirstName: "Grace"}
	if bare.Public().PhotoURL != "" {
		t.Fatal("expected empty photo url for user without photos")
	}
}
