package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCreateGuildRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	req := &CreateGuildRequest{
		From: "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY",
		Name: "Builders",
	}

	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestCreateGuildRequest_Validate_MissingFields(t *testing.T) {
	t.Parallel()

	req := &CreateGuildRequest{}

	errors := req.Validate()
	if len(errors) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errors), errors)
	}
	if errors[0].Field != "from" || errors[1].Field != "name" {
		t.Errorf("unexpected fields: %v", errors)
	}
}

func TestCreateGuildRequest_Validate_InvalidRunType(t *testing.T) {
	t.Parallel()

	req := &CreateGuildRequest{
		From:    "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY",
		Name:    "Builders",
		WithGov: &WithGov{RunType: 7},
	}

	errors := req.Validate()
	if len(errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errors))
	}
	if !strings.Contains(errors[0].Field, "run_type") {
		t.Errorf("expected run_type error, got %v", errors[0])
	}
}

func TestWithGov_Validate_GovNeedsScope(t *testing.T) {
	t.Parallel()

	gov := &WithGov{RunType: GovRunGov, Amount: NewBalance(10)}
	errors := gov.Validate()
	if len(errors) != 1 || errors[0].Field != "with_gov.member.scope" {
		t.Errorf("expected scope error, got %v", errors)
	}

	gov.Member = MemberData{Scope: MemberScopeGuild, ID: 3}
	if errors := gov.Validate(); len(errors) != 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestWithGov_Validate_SudoIgnoresScope(t *testing.T) {
	t.Parallel()

	gov := &WithGov{RunType: GovRunSudo}
	if errors := gov.Validate(); len(errors) != 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestGuildJoinRequest_Validate_MissingFrom(t *testing.T) {
	t.Parallel()

	req := &GuildJoinRequest{}
	errors := req.Validate()
	if len(errors) != 1 || errors[0].Field != "from" {
		t.Errorf("expected from error, got %v", errors)
	}
}

func TestGovRunType_String(t *testing.T) {
	t.Parallel()

	if GovRunSudo.String() != RouteSudo {
		t.Errorf("expected %q, got %q", RouteSudo, GovRunSudo.String())
	}
	if GovRunGov.String() != RouteGov {
		t.Errorf("expected %q, got %q", RouteGov, GovRunGov.String())
	}
	if GovRunType(0).String() != "unknown" {
		t.Errorf("expected unknown, got %q", GovRunType(0).String())
	}
}

func TestBalance_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"string", `"1000"`, "1000", false},
		{"number", `42`, "42", false},
		{"above uint64", `"100000000000000000000000"`, "100000000000000000000000", false},
		{"u128 max", `"340282366920938463463374607431768211455"`, "340282366920938463463374607431768211455", false},
		{"null", `null`, "0", false},
		{"above u128", `"340282366920938463463374607431768211456"`, "", true},
		{"negative", `"-1"`, "", true},
		{"fraction", `1.5`, "", true},
		{"not a number", `"ten"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var b Balance
			err := json.Unmarshal([]byte(tt.input), &b)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Unmarshal(%s) = %s, want error", tt.input, b)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if b.String() != tt.want {
				t.Errorf("Unmarshal(%s) = %s, want %s", tt.input, b, tt.want)
			}
		})
	}
}

func TestBalance_MarshalsAsString(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(WithGov{RunType: GovRunGov, Amount: NewBalance(7)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), `"amount":"7"`) {
		t.Errorf("Marshal() = %s, want amount as a string", out)
	}

	var zero Balance
	if !zero.IsZero() || zero.String() != "0" || zero.BigInt().Sign() != 0 {
		t.Errorf("zero Balance = %s", zero)
	}
}
