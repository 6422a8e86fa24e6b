package booking

import (
	"encoding/json"
	"testing"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		flags Flags
		want  Status
	}{
		{Flags{CheckIn: true, CheckOut: false}, StatusCheckIn},
		{Flags{CheckIn: false, CheckOut: true}, StatusCheckOut},
		{Flags{CheckIn: true, CheckOut: true}, StatusTurnover},
		{Flags{}, StatusNone},
	}

	for _, tt := range tests {
		if got := Label(tt.flags); got != tt.want {
			t.Errorf("Label(%+v) = %v, want %v", tt.flags, got, tt.want)
		}
		// Pure function: repeated calls agree.
		if again := Label(tt.flags); again != Label(tt.flags) {
			t.Errorf("Label(%+v) not deterministic", tt.flags)
		}
	}
}

func TestStatusRequiresCleaning(t *testing.T) {
	if StatusCheckIn.RequiresCleaning() {
		t.Error("a bare check-in does not need cleaning")
	}
	if !StatusCheckOut.RequiresCleaning() || !StatusTurnover.RequiresCleaning() {
		t.Error("check-out and turnover both need cleaning")
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusCheckIn, "check_in"},
		{StatusCheckOut, "check_out"},
		{StatusTurnover, "turnover"},
		{StatusNone, "none"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusJSONRoundTrip(t *testing.T) {
	for _, status := range []Status{StatusNone, StatusCheckIn, StatusCheckOut, StatusTurnover} {
		data, err := json.Marshal(status)
		if err != nil {
			t.Fatalf("marshal %v: %v", status, err)
		}

		var back Status
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != status {
			t.Errorf("round trip of %v gave %v", status, back)
		}
	}

	var s Status
	if err := json.Unmarshal([]byte(`"checked_in"`), &s); err == nil {
		t.Error("unknown status name should fail to unmarshal")
	}
}
