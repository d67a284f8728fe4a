package model

import "testing"

func TestStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusIdle, false},
		{StatusStarting, true},
		{StatusDownloading, true},
		{StatusFinished, false},
		{StatusError, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("Status(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusIdle, false},
		{StatusStarting, false},
		{StatusDownloading, false},
		{StatusFinished, true},
		{StatusError, true},
	}

	for _, test := range tests {
		result := test.status.IsTerminal()
		if result != test.expected {
			t.Errorf("Status(%s).IsTerminal() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestStatus_String(t *testing.T) {
	if StatusDownloading.String() != "downloading" {
		t.Errorf("Status.String() = %s, expected downloading", StatusDownloading.String())
	}
}
