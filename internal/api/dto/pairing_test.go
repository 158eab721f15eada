package dto

import "testing"

func TestCreatePairingRequestByCodeRequest_ZeroCodeIsValid(t *testing.T) {
	req := CreatePairingRequestByCodeRequest{Code: 0}
	if msgs := Validate(req); msgs != nil {
		t.Fatalf("expected code 0 to pass validation, got %v", msgs)
	}
}

func TestCreatePairingRequestByCodeRequest_NegativeCodeIsInvalid(t *testing.T) {
	req := CreatePairingRequestByCodeRequest{Code: -1}
	if msgs := Validate(req); msgs == nil {
		t.Fatal("expected a negative code to fail validation")
	}
}
