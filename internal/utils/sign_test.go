package utils

import "testing"

func TestGenerateSignDeterministic(t *testing.T) {
	params := map[string]string{
		"merchant_key":      "M1001",
		"merchant_order_no": "ORD_001",
		"order_amount":      "12.34",
	}
	s1 := GenerateSign(params, "secret")
	s2 := GenerateSign(params, "secret")
	if s1 != s2 {
		t.Fatalf("sign not deterministic: %s vs %s", s1, s2)
	}
	if s1 == GenerateSign(params, "other") {
		t.Fatal("different secrets must yield different signs")
	}
}

func TestVerifySign(t *testing.T) {
	params := map[string]string{
		"merchant_key": "M1001",
		"order_amount": "12.34",
	}
	params["sign"] = GenerateSign(params, "secret")
	if !VerifySign(params, "secret") {
		t.Fatal("expected sign to verify")
	}
	params["order_amount"] = "12.35"
	if VerifySign(params, "secret") {
		t.Fatal("tampered params must not verify")
	}
}

func TestGenerateSignSkipsEmptyAndSign(t *testing.T) {
	a := map[string]string{"k1": "v1", "k2": ""}
	b := map[string]string{"k1": "v1"}
	if GenerateSign(a, "s") != GenerateSign(b, "s") {
		t.Fatal("empty values must be excluded from signing")
	}
}
