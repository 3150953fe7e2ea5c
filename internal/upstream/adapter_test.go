package upstream

import (
	"net/url"
	"testing"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(NewDemoPay(nil))
	r.Register(NewFastPay(nil))

	a, err := r.Get("demopay")
	if err != nil || a.Code() != "demopay" {
		t.Fatalf("Get(demopay): %v", err)
	}
	if _, err := r.Get("nosuch"); err == nil {
		t.Fatal("unknown supplier code must error")
	}
}

func TestDemoPayParseCallback(t *testing.T) {
	a := NewDemoPay(nil)
	body := []byte(`{"order_no":"1234567890","txn_id":"T-99","amount":"12.34","status":"SUCCESS"}`)
	res, err := a.ParseCallback(body, nil)
	if err != nil {
		t.Fatalf("ParseCallback: %v", err)
	}
	if res.OrderNo != 1234567890 || res.UpTxnID != "T-99" || res.Amount != 1234 || !res.Paid {
		t.Errorf("unexpected result: %+v", res)
	}

	if _, err := a.ParseCallback([]byte(`not json`), nil); err == nil {
		t.Error("malformed body must error")
	}
	if _, err := a.ParseCallback([]byte(`{"order_no":"abc","amount":"1.00","status":"SUCCESS"}`), nil); err == nil {
		t.Error("non-numeric order_no must error")
	}
}

func TestFastPayParseCallback(t *testing.T) {
	a := NewFastPay(nil)
	q := url.Values{}
	q.Set("out_no", "42")
	q.Set("money", "0.01")
	q.Set("serial_no", "S1")
	q.Set("state", "1")

	res, err := a.ParseCallback(nil, q)
	if err != nil {
		t.Fatalf("ParseCallback: %v", err)
	}
	if res.OrderNo != 42 || res.Amount != 1 || !res.Paid {
		t.Errorf("unexpected result: %+v", res)
	}

	// 表单体优先于 query
	body := []byte("out_no=43&money=1.00&state=0")
	res, err = a.ParseCallback(body, q)
	if err != nil {
		t.Fatalf("ParseCallback form: %v", err)
	}
	if res.OrderNo != 43 || res.Paid {
		t.Errorf("form body should win: %+v", res)
	}
}

func TestAckShapes(t *testing.T) {
	if ack := NewFastPay(nil).SuccessAck(); ack.Body != "success" || ack.ContentType != "text/plain" {
		t.Errorf("fastpay ack: %+v", ack)
	}
	if ack := NewDemoPay(nil).SuccessAck(); ack.ContentType != "application/json" {
		t.Errorf("demopay ack: %+v", ack)
	}
}
