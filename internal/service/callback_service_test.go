package service

import "testing"

func TestSupplierMatches(t *testing.T) {
	cases := []struct {
		name            string
		orderSupplierID uint64
		callbackID      uint64
		want            bool
	}{
		{"same supplier", 7, 7, true},
		{"different supplier", 7, 8, false},
		{"unrecorded supplier accepts", 0, 7, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := supplierMatches(c.orderSupplierID, c.callbackID); got != c.want {
				t.Errorf("supplierMatches(%d, %d) = %v, want %v", c.orderSupplierID, c.callbackID, got, c.want)
			}
		})
	}
}

func TestIPAllowed(t *testing.T) {
	cases := []struct {
		name      string
		ip        string
		whitelist string
		want      bool
	}{
		{"empty whitelist allows", "1.2.3.4", "", true},
		{"whitespace only allows", "1.2.3.4", " , ", true},
		{"exact match", "1.2.3.4", "1.2.3.4", true},
		{"exact miss", "1.2.3.5", "1.2.3.4", false},
		{"second rule", "10.0.0.9", "1.2.3.4, 10.0.0.9", true},
		{"cidr hit", "192.168.1.77", "192.168.1.0/24", true},
		{"cidr miss", "192.168.2.1", "192.168.1.0/24", false},
		{"wildcard prefix", "172.16.5.200", "172.16.5.*", true},
		{"wildcard miss", "172.16.6.1", "172.16.5.*", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ipAllowed(c.ip, c.whitelist); got != c.want {
				t.Errorf("ipAllowed(%q, %q) = %v, want %v", c.ip, c.whitelist, got, c.want)
			}
		})
	}
}
