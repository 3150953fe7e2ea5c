package reaper

import (
	"io"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type fakeOrderStore struct {
	open         map[uint64]bool // 到期未支付订单
	batches      [][]uint64
	closeNothing bool
}

func (f *fakeOrderStore) ListExpired(_ time.Time, limit int) ([]uint64, error) {
	nos := make([]uint64, 0, limit)
	for no := range f.open {
		nos = append(nos, no)
	}
	sort.Slice(nos, func(i, j int) bool { return nos[i] < nos[j] })
	if len(nos) > limit {
		nos = nos[:limit]
	}
	return nos, nil
}

func (f *fakeOrderStore) CloseOrders(nos []uint64) (int64, error) {
	batch := make([]uint64, len(nos))
	copy(batch, nos)
	f.batches = append(f.batches, batch)
	if f.closeNothing {
		return 0, nil
	}
	var n int64
	for _, no := range nos {
		if f.open[no] {
			delete(f.open, no)
			n++
		}
	}
	return n, nil
}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSweepDrainsAllBatches(t *testing.T) {
	store := &fakeOrderStore{open: map[uint64]bool{}}
	for i := uint64(1); i <= 1200; i++ {
		store.open[i] = true
	}

	r := New(store, time.Minute, 30*time.Minute, quietLog())
	r.sweep()

	if len(store.open) != 0 {
		t.Fatalf("expected all orders closed, %d left open", len(store.open))
	}
	if len(store.batches) != 3 {
		t.Fatalf("expected 3 batches for 1200 orders, got %d", len(store.batches))
	}
	total := 0
	for i, batch := range store.batches {
		if len(batch) > listBatchSize {
			t.Fatalf("batch %d exceeds limit: %d", i, len(batch))
		}
		total += len(batch)
	}
	if total != 1200 {
		t.Fatalf("expected 1200 orders across batches, got %d", total)
	}
}

func TestSweepClosesOnlyListedOrders(t *testing.T) {
	store := &fakeOrderStore{open: map[uint64]bool{101: true, 102: true}}

	r := New(store, time.Minute, time.Minute, quietLog())
	r.sweep()

	if len(store.batches) != 1 {
		t.Fatalf("expected a single batch, got %d", len(store.batches))
	}
	want := []uint64{101, 102}
	got := store.batches[0]
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected close batch %v, got %v", want, got)
	}
}

func TestSweepStopsWhenBatchFullyRaced(t *testing.T) {
	// 整批订单都被并发回调抢先迁移时不能空转
	store := &fakeOrderStore{open: map[uint64]bool{}, closeNothing: true}
	for i := uint64(1); i <= 800; i++ {
		store.open[i] = true
	}

	r := New(store, time.Minute, time.Minute, quietLog())
	r.sweep()

	if len(store.batches) != 1 {
		t.Fatalf("expected sweep to stop after one no-op batch, got %d batches", len(store.batches))
	}
}
