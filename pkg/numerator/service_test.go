package numerator

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences UPSERT behavior.
type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	return &mockRow{val: m.currentValue}
}

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("SO")

	year := time.Now().Format("2006")

	num, err := svc.GetNextNumber(ctx, cfg, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fmt.Sprintf("SO-%s-00001", year); num != want {
		t.Errorf("expected %s, got %s", want, num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fmt.Sprintf("SO-%s-00002", year); num != want {
		t.Errorf("expected %s, got %s", want, num)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("PO")
	opts := &Options{Strategy: StrategyCached, RangeSize: 10}

	// First call reserves a range of 10; following calls must not hit the DB.
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		num, err := svc.GetNextNumber(ctx, cfg, opts, time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[num] {
			t.Fatalf("duplicate number generated: %s", num)
		}
		seen[num] = true
	}

	if q.currentValue != 10 {
		t.Errorf("expected one range reservation of 10, DB value is %d", q.currentValue)
	}

	// 11th call reserves the next range.
	if _, err := svc.GetNextNumber(ctx, cfg, opts, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.currentValue != 20 {
		t.Errorf("expected second range reservation, DB value is %d", q.currentValue)
	}
}

func TestGetNextNumber_NoYear(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)

	cfg := Config{Prefix: "V", IncludeYear: false, PadWidth: 4, ResetPeriod: "never"}
	num, err := svc.GetNextNumber(context.Background(), cfg, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "V-0001" {
		t.Errorf("expected V-0001, got %s", num)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		formatted string
		want      int64
	}{
		{"SO-2026-00042", 42},
		{"V-0007", 7},
		{"garbage", -1},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.formatted); got != tt.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", tt.formatted, got, tt.want)
		}
	}
}
