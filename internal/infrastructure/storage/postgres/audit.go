package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"merx/internal/core/id"
	"merx/internal/domain/fulfillment"
)

// auditRow is the persisted form of a transition record. The order snapshot
// is stored zstd-compressed once it exceeds the threshold, which matters for
// orders with large table parts.
type auditRow struct {
	ID          id.ID
	OrderID     id.ID
	OrderKind   string
	OrderNumber string
	FromStatus  string
	ToStatus    string
	UserID      string
	Payload     []byte
	Compressed  bool
	CreatedAt   time.Time
}

// TransitionAuditStore implements fulfillment.AuditRecorder on the
// sys_transition_audit table.
type TransitionAuditStore struct {
	txm               *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

var _ fulfillment.AuditRecorder = (*TransitionAuditStore)(nil)

// NewTransitionAuditStore creates the audit store.
func NewTransitionAuditStore(txm *TxManager) (*TransitionAuditStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &TransitionAuditStore{
		txm:               txm,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 4 * 1024,
	}, nil
}

// Record persists one transition record. It runs on the caller's querier, so
// inside the engine's transaction the record commits or rolls back with the
// transition itself.
func (s *TransitionAuditStore) Record(ctx context.Context, rec fulfillment.TransitionRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal transition record: %w", err)
	}

	row := auditRow{
		ID:          id.New(),
		OrderID:     rec.OrderID,
		OrderKind:   string(rec.OrderKind),
		OrderNumber: rec.OrderNumber,
		FromStatus:  string(rec.FromStatus),
		ToStatus:    string(rec.ToStatus),
		UserID:      rec.UserID,
		Payload:     payload,
		CreatedAt:   rec.At,
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if len(row.Payload) > s.compressThreshold {
		row.Payload = s.encoder.EncodeAll(payload, nil)
		row.Compressed = true
	}

	sql := `
		INSERT INTO sys_transition_audit (
			id, order_id, order_kind, order_number,
			from_status, to_status, user_id,
			payload, compressed, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = s.txm.GetQuerier(ctx).Exec(ctx, sql,
		row.ID, row.OrderID, row.OrderKind, row.OrderNumber,
		row.FromStatus, row.ToStatus, row.UserID,
		row.Payload, row.Compressed, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transition audit: %w", err)
	}

	return nil
}

// History returns the decoded transition records for one order, newest first.
func (s *TransitionAuditStore) History(ctx context.Context, orderID id.ID) ([]fulfillment.TransitionRecord, error) {
	sql := `
		SELECT payload, compressed
		FROM sys_transition_audit
		WHERE order_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.txm.GetQuerier(ctx).Query(ctx, sql, orderID)
	if err != nil {
		return nil, fmt.Errorf("query transition audit: %w", err)
	}
	defer rows.Close()

	var records []fulfillment.TransitionRecord
	for rows.Next() {
		var payload []byte
		var compressed bool
		if err := rows.Scan(&payload, &compressed); err != nil {
			return nil, fmt.Errorf("scan transition audit: %w", err)
		}

		if compressed {
			payload, err = s.decoder.DecodeAll(payload, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress transition audit: %w", err)
			}
		}

		var rec fulfillment.TransitionRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal transition record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
